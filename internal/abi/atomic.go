// Package abi defines the on-the-wire shared-memory layout shared between the
// gateway (writer) and consumer processes (readers): header, symbol directory,
// snapshot table and the 320-byte canonical payload. Every type here is a
// plain, fixed-width struct with no pointers or Go-runtime-managed fields, so
// that two independently built binaries agree on its layout byte-for-byte.
package abi

import (
	"sync/atomic"
)

// The primitives below are thin, explicitly-named wrappers over sync/atomic,
// mirroring the load/store vocabulary a seqlock proof is usually written
// against (relaxed / acquire / release). Go's sync/atomic already provides
// sequential consistency for every load and store on amd64/arm64, which is at
// least as strong as acquire/release, so these wrappers add no additional
// fences themselves — they exist so the seqlock code (seqlock package) reads
// the same way the ABI's correctness argument is stated, and so a reader of
// this package doesn't have to rediscover which ordering each call site
// actually needs.

// LoadRelaxed32 loads a 32-bit word with no ordering guarantee beyond
// atomicity.
func LoadRelaxed32(addr *uint32) uint32 { return atomic.LoadUint32(addr) }

// LoadAcquire32 loads a 32-bit word such that no read dependent on the
// loaded value observed by this call can be reordered before it.
func LoadAcquire32(addr *uint32) uint32 { return atomic.LoadUint32(addr) }

// StoreRelaxed32 stores a 32-bit word with no ordering guarantee beyond
// atomicity.
func StoreRelaxed32(addr *uint32, v uint32) { atomic.StoreUint32(addr, v) }

// StoreRelease32 stores a 32-bit word such that no write preceding this
// call in program order can be reordered after it.
func StoreRelease32(addr *uint32, v uint32) { atomic.StoreUint32(addr, v) }

// FetchAddRelaxed32 atomically adds delta to *addr and returns the
// post-add value (atomic.AddUint32's own return), not the pre-add value
// a C/C++ fetch_add returns — callers porting arithmetic from the
// original C++ gateway must not carry over its "+1" compensation for
// that difference.
func FetchAddRelaxed32(addr *uint32, delta uint32) uint32 {
	return atomic.AddUint32(addr, delta)
}

// LoadRelaxed64 loads a 64-bit word with no ordering guarantee beyond
// atomicity.
func LoadRelaxed64(addr *uint64) uint64 { return atomic.LoadUint64(addr) }

// LoadAcquire64 loads a 64-bit word such that no read dependent on the
// loaded value observed by this call can be reordered before it.
func LoadAcquire64(addr *uint64) uint64 { return atomic.LoadUint64(addr) }

// StoreRelaxed64 stores a 64-bit word with no ordering guarantee beyond
// atomicity.
func StoreRelaxed64(addr *uint64, v uint64) { atomic.StoreUint64(addr, v) }

// StoreRelease64 stores a 64-bit word such that no write preceding this
// call in program order can be reordered after it.
func StoreRelease64(addr *uint64, v uint64) { atomic.StoreUint64(addr, v) }

// FetchAddRelaxed64 atomically adds delta to *addr and returns the
// post-add value, for the same reason documented on FetchAddRelaxed32.
func FetchAddRelaxed64(addr *uint64, delta uint64) uint64 {
	return atomic.AddUint64(addr, delta)
}

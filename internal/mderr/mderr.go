// Package mderr defines the abstract error kinds used across the gateway's
// region, writer, reader and ingest layers (spec §7), as sentinel values
// meant to be matched with errors.Is against wrapped errors, the way the
// teacher gateway wraps platform errors with fmt.Errorf("...: %w", err).
package mderr

import "errors"

var (
	// ErrInvalidArgument covers empty names, zero/excessive symbol counts,
	// and out-of-range ids on create/attach paths.
	ErrInvalidArgument = errors.New("mdgate: invalid argument")

	// ErrPlatformIO covers region open/truncate/map failures.
	ErrPlatformIO = errors.New("mdgate: platform io error")

	// ErrAbiMismatch covers header validation failures: bad magic, wrong
	// version/endian, inconsistent sizes or offsets. Readers refuse to
	// operate rather than guess.
	ErrAbiMismatch = errors.New("mdgate: abi mismatch")

	// ErrStaleRead covers a seqlock retry budget exhausted on read. Local
	// to the read call; never propagated further by the reader itself.
	ErrStaleRead = errors.New("mdgate: stale read")

	// ErrRecordRejected covers a malformed vendor record or an unknown
	// symbol key. Counted by the ingest adapter but never propagated.
	ErrRecordRejected = errors.New("mdgate: record rejected")
)

package abi

import (
	"fmt"
	"unsafe"
)

// Header is the fixed leading block of a region, a single instance per
// region. Field order matches spec §6 exactly — no implicit padding beyond
// what Go's own alignment rules insert, and none of that padding falls
// between fields that the spec documents as contiguous. New fields belong in
// the reserved words, never inserted into the middle of this struct: the ABI
// version gates incompatible layout changes.
type Header struct {
	Magic       [8]byte
	AbiVersion  uint32
	HeaderBytes uint32
	TotalBytes  uint64
	Endian      uint32
	Flags       uint32

	WriterPid     uint32
	WriterUid     uint32
	WriterStartNs uint64
	HeartbeatNs   uint64 // atomic (see abi.LoadAcquire64/StoreRelease64)

	SymbolCount    uint32
	SymbolKeyType  uint32
	SymbolDirOff   uint64
	SymbolDirBytes uint64

	SnapshotOff          uint64
	SnapshotBytes        uint64
	SnapshotEntryBytes   uint32
	SnapshotPayloadBytes uint32
	SnapshotMode         uint32
	Reserved0            uint32

	EventRingOff   uint64
	EventRingBytes uint64
	EventSlotBytes uint32
	EventCapacity  uint32
	EventWriteSeq  uint64 // atomic

	MdStatus uint32 // atomic
	LastErr  uint32 // atomic
	LastMdNs uint64 // atomic

	Reserved [8]uint64
}

// HeaderSize is the compile-time size of Header. It is rounded up to a
// cache-line multiple by ComputeLayout before anything is placed after it.
var HeaderSize = int(unsafe.Sizeof(Header{}))

func init() {
	if HeaderSize%4 != 0 {
		panic(fmt.Sprintf("abi: Header size %d is not 4-byte aligned", HeaderSize))
	}
	if unsafe.Sizeof(Entry{}) != EntryBytes {
		panic(fmt.Sprintf("abi: Entry size is %d, expected %d", unsafe.Sizeof(Entry{}), EntryBytes))
	}
	if unsafe.Sizeof(Payload{}) != PayloadBytes {
		panic(fmt.Sprintf("abi: Payload size is %d, expected %d", unsafe.Sizeof(Payload{}), PayloadBytes))
	}
	if unsafe.Offsetof(Entry{}.Payload) != CacheLineBytes {
		panic(fmt.Sprintf("abi: Entry.Payload offset is %d, expected %d", unsafe.Offsetof(Entry{}.Payload), CacheLineBytes))
	}
}

// HeaderFromBytes binds a Header pointer to the start of region, without
// copying. The caller must ensure region is at least HeaderSize bytes and
// stays alive and pinned for as long as the returned pointer is used.
func HeaderFromBytes(region []byte) *Header {
	return (*Header)(unsafe.Pointer(&region[0]))
}

package abi

// Compile-time ABI constants. These mirror the C++ reference gateway's
// struct_def.h 1:1 so that a region created by this Go writer and a region
// created by the original C++ writer describe the same bytes.
const (
	// Magic is the fixed 8-byte header signature, including the trailing NUL.
	Magic = "MDGATE1\x00"

	// AbiVersion is the only version this package knows how to produce or
	// validate. A reader refusing an unknown version is correct behavior.
	AbiVersion uint32 = 1

	// EndianLittle is the only endian marker value this package supports.
	EndianLittle uint32 = 1

	// CacheLineBytes is the alignment granularity for the header, the
	// snapshot table and each snapshot entry.
	CacheLineBytes = 64

	// MaxSymbols bounds the symbol universe a single region may describe.
	MaxSymbols = 3000

	// SymbolIDBytes is the width of a fixed-length, zero-padded symbol
	// identifier, both in the symbol directory and in the canonical payload.
	SymbolIDBytes = 16

	// SymbolKeyTypeFixedString is the only symbol_key_type this package
	// produces: symbol_dir entries are fixed-length identifier strings.
	SymbolKeyTypeFixedString uint32 = 1

	// PayloadBytes is the exact size of the canonical version-1 payload.
	PayloadBytes = 320

	// EntryBytes is the exact size of one snapshot entry: a 64-byte meta
	// cache line followed by the 320-byte payload.
	EntryBytes = CacheLineBytes + PayloadBytes

	// FlagSnapshotTablePresent marks header.Flags bit 0.
	FlagSnapshotTablePresent uint32 = 1 << 0
	// FlagSymbolDirPresent marks header.Flags bit 1.
	FlagSymbolDirPresent uint32 = 1 << 1

	// SnapshotModeSeqlock is the only snapshot_mode this package produces:
	// per-entry seqlock, as opposed to a double-buffered layout.
	SnapshotModeSeqlock uint32 = 1
)

// Market-data status values published to header.MdStatus.
const (
	StatusOK           uint32 = 0
	StatusDisconnected uint32 = 1
	StatusReconnecting uint32 = 2
)

// AlignUp rounds x up to the next multiple of align. align must be a power
// of two.
func AlignUp(x, align uint64) uint64 {
	return (x + (align - 1)) &^ (align - 1)
}

// RegionLayout describes the byte ranges of a region sized for symbolCount
// symbols, with or without a symbol directory.
type RegionLayout struct {
	HeaderBytes    uint64
	SymbolDirOff   uint64
	SymbolDirBytes uint64
	SnapshotOff    uint64
	SnapshotBytes  uint64
	TotalBytes     uint64
}

// ComputeLayout returns the region layout for symbolCount symbols. When
// withSymbolDir is false the symbol directory extent is zero-length and the
// snapshot table immediately follows the header.
func ComputeLayout(symbolCount uint32, withSymbolDir bool) RegionLayout {
	headerBytes := AlignUp(uint64(HeaderSize), CacheLineBytes)

	var dirBytes uint64
	if withSymbolDir {
		dirBytes = AlignUp(uint64(symbolCount)*SymbolIDBytes, CacheLineBytes)
	}

	snapshotBytes := uint64(symbolCount) * EntryBytes
	snapshotOff := headerBytes + dirBytes

	return RegionLayout{
		HeaderBytes:    headerBytes,
		SymbolDirOff:   headerBytes,
		SymbolDirBytes: dirBytes,
		SnapshotOff:    snapshotOff,
		SnapshotBytes:  snapshotBytes,
		TotalBytes:     snapshotOff + snapshotBytes,
	}
}

// Package reader implements the consumer side of a region: header
// validation and a spin-bounded snapshot read, neither of which ever takes
// a lock or makes a system call.
package reader

import (
	"fmt"

	"github.com/AlephTX/mdgate/internal/abi"
	"github.com/AlephTX/mdgate/internal/mderr"
	"github.com/AlephTX/mdgate/internal/region"
	"github.com/AlephTX/mdgate/internal/seqlock"
)

// Reader maps a region read-only and exposes validated access to its
// header, symbol directory and snapshot table.
type Reader struct {
	region *region.Region
	header *abi.Header
	dir    []byte
	table  []abi.Entry
}

// Open maps name read-only, binds the header and table pointers, and
// validates the header. On validation failure the region is unmapped and
// an error wrapping mderr.ErrAbiMismatch is returned — this package never
// exposes an unvalidated region.
func Open(name string) (*Reader, error) {
	r, err := region.Open(name, false)
	if err != nil {
		return nil, err
	}

	data := r.Bytes()
	if uint64(len(data)) < uint64(abi.HeaderSize) {
		r.Close()
		return nil, fmt.Errorf("reader: %w: region too small for header", mderr.ErrAbiMismatch)
	}
	h := abi.HeaderFromBytes(data)

	rd := &Reader{region: r, header: h}
	if err := rd.ValidateHeader(); err != nil {
		r.Close()
		return nil, err
	}

	if h.Flags&abi.FlagSymbolDirPresent != 0 && h.SymbolDirBytes > 0 {
		rd.dir = data[h.SymbolDirOff : h.SymbolDirOff+h.SymbolDirBytes]
	}
	rd.table = abi.EntryTable(data, h.SnapshotOff, uint64(h.SymbolCount))
	return rd, nil
}

// ValidateHeader checks every invariant spec §4.5 requires before a reader
// may trust offsets derived from this header. Readers MUST NOT fall back
// to guessing offsets when validation fails.
func (r *Reader) ValidateHeader() error {
	h := r.header
	fail := func(why string) error {
		return fmt.Errorf("reader: %w: %s", mderr.ErrAbiMismatch, why)
	}

	if string(h.Magic[:]) != abi.Magic {
		return fail("bad magic")
	}
	if h.AbiVersion != abi.AbiVersion {
		return fail("unsupported abi_version")
	}
	if h.Endian != abi.EndianLittle {
		return fail("unsupported endian")
	}
	if h.HeaderBytes < uint32(abi.HeaderSize) {
		return fail("header_bytes too small")
	}
	if h.SnapshotEntryBytes != abi.EntryBytes {
		return fail("snapshot_entry_bytes mismatch")
	}
	if h.SnapshotPayloadBytes != abi.PayloadBytes {
		return fail("snapshot_payload_bytes mismatch")
	}
	if uint64(len(r.region.Bytes())) < h.TotalBytes {
		return fail("region smaller than total_bytes")
	}
	if h.SnapshotOff+h.SnapshotBytes > h.TotalBytes {
		return fail("snapshot extent exceeds total_bytes")
	}
	if h.SymbolCount == 0 || h.SymbolCount > abi.MaxSymbols {
		return fail("symbol_count out of range")
	}
	if h.SnapshotBytes != uint64(h.SymbolCount)*uint64(abi.EntryBytes) {
		return fail("snapshot_bytes inconsistent with symbol_count")
	}
	if h.Flags&abi.FlagSymbolDirPresent != 0 {
		if h.SymbolKeyType != abi.SymbolKeyTypeFixedString {
			return fail("unsupported symbol_key_type")
		}
		if h.SymbolDirOff+h.SymbolDirBytes > h.SnapshotOff {
			return fail("symbol directory does not precede snapshot table")
		}
		if h.SymbolDirBytes < uint64(h.SymbolCount)*abi.SymbolIDBytes {
			return fail("symbol_dir_bytes too small for symbol_count")
		}
	}
	return nil
}

// ReadSnapshot bounds-checks id and retries the seqlock read up to
// maxSpins times. It returns the observed even sequence and true on
// success, or false once the retry budget is exhausted — the caller
// decides whether to retry again or treat the symbol as stale.
func (r *Reader) ReadSnapshot(id uint32, out *abi.Payload, maxSpins int) (seq uint32, ok bool) {
	if id >= r.header.SymbolCount {
		return 0, false
	}
	return seqlock.ReadSpin(&r.table[id], out, maxSpins)
}

// SymbolIdentifier returns the directory entry for id, including its
// trailing zero padding, or nil if no symbol directory is present.
func (r *Reader) SymbolIdentifier(id uint32) []byte {
	if r.dir == nil || id >= r.header.SymbolCount {
		return nil
	}
	return abi.SymbolDirEntry(r.dir, 0, id)
}

// HeartbeatNs acquire-loads the writer's last heartbeat timestamp.
func (r *Reader) HeartbeatNs() uint64 { return abi.LoadAcquire64(&r.header.HeartbeatNs) }

// MdStatus acquire-loads the current market-data status.
func (r *Reader) MdStatus() uint32 { return abi.LoadAcquire32(&r.header.MdStatus) }

// LastErr acquire-loads the last published error code.
func (r *Reader) LastErr() uint32 { return abi.LoadAcquire32(&r.header.LastErr) }

// LastMdNs acquire-loads the timestamp of the most recent snapshot publish
// across any symbol.
func (r *Reader) LastMdNs() uint64 { return abi.LoadAcquire64(&r.header.LastMdNs) }

// WriterStartNs returns the writer generation's start timestamp. A reader
// that observes this value change across opens MUST treat any cached
// id<->identifier mapping as invalid.
func (r *Reader) WriterStartNs() uint64 { return r.header.WriterStartNs }

// SymbolCount returns the region's fixed symbol capacity.
func (r *Reader) SymbolCount() uint32 { return r.header.SymbolCount }

// Close unmaps the region.
func (r *Reader) Close() error { return r.region.Close() }

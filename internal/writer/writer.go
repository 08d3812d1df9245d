// Package writer implements the gateway's single-writer side of a region:
// creation, header initialization, symbol-directory publication, and the
// hot-path snapshot publish.
package writer

import (
	"fmt"
	"os"

	"github.com/AlephTX/mdgate/internal/abi"
	"github.com/AlephTX/mdgate/internal/mderr"
	"github.com/AlephTX/mdgate/internal/region"
	"github.com/AlephTX/mdgate/internal/seqlock"
)

// Writer owns the write side of one named region. The documented
// configuration is a single goroutine driving all calls into a given
// Writer; update_snapshot for distinct ids from distinct goroutines is only
// safe if the caller serializes per-id access externally (spec §4.4/§5).
type Writer struct {
	region *region.Region
	name   string
	header *abi.Header
	dir    []byte // symbol directory bytes, nil if absent
	table  []abi.Entry
}

// Create allocates a region named name sized for symbolCount symbols,
// zero-fills it, and populates the header with the ABI magic/version,
// offsets, process identity, a start timestamp, and initial status
// RECONNECTING, per the writer region state machine (spec §4.7).
func Create(name string, symbolCount uint32, nowNs uint64) (*Writer, error) {
	if symbolCount == 0 || symbolCount > abi.MaxSymbols {
		return nil, fmt.Errorf("writer: %w: symbol_count %d out of (0, %d]", mderr.ErrInvalidArgument, symbolCount, abi.MaxSymbols)
	}

	layout := abi.ComputeLayout(symbolCount, true)

	r, err := region.Create(name, layout.TotalBytes)
	if err != nil {
		return nil, err
	}

	data := r.Bytes()
	h := abi.HeaderFromBytes(data)
	*h = abi.Header{}

	copy(h.Magic[:], abi.Magic)
	h.AbiVersion = abi.AbiVersion
	h.HeaderBytes = uint32(abi.HeaderSize)
	h.TotalBytes = layout.TotalBytes
	h.Endian = abi.EndianLittle
	h.Flags = abi.FlagSnapshotTablePresent | abi.FlagSymbolDirPresent

	h.WriterPid = uint32(os.Getpid())
	h.WriterUid = uint32(os.Getuid())
	h.WriterStartNs = nowNs
	h.HeartbeatNs = nowNs

	h.SymbolCount = symbolCount
	h.SymbolKeyType = abi.SymbolKeyTypeFixedString
	h.SymbolDirOff = layout.SymbolDirOff
	h.SymbolDirBytes = layout.SymbolDirBytes

	h.SnapshotOff = layout.SnapshotOff
	h.SnapshotBytes = layout.SnapshotBytes
	h.SnapshotEntryBytes = abi.EntryBytes
	h.SnapshotPayloadBytes = abi.PayloadBytes
	h.SnapshotMode = abi.SnapshotModeSeqlock

	h.MdStatus = abi.StatusReconnecting

	w := &Writer{
		region: r,
		name:   name,
		header: h,
		dir:    data[layout.SymbolDirOff : layout.SymbolDirOff+layout.SymbolDirBytes],
		table:  abi.EntryTable(data, layout.SnapshotOff, uint64(symbolCount)),
	}
	return w, nil
}

// WriteSymbolDirEntry writes the 16-byte zero-padded identifier for id.
// Called once per id during initialization; not on the hot path.
func (w *Writer) WriteSymbolDirEntry(id uint32, identifier string) error {
	if w.dir == nil {
		return fmt.Errorf("writer: %w: no symbol directory", mderr.ErrInvalidArgument)
	}
	if id >= w.header.SymbolCount {
		return fmt.Errorf("writer: %w: id %d >= symbol_count %d", mderr.ErrInvalidArgument, id, w.header.SymbolCount)
	}
	slot := abi.SymbolDirEntry(w.region.Bytes(), w.header.SymbolDirOff, id)
	for i := range slot {
		slot[i] = 0
	}
	copy(slot, identifier)
	return nil
}

// UpdateSnapshot is the hot path: it rejects out-of-range ids silently
// (spec §4.8), then runs the seqlock write sequence and stamps the header's
// last_md_ns with release semantics.
func (w *Writer) UpdateSnapshot(id uint32, payload *abi.Payload, nowNs uint64) {
	if id >= w.header.SymbolCount {
		return
	}
	entry := &w.table[id]
	seqlock.Write(entry, func(e *abi.Entry) {
		e.LastUpdateNs = nowNs
		e.Payload = *payload
	})
	abi.StoreRelease64(&w.header.LastMdNs, nowNs)
}

// UpdateHeartbeat release-stores the current time into header.HeartbeatNs.
func (w *Writer) UpdateHeartbeat(nowNs uint64) {
	abi.StoreRelease64(&w.header.HeartbeatNs, nowNs)
}

// SetMdStatus release-stores a new md_status, driving the writer region
// state machine's CONNECTED/DISCONNECTED/RECONNECTING transitions.
func (w *Writer) SetMdStatus(status uint32) {
	abi.StoreRelease32(&w.header.MdStatus, status)
}

// SetLastErr release-stores the last observed error code.
func (w *Writer) SetLastErr(code uint32) {
	abi.StoreRelease32(&w.header.LastErr, code)
}

// SymbolCount returns the region's fixed symbol capacity.
func (w *Writer) SymbolCount() uint32 { return w.header.SymbolCount }

// MdStatus acquire-loads the current market-data status, for diagnostics.
func (w *Writer) MdStatus() uint32 { return abi.LoadAcquire32(&w.header.MdStatus) }

// LastErr acquire-loads the last published error code, for diagnostics.
func (w *Writer) LastErr() uint32 { return abi.LoadAcquire32(&w.header.LastErr) }

// HeartbeatNs acquire-loads the last published heartbeat, for diagnostics.
func (w *Writer) HeartbeatNs() uint64 { return abi.LoadAcquire64(&w.header.HeartbeatNs) }

// LastMdNs acquire-loads the timestamp of the most recent snapshot publish
// across any symbol, for diagnostics.
func (w *Writer) LastMdNs() uint64 { return abi.LoadAcquire64(&w.header.LastMdNs) }

// WriterStartNs returns this writer generation's start timestamp.
func (w *Writer) WriterStartNs() uint64 { return w.header.WriterStartNs }

// Close unmaps the region. It does not remove the name binding; call
// Unlink separately if the gateway owns the region's lifetime.
func (w *Writer) Close() error { return w.region.Close() }

// Unlink removes the name binding for name. Safe to call after Close.
func Unlink(name string) error { return region.Unlink(name) }

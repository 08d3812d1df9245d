package ingest

import (
	"fmt"

	"github.com/AlephTX/mdgate/internal/abi"
	"github.com/AlephTX/mdgate/internal/mderr"
)

// VendorRecord is the vendor-side shape the ingest adapter accepts: the
// one-shot translation target between the proprietary push API (out of
// scope) and the canonical payload. Field names mirror the original
// gateway's TDF_MARKET_DATA mapping (spec §4.6).
type VendorRecord struct {
	Symbol string // e.g. "600000.SH"
	Prefix string // vendor record prefix, truncated to 8 bytes in the payload

	// DeclaredItemSize is the per-record size the vendor frame itself
	// declares (TDF_APP_HEAD.nItemSize in the original gateway). Every
	// feed adapter must populate it from the wire frame; Adapter.Ingest
	// rejects any record whose declared size doesn't match ItemSize,
	// the same way the original gateway drops a whole batch whose
	// nItemSize disagrees with sizeof(TDF_MARKET_DATA).
	DeclaredItemSize int

	ActionDay     int32
	TradingDay    int32
	TimeHHMMSSmmm int32
	Status        int32

	PreCloseX10000  int64
	OpenX10000      int64
	HighX10000      int64
	LowX10000       int64
	LastX10000      int64
	HighLimitX10000 int64 // <= 0 means "vendor did not report a limit"
	LowLimitX10000  int64

	Volume   int64
	Turnover int64

	BidPriceX10000 [5]int64
	BidVol         [5]int64
	AskPriceX10000 [5]int64
	AskVol         [5]int64
}

// ItemSize is the vendor's documented fixed record size in bytes.
// Adapter.Ingest rejects records whose DeclaredItemSize does not equal
// this value (spec §4.8).
const ItemSize = 208

// Writer is the subset of writer.Writer the adapter depends on, narrowed
// so ingest tests can substitute a fake without importing unix mmap.
type Writer interface {
	UpdateSnapshot(id uint32, payload *abi.Payload, nowNs uint64)
}

// Clock returns a monotonic nanosecond timestamp, matching the gateway's
// one clock source assumption (spec §6).
type Clock func() uint64

// Adapter turns VendorRecords into canonical payloads and publishes them
// through a Writer. It owns the symbol lookup table populated at
// initialization; vendor records for symbols outside that table are
// dropped (spec §4.8's RecordRejected kind, counted but not propagated).
type Adapter struct {
	symbols  *SymbolTable
	writer   Writer
	now      Clock
	rejected uint64
}

// NewAdapter builds an adapter over a pre-populated symbol table.
func NewAdapter(symbols *SymbolTable, w Writer, now Clock) *Adapter {
	return &Adapter{symbols: symbols, writer: w, now: now}
}

// Rejected returns the running count of dropped records, for diagnostics.
func (a *Adapter) Rejected() uint64 { return a.rejected }

// Ingest parses rec's symbol, looks up its id, assembles the canonical
// payload (applying the limit-price fallback when the vendor didn't
// report one), and publishes it. It returns mderr.ErrRecordRejected
// (wrapped) when the declared item size is wrong, the symbol is
// malformed, or the symbol is unknown; the caller is not required to do
// anything with that error beyond counting it.
func (a *Adapter) Ingest(rec VendorRecord) error {
	if rec.DeclaredItemSize != ItemSize {
		a.rejected++
		return fmt.Errorf("ingest: %w: declared item size %d, want %d", mderr.ErrRecordRejected, rec.DeclaredItemSize, ItemSize)
	}

	key, canonical, err := ParseSymbol(rec.Symbol)
	if err != nil {
		a.rejected++
		return err
	}

	id, ok := a.symbols.Lookup(key)
	if !ok {
		a.rejected++
		return fmt.Errorf("ingest: %w: unmapped symbol %q", mderr.ErrRecordRejected, rec.Symbol)
	}

	highLimit, lowLimit := rec.HighLimitX10000, rec.LowLimitX10000
	ApplyLimitFallback(rec.PreCloseX10000, canonical, rec.Prefix, &highLimit, &lowLimit)

	var payload abi.Payload
	payload.PayloadVersion = abi.PayloadVersion1
	payload.Flags = abi.PayloadFlagValid

	payload.ActionDay = rec.ActionDay
	payload.TradingDay = rec.TradingDay
	payload.TimeHHMMSSmmm = rec.TimeHHMMSSmmm
	payload.Status = rec.Status

	payload.PreCloseX10000 = rec.PreCloseX10000
	payload.OpenX10000 = rec.OpenX10000
	payload.HighX10000 = rec.HighX10000
	payload.LowX10000 = rec.LowX10000
	payload.LastX10000 = rec.LastX10000
	payload.HighLimitX10000 = highLimit
	payload.LowLimitX10000 = lowLimit

	payload.Volume = rec.Volume
	payload.Turnover = rec.Turnover

	payload.BidPriceX10000 = rec.BidPriceX10000
	payload.BidVol = rec.BidVol
	payload.AskPriceX10000 = rec.AskPriceX10000
	payload.AskVol = rec.AskVol

	payload.Symbol = canonical
	copy(payload.Prefix[:], rec.Prefix)

	recvNs := a.now()
	payload.RecvNs = recvNs

	a.writer.UpdateSnapshot(id, &payload, recvNs)
	return nil
}

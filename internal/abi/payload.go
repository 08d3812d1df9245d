package abi

// PayloadFlagValid marks Payload.Flags bit 0: the entry has been written at
// least once by this writer generation.
const PayloadFlagValid uint32 = 1 << 0

// PayloadVersion1 is the only payload_version this package produces.
const PayloadVersion1 uint32 = 1

// Payload is the canonical version-1 market-data snapshot, exactly 320
// bytes. It carries no pointers and no Go-runtime-managed fields: it is
// memcpy'd whole, in both directions, across the seqlock boundary.
//
// Prices (the *X10000 fields) are signed 64-bit fixed-point values scaled by
// 10000 (x10000 units); zero means unknown. Volume and turnover are signed
// 64-bit values carried as the vendor reports them. Field order matches
// spec §3/§6 exactly.
type Payload struct {
	PayloadVersion uint32
	Flags          uint32

	ActionDay     int32 // yyyymmdd
	TradingDay    int32 // yyyymmdd
	TimeHHMMSSmmm int32
	Status        int32

	PreCloseX10000  int64
	OpenX10000      int64
	HighX10000      int64
	LowX10000       int64
	LastX10000      int64
	HighLimitX10000 int64
	LowLimitX10000  int64

	Volume   int64
	Turnover int64

	BidPriceX10000 [5]int64
	BidVol         [5]int64
	AskPriceX10000 [5]int64
	AskVol         [5]int64

	Symbol [SymbolIDBytes]byte // e.g. "600000.SH\0\0\0\0\0\0\0"
	Prefix [8]byte

	RecvNs uint64

	Reserved [4]uint64
}

// Entry is one 384-byte cache-line-aligned snapshot-table slot: a 64-byte
// meta cache line (sequence counter, last-update timestamp, padding)
// followed by the 320-byte payload aligned at offset 64.
type Entry struct {
	Seq          uint32 // atomic seqlock counter: even=stable, odd=writing
	pad0         uint32
	LastUpdateNs uint64
	metaPad      [48]byte

	Payload Payload
}

// EntryTable binds a slice of Entry backed by region bytes, without copying.
func EntryTable(region []byte, off, count uint64) []Entry {
	if count == 0 {
		return nil
	}
	base := unsafeEntryPtr(region, off)
	return unsafeEntrySlice(base, int(count))
}

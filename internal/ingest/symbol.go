// Package ingest translates vendor market-data records into the canonical
// 320-byte payload and publishes them through a writer.Writer. The symbol
// key parsing and limit-price fallback rules are grounded directly in the
// original C++ gateway's ParseWindCodeKey/DeduceLimitRatioFast (see
// original_source/md_gate_main.cpp).
package ingest

import (
	"fmt"
	"strings"

	"github.com/AlephTX/mdgate/internal/mderr"
)

// Market encodes the exchange suffix of a wind-style symbol string.
type Market uint8

const (
	// MarketSZ is the Shenzhen exchange, suffix "SZ", market value 0.
	MarketSZ Market = 0
	// MarketSH is the Shanghai exchange, suffix "SH", market value 1.
	MarketSH Market = 1
)

// SymbolKey is the compact integer derived from a symbol identifier used
// for O(1) lookup on the ingest path: market*1_000_000 + numeric_code.
type SymbolKey uint32

// ParseSymbol parses a fixed symbol string of the form "DDDDDD.MX" where
// DDDDDD is six ASCII digits and MX is "SH" or "SZ", matched
// case-insensitively. It returns the derived key and the 16-byte
// zero-padded form of symbol, with its letter case as given. Symbols that
// don't match this shape are rejected — callers must drop the record.
func ParseSymbol(symbol string) (key SymbolKey, canonical [16]byte, err error) {
	if len(symbol) != len("600000.SH") {
		return 0, canonical, fmt.Errorf("ingest: %w: bad symbol length %q", mderr.ErrRecordRejected, symbol)
	}
	var code uint32
	for i := 0; i < 6; i++ {
		c := symbol[i]
		if c < '0' || c > '9' {
			return 0, canonical, fmt.Errorf("ingest: %w: non-numeric code in %q", mderr.ErrRecordRejected, symbol)
		}
		code = code*10 + uint32(c-'0')
	}
	if symbol[6] != '.' {
		return 0, canonical, fmt.Errorf("ingest: %w: missing '.' in %q", mderr.ErrRecordRejected, symbol)
	}

	var market Market
	switch strings.ToUpper(symbol[7:9]) {
	case "SH":
		market = MarketSH
	case "SZ":
		market = MarketSZ
	default:
		return 0, canonical, fmt.Errorf("ingest: %w: unknown market suffix in %q", mderr.ErrRecordRejected, symbol)
	}

	key = SymbolKey(uint32(market)*1_000_000 + code)
	copy(canonical[:], symbol)
	return key, canonical, nil
}

// SymbolTable maps symbol keys to symbol ids, populated once at
// initialization from the configured symbol universe.
type SymbolTable struct {
	keyToID map[SymbolKey]uint32
}

// NewSymbolTable builds a lookup table from an ordered list of wind-style
// symbol strings; index in the slice is the symbol id.
func NewSymbolTable(symbols []string) (*SymbolTable, error) {
	t := &SymbolTable{keyToID: make(map[SymbolKey]uint32, len(symbols))}
	for id, sym := range symbols {
		key, _, err := ParseSymbol(sym)
		if err != nil {
			return nil, err
		}
		t.keyToID[key] = uint32(id)
	}
	return t, nil
}

// Lookup resolves a symbol key to its symbol id. ok is false when the key
// is absent from the configured universe — the record must be dropped.
func (t *SymbolTable) Lookup(key SymbolKey) (id uint32, ok bool) {
	id, ok = t.keyToID[key]
	return id, ok
}

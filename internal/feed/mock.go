package feed

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/AlephTX/mdgate/internal/ingest"
)

// MockSource generates a plausible A-share tick stream for symbols the
// operator can't or doesn't want to reach a real vendor feed for — demo
// runs and local development.
// Adapted from the teacher gateway's exchanges.MockFeeder random-walk
// generator, retargeted from crypto BBO quotes to wind-code equities with
// a previous close and an intraday random walk around it.
type MockSource struct {
	Symbols   []string
	Handler   Handler
	Interval  time.Duration
	Seed      int64
	PreCloses map[string]float64 // defaults to 10.00 per symbol if absent
}

// Run drives the random walk until ctx is canceled.
func (m *MockSource) Run(ctx context.Context) error {
	interval := m.Interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	rng := rand.New(rand.NewSource(m.Seed))

	mid := make(map[string]float64, len(m.Symbols))
	preClose := make(map[string]float64, len(m.Symbols))
	for _, sym := range m.Symbols {
		pc := 10.0
		if m.PreCloses != nil {
			if v, ok := m.PreCloses[sym]; ok {
				pc = v
			}
		}
		preClose[sym] = pc
		mid[sym] = pc
	}

	m.Handler.OnSystemEvent(SystemEvent{Kind: EventConnect})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			nowNs := uint64(time.Now().UnixNano())
			for _, sym := range m.Symbols {
				m.tick(rng, sym, mid, preClose, nowNs)
			}
		}
	}
}

func (m *MockSource) tick(rng *rand.Rand, sym string, mid, preClose map[string]float64, nowNs uint64) {
	price := mid[sym]
	price += price * (rng.Float64() - 0.5) * 0.002
	mid[sym] = price

	spread := price * 0.0005
	bid := math.Round((price-spread/2)*10000) / 10000
	ask := math.Round((price+spread/2)*10000) / 10000

	rec := ingest.VendorRecord{
		Symbol:           sym,
		DeclaredItemSize: ingest.ItemSize,
		PreCloseX10000:   int64(math.Round(preClose[sym] * 10000)),
		OpenX10000:       int64(math.Round(preClose[sym] * 10000)),
		LastX10000:       int64(math.Round(price * 10000)),
		Volume:           int64(rng.Intn(1_000_000)),
		Turnover:         int64(rng.Intn(1_000_000)) * int64(math.Round(price*10000)),
		BidPriceX10000:   [5]int64{int64(math.Round(bid * 10000))},
		BidVol:           [5]int64{int64(100 + rng.Intn(900))},
		AskPriceX10000:   [5]int64{int64(math.Round(ask * 10000))},
		AskVol:           [5]int64{int64(100 + rng.Intn(900))},
		TimeHHMMSSmmm:    int32(nowNs / 1_000_000 % 1_000_000_000),
	}
	m.Handler.OnMarketData(rec)
}

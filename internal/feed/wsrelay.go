package feed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tidwall/gjson"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/AlephTX/mdgate/internal/ingest"
)

// Handler receives parsed ticks and connection-lifecycle events from a
// Source. cmd/mdgate's gatewayHandler implements it, forwarding ticks to the
// ingest adapter and events to the writer's status surface.
type Handler interface {
	OnMarketData(rec ingest.VendorRecord)
	OnSystemEvent(evt SystemEvent)
}

// WSRelay is a feed.Source that consumes a JSON-over-WebSocket vendor
// relay: one long-lived connection, a symbol subscription sent once on
// connect, and a stream of tick/event frames. Reconnection follows the
// teacher gateway's exchanges.RunConnectionLoop pattern; frame fields are
// pulled with gjson rather than encoding/json to avoid allocating a
// throwaway struct per tick on a path that may see thousands of frames a
// second.
type WSRelay struct {
	Name    string
	URL     string
	Symbols []string
	Handler Handler
	Backoff time.Duration
}

// Run implements Source.
func (w *WSRelay) Run(ctx context.Context) error {
	backoff := w.Backoff
	if backoff <= 0 {
		backoff = 3 * time.Second
	}
	return RunConnectionLoop(ctx, w.Name, backoff, w.connect)
}

func (w *WSRelay) connect(ctx context.Context) error {
	c, _, err := websocket.Dial(ctx, w.URL, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(1 << 20)

	sub := map[string]any{"type": "subscribe", "symbols": w.Symbols}
	if err := wsjson.Write(ctx, c, sub); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	log.Printf("feed[%s]: connected to %s, subscribed to %d symbols", w.Name, w.URL, len(w.Symbols))
	w.Handler.OnSystemEvent(SystemEvent{Kind: EventConnect})

	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			w.Handler.OnSystemEvent(SystemEvent{Kind: EventDisconnect, Err: err})
			return err
		}
		w.handleFrame(data)
	}
}

func (w *WSRelay) handleFrame(data []byte) {
	root := gjson.ParseBytes(data)
	switch root.Get("type").String() {
	case "tick":
		w.Handler.OnMarketData(parseTick(root))
	case "event":
		w.handleEvent(root)
	}
}

func (w *WSRelay) handleEvent(root gjson.Result) {
	var kind SystemEventKind
	switch root.Get("kind").String() {
	case "login":
		kind = EventLogin
	case "codetable":
		kind = EventCodeTable
	case "disconnect":
		kind = EventDisconnect
	default:
		kind = EventConnect
	}
	w.Handler.OnSystemEvent(SystemEvent{Kind: kind})
}

func parseTick(root gjson.Result) ingest.VendorRecord {
	levels := func(path string) (prices, vols [5]int64) {
		i := 0
		root.Get(path).ForEach(func(_, level gjson.Result) bool {
			if i >= 5 {
				return false
			}
			prices[i] = level.Get("0").Int()
			vols[i] = level.Get("1").Int()
			i++
			return true
		})
		return
	}

	bidPrice, bidVol := levels("bids")
	askPrice, askVol := levels("asks")

	return ingest.VendorRecord{
		Symbol:           root.Get("symbol").String(),
		Prefix:           root.Get("prefix").String(),
		DeclaredItemSize: int(root.Get("item_size").Int()),

		ActionDay:     int32(root.Get("action_day").Int()),
		TradingDay:    int32(root.Get("trading_day").Int()),
		TimeHHMMSSmmm: int32(root.Get("time").Int()),
		Status:        int32(root.Get("status").Int()),

		PreCloseX10000:  root.Get("pre_close").Int(),
		OpenX10000:      root.Get("open").Int(),
		HighX10000:      root.Get("high").Int(),
		LowX10000:       root.Get("low").Int(),
		LastX10000:      root.Get("last").Int(),
		HighLimitX10000: root.Get("high_limit").Int(),
		LowLimitX10000:  root.Get("low_limit").Int(),

		Volume:   root.Get("volume").Int(),
		Turnover: root.Get("turnover").Int(),

		BidPriceX10000: bidPrice,
		BidVol:         bidVol,
		AskPriceX10000: askPrice,
		AskVol:         askVol,
	}
}

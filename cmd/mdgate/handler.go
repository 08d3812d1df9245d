package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/AlephTX/mdgate/internal/abi"
	"github.com/AlephTX/mdgate/internal/config"
	"github.com/AlephTX/mdgate/internal/diag"
	"github.com/AlephTX/mdgate/internal/feed"
	"github.com/AlephTX/mdgate/internal/ingest"
	"github.com/AlephTX/mdgate/internal/writer"
)

// gatewayHandler bridges feed.Source callbacks into the ingest adapter and
// the writer's status surface, implementing feed.Handler. One instance is
// shared across every venue. Each symbol id stays single-writer (spec §4.4)
// only while no symbol appears in more than one enabled venue's symbol
// list; the gateway does not check the venue lists for overlap.
type gatewayHandler struct {
	writer  *writer.Writer
	adapter *ingest.Adapter
}

func (h *gatewayHandler) OnMarketData(rec ingest.VendorRecord) {
	// RecordRejected is local to ingest: dropped and counted, never
	// propagated (spec §4.8).
	_ = h.adapter.Ingest(rec)
}

func (h *gatewayHandler) OnSystemEvent(evt feed.SystemEvent) {
	switch evt.Kind {
	case feed.EventConnect, feed.EventLogin:
		h.writer.SetMdStatus(abi.StatusOK)
	case feed.EventDisconnect:
		h.writer.SetMdStatus(abi.StatusDisconnected)
		if evt.Err != nil {
			log.Printf("mdgate: feed disconnected: %v", evt.Err)
		}
	case feed.EventCodeTable:
		// No action: code-table refresh doesn't change connectivity status.
	}
}

// runHeartbeat updates the writer's heartbeat at heartbeatInterval and, if
// diagPub is non-nil, publishes a diagnostic snapshot at the same cadence.
// It exits when ctx is canceled.
func runHeartbeat(ctx context.Context, wg *sync.WaitGroup, w *writer.Writer, adapter *ingest.Adapter, diagPub *diag.Publisher, cfg *config.Config, interval time.Duration) {
	defer wg.Done()
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			nowNs := uint64(time.Now().UnixNano())
			w.UpdateHeartbeat(nowNs)
			if diagPub != nil {
				diagPub.Publish(diag.Snapshot{
					RegionName:    cfg.RegionName,
					SymbolCount:   w.SymbolCount(),
					MdStatus:      w.MdStatus(),
					LastErr:       w.LastErr(),
					HeartbeatNs:   w.HeartbeatNs(),
					LastMdNs:      w.LastMdNs(),
					WriterStartNs: w.WriterStartNs(),
					RejectedTicks: adapter.Rejected(),
					SampledAtNs:   nowNs,
				})
			}
		}
	}
}

// Package diag publishes periodic gateway health snapshots to a local Unix
// domain socket for external monitoring tooling. Adapted from the teacher
// feeder's ipc.Publisher (a JSON-over-Unix-socket client to a co-located
// process) — retargeted here from streaming per-tick arbitrage messages to
// a low-rate status snapshot, since the gateway's actual market data path
// is the shared-memory region, not this socket. This keeps the publisher
// local (no cross-host networking, per spec §1 non-goals) while giving
// encoding/json and the teacher's reconnect-on-write-failure discipline a
// home in the expanded gateway.
package diag

import (
	"encoding/json"
	"log"
	"net"
	"sync"
	"time"
)

// Snapshot is one gateway health sample, published at a low, caller-chosen
// cadence (not the hot path).
type Snapshot struct {
	RegionName    string `json:"region_name"`
	SymbolCount   uint32 `json:"symbol_count"`
	MdStatus      uint32 `json:"md_status"`
	LastErr       uint32 `json:"last_err"`
	HeartbeatNs   uint64 `json:"heartbeat_ns"`
	LastMdNs      uint64 `json:"last_md_ns"`
	WriterStartNs uint64 `json:"writer_start_ns"`
	RejectedTicks uint64 `json:"rejected_ticks"`
	SampledAtNs   uint64 `json:"sampled_at_ns"`
}

// Publisher dials a local Unix socket and streams health snapshots to it,
// best-effort: a missing or unreachable listener never blocks or fails the
// caller, it just skips that publish and retries on the next one.
type Publisher struct {
	path string
	mu   sync.Mutex
	conn net.Conn
}

// NewPublisher returns a Publisher for path. The initial dial is
// best-effort; the monitoring listener may not be up yet.
func NewPublisher(path string) *Publisher {
	p := &Publisher{path: path}
	p.dial()
	return p
}

func (p *Publisher) dial() {
	conn, err := net.Dial("unix", p.path)
	if err != nil {
		return
	}
	p.mu.Lock()
	p.conn = conn
	p.mu.Unlock()
	log.Printf("diag: connected to %s", p.path)
}

// Publish sends one snapshot as a newline-delimited JSON object, retrying
// the dial up to twice on write failure before giving up for this call.
func (p *Publisher) Publish(snap Snapshot) {
	msg, err := json.Marshal(snap)
	if err != nil {
		return
	}
	msg = append(msg, '\n')

	p.mu.Lock()
	defer p.mu.Unlock()

	for attempts := 0; attempts < 3; attempts++ {
		if p.conn == nil {
			p.mu.Unlock()
			time.Sleep(200 * time.Millisecond)
			p.mu.Lock()
			conn, err := net.Dial("unix", p.path)
			if err != nil {
				continue
			}
			p.conn = conn
			log.Printf("diag: reconnected to %s", p.path)
		}
		if _, err := p.conn.Write(msg); err != nil {
			p.conn.Close()
			p.conn = nil
			continue
		}
		return
	}
}

// Close releases the underlying connection, if any.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		p.conn.Close()
	}
}

// Package feed adapts external push-API sources into the ingest adapter's
// VendorRecord shape. The vendor feed client itself — the proprietary push
// API — is an external collaborator out of scope for this gateway (spec
// §1); this package only implements the interface that collaborator must
// present: typed tick callbacks (market-data and system-event), delivered
// to a Handler.
package feed

import (
	"context"
	"log"
	"time"
)

// SystemEventKind enumerates the system-event callbacks the feed client
// contract distinguishes from market-data ticks (spec §6).
type SystemEventKind int

const (
	EventConnect SystemEventKind = iota
	EventLogin
	EventCodeTable
	EventDisconnect
)

func (k SystemEventKind) String() string {
	switch k {
	case EventConnect:
		return "connect"
	case EventLogin:
		return "login"
	case EventCodeTable:
		return "codetable"
	case EventDisconnect:
		return "disconnect"
	default:
		return "unknown"
	}
}

// SystemEvent carries a connection-lifecycle signal from the feed source.
// Err is non-nil only for EventDisconnect caused by a failure.
type SystemEvent struct {
	Kind SystemEventKind
	Err  error
}

// Source is one venue's feed connection. Run blocks until ctx is canceled
// or the connection is permanently unrecoverable.
type Source interface {
	Run(ctx context.Context) error
}

// ConnectFunc is a single connection attempt; it returns when the
// connection drops or ctx is canceled.
type ConnectFunc func(ctx context.Context) error

// RunConnectionLoop retries connect with a fixed backoff until ctx is
// canceled, logging each disconnect. Adapted from the teacher gateway's
// exchanges.RunConnectionLoop, generalized with a caller-chosen backoff.
func RunConnectionLoop(ctx context.Context, name string, backoff time.Duration, connect ConnectFunc) error {
	for {
		if err := connect(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("feed[%s]: disconnected (%v), reconnecting in %s...", name, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

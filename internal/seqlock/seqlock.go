// Package seqlock implements the per-entry seqlock protocol that guards
// each snapshot-table slot: a single writer publishes a 320-byte payload
// wait-free, and any number of readers observe a torn-free snapshot with a
// bounded retry budget.
//
// The counter is a simple state machine: even = stable, odd = writing.
// Initial value is zero (stable, never published). Correctness rests on
// the writer bracketing its payload write between an odd and the next even
// release-store of the counter, and the reader re-checking the counter
// after copying the payload out.
package seqlock

import (
	"github.com/AlephTX/mdgate/internal/abi"
)

// DefaultMaxSpins is the reader's default retry budget.
const DefaultMaxSpins = 200

// Write performs the full writer-side seqlock sequence against entry:
// flip the counter to odd, run fill (which must write LastUpdateNs and the
// payload bytes), then release-store the counter to the next even value.
//
// fill is called exactly once, between the odd and even transitions. The
// caller must ensure no other goroutine writes this entry concurrently;
// the seqlock protects readers from writers, not writers from each other.
func Write(entry *abi.Entry, fill func(*abi.Entry)) {
	// FetchAddRelaxed32 returns the post-add value, so from a stable
	// (even) Seq=C this already yields the odd C+1 — no further +1 here.
	odd := abi.FetchAddRelaxed32(&entry.Seq, 1)

	fill(entry)

	abi.StoreRelease32(&entry.Seq, odd+1)
}

// Read attempts a single seqlock read of entry into out. It returns the
// observed even sequence and true on success, or false if the entry was
// mid-write (odd) or was mutated during the copy. A failed read leaves out
// unspecified; callers MUST NOT consume it.
func Read(entry *abi.Entry, out *abi.Payload) (seq uint32, ok bool) {
	s1 := abi.LoadAcquire32(&entry.Seq)
	if s1&1 != 0 {
		return 0, false
	}

	*out = entry.Payload

	s2 := abi.LoadAcquire32(&entry.Seq)
	if s1 != s2 {
		return 0, false
	}
	return s2, true
}

// ReadSpin retries Read up to maxSpins times. It returns the observed even
// sequence and true on the first successful read, or false once the budget
// is exhausted.
func ReadSpin(entry *abi.Entry, out *abi.Payload, maxSpins int) (seq uint32, ok bool) {
	for i := 0; i < maxSpins; i++ {
		if seq, ok := Read(entry, out); ok {
			return seq, true
		}
	}
	return 0, false
}

//go:build !race

package seqlock

// Seqlocks are an intentional benign race: the payload copy in Read/Write
// is deliberately unsynchronized memory access, guarded only by the
// surrounding sequence-counter protocol, not by a mutex the race detector
// can see. Skipped under -race for the same reason the pack's own seqlock
// tests are (see other_examples' s3fifo seqlock race test): the detector
// cannot understand this protocol is safe, and will flag it regardless.

import (
	"sync"
	"testing"
	"time"

	"github.com/AlephTX/mdgate/internal/abi"
)

// TestConcurrentWriteNeverTears is the seqlock-coherence property test
// (spec §8 property 3 / scenario E6, scaled down for a unit test budget):
// a reader spinning against a writer in a tight loop must never observe a
// PreCloseX10000 value the writer did not write.
func TestConcurrentWriteNeverTears(t *testing.T) {
	var entry abi.Entry
	const iterations = 200_000

	var wg sync.WaitGroup
	wg.Add(2)

	stop := make(chan struct{})

	go func() {
		defer wg.Done()
		for i := int64(1); i <= iterations; i++ {
			Write(&entry, func(e *abi.Entry) {
				e.Payload.PreCloseX10000 = i
			})
		}
		close(stop)
	}()

	var successes, torn int
	go func() {
		defer wg.Done()
		var out abi.Payload
		for {
			if _, ok := ReadSpin(&entry, &out, 1000); ok {
				successes++
				if out.PreCloseX10000 < 0 || out.PreCloseX10000 > iterations {
					torn++
				}
			}
			select {
			case <-stop:
				return
			default:
			}
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("test did not complete in time")
	}

	if torn != 0 {
		t.Fatalf("observed %d torn reads out of %d successes", torn, successes)
	}
	if successes == 0 {
		t.Fatal("reader never succeeded once")
	}
}

// TestReadSpinSucceedsOnQuiescentEntry is spec §8 property 4's quiescent
// case: with no concurrent writer, a read with the default spin budget
// always succeeds on the first attempt.
func TestReadSpinSucceedsOnQuiescentEntry(t *testing.T) {
	var entry abi.Entry
	Write(&entry, func(e *abi.Entry) { e.Payload.LastX10000 = 42 })

	var out abi.Payload
	if _, ok := ReadSpin(&entry, &out, DefaultMaxSpins); !ok {
		t.Fatal("ReadSpin failed on a quiescent entry")
	}
}

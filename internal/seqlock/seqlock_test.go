package seqlock

import (
	"testing"

	"github.com/AlephTX/mdgate/internal/abi"
)

func TestWriteReadRoundTrip(t *testing.T) {
	var entry abi.Entry

	Write(&entry, func(e *abi.Entry) {
		e.LastUpdateNs = 123
		e.Payload.PreCloseX10000 = 100000
	})

	var out abi.Payload
	seq, ok := Read(&entry, &out)
	if !ok {
		t.Fatal("Read failed after a completed Write")
	}
	if seq == 0 || seq%2 != 0 {
		t.Fatalf("observed seq %d is not a positive even number", seq)
	}
	if out.PreCloseX10000 != 100000 {
		t.Fatalf("PreCloseX10000 = %d, want 100000", out.PreCloseX10000)
	}
}

func TestReadFailsWhileWriting(t *testing.T) {
	var entry abi.Entry
	entry.Seq = 1 // mid-write: odd

	var out abi.Payload
	if _, ok := Read(&entry, &out); ok {
		t.Fatal("Read succeeded on an odd (mid-write) sequence")
	}
}

func TestReadSpinExhaustsBudget(t *testing.T) {
	var entry abi.Entry
	entry.Seq = 1 // perpetually mid-write

	var out abi.Payload
	if _, ok := ReadSpin(&entry, &out, 5); ok {
		t.Fatal("ReadSpin succeeded against a permanently odd sequence")
	}
}


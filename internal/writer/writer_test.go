package writer

import (
	"testing"

	"github.com/AlephTX/mdgate/internal/abi"
	"github.com/AlephTX/mdgate/internal/region"
)

func TestCreateRejectsBadSymbolCount(t *testing.T) {
	if _, err := Create("/mdgate-test-w-zero", 0, 1); err == nil {
		t.Fatal("Create(symbolCount=0) should fail")
	}
	if _, err := Create("/mdgate-test-w-toomany", abi.MaxSymbols+1, 1); err == nil {
		t.Fatal("Create(symbolCount>MaxSymbols) should fail")
	}
}

func TestCreatePopulatesHeaderAndZeroSnapshot(t *testing.T) {
	name := "/mdgate-test-w-create"
	defer Unlink(name)

	w, err := Create(name, 4, 1000)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer w.Close()

	if w.SymbolCount() != 4 {
		t.Fatalf("SymbolCount() = %d, want 4", w.SymbolCount())
	}
	if w.MdStatus() != abi.StatusReconnecting {
		t.Fatalf("initial MdStatus() = %d, want StatusReconnecting", w.MdStatus())
	}
	if w.WriterStartNs() != 1000 {
		t.Fatalf("WriterStartNs() = %d, want 1000", w.WriterStartNs())
	}

	if err := w.WriteSymbolDirEntry(0, "600000.SH"); err != nil {
		t.Fatalf("WriteSymbolDirEntry: %v", err)
	}
	if err := w.WriteSymbolDirEntry(10, "600000.SH"); err == nil {
		t.Fatal("WriteSymbolDirEntry(id out of range) should fail")
	}
}

func TestUpdateSnapshotRejectsOutOfRangeID(t *testing.T) {
	name := "/mdgate-test-w-oor"
	defer Unlink(name)

	w, err := Create(name, 2, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer w.Close()

	// Must not panic; out-of-range ids are silently rejected.
	w.UpdateSnapshot(99, &abi.Payload{}, 2)
}

func TestUpdateSnapshotStampsLastMdNs(t *testing.T) {
	name := "/mdgate-test-w-lastmd"
	defer Unlink(name)

	w, err := Create(name, 1, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer w.Close()

	w.UpdateSnapshot(0, &abi.Payload{LastX10000: 123}, 5000)
	if w.LastMdNs() != 5000 {
		t.Fatalf("LastMdNs() = %d, want 5000", w.LastMdNs())
	}
}

func TestCreateOverwritesExistingRegion(t *testing.T) {
	name := "/mdgate-test-w-overwrite"
	defer Unlink(name)

	w1, err := Create(name, 2, 1)
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}
	w1.Close()

	w2, err := region.Open(name, true)
	if err != nil {
		t.Fatalf("sanity Open: %v", err)
	}
	w2.Close()

	w3, err := Create(name, 8, 2)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	defer w3.Close()
	if w3.SymbolCount() != 8 {
		t.Fatalf("SymbolCount() after re-create = %d, want 8", w3.SymbolCount())
	}
}

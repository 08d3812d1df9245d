package region

import (
	"errors"
	"testing"
)

func TestCreateOpenClose(t *testing.T) {
	name := "/mdgate-test-create-open"
	defer Unlink(name)

	r, err := Create(name, 4096)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !r.Writable() {
		t.Fatal("Create region should be writable")
	}
	if len(r.Bytes()) != 4096 {
		t.Fatalf("len(Bytes()) = %d, want 4096", len(r.Bytes()))
	}
	r.Bytes()[0] = 0xAB
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ro, err := Open(name, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ro.Close()
	if ro.Writable() {
		t.Fatal("Open(writable=false) should not be writable")
	}
	if len(ro.Bytes()) != 4096 {
		t.Fatalf("reopened len(Bytes()) = %d, want 4096", len(ro.Bytes()))
	}
	if ro.Bytes()[0] != 0xAB {
		t.Fatalf("reopened region did not see prior write: got %x", ro.Bytes()[0])
	}
}

func TestCreateZeroSizeRejected(t *testing.T) {
	if _, err := Create("/mdgate-test-zero", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Create(size=0) err = %v, want ErrInvalidArgument", err)
	}
}

func TestCreateEmptyNameRejected(t *testing.T) {
	if _, err := Create("", 4096); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Create(name=\"\") err = %v, want ErrInvalidArgument", err)
	}
}

func TestOpenMissingRegion(t *testing.T) {
	if _, err := Open("/mdgate-test-does-not-exist", false); err == nil {
		t.Fatal("Open of a nonexistent region should fail")
	}
}

func TestUnlinkIdempotent(t *testing.T) {
	name := "/mdgate-test-unlink-idem"
	r, err := Create(name, 4096)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	r.Close()

	if err := Unlink(name); err != nil {
		t.Fatalf("first Unlink: %v", err)
	}
	if err := Unlink(name); err != nil {
		t.Fatalf("second Unlink should be a no-op, got: %v", err)
	}
}

func TestDoubleCloseIsNoop(t *testing.T) {
	name := "/mdgate-test-double-close"
	defer Unlink(name)

	r, err := Create(name, 4096)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}
}

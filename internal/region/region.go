// Package region maps a named POSIX shared-memory region backed by
// /dev/shm, the way the teacher gateway's shm.Matrix does, generalized to
// an arbitrary caller-computed size and an explicit create/open/close/unlink
// lifecycle instead of a single fixed-size struct.
package region

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Region is a mapped byte range backed by a named shared-memory object.
// Ownership is a tree rooted at the Region handle: Close unmaps it, Unlink
// removes the name binding (independent of any still-open handle, per
// POSIX shm semantics).
type Region struct {
	data     []byte
	writable bool
}

// shmPath resolves a platform-native shared-memory name to a /dev/shm path.
// Names follow the POSIX convention of a leading "/"; a name without one is
// accepted for convenience and treated the same way.
func shmPath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("region: %w: empty name", ErrInvalidArgument)
	}
	if name[0] != '/' {
		name = "/" + name
	}
	return "/dev/shm" + name, nil
}

// Create opens name for read-write, truncates it to size bytes and maps it.
// An existing object of the same name is truncated and reused, matching the
// single-writer-per-region-name assumption (spec §1 non-goals: no
// multi-writer arbitration).
func Create(name string, size uint64) (*Region, error) {
	path, err := shmPath(name)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, fmt.Errorf("region: %w: zero size", ErrInvalidArgument)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("region: open %s: %w", path, &PlatformError{Op: "open", Err: err})
	}
	defer f.Close()

	if err := f.Truncate(int64(size)); err != nil {
		return nil, fmt.Errorf("region: truncate %s: %w", path, &PlatformError{Op: "truncate", Err: err})
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %s: %w", path, &PlatformError{Op: "mmap", Err: err})
	}

	return &Region{data: data, writable: true}, nil
}

// Open maps a pre-existing region, read-only unless writable is set. Its
// size is discovered from the backing object's current size rather than
// passed by the caller.
func Open(name string, writable bool) (*Region, error) {
	path, err := shmPath(name)
	if err != nil {
		return nil, err
	}

	flag := os.O_RDONLY
	prot := unix.PROT_READ
	if writable {
		flag = os.O_RDWR
		prot |= unix.PROT_WRITE
	}

	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("region: open %s: %w", path, &PlatformError{Op: "open", Err: err})
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("region: stat %s: %w", path, &PlatformError{Op: "stat", Err: err})
	}
	size := info.Size()
	if size <= 0 {
		return nil, fmt.Errorf("region: %s: %w: empty region", path, ErrInvalidArgument)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %s: %w", path, &PlatformError{Op: "mmap", Err: err})
	}

	return &Region{data: data, writable: writable}, nil
}

// Unlink removes the name binding. Processes that already hold an open
// Region keep their mapping until they Close it; this is a no-op error on
// platforms where the binding is already gone.
func Unlink(name string) error {
	path, err := shmPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("region: unlink %s: %w", path, &PlatformError{Op: "unlink", Err: err})
	}
	return nil
}

// Bytes returns the mapped region. Valid until Close.
func (r *Region) Bytes() []byte { return r.data }

// Writable reports whether this handle may mutate the mapped bytes.
func (r *Region) Writable() bool { return r.writable }

// Close unmaps the region.
func (r *Region) Close() error {
	if r.data == nil {
		return nil
	}
	err := unix.Munmap(r.data)
	r.data = nil
	if err != nil {
		return fmt.Errorf("region: munmap: %w", &PlatformError{Op: "munmap", Err: err})
	}
	return nil
}

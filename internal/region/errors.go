package region

import (
	"fmt"

	"github.com/AlephTX/mdgate/internal/mderr"
)

// ErrInvalidArgument re-exports mderr.ErrInvalidArgument for callers that
// only import region.
var ErrInvalidArgument = mderr.ErrInvalidArgument

// PlatformError wraps an underlying platform error code (errno) from a
// region open/truncate/map/unlink syscall, per spec §7's PlatformIo kind.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() []error { return []error{mderr.ErrPlatformIO, e.Err} }

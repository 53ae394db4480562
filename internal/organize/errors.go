package organize

import (
	"errors"
	"os"
	"syscall"
)

var (
	// ErrTooManyCollisions is the circuit breaker for collision resolution.
	// It fails the single affected item, never the batch.
	ErrTooManyCollisions = errors.New("too many name collisions")

	// ErrNotDirectory is returned when the scan root is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrProtectedPath is returned when asked to organize a path that must
	// never be reshuffled wholesale.
	ErrProtectedPath = errors.New("refusing to organize protected path")
)

// classifyMoveError maps an OS error from a move to a skip reason, or ""
// when it is an unexpected error. Permission and in-use failures are
// expected operational conditions; everything else surfaces as an error.
func classifyMoveError(err error) SkipReason {
	switch {
	case err == nil:
		return ""
	case os.IsPermission(err) || errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM):
		return SkipPermissionDenied
	case errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.ETXTBSY):
		return SkipFileInUse
	case errors.Is(err, syscall.EROFS):
		return SkipReadOnly
	default:
		return ""
	}
}

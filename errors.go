package vec

import "github.com/pkg/errors"

// ErrOutOfMemory is the root cause reported when the allocation strategy
// cannot satisfy a storage request. Operations wrap it with context; use
// IsOutOfMemory to classify a returned error.
var ErrOutOfMemory = errors.New("vec: out of memory")

// IsOutOfMemory reports whether err was caused by an allocation failure.
func IsOutOfMemory(err error) bool {
	return errors.Is(errors.Cause(err), ErrOutOfMemory)
}

package vec

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"
)

// maxAllocBytes caps a single storage request. Requests above it are
// reported as allocation failures instead of being handed to the runtime,
// which would abort the process rather than return.
const maxAllocBytes = math.MaxInt32

// newSlots approves the byte size of a storage acquisition. It is a
// variable so tests can inject allocation failure at every allocating
// call site.
var newSlots = func(bytes int) bool {
	return bytes <= maxAllocBytes
}

// allocSlots returns exact-capacity slot storage for n elements of type T,
// or an ErrOutOfMemory-classified error. n == 0 yields no allocation.
func allocSlots[T any](n int) ([]T, error) {
	if n < 0 {
		panic("vec: negative capacity request")
	}
	if n == 0 {
		return nil, nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize > 0 && n > maxAllocBytes/elemSize {
		return nil, errors.Wrapf(ErrOutOfMemory, "allocating %d slots", n)
	}
	if !newSlots(n * elemSize) {
		return nil, errors.Wrapf(ErrOutOfMemory, "allocating %d slots", n)
	}
	return make([]T, n), nil
}

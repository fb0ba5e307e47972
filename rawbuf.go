package vec

import "unsafe"

// noCopy is embedded in types that must not be duplicated after first use.
// go vet's copylocks check reports copies of values carrying it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// RawBuffer owns an exact-sized block of slot storage for capacity
// elements of type T. It tracks no element lifetime: which slots hold
// live values is entirely the caller's bookkeeping. A RawBuffer is
// exclusively owned and never duplicated; ownership changes hands only
// through Move and Swap.
type RawBuffer[T any] struct {
	noCopy noCopy

	slots []T
}

// NewRawBuffer acquires storage for exactly capacity slots. capacity == 0
// yields a valid empty buffer with no allocation. On allocation failure
// no partial state is left behind.
func NewRawBuffer[T any](capacity int) (*RawBuffer[T], error) {
	slots, err := allocSlots[T](capacity)
	if err != nil {
		return nil, err
	}
	return &RawBuffer[T]{slots: slots}, nil
}

// Cap returns the slot capacity of the buffer.
func (b *RawBuffer[T]) Cap() int {
	return len(b.slots)
}

// At returns the address of the slot at offset. offset == Cap() is
// permitted and yields the one-past-end address, which must never be
// dereferenced. Any other out-of-range offset panics.
func (b *RawBuffer[T]) At(offset int) *T {
	if offset < 0 || offset > len(b.slots) {
		panic("vec: raw buffer offset out of range")
	}
	if len(b.slots) == 0 {
		return nil
	}
	if offset == len(b.slots) {
		var zero T
		return (*T)(unsafe.Add(unsafe.Pointer(&b.slots[offset-1]), unsafe.Sizeof(zero)))
	}
	return &b.slots[offset]
}

// Slots exposes the raw slot view for bulk transfer. Callers are
// responsible for respecting their own live/spare bookkeeping.
func (b *RawBuffer[T]) Slots() []T {
	return b.slots
}

// Move transfers ownership of the storage to the returned buffer,
// leaving the source empty.
func (b *RawBuffer[T]) Move() *RawBuffer[T] {
	slots := b.slots
	b.slots = nil
	return &RawBuffer[T]{slots: slots}
}

// Swap exchanges the storage of two buffers. Constant time, never fails.
func (b *RawBuffer[T]) Swap(other *RawBuffer[T]) {
	b.slots, other.slots = other.slots, b.slots
}

// Release drops the storage. Safe to call on an empty buffer, and
// idempotent. Live values held in the slots are the caller's problem:
// a RawBuffer never runs element cleanup.
func (b *RawBuffer[T]) Release() {
	b.slots = nil
}

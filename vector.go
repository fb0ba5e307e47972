package vec

import "github.com/pkg/errors"

// Vector is a growable, contiguous array of T built on one RawBuffer.
// Slots [0, Len()) hold live elements, slots [Len(), Cap()) are spare and
// always zero-valued. The vector alone constructs and destroys elements;
// the buffer only carries them.
//
// A Vector is not safe for concurrent use. Create vectors through New,
// Make, MakeFunc, Clone or Move; the zero value is not ready for use.
type Vector[T any] struct {
	noCopy noCopy

	data     RawBuffer[T]
	size     int
	tr       traits
	released bool
}

// New returns an empty vector with no allocation.
func New[T any]() *Vector[T] {
	return &Vector[T]{tr: elemTraits[T]()}
}

// Make returns a vector of n zero-valued elements with capacity exactly n.
// On allocation failure nothing leaks and the error is returned.
func Make[T any](n int) (*Vector[T], error) {
	data, err := NewRawBuffer[T](n)
	if err != nil {
		return nil, errors.Wrapf(err, "vec: make %d elements", n)
	}
	v := &Vector[T]{size: n, tr: elemTraits[T]()}
	v.data.Swap(data)
	return v, nil
}

// MakeFunc returns a vector of n elements constructed by fn, called with
// indices 0 through n-1. If fn fails at element k, the k elements already
// constructed are disposed, the storage is freed and the error
// propagates.
func MakeFunc[T any](n int, fn func(i int) (T, error)) (*Vector[T], error) {
	if fn == nil {
		panic("vec: nil element factory")
	}
	data, err := NewRawBuffer[T](n)
	if err != nil {
		return nil, errors.Wrapf(err, "vec: make %d elements", n)
	}
	tr := elemTraits[T]()
	slots := data.Slots()
	for k := 0; k < n; k++ {
		x, err := fn(k)
		if err != nil {
			for j := 0; j < k; j++ {
				disposeElem(tr, slots[j])
			}
			data.Release()
			return nil, errors.Wrapf(err, "vec: constructing element %d", k)
		}
		slots[k] = x
	}
	v := &Vector[T]{size: n, tr: tr}
	v.data.Swap(data)
	return v, nil
}

// Move returns a vector adopting src's storage and size in constant time.
// src is left empty (size 0, no storage). Never fails.
func Move[T any](src *Vector[T]) *Vector[T] {
	src.check()
	v := &Vector[T]{size: src.size, tr: src.tr}
	v.data.Swap(&src.data)
	src.size = 0
	return v
}

func (v *Vector[T]) check() {
	if v.released {
		panic("vec: use after Release()")
	}
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the slot capacity.
func (v *Vector[T]) Cap() int {
	return v.data.Cap()
}

// At returns the element at index i. i must satisfy 0 <= i < Len().
func (v *Vector[T]) At(i int) T {
	v.check()
	v.boundsCheck(i)
	return v.data.slots[i]
}

// Ptr returns the address of the element at index i. The address is
// invalidated by any operation that reallocates or shifts elements.
func (v *Vector[T]) Ptr(i int) *T {
	v.check()
	v.boundsCheck(i)
	return &v.data.slots[i]
}

// Set replaces the element at index i, disposing the previous occupant.
func (v *Vector[T]) Set(i int, x T) {
	v.check()
	v.boundsCheck(i)
	disposeElem(v.tr, v.data.slots[i])
	v.data.slots[i] = x
}

func (v *Vector[T]) boundsCheck(i int) {
	if i < 0 || i >= v.size {
		panic("vec: index out of range")
	}
}

// Reserve grows capacity to exactly n slots. If n <= Cap() it is a no-op.
// Len() never changes. On failure the vector is untouched.
func (v *Vector[T]) Reserve(n int) error {
	v.check()
	if n < 0 {
		panic("vec: negative capacity request")
	}
	if n <= v.data.Cap() {
		return nil
	}
	if err := v.reallocate(n); err != nil {
		return errors.Wrapf(err, "vec: reserve %d", n)
	}
	return nil
}

// ShrinkToFit reallocates storage down to exactly Len() slots. A no-op
// when capacity already matches.
func (v *Vector[T]) ShrinkToFit() error {
	v.check()
	if v.data.Cap() == v.size {
		return nil
	}
	if err := v.reallocate(v.size); err != nil {
		return errors.Wrap(err, "vec: shrink to fit")
	}
	return nil
}

// reallocate moves the live elements into a fresh buffer of n slots
// (n >= size) and adopts it. Transfer strategy is decided once per type:
// a plain bit move cannot fail, so only NoBitMove element types take the
// fallible clone path, and for those a mid-transfer failure leaves the
// old state fully intact.
func (v *Vector[T]) reallocate(n int) error {
	data, err := NewRawBuffer[T](n)
	if err != nil {
		return err
	}
	slots, old := data.Slots(), v.data.slots
	if v.tr.copyOnGrow {
		for k := 0; k < v.size; k++ {
			c, err := cloneElem(v.tr, old[k])
			if err != nil {
				for j := 0; j < k; j++ {
					disposeElem(v.tr, slots[j])
				}
				data.Release()
				return errors.Wrapf(err, "transferring element %d", k)
			}
			slots[k] = c
		}
		for k := 0; k < v.size; k++ {
			disposeElem(v.tr, old[k])
		}
	} else {
		copy(slots, old[:v.size])
	}
	v.data.Swap(data)
	data.Release()
	return nil
}

// Resize sets Len() to n. Shrinking disposes the trailing elements in
// place; growing reserves storage and extends with zero-valued elements.
func (v *Vector[T]) Resize(n int) error {
	v.check()
	if n < 0 {
		panic("vec: negative size request")
	}
	switch {
	case n < v.size:
		slots := v.data.slots
		for k := n; k < v.size; k++ {
			disposeElem(v.tr, slots[k])
		}
		clear(slots[n:v.size])
		v.size = n
	case n > v.size:
		if err := v.Reserve(n); err != nil {
			return err
		}
		// Spare slots are kept zero-valued, so the new tail is
		// already default-initialized.
		v.size = n
	}
	return nil
}

// PushBack appends x, growing capacity as needed.
func (v *Vector[T]) PushBack(x T) error {
	return v.Insert(v.size, x)
}

// Append appends each of xs in order.
func (v *Vector[T]) Append(xs ...T) error {
	for _, x := range xs {
		if err := v.PushBack(x); err != nil {
			return err
		}
	}
	return nil
}

// Insert places x at index i, shifting later elements up by one.
// i must lie in [0, Len()]; i == Len() appends.
func (v *Vector[T]) Insert(i int, x T) error {
	v.check()
	v.insertCheck(i)
	_, err := v.emplace(i, func() (T, error) { return x, nil })
	return err
}

// Emplace constructs one element in place at index i via fn, shifting
// later elements up by one, and returns the new element's address. The
// factory runs before any state changes, so a factory failure leaves the
// vector untouched. The returned address is invalidated by any later
// reallocation or shift.
func (v *Vector[T]) Emplace(i int, fn func() (T, error)) (*T, error) {
	v.check()
	if fn == nil {
		panic("vec: nil element factory")
	}
	v.insertCheck(i)
	return v.emplace(i, fn)
}

// EmplaceBack constructs one element in place at the end via fn.
func (v *Vector[T]) EmplaceBack(fn func() (T, error)) (*T, error) {
	v.check()
	if fn == nil {
		panic("vec: nil element factory")
	}
	return v.emplace(v.size, fn)
}

func (v *Vector[T]) insertCheck(i int) {
	if i < 0 || i > v.size {
		panic("vec: insert position out of range")
	}
}

func (v *Vector[T]) emplace(i int, fn func() (T, error)) (*T, error) {
	if v.size == v.data.Cap() {
		return v.emplaceGrow(i, fn)
	}
	x, err := fn()
	if err != nil {
		return nil, errors.Wrapf(err, "vec: constructing element at %d", i)
	}
	slots := v.data.slots
	// Backward shift by bit move; copy is memmove-safe on overlap. The
	// staged x is already independent of the shifted cells.
	copy(slots[i+1:v.size+1], slots[i:v.size])
	slots[i] = x
	v.size++
	return &slots[i], nil
}

// emplaceGrow is the size == capacity insert path. Order of operations
// follows the rollback contract: allocate, construct the new element at
// its target offset in the new buffer, transfer prefix, transfer suffix.
// A failure at any step undoes only that operation's work and leaves the
// old buffer intact; the old elements are let go only after every
// fallible step has succeeded.
func (v *Vector[T]) emplaceGrow(i int, fn func() (T, error)) (*T, error) {
	newCap := v.size * 2
	if newCap == 0 {
		newCap = 1
	}
	data, err := NewRawBuffer[T](newCap)
	if err != nil {
		return nil, errors.Wrapf(err, "vec: growing to %d slots", newCap)
	}
	x, err := fn()
	if err != nil {
		data.Release()
		return nil, errors.Wrapf(err, "vec: constructing element at %d", i)
	}
	slots, old := data.Slots(), v.data.slots
	slots[i] = x
	if v.tr.copyOnGrow {
		rollback := func(transferred int) {
			for j := 0; j < transferred; j++ {
				if j == i {
					continue
				}
				disposeElem(v.tr, slots[j])
			}
			disposeElem(v.tr, slots[i])
			data.Release()
		}
		for k := 0; k < i; k++ {
			c, err := cloneElem(v.tr, old[k])
			if err != nil {
				rollback(k)
				return nil, errors.Wrapf(err, "vec: transferring element %d", k)
			}
			slots[k] = c
		}
		for k := i; k < v.size; k++ {
			c, err := cloneElem(v.tr, old[k])
			if err != nil {
				rollback(k + 1)
				return nil, errors.Wrapf(err, "vec: transferring element %d", k)
			}
			slots[k+1] = c
		}
		for k := 0; k < v.size; k++ {
			disposeElem(v.tr, old[k])
		}
	} else {
		copy(slots[:i], old[:i])
		copy(slots[i+1:v.size+1], old[i:v.size])
	}
	v.data.Swap(data)
	data.Release()
	v.size++
	return &v.data.slots[i], nil
}

// PopBack destroys the last element. Calling it on an empty vector is a
// precondition violation and panics.
func (v *Vector[T]) PopBack() {
	v.check()
	if v.size == 0 {
		panic("vec: pop from empty vector")
	}
	var zero T
	disposeElem(v.tr, v.data.slots[v.size-1])
	v.data.slots[v.size-1] = zero
	v.size--
}

// Erase removes the element at index i, shifting later elements down by
// one. i must satisfy 0 <= i < Len().
func (v *Vector[T]) Erase(i int) {
	v.check()
	v.boundsCheck(i)
	slots := v.data.slots
	disposeElem(v.tr, slots[i])
	copy(slots[i:v.size-1], slots[i+1:v.size])
	var zero T
	slots[v.size-1] = zero
	v.size--
}

// Clone returns an independent copy with capacity exactly Len(). Element
// types implementing Cloner are deep-copied; a clone failure at element k
// disposes the k elements already built and frees the new storage,
// leaving the source untouched.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	v.check()
	data, err := NewRawBuffer[T](v.size)
	if err != nil {
		return nil, errors.Wrap(err, "vec: clone")
	}
	slots := data.Slots()
	for k := 0; k < v.size; k++ {
		c, err := cloneElem(v.tr, v.data.slots[k])
		if err != nil {
			for j := 0; j < k; j++ {
				disposeElem(v.tr, slots[j])
			}
			data.Release()
			return nil, errors.Wrapf(err, "vec: cloning element %d", k)
		}
		slots[k] = c
	}
	out := &Vector[T]{size: v.size, tr: v.tr}
	out.data.Swap(data)
	return out, nil
}

// Assign replaces this vector's contents with a copy of rhs's.
//
// When rhs does not fit in the current capacity a full temporary clone is
// built and swapped in, so a failure leaves this vector unmodified
// (strong guarantee). Otherwise storage is reused in place: the
// overlapping prefix is overwritten element by element, then either the
// surplus tail is disposed (shrinking) or rhs's extra tail is cloned into
// spare slots (growing, rolled back on failure). Len() changes only after
// both phases succeed.
func (v *Vector[T]) Assign(rhs *Vector[T]) error {
	v.check()
	rhs.check()
	if v == rhs {
		return nil
	}
	if rhs.size > v.data.Cap() {
		tmp, err := rhs.Clone()
		if err != nil {
			return errors.Wrap(err, "vec: assign")
		}
		v.Swap(tmp)
		tmp.Release()
		return nil
	}
	slots, src := v.data.slots, rhs.data.slots
	overlap := min(v.size, rhs.size)
	for k := 0; k < overlap; k++ {
		c, err := cloneElem(v.tr, src[k])
		if err != nil {
			return errors.Wrapf(err, "vec: assigning element %d", k)
		}
		disposeElem(v.tr, slots[k])
		slots[k] = c
	}
	if rhs.size <= v.size {
		for k := rhs.size; k < v.size; k++ {
			disposeElem(v.tr, slots[k])
		}
		clear(slots[rhs.size:v.size])
	} else {
		for k := v.size; k < rhs.size; k++ {
			c, err := cloneElem(v.tr, src[k])
			if err != nil {
				for j := v.size; j < k; j++ {
					disposeElem(v.tr, slots[j])
				}
				clear(slots[v.size:k])
				return errors.Wrapf(err, "vec: assigning element %d", k)
			}
			slots[k] = c
		}
	}
	v.size = rhs.size
	return nil
}

// Swap exchanges contents with other in constant time. Never fails. Swap
// doubles as move-assignment: after the call each vector holds what the
// other held.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.check()
	other.check()
	if v == other {
		return
	}
	v.data.Swap(&other.data)
	v.size, other.size = other.size, v.size
}

// Clear disposes all live elements and keeps the capacity.
func (v *Vector[T]) Clear() {
	v.check()
	slots := v.data.slots
	for k := 0; k < v.size; k++ {
		disposeElem(v.tr, slots[k])
	}
	clear(slots[:v.size])
	v.size = 0
}

// Release disposes all live elements and frees the storage. Any
// subsequent operation panics. Release is idempotent.
func (v *Vector[T]) Release() {
	if v.released {
		return
	}
	v.Clear()
	v.data.Release()
	v.released = true
}

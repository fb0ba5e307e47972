package vec

import "iter"

// All returns an index/value iterator over the live elements in order.
// Mutating the vector during iteration is undefined.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		v.check()
		for i := 0; i < v.size; i++ {
			if !yield(i, v.data.slots[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over the live elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		v.check()
		for i := 0; i < v.size; i++ {
			if !yield(v.data.slots[i]) {
				return
			}
		}
	}
}

// Backward returns an index/value iterator over the live elements from
// last to first.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		v.check()
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, v.data.slots[i]) {
				return
			}
		}
	}
}

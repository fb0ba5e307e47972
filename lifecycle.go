package vec

// Cloner is implemented by element types whose copies are deep or can
// fail. CloneElem is used wherever the vector copies an element: Clone,
// Assign, and the copy transfer during growth. Types that do not
// implement it are copied by plain assignment, which never fails.
type Cloner[T any] interface {
	CloneElem() (T, error)
}

// Disposer is implemented by element types that own resources needing
// explicit cleanup. DisposeElem runs exactly once per live element when
// the vector destroys it: PopBack, Erase, Resize down, Assign shrink,
// Clear, Release, and originals left behind by a copy transfer. It is
// never run on slots a value has been moved out of.
type Disposer interface {
	DisposeElem()
}

// NoBitMove marks element types for which relocating a value by a plain
// bit copy is not a failure-free transfer of ownership (self-referential
// values, values registered elsewhere by address). During growth the
// vector transfers such elements with CloneElem and disposes the
// originals, preserving the strong guarantee when a clone fails. A
// NoBitMove type without a Cloner is bit-moved anyway: with no copy
// alternative there is nothing safer to fall back to.
type NoBitMove interface {
	NoBitMove()
}

// traits records the element type's lifecycle capabilities. It is
// computed once per vector; mutating operations branch on it once, never
// per element.
type traits struct {
	clone      bool
	dispose    bool
	copyOnGrow bool
}

func elemTraits[T any]() traits {
	var zero T
	var t traits
	_, t.clone = any(zero).(Cloner[T])
	_, t.dispose = any(zero).(Disposer)
	if _, pinned := any(zero).(NoBitMove); pinned {
		t.copyOnGrow = t.clone
	}
	return t
}

// cloneElem copies x using its Cloner when the type has one.
func cloneElem[T any](tr traits, x T) (T, error) {
	if tr.clone {
		return any(x).(Cloner[T]).CloneElem()
	}
	return x, nil
}

// disposeElem destroys x when the type has a Disposer.
func disposeElem[T any](tr traits, x T) {
	if tr.dispose {
		any(x).(Disposer).DisposeElem()
	}
}

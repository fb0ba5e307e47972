// Package vec implements a growable, contiguous, type-generic array for Go.
//
// # Overview
//
// A Vector is a dynamic array built directly on raw slot storage rather
// than on append's growth machinery. It keeps an exact accounting of
// element lifetime: slots below Len() hold live elements, slots up to
// Cap() are spare, and every mutating operation defines what it undoes
// before reporting a failure. This makes it suitable for:
//
//   - Element types owning resources that need deterministic cleanup
//   - Element types whose copies can fail, with rollback on partial failure
//   - Workloads needing exact-capacity storage and doubling growth
//   - Code that wants allocation failure reported, not fatal
//
// # Basic Usage
//
//	v := vec.New[int]()
//	defer v.Release() // Clean up when done
//
//	_ = v.Append(1, 2, 3)
//	_ = v.Insert(1, 42) // [1, 42, 2, 3]
//	v.Erase(0)          // [42, 2, 3]
//
//	for i, x := range v.All() {
//		fmt.Println(i, x)
//	}
//
// # Element Lifecycle
//
// Plain value types need nothing: they are copied by assignment and
// destroyed by zeroing their slot. Element types with richer lifetimes
// opt in through interfaces, probed once per vector:
//
//   - Cloner: the type's copies are deep or can fail; used by Clone,
//     Assign and the copy transfer during growth.
//   - Disposer: the type owns resources; DisposeElem runs exactly once
//     per live element when the vector destroys it.
//   - NoBitMove: relocating a value by bit copy does not transfer
//     ownership safely; growth clones such elements and disposes the
//     originals, keeping the old state intact if a clone fails.
//
// # Failure Model
//
// Operations that allocate or copy elements return an error. Allocation
// failures are classified under ErrOutOfMemory. Every multi-step
// operation restores its documented state before reporting: growth never
// abandons the old buffer until all transfers succeed, and partial
// construction is disposed before the error propagates.
//
// Precondition violations are not errors: indexing out of range, popping
// an empty vector, inserting at an invalid position or using a vector
// after Release() all panic.
//
// # Thread Safety
//
// A Vector is not safe for concurrent mutation, nor for reading while
// another goroutine mutates. Callers needing shared access must hold an
// exclusive lock around all operations.
//
// # Performance Characteristics
//
//   - Append: O(1) amortized (capacity doubles on growth)
//   - Insert/Erase at position i: O(Len() - i)
//   - Move, Swap: O(1)
//   - Reserve, Clone, Assign: O(Len())
//
// # Metrics and Monitoring
//
// The vector reports its storage accounting as a plain snapshot:
//
//	m := v.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization * 100)
//	fmt.Printf("Live bytes: %d of %d\n", m.SizeBytes, m.CapBytes)
package vec

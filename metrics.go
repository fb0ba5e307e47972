package vec

import "unsafe"

// SizeBytes returns the number of bytes occupied by live elements.
func (v *Vector[T]) SizeBytes() int {
	var zero T
	return v.size * int(unsafe.Sizeof(zero))
}

// CapBytes returns the total storage footprint of the buffer in bytes.
func (v *Vector[T]) CapBytes() int {
	var zero T
	return v.data.Cap() * int(unsafe.Sizeof(zero))
}

// Utilization returns the ratio of live elements to capacity (0.0 to 1.0).
// Returns 0.0 for a vector with no storage.
func (v *Vector[T]) Utilization() float64 {
	capacity := v.data.Cap()
	if capacity == 0 {
		return 0
	}
	return float64(v.size) / float64(capacity)
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() VectorMetrics {
	return VectorMetrics{
		Len:         v.size,
		Cap:         v.data.Cap(),
		SizeBytes:   v.SizeBytes(),
		CapBytes:    v.CapBytes(),
		Utilization: v.Utilization(),
	}
}

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Len         int     // Live elements
	Cap         int     // Slot capacity
	SizeBytes   int     // Bytes occupied by live elements
	CapBytes    int     // Total storage footprint in bytes
	Utilization float64 // Ratio of live elements to capacity (0.0-1.0)
}

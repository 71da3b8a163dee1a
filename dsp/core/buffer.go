package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Reused contents are not cleared.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// Widen converts float32 samples to float64, reusing dst capacity.
func Widen(dst []float64, src []float32) []float64 {
	dst = EnsureLen(dst, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

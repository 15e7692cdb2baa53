package floats

import (
	"slices"
)

// SortedCopy returns an ascending copy of fs. A nil slice stays nil so that
// absent input remains distinguishable from empty input.
func SortedCopy(fs []float64) []float64 {
	if fs == nil {
		return nil
	}
	c := make([]float64, len(fs))
	copy(c, fs)
	slices.Sort(c)
	return c
}

// IsSorted reports whether fs is in ascending order.
func IsSorted(fs []float64) bool {
	return slices.IsSorted(fs)
}

// Package descriptive computes scalar summary statistics over float64
// sequences. A nil slice is absent input and yields ErrMissingInput; an empty
// non-nil slice is valid and yields 0.
package descriptive

import (
	"errors"
)

var ErrMissingInput = errors.New("missing input: sequence is nil")

// Statistics is implemented by types providing descriptive statistics.
type Statistics interface {
	Mean(numbers []float64) (float64, error)
	MedianFromSorted(sortedNumbers []float64) (float64, error)
}

// Descriptive implements Statistics with the package level functions.
type Descriptive struct{}

var _ Statistics = Descriptive{}

func (Descriptive) Mean(numbers []float64) (float64, error) {
	return Mean(numbers)
}

func (Descriptive) MedianFromSorted(sortedNumbers []float64) (float64, error) {
	return MedianFromSorted(sortedNumbers)
}

// Mean returns the arithmetic mean of numbers, summed left to right.
func Mean(numbers []float64) (float64, error) {
	if numbers == nil {
		return 0, ErrMissingInput
	}
	n := len(numbers)
	if n == 0 {
		return 0, nil
	}
	var total float64
	for _, f := range numbers {
		total += f
	}
	return total / float64(n), nil
}

// MedianFromSorted returns the median of sortedNumbers, which must be sorted
// in ascending order. Order is not checked.
func MedianFromSorted(sortedNumbers []float64) (float64, error) {
	if sortedNumbers == nil {
		return 0, ErrMissingInput
	}
	n := len(sortedNumbers)
	if n == 0 {
		return 0, nil
	}
	i := n / 2
	if n%2 != 0 {
		return sortedNumbers[i], nil
	}
	return (sortedNumbers[i-1] + sortedNumbers[i]) / 2, nil
}

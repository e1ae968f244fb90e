// Package compare provides three-way comparators used by the ordered tree
// variants to define key order.
//
// A Comparator returns a negative number when a sorts before b, zero when the
// two keys are equal, and a positive number when a sorts after b. Ordered
// variants accept any Comparator; helpers below cover the common cases.
package compare

import (
	"cmp"
	"time"
)

// Comparator defines a total order over keys of type K.
//
// Returns:
//   - < 0 if a sorts before b
//   - 0 if a and b are equal
//   - > 0 if a sorts after b
type Comparator[K any] func(a, b K) int

// Ordered returns the natural comparator for any cmp.Ordered key type.
//
// The compile-time cmp.Ordered bound is the Go rendition of rejecting
// non-comparable keys: a key type without natural order does not satisfy the
// constraint, so the misuse cannot reach runtime.
func Ordered[K cmp.Ordered]() Comparator[K] {
	return cmp.Compare[K]
}

// Reverse returns a comparator with the sign of every comparison inverted.
func Reverse[K any](c Comparator[K]) Comparator[K] {
	return func(a, b K) int {
		return -c(a, b)
	}
}

// Timestamp compares two time.Time values chronologically.
func Timestamp(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether the comparator considers a and b the same key.
func Equal[K any](c Comparator[K], a, b K) bool {
	return c(a, b) == 0
}

package tree

import (
	"github.com/barnowlsnest/go-treelib/pkg/compare"
)

// Range describes a key interval for range search. A bound is inclusive only
// when its Include flag is set; NewRange sets both.
type Range[K any] struct {
	Low         K
	High        K
	IncludeLow  bool
	IncludeHigh bool
}

// NewRange returns the closed interval [low, high].
func NewRange[K any](low, high K) Range[K] {
	return Range[K]{Low: low, High: high, IncludeLow: true, IncludeHigh: true}
}

// Contains reports whether key falls inside the range under the given
// comparator, honoring the inclusivity flags.
func (r Range[K]) Contains(key K, cmp compare.Comparator[K]) bool {
	low := cmp(key, r.Low)
	if low < 0 || (low == 0 && !r.IncludeLow) {
		return false
	}

	high := cmp(key, r.High)
	if high > 0 || (high == 0 && !r.IncludeHigh) {
		return false
	}

	return true
}

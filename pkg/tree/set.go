package tree

import (
	stdcmp "cmp"
	"fmt"
	"iter"

	"github.com/barnowlsnest/go-treelib/pkg/compare"
)

// TreeSet is an ordered set of keys: a thin adapter over the red-black
// ordered map that ignores values. Membership is key presence.
type TreeSet[K comparable] struct {
	m RedBlackTree[K, struct{}]
}

// NewSet creates an empty set ordered by the natural comparator of K.
func NewSet[K stdcmp.Ordered](opts ...Option[K, struct{}]) (*TreeSet[K], error) {
	m, err := NewRedBlack[K, struct{}](opts...)
	if err != nil {
		return nil, err
	}

	return &TreeSet[K]{m: *m}, nil
}

// NewSetWith creates an empty set ordered by a caller-supplied comparator.
func NewSetWith[K comparable](comparator compare.Comparator[K], opts ...Option[K, struct{}]) (*TreeSet[K], error) {
	m, err := NewRedBlackWith[K, struct{}](comparator, opts...)
	if err != nil {
		return nil, err
	}

	return &TreeSet[K]{m: *m}, nil
}

// Add inserts key into the set. Adding a member again is a no-op that still
// reports success.
func (s *TreeSet[K]) Add(key K) bool {
	return s.m.Add(key, struct{}{})
}

// Delete removes key from the set. Returns false when key was not a member.
func (s *TreeSet[K]) Delete(key K) bool {
	return len(s.m.Delete(key)) > 0
}

// Has reports membership.
func (s *TreeSet[K]) Has(key K) bool {
	return s.m.Has(key)
}

// Size returns the number of members.
func (s *TreeSet[K]) Size() int {
	return s.m.Size()
}

// IsEmpty reports whether the set has no members.
func (s *TreeSet[K]) IsEmpty() bool {
	return s.m.IsEmpty()
}

// Clear removes all members.
func (s *TreeSet[K]) Clear() {
	s.m.Clear()
}

// Values returns the members in comparator order.
func (s *TreeSet[K]) Values() []K {
	return s.m.Keys()
}

// Iter returns the members in comparator order as a range-over-func
// sequence.
func (s *TreeSet[K]) Iter() iter.Seq[K] {
	return func(yield func(K) bool) {
		s.m.DFS(InOrder, func(n *Node[K, struct{}]) bool {
			return yield(n.Key())
		})
	}
}

// Ceiling returns the smallest member greater than or equal to target.
func (s *TreeSet[K]) Ceiling(target K) (K, bool) {
	return s.m.Ceiling(target)
}

// Floor returns the largest member less than or equal to target.
func (s *TreeSet[K]) Floor(target K) (K, bool) {
	return s.m.Floor(target)
}

// Min returns the smallest member.
func (s *TreeSet[K]) Min() (K, bool) {
	return nodeKey(s.m.GetLeftMost())
}

// Max returns the largest member.
func (s *TreeSet[K]) Max() (K, bool) {
	return nodeKey(s.m.GetRightMost())
}

// Union returns a new set holding every member of s and other.
func (s *TreeSet[K]) Union(other *TreeSet[K]) *TreeSet[K] {
	out := s.cloneEmpty()

	for k := range s.Iter() {
		out.Add(k)
	}

	for k := range other.Iter() {
		out.Add(k)
	}

	return out
}

// Intersection returns a new set holding the members present in both s and
// other.
func (s *TreeSet[K]) Intersection(other *TreeSet[K]) *TreeSet[K] {
	out := s.cloneEmpty()

	for k := range s.Iter() {
		if other.Has(k) {
			out.Add(k)
		}
	}

	return out
}

// Difference returns a new set holding the members of s absent from other.
func (s *TreeSet[K]) Difference(other *TreeSet[K]) *TreeSet[K] {
	out := s.cloneEmpty()

	for k := range s.Iter() {
		if !other.Has(k) {
			out.Add(k)
		}
	}

	return out
}

// cloneEmpty builds an empty set with the same options and comparator.
func (s *TreeSet[K]) cloneEmpty() *TreeSet[K] {
	m := RedBlackTree[K, struct{}]{BST: *newBSTFrom(s.m.bstOptions())}
	m.initSentinel()

	return &TreeSet[K]{m: m}
}

// String returns a one-line summary of the set.
func (s *TreeSet[K]) String() string {
	return fmt.Sprintf("TreeSet(size=%d)", s.m.Size())
}

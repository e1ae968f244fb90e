package tree

import (
	stdcmp "cmp"
	"fmt"

	"github.com/barnowlsnest/go-treelib/pkg/compare"
)

// TreeMultiMap is an ordered map with per-key multiplicity, backed by a
// red-black tree. Adding an existing key raises the node's count (and takes
// the latest value); deleting lowers it, and the node is removed when the
// count reaches zero.
//
// Size reports distinct keys; Count reports total multiplicity.
type TreeMultiMap[K comparable, V any] struct {
	RedBlackTree[K, V]
	total int
}

// NewMultiMap creates an empty multi-map ordered by the natural comparator
// of K.
func NewMultiMap[K stdcmp.Ordered, V any](opts ...Option[K, V]) (*TreeMultiMap[K, V], error) {
	rb, err := NewRedBlack[K, V](opts...)
	if err != nil {
		return nil, err
	}

	return &TreeMultiMap[K, V]{RedBlackTree: *rb}, nil
}

// NewMultiMapWith creates an empty multi-map ordered by a caller-supplied
// comparator.
func NewMultiMapWith[K comparable, V any](comparator compare.Comparator[K], opts ...Option[K, V]) (*TreeMultiMap[K, V], error) {
	rb, err := NewRedBlackWith[K, V](comparator, opts...)
	if err != nil {
		return nil, err
	}

	return &TreeMultiMap[K, V]{RedBlackTree: *rb}, nil
}

// String returns a one-line summary of the multi-map.
func (t *TreeMultiMap[K, V]) String() string {
	return fmt.Sprintf("TreeMultiMap(keys=%d, count=%d)", t.size, t.total)
}

// Count returns the total multiplicity across all keys.
func (t *TreeMultiMap[K, V]) Count() int {
	return t.total
}

// CountOf returns the multiplicity of a single key, zero when absent.
func (t *TreeMultiMap[K, V]) CountOf(key K) int {
	if n := t.GetNode(key); n != nil {
		return n.count
	}

	return 0
}

// Add records one occurrence of key. An existing key has its count raised
// and its value replaced; a new key is inserted with count one.
func (t *TreeMultiMap[K, V]) Add(key K, value V) bool {
	if n := t.GetNode(key); n != nil {
		n.count++
		n.value = value
		t.storePut(key, value)
		t.total++

		return true
	}

	if !t.RedBlackTree.Add(key, value) {
		return false
	}

	t.total++

	return true
}

// AddCount records several occurrences of key at once.
func (t *TreeMultiMap[K, V]) AddCount(key K, value V, count int) bool {
	if count <= 0 {
		return false
	}

	if !t.Add(key, value) {
		return false
	}

	if n := t.GetNode(key); n != nil && count > 1 {
		n.count += count - 1
		t.total += count - 1
	}

	return true
}

// Delete removes one occurrence of key. The node disappears when its count
// reaches zero. Returns false when the key is absent.
func (t *TreeMultiMap[K, V]) Delete(key K) bool {
	n := t.GetNode(key)
	if n == nil {
		return false
	}

	t.total--

	if n.count > 1 {
		n.count--

		return true
	}

	return len(t.RedBlackTree.DeleteNode(n)) > 0
}

// DeleteAll removes every occurrence of key. Returns false when the key is
// absent.
func (t *TreeMultiMap[K, V]) DeleteAll(key K) bool {
	n := t.GetNode(key)
	if n == nil {
		return false
	}

	t.total -= n.count

	return len(t.RedBlackTree.DeleteNode(n)) > 0
}

// Clear removes all keys and resets the multiplicity total.
func (t *TreeMultiMap[K, V]) Clear() {
	t.RedBlackTree.Clear()
	t.total = 0
}

// Merge folds another multi-map into this one, adding counts key by key.
// Values from the other map win on shared keys. The other map is unchanged.
func (t *TreeMultiMap[K, V]) Merge(other *TreeMultiMap[K, V]) {
	other.DFS(InOrder, func(n *Node[K, V]) bool {
		v, _ := other.storeGet(n)
		t.AddCount(n.key, v, n.count)

		return true
	})
}

// Clone creates a new multi-map with the same options, entries, and counts.
func (t *TreeMultiMap[K, V]) Clone() *TreeMultiMap[K, V] {
	clone := &TreeMultiMap[K, V]{RedBlackTree: RedBlackTree[K, V]{BST: *newBSTFrom(t.bstOptions())}}
	clone.initSentinel()

	t.BFS(func(n *Node[K, V]) bool {
		v, _ := t.storeGet(n)
		clone.AddCount(n.key, v, n.count)

		return true
	})

	if t.mapMode {
		clone.store = t.store
	}

	return clone
}

// TreeMultiSet is an ordered bag of keys with multiplicity, a thin adapter
// over TreeMultiMap that ignores values.
type TreeMultiSet[K comparable] struct {
	m TreeMultiMap[K, struct{}]
}

// NewMultiSet creates an empty multi-set ordered by the natural comparator
// of K.
func NewMultiSet[K stdcmp.Ordered](opts ...Option[K, struct{}]) (*TreeMultiSet[K], error) {
	m, err := NewMultiMap[K, struct{}](opts...)
	if err != nil {
		return nil, err
	}

	return &TreeMultiSet[K]{m: *m}, nil
}

// NewMultiSetWith creates an empty multi-set ordered by a caller-supplied
// comparator.
func NewMultiSetWith[K comparable](comparator compare.Comparator[K], opts ...Option[K, struct{}]) (*TreeMultiSet[K], error) {
	m, err := NewMultiMapWith[K, struct{}](comparator, opts...)
	if err != nil {
		return nil, err
	}

	return &TreeMultiSet[K]{m: *m}, nil
}

// Add records one occurrence of key.
func (s *TreeMultiSet[K]) Add(key K) bool {
	return s.m.Add(key, struct{}{})
}

// Delete removes one occurrence of key.
func (s *TreeMultiSet[K]) Delete(key K) bool {
	return s.m.Delete(key)
}

// DeleteAll removes every occurrence of key.
func (s *TreeMultiSet[K]) DeleteAll(key K) bool {
	return s.m.DeleteAll(key)
}

// Has reports whether key occurs at least once.
func (s *TreeMultiSet[K]) Has(key K) bool {
	return s.m.Has(key)
}

// CountOf returns the multiplicity of key.
func (s *TreeMultiSet[K]) CountOf(key K) int {
	return s.m.CountOf(key)
}

// Size returns the number of distinct keys.
func (s *TreeMultiSet[K]) Size() int {
	return s.m.Size()
}

// Count returns the total multiplicity across all keys.
func (s *TreeMultiSet[K]) Count() int {
	return s.m.Count()
}

// IsEmpty reports whether the multi-set holds no keys.
func (s *TreeMultiSet[K]) IsEmpty() bool {
	return s.m.IsEmpty()
}

// Clear removes all keys.
func (s *TreeMultiSet[K]) Clear() {
	s.m.Clear()
}

// Keys returns the distinct keys in comparator order.
func (s *TreeMultiSet[K]) Keys() []K {
	return s.m.Keys()
}

// Merge folds another multi-set into this one, adding counts.
func (s *TreeMultiSet[K]) Merge(other *TreeMultiSet[K]) {
	s.m.Merge(&other.m)
}

// String returns a one-line summary of the multi-set.
func (s *TreeMultiSet[K]) String() string {
	return fmt.Sprintf("TreeMultiSet(keys=%d, count=%d)", s.m.Size(), s.m.Count())
}

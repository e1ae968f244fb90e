package tree

import (
	"github.com/barnowlsnest/go-treelib/pkg/compare"
)

// IterationType selects the default engine behind every traversal-accepting
// operation. Iterative engines use explicit stacks and queues and are safe on
// trees deeper than the platform's comfortable recursion depth; recursive
// engines are simpler and height-bounded.
type IterationType int

const (
	Iterative IterationType = iota
	Recursive
)

// DFSOrder selects the visit order for depth-first traversals.
type DFSOrder int

const (
	InOrder DFSOrder = iota
	PreOrder
	PostOrder
)

// Entry is a key-value pair accepted by constructors and bulk loaders and
// produced by iteration.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// ToEntryFn maps a raw input item to an Entry, enabling trees to ingest
// heterogeneous iterables. The boolean reports whether the raw item resolved
// to an entry at all; false makes the add a no-op rather than an error.
type ToEntryFn[K comparable, V any] func(raw any) (Entry[K, V], bool)

// Visit is applied to each node during a traversal. The traversal continues
// while the function returns true; returning false stops it early.
type Visit[K comparable, V any] func(n *Node[K, V]) bool

// NodePredicate reports whether a node matches a search.
type NodePredicate[K comparable, V any] func(n *Node[K, V]) bool

type config[K comparable, V any] struct {
	iterationType IterationType
	mapMode       bool
	toEntry       ToEntryFn[K, V]
	comparator    compare.Comparator[K]
	reverse       bool
}

// Option configures a tree during construction.
type Option[K comparable, V any] func(c *config[K, V]) error

func defaultConfig[K comparable, V any]() config[K, V] {
	return config[K, V]{
		iterationType: Iterative,
		mapMode:       true,
	}
}

// WithIterationType sets the default traversal engine for the tree. Every
// traversal-accepting operation can still override it per call.
func WithIterationType[K comparable, V any](it IterationType) Option[K, V] {
	return func(c *config[K, V]) error {
		c.iterationType = it

		return nil
	}
}

// WithMapMode selects where values live. When enabled (the default) the tree
// keeps a key-to-value store beside the node structure; when disabled, the
// value is stored on the node itself.
func WithMapMode[K comparable, V any](enabled bool) Option[K, V] {
	return func(c *config[K, V]) error {
		c.mapMode = enabled

		return nil
	}
}

// WithToEntryFn installs the raw-item adapter used by AddRaw. A nil fn is an
// input-validation failure.
func WithToEntryFn[K comparable, V any](fn ToEntryFn[K, V]) Option[K, V] {
	return func(c *config[K, V]) error {
		if fn == nil {
			return ErrToEntryFn
		}

		c.toEntry = fn

		return nil
	}
}

// WithComparator overrides the key ordering on ordered variants. Ignored by
// the bag BinaryTree.
func WithComparator[K comparable, V any](cmp compare.Comparator[K]) Option[K, V] {
	return func(c *config[K, V]) error {
		if cmp == nil {
			return ErrComparator
		}

		c.comparator = cmp

		return nil
	}
}

// WithReverse inverts the sign of every comparison on ordered variants.
func WithReverse[K comparable, V any]() Option[K, V] {
	return func(c *config[K, V]) error {
		c.reverse = true

		return nil
	}
}

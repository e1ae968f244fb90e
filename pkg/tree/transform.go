package tree

import (
	"fmt"

	"github.com/barnowlsnest/go-treelib/pkg/compare"
)

// Search runs a predicate-driven search and projects each match through fn,
// returning the collected projections. With onlyOne set the search stops at
// the first match. Options select the subtree and engine.
func Search[K comparable, V, R any](t *BinaryTree[K, V], pred NodePredicate[K, V], onlyOne bool, fn func(n *Node[K, V]) R, opts ...TraverseOption[K, V]) []R {
	var out []R

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		if pred(n) {
			out = append(out, fn(n))
			if onlyOne {
				return false
			}
		}

		return true
	}, opts...)

	return out
}

// Map builds a new BST from src by transforming every entry, possibly into
// different key and value types. Entries are visited in order; the new
// tree's ordering comes from the supplied comparator.
func Map[K comparable, V any, K2 comparable, V2 any](src *BST[K, V], comparator compare.Comparator[K2], fn func(key K, value V) (K2, V2)) (*BST[K2, V2], error) {
	if comparator == nil {
		return nil, fmt.Errorf("map: %w", ErrComparator)
	}

	cfg := defaultConfig[K2, V2]()
	cfg.iterationType = src.iterationType
	cfg.mapMode = src.mapMode
	cfg.comparator = comparator

	out := newBSTFrom(cfg)

	src.DFS(InOrder, func(n *Node[K, V]) bool {
		v, _ := src.storeGet(n)
		out.Add(fn(n.key, v))

		return true
	})

	return out, nil
}

// MapBinary builds a new bag BinaryTree from src by transforming every
// entry, preserving the source's storage and iteration options.
func MapBinary[K comparable, V any, K2 comparable, V2 any](src *BinaryTree[K, V], fn func(key K, value V) (K2, V2)) *BinaryTree[K2, V2] {
	cfg := defaultConfig[K2, V2]()
	cfg.iterationType = src.iterationType
	cfg.mapMode = src.mapMode

	out := newBinaryTree(cfg)

	src.DFS(InOrder, func(n *Node[K, V]) bool {
		v, _ := src.storeGet(n)
		out.Add(fn(n.key, v))

		return true
	})

	return out
}

// Reduce folds the tree's entries in in-order into an accumulator.
func Reduce[K comparable, V, A any](t *BinaryTree[K, V], acc A, fn func(acc A, key K, value V) A) A {
	t.DFS(InOrder, func(n *Node[K, V]) bool {
		v, _ := t.storeGet(n)
		acc = fn(acc, n.key, v)

		return true
	})

	return acc
}

// Equal reports whether two trees hold the same entry sequence in in-order.
func Equal[K, V comparable](a, b *BinaryTree[K, V]) bool {
	if a.Size() != b.Size() {
		return false
	}

	ae := a.Entries()
	be := b.Entries()

	for i := range ae {
		if ae[i] != be[i] {
			return false
		}
	}

	return true
}

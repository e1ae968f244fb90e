package tree

import (
	stdcmp "cmp"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/barnowlsnest/go-treelib/pkg/compare"
)

// AVLTree extends BST with self-balancing: per-node height tracking and the
// four rotation cases applied on both insertion and deletion paths, keeping
// every node's subtree heights within one of each other and operations at
// O(log n).
type AVLTree[K comparable, V any] struct {
	BST[K, V]
}

// NewAVL creates an empty AVL tree ordered by the natural comparator of K.
func NewAVL[K stdcmp.Ordered, V any](opts ...Option[K, V]) (*AVLTree[K, V], error) {
	bst, err := NewBST[K, V](opts...)
	if err != nil {
		return nil, err
	}

	return &AVLTree[K, V]{BST: *bst}, nil
}

// NewAVLWith creates an empty AVL tree ordered by a caller-supplied
// comparator.
func NewAVLWith[K comparable, V any](comparator compare.Comparator[K], opts ...Option[K, V]) (*AVLTree[K, V], error) {
	bst, err := NewBSTWith[K, V](comparator, opts...)
	if err != nil {
		return nil, err
	}

	return &AVLTree[K, V]{BST: *bst}, nil
}

// String returns a one-line summary of the tree.
func (t *AVLTree[K, V]) String() string {
	return fmt.Sprintf("AVLTree(size=%d)", t.size)
}

// Add inserts a key-value pair in comparator order, then rebalances the
// path from the insertion point back to the root.
func (t *AVLTree[K, V]) Add(key K, value V) bool {
	return t.AddNode(NewNode(key, value))
}

// AddNode inserts an existing node and rebalances. Returns false when n is
// nil.
func (t *AVLTree[K, V]) AddNode(n *Node[K, V]) bool {
	if n == nil || !n.IsReal() {
		return false
	}

	at, isNew := t.insert(n)
	if isNew {
		t.balancePath(at)
	}

	return true
}

// AddMany bulk-loads entries with the same contract as BST.AddMany,
// maintaining height metadata throughout.
func (t *AVLTree[K, V]) AddMany(entries []Entry[K, V], balanced bool) int {
	if !balanced {
		added := 0

		for _, e := range entries {
			if t.Add(e.Key, e.Value) {
				added++
			}
		}

		return added
	}

	sorted := make([]Entry[K, V], len(entries))
	copy(sorted, entries)
	slices.SortFunc(sorted, func(a, b Entry[K, V]) int {
		return t.comparator(a.Key, b.Key)
	})

	return t.addManySorted(sorted)
}

func (t *AVLTree[K, V]) addManySorted(entries []Entry[K, V]) int {
	if len(entries) == 0 {
		return 0
	}

	m := len(entries) / 2

	added := 0
	if t.Add(entries[m].Key, entries[m].Value) {
		added++
	}

	added += t.addManySorted(entries[:m])
	added += t.addManySorted(entries[m+1:])

	return added
}

// Delete removes the entry with the given key, then rebalances upward from
// the deepest node whose subtree shape changed.
func (t *AVLTree[K, V]) Delete(key K) []DeletionResult[K, V] {
	return t.DeleteNode(t.GetNode(key))
}

// DeleteNode removes the given node and rebalances.
func (t *AVLTree[K, V]) DeleteNode(n *Node[K, V]) []DeletionResult[K, V] {
	results := t.BST.DeleteNode(n)

	for _, res := range results {
		if res.NeedBalanced != nil {
			t.balancePath(res.NeedBalanced)
		} else if t.realRoot() != nil {
			t.balancePath(t.realRoot())
		}
	}

	return results
}

// DeleteWhere removes every node matching the predicate, or only the first
// when onlyOne is set, rebalancing after each deletion.
func (t *AVLTree[K, V]) DeleteWhere(pred NodePredicate[K, V], onlyOne bool) []DeletionResult[K, V] {
	matches := t.GetNodes(pred, onlyOne)

	var results []DeletionResult[K, V]
	for _, n := range matches {
		results = append(results, t.DeleteNode(n)...)
	}

	return results
}

// PerfectlyBalance rebuilds the tree median-first from its sorted entries,
// re-establishing height metadata as it goes.
func (t *AVLTree[K, V]) PerfectlyBalance() bool {
	entries := t.Entries()
	if len(entries) == 0 {
		return false
	}

	t.Clear()
	t.addManySorted(entries)

	return true
}

// Clone creates a new AVL tree with the same options and entries. The
// breadth-first replay reproduces the source's arrangement; heights are
// rebuilt by the balancing inserts.
func (t *AVLTree[K, V]) Clone() *AVLTree[K, V] {
	clone := &AVLTree[K, V]{BST: *newBSTFrom(t.bstOptions())}
	t.cloneOrderedInto(&clone.BinaryTree, clone.Add)

	return clone
}

// Filter builds a new AVL tree holding only the entries the predicate
// accepts. The source is unchanged.
func (t *AVLTree[K, V]) Filter(pred func(key K, value V) bool) *AVLTree[K, V] {
	out := &AVLTree[K, V]{BST: *newBSTFrom(t.bstOptions())}

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		if v, _ := t.storeGet(n); pred(n.key, v) {
			out.Add(n.key, v)
		}

		return true
	})

	return out
}

// --- balancing -------------------------------------------------------------

// subtreeHeight reads stored height metadata with the empty-subtree
// convention of -1.
func (t *AVLTree[K, V]) subtreeHeight(n *Node[K, V]) int {
	if n == nil {
		return -1
	}

	return n.height
}

// updateHeight recomputes n's height from its children.
func (t *AVLTree[K, V]) updateHeight(n *Node[K, V]) {
	n.height = 1 + max(t.subtreeHeight(n.realLeft()), t.subtreeHeight(n.realRight()))
}

// balanceFactor is height(right) - height(left).
func (t *AVLTree[K, V]) balanceFactor(n *Node[K, V]) int {
	return t.subtreeHeight(n.realRight()) - t.subtreeHeight(n.realLeft())
}

// balancePath walks from the touched node to the root. Each ancestor gets
// its height refreshed and, when its balance factor leaves {-1, 0, 1}, the
// matching rotation case. The walk continues past rotations because upper
// ancestors may still be unbalanced.
func (t *AVLTree[K, V]) balancePath(touched *Node[K, V]) {
	for _, a := range t.GetPathToRoot(touched, false) {
		t.updateHeight(a)

		switch bf := t.balanceFactor(a); {
		case bf < -1:
			if t.balanceFactor(a.realLeft()) <= 0 {
				t.balanceLL(a)
			} else {
				t.balanceLR(a)
			}
		case bf > 1:
			if t.balanceFactor(a.realRight()) >= 0 {
				t.balanceRR(a)
			} else {
				t.balanceRL(a)
			}
		}
	}
}

// balanceLL handles the left-left case with a single right rotation
// around a.
func (t *AVLTree[K, V]) balanceLL(a *Node[K, V]) {
	b := a.realLeft()
	t.rotateRight(a)
	t.updateHeight(a)
	t.updateHeight(b)
}

// balanceLR handles the left-right case: left rotation on a's left child,
// then right rotation around a.
func (t *AVLTree[K, V]) balanceLR(a *Node[K, V]) {
	b := a.realLeft()
	c := b.realRight()

	t.rotateLeft(b)
	t.rotateRight(a)

	t.updateHeight(a)
	t.updateHeight(b)
	t.updateHeight(c)
}

// balanceRR handles the right-right case with a single left rotation
// around a.
func (t *AVLTree[K, V]) balanceRR(a *Node[K, V]) {
	b := a.realRight()
	t.rotateLeft(a)
	t.updateHeight(a)
	t.updateHeight(b)
}

// balanceRL handles the right-left case: right rotation on a's right child,
// then left rotation around a.
func (t *AVLTree[K, V]) balanceRL(a *Node[K, V]) {
	b := a.realRight()
	c := b.realLeft()

	t.rotateRight(b)
	t.rotateLeft(a)

	t.updateHeight(a)
	t.updateHeight(b)
	t.updateHeight(c)
}

package tree

import (
	stdcmp "cmp"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/barnowlsnest/go-treelib/pkg/compare"
)

// RedBlackTree extends BST with color-based balancing: every node is red or
// black, the root is black, red nodes have black children, and every path
// from a node to a descendant leaf crosses the same number of black nodes.
// Together these bound the height at O(log n).
//
// Unset child slots point at a per-tree NIL sentinel, which simplifies the
// fixup cases. The sentinel never appears in traversals, search results, or
// the size.
type RedBlackTree[K comparable, V any] struct {
	BST[K, V]
}

// NewRedBlack creates an empty red-black tree ordered by the natural
// comparator of K.
func NewRedBlack[K stdcmp.Ordered, V any](opts ...Option[K, V]) (*RedBlackTree[K, V], error) {
	bst, err := NewBST[K, V](opts...)
	if err != nil {
		return nil, err
	}

	t := &RedBlackTree[K, V]{BST: *bst}
	t.initSentinel()

	return t, nil
}

// NewRedBlackWith creates an empty red-black tree ordered by a
// caller-supplied comparator.
func NewRedBlackWith[K comparable, V any](comparator compare.Comparator[K], opts ...Option[K, V]) (*RedBlackTree[K, V], error) {
	bst, err := NewBSTWith[K, V](comparator, opts...)
	if err != nil {
		return nil, err
	}

	t := &RedBlackTree[K, V]{BST: *bst}
	t.initSentinel()

	return t, nil
}

func (t *RedBlackTree[K, V]) initSentinel() {
	t.nilNode = newNILNode[K, V]()
	t.nilNode.parent = t.nilNode
	t.root = t.nilNode
}

// String returns a one-line summary of the tree.
func (t *RedBlackTree[K, V]) String() string {
	return fmt.Sprintf("RedBlackTree(size=%d)", t.size)
}

// NIL returns the tree's sentinel node.
func (t *RedBlackTree[K, V]) NIL() *Node[K, V] {
	return t.nilNode
}

// Clear removes all nodes and re-roots the tree at its sentinel.
func (t *RedBlackTree[K, V]) Clear() {
	t.BinaryTree.Clear()
	t.root = t.nilNode
}

// nodeColor reads a node's color with absent slots counting as black.
func (t *RedBlackTree[K, V]) nodeColor(n *Node[K, V]) Color {
	if t.isAbsent(n) {
		return Black
	}

	return n.color
}

func (t *RedBlackTree[K, V]) isRed(n *Node[K, V]) bool {
	return t.nodeColor(n) == Red
}

// setColor colors a node unless it is the sentinel.
func (t *RedBlackTree[K, V]) setColor(n *Node[K, V], c Color) {
	if !t.isAbsent(n) {
		n.color = c
	}
}

// --- add -------------------------------------------------------------------

// Add inserts a key-value pair and restores the red-black invariants.
// Adding an existing key replaces the mapped value without a fixup.
func (t *RedBlackTree[K, V]) Add(key K, value V) bool {
	return t.AddNode(NewNode(key, value))
}

// AddNode inserts an existing node with the same contract as Add. Returns
// false when n is nil.
func (t *RedBlackTree[K, V]) AddNode(n *Node[K, V]) bool {
	if n == nil || !n.IsReal() {
		return false
	}

	n.left = t.nilNode
	n.right = t.nilNode

	if t.isAbsent(t.root) {
		n.parent = t.nilNode
		n.color = Black
		t.root = n
		t.size++
		t.storePut(n.key, n.value)

		return true
	}

	parent := t.root

	for {
		c := t.comparator(n.key, parent.key)

		switch {
		case c == 0:
			parent.value = n.value
			t.storePut(n.key, n.value)

			return true

		case c < 0:
			if t.isAbsent(parent.left) {
				parent.left = n
				n.parent = parent
				n.color = Red
				t.size++
				t.storePut(n.key, n.value)
				t.insertFixup(n)

				return true
			}

			parent = parent.left

		default:
			if t.isAbsent(parent.right) {
				parent.right = n
				n.parent = parent
				n.color = Red
				t.size++
				t.storePut(n.key, n.value)
				t.insertFixup(n)

				return true
			}

			parent = parent.right
		}
	}
}

// AddMany bulk-loads entries. With balanced set the entries are sorted and
// added median-first; the fixup pass keeps the tree balanced either way, so
// the flag mainly shapes the insertion order.
func (t *RedBlackTree[K, V]) AddMany(entries []Entry[K, V], balanced bool) int {
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

	return t.addSortedMedian(sorted)
}

func (t *RedBlackTree[K, V]) addSortedMedian(entries []Entry[K, V]) int {
	if len(entries) == 0 {
		return 0
	}

	m := len(entries) / 2

	added := 0
	if t.Add(entries[m].Key, entries[m].Value) {
		added++
	}

	added += t.addSortedMedian(entries[:m])
	added += t.addSortedMedian(entries[m+1:])

	return added
}

// PerfectlyBalance rebuilds the tree median-first from its sorted entries.
func (t *RedBlackTree[K, V]) PerfectlyBalance() bool {
	entries := t.Entries()
	if len(entries) == 0 {
		return false
	}

	t.Clear()
	t.addSortedMedian(entries)

	return true
}

// DeleteWhere removes every node matching the predicate, or only the first
// when onlyOne is set, keeping the red-black invariants intact.
func (t *RedBlackTree[K, V]) DeleteWhere(pred NodePredicate[K, V], onlyOne bool) []DeletionResult[K, V] {
	matches := t.GetNodes(pred, onlyOne)

	// DeleteNode may move a successor's entry into the node it removes and
	// detach the successor's node, so matches are deleted by key.
	keys := make([]K, 0, len(matches))
	for _, n := range matches {
		keys = append(keys, n.key)
	}

	var results []DeletionResult[K, V]
	for _, k := range keys {
		results = append(results, t.Delete(k)...)
	}

	return results
}

// insertFixup walks up from the freshly inserted red node, recoloring or
// rotating based on the uncle's color until no red node has a red parent,
// then blackens the root.
func (t *RedBlackTree[K, V]) insertFixup(z *Node[K, V]) {
	for t.isRed(z.parent) {
		gp := z.parent.parent

		if z.parent == gp.left {
			uncle := gp.right

			if t.isRed(uncle) {
				t.setColor(z.parent, Black)
				t.setColor(uncle, Black)
				t.setColor(gp, Red)
				z = gp
			} else {
				if z == z.parent.right {
					z = z.parent
					t.rotateLeft(z)
				}

				t.setColor(z.parent, Black)
				t.setColor(z.parent.parent, Red)
				t.rotateRight(z.parent.parent)
			}
		} else {
			uncle := gp.left

			if t.isRed(uncle) {
				t.setColor(z.parent, Black)
				t.setColor(uncle, Black)
				t.setColor(gp, Red)
				z = gp
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rotateRight(z)
				}

				t.setColor(z.parent, Black)
				t.setColor(z.parent.parent, Red)
				t.rotateLeft(z.parent.parent)
			}
		}
	}

	t.setColor(t.root, Black)
}

// --- delete ----------------------------------------------------------------

// Delete removes the entry with the given key and restores the red-black
// invariants. A key that resolves to no node yields an empty result.
func (t *RedBlackTree[K, V]) Delete(key K) []DeletionResult[K, V] {
	return t.DeleteNode(t.GetNode(key))
}

// DeleteNode removes the given node with the same contract as Delete.
func (t *RedBlackTree[K, V]) DeleteNode(z *Node[K, V]) []DeletionResult[K, V] {
	if z == nil || !z.IsReal() {
		return nil
	}

	delKey, delVal, delCount := z.key, z.value, z.count

	// y is the node physically spliced out: z itself when it has at most
	// one real child, its in-order successor otherwise.
	var y *Node[K, V]
	if t.isAbsent(z.left) || t.isAbsent(z.right) {
		y = z
	} else {
		y = z.right
		for !t.isAbsent(y.left) {
			y = y.left
		}
	}

	x := y.left
	if t.isAbsent(x) {
		x = y.right
	}

	// Splice y out. The sentinel temporarily borrows a parent link so the
	// fixup can navigate from x even when x is NIL.
	x.parent = y.parent

	needBalanced := y.realParent()

	if t.isAbsent(y.parent) {
		t.root = x
	} else if y == y.parent.left {
		y.parent.left = x
	} else {
		y.parent.right = x
	}

	if y != z {
		z.key, z.value, z.count = y.key, y.value, y.count
	}

	if t.nodeColor(y) == Black {
		t.deleteFixup(x)
	}

	t.resetSentinel()
	t.size--
	t.storeDelete(delKey)

	y.key, y.value, y.count = delKey, delVal, delCount
	y.parent = nil
	y.left = nil
	y.right = nil

	return []DeletionResult[K, V]{{Deleted: y, NeedBalanced: needBalanced}}
}

// deleteFixup resolves the double-black introduced by splicing out a black
// node, handling the four sibling cases on each side until x carries a real
// black again.
func (t *RedBlackTree[K, V]) deleteFixup(x *Node[K, V]) {
	for x != t.root && t.nodeColor(x) == Black {
		if x == x.parent.left {
			w := x.parent.right

			if t.isRed(w) {
				// Case 1: red sibling.
				t.setColor(w, Black)
				t.setColor(x.parent, Red)
				t.rotateLeft(x.parent)
				w = x.parent.right
			}

			if t.nodeColor(w.left) == Black && t.nodeColor(w.right) == Black {
				// Case 2: sibling and both its children black.
				t.setColor(w, Red)
				x = x.parent
			} else {
				if t.nodeColor(w.right) == Black {
					// Case 3: sibling's far child black.
					t.setColor(w.left, Black)
					t.setColor(w, Red)
					t.rotateRight(w)
					w = x.parent.right
				}

				// Case 4: sibling's far child red.
				t.setColor(w, t.nodeColor(x.parent))
				t.setColor(x.parent, Black)
				t.setColor(w.right, Black)
				t.rotateLeft(x.parent)
				x = t.root
			}
		} else {
			w := x.parent.left

			if t.isRed(w) {
				t.setColor(w, Black)
				t.setColor(x.parent, Red)
				t.rotateRight(x.parent)
				w = x.parent.left
			}

			if t.nodeColor(w.right) == Black && t.nodeColor(w.left) == Black {
				t.setColor(w, Red)
				x = x.parent
			} else {
				if t.nodeColor(w.left) == Black {
					t.setColor(w.right, Black)
					t.setColor(w, Red)
					t.rotateLeft(w)
					w = x.parent.left
				}

				t.setColor(w, t.nodeColor(x.parent))
				t.setColor(x.parent, Black)
				t.setColor(w.left, Black)
				t.rotateRight(x.parent)
				x = t.root
			}
		}
	}

	t.setColor(x, Black)
}

// resetSentinel re-initializes the sentinel after a deletion may have
// borrowed its parent link.
func (t *RedBlackTree[K, V]) resetSentinel() {
	t.nilNode.left = nil
	t.nilNode.right = nil
	t.nilNode.parent = t.nilNode
	t.nilNode.color = Black
}

// --- validation ------------------------------------------------------------

// Validate checks the red-black invariants: a black root, no red node with
// a red child, and a uniform black count on every root-to-leaf path.
// Returns nil when the tree is valid.
func (t *RedBlackTree[K, V]) Validate() error {
	root := t.realRoot()
	if root == nil {
		return nil
	}

	if t.nodeColor(root) != Black {
		return fmt.Errorf("validate: root %v is not black", root.key)
	}

	_, err := t.blackHeight(root)

	return err
}

func (t *RedBlackTree[K, V]) blackHeight(n *Node[K, V]) (int, error) {
	if n == nil {
		return 1, nil
	}

	if t.isRed(n) && (t.isRed(n.realLeft()) || t.isRed(n.realRight())) {
		return 0, fmt.Errorf("validate: red node %v has a red child", n.key)
	}

	lh, err := t.blackHeight(n.realLeft())
	if err != nil {
		return 0, err
	}

	rh, err := t.blackHeight(n.realRight())
	if err != nil {
		return 0, err
	}

	if lh != rh {
		return 0, fmt.Errorf("validate: black height mismatch at %v", n.key)
	}

	if t.nodeColor(n) == Black {
		lh++
	}

	return lh, nil
}

// --- clone / filter --------------------------------------------------------

// Clone creates a new red-black tree with the same options and entries. In
// map mode the clone shares the value store by reference with the original.
func (t *RedBlackTree[K, V]) Clone() *RedBlackTree[K, V] {
	clone := &RedBlackTree[K, V]{BST: *newBSTFrom(t.bstOptions())}
	clone.initSentinel()
	t.cloneOrderedInto(&clone.BinaryTree, clone.Add)

	return clone
}

// Filter builds a new red-black tree holding only the entries the predicate
// accepts. The source is unchanged.
func (t *RedBlackTree[K, V]) Filter(pred func(key K, value V) bool) *RedBlackTree[K, V] {
	out := &RedBlackTree[K, V]{BST: *newBSTFrom(t.bstOptions())}
	out.initSentinel()

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		if v, _ := t.storeGet(n); pred(n.key, v) {
			out.Add(n.key, v)
		}

		return true
	})

	return out
}

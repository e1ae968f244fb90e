package tree

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/barnowlsnest/go-treelib/pkg/list"
)

// BinaryTree owns the root slot of a binary tree and provides the structural
// substrate shared by every variant: level-order bag insertion, deletion by
// key, predicate search, traversal engines, structural queries, cloning, and
// rendering.
//
// Add places entries into the first free slot in level order, producing a
// compact heap-like shape; ordered variants override Add to honor key order
// instead.
//
// Child slots are tri-state: an empty slot (nil) is an insertion target; an
// explicit-null placeholder occupies a slot without holding an entry and is
// surfaced only by include-null traversals; red-black variants use a
// per-tree NIL sentinel for unset slots. Placeholders and sentinels never
// count toward Size.
//
// Thread Safety:
// BinaryTree is not thread-safe. Concurrent access requires external
// synchronization.
type BinaryTree[K comparable, V any] struct {
	id            uuid.UUID
	root          *Node[K, V]
	size          int
	iterationType IterationType
	mapMode       bool
	store         map[K]V
	toEntry       ToEntryFn[K, V]

	// nilNode is the shared NIL sentinel on red-black variants and nil
	// everywhere else. Traversal engines consult it to restore unset child
	// slots to the tree's own notion of absence.
	nilNode *Node[K, V]
}

// DeletionResult reports one deletion: the detached node carrying the
// removed entry and the parent-most node whose subtree shape changed, which
// balanced variants re-examine.
type DeletionResult[K comparable, V any] struct {
	Deleted      *Node[K, V]
	NeedBalanced *Node[K, V]
}

// New creates a new empty BinaryTree.
func New[K comparable, V any](opts ...Option[K, V]) (*BinaryTree[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return newBinaryTree(cfg), nil
}

func newBinaryTree[K comparable, V any](cfg config[K, V]) *BinaryTree[K, V] {
	t := &BinaryTree[K, V]{
		id:            uuid.New(),
		iterationType: cfg.iterationType,
		mapMode:       cfg.mapMode,
		toEntry:       cfg.toEntry,
	}
	if t.mapMode {
		t.store = make(map[K]V)
	}

	return t
}

// ID returns the tree's instance identity. Clones receive a fresh identity
// so a tree and its clone remain distinguishable even while sharing a
// map-mode value store.
func (t *BinaryTree[K, V]) ID() uuid.UUID {
	return t.id
}

// Root returns the topmost node, or nil if the tree is empty.
func (t *BinaryTree[K, V]) Root() *Node[K, V] {
	return t.root
}

// Size returns the number of real nodes in the tree. Placeholders and
// sentinels are not counted.
func (t *BinaryTree[K, V]) Size() int {
	return t.size
}

// IsEmpty returns true if the tree contains no real nodes.
func (t *BinaryTree[K, V]) IsEmpty() bool {
	return t.size == 0
}

// IterationType returns the tree's default traversal engine.
func (t *BinaryTree[K, V]) IterationType() IterationType {
	return t.iterationType
}

// IsMapMode reports whether values live in the tree's key-to-value store
// rather than on the nodes.
func (t *BinaryTree[K, V]) IsMapMode() bool {
	return t.mapMode
}

// Clear removes all nodes. In map mode the value store is cleared as well.
func (t *BinaryTree[K, V]) Clear() {
	t.root = nil
	t.size = 0

	if t.mapMode {
		t.store = make(map[K]V)
	}
}

// String returns a one-line summary of the tree.
func (t *BinaryTree[K, V]) String() string {
	return fmt.Sprintf("BinaryTree(size=%d)", t.size)
}

// --- value store -----------------------------------------------------------

func (t *BinaryTree[K, V]) storePut(key K, value V) {
	if t.mapMode {
		t.store[key] = value
	}
}

func (t *BinaryTree[K, V]) storeGet(n *Node[K, V]) (V, bool) {
	if t.mapMode {
		v, ok := t.store[n.key]

		return v, ok
	}

	return n.value, true
}

func (t *BinaryTree[K, V]) storeDelete(key K) {
	if t.mapMode {
		delete(t.store, key)
	}
}

// absent is the tree's representation of an unset child slot: the NIL
// sentinel on red-black variants, nil everywhere else.
func (t *BinaryTree[K, V]) absent() *Node[K, V] {
	return t.nilNode
}

// isAbsent reports whether a raw child pointer represents no node at all.
func (t *BinaryTree[K, V]) isAbsent(n *Node[K, V]) bool {
	return n == nil || n.IsSentinel()
}

// --- add -------------------------------------------------------------------

// Add inserts a key-value pair using level-order bag placement.
//
// If a node with an equal key is encountered during the scan it is replaced
// in place and the value updated; otherwise the entry lands in the first
// empty child slot found in level order. Explicit-null placeholders occupy
// their slots: they are neither insertion targets nor descended through.
//
// Returns true unless no slot could be found (a tree whose fringe is fully
// occupied by placeholders).
func (t *BinaryTree[K, V]) Add(key K, value V) bool {
	return t.AddNode(NewNode(key, value))
}

// AddNode inserts an existing node using the same level-order bag placement
// as Add. Returns false when n is nil.
func (t *BinaryTree[K, V]) AddNode(n *Node[K, V]) bool {
	if n == nil || !n.IsReal() {
		return false
	}

	n.parent = nil
	n.left = nil
	n.right = nil

	if t.root == nil {
		t.root = n
		t.size = 1
		t.storePut(n.key, n.value)

		return true
	}

	q := list.NewQueue[*Node[K, V]]()
	q.Enqueue(t.root)

	for !q.IsEmpty() {
		cur, _ := q.Dequeue()

		if cur.key == n.key {
			t.replaceInPlace(cur, n)
			t.storePut(n.key, n.value)

			return true
		}

		if done := t.placeOrDescend(q, cur, n); done {
			return true
		}
	}

	return false
}

// placeOrDescend examines cur's child slots left-to-right: an empty slot
// receives n, a real child is enqueued, an explicit-null placeholder is
// passed over entirely. The branch shape preserves the empty versus
// explicit-null distinction that include-null traversals depend on.
func (t *BinaryTree[K, V]) placeOrDescend(q *list.Queue[*Node[K, V]], cur, n *Node[K, V]) bool {
	if cur.left == nil {
		cur.SetLeft(n)
		t.size++
		t.storePut(n.key, n.value)

		return true
	} else if cur.left.IsReal() {
		q.Enqueue(cur.left)
	}

	if cur.right == nil {
		cur.SetRight(n)
		t.size++
		t.storePut(n.key, n.value)

		return true
	} else if cur.right.IsReal() {
		q.Enqueue(cur.right)
	}

	return false
}

// AddNull places an explicit-null placeholder into the first empty child
// slot in level order. Placeholders preserve shape for include-null
// traversals and serialization; they hold no entry and do not affect Size.
//
// Returns false on an empty tree or when no empty slot exists.
func (t *BinaryTree[K, V]) AddNull() bool {
	if t.root == nil {
		return false
	}

	marker := newNullNode[K, V]()

	q := list.NewQueue[*Node[K, V]]()
	q.Enqueue(t.root)

	for !q.IsEmpty() {
		cur, _ := q.Dequeue()

		if cur.left == nil {
			cur.SetLeft(marker)

			return true
		} else if cur.left.IsReal() {
			q.Enqueue(cur.left)
		}

		if cur.right == nil {
			cur.SetRight(marker)

			return true
		} else if cur.right.IsReal() {
			q.Enqueue(cur.right)
		}
	}

	return false
}

// AddRaw resolves a raw item through the tree's to-entry fn and adds the
// result. Items the fn declines resolve to a no-op, reported as false.
func (t *BinaryTree[K, V]) AddRaw(raw any) (bool, error) {
	if t.toEntry == nil {
		return false, fmt.Errorf("add raw: %w", ErrToEntryFn)
	}

	entry, ok := t.toEntry(raw)
	if !ok {
		return false, nil
	}

	return t.Add(entry.Key, entry.Value), nil
}

// AddMany adds entries in iteration order and returns how many landed.
func (t *BinaryTree[K, V]) AddMany(entries []Entry[K, V]) int {
	added := 0

	for _, e := range entries {
		if t.Add(e.Key, e.Value) {
			added++
		}
	}

	return added
}

// replaceInPlace splices n into cur's structural position: cur's children
// and parent slot transfer to n. cur is left detached.
func (t *BinaryTree[K, V]) replaceInPlace(cur, n *Node[K, V]) {
	n.height = cur.height
	n.color = cur.color
	n.count = cur.count

	if cur.left != n {
		n.SetLeft(cur.left)
	}

	if cur.right != n {
		n.SetRight(cur.right)
	}

	switch p := cur.realParent(); {
	case p == nil:
		n.parent = nil
		t.root = n
	case p.left == cur:
		p.SetLeft(n)
	default:
		p.SetRight(n)
	}

	cur.parent = nil
	cur.left = nil
	cur.right = nil
}

// --- delete ----------------------------------------------------------------

// Delete removes the entry with the given key.
//
// The bag layout is preserved by swapping the rightmost descendant of the
// left subtree into the vacated position. The result names the detached node
// and the parent-most node whose subtree shape changed; balanced variants
// re-examine the latter.
//
// A key that resolves to no node yields an empty result, not an error.
func (t *BinaryTree[K, V]) Delete(key K) []DeletionResult[K, V] {
	return t.DeleteNode(t.GetNode(key))
}

// DeleteNode removes the given node from the tree with the same contract as
// Delete.
func (t *BinaryTree[K, V]) DeleteNode(cur *Node[K, V]) []DeletionResult[K, V] {
	if cur == nil || !cur.IsReal() {
		return nil
	}

	delKey, delVal := cur.key, cur.value
	results := make([]DeletionResult[K, V], 0, 1)

	switch {
	case cur.realParent() == nil && cur.realLeft() == nil && cur.realRight() == nil:
		// Lone root.
		t.root = nil
		cur.parent = nil
		results = append(results, DeletionResult[K, V]{Deleted: cur})

	case cur.realLeft() != nil:
		// Swap the rightmost descendant of the left subtree into the
		// target slot, then detach it.
		rm := cur.realLeft()
		for rm.realRight() != nil {
			rm = rm.realRight()
		}

		cur.key, cur.value = rm.key, rm.value

		needBalanced := rm.realParent()
		if needBalanced.left == rm {
			needBalanced.SetLeft(rm.realLeft())
		} else {
			needBalanced.SetRight(rm.realLeft())
		}

		rm.key, rm.value = delKey, delVal
		rm.parent = nil
		rm.left = nil
		rm.right = nil
		results = append(results, DeletionResult[K, V]{Deleted: rm, NeedBalanced: needBalanced})

	case cur.realParent() != nil:
		// No left subtree: the right child, present or not, takes the
		// target's slot.
		parent := cur.realParent()
		if parent.left == cur {
			parent.SetLeft(cur.realRight())
		} else {
			parent.SetRight(cur.realRight())
		}

		cur.parent = nil
		cur.left = nil
		cur.right = nil
		results = append(results, DeletionResult[K, V]{Deleted: cur, NeedBalanced: parent})

	default:
		// Root with only a right child: promote it.
		promoted := cur.realRight()
		promoted.parent = nil
		t.root = promoted

		cur.left = nil
		cur.right = nil
		results = append(results, DeletionResult[K, V]{Deleted: cur})
	}

	t.size--
	t.storeDelete(delKey)

	return results
}

// --- lookup ----------------------------------------------------------------

// GetNode finds the node holding the given key, or nil.
func (t *BinaryTree[K, V]) GetNode(key K) *Node[K, V] {
	var found *Node[K, V]

	t.BFS(func(n *Node[K, V]) bool {
		if n.key == key {
			found = n

			return false
		}

		return true
	})

	return found
}

// GetNodes collects every node matching the predicate in depth-first
// in-order. With onlyOne set the search stops at the first match.
func (t *BinaryTree[K, V]) GetNodes(pred NodePredicate[K, V], onlyOne bool, opts ...TraverseOption[K, V]) []*Node[K, V] {
	var matches []*Node[K, V]

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		if pred(n) {
			matches = append(matches, n)
			if onlyOne {
				return false
			}
		}

		return true
	}, opts...)

	return matches
}

// Get returns the value mapped to key. In map mode the value store answers;
// in node mode the node's value field does.
func (t *BinaryTree[K, V]) Get(key K) (V, bool) {
	if t.mapMode {
		v, ok := t.store[key]

		return v, ok
	}

	if n := t.GetNode(key); n != nil {
		return n.value, true
	}

	var zero V

	return zero, false
}

// Has reports whether the key is present in the tree.
func (t *BinaryTree[K, V]) Has(key K) bool {
	if t.mapMode {
		_, ok := t.store[key]

		return ok
	}

	return t.GetNode(key) != nil
}

// --- bulk reads ------------------------------------------------------------

// Keys returns all keys in depth-first in-order.
func (t *BinaryTree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		keys = append(keys, n.key)

		return true
	})

	return keys
}

// Values returns all values in depth-first in-order.
func (t *BinaryTree[K, V]) Values() []V {
	values := make([]V, 0, t.size)

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		v, _ := t.storeGet(n)
		values = append(values, v)

		return true
	})

	return values
}

// Entries returns all key-value pairs in depth-first in-order.
func (t *BinaryTree[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, t.size)

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		v, _ := t.storeGet(n)
		entries = append(entries, Entry[K, V]{Key: n.key, Value: v})

		return true
	})

	return entries
}

// Leaves returns every real node without children, in in-order.
func (t *BinaryTree[K, V]) Leaves() []*Node[K, V] {
	return t.GetNodes(func(n *Node[K, V]) bool {
		return n.IsLeaf()
	}, false)
}

// --- clone / filter --------------------------------------------------------

// Clone creates a new tree with the same options and shape.
//
// The source is walked breadth-first with null positions included, so the
// clone reproduces the exact shape with explicit-null placeholders standing
// in for every absent fringe slot. In map mode the clone shares the value
// store by reference with the original; callers requiring independence must
// deep-copy the store themselves.
func (t *BinaryTree[K, V]) Clone() *BinaryTree[K, V] {
	clone := newBinaryTree(t.options())
	t.cloneShapeInto(clone)

	if t.mapMode {
		clone.store = t.store
	}

	return clone
}

// shapeAdder is the narrow surface cloneShapeInto needs: bag placement of
// entries and placeholders.
type shapeAdder[K comparable, V any] interface {
	Add(key K, value V) bool
	AddNull() bool
}

// cloneShapeInto replays this tree's include-null breadth-first stream into
// dst, reproducing the shape slot by slot.
func (t *BinaryTree[K, V]) cloneShapeInto(dst shapeAdder[K, V]) {
	t.BFS(func(n *Node[K, V]) bool {
		if n.IsReal() {
			v, _ := t.storeGet(n)
			dst.Add(n.key, v)
		} else {
			dst.AddNull()
		}

		return true
	}, WithNulls[K, V]())
}

// options reconstructs the config this tree was built with.
func (t *BinaryTree[K, V]) options() config[K, V] {
	return config[K, V]{
		iterationType: t.iterationType,
		mapMode:       t.mapMode,
		toEntry:       t.toEntry,
	}
}

// Filter builds a new tree of the same options holding only the entries the
// predicate accepts, visited in in-order. The source is unchanged.
func (t *BinaryTree[K, V]) Filter(pred func(key K, value V) bool) *BinaryTree[K, V] {
	out := newBinaryTree(t.options())

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		if v, _ := t.storeGet(n); pred(n.key, v) {
			out.Add(n.key, v)
		}

		return true
	})

	return out
}

package tree

import (
	stdcmp "cmp"
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/barnowlsnest/go-treelib/pkg/compare"
	"github.com/barnowlsnest/go-treelib/pkg/list"
)

// BST specializes BinaryTree with a comparator-ordered key space: for any
// node, all keys in its left subtree compare less and all keys in its right
// subtree compare greater. Duplicates are not kept; adding an existing key
// replaces the mapped value.
//
// Ordered operations treat explicit-null placeholders as empty slots.
//
// Thread Safety:
// BST is not thread-safe for mutation. GetMany performs concurrent reads
// only and relies on the caller to exclude writers for its duration.
type BST[K comparable, V any] struct {
	BinaryTree[K, V]
	comparator compare.Comparator[K]
}

// NewBST creates an empty BST ordered by the natural comparator of K.
func NewBST[K stdcmp.Ordered, V any](opts ...Option[K, V]) (*BST[K, V], error) {
	cfg := defaultConfig[K, V]()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.comparator == nil {
		cfg.comparator = compare.Ordered[K]()
	}

	return newBSTFrom(cfg), nil
}

// NewBSTWith creates an empty BST ordered by a caller-supplied comparator,
// for key types without a natural order.
func NewBSTWith[K comparable, V any](comparator compare.Comparator[K], opts ...Option[K, V]) (*BST[K, V], error) {
	cfg := defaultConfig[K, V]()
	cfg.comparator = comparator

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.comparator == nil {
		return nil, fmt.Errorf("new bst: %w", ErrComparator)
	}

	return newBSTFrom(cfg), nil
}

func newBSTFrom[K comparable, V any](cfg config[K, V]) *BST[K, V] {
	comparator := cfg.comparator
	if cfg.reverse {
		comparator = compare.Reverse(comparator)
	}

	return &BST[K, V]{
		BinaryTree: *newBinaryTree(cfg),
		comparator: comparator,
	}
}

// Comparator returns the effective key ordering, reversal applied.
func (bst *BST[K, V]) Comparator() compare.Comparator[K] {
	return bst.comparator
}

// bstOptions reconstructs the config for same-type construction during Clone,
// Filter, and Map. The stored comparator already folds in any reversal.
func (bst *BST[K, V]) bstOptions() config[K, V] {
	cfg := bst.BinaryTree.options()
	cfg.comparator = bst.comparator

	return cfg
}

// String returns a one-line summary of the tree.
func (bst *BST[K, V]) String() string {
	return fmt.Sprintf("BST(size=%d)", bst.size)
}

// --- add -------------------------------------------------------------------

// Add inserts a key-value pair in comparator order, descending from the
// root in O(h). Adding an existing key replaces the mapped value and leaves
// the size unchanged.
func (bst *BST[K, V]) Add(key K, value V) bool {
	return bst.AddNode(NewNode(key, value))
}

// AddNode inserts an existing node in comparator order. Returns false when n
// is nil.
func (bst *BST[K, V]) AddNode(n *Node[K, V]) bool {
	if n == nil || !n.IsReal() {
		return false
	}

	_, _ = bst.insert(n)

	return true
}

// insert descends to n's ordered position. On a key match the resident node
// absorbs n's value and is returned with isNew false; otherwise n is
// attached at the empty slot (displacing any placeholder) and returned with
// isNew true.
func (bst *BST[K, V]) insert(n *Node[K, V]) (at *Node[K, V], isNew bool) {
	n.parent = nil
	n.left = nil
	n.right = nil

	if bst.root == nil || !bst.root.IsReal() {
		bst.root = n
		n.parent = nil
		bst.size++
		bst.storePut(n.key, n.value)

		return n, true
	}

	cur := bst.root

	for {
		c := bst.comparator(n.key, cur.key)

		switch {
		case c == 0:
			cur.value = n.value
			bst.storePut(n.key, n.value)

			return cur, false

		case c < 0:
			if cur.realLeft() == nil {
				cur.SetLeft(n)
				bst.size++
				bst.storePut(n.key, n.value)

				return n, true
			}

			cur = cur.realLeft()

		default:
			if cur.realRight() == nil {
				cur.SetRight(n)
				bst.size++
				bst.storePut(n.key, n.value)

				return n, true
			}

			cur = cur.realRight()
		}
	}
}

// AddMany bulk-loads entries and returns how many were accepted.
//
// With balanced set (the preferred build mode) the entries are sorted by key
// and added median-first, producing a height-balanced tree; otherwise they
// are added in iteration order. Re-invoking with overlapping keys is safe:
// duplicates replace values without disturbing size.
func (bst *BST[K, V]) AddMany(entries []Entry[K, V], balanced bool) int {
	if !balanced {
		added := 0

		for _, e := range entries {
			if bst.Add(e.Key, e.Value) {
				added++
			}
		}

		return added
	}

	sorted := make([]Entry[K, V], len(entries))
	copy(sorted, entries)
	slices.SortFunc(sorted, func(a, b Entry[K, V]) int {
		return bst.comparator(a.Key, b.Key)
	})

	if bst.iterationType == Recursive {
		return bst.addMedianRecursive(sorted, 0, len(sorted)-1)
	}

	return bst.addMedianIterative(sorted)
}

func (bst *BST[K, V]) addMedianRecursive(entries []Entry[K, V], l, r int) int {
	if l > r {
		return 0
	}

	m := l + (r-l)/2

	added := 0
	if bst.Add(entries[m].Key, entries[m].Value) {
		added++
	}

	added += bst.addMedianRecursive(entries, l, m-1)
	added += bst.addMedianRecursive(entries, m+1, r)

	return added
}

func (bst *BST[K, V]) addMedianIterative(entries []Entry[K, V]) int {
	type span struct{ l, r int }

	added := 0

	s := list.NewStack[span]()
	s.Push(span{0, len(entries) - 1})

	for !s.IsEmpty() {
		sp, _ := s.Pop()
		if sp.l > sp.r {
			continue
		}

		m := sp.l + (sp.r-sp.l)/2
		if bst.Add(entries[m].Key, entries[m].Value) {
			added++
		}

		s.Push(span{sp.l, m - 1})
		s.Push(span{m + 1, sp.r})
	}

	return added
}

// --- lookup ----------------------------------------------------------------

// GetNode finds the node holding key by ordered descent in O(h).
func (bst *BST[K, V]) GetNode(key K) *Node[K, V] {
	if bst.iterationType == Recursive {
		return bst.getNodeRecursive(bst.realRoot(), key)
	}

	cur := bst.realRoot()
	for cur != nil {
		switch c := bst.comparator(key, cur.key); {
		case c == 0:
			return cur
		case c < 0:
			cur = cur.realLeft()
		default:
			cur = cur.realRight()
		}
	}

	return nil
}

func (bst *BST[K, V]) getNodeRecursive(cur *Node[K, V], key K) *Node[K, V] {
	if cur == nil {
		return nil
	}

	switch c := bst.comparator(key, cur.key); {
	case c == 0:
		return cur
	case c < 0:
		return bst.getNodeRecursive(cur.realLeft(), key)
	default:
		return bst.getNodeRecursive(cur.realRight(), key)
	}
}

// realRoot normalizes the root slot to a real node or nil.
func (bst *BST[K, V]) realRoot() *Node[K, V] {
	if bst.root != nil && bst.root.IsReal() {
		return bst.root
	}

	return nil
}

// Get returns the value mapped to key.
func (bst *BST[K, V]) Get(key K) (V, bool) {
	if bst.mapMode {
		v, ok := bst.store[key]

		return v, ok
	}

	if n := bst.GetNode(key); n != nil {
		return n.value, true
	}

	var zero V

	return zero, false
}

// Has reports whether key is present.
func (bst *BST[K, V]) Has(key K) bool {
	if bst.mapMode {
		_, ok := bst.store[key]

		return ok
	}

	return bst.GetNode(key) != nil
}

// GetMany looks up several keys concurrently and returns the hits as a map.
//
// Lookups are read-only; the caller must ensure no writer runs for the
// duration of the call. The context cancels outstanding lookups.
func (bst *BST[K, V]) GetMany(ctx context.Context, keys ...K) (map[K]V, error) {
	dedup := make(map[K]struct{}, len(keys))
	for _, key := range keys {
		dedup[key] = struct{}{}
	}

	res := make(map[K]V, len(dedup))
	if len(dedup) == 0 {
		return res, nil
	}

	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)

	for key := range dedup {
		key := key
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if v, ok := bst.Get(key); ok {
				mu.Lock()
				res[key] = v
				mu.Unlock()
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

// --- delete ----------------------------------------------------------------

// Delete removes the entry with the given key using the three-case
// transplant scheme. A key that resolves to no node yields an empty result.
func (bst *BST[K, V]) Delete(key K) []DeletionResult[K, V] {
	return bst.DeleteNode(bst.GetNode(key))
}

// DeleteNode removes the given node, preserving the ordered invariant.
//
// The result's NeedBalanced names the parent of the physically removed
// node, which balanced variants re-examine on their way back to the root.
func (bst *BST[K, V]) DeleteNode(n *Node[K, V]) []DeletionResult[K, V] {
	if n == nil || !n.IsReal() {
		return nil
	}

	delKey := n.key

	var needBalanced *Node[K, V]

	switch {
	case n.realLeft() == nil:
		needBalanced = n.realParent()
		bst.transplant(n, n.realRight())

	case n.realRight() == nil:
		needBalanced = n.realParent()
		bst.transplant(n, n.realLeft())

	default:
		succ := bst.GetLeftMost(From(n.realRight()))

		if succ.realParent() != n {
			needBalanced = succ.realParent()
			bst.transplant(succ, succ.realRight())
			succ.SetRight(n.realRight())
		} else {
			needBalanced = succ
		}

		bst.transplant(n, succ)
		succ.SetLeft(n.realLeft())
		succ.height = n.height
	}

	n.parent = nil
	n.left = nil
	n.right = nil

	bst.size--
	bst.storeDelete(delKey)

	return []DeletionResult[K, V]{{Deleted: n, NeedBalanced: needBalanced}}
}

// transplant replaces the subtree rooted at u with the subtree rooted at v
// in u's parent slot. v may be nil.
func (bst *BST[K, V]) transplant(u, v *Node[K, V]) {
	switch p := u.realParent(); {
	case p == nil:
		bst.root = v
		if v != nil {
			v.parent = nil
		}
	case p.left == u:
		p.SetLeft(v)
	default:
		p.SetRight(v)
	}
}

// DeleteWhere removes every node matching the predicate, or only the first
// when onlyOne is set, and aggregates the per-deletion results.
func (bst *BST[K, V]) DeleteWhere(pred NodePredicate[K, V], onlyOne bool) []DeletionResult[K, V] {
	matches := bst.GetNodes(pred, onlyOne)

	var results []DeletionResult[K, V]
	for _, n := range matches {
		results = append(results, bst.DeleteNode(n)...)
	}

	return results
}

// --- pruned search ---------------------------------------------------------

// searchGuided runs an in-order depth-first walk from the root, pruning the
// descent with the two direction predicates and collecting nodes the match
// predicate accepts. Range queries cost O(h + m) for m matches.
func (bst *BST[K, V]) searchGuided(visitLeft, visitRight, match NodePredicate[K, V], onlyOne bool) []*Node[K, V] {
	var out []*Node[K, V]

	start := bst.realRoot()
	if start == nil {
		return out
	}

	if bst.iterationType == Recursive {
		bst.searchGuidedRecursive(start, visitLeft, visitRight, match, onlyOne, &out)

		return out
	}

	s := list.NewStack[dfsFrame[K, V]]()
	s.Push(dfsFrame[K, V]{node: start})

	for !s.IsEmpty() {
		f, _ := s.Pop()

		if f.process {
			if match(f.node) {
				out = append(out, f.node)
				if onlyOne {
					return out
				}
			}

			continue
		}

		n := f.node
		if r := n.realRight(); r != nil && visitRight(n) {
			s.Push(dfsFrame[K, V]{node: r})
		}

		s.Push(dfsFrame[K, V]{process: true, node: n})

		if l := n.realLeft(); l != nil && visitLeft(n) {
			s.Push(dfsFrame[K, V]{node: l})
		}
	}

	return out
}

func (bst *BST[K, V]) searchGuidedRecursive(n *Node[K, V], visitLeft, visitRight, match NodePredicate[K, V], onlyOne bool, out *[]*Node[K, V]) bool {
	if l := n.realLeft(); l != nil && visitLeft(n) {
		if !bst.searchGuidedRecursive(l, visitLeft, visitRight, match, onlyOne, out) {
			return false
		}
	}

	if match(n) {
		*out = append(*out, n)
		if onlyOne {
			return false
		}
	}

	if r := n.realRight(); r != nil && visitRight(n) {
		return bst.searchGuidedRecursive(r, visitLeft, visitRight, match, onlyOne, out)
	}

	return true
}

// RangeSearch returns every entry whose key falls inside the range, in
// ascending comparator order. The descent is pruned by the range bounds.
func (bst *BST[K, V]) RangeSearch(r Range[K]) []Entry[K, V] {
	nodes := bst.RangeSearchNodes(r)

	entries := make([]Entry[K, V], 0, len(nodes))
	for _, n := range nodes {
		v, _ := bst.storeGet(n)
		entries = append(entries, Entry[K, V]{Key: n.key, Value: v})
	}

	return entries
}

// RangeSearchNodes returns the nodes whose keys fall inside the range, in
// ascending comparator order.
func (bst *BST[K, V]) RangeSearchNodes(r Range[K]) []*Node[K, V] {
	return bst.searchGuided(
		func(n *Node[K, V]) bool {
			// Left subtree keys are strictly below n's; they can only fall
			// in range when n's key sits above the low bound.
			return bst.comparator(n.key, r.Low) > 0
		},
		func(n *Node[K, V]) bool {
			return bst.comparator(n.key, r.High) < 0
		},
		func(n *Node[K, V]) bool {
			return r.Contains(n.key, bst.comparator)
		},
		false,
	)
}

// --- order-predicate navigation --------------------------------------------

// CeilingNode returns the node with the smallest key greater than or equal
// to target, or nil.
func (bst *BST[K, V]) CeilingNode(target K) *Node[K, V] {
	return bst.bound(target, true, true)
}

// HigherNode returns the node with the smallest key strictly greater than
// target, or nil.
func (bst *BST[K, V]) HigherNode(target K) *Node[K, V] {
	return bst.bound(target, true, false)
}

// FloorNode returns the node with the largest key less than or equal to
// target, or nil.
func (bst *BST[K, V]) FloorNode(target K) *Node[K, V] {
	return bst.bound(target, false, true)
}

// LowerNode returns the node with the largest key strictly less than
// target, or nil.
func (bst *BST[K, V]) LowerNode(target K) *Node[K, V] {
	return bst.bound(target, false, false)
}

// Ceiling returns the smallest key greater than or equal to target.
func (bst *BST[K, V]) Ceiling(target K) (K, bool) {
	return nodeKey(bst.CeilingNode(target))
}

// Higher returns the smallest key strictly greater than target.
func (bst *BST[K, V]) Higher(target K) (K, bool) {
	return nodeKey(bst.HigherNode(target))
}

// Floor returns the largest key less than or equal to target.
func (bst *BST[K, V]) Floor(target K) (K, bool) {
	return nodeKey(bst.FloorNode(target))
}

// Lower returns the largest key strictly less than target.
func (bst *BST[K, V]) Lower(target K) (K, bool) {
	return nodeKey(bst.LowerNode(target))
}

func nodeKey[K comparable, V any](n *Node[K, V]) (K, bool) {
	if n == nil {
		var zero K

		return zero, false
	}

	return n.key, true
}

// bound performs a single guided descent maintaining the best candidate so
// far. above selects the ceiling side; allowEqual admits exact matches.
func (bst *BST[K, V]) bound(target K, above, allowEqual bool) *Node[K, V] {
	var best *Node[K, V]

	cur := bst.realRoot()
	for cur != nil {
		c := bst.comparator(cur.key, target)

		if c == 0 && allowEqual {
			return cur
		}

		if above {
			if c > 0 {
				best = cur
				cur = cur.realLeft()
			} else {
				cur = cur.realRight()
			}
		} else {
			if c < 0 {
				best = cur
				cur = cur.realRight()
			} else {
				cur = cur.realLeft()
			}
		}
	}

	return best
}

// LesserOrGreaterTraverse collects every node whose key compares to the
// pivot in the requested direction: negative for lesser, zero for equal,
// positive for greater. Runs the full tree in O(n).
func (bst *BST[K, V]) LesserOrGreaterTraverse(pivot K, direction int) []*Node[K, V] {
	sign := func(c int) int {
		switch {
		case c < 0:
			return -1
		case c > 0:
			return 1
		default:
			return 0
		}
	}

	want := sign(direction)

	return bst.GetNodes(func(n *Node[K, V]) bool {
		return sign(bst.comparator(n.key, pivot)) == want
	}, false)
}

// IsBST validates the ordered invariant using the tree's own comparator.
// Either a strictly increasing or strictly decreasing in-order sequence
// qualifies.
func (bst *BST[K, V]) IsBST(opts ...TraverseOption[K, V]) bool {
	return bst.BinaryTree.IsBST(func(a, b K) bool {
		return bst.comparator(a, b) < 0
	}, opts...)
}

// --- rebuild ---------------------------------------------------------------

// PerfectlyBalance rebuilds the tree from its sorted entry sequence by
// repeatedly installing the median of each span, leaving a height of at
// most ceil(log2(size+1)). Returns false on an empty tree.
func (bst *BST[K, V]) PerfectlyBalance() bool {
	entries := bst.Entries()
	if len(entries) == 0 {
		return false
	}

	bst.Clear()

	if bst.iterationType == Recursive {
		bst.addMedianRecursive(entries, 0, len(entries)-1)
	} else {
		bst.addMedianIterative(entries)
	}

	return true
}

// IsAVLBalanced validates the AVL height invariant across the whole tree via
// post-order height computation with early exit on any imbalance.
func (bst *BST[K, V]) IsAVLBalanced() bool {
	start := bst.realRoot()
	if start == nil {
		return true
	}

	if bst.iterationType == Recursive {
		_, ok := bst.avlCheckRecursive(start)

		return ok
	}

	heights := make(map[*Node[K, V]]int)
	balanced := true

	bst.DFS(PostOrder, func(n *Node[K, V]) bool {
		lh, rh := -1, -1
		if l := n.realLeft(); l != nil {
			lh = heights[l]
		}

		if r := n.realRight(); r != nil {
			rh = heights[r]
		}

		if rh-lh > 1 || lh-rh > 1 {
			balanced = false

			return false
		}

		heights[n] = 1 + max(lh, rh)

		return true
	}, Using[K, V](Iterative))

	return balanced
}

func (bst *BST[K, V]) avlCheckRecursive(n *Node[K, V]) (int, bool) {
	if n == nil {
		return -1, true
	}

	lh, ok := bst.avlCheckRecursive(n.realLeft())
	if !ok {
		return 0, false
	}

	rh, ok := bst.avlCheckRecursive(n.realRight())
	if !ok {
		return 0, false
	}

	if rh-lh > 1 || lh-rh > 1 {
		return 0, false
	}

	return 1 + max(lh, rh), true
}

// --- clone / filter --------------------------------------------------------

// Clone creates a new BST with the same options, comparator, and shape.
//
// Entries replay in breadth-first order, which reproduces the exact node
// arrangement under ordered insertion. In map mode the clone shares the
// value store by reference with the original.
func (bst *BST[K, V]) Clone() *BST[K, V] {
	clone := newBSTFrom(bst.bstOptions())
	bst.cloneOrderedInto(&clone.BinaryTree, clone.Add)

	return clone
}

// cloneOrderedInto replays this tree's entries breadth-first through add and
// then shares the map-mode store with the destination.
func (bst *BST[K, V]) cloneOrderedInto(dst *BinaryTree[K, V], add func(K, V) bool) {
	bst.BFS(func(n *Node[K, V]) bool {
		v, _ := bst.storeGet(n)
		add(n.key, v)

		return true
	})

	if bst.mapMode {
		dst.store = bst.store
	}
}

// Filter builds a new BST holding only the entries the predicate accepts.
// The source is unchanged.
func (bst *BST[K, V]) Filter(pred func(key K, value V) bool) *BST[K, V] {
	out := newBSTFrom(bst.bstOptions())

	bst.DFS(InOrder, func(n *Node[K, V]) bool {
		if v, _ := bst.storeGet(n); pred(n.key, v) {
			out.Add(n.key, v)
		}

		return true
	})

	return out
}

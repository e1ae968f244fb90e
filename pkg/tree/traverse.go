package tree

import (
	"github.com/barnowlsnest/go-treelib/pkg/list"
)

// traverseConfig carries the per-call knobs every traversal accepts: a
// subtree start, the engine override, and whether null positions surface.
type traverseConfig[K comparable, V any] struct {
	start        *Node[K, V]
	startSet     bool
	includeNulls bool
	iteration    IterationType
	iterationSet bool
}

// TraverseOption adjusts a single traversal invocation.
type TraverseOption[K comparable, V any] func(tc *traverseConfig[K, V])

// From starts the traversal at the given subtree root instead of the tree
// root.
func From[K comparable, V any](start *Node[K, V]) TraverseOption[K, V] {
	return func(tc *traverseConfig[K, V]) {
		tc.start = start
		tc.startSet = true
	}
}

// WithNulls surfaces the null positions of real nodes as visited
// placeholder entries, which include-null serialization and shape-preserving
// clones depend on.
func WithNulls[K comparable, V any]() TraverseOption[K, V] {
	return func(tc *traverseConfig[K, V]) {
		tc.includeNulls = true
	}
}

// Using overrides the tree's default engine for this traversal only.
func Using[K comparable, V any](it IterationType) TraverseOption[K, V] {
	return func(tc *traverseConfig[K, V]) {
		tc.iteration = it
		tc.iterationSet = true
	}
}

func (t *BinaryTree[K, V]) traverseConfig(opts []TraverseOption[K, V]) traverseConfig[K, V] {
	tc := traverseConfig[K, V]{}
	for _, opt := range opts {
		opt(&tc)
	}

	if !tc.startSet {
		tc.start = t.root
	}

	if !tc.iterationSet {
		tc.iteration = t.iterationType
	}

	return tc
}

// childOrMarker resolves a raw child slot for include-null emission: a real
// child passes through, anything else becomes a placeholder visit.
func (t *BinaryTree[K, V]) childOrMarker(raw *Node[K, V]) *Node[K, V] {
	if raw != nil && raw.IsReal() {
		return raw
	}

	if raw != nil && raw.IsNullMarker() {
		return raw
	}

	return newNullNode[K, V]()
}

// --- DFS -------------------------------------------------------------------

// dfsFrame is one entry on the iterative DFS stack. A process frame emits
// its node; a visit frame expands it.
type dfsFrame[K comparable, V any] struct {
	process bool
	node    *Node[K, V]
}

// DFS performs a depth-first traversal in the given order, applying visit to
// each node. The traversal stops early when visit returns false.
//
// Options select the subtree, the engine, and include-null emission. With
// include-null set, every absent child position of a real node is surfaced
// as a placeholder visit.
func (t *BinaryTree[K, V]) DFS(order DFSOrder, visit Visit[K, V], opts ...TraverseOption[K, V]) {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return
	}

	if tc.iteration == Recursive {
		t.dfsRecursive(tc.start, order, visit, tc.includeNulls)

		return
	}

	t.dfsIterative(tc.start, order, visit, tc.includeNulls)
}

func (t *BinaryTree[K, V]) dfsRecursive(n *Node[K, V], order DFSOrder, visit Visit[K, V], withNulls bool) bool {
	if n == nil || !n.IsReal() {
		if withNulls {
			return visit(t.childOrMarker(n))
		}

		return true
	}

	descend := func(child *Node[K, V]) bool {
		if child != nil && child.IsReal() {
			return t.dfsRecursive(child, order, visit, withNulls)
		}

		if withNulls {
			return visit(t.childOrMarker(child))
		}

		return true
	}

	switch order {
	case PreOrder:
		return visit(n) && descend(n.left) && descend(n.right)
	case PostOrder:
		return descend(n.left) && descend(n.right) && visit(n)
	default:
		return descend(n.left) && visit(n) && descend(n.right)
	}
}

func (t *BinaryTree[K, V]) dfsIterative(start *Node[K, V], order DFSOrder, visit Visit[K, V], withNulls bool) {
	s := list.NewStack[dfsFrame[K, V]]()
	s.Push(dfsFrame[K, V]{node: start})

	for !s.IsEmpty() {
		f, _ := s.Pop()

		if f.process {
			if !visit(f.node) {
				return
			}

			continue
		}

		n := f.node
		if n == nil || !n.IsReal() {
			if withNulls {
				if !visit(t.childOrMarker(n)) {
					return
				}
			}

			continue
		}

		// Push order is the reverse of the traversal order so that
		// popping yields the correct sequence.
		switch order {
		case PreOrder:
			s.Push(dfsFrame[K, V]{node: n.right})
			s.Push(dfsFrame[K, V]{node: n.left})
			s.Push(dfsFrame[K, V]{process: true, node: n})
		case PostOrder:
			s.Push(dfsFrame[K, V]{process: true, node: n})
			s.Push(dfsFrame[K, V]{node: n.right})
			s.Push(dfsFrame[K, V]{node: n.left})
		default:
			s.Push(dfsFrame[K, V]{node: n.right})
			s.Push(dfsFrame[K, V]{process: true, node: n})
			s.Push(dfsFrame[K, V]{node: n.left})
		}
	}
}

// --- BFS -------------------------------------------------------------------

// BFS performs a breadth-first (level-order) traversal, applying visit to
// each node. The traversal stops early when visit returns false.
//
// With include-null set, the absent child positions of every real node are
// surfaced as placeholder visits in level order.
func (t *BinaryTree[K, V]) BFS(visit Visit[K, V], opts ...TraverseOption[K, V]) {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return
	}

	q := list.NewQueue[*Node[K, V]]()
	q.Enqueue(tc.start)

	if tc.iteration == Recursive {
		t.bfsRecursive(q, visit, tc.includeNulls)

		return
	}

	for !q.IsEmpty() {
		if !t.bfsStep(q, visit, tc.includeNulls) {
			return
		}
	}
}

// bfsRecursive drains the queue through a tail call per dequeued node.
func (t *BinaryTree[K, V]) bfsRecursive(q *list.Queue[*Node[K, V]], visit Visit[K, V], withNulls bool) {
	if q.IsEmpty() {
		return
	}

	if !t.bfsStep(q, visit, withNulls) {
		return
	}

	t.bfsRecursive(q, visit, withNulls)
}

// bfsStep pops one node, emits it, and enqueues its children: real children
// always, placeholder stand-ins when include-null is set.
func (t *BinaryTree[K, V]) bfsStep(q *list.Queue[*Node[K, V]], visit Visit[K, V], withNulls bool) bool {
	n, _ := q.Dequeue()

	if !visit(n) {
		return false
	}

	if !n.IsReal() {
		return true
	}

	for _, child := range []*Node[K, V]{n.left, n.right} {
		if child != nil && child.IsReal() {
			q.Enqueue(child)
		} else if withNulls {
			q.Enqueue(t.childOrMarker(child))
		}
	}

	return true
}

// --- level listing ---------------------------------------------------------

// ListLevels partitions the tree into rows: row k holds the nodes at depth k
// from the start node, left to right. With include-null set, placeholder
// rows include the absent positions of real nodes.
func (t *BinaryTree[K, V]) ListLevels(opts ...TraverseOption[K, V]) [][]*Node[K, V] {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return nil
	}

	if tc.iteration == Recursive {
		var rows [][]*Node[K, V]
		t.listLevelsRecursive(tc.start, 0, &rows, tc.includeNulls)

		return rows
	}

	return t.listLevelsIterative(tc.start, tc.includeNulls)
}

func (t *BinaryTree[K, V]) listLevelsRecursive(n *Node[K, V], level int, rows *[][]*Node[K, V], withNulls bool) {
	for len(*rows) <= level {
		*rows = append(*rows, nil)
	}

	(*rows)[level] = append((*rows)[level], n)

	if !n.IsReal() {
		return
	}

	for _, child := range []*Node[K, V]{n.left, n.right} {
		if child != nil && child.IsReal() {
			t.listLevelsRecursive(child, level+1, rows, withNulls)
		} else if withNulls {
			t.listLevelsRecursive(t.childOrMarker(child), level+1, rows, withNulls)
		}
	}
}

func (t *BinaryTree[K, V]) listLevelsIterative(start *Node[K, V], withNulls bool) [][]*Node[K, V] {
	var rows [][]*Node[K, V]

	q := list.NewQueue[*Node[K, V]]()
	q.Enqueue(start)

	for !q.IsEmpty() {
		width := q.Size()
		row := make([]*Node[K, V], 0, width)

		for i := 0; i < width; i++ {
			n, _ := q.Dequeue()
			row = append(row, n)

			if !n.IsReal() {
				continue
			}

			for _, child := range []*Node[K, V]{n.left, n.right} {
				if child != nil && child.IsReal() {
					q.Enqueue(child)
				} else if withNulls {
					q.Enqueue(t.childOrMarker(child))
				}
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// --- Morris ----------------------------------------------------------------

// Morris performs a threaded in-place traversal in the given order using
// O(1) auxiliary space. Right links are temporarily rewired to thread the
// tree and are restored before the traversal returns, including after an
// early stop.
func (t *BinaryTree[K, V]) Morris(order DFSOrder, visit Visit[K, V], opts ...TraverseOption[K, V]) {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return
	}

	if order == PostOrder {
		t.morrisPost(tc.start, visit)

		return
	}

	t.morrisInPre(tc.start, order, visit)
}

// morrisInPre handles the IN and PRE orders. After an early stop the walk
// continues without emitting so every thread is unwound before returning.
func (t *BinaryTree[K, V]) morrisInPre(start *Node[K, V], order DFSOrder, visit Visit[K, V]) {
	emit := true
	cur := start

	for cur != nil && cur.IsReal() {
		left := cur.realLeft()
		if left == nil {
			if emit && !visit(cur) {
				emit = false
			}

			cur = t.realOrThread(cur.right)

			continue
		}

		pre := t.inOrderPredecessorVia(left, cur)
		if pre.right != cur {
			// Thread the predecessor to the current node and descend left.
			if order == PreOrder && emit && !visit(cur) {
				emit = false
			}

			pre.right = cur
			cur = left
		} else {
			// Unthread and move on.
			pre.right = t.absent()

			if order == InOrder && emit && !visit(cur) {
				emit = false
			}

			cur = t.realOrThread(cur.right)
		}
	}
}

// morrisPost emits in post-order by reversing the right spine of each
// completed left subtree, emitting, then reversing back.
func (t *BinaryTree[K, V]) morrisPost(start *Node[K, V], visit Visit[K, V]) {
	emit := true

	// The dummy head makes the start node a left child so its own right
	// spine is emitted like any other. Links are assigned raw to leave the
	// start node's parent untouched; the dummy itself is never emitted.
	dummy := &Node[K, V]{kind: kindReal}
	dummy.left = start

	cur := dummy

	for cur != nil {
		left := cur.realLeft()

		if left == nil {
			cur = t.realOrThread(cur.right)

			continue
		}

		pre := t.inOrderPredecessorVia(left, cur)
		if pre.right != cur {
			pre.right = cur
			cur = left
		} else {
			pre.right = t.absent()

			// Even after an early stop the spine is emitted (silently) and
			// restored, and the walk continues to unwind remaining threads.
			t.emitReversedSpine(left, &visit, &emit)

			cur = t.realOrThread(cur.right)
		}
	}

	dummy.left = nil
}

// inOrderPredecessorVia finds the rightmost real descendant of left that is
// not already threaded to cur.
func (t *BinaryTree[K, V]) inOrderPredecessorVia(left, cur *Node[K, V]) *Node[K, V] {
	pre := left
	for pre.realRight() != nil && pre.right != cur {
		pre = pre.right
	}

	return pre
}

// realOrThread follows a raw right link: a thread target or real child
// passes through, absence resolves to nil.
func (t *BinaryTree[K, V]) realOrThread(raw *Node[K, V]) *Node[K, V] {
	if raw != nil && raw.IsReal() {
		return raw
	}

	return nil
}

// emitReversedSpine reverses the right spine rooted at head in place, emits
// it far-to-near, and restores it. The spine is restored even when visit
// stops the traversal early.
func (t *BinaryTree[K, V]) emitReversedSpine(head *Node[K, V], visit *Visit[K, V], emit *bool) {
	tail := t.reverseRightSpine(head)

	for n := tail; n != nil; n = t.realOrThread(n.right) {
		if *emit && !(*visit)(n) {
			*emit = false
		}
	}

	t.reverseRightSpine(tail)
}

// reverseRightSpine reverses the chain of right links starting at n and
// returns the new head (the former tail).
func (t *BinaryTree[K, V]) reverseRightSpine(n *Node[K, V]) *Node[K, V] {
	var prev *Node[K, V]

	cur := n
	for cur != nil {
		next := t.realOrThread(cur.right)
		if prev == nil {
			cur.right = t.absent()
		} else {
			cur.right = prev
		}

		prev = cur
		cur = next
	}

	return prev
}

package tree

import (
	"github.com/barnowlsnest/go-treelib/pkg/list"
)

// GetHeight returns the maximum depth from the start node to any descendant
// real node. A leaf has height 0; an empty subtree has height -1.
func (t *BinaryTree[K, V]) GetHeight(opts ...TraverseOption[K, V]) int {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return -1
	}

	if tc.iteration == Recursive {
		return t.heightRecursive(tc.start)
	}

	return t.heightIterative(tc.start)
}

func (t *BinaryTree[K, V]) heightRecursive(n *Node[K, V]) int {
	if n == nil {
		return -1
	}

	lh := t.heightRecursive(n.realLeft())
	rh := t.heightRecursive(n.realRight())

	return 1 + max(lh, rh)
}

// heightIterative tracks (node, depth) pairs on an explicit stack.
func (t *BinaryTree[K, V]) heightIterative(start *Node[K, V]) int {
	type frame struct {
		node  *Node[K, V]
		depth int
	}

	height := 0

	s := list.NewStack[frame]()
	s.Push(frame{node: start})

	for !s.IsEmpty() {
		f, _ := s.Pop()
		height = max(height, f.depth)

		if l := f.node.realLeft(); l != nil {
			s.Push(frame{node: l, depth: f.depth + 1})
		}

		if r := f.node.realRight(); r != nil {
			s.Push(frame{node: r, depth: f.depth + 1})
		}
	}

	return height
}

// GetMinHeight returns the minimum depth from the start node to any leaf.
// An empty subtree has min height -1.
func (t *BinaryTree[K, V]) GetMinHeight(opts ...TraverseOption[K, V]) int {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return -1
	}

	if tc.iteration == Recursive {
		return t.minHeightRecursive(tc.start)
	}

	return t.minHeightIterative(tc.start)
}

func (t *BinaryTree[K, V]) minHeightRecursive(n *Node[K, V]) int {
	if n == nil {
		return -1
	}

	l, r := n.realLeft(), n.realRight()

	switch {
	case l == nil:
		return 1 + t.minHeightRecursive(r)
	case r == nil:
		return 1 + t.minHeightRecursive(l)
	default:
		return 1 + min(t.minHeightRecursive(l), t.minHeightRecursive(r))
	}
}

// minHeightIterative memoizes subtree min-heights during a post-order walk.
func (t *BinaryTree[K, V]) minHeightIterative(start *Node[K, V]) int {
	depths := make(map[*Node[K, V]]int)

	t.DFS(PostOrder, func(n *Node[K, V]) bool {
		l, r := n.realLeft(), n.realRight()

		switch {
		case l == nil && r == nil:
			depths[n] = 0
		case l == nil:
			depths[n] = 1 + depths[r]
		case r == nil:
			depths[n] = 1 + depths[l]
		default:
			depths[n] = 1 + min(depths[l], depths[r])
		}

		return true
	}, From(start), Using[K, V](Iterative))

	return depths[start]
}

// IsPerfectlyBalanced reports whether no leaf sits more than one level above
// the deepest: minHeight + 1 >= height.
func (t *BinaryTree[K, V]) IsPerfectlyBalanced(opts ...TraverseOption[K, V]) bool {
	return t.GetMinHeight(opts...)+1 >= t.GetHeight(opts...)
}

// GetDepth walks parent links upward from target, counting edges until start
// is reached. Returns 0 when target is start; if start is never reached the
// count covers the full path to the root.
func (t *BinaryTree[K, V]) GetDepth(target *Node[K, V], opts ...TraverseOption[K, V]) int {
	tc := t.traverseConfig(opts)

	depth := 0
	for target != nil && target.IsReal() {
		if target == tc.start {
			return depth
		}

		depth++
		target = target.realParent()
	}

	return depth
}

// GetPathToRoot collects the node and each of its ancestors. The result runs
// node-to-root; with reverse set it runs root-to-node.
func (t *BinaryTree[K, V]) GetPathToRoot(n *Node[K, V], reverse bool) []*Node[K, V] {
	var path []*Node[K, V]

	for cur := n; cur != nil && cur.IsReal(); cur = cur.realParent() {
		path = append(path, cur)
	}

	if reverse {
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
	}

	return path
}

// GetLeftMost descends the left spine from the start node.
func (t *BinaryTree[K, V]) GetLeftMost(opts ...TraverseOption[K, V]) *Node[K, V] {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return nil
	}

	cur := tc.start
	for cur.realLeft() != nil {
		cur = cur.realLeft()
	}

	return cur
}

// GetRightMost descends the right spine from the start node.
func (t *BinaryTree[K, V]) GetRightMost(opts ...TraverseOption[K, V]) *Node[K, V] {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return nil
	}

	cur := tc.start
	for cur.realRight() != nil {
		cur = cur.realRight()
	}

	return cur
}

// GetPredecessor returns the in-order neighbor before n: the rightmost node
// of n's left subtree, or the nearest ancestor whose right subtree holds n.
// Returns nil when n is the in-order minimum.
func (t *BinaryTree[K, V]) GetPredecessor(n *Node[K, V]) *Node[K, V] {
	if n == nil || !n.IsReal() {
		return nil
	}

	if l := n.realLeft(); l != nil {
		return t.GetRightMost(From(l))
	}

	cur, p := n, n.realParent()
	for p != nil && p.left == cur {
		cur, p = p, p.realParent()
	}

	return p
}

// GetSuccessor returns the in-order neighbor after n: the leftmost node of
// n's right subtree, or the nearest ancestor whose left subtree holds n.
// Returns nil when n is the in-order maximum.
func (t *BinaryTree[K, V]) GetSuccessor(n *Node[K, V]) *Node[K, V] {
	if n == nil || !n.IsReal() {
		return nil
	}

	if r := n.realRight(); r != nil {
		return t.GetLeftMost(From(r))
	}

	cur, p := n, n.realParent()
	for p != nil && p.right == cur {
		cur, p = p, p.realParent()
	}

	return p
}

// IsBST validates the ordered invariant in either direction: the in-order
// key sequence must be strictly increasing or strictly decreasing under the
// provided less function. Either direction qualifies, so a single-path tree
// read backwards still passes.
func (t *BinaryTree[K, V]) IsBST(less func(a, b K) bool, opts ...TraverseOption[K, V]) bool {
	tc := t.traverseConfig(opts)
	if t.isAbsent(tc.start) || !tc.start.IsReal() {
		return true
	}

	ascending := true
	descending := true
	first := true

	var prev K

	t.DFS(InOrder, func(n *Node[K, V]) bool {
		if !first {
			if !less(prev, n.key) {
				ascending = false
			}

			if !less(n.key, prev) {
				descending = false
			}
		}

		first = false
		prev = n.key

		return ascending || descending
	}, opts...)

	return ascending || descending
}

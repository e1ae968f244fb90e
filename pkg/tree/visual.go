package tree

import (
	"fmt"
	"strings"
)

// renderConfig controls which absent-child flavors the visual render shows.
type renderConfig struct {
	showNullMarkers bool
	showUndefined   bool
	showSentinels   bool
}

// RenderOption adjusts a single ToVisual or Print invocation.
type RenderOption func(rc *renderConfig)

// ShowNulls renders explicit-null placeholders as "N" leaves.
func ShowNulls() RenderOption {
	return func(rc *renderConfig) {
		rc.showNullMarkers = true
	}
}

// ShowUndefined renders empty child slots of real nodes as "U" leaves.
func ShowUndefined() RenderOption {
	return func(rc *renderConfig) {
		rc.showUndefined = true
	}
}

// ShowSentinels renders red-black NIL sentinels as "S" leaves.
func ShowSentinels() RenderOption {
	return func(rc *renderConfig) {
		rc.showSentinels = true
	}
}

// ToVisual renders the tree as multi-line ASCII art. Each subtree is laid
// out as a block of lines and merged under its parent with underscore and
// slash connectors.
func (t *BinaryTree[K, V]) ToVisual(opts ...RenderOption) string {
	rc := renderConfig{}
	for _, opt := range opts {
		opt(&rc)
	}

	if t.root == nil || !t.root.IsReal() {
		return ""
	}

	lines, _, _, _ := t.renderSubtree(t.root, rc)

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Print writes the visual render to standard output.
func (t *BinaryTree[K, V]) Print(opts ...RenderOption) {
	fmt.Print(t.ToVisual(opts...))
}

// label formats a node for rendering: its key for real nodes, N for
// placeholders, S for sentinels, U for empty slots.
func (t *BinaryTree[K, V]) label(n *Node[K, V]) string {
	switch {
	case n == nil:
		return "U"
	case n.IsNullMarker():
		return "N"
	case n.IsSentinel():
		return "S"
	default:
		return fmt.Sprintf("%v", n.key)
	}
}

// visibleChild reports whether a raw child slot appears in the render under
// the active options.
func (t *BinaryTree[K, V]) visibleChild(n *Node[K, V], rc renderConfig) bool {
	switch {
	case n == nil:
		return rc.showUndefined
	case n.IsNullMarker():
		return rc.showNullMarkers
	case n.IsSentinel():
		return rc.showSentinels
	default:
		return true
	}
}

// renderSubtree lays out the subtree rooted at n and returns its lines,
// total width, height in lines, and the column of the node's middle.
func (t *BinaryTree[K, V]) renderSubtree(n *Node[K, V], rc renderConfig) (lines []string, width, height, middle int) {
	s := t.label(n)
	u := len(s)

	var left, right *Node[K, V]

	leftVisible, rightVisible := false, false
	if n != nil && n.IsReal() {
		if t.visibleChild(n.left, rc) {
			left = n.left
			leftVisible = true
		}

		if t.visibleChild(n.right, rc) {
			right = n.right
			rightVisible = true
		}
	}

	switch {
	case !leftVisible && !rightVisible:
		return []string{s}, u, 1, u / 2

	case !rightVisible:
		ll, lw, lh, lm := t.renderSubtree(left, rc)

		first := pad(lm+1) + strings.Repeat("_", lw-lm-1) + s
		second := pad(lm) + "/" + pad(lw-lm-1+u)

		shifted := make([]string, 0, lh)
		for _, line := range ll {
			shifted = append(shifted, line+pad(u))
		}

		return append([]string{first, second}, shifted...), lw + u, lh + 2, lw + u/2

	case !leftVisible:
		rl, rw, rh, rm := t.renderSubtree(right, rc)

		first := s + strings.Repeat("_", rm) + pad(rw-rm)
		second := pad(u+rm) + "\\" + pad(rw-rm-1)

		shifted := make([]string, 0, rh)
		for _, line := range rl {
			shifted = append(shifted, pad(u)+line)
		}

		return append([]string{first, second}, shifted...), rw + u, rh + 2, u / 2

	default:
		ll, lw, lh, lm := t.renderSubtree(left, rc)
		rl, rw, rh, rm := t.renderSubtree(right, rc)

		first := pad(lm+1) + strings.Repeat("_", lw-lm-1) + s + strings.Repeat("_", rm) + pad(rw-rm)
		second := pad(lm) + "/" + pad(lw-lm-1+u+rm) + "\\" + pad(rw-rm-1)

		if lh < rh {
			for i := lh; i < rh; i++ {
				ll = append(ll, pad(lw))
			}
		} else if rh < lh {
			for i := rh; i < lh; i++ {
				rl = append(rl, pad(rw))
			}
		}

		merged := make([]string, 0, max(lh, rh))
		for i := range ll {
			merged = append(merged, ll[i]+pad(u)+rl[i])
		}

		return append([]string{first, second}, merged...), lw + u + rw, max(lh, rh) + 2, lw + u/2
	}
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(" ", n)
}

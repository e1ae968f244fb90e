package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeAccessors(t *testing.T) {
	n := NewNode(42, "answer")

	assert.Equal(t, 42, n.Key())
	assert.Equal(t, "answer", n.Value())
	assert.Equal(t, 0, n.Height())
	assert.Equal(t, Black, n.Color())
	assert.Equal(t, 1, n.Count())
	assert.True(t, n.IsReal())
	assert.True(t, n.IsLeaf())

	n.SetValue("other")
	assert.Equal(t, "other", n.Value())

	n.SetHeight(3)
	assert.Equal(t, 3, n.Height())

	n.SetColor(Red)
	assert.Equal(t, Red, n.Color())

	n.SetCount(5)
	assert.Equal(t, 5, n.Count())
}

func TestNodeSetChildWiresParent(t *testing.T) {
	parent := NewNode(1, "")
	left := NewNode(2, "")
	right := NewNode(3, "")

	parent.SetLeft(left)
	parent.SetRight(right)

	assert.Same(t, parent, left.Parent())
	assert.Same(t, parent, right.Parent())
	assert.Same(t, left, parent.Left())
	assert.Same(t, right, parent.Right())
}

func TestNodeClearSlotKeepsChildParent(t *testing.T) {
	parent := NewNode(1, "")
	child := NewNode(2, "")

	parent.SetLeft(child)
	parent.SetLeft(nil)

	assert.Nil(t, parent.Left())
	// The displaced child's back-reference is the caller's to fix.
	assert.Same(t, parent, child.Parent())
}

func TestFamilyPosition(t *testing.T) {
	testCases := []struct {
		name     string
		build    func() *Node[int, string]
		expected FamilyPosition
	}{
		{
			name: "isolated",
			build: func() *Node[int, string] {
				return NewNode(1, "")
			},
			expected: PositionIsolated,
		},
		{
			name: "root with children",
			build: func() *Node[int, string] {
				n := NewNode(1, "")
				n.SetLeft(NewNode(2, ""))

				return n
			},
			expected: PositionRoot,
		},
		{
			name: "childless left child",
			build: func() *Node[int, string] {
				p := NewNode(1, "")
				c := NewNode(2, "")
				p.SetLeft(c)

				return c
			},
			expected: PositionLeft,
		},
		{
			name: "left child with children",
			build: func() *Node[int, string] {
				p := NewNode(1, "")
				c := NewNode(2, "")
				p.SetLeft(c)
				c.SetRight(NewNode(3, ""))

				return c
			},
			expected: PositionRootLeft,
		},
		{
			name: "childless right child",
			build: func() *Node[int, string] {
				p := NewNode(1, "")
				c := NewNode(2, "")
				p.SetRight(c)

				return c
			},
			expected: PositionRight,
		},
		{
			name: "right child with children",
			build: func() *Node[int, string] {
				p := NewNode(1, "")
				c := NewNode(2, "")
				p.SetRight(c)
				c.SetLeft(NewNode(3, ""))

				return c
			},
			expected: PositionRootRight,
		},
		{
			name: "corrupt parent link",
			build: func() *Node[int, string] {
				p := NewNode(1, "")
				c := NewNode(2, "")
				p.SetLeft(c)
				// Simulate corruption: the parent forgets the child but the
				// child still points back.
				p.left = nil

				return c
			},
			expected: PositionMalNode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.build().FamilyPosition())
		})
	}
}

func TestNodeKinds(t *testing.T) {
	real := NewNode(1, "")
	marker := newNullNode[int, string]()
	sentinel := newNILNode[int, string]()

	assert.True(t, real.IsReal())
	assert.False(t, real.IsNullMarker())
	assert.False(t, real.IsSentinel())

	assert.True(t, marker.IsNullMarker())
	assert.False(t, marker.IsReal())

	assert.True(t, sentinel.IsSentinel())
	assert.Equal(t, Black, sentinel.Color())
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "RED", Red.String())
	assert.Equal(t, "BLACK", Black.String())
}

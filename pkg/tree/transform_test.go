package tree

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barnowlsnest/go-treelib/pkg/compare"
)

func TestMap(t *testing.T) {
	src, err := NewBST[int, int]()
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		src.Add(i, i*10)
	}

	out, err := Map(src, compare.Ordered[string](), func(key int, value int) (string, int) {
		return strconv.Itoa(key), value * 2
	})
	require.NoError(t, err)

	assert.Equal(t, 5, out.Size())

	v, ok := out.Get("3")
	assert.True(t, ok)
	assert.Equal(t, 60, v)

	// The source is unchanged.
	v2, _ := src.Get(3)
	assert.Equal(t, 30, v2)
}

func TestMapNilComparator(t *testing.T) {
	src, err := NewBST[int, int]()
	require.NoError(t, err)

	_, err = Map(src, nil, func(key, value int) (int, int) {
		return key, value
	})
	assert.ErrorIs(t, err, ErrComparator)
}

func TestMapBinary(t *testing.T) {
	src, err := New[int, string]()
	require.NoError(t, err)

	src.Add(1, "a")
	src.Add(2, "b")

	out := MapBinary(src, func(key int, value string) (int, string) {
		return key * 100, value + "!"
	})

	assert.Equal(t, 2, out.Size())

	v, ok := out.Get(100)
	assert.True(t, ok)
	assert.Equal(t, "a!", v)
}

func TestReduce(t *testing.T) {
	bst, err := NewBST[int, int]()
	require.NoError(t, err)

	for i := 1; i <= 4; i++ {
		bst.Add(i, i)
	}

	sum := Reduce(&bst.BinaryTree, 0, func(acc int, key, value int) int {
		return acc + value
	})

	assert.Equal(t, 10, sum)
}

func TestReduceCollectsInOrder(t *testing.T) {
	bst, err := NewBST[int, string]()
	require.NoError(t, err)

	for _, k := range []int{2, 1, 3} {
		bst.Add(k, strconv.Itoa(k))
	}

	joined := Reduce(&bst.BinaryTree, "", func(acc string, key int, value string) string {
		return acc + value
	})

	assert.Equal(t, "123", joined)
}

func TestEqualTrees(t *testing.T) {
	a, err := NewBST[int, string]()
	require.NoError(t, err)
	b, err := NewBST[int, string]()
	require.NoError(t, err)

	for _, k := range []int{3, 1, 2} {
		a.Add(k, "v")
		b.Add(k, "v")
	}

	assert.True(t, Equal(&a.BinaryTree, &b.BinaryTree))

	b.Add(4, "v")
	assert.False(t, Equal(&a.BinaryTree, &b.BinaryTree))

	a.Add(4, "other")
	assert.False(t, Equal(&a.BinaryTree, &b.BinaryTree))
}

func TestSearchProjection(t *testing.T) {
	bst, err := NewBST[int, string]()
	require.NoError(t, err)

	for i := 1; i <= 9; i++ {
		bst.Add(i, "")
	}

	squares := Search(&bst.BinaryTree, func(n *Node[int, string]) bool {
		return n.Key()%3 == 0
	}, false, func(n *Node[int, string]) int {
		return n.Key() * n.Key()
	})

	assert.Equal(t, []int{9, 36, 81}, squares)

	first := Search(&bst.BinaryTree, func(n *Node[int, string]) bool {
		return n.Key() > 4
	}, true, func(n *Node[int, string]) int {
		return n.Key()
	})

	assert.Equal(t, []int{5}, first)
}

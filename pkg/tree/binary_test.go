package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BinaryTreeTestSuite struct {
	suite.Suite
	tree *BinaryTree[int, string]
}

func (s *BinaryTreeTestSuite) SetupTest() {
	t, err := New[int, string]()
	require.NoError(s.T(), err)
	s.tree = t
}

func TestBinaryTreeTestSuite(t *testing.T) {
	suite.Run(t, new(BinaryTreeTestSuite))
}

// collectKeys gathers keys via a traversal method.
func collectKeys[K comparable, V any](traverse func(Visit[K, V], ...TraverseOption[K, V])) []K {
	var keys []K

	traverse(func(n *Node[K, V]) bool {
		keys = append(keys, n.Key())

		return true
	})

	return keys
}

func (s *BinaryTreeTestSuite) TestNew() {
	testCases := []struct {
		name    string
		checkFn func() bool
	}{
		{"is empty", func() bool { return s.tree.IsEmpty() }},
		{"size is zero", func() bool { return s.tree.Size() == 0 }},
		{"root is nil", func() bool { return s.tree.Root() == nil }},
		{"map mode default", func() bool { return s.tree.IsMapMode() }},
		{"has identity", func() bool { return s.tree.ID().String() != "" }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			assert.True(s.T(), tc.checkFn())
		})
	}
}

func (s *BinaryTreeTestSuite) TestAddFillsLevelOrder() {
	for i := 1; i <= 7; i++ {
		assert.True(s.T(), s.tree.Add(i, ""))
	}

	assert.Equal(s.T(), 7, s.tree.Size())

	// Level-order bag placement builds a complete tree.
	root := s.tree.Root()
	assert.Equal(s.T(), 1, root.Key())
	assert.Equal(s.T(), 2, root.Left().Key())
	assert.Equal(s.T(), 3, root.Right().Key())
	assert.Equal(s.T(), 4, root.Left().Left().Key())
	assert.Equal(s.T(), 5, root.Left().Right().Key())
	assert.Equal(s.T(), 6, root.Right().Left().Key())
	assert.Equal(s.T(), 7, root.Right().Right().Key())
}

func (s *BinaryTreeTestSuite) TestAddEqualKeyReplacesInPlace() {
	s.tree.Add(1, "one")
	s.tree.Add(2, "two")
	s.tree.Add(3, "three")

	assert.True(s.T(), s.tree.Add(2, "deux"))
	assert.Equal(s.T(), 3, s.tree.Size())

	v, ok := s.tree.Get(2)
	assert.True(s.T(), ok)
	assert.Equal(s.T(), "deux", v)
}

func (s *BinaryTreeTestSuite) TestAddNodeNil() {
	assert.False(s.T(), s.tree.AddNode(nil))
	assert.Equal(s.T(), 0, s.tree.Size())
}

func (s *BinaryTreeTestSuite) TestAddNullTriState() {
	// An explicit-null placeholder occupies a slot: it is not an insertion
	// candidate and is not descended through.
	s.tree.Add(1, "")

	assert.True(s.T(), s.tree.AddNull())
	assert.True(s.T(), s.tree.Root().Left().IsNullMarker())
	assert.Equal(s.T(), 1, s.tree.Size())

	// The next add skips the occupied left slot and lands right.
	assert.True(s.T(), s.tree.Add(2, ""))
	assert.Equal(s.T(), 2, s.tree.Root().Right().Key())

	// With the root's slots occupied and the marker opaque, the only open
	// slots hang off node 2.
	assert.True(s.T(), s.tree.Add(3, ""))
	assert.Equal(s.T(), 3, s.tree.Root().Right().Left().Key())
}

func (s *BinaryTreeTestSuite) TestAddNullEmptyTree() {
	assert.False(s.T(), s.tree.AddNull())
}

func (s *BinaryTreeTestSuite) TestAddFailsWhenFringeIsAllMarkers() {
	s.tree.Add(1, "")
	assert.True(s.T(), s.tree.AddNull())
	assert.True(s.T(), s.tree.AddNull())

	// Both root slots hold placeholders; no empty slot remains reachable.
	assert.False(s.T(), s.tree.Add(2, ""))
	assert.Equal(s.T(), 1, s.tree.Size())
}

func (s *BinaryTreeTestSuite) TestDeleteLoneRoot() {
	s.tree.Add(1, "one")

	results := s.tree.Delete(1)
	require.Len(s.T(), results, 1)
	assert.Equal(s.T(), 1, results[0].Deleted.Key())
	assert.Nil(s.T(), results[0].NeedBalanced)
	assert.True(s.T(), s.tree.IsEmpty())
	assert.False(s.T(), s.tree.Has(1))
}

func (s *BinaryTreeTestSuite) TestDeleteMissingKey() {
	s.tree.Add(1, "")

	assert.Empty(s.T(), s.tree.Delete(99))
	assert.Equal(s.T(), 1, s.tree.Size())
}

func (s *BinaryTreeTestSuite) TestDeleteSwapsRightmostOfLeft() {
	for i := 1; i <= 7; i++ {
		s.tree.Add(i, "")
	}

	// Node 2's subtree holds 4 and 5; deleting 2 swaps in the rightmost
	// descendant of its left subtree.
	results := s.tree.Delete(2)
	require.Len(s.T(), results, 1)
	assert.Equal(s.T(), 2, results[0].Deleted.Key())
	assert.NotNil(s.T(), results[0].NeedBalanced)

	assert.Equal(s.T(), 6, s.tree.Size())
	assert.False(s.T(), s.tree.Has(2))

	for _, k := range []int{1, 3, 4, 5, 6, 7} {
		assert.True(s.T(), s.tree.Has(k), "key %d should remain", k)
	}
}

func (s *BinaryTreeTestSuite) TestDeleteRootWithOnlyRightChild() {
	s.tree.Add(1, "")
	s.tree.AddNull()
	s.tree.Add(2, "")

	results := s.tree.Delete(1)
	require.Len(s.T(), results, 1)
	assert.Equal(s.T(), 2, s.tree.Root().Key())
	assert.Equal(s.T(), 1, s.tree.Size())
}

func (s *BinaryTreeTestSuite) TestDeleteMaintainsParentLinks() {
	for i := 1; i <= 10; i++ {
		s.tree.Add(i, "")
	}

	s.tree.Delete(3)
	s.tree.Delete(5)

	assertParentLinks(s.T(), s.tree)
	assert.Equal(s.T(), 8, s.tree.Size())
}

// assertParentLinks checks invariant P1 over every reachable real node.
func assertParentLinks[K comparable, V any](t *testing.T, tr *BinaryTree[K, V]) {
	t.Helper()

	tr.BFS(func(n *Node[K, V]) bool {
		if l := n.Left(); l != nil && l.IsReal() {
			assert.Same(t, n, l.Parent(), "left child of %v has wrong parent", n.Key())
		}

		if r := n.Right(); r != nil && r.IsReal() {
			assert.Same(t, n, r.Parent(), "right child of %v has wrong parent", n.Key())
		}

		return true
	})
}

func (s *BinaryTreeTestSuite) TestGetNodesAndSearch() {
	for i := 1; i <= 6; i++ {
		s.tree.Add(i, "")
	}

	even := s.tree.GetNodes(func(n *Node[int, string]) bool {
		return n.Key()%2 == 0
	}, false)
	assert.Len(s.T(), even, 3)

	one := s.tree.GetNodes(func(n *Node[int, string]) bool {
		return n.Key() > 3
	}, true)
	assert.Len(s.T(), one, 1)

	keys := Search(s.tree, func(n *Node[int, string]) bool {
		return n.Key()%2 == 1
	}, false, func(n *Node[int, string]) int {
		return n.Key()
	})
	assert.ElementsMatch(s.T(), []int{1, 3, 5}, keys)
}

func (s *BinaryTreeTestSuite) TestNodeModeStorage() {
	t, err := New[int, string](WithMapMode[int, string](false))
	require.NoError(s.T(), err)

	t.Add(1, "uno")
	t.Add(2, "dos")

	assert.False(s.T(), t.IsMapMode())

	v, ok := t.Get(1)
	assert.True(s.T(), ok)
	assert.Equal(s.T(), "uno", v)

	assert.True(s.T(), t.Has(2))
	assert.False(s.T(), t.Has(3))

	t.Delete(1)
	_, ok = t.Get(1)
	assert.False(s.T(), ok)
}

func (s *BinaryTreeTestSuite) TestClearResetsStore() {
	s.tree.Add(1, "one")
	s.tree.Add(2, "two")

	s.tree.Clear()

	assert.True(s.T(), s.tree.IsEmpty())
	assert.False(s.T(), s.tree.Has(1))
	assert.Nil(s.T(), s.tree.Root())
}

func (s *BinaryTreeTestSuite) TestAddRaw() {
	type reading struct {
		id  int
		val string
	}

	t, err := New[int, string](WithToEntryFn[int, string](func(raw any) (Entry[int, string], bool) {
		r, ok := raw.(reading)
		if !ok {
			return Entry[int, string]{}, false
		}

		return Entry[int, string]{Key: r.id, Value: r.val}, true
	}))
	require.NoError(s.T(), err)

	added, err := t.AddRaw(reading{id: 1, val: "a"})
	require.NoError(s.T(), err)
	assert.True(s.T(), added)

	added, err = t.AddRaw("not a reading")
	require.NoError(s.T(), err)
	assert.False(s.T(), added)

	assert.Equal(s.T(), 1, t.Size())
}

func (s *BinaryTreeTestSuite) TestAddRawWithoutFn() {
	_, err := s.tree.AddRaw(1)
	assert.ErrorIs(s.T(), err, ErrToEntryFn)
}

func (s *BinaryTreeTestSuite) TestWithToEntryFnNil() {
	_, err := New[int, string](WithToEntryFn[int, string](nil))
	assert.ErrorIs(s.T(), err, ErrToEntryFn)
}

func (s *BinaryTreeTestSuite) TestKeysValuesEntries() {
	s.tree.Add(1, "a")
	s.tree.Add(2, "b")
	s.tree.Add(3, "c")

	assert.Len(s.T(), s.tree.Keys(), 3)
	assert.Len(s.T(), s.tree.Values(), 3)

	entries := s.tree.Entries()
	assert.Len(s.T(), entries, 3)

	seen := make(map[int]string)
	for _, e := range entries {
		seen[e.Key] = e.Value
	}

	assert.Equal(s.T(), map[int]string{1: "a", 2: "b", 3: "c"}, seen)
}

func (s *BinaryTreeTestSuite) TestLeaves() {
	for i := 1; i <= 6; i++ {
		s.tree.Add(i, "")
	}

	leaves := s.tree.Leaves()

	var keys []int
	for _, l := range leaves {
		keys = append(keys, l.Key())
	}

	assert.ElementsMatch(s.T(), []int{4, 5, 6}, keys)
}

func (s *BinaryTreeTestSuite) TestCloneEquivalence() {
	for i := 1; i <= 7; i++ {
		s.tree.Add(i, "v")
	}

	clone := s.tree.Clone()

	assert.Equal(s.T(), s.tree.Size(), clone.Size())
	assert.NotEqual(s.T(), s.tree.ID(), clone.ID())
	assert.Equal(s.T(), s.tree.Keys(), clone.Keys())
	assert.True(s.T(), Equal(s.tree, clone))
}

func (s *BinaryTreeTestSuite) TestCloneSharesStore() {
	s.tree.Add(1, "one")

	clone := s.tree.Clone()

	// Map-mode clones share the value store by reference.
	s.tree.Add(1, "uno")

	v, ok := clone.Get(1)
	assert.True(s.T(), ok)
	assert.Equal(s.T(), "uno", v)
}

func (s *BinaryTreeTestSuite) TestFilter() {
	for i := 1; i <= 6; i++ {
		s.tree.Add(i, "")
	}

	out := s.tree.Filter(func(key int, _ string) bool {
		return key > 3
	})

	assert.Equal(s.T(), 3, out.Size())
	assert.Equal(s.T(), 6, s.tree.Size())

	for _, k := range []int{4, 5, 6} {
		assert.True(s.T(), out.Has(k))
	}
}

func (s *BinaryTreeTestSuite) TestAddMany() {
	n := s.tree.AddMany([]Entry[int, string]{
		{Key: 1, Value: "a"},
		{Key: 2, Value: "b"},
		{Key: 1, Value: "c"},
	})

	assert.Equal(s.T(), 3, n)
	assert.Equal(s.T(), 2, s.tree.Size())

	v, _ := s.tree.Get(1)
	assert.Equal(s.T(), "c", v)
}

func (s *BinaryTreeTestSuite) TestString() {
	s.tree.Add(1, "")
	assert.Equal(s.T(), "BinaryTree(size=1)", s.tree.String())
}

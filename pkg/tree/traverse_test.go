package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TraverseTestSuite struct {
	suite.Suite
	tree *BinaryTree[int, string]
}

func (s *TraverseTestSuite) SetupTest() {
	t, err := New[int, string]()
	require.NoError(s.T(), err)
	s.tree = t

	// Level-order bag placement of 1..7 builds the complete tree:
	//
	//	        1
	//	    2       3
	//	  4   5   6   7
	for i := 1; i <= 7; i++ {
		s.tree.Add(i, "")
	}
}

func TestTraverseTestSuite(t *testing.T) {
	suite.Run(t, new(TraverseTestSuite))
}

func (s *TraverseTestSuite) TestDFSOrders() {
	testCases := []struct {
		name     string
		order    DFSOrder
		expected []int
	}{
		{"in-order", InOrder, []int{4, 2, 5, 1, 6, 3, 7}},
		{"pre-order", PreOrder, []int{1, 2, 4, 5, 3, 6, 7}},
		{"post-order", PostOrder, []int{4, 5, 2, 6, 7, 3, 1}},
	}

	for _, tc := range testCases {
		for _, engine := range []struct {
			name string
			it   IterationType
		}{
			{"iterative", Iterative},
			{"recursive", Recursive},
		} {
			s.Run(tc.name+"/"+engine.name, func() {
				keys := collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
					s.tree.DFS(tc.order, v, append(opts, Using[int, string](engine.it))...)
				})
				assert.Equal(s.T(), tc.expected, keys)
			})
		}
	}
}

func (s *TraverseTestSuite) TestDFSEarlyStop() {
	var visited []int

	s.tree.DFS(InOrder, func(n *Node[int, string]) bool {
		visited = append(visited, n.Key())

		return n.Key() != 5
	})

	assert.Equal(s.T(), []int{4, 2, 5}, visited)
}

func (s *TraverseTestSuite) TestDFSFromSubtree() {
	keys := collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
		s.tree.DFS(InOrder, v, append(opts, From(s.tree.Root().Left()))...)
	})

	assert.Equal(s.T(), []int{4, 2, 5}, keys)
}

func (s *TraverseTestSuite) TestBFS() {
	for _, engine := range []IterationType{Iterative, Recursive} {
		keys := collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
			s.tree.BFS(v, append(opts, Using[int, string](engine))...)
		})
		assert.Equal(s.T(), []int{1, 2, 3, 4, 5, 6, 7}, keys)
	}
}

func (s *TraverseTestSuite) TestBFSEarlyStop() {
	var visited []int

	s.tree.BFS(func(n *Node[int, string]) bool {
		visited = append(visited, n.Key())

		return len(visited) < 3
	})

	assert.Equal(s.T(), []int{1, 2, 3}, visited)
}

func (s *TraverseTestSuite) TestBFSWithNulls() {
	t, err := New[int, string]()
	require.NoError(s.T(), err)

	t.Add(1, "")
	t.AddNull()
	t.Add(2, "")

	var stream []string

	t.BFS(func(n *Node[int, string]) bool {
		if n.IsNullMarker() {
			stream = append(stream, "null")
		} else {
			stream = append(stream, "real")
		}

		return true
	}, WithNulls[int, string]())

	// Root, its explicit-null left, its real right, then the right child's
	// two empty positions.
	assert.Equal(s.T(), []string{"real", "null", "real", "null", "null"}, stream)
}

func (s *TraverseTestSuite) TestDFSWithNullsSurfacesShape() {
	t, err := New[int, string]()
	require.NoError(s.T(), err)

	t.Add(1, "")
	t.AddNull()
	t.Add(2, "")

	count := 0
	nulls := 0

	t.DFS(InOrder, func(n *Node[int, string]) bool {
		count++
		if n.IsNullMarker() {
			nulls++
		}

		return true
	}, WithNulls[int, string]())

	assert.Equal(s.T(), 5, count)
	assert.Equal(s.T(), 3, nulls)
}

func (s *TraverseTestSuite) TestListLevels() {
	for _, engine := range []IterationType{Iterative, Recursive} {
		rows := s.tree.ListLevels(Using[int, string](engine))

		require.Len(s.T(), rows, 3)
		assert.Len(s.T(), rows[0], 1)
		assert.Len(s.T(), rows[1], 2)
		assert.Len(s.T(), rows[2], 4)

		assert.Equal(s.T(), 1, rows[0][0].Key())
		assert.Equal(s.T(), 2, rows[1][0].Key())
		assert.Equal(s.T(), 3, rows[1][1].Key())
	}
}

func (s *TraverseTestSuite) TestListLevelsEmpty() {
	t, err := New[int, string]()
	require.NoError(s.T(), err)

	assert.Nil(s.T(), t.ListLevels())
}

func (s *TraverseTestSuite) TestMorrisMatchesDFS() {
	testCases := []struct {
		name  string
		order DFSOrder
	}{
		{"in-order", InOrder},
		{"pre-order", PreOrder},
		{"post-order", PostOrder},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			expected := collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
				s.tree.DFS(tc.order, v, opts...)
			})

			got := collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
				s.tree.Morris(tc.order, v, opts...)
			})

			assert.Equal(s.T(), expected, got)
		})
	}
}

func (s *TraverseTestSuite) TestMorrisRestoresThreads() {
	before := collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
		s.tree.DFS(InOrder, v, opts...)
	})

	s.tree.Morris(InOrder, func(n *Node[int, string]) bool { return true })
	s.tree.Morris(PostOrder, func(n *Node[int, string]) bool { return true })

	after := collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
		s.tree.DFS(InOrder, v, opts...)
	})

	assert.Equal(s.T(), before, after)
	assertParentLinks(s.T(), s.tree)
}

func (s *TraverseTestSuite) TestMorrisEarlyStopStillRestores() {
	s.tree.Morris(InOrder, func(n *Node[int, string]) bool {
		return n.Key() != 2
	})

	keys := collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
		s.tree.DFS(InOrder, v, opts...)
	})
	assert.Equal(s.T(), []int{4, 2, 5, 1, 6, 3, 7}, keys)

	s.tree.Morris(PostOrder, func(n *Node[int, string]) bool {
		return n.Key() != 5
	})

	keys = collectKeys(func(v Visit[int, string], opts ...TraverseOption[int, string]) {
		s.tree.DFS(InOrder, v, opts...)
	})
	assert.Equal(s.T(), []int{4, 2, 5, 1, 6, 3, 7}, keys)
}

func (s *TraverseTestSuite) TestTraversalsOnEmptyTree() {
	t, err := New[int, string]()
	require.NoError(s.T(), err)

	calls := 0
	visit := func(n *Node[int, string]) bool {
		calls++

		return true
	}

	t.DFS(InOrder, visit)
	t.BFS(visit)
	t.Morris(InOrder, visit)

	assert.Zero(s.T(), calls)
}

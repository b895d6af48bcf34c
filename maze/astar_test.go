package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bfsDistance is the reference shortest-path length over open passages, -1 when unreachable.
func bfsDistance(t *testing.T, g *Grid, start, goal Point) int {
	t.Helper()
	dist := map[Point]int{start: 0}
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == goal {
			return dist[p]
		}
		open, err := g.OpenNeighbors(p)
		require.NoError(t, err)
		for _, n := range open {
			if _, ok := dist[n]; !ok {
				dist[n] = dist[p] + 1
				queue = append(queue, n)
			}
		}
	}
	return -1
}

func corridor(t *testing.T, length int) *Grid {
	t.Helper()
	g, err := New(length, 1)
	require.NoError(t, err)
	for x := 1; x < length; x++ {
		require.NoError(t, g.RemoveWallPair(Point{X: x - 1, Y: 0}, Point{X: x, Y: 0}))
	}
	return g
}

func TestSearchThreeByOne(t *testing.T) {
	g := carved(t, 3, 1, Point{}, WithSeed(1))

	result, err := Search(g, Point{X: 0, Y: 0}, Point{X: 2, Y: 0})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, Path{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, result.Path)
	assert.Equal(t, 2, result.Path.Steps())
}

func TestSearchCorridor(t *testing.T) {
	for _, n := range []int{1, 2, 10, 250} {
		g := corridor(t, n)
		result, err := Search(g, Point{X: 0, Y: 0}, Point{X: n - 1, Y: 0})
		require.NoError(t, err)
		require.True(t, result.Found)
		assert.Equal(t, n-1, result.Path.Steps())
		assert.Equal(t, Point{X: 0, Y: 0}, result.Path[0])
		assert.Equal(t, Point{X: n - 1, Y: 0}, result.Path[len(result.Path)-1])
	}
}

func TestSearchStartIsGoal(t *testing.T) {
	g := carved(t, 4, 4, Point{}, WithSeed(2))
	result, err := Search(g, Point{X: 2, Y: 2}, Point{X: 2, Y: 2})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, Path{{X: 2, Y: 2}}, result.Path)
	assert.Equal(t, 0, result.Path.Steps())
}

func TestSearchUnreachable(t *testing.T) {
	t.Run("never carved", func(t *testing.T) {
		g, err := New(5, 5)
		require.NoError(t, err)
		result, err := Search(g, Point{X: 0, Y: 0}, Point{X: 4, Y: 4})
		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Nil(t, result.Path)
		assert.False(t, result.Path.Valid(g))
	})

	t.Run("two disjoint regions", func(t *testing.T) {
		g, err := New(4, 1)
		require.NoError(t, err)
		require.NoError(t, g.RemoveWallPair(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}))
		require.NoError(t, g.RemoveWallPair(Point{X: 2, Y: 0}, Point{X: 3, Y: 0}))

		result, err := Search(g, Point{X: 0, Y: 0}, Point{X: 3, Y: 0})
		require.NoError(t, err)
		assert.False(t, result.Found)
		assert.Equal(t, 2, result.Expanded)
	})
}

func TestSearchOutOfBounds(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)

	_, err = Search(g, Point{X: -1, Y: 0}, Point{X: 2, Y: 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = Search(g, Point{X: 0, Y: 0}, Point{X: 3, Y: 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSearchOptimalOnOpenField(t *testing.T) {
	// A grid with loops: every interior wall removed.
	g, err := New(8, 6)
	require.NoError(t, err)
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			p := Point{X: x, Y: y}
			if x+1 < 8 {
				require.NoError(t, g.RemoveWallPair(p, Point{X: x + 1, Y: y}))
			}
			if y+1 < 6 {
				require.NoError(t, g.RemoveWallPair(p, Point{X: x, Y: y + 1}))
			}
		}
	}

	start, goal := Point{X: 1, Y: 4}, Point{X: 7, Y: 0}
	result, err := Search(g, start, goal)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, start.Manhattan(goal), result.Path.Steps())
	assert.True(t, result.Path.Valid(g))
}

func TestSearchMatchesBFS(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := carved(t, 25, 17, Point{}, WithSeed(seed))
		start := Point{X: int(seed) % 25, Y: 0}
		goal := Point{X: 24 - int(seed)%25, Y: 16}

		result, err := Search(g, start, goal)
		require.NoError(t, err)
		require.True(t, result.Found, "seed %d", seed)
		assert.Equal(t, bfsDistance(t, g, start, goal), result.Path.Steps(), "seed %d", seed)
		assert.True(t, result.Path.Valid(g), "seed %d", seed)
		assert.Equal(t, start, result.Path[0])
		assert.Equal(t, goal, result.Path[len(result.Path)-1])
	}
}

func TestSearchDeterministic(t *testing.T) {
	g, err := New(6, 6)
	require.NoError(t, err)
	for y := 0; y < 6; y++ {
		for x := 0; x+1 < 6; x++ {
			require.NoError(t, g.RemoveWallPair(Point{X: x, Y: y}, Point{X: x + 1, Y: y}))
		}
	}
	for x := 0; x < 6; x++ {
		for y := 0; y+1 < 6; y++ {
			require.NoError(t, g.RemoveWallPair(Point{X: x, Y: y}, Point{X: x, Y: y + 1}))
		}
	}

	first, err := Search(g, Point{}, Point{X: 5, Y: 5})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Search(g, Point{}, Point{X: 5, Y: 5})
		require.NoError(t, err)
		assert.Equal(t, first.Path, again.Path)
		assert.Equal(t, first.Expanded, again.Expanded)
	}
}

func TestSearchLargeMaze(t *testing.T) {
	if testing.Short() {
		t.Skip("large maze")
	}
	g := carved(t, 300, 300, Point{}, WithSeed(11))
	goal := Point{X: 299, Y: 299}

	result, err := Search(g, Point{}, goal)
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.True(t, result.Path.Valid(g))
	assert.Equal(t, bfsDistance(t, g, Point{}, goal), result.Path.Steps())
}

func TestPathValid(t *testing.T) {
	g := corridor(t, 3)
	assert.True(t, Path{{X: 0, Y: 0}, {X: 1, Y: 0}}.Valid(g))
	assert.False(t, Path{{X: 0, Y: 0}, {X: 2, Y: 0}}.Valid(g))

	walled, err := New(2, 1)
	require.NoError(t, err)
	assert.False(t, Path{{X: 0, Y: 0}, {X: 1, Y: 0}}.Valid(walled))
	assert.False(t, Path{}.Valid(walled))
	assert.False(t, Path(nil).Valid(g))
	assert.True(t, Path{{X: 1, Y: 0}}.Valid(walled))
	assert.Equal(t, 0, Path{}.Steps())
}

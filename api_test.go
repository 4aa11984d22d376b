package astar

import (
	"math/rand/v2"
	"sync"
	"testing"

	mapset "github.com/deckarep/golang-set"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bfsDistances returns hop counts from source to every cell, -1 if unreachable.
func bfsDistances(g *Grid, source Cell) []int {
	dist := make([]int, g.Len())
	for i := range dist {
		dist[i] = -1
	}
	visited := mapset.NewSet(source)
	dist[g.Index(source)] = 0
	queue := []Cell{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.Neighbors(current) {
			if visited.Contains(next) {
				continue
			}
			visited.Add(next)
			dist[g.Index(next)] = dist[g.Index(current)] + 1
			queue = append(queue, next)
		}
	}
	return dist
}

func randomGrid(t *testing.T, rng *rand.Rand, rows, cols int, density float64, keep ...Cell) *Grid {
	t.Helper()
	keepSet := mapset.NewSet()
	for _, c := range keep {
		keepSet.Add(c)
	}
	var blocked []Cell
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := Cell{r, c}
			if rng.Float64() < density && !keepSet.Contains(cell) {
				blocked = append(blocked, cell)
			}
		}
	}
	g, err := NewGrid(rows, cols, blocked...)
	require.NoError(t, err)
	return g
}

// assertValidPath checks endpoints, adjacency and that every cell is free.
func assertValidPath(t *testing.T, g *Grid, path []Cell, start, goal Cell) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, goal, path[len(path)-1])
	for i, c := range path {
		assert.True(t, g.IsFree(c), "path cell %v is not free", c)
		if i > 0 {
			assert.Equal(t, 1, Manhattan(path[i-1], c), "cells %v and %v are not adjacent", path[i-1], c)
		}
	}
}

func TestFindPathOpenGrid(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	result, err := FindPath(g, Cell{0, 0}, Cell{2, 2})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, 4, result.Cost)
	require.Len(t, result.Path, 5)
	assertValidPath(t, g, result.Path, Cell{0, 0}, Cell{2, 2})

	// Equal f-costs are expanded in insertion order, and "down" is pushed
	// before "right", so the route runs down the first column.
	want := []Cell{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}
	if diff := cmp.Diff(want, result.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 9, result.Expanded)
}

func TestFindPathStartIsGoal(t *testing.T) {
	g, err := GridFromRows(
		".#.",
		"#.#",
	)
	require.NoError(t, err)
	for _, c := range []Cell{{0, 0}, {1, 1}, {0, 2}} {
		result, err := FindPath(g, c, c)
		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.Equal(t, []Cell{c}, result.Path)
		assert.Equal(t, 0, result.Cost)
	}
}

func TestFindPathUnreachable(t *testing.T) {
	t.Run("everything but start blocked", func(t *testing.T) {
		g, err := GridFromRows(
			".##",
			"###",
			"###",
		)
		require.NoError(t, err)
		result, err := FindPath(g, Cell{0, 0}, Cell{2, 2})
		assert.ErrorIs(t, err, ErrUnreachable)
		assert.False(t, result.Found)
		assert.Nil(t, result.Path)
	})

	t.Run("free goal walled off", func(t *testing.T) {
		g, err := GridFromRows(
			"....",
			"..##",
			"..#.",
		)
		require.NoError(t, err)
		result, err := FindPath(g, Cell{0, 0}, Cell{2, 3})
		assert.ErrorIs(t, err, ErrUnreachable)
		assert.NotErrorIs(t, err, ErrInvalidEndpoint)
		assert.False(t, result.Found)
		assert.Nil(t, result.Path)
		assert.Equal(t, 8, result.Expanded)
	})
}

func TestFindPathInvalidEndpoints(t *testing.T) {
	g, err := GridFromRows(
		".#",
		"..",
	)
	require.NoError(t, err)

	tests := []struct {
		name   string
		start  Cell
		goal   Cell
		which  string
		reason string
	}{
		{"start out of bounds", Cell{-1, 0}, Cell{1, 1}, "start", "is out of bounds"},
		{"goal out of bounds", Cell{0, 0}, Cell{1, 2}, "goal", "is out of bounds"},
		{"start blocked", Cell{0, 1}, Cell{1, 1}, "start", "is blocked"},
		{"goal blocked", Cell{0, 0}, Cell{0, 1}, "goal", "is blocked"},
		{"blocked start equal to goal", Cell{0, 1}, Cell{0, 1}, "start", "is blocked"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := FindPath(g, tc.start, tc.goal)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEndpoint)
			assert.ErrorIs(t, err, ErrUnreachable)
			var endpointErr *EndpointError
			require.ErrorAs(t, err, &endpointErr)
			assert.Equal(t, tc.which, endpointErr.Which)
			assert.Equal(t, tc.reason, endpointErr.Reason)
			assert.False(t, result.Found)
			assert.Nil(t, result.Path)
		})
	}

	t.Run("nil grid", func(t *testing.T) {
		_, err := FindPath(nil, Cell{}, Cell{})
		assert.ErrorIs(t, err, ErrInvalidGrid)
	})
}

func TestFindPathMatchesBFS(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 300; i++ {
		rows, cols := 1+rng.IntN(15), 1+rng.IntN(15)
		start := Cell{rng.IntN(rows), rng.IntN(cols)}
		goal := Cell{rng.IntN(rows), rng.IntN(cols)}
		g := randomGrid(t, rng, rows, cols, 0.35, start, goal)

		want := bfsDistances(g, start)[g.Index(goal)]
		result, err := FindPath(g, start, goal)
		if want < 0 {
			assert.ErrorIs(t, err, ErrUnreachable, "grid %d", i)
			assert.False(t, result.Found)
			continue
		}
		require.NoError(t, err, "grid %d", i)
		assert.Equal(t, want, result.Cost, "grid %d", i)
		assert.Len(t, result.Path, want+1, "grid %d", i)
		assertValidPath(t, g, result.Path, start, goal)
	}
}

// An admissible but inconsistent heuristic makes cells get improved after
// they were expanded, so the frontier holds stale entries that must be
// skipped rather than trusted.
func TestFindPathStaleEntries(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 200; i++ {
		rows, cols := 2+rng.IntN(12), 2+rng.IntN(12)
		start := Cell{rng.IntN(rows), rng.IntN(cols)}
		goal := Cell{rng.IntN(rows), rng.IntN(cols)}
		g := randomGrid(t, rng, rows, cols, 0.25, start, goal)

		toGoal := bfsDistances(g, goal)
		estimates := make([]int, g.Len())
		for idx, d := range toGoal {
			if d > 0 {
				estimates[idx] = rng.IntN(d + 1)
			}
		}
		heuristic := func(from, _ Cell) int { return estimates[g.Index(from)] }

		want := toGoal[g.Index(start)]
		result, err := FindPath(g, start, goal, WithHeuristic(heuristic))
		if want < 0 {
			assert.ErrorIs(t, err, ErrUnreachable)
			continue
		}
		require.NoError(t, err, "grid %d", i)
		assert.Equal(t, want, result.Cost, "grid %d", i)
		assertValidPath(t, g, result.Path, start, goal)
	}
}

func TestFindPathDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	g := randomGrid(t, rng, 30, 30, 0.25, Cell{0, 0}, Cell{29, 29})

	first, firstErr := FindPath(g, Cell{0, 0}, Cell{29, 29})
	for i := 0; i < 5; i++ {
		again, err := FindPath(g, Cell{0, 0}, Cell{29, 29})
		assert.Equal(t, firstErr, err)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestFindPathConcurrentCallers(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	g := randomGrid(t, rng, 40, 40, 0.2, Cell{0, 0}, Cell{39, 39})
	want, wantErr := FindPath(g, Cell{0, 0}, Cell{39, 39})

	var wg sync.WaitGroup
	results := make([]Result, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = FindPath(g, Cell{0, 0}, Cell{39, 39})
		}()
	}
	wg.Wait()
	for i := range results {
		assert.Equal(t, wantErr, errs[i])
		assert.Equal(t, want, results[i])
	}
}

func TestFindPathMaxExpansions(t *testing.T) {
	g, err := NewGrid(10, 10)
	require.NoError(t, err)

	result, err := FindPath(g, Cell{0, 0}, Cell{9, 9}, WithMaxExpansions(3))
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.False(t, result.Found)
	assert.Nil(t, result.Path)
	assert.Equal(t, 3, result.Expanded)

	result, err = FindPath(g, Cell{0, 0}, Cell{0, 3}, WithMaxExpansions(3))
	require.NoError(t, err, "goal popped right at the limit still counts")
	assert.Equal(t, 3, result.Cost)
}

func TestFindPathLogsCompletion(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	_, err = FindPath(g, Cell{0, 0}, Cell{1, 1}, WithLogger(logger))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "search finished", entry.Message)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, true, entry.Data["found"])
	assert.Equal(t, "(0,0)", entry.Data["start"])
	assert.Equal(t, "(1,1)", entry.Data["goal"])
}

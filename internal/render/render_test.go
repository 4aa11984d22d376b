package render

import (
	"bytes"
	"strings"
	"testing"

	astar "github.com/pdrpinto/gridastar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	g, err := astar.GridFromRows(
		"...",
		".#.",
		"...",
	)
	require.NoError(t, err)
	start, goal := astar.Cell{Row: 0, Col: 0}, astar.Cell{Row: 2, Col: 2}
	result, err := astar.FindPath(g, start, goal)
	require.NoError(t, err)
	pathCopy := append([]astar.Cell(nil), result.Path...)

	var buf bytes.Buffer
	require.NoError(t, Grid(&buf, g, Options{Start: &start, Goal: &goal, Path: result.Path}))
	assert.Equal(t, "S..\n*#.\n**G\n", buf.String())
	assert.Equal(t, pathCopy, result.Path)

	t.Run("no overlays", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, Grid(&buf, g, Options{}))
		assert.Equal(t, "...\n.#.\n...\n", buf.String())
	})

	t.Run("color adds escape codes", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, Grid(&buf, g, Options{Start: &start, Color: true}))
		assert.Contains(t, buf.String(), "\x1b[")
		assert.Contains(t, buf.String(), "S")
	})
}

func TestFrames(t *testing.T) {
	path := []astar.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}}
	frames := Frames(path)
	require.Len(t, frames, 3)
	for i, frame := range frames {
		assert.Equal(t, path[:i+1], frame)
	}
	assert.Empty(t, Frames(nil))

	// appending to a frame must not clobber the path
	_ = append(frames[0], astar.Cell{Row: 9, Col: 9})
	assert.Equal(t, astar.Cell{Row: 0, Col: 1}, path[1])
}

func TestAnimate(t *testing.T) {
	g, err := astar.NewGrid(1, 3)
	require.NoError(t, err)
	start, goal := astar.Cell{Row: 0, Col: 0}, astar.Cell{Row: 0, Col: 2}
	path := []astar.Cell{start, {Row: 0, Col: 1}, goal}

	var buf bytes.Buffer
	require.NoError(t, Animate(&buf, g, Options{Start: &start, Goal: &goal, Path: path}, 0, "--\n"))
	frames := strings.Split(buf.String(), "--\n")
	assert.Equal(t, []string{"S.G\n", "S*G\n", "S*G\n"}, frames)
}

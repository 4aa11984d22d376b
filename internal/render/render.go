// Package render draws grids and paths as text for terminals.
package render

import (
	"bufio"
	"fmt"
	"io"
	"time"

	mapset "github.com/deckarep/golang-set"
	"github.com/logrusorgru/aurora"
	astar "github.com/pdrpinto/gridastar"
)

// Glyphs used in rendered output.
const (
	FreeGlyph    = '.'
	BlockedGlyph = '#'
	StartGlyph   = 'S'
	GoalGlyph    = 'G'
	PathGlyph    = '*'
)

// Options controls what Grid draws on top of the occupancy map.
type Options struct {
	Start *astar.Cell
	Goal  *astar.Cell
	Path  []astar.Cell
	Color bool
}

// Grid writes one line per grid row. Neither the grid nor the path is
// modified.
func Grid(w io.Writer, grid *astar.Grid, opts Options) error {
	onPath := mapset.NewSet()
	for _, c := range opts.Path {
		onPath.Add(c)
	}
	au := aurora.NewAurora(opts.Color)

	bw := bufio.NewWriter(w)
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			cell := astar.Cell{Row: r, Col: c}
			var glyph fmt.Stringer
			switch {
			case opts.Start != nil && cell == *opts.Start:
				glyph = au.Green(string(StartGlyph))
			case opts.Goal != nil && cell == *opts.Goal:
				glyph = au.Red(string(GoalGlyph))
			case onPath.Contains(cell):
				glyph = au.Cyan(string(PathGlyph))
			case !grid.IsFree(cell):
				glyph = au.Gray(string(BlockedGlyph))
			default:
				glyph = au.Gray(string(FreeGlyph))
			}
			if _, err := bw.WriteString(glyph.String()); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Frames returns the growing prefixes path[:1], path[:2] ... path[:n].
// Prefixes share the backing array of path.
func Frames(path []astar.Cell) [][]astar.Cell {
	frames := make([][]astar.Cell, 0, len(path))
	for i := 1; i <= len(path); i++ {
		frames = append(frames, path[:i:i])
	}
	return frames
}

// Animate draws one frame per path prefix, separated by delay. Frames after
// the first are preceded by clear, which may be empty.
func Animate(w io.Writer, grid *astar.Grid, opts Options, delay time.Duration, clear string) error {
	for i, frame := range Frames(opts.Path) {
		if i > 0 {
			time.Sleep(delay)
			if _, err := io.WriteString(w, clear); err != nil {
				return err
			}
		}
		frameOpts := opts
		frameOpts.Path = frame
		if err := Grid(w, grid, frameOpts); err != nil {
			return err
		}
	}
	return nil
}

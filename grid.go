package astar

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Cell is a 0-indexed (row, column) grid coordinate.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// directions is the fixed expansion order: up, down, left, right.
var directions = [4]Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grid is an immutable rectangular occupancy map.
type Grid struct {
	rows, cols int
	blocked    []bool
}

// NewGrid returns a rows x cols grid where only the given cells are blocked.
func NewGrid(rows, cols int, blocked ...Cell) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidGrid, rows, cols)
	}
	g := &Grid{rows: rows, cols: cols, blocked: make([]bool, rows*cols)}
	for _, c := range blocked {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: blocked cell %v out of bounds", ErrInvalidGrid, c)
		}
		g.blocked[g.Index(c)] = true
	}
	return g, nil
}

// GridFromMatrix builds a grid from rows of occupancy flags, 0 meaning free
// and anything else blocked. The matrix is copied.
func GridFromMatrix(matrix [][]int) (*Grid, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidGrid)
	}
	cols := len(matrix[0])
	g := &Grid{rows: len(matrix), cols: cols, blocked: make([]bool, len(matrix)*cols)}
	for r, row := range matrix {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, r, len(row), cols)
		}
		for c, v := range row {
			g.blocked[r*cols+c] = v != 0
		}
	}
	return g, nil
}

// Scenario is a parsed text map: the grid plus any S and G markers found.
type Scenario struct {
	Grid     *Grid
	Start    Cell
	Goal     Cell
	HasStart bool
	HasGoal  bool
}

// ParseScenario reads a text map where '.' is free and '#' is blocked.
// 'S' and 'G' mark free start and goal cells. Blank lines are ignored.
func ParseScenario(r io.Reader) (Scenario, error) {
	var (
		sc     Scenario
		matrix [][]int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" {
			continue
		}
		row := make([]int, 0, len(line))
		for col, ch := range line {
			here := Cell{Row: len(matrix), Col: col}
			switch ch {
			case '.':
				row = append(row, 0)
			case '#':
				row = append(row, 1)
			case 'S':
				if sc.HasStart {
					return Scenario{}, fmt.Errorf("%w: second start marker at %v", ErrInvalidGrid, here)
				}
				sc.Start, sc.HasStart = here, true
				row = append(row, 0)
			case 'G':
				if sc.HasGoal {
					return Scenario{}, fmt.Errorf("%w: second goal marker at %v", ErrInvalidGrid, here)
				}
				sc.Goal, sc.HasGoal = here, true
				row = append(row, 0)
			default:
				return Scenario{}, fmt.Errorf("%w: unknown glyph %q at %v", ErrInvalidGrid, ch, here)
			}
		}
		matrix = append(matrix, row)
	}
	if err := scanner.Err(); err != nil {
		return Scenario{}, fmt.Errorf("read grid: %w", err)
	}
	g, err := GridFromMatrix(matrix)
	if err != nil {
		return Scenario{}, err
	}
	sc.Grid = g
	return sc, nil
}

// ParseGrid reads a text map and drops any start and goal markers.
func ParseGrid(r io.Reader) (*Grid, error) {
	sc, err := ParseScenario(r)
	if err != nil {
		return nil, err
	}
	return sc.Grid, nil
}

// GridFromRows is ParseGrid over in-memory lines.
func GridFromRows(rows ...string) (*Grid, error) {
	return ParseGrid(strings.NewReader(strings.Join(rows, "\n")))
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Len is the number of cells in the grid.
func (g *Grid) Len() int { return len(g.blocked) }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// IsFree reports whether c is in bounds and not blocked.
func (g *Grid) IsFree(c Cell) bool {
	return g.InBounds(c) && !g.blocked[g.Index(c)]
}

// Index linearizes an in-bounds cell as row*cols+col.
func (g *Grid) Index(c Cell) int { return c.Row*g.cols + c.Col }

// CellAt is the inverse of Index.
func (g *Grid) CellAt(i int) Cell { return Cell{Row: i / g.cols, Col: i % g.cols} }

// FreeCount returns the number of free cells.
func (g *Grid) FreeCount() int {
	n := 0
	for _, b := range g.blocked {
		if !b {
			n++
		}
	}
	return n
}

// Neighbors returns the free orthogonal neighbors of c in up, down, left,
// right order.
func (g *Grid) Neighbors(c Cell) []Cell {
	return g.AppendNeighbors(make([]Cell, 0, len(directions)), c)
}

// AppendNeighbors appends the free orthogonal neighbors of c to dst.
func (g *Grid) AppendNeighbors(dst []Cell, c Cell) []Cell {
	for _, d := range directions {
		next := Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
		if g.IsFree(next) {
			dst = append(dst, next)
		}
	}
	return dst
}

// Package generate samples random occupancy grids.
package generate

import (
	"errors"
	"fmt"
	"math/rand/v2"

	astar "github.com/pdrpinto/gridastar"
	"github.com/sirupsen/logrus"
)

// DefaultDensity is the probability that a sampled cell is blocked.
const DefaultDensity = 0.3

// ErrNoReachableGrid is returned when Reachable runs out of attempts.
var ErrNoReachableGrid = errors.New("no reachable grid generated")

// Random samples a rows x cols grid where each cell is blocked with
// probability density. Cells in keepFree are always free.
func Random(rng *rand.Rand, rows, cols int, density float64, keepFree ...astar.Cell) (*astar.Grid, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("density %v outside [0,1]", density)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d must be positive", astar.ErrInvalidGrid, rows, cols)
	}
	keep := make(map[astar.Cell]bool, len(keepFree))
	for _, c := range keepFree {
		keep[c] = true
	}
	var blocked []astar.Cell
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := astar.Cell{Row: r, Col: c}
			if rng.Float64() < density && !keep[cell] {
				blocked = append(blocked, cell)
			}
		}
	}
	return astar.NewGrid(rows, cols, blocked...)
}

// Params describes the grids Reachable samples.
type Params struct {
	Rows    int
	Cols    int
	Density float64
}

// Reachable keeps sampling grids until one connects start and goal, and
// returns that grid with its search result and the number of attempts used.
func Reachable(
	rng *rand.Rand,
	params Params,
	start, goal astar.Cell,
	maxAttempts int,
	logger logrus.FieldLogger,
	options ...astar.Option,
) (*astar.Grid, astar.Result, int, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		grid, err := Random(rng, params.Rows, params.Cols, params.Density, start, goal)
		if err != nil {
			return nil, astar.Result{}, attempt, err
		}
		result, err := astar.FindPath(grid, start, goal, options...)
		switch {
		case err == nil:
			return grid, result, attempt, nil
		case errors.Is(err, astar.ErrInvalidEndpoint):
			return nil, astar.Result{}, attempt, err
		case errors.Is(err, astar.ErrUnreachable):
			logger.WithField("attempt", attempt).Info("no path between start and goal, regenerating")
		default:
			return nil, astar.Result{}, attempt, err
		}
	}
	return nil, astar.Result{}, maxAttempts, fmt.Errorf("%w after %d attempts", ErrNoReachableGrid, maxAttempts)
}

package astar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid is returned when a grid cannot be built from its input.
	ErrInvalidGrid = errors.New("invalid grid")
	// ErrInvalidEndpoint matches every *EndpointError.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	// ErrUnreachable is returned when the frontier empties before the goal is popped.
	ErrUnreachable = errors.New("no path found")
	// ErrLimitExceeded is returned when WithMaxExpansions stops a search early.
	ErrLimitExceeded = errors.New("expansion limit exceeded")
)

// EndpointError describes a start or goal cell the search refused to use.
type EndpointError struct {
	Which  string // "start" or "goal"
	Cell   Cell
	Reason string
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%s %v %s", e.Which, e.Cell, e.Reason)
}

// Is matches ErrInvalidEndpoint, and ErrUnreachable since no path can start
// or end on a cell the search cannot enter.
func (e *EndpointError) Is(target error) bool {
	return target == ErrInvalidEndpoint || target == ErrUnreachable
}

func checkEndpoint(grid *Grid, which string, cell Cell) error {
	switch {
	case !grid.InBounds(cell):
		return &EndpointError{Which: which, Cell: cell, Reason: "is out of bounds"}
	case !grid.IsFree(cell):
		return &EndpointError{Which: which, Cell: cell, Reason: "is blocked"}
	}
	return nil
}

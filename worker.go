package astar

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Query is one start/goal pair for FindPaths.
type Query struct {
	Start Cell
	Goal  Cell
}

// Outcome is the result of one Query. Err holds what FindPath returned.
type Outcome struct {
	Query  Query
	Result Result
	Err    error
}

// FindPaths runs independent searches on a shared grid using a pool of
// WithWorkers goroutines. Outcomes are returned in query order. Per-query
// failures are reported in Outcome.Err; the returned error is only set when
// ctx is cancelled before every query ran.
func FindPaths(ctx context.Context, grid *Grid, queries []Query, options ...Option) ([]Outcome, error) {
	searchOptions := buildOptions(options)
	outcomes := make([]Outcome, len(queries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(searchOptions.NumberOfWorkers)
	for i, query := range queries {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcome := Outcome{Query: query}
			s, err := newSearch(grid, query.Start, query.Goal, searchOptions)
			if err != nil {
				outcome.Err = err
			} else {
				outcome.Result, outcome.Err = s.run()
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

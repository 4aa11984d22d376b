package astar

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Result contains the outcome of a search
type Result struct {
	Path     []Cell // start..goal inclusive, nil unless Found
	Cost     int    // number of steps in Path
	Expanded int    // cells taken off the frontier and expanded
	Found    bool
}

// Options defines parameters for the search.
type Options struct {
	Heuristic       Heuristic
	MaxExpansions   int
	NumberOfWorkers int
	Logger          logrus.FieldLogger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces Manhattan distance. The heuristic must be
// admissible or returned paths may not be shortest.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithMaxExpansions stops a search with ErrLimitExceeded after n expansions.
// Zero means no limit.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithWorkers specifies how many goroutines FindPaths runs searches on.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets the logger that receives per-search debug entries.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(options *Options) { options.Logger = logger }
}

var discardLogger = func() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}()

func buildOptions(options []Option) Options {
	searchOptions := Options{
		Heuristic:       Manhattan,
		NumberOfWorkers: runtime.NumCPU(),
		Logger:          discardLogger,
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Manhattan
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = discardLogger
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// FindPath runs A* from start to goal and returns a shortest path.
//
// An out-of-bounds or blocked endpoint yields an *EndpointError. When the
// goal cannot be reached the Result has Found false and the error is
// ErrUnreachable; no partial path is ever returned.
func FindPath(grid *Grid, start, goal Cell, options ...Option) (Result, error) {
	s, err := newSearch(grid, start, goal, buildOptions(options))
	if err != nil {
		return Result{}, err
	}
	return s.run()
}

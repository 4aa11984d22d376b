// Command gridpath finds a shortest path on a grid map, either read from a
// text file or sampled at random, and draws the result in the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/generate"
	"github.com/pdrpinto/gridastar/internal/render"
	"github.com/sirupsen/logrus"
)

const clearScreen = "\033[H\033[2J"

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	cfg   config.Config
	trace bool
}

func parseArgs(args []string, output io.Writer) (*options, bool, error) {
	flagSet := flag.NewFlagSet("gridpath", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridpath - shortest paths on occupancy grids.

Usage:
  gridpath [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := config.Default()
	configFlag := flagSet.String("config", "", "Path to an HCL scenario file.")
	mapFlag := flagSet.String("map", "", "Path to a text map ('.' free, '#' blocked, optional S and G).")
	rowsFlag := flagSet.Int("rows", defaults.Rows, "Rows of a generated grid.")
	colsFlag := flagSet.Int("cols", defaults.Cols, "Columns of a generated grid.")
	densityFlag := flagSet.Float64("density", defaults.Density, "Probability that a generated cell is blocked.")
	seedFlag := flagSet.Int64("seed", 0, "Generator seed. 0 picks one from the clock.")
	attemptsFlag := flagSet.Int("attempts", defaults.Attempts, "Grids to generate before giving up.")
	startFlag := flagSet.String("start", "", "Start cell as row,col. Defaults to the top-left corner.")
	goalFlag := flagSet.String("goal", "", "Goal cell as row,col. Defaults to the bottom-right corner.")
	animateFlag := flagSet.Bool("animate", false, "Draw the path one step at a time.")
	delayFlag := flagSet.String("delay", defaults.Delay, "Delay between animation frames.")
	colorFlag := flagSet.Bool("color", false, "Colorize output.")
	traceFlag := flagSet.Bool("trace", false, "Log every expansion at debug level.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg := defaults
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
	}

	// Explicit flags win over the config file.
	var parseErr error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "map":
			cfg.Map = *mapFlag
		case "rows":
			cfg.Rows = *rowsFlag
		case "cols":
			cfg.Cols = *colsFlag
		case "density":
			cfg.Density = *densityFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "attempts":
			cfg.Attempts = *attemptsFlag
		case "start":
			if cell, err := config.ParseCell(*startFlag); err != nil {
				parseErr = err
			} else {
				cfg.Start = cell
			}
		case "goal":
			if cell, err := config.ParseCell(*goalFlag); err != nil {
				parseErr = err
			} else {
				cfg.Goal = cell
			}
		case "animate":
			cfg.Animate = *animateFlag
		case "delay":
			cfg.Delay = *delayFlag
		case "color":
			cfg.Color = *colorFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		}
	})
	if parseErr != nil {
		return nil, false, &ExitError{Code: 2, Message: parseErr.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return &options{cfg: cfg, trace: *traceFlag}, false, nil
}

func newLogger(cfg config.Config, output io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(output)
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if strings.ToLower(cfg.LogFormat) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return logger
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, exit, err := parseArgs(args, stderr)
	if err != nil || exit {
		return err
	}
	cfg := opts.cfg
	logger := newLogger(cfg, stderr)
	searchOptions := []astar.Option{astar.WithLogger(logger)}

	var (
		grid        *astar.Grid
		start, goal astar.Cell
		result      astar.Result
	)
	if cfg.Map != "" {
		grid, start, goal, err = loadMap(cfg)
		if err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
		result, err = search(grid, start, goal, opts.trace, logger, searchOptions)
	} else {
		seed := uint64(cfg.Seed)
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		logger.WithField("seed", seed).Debug("generating grid")
		rng := rand.New(rand.NewPCG(seed, seed))
		start, goal = cfg.Endpoints(cfg.Rows, cfg.Cols)
		var attempts int
		grid, result, attempts, err = generate.Reachable(rng, generate.Params{
			Rows:    cfg.Rows,
			Cols:    cfg.Cols,
			Density: cfg.Density,
		}, start, goal, cfg.Attempts, logger, searchOptions...)
		if err == nil {
			logger.WithField("attempts", attempts).Info("generated reachable grid")
		}
		if err == nil && opts.trace {
			result, err = search(grid, start, goal, true, logger, searchOptions)
		}
	}

	switch {
	case errors.Is(err, astar.ErrInvalidEndpoint):
		return &ExitError{Code: 2, Message: err.Error()}
	case errors.Is(err, astar.ErrUnreachable), errors.Is(err, generate.ErrNoReachableGrid):
		if grid != nil {
			_ = render.Grid(stdout, grid, render.Options{Start: &start, Goal: &goal, Color: cfg.Color})
		}
		return &ExitError{Code: 1, Message: err.Error()}
	case err != nil:
		return &ExitError{Code: 2, Message: err.Error()}
	}

	renderOpts := render.Options{Start: &start, Goal: &goal, Path: result.Path, Color: cfg.Color}
	if cfg.Animate {
		delay, _ := cfg.DelayDuration()
		err = render.Animate(stdout, grid, renderOpts, delay, clearScreen)
	} else {
		err = render.Grid(stdout, grid, renderOpts)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "path %v -> %v: %d steps, %d cells expanded\n", start, goal, result.Cost, result.Expanded)
	return nil
}

func loadMap(cfg config.Config) (*astar.Grid, astar.Cell, astar.Cell, error) {
	f, err := os.Open(cfg.Map)
	if err != nil {
		return nil, astar.Cell{}, astar.Cell{}, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	sc, err := astar.ParseScenario(f)
	if err != nil {
		return nil, astar.Cell{}, astar.Cell{}, fmt.Errorf("parse map %s: %w", cfg.Map, err)
	}
	start, goal := cfg.Endpoints(sc.Grid.Rows(), sc.Grid.Cols())
	if len(cfg.Start) == 0 && sc.HasStart {
		start = sc.Start
	}
	if len(cfg.Goal) == 0 && sc.HasGoal {
		goal = sc.Goal
	}
	return sc.Grid, start, goal, nil
}

// search runs FindPath, or a Stepper logging each expansion when trace is set.
func search(grid *astar.Grid, start, goal astar.Cell, trace bool, logger logrus.FieldLogger, searchOptions []astar.Option) (astar.Result, error) {
	if !trace {
		return astar.FindPath(grid, start, goal, searchOptions...)
	}
	stepper, err := astar.NewStepper(grid, start, goal, searchOptions...)
	if err != nil {
		return astar.Result{}, err
	}
	for !stepper.Done() {
		snap, _ := stepper.Step()
		logger.WithFields(logrus.Fields{
			"step":     snap.StepIndex,
			"current":  snap.Current.String(),
			"open":     snap.Open,
			"expanded": snap.Expanded,
		}).Debug("expanded cell")
	}
	return stepper.Result()
}

// Package config holds the gridpath scenario configuration and loads it from
// HCL files.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	astar "github.com/pdrpinto/gridastar"
)

// Config describes one gridpath run. Attributes absent from a file keep their
// previous value.
type Config struct {
	Map       string  `hcl:"map,optional"`
	Rows      int     `hcl:"rows,optional"`
	Cols      int     `hcl:"cols,optional"`
	Density   float64 `hcl:"density,optional"`
	Seed      int64   `hcl:"seed,optional"`
	Attempts  int     `hcl:"attempts,optional"`
	Start     []int   `hcl:"start,optional"`
	Goal      []int   `hcl:"goal,optional"`
	Animate   bool    `hcl:"animate,optional"`
	Delay     string  `hcl:"delay,optional"`
	Color     bool    `hcl:"color,optional"`
	LogLevel  string  `hcl:"log_level,optional"`
	LogFormat string  `hcl:"log_format,optional"`
}

// Default is a 10x10 grid, 30% blocked, searched
// from the top-left to the bottom-right corner.
func Default() Config {
	return Config{
		Rows:      10,
		Cols:      10,
		Density:   0.3,
		Attempts:  100,
		Delay:     "100ms",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads an HCL file on top of Default.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := Decode(src, path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode merges HCL source into cfg.
func Decode(src []byte, filename string, cfg *Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %s", filename, diags.Error())
	}
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %s", filename, diags.Error())
	}
	return nil
}

// Validate checks values that do not depend on the grid.
func (c *Config) Validate() error {
	if c.Map == "" {
		if c.Rows <= 0 || c.Cols <= 0 {
			return fmt.Errorf("rows and cols must be positive, got %dx%d", c.Rows, c.Cols)
		}
		if c.Density < 0 || c.Density > 1 {
			return fmt.Errorf("density must be within [0,1], got %v", c.Density)
		}
		if c.Attempts <= 0 {
			return fmt.Errorf("attempts must be positive, got %d", c.Attempts)
		}
	}
	if len(c.Start) != 0 && len(c.Start) != 2 {
		return fmt.Errorf("start must be [row, col], got %v", c.Start)
	}
	if len(c.Goal) != 0 && len(c.Goal) != 2 {
		return fmt.Errorf("goal must be [row, col], got %v", c.Goal)
	}
	if _, err := c.DelayDuration(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: must be 'text' or 'json'", c.LogFormat)
	}
	return nil
}

// DelayDuration parses Delay.
func (c *Config) DelayDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return 0, fmt.Errorf("invalid delay %q: %w", c.Delay, err)
	}
	return d, nil
}

// Endpoints resolves start and goal for a rows x cols grid. Unset endpoints
// default to the top-left and bottom-right corners.
func (c *Config) Endpoints(rows, cols int) (astar.Cell, astar.Cell) {
	start := astar.Cell{Row: 0, Col: 0}
	goal := astar.Cell{Row: rows - 1, Col: cols - 1}
	if len(c.Start) == 2 {
		start = astar.Cell{Row: c.Start[0], Col: c.Start[1]}
	}
	if len(c.Goal) == 2 {
		goal = astar.Cell{Row: c.Goal[0], Col: c.Goal[1]}
	}
	return start, goal
}

// ParseCell parses "row,col".
func ParseCell(s string) ([]int, error) {
	var row, col int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d,%d", &row, &col); err != nil {
		return nil, fmt.Errorf("invalid cell %q: want row,col", s)
	}
	return []int{row, col}, nil
}

// Package astar finds shortest paths on binary occupancy grids.
//
// It exposes three entry points:
//
//   - FindPath: run the search to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive renderers or debugging tools.
//   - FindPaths: run many independent searches on one grid over a worker pool.
//
// Movement is 4-directional with unit step cost and the default heuristic is
// Manhattan distance, so every returned path has the minimum hop count. The
// frontier breaks ties between equal f-costs in insertion order, which makes
// searches reproducible.
package astar

package astar

// Heuristic estimates the remaining cost from a cell to the goal. It must
// never overestimate and never return a negative value.
type Heuristic func(from, to Cell) int

// Manhattan is |Δrow| + |Δcol|, admissible and consistent for unit-cost
// 4-directional movement.
func Manhattan(from, to Cell) int {
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

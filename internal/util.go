package internal

// NoPredecessor marks a cell with no entry in a dense cameFrom table.
const NoPredecessor int32 = -1

// ReconstructPath rebuilds the start..goal path from a dense cameFrom table
// indexed by linearized cell. It returns false if the chain from goal does
// not lead back to start, which happens when goal was never reached.
func ReconstructPath(cameFrom []int32, goal, start int32) ([]int32, bool) {
	path := []int32{goal}
	current := goal
	for current != start {
		previous := cameFrom[current]
		// A valid chain never revisits a cell, so it is at most len(cameFrom) long.
		if previous == NoPredecessor || len(path) > len(cameFrom) {
			return nil, false
		}
		path = append(path, previous)
		current = previous
	}
	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

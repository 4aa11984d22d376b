package astar

import (
	"container/heap"

	"github.com/pdrpinto/gridastar/internal"
	"github.com/sirupsen/logrus"
)

const unvisited int32 = -1

// search is the per-call A* state. Costs and predecessors live in dense
// slices indexed by Grid.Index; nothing is shared between searches.
type search struct {
	grid      *Grid
	start     Cell
	goal      Cell
	goalIndex int32
	heuristic Heuristic
	limit     int
	logger    logrus.FieldLogger

	gScore   []int32
	cameFrom []int32
	openSet  PriorityQueue
	nextSeq  uint64
	buf      []Cell

	expanded int
	current  Cell
	done     bool
	result   Result
	err      error
}

func newSearch(grid *Grid, start, goal Cell, options Options) (*search, error) {
	if grid == nil {
		return nil, ErrInvalidGrid
	}
	if err := checkEndpoint(grid, "start", start); err != nil {
		return nil, err
	}
	if err := checkEndpoint(grid, "goal", goal); err != nil {
		return nil, err
	}

	s := &search{
		grid:      grid,
		start:     start,
		goal:      goal,
		goalIndex: int32(grid.Index(goal)),
		heuristic: options.Heuristic,
		limit:     options.MaxExpansions,
		logger:    options.Logger,
		current:   start,
	}
	if start == goal {
		s.finish(Result{Path: []Cell{start}, Found: true}, nil)
		return s, nil
	}

	s.gScore = make([]int32, grid.Len())
	s.cameFrom = make([]int32, grid.Len())
	for i := range s.gScore {
		s.gScore[i] = unvisited
		s.cameFrom[i] = internal.NoPredecessor
	}
	s.buf = make([]Cell, 0, len(directions))

	startIndex := int32(grid.Index(start))
	s.gScore[startIndex] = 0
	s.push(startIndex, 0, int32(s.heuristic(start, goal)))
	return s, nil
}

func (s *search) push(index, gScore, fCost int32) {
	heap.Push(&s.openSet, PriorityQueueItem{Index: index, GScore: gScore, FCost: fCost, Seq: s.nextSeq})
	s.nextSeq++
}

// step expands the next live frontier entry. It returns false once the
// search has finished.
func (s *search) step() bool {
	for !s.done {
		if s.openSet.Len() == 0 {
			s.finish(Result{Expanded: s.expanded}, ErrUnreachable)
			return false
		}

		item := heap.Pop(&s.openSet).(PriorityQueueItem)
		if item.GScore > s.gScore[item.Index] {
			continue
		}
		currentNode := s.grid.CellAt(int(item.Index))
		s.current = currentNode

		if item.Index == s.goalIndex {
			s.expanded++
			s.finish(s.reconstruct(), nil)
			return false
		}
		if s.limit > 0 && s.expanded >= s.limit {
			s.finish(Result{Expanded: s.expanded}, ErrLimitExceeded)
			return false
		}
		s.expanded++

		tentativeG := item.GScore + 1
		s.buf = s.grid.AppendNeighbors(s.buf[:0], currentNode)
		for _, neighbor := range s.buf {
			index := int32(s.grid.Index(neighbor))
			if prev := s.gScore[index]; prev != unvisited && tentativeG >= prev {
				continue
			}
			s.gScore[index] = tentativeG
			s.cameFrom[index] = item.Index
			s.push(index, tentativeG, tentativeG+int32(s.heuristic(neighbor, s.goal)))
		}
		return true
	}
	return false
}

func (s *search) run() (Result, error) {
	for s.step() {
	}
	return s.result, s.err
}

func (s *search) reconstruct() Result {
	indices, ok := internal.ReconstructPath(s.cameFrom, s.goalIndex, int32(s.grid.Index(s.start)))
	if !ok {
		// The goal was popped, so its predecessor chain must exist.
		panic("astar: broken predecessor chain for reached goal")
	}
	path := make([]Cell, len(indices))
	for i, index := range indices {
		path[i] = s.grid.CellAt(int(index))
	}
	return Result{
		Path:     path,
		Cost:     int(s.gScore[s.goalIndex]),
		Expanded: s.expanded,
		Found:    true,
	}
}

func (s *search) finish(result Result, err error) {
	s.done = true
	s.result = result
	s.err = err
	s.logger.WithFields(logrus.Fields{
		"start":    s.start.String(),
		"goal":     s.goal.String(),
		"expanded": result.Expanded,
		"found":    result.Found,
	}).Debug("search finished")
}

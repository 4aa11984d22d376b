package astar

// StepSnapshot reports the search state after one Step.
type StepSnapshot struct {
	Current   Cell   // cell expanded by this step
	Open      int    // frontier entries, stale ones included
	Expanded  int    // cells expanded so far
	Done      bool
	Found     bool
	Path      []Cell // set once Found
	StepIndex int
}

// Stepper lets callers advance an A* search one expansion at a time, for
// instance to animate it.
type Stepper struct {
	s         *search
	stepCount int
}

// NewStepper prepares a search without running it. Endpoint validation
// happens here, with the same errors FindPath returns.
func NewStepper(grid *Grid, start, goal Cell, options ...Option) (*Stepper, error) {
	s, err := newSearch(grid, start, goal, buildOptions(options))
	if err != nil {
		return nil, err
	}
	return &Stepper{s: s}, nil
}

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done, Step keeps returning the final snapshot.
// The error is the terminal search error (ErrUnreachable or ErrLimitExceeded).
func (st *Stepper) Step() (StepSnapshot, error) {
	if !st.s.done {
		st.stepCount++
		st.s.step()
	}
	return st.snapshot(), st.s.err
}

// Done reports whether the search has finished.
func (st *Stepper) Done() bool { return st.s.done }

// Result drives the search to completion and returns what FindPath would.
func (st *Stepper) Result() (Result, error) {
	for !st.s.done {
		st.Step()
	}
	return st.s.result, st.s.err
}

func (st *Stepper) snapshot() StepSnapshot {
	snap := StepSnapshot{
		Current:   st.s.current,
		Open:      st.s.openSet.Len(),
		Expanded:  st.s.expanded,
		Done:      st.s.done,
		StepIndex: st.stepCount,
	}
	if st.s.done {
		snap.Found = st.s.result.Found
		snap.Expanded = st.s.result.Expanded
		if snap.Found {
			snap.Path = append([]Cell(nil), st.s.result.Path...)
		}
	}
	return snap
}

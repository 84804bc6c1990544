package exhaustive

import "fmt"

// Checkpoint is a serialisable snapshot of a Session taken between attempts.
type Checkpoint struct {
	Budget   int        `json:"budget"`
	Path     []Position `json:"path"`
	Started  bool       `json:"started"`
	Done     bool       `json:"done"`
	Attempts int        `json:"attempts"`
}

// Checkpoint captures the session state. Resuming from it continues the
// enumeration with the attempt after the last one handed out.
func (s *Session) Checkpoint() Checkpoint {
	return Checkpoint{
		Budget:   s.budget,
		Path:     s.Path(),
		Started:  !s.firstRun,
		Done:     s.done,
		Attempts: s.attempts,
	}
}

// Restore replaces the session state with cp. Any outstanding Run is
// invalidated.
func (s *Session) Restore(cp Checkpoint) error {
	if err := cp.Validate(); err != nil {
		return err
	}
	s.epoch++
	s.budget = cp.Budget
	s.path = append(s.path[:0], cp.Path...)
	s.firstRun = !cp.Started
	s.done = cp.Done
	s.attempts = cp.Attempts
	return nil
}

// Resume creates a session from a checkpoint.
func Resume(cp Checkpoint) (*Session, error) {
	s := NewSession(0)
	if err := s.Restore(cp); err != nil {
		return nil, err
	}
	return s, nil
}

// Replay creates a session whose first Run follows path exactly. It is used
// to rebuild a recorded value.
func Replay(budget int, path []Position) (*Session, error) {
	return Resume(Checkpoint{Budget: budget, Path: path})
}

// Validate checks the invariants a Session relies on.
func (cp Checkpoint) Validate() error {
	if cp.Budget < 0 {
		return fmt.Errorf("checkpoint: negative budget %d", cp.Budget)
	}
	if cp.Attempts < 0 {
		return fmt.Errorf("checkpoint: negative attempt count %d", cp.Attempts)
	}
	for i, p := range cp.Path {
		if p.Value < 0 || p.Max < 0 {
			return fmt.Errorf("checkpoint: position %d is negative", i)
		}
		if p.Value > p.Max {
			return fmt.Errorf("checkpoint: position %d value %d exceeds max %d", i, p.Value, p.Max)
		}
	}
	if cp.Done && len(cp.Path) > 0 {
		return fmt.Errorf("checkpoint: exhausted session has a non-empty path")
	}
	return nil
}

package exhaustive

import "fmt"

// Position is one step of a path through the choice tree.
//
// Value is the choice taken at this step; Max is the largest value the step
// is known to accept. Value <= Max always holds.
type Position struct {
	Value int `json:"value"`
	Max   int `json:"max"`
}

// Session holds the enumeration state across a whole walk of the choice tree.
//
// A Session is not safe for concurrent use. At most one Run is outstanding at
// a time: Next and Restore invalidate the previous Run.
type Session struct {
	budget   int
	path     []Position
	firstRun bool
	done     bool
	epoch    uint64
	attempts int
}

// NewSession creates a session whose runs may each make up to budget choices.
//
// Panics if budget is negative.
func NewSession(budget int) *Session {
	if budget < 0 {
		panic(fmt.Sprintf("exhaustive: negative budget %d", budget))
	}
	return &Session{
		budget:   budget,
		path:     make([]Position, 0, 16),
		firstRun: true,
	}
}

// Next advances to the lexicographically-next unexplored path and returns a
// Run over it. It returns (nil, false) once every path has been visited, and
// keeps doing so on every later call.
//
// The first call returns a Run over the empty path: the empty path is itself
// the first attempt.
func (s *Session) Next() (*Run, bool) {
	s.epoch++
	if s.done {
		return nil, false
	}

	if !s.firstRun {
		if !s.backtrack() {
			s.done = true
			s.path = s.path[:0]
			return nil, false
		}
	}
	s.firstRun = false
	s.attempts++

	return &Run{
		session:     s,
		epoch:       s.epoch,
		budget:      s.budget,
		choicesLeft: s.budget,
	}, true
}

// backtrack pops exhausted positions off the end of the path and increments
// the last one that still has room. Returns false if the path empties.
func (s *Session) backtrack() bool {
	for i := len(s.path) - 1; i >= 0; i-- {
		if s.path[i].Value == s.path[i].Max {
			s.path = s.path[:i]
			continue
		}
		s.path[i].Value++
		s.path = s.path[:i+1]
		return true
	}
	return false
}

// Budget returns the per-run choice budget.
func (s *Session) Budget() int {
	return s.budget
}

// Attempts returns how many runs the session has handed out.
func (s *Session) Attempts() int {
	return s.attempts
}

// Done reports whether the session has signalled exhaustion.
func (s *Session) Done() bool {
	return s.done
}

// Path returns a copy of the current path.
func (s *Session) Path() []Position {
	out := make([]Position, len(s.path))
	copy(out, s.path)
	return out
}

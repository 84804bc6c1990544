package exhaustive

import "fmt"

// Run dispenses the choices of one attempt.
//
// A Run replays the recorded prefix of its Session's path and extends the
// path when it reaches undiscovered depth. Every non-degenerate choice
// consumes one unit of the Run's budget.
type Run struct {
	session     *Session
	epoch       uint64
	budget      int
	choicesLeft int
	cursor      int
}

// Choice returns a value in [0, n).
//
// A choice with n == 1 carries no information: it returns 0 without touching
// the budget or the path, even when the budget is spent. Otherwise Choice
// returns a *ChoiceError wrapping ErrBudgetExhausted when no choices are left.
//
// Panics if n <= 0, or if the Run has been invalidated.
func (r *Run) Choice(n int) (int, error) {
	r.mustBeLive()
	if n <= 0 {
		panic(fmt.Sprintf("exhaustive: choice range must be positive, got %d", n))
	}
	if n == 1 {
		return 0, nil
	}

	if r.choicesLeft == 0 {
		return 0, &ChoiceError{Position: r.cursor, Budget: r.budget}
	}
	r.choicesLeft--

	path := r.session.path
	if r.cursor < len(path) {
		v := path[r.cursor].Value
		r.cursor++
		return v, nil
	}

	r.session.path = append(path, Position{Value: 0, Max: n - 1})
	r.cursor++
	return 0, nil
}

// Reset rewinds the Run to position zero with a fresh budget. Replaying the
// same generator afterwards reproduces the values of the first pass.
func (r *Run) Reset(budget int) {
	r.mustBeLive()
	if budget < 0 {
		panic(fmt.Sprintf("exhaustive: negative budget %d", budget))
	}
	r.budget = budget
	r.choicesLeft = budget
	r.cursor = 0
}

// ChoicesLeft returns the remaining budget of the Run.
func (r *Run) ChoicesLeft() int {
	r.mustBeLive()
	return r.choicesLeft
}

// Cursor returns how many path positions the Run has consumed.
func (r *Run) Cursor() int {
	r.mustBeLive()
	return r.cursor
}

// Path returns a copy of the positions consumed so far.
func (r *Run) Path() []Position {
	r.mustBeLive()
	out := make([]Position, r.cursor)
	copy(out, r.session.path[:r.cursor])
	return out
}

// lowerMax caps the max of a consumed position at its current value.
func (r *Run) lowerMax(idx int) {
	p := &r.session.path[idx]
	p.Max = p.Value
}

func (r *Run) mustBeLive() {
	if r.epoch != r.session.epoch {
		panic("exhaustive: Run used after its Session moved on")
	}
}

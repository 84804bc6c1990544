package exhaustive

import (
	"errors"
	"fmt"
)

// ErrBudgetExhausted is returned by Run.Choice when the attempt has no
// choices left. It is the only recoverable failure in the engine.
var ErrBudgetExhausted = errors.New("choice budget exhausted")

// ChoiceError reports where in an attempt the budget ran out.
//
// ChoiceError wraps ErrBudgetExhausted so callers can match either with
// errors.Is(err, ErrBudgetExhausted) or errors.As(err, &*ChoiceError).
type ChoiceError struct {
	// Position is the cursor at which the choice was requested.
	Position int

	// Budget is the per-attempt budget of the Run.
	Budget int
}

// Error implements the error interface.
func (e *ChoiceError) Error() string {
	return fmt.Sprintf("%s at position %d (budget %d)", ErrBudgetExhausted, e.Position, e.Budget)
}

// Unwrap returns ErrBudgetExhausted.
func (e *ChoiceError) Unwrap() error {
	return ErrBudgetExhausted
}

// IsBudgetExhausted returns true if err is, or wraps, a budget exhaustion.
func IsBudgetExhausted(err error) bool {
	return errors.Is(err, ErrBudgetExhausted)
}

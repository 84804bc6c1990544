package exhaustive

import (
	"fmt"
	"iter"
)

// Generator builds a value of type T from the choices of a Run.
//
// Generate must return an error only when a choice failed with
// ErrBudgetExhausted, and must pass that error through unchanged. It must be
// deterministic: the same choices always build the same value.
type Generator[T any] interface {
	Generate(r *Run) (T, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc[T any] func(r *Run) (T, error)

// Generate calls f(r).
func (f GeneratorFunc[T]) Generate(r *Run) (T, error) {
	return f(r)
}

// All returns every value g can build within budget choices per attempt, in
// enumeration order. Attempts that run out of budget are skipped. The
// sequence is finite and not restartable: each range starts a new Session.
func All[T any](budget int, g Generator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range Attempts(NewSession(budget), g) {
			if !yield(v) {
				return
			}
		}
	}
}

// Attempts drives s to exhaustion and yields each successful attempt together
// with its Run. The Run stays valid until the loop body returns, so callers
// may Reset it and rebuild the value.
//
// Panics if g returns an error other than a budget exhaustion.
func Attempts[T any](s *Session, g Generator[T]) iter.Seq2[*Run, T] {
	return func(yield func(*Run, T) bool) {
		for {
			r, ok := s.Next()
			if !ok {
				return
			}
			v, err := g.Generate(r)
			if err != nil {
				if IsBudgetExhausted(err) {
					continue
				}
				panic(fmt.Errorf("exhaustive: generator failed: %w", err))
			}
			if !yield(r, v) {
				return
			}
		}
	}
}

// Count returns how many values g can build within budget.
func Count[T any](budget int, g Generator[T]) int {
	n := 0
	for range All(budget, g) {
		n++
	}
	return n
}

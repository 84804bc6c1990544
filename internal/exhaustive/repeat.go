package exhaustive

import "iter"

// Repeat decides how many elements a container gets and returns a lazy,
// single-pass sequence that builds them with g.
//
// The count is one choice in [0, ChoicesLeft()]. If building an element runs
// out of budget, the count position's max is lowered to the count taken, so
// the Session never retries a longer container under the same prefix. The
// error is then yielded and the sequence ends.
//
// Ranging over the sequence a second time continues where the first range
// stopped; a fully consumed sequence yields nothing.
func Repeat[T any](r *Run, g Generator[T]) (iter.Seq2[T, error], error) {
	countIdx := r.Cursor()
	remaining, err := r.Choice(r.ChoicesLeft() + 1)
	if err != nil {
		return nil, err
	}
	// With no budget left the count choice is degenerate and takes no position.
	hasPos := r.Cursor() > countIdx

	return func(yield func(T, error) bool) {
		for remaining > 0 {
			r.mustBeLive()
			remaining--
			v, err := g.Generate(r)
			if err != nil {
				remaining = 0
				if hasPos && IsBudgetExhausted(err) {
					r.lowerMax(countIdx)
				}
				var zero T
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}, nil
}

// Collect builds a slice with Repeat, failing on the first element that
// cannot be built.
func Collect[T any](r *Run, g Generator[T]) ([]T, error) {
	seq, err := Repeat(r, g)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

package gen

import (
	"fmt"

	"github.com/roach88/exhaustive/internal/exhaustive"
)

// Array generates slices of exactly n elements of g. No choice is spent on
// the length.
func Array[T any](n int, g exhaustive.Generator[T]) exhaustive.Generator[[]T] {
	if n < 0 {
		panic(fmt.Sprintf("gen: negative array length %d", n))
	}
	return exhaustive.GeneratorFunc[[]T](func(r *exhaustive.Run) ([]T, error) {
		out := make([]T, n)
		for i := range out {
			v, err := g.Generate(r)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	})
}

// Slice generates slices of g of every length the budget allows.
func Slice[T any](g exhaustive.Generator[T]) exhaustive.Generator[[]T] {
	return exhaustive.GeneratorFunc[[]T](func(r *exhaustive.Run) ([]T, error) {
		return exhaustive.Collect(r, g)
	})
}

// Set generates sets of g. Duplicate elements collapse, so the same set may
// be generated more than once.
func Set[T comparable](g exhaustive.Generator[T]) exhaustive.Generator[map[T]struct{}] {
	return exhaustive.GeneratorFunc[map[T]struct{}](func(r *exhaustive.Run) (map[T]struct{}, error) {
		seq, err := exhaustive.Repeat(r, g)
		if err != nil {
			return nil, err
		}
		out := make(map[T]struct{})
		for v, err := range seq {
			if err != nil {
				return nil, err
			}
			out[v] = struct{}{}
		}
		return out, nil
	})
}

// Map generates maps from keys of k to values of v. A later entry with a
// duplicate key replaces the earlier one.
func Map[K comparable, V any](k exhaustive.Generator[K], v exhaustive.Generator[V]) exhaustive.Generator[map[K]V] {
	entry := PairOf(k, v)
	return exhaustive.GeneratorFunc[map[K]V](func(r *exhaustive.Run) (map[K]V, error) {
		seq, err := exhaustive.Repeat(r, entry)
		if err != nil {
			return nil, err
		}
		out := make(map[K]V)
		for e, err := range seq {
			if err != nil {
				return nil, err
			}
			out[e.First] = e.Second
		}
		return out, nil
	})
}

// String generates strings over alphabet, shortest first.
// Panics if alphabet is empty.
func String(alphabet string) exhaustive.Generator[string] {
	runes := []rune(alphabet)
	if len(runes) == 0 {
		panic("gen: empty alphabet")
	}
	return Transform(Slice(OneOf(runes...)), func(rs []rune) string { return string(rs) })
}

package gen

import (
	"fmt"

	"github.com/roach88/exhaustive/internal/exhaustive"
)

// Bool generates false, then true.
func Bool() exhaustive.Generator[bool] {
	return exhaustive.GeneratorFunc[bool](func(r *exhaustive.Run) (bool, error) {
		v, err := r.Choice(2)
		if err != nil {
			return false, err
		}
		return v != 0, nil
	})
}

// Unit generates the single value struct{}{} without making a choice.
func Unit() exhaustive.Generator[struct{}] {
	return Const(struct{}{})
}

// Const always generates v without making a choice.
func Const[T any](v T) exhaustive.Generator[T] {
	return exhaustive.GeneratorFunc[T](func(*exhaustive.Run) (T, error) {
		return v, nil
	})
}

// IntRange generates lo through hi inclusive, in ascending order.
// Panics if hi < lo.
func IntRange(lo, hi int) exhaustive.Generator[int] {
	if hi < lo {
		panic(fmt.Sprintf("gen: empty int range [%d, %d]", lo, hi))
	}
	return exhaustive.GeneratorFunc[int](func(r *exhaustive.Run) (int, error) {
		v, err := r.Choice(hi - lo + 1)
		if err != nil {
			return 0, err
		}
		return lo + v, nil
	})
}

// Byte generates every byte value, 0 first.
func Byte() exhaustive.Generator[byte] {
	return exhaustive.GeneratorFunc[byte](func(r *exhaustive.Run) (byte, error) {
		v, err := r.Choice(256)
		if err != nil {
			return 0, err
		}
		return byte(v), nil
	})
}

// OneOf generates each of vs in the order given.
// Panics if vs is empty.
func OneOf[T any](vs ...T) exhaustive.Generator[T] {
	if len(vs) == 0 {
		panic("gen: OneOf requires at least one value")
	}
	return exhaustive.GeneratorFunc[T](func(r *exhaustive.Run) (T, error) {
		i, err := r.Choice(len(vs))
		if err != nil {
			var zero T
			return zero, err
		}
		return vs[i], nil
	})
}

// Variant picks one of gs with a single choice and generates with it.
// Panics if gs is empty.
func Variant[T any](gs ...exhaustive.Generator[T]) exhaustive.Generator[T] {
	if len(gs) == 0 {
		panic("gen: Variant requires at least one generator")
	}
	return exhaustive.GeneratorFunc[T](func(r *exhaustive.Run) (T, error) {
		i, err := r.Choice(len(gs))
		if err != nil {
			var zero T
			return zero, err
		}
		return gs[i].Generate(r)
	})
}

// Transform maps the values of g through f.
func Transform[T, U any](g exhaustive.Generator[T], f func(T) U) exhaustive.Generator[U] {
	return exhaustive.GeneratorFunc[U](func(r *exhaustive.Run) (U, error) {
		v, err := g.Generate(r)
		if err != nil {
			var zero U
			return zero, err
		}
		return f(v), nil
	})
}

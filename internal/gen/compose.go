package gen

import "github.com/roach88/exhaustive/internal/exhaustive"

// Ptr generates pointers to the values of g. It never generates nil.
func Ptr[T any](g exhaustive.Generator[T]) exhaustive.Generator[*T] {
	return Transform(g, func(v T) *T { return &v })
}

// Option generates either a pointer to a value of g or nil.
//
// One bool choice decides: false builds a value, true yields nil. Values
// therefore come before nil.
func Option[T any](g exhaustive.Generator[T]) exhaustive.Generator[*T] {
	flag := Bool()
	return exhaustive.GeneratorFunc[*T](func(r *exhaustive.Run) (*T, error) {
		none, err := flag.Generate(r)
		if err != nil || none {
			return nil, err
		}
		v, err := g.Generate(r)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// Either holds a Left or a Right value.
type Either[L, R any] struct {
	Left    L
	Right   R
	IsRight bool
}

// EitherOf generates Left values of l, then Right values of r.
func EitherOf[L, R any](l exhaustive.Generator[L], r exhaustive.Generator[R]) exhaustive.Generator[Either[L, R]] {
	flag := Bool()
	return exhaustive.GeneratorFunc[Either[L, R]](func(run *exhaustive.Run) (Either[L, R], error) {
		right, err := flag.Generate(run)
		if err != nil {
			return Either[L, R]{}, err
		}
		if right {
			v, err := r.Generate(run)
			return Either[L, R]{Right: v, IsRight: true}, err
		}
		v, err := l.Generate(run)
		return Either[L, R]{Left: v}, err
	})
}

// Pair is a two-element tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is a three-element tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Quad is a four-element tuple.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// PairOf generates a then b.
func PairOf[A, B any](a exhaustive.Generator[A], b exhaustive.Generator[B]) exhaustive.Generator[Pair[A, B]] {
	return exhaustive.GeneratorFunc[Pair[A, B]](func(r *exhaustive.Run) (Pair[A, B], error) {
		var p Pair[A, B]
		var err error
		if p.First, err = a.Generate(r); err != nil {
			return Pair[A, B]{}, err
		}
		if p.Second, err = b.Generate(r); err != nil {
			return Pair[A, B]{}, err
		}
		return p, nil
	})
}

// TripleOf generates a, b, then c.
func TripleOf[A, B, C any](a exhaustive.Generator[A], b exhaustive.Generator[B], c exhaustive.Generator[C]) exhaustive.Generator[Triple[A, B, C]] {
	return exhaustive.GeneratorFunc[Triple[A, B, C]](func(r *exhaustive.Run) (Triple[A, B, C], error) {
		p, err := PairOf(a, b).Generate(r)
		if err != nil {
			return Triple[A, B, C]{}, err
		}
		v, err := c.Generate(r)
		if err != nil {
			return Triple[A, B, C]{}, err
		}
		return Triple[A, B, C]{First: p.First, Second: p.Second, Third: v}, nil
	})
}

// QuadOf generates a, b, c, then d.
func QuadOf[A, B, C, D any](a exhaustive.Generator[A], b exhaustive.Generator[B], c exhaustive.Generator[C], d exhaustive.Generator[D]) exhaustive.Generator[Quad[A, B, C, D]] {
	return exhaustive.GeneratorFunc[Quad[A, B, C, D]](func(r *exhaustive.Run) (Quad[A, B, C, D], error) {
		t, err := TripleOf(a, b, c).Generate(r)
		if err != nil {
			return Quad[A, B, C, D]{}, err
		}
		v, err := d.Generate(r)
		if err != nil {
			return Quad[A, B, C, D]{}, err
		}
		return Quad[A, B, C, D]{First: t.First, Second: t.Second, Third: t.Third, Fourth: v}, nil
	})
}

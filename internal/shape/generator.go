package shape

import (
	"fmt"
	"math"

	"github.com/roach88/exhaustive/internal/exhaustive"
	"github.com/roach88/exhaustive/internal/gen"
	"github.com/roach88/exhaustive/internal/value"
)

// Generator builds a generator of values of shape s.
//
// Returns an error if s is malformed: missing children, empty enums or
// alphabets, or an int range too large to choose from.
func Generator(s *Shape) (exhaustive.Generator[value.Value], error) {
	if s == nil {
		return nil, fmt.Errorf("shape: nil shape")
	}
	switch s.Kind {
	case KindBool:
		return gen.Transform(gen.Bool(), func(b bool) value.Value { return value.Bool(b) }), nil

	case KindUnit:
		return gen.Const[value.Value](value.Object{}), nil

	case KindConst:
		if s.Const == nil {
			return nil, fmt.Errorf("shape: constant without a value")
		}
		return gen.Const(s.Const), nil

	case KindInt:
		if s.Hi < s.Lo {
			return nil, fmt.Errorf("shape: empty int range [%d..%d]", s.Lo, s.Hi)
		}
		if uint64(s.Hi-s.Lo) >= math.MaxInt32 {
			return nil, fmt.Errorf("shape: int range [%d..%d] is too wide", s.Lo, s.Hi)
		}
		lo := s.Lo
		return gen.Transform(gen.IntRange(0, int(s.Hi-s.Lo)), func(n int) value.Value {
			return value.Int(lo + int64(n))
		}), nil

	case KindEnum:
		if len(s.Members) == 0 {
			return nil, fmt.Errorf("shape: enum without members")
		}
		return gen.OneOf(s.Members...), nil

	case KindString:
		if s.Alphabet == "" {
			return nil, fmt.Errorf("shape: empty alphabet")
		}
		return gen.Transform(gen.String(s.Alphabet), func(str string) value.Value { return value.String(str) }), nil

	case KindList:
		elem, err := child(s.Elem, "list")
		if err != nil {
			return nil, err
		}
		return gen.Transform(gen.Slice(elem), toList), nil

	case KindArray:
		elem, err := child(s.Elem, "array")
		if err != nil {
			return nil, err
		}
		return gen.Transform(gen.Array(s.Len, elem), toList), nil

	case KindOption:
		elem, err := child(s.Elem, "option")
		if err != nil {
			return nil, err
		}
		return gen.Transform(gen.Option(elem), func(v *value.Value) value.Value {
			if v == nil {
				return value.Null{}
			}
			return *v
		}), nil

	case KindSet:
		elem, err := child(s.Elem, "set")
		if err != nil {
			return nil, err
		}
		return setOf(elem), nil

	case KindMap:
		key, err := child(s.Key, "map key")
		if err != nil {
			return nil, err
		}
		val, err := child(s.Val, "map value")
		if err != nil {
			return nil, err
		}
		return mapOf(key, val), nil

	case KindTuple:
		elems, err := children(s.Elems, "tuple")
		if err != nil {
			return nil, err
		}
		return sequence(elems), nil

	case KindRecord:
		return record(s.Fields)

	case KindEither:
		left, err := child(s.Left, "either left")
		if err != nil {
			return nil, err
		}
		right, err := child(s.Right, "either right")
		if err != nil {
			return nil, err
		}
		return gen.Transform(gen.EitherOf(left, right), func(e gen.Either[value.Value, value.Value]) value.Value {
			if e.IsRight {
				return value.Object{"right": e.Right}
			}
			return value.Object{"left": e.Left}
		}), nil

	case KindUnion:
		if len(s.Elems) == 0 {
			return nil, fmt.Errorf("shape: oneof without alternatives")
		}
		alts, err := children(s.Elems, "oneof")
		if err != nil {
			return nil, err
		}
		return gen.Variant(alts...), nil
	}
	return nil, fmt.Errorf("shape: unknown kind %d", s.Kind)
}

// MustGenerator is like Generator but panics on error.
func MustGenerator(s *Shape) exhaustive.Generator[value.Value] {
	g, err := Generator(s)
	if err != nil {
		panic(err)
	}
	return g
}

func child(s *Shape, what string) (exhaustive.Generator[value.Value], error) {
	if s == nil {
		return nil, fmt.Errorf("shape: %s without element shape", what)
	}
	g, err := Generator(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return g, nil
}

func children(shapes []*Shape, what string) ([]exhaustive.Generator[value.Value], error) {
	out := make([]exhaustive.Generator[value.Value], len(shapes))
	for i, s := range shapes {
		g, err := child(s, fmt.Sprintf("%s[%d]", what, i))
		if err != nil {
			return nil, err
		}
		out[i] = g
	}
	return out, nil
}

func toList(vs []value.Value) value.Value {
	return value.List(vs)
}

func sequence(gs []exhaustive.Generator[value.Value]) exhaustive.Generator[value.Value] {
	return exhaustive.GeneratorFunc[value.Value](func(r *exhaustive.Run) (value.Value, error) {
		out := make(value.List, 0, len(gs))
		for _, g := range gs {
			v, err := g.Generate(r)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
}

func record(fields []Field) (exhaustive.Generator[value.Value], error) {
	names := make([]string, len(fields))
	gs := make([]exhaustive.Generator[value.Value], len(fields))
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if seen[f.Name] {
			return nil, fmt.Errorf("shape: duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		g, err := child(f.Shape, "field "+f.Name)
		if err != nil {
			return nil, err
		}
		names[i] = f.Name
		gs[i] = g
	}
	return exhaustive.GeneratorFunc[value.Value](func(r *exhaustive.Run) (value.Value, error) {
		out := make(value.Object, len(gs))
		for i, g := range gs {
			v, err := g.Generate(r)
			if err != nil {
				return nil, err
			}
			out[names[i]] = v
		}
		return out, nil
	}), nil
}

func setOf(elem exhaustive.Generator[value.Value]) exhaustive.Generator[value.Value] {
	return exhaustive.GeneratorFunc[value.Value](func(r *exhaustive.Run) (value.Value, error) {
		vs, err := exhaustive.Collect(r, elem)
		if err != nil {
			return nil, err
		}
		set, err := value.SortedUnique(vs)
		if err != nil {
			return nil, err
		}
		return set, nil
	})
}

func mapOf(key, val exhaustive.Generator[value.Value]) exhaustive.Generator[value.Value] {
	entry := gen.PairOf(key, val)
	return exhaustive.GeneratorFunc[value.Value](func(r *exhaustive.Run) (value.Value, error) {
		entries, err := exhaustive.Collect(r, entry)
		if err != nil {
			return nil, err
		}
		// Later entries win, as with a Go map literal.
		latest := make(map[string]value.Value, len(entries))
		keys := make([]value.Value, 0, len(entries))
		for _, e := range entries {
			latest[value.Render(e.First)] = e.Second
			keys = append(keys, e.First)
		}
		sorted, err := value.SortedUnique(keys)
		if err != nil {
			return nil, err
		}
		out := make(value.List, len(sorted))
		for i, k := range sorted {
			out[i] = value.List{k, latest[value.Render(k)]}
		}
		return out, nil
	})
}

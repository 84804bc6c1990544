package exhaustive

// Minimal generators for exercising the engine without importing gen.

var boolGen = GeneratorFunc[bool](func(r *Run) (bool, error) {
	v, err := r.Choice(2)
	return v != 0, err
})

var unitGen = GeneratorFunc[struct{}](func(r *Run) (struct{}, error) {
	return struct{}{}, nil
})

func sliceGen[T any](g Generator[T]) Generator[[]T] {
	return GeneratorFunc[[]T](func(r *Run) ([]T, error) {
		return Collect(r, g)
	})
}

type boolPair [2]bool

var pairGen = GeneratorFunc[boolPair](func(r *Run) (boolPair, error) {
	a, err := boolGen.Generate(r)
	if err != nil {
		return boolPair{}, err
	}
	b, err := boolGen.Generate(r)
	if err != nil {
		return boolPair{}, err
	}
	return boolPair{a, b}, nil
})

func collectAll[T any](budget int, g Generator[T]) []T {
	var out []T
	for v := range All(budget, g) {
		out = append(out, v)
	}
	return out
}

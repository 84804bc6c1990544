package exhaustive

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func engineProperties(t *testing.T) *gopter.Properties {
	t.Helper()
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 30
	return gopter.NewProperties(params)
}

func TestProperties_EngineLaws(t *testing.T) {
	properties := engineProperties(t)
	g := sliceGen[bool](boolGen)

	properties.Property("bool enumerates false then true", prop.ForAll(
		func(budget int) bool {
			got := collectAll(budget, boolGen)
			return len(got) == 2 && !got[0] && got[1]
		},
		gen.IntRange(1, 10),
	))

	properties.Property("no value is produced twice", prop.ForAll(
		func(budget int) bool {
			seen := map[string]bool{}
			for v := range All(budget, g) {
				key := fmt.Sprint(v)
				if seen[key] {
					return false
				}
				seen[key] = true
			}
			return true
		},
		gen.IntRange(0, 7),
	))

	properties.Property("slices of bool number 2^b - 1", prop.ForAll(
		func(budget int) bool {
			// Length n needs n+1 choices, so lengths below budget fit.
			want := 1<<budget - 1
			if budget == 0 {
				want = 1
			}
			return Count(budget, g) == want
		},
		gen.IntRange(0, 8),
	))

	properties.Property("reset replays identical choices", prop.ForAll(
		func(budget int) bool {
			s := NewSession(budget)
			for r, v := range Attempts(s, g) {
				r.Reset(budget)
				again, err := g.Generate(r)
				if err != nil || fmt.Sprint(again) != fmt.Sprint(v) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 6),
	))

	properties.Property("exhaustion is permanent", prop.ForAll(
		func(budget, extra int) bool {
			s := NewSession(budget)
			for range Attempts(s, g) {
			}
			for i := 0; i < extra; i++ {
				if _, ok := s.Next(); ok {
					return false
				}
			}
			return s.Done()
		},
		gen.IntRange(0, 6),
		gen.IntRange(1, 5),
	))

	properties.Property("degenerate choices leave the run untouched", prop.ForAll(
		func(budget, calls int) bool {
			s := NewSession(budget)
			r, _ := s.Next()
			for i := 0; i < calls; i++ {
				if v, err := r.Choice(1); err != nil || v != 0 {
					return false
				}
			}
			return r.ChoicesLeft() == budget && len(s.Path()) == 0
		},
		gen.IntRange(0, 10),
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}

// Package harness runs exhaustive checks over generated values.
//
// There are two entry points.
//
// Check drives a generator from a Go test: the body runs once per value with
// a testing.TB of its own, and the first value that fails is rebuilt from its
// choice path, logged and optionally recorded in a store:
//
//	func TestSortIsIdempotent(t *testing.T) {
//	    harness.Check(t, 5, gen.Slice(gen.IntRange(0, 2)), func(t testing.TB, xs []int) {
//	        once := slices.Sorted(slices.Values(xs))
//	        require.Equal(t, once, slices.Sorted(slices.Values(once)))
//	    })
//	}
//
// RunPlan runs an enumeration described in YAML and checks its output:
//
//	name: bool_lists
//	description: "Lists of bools up to length 2"
//	shape: "[]bool"
//	budget: 3
//	expect:
//	  count: 7
//	  first: [[], [false], [true]]
//	  contains: [[true, false]]
//	  excludes: [[true, true, true]]
//
// A plan may name a CUE schema and definition instead of a shape:
//
//	schema: cart.cue
//	definition: "#Item"
//
// Schema paths are relative to the plan file.
//
// # Golden Files
//
// RunWithGolden compares the rendered values of a plan, one canonical JSON
// value per line, with testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness

// Package gen provides generators for common Go types.
//
// Every generator draws its choices from an exhaustive.Run and passes budget
// exhaustion through unchanged. Composite generators build on the element
// generators they are given, so a generator for map[string][]bool is just
//
//	gen.Map(gen.String("ab"), gen.Slice(gen.Bool()))
//
// Enumeration order follows choice order: for a single choice, smaller
// values come first; for containers, shorter containers come first and later
// elements vary fastest.
package gen

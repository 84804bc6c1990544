// Package shape describes value shapes and builds generators for them.
//
// A Shape can be written in a small text syntax or loaded from a CUE schema:
//
//	bool                  false, true
//	unit                  {}
//	=<scalar>             a constant: =3, ="a", =true, =null
//	int[lo..hi]           lo through hi
//	enum{a, b, 3}         each member in order
//	string[abc]           strings over the alphabet, shortest first
//	[]T                   lists of T
//	[N]T                  lists of exactly N elements
//	?T                    T, then null
//	set[T]                sets of T, rendered sorted
//	map[K]V               maps, rendered as sorted [key, value] pairs
//	(T, U)                tuples
//	{name: T, other: U}   records
//	either[L, R]          {"left": L} values, then {"right": R} values
//	oneof[T, U]           T values, then U values
//
// Generator turns a Shape into an exhaustive.Generator of value.Value.
package shape

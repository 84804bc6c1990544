// Package exhaustive implements the choice-tree enumeration engine.
//
// A value is built by a Generator from a sequence of small integer choices
// handed out by a Run. The Session remembers the path of choices taken by the
// previous attempt and, between attempts, advances it to the
// lexicographically-next path. Walking every path in this way visits every
// value reachable within the per-attempt budget exactly once.
//
// ARCHITECTURE:
//
// Lazily Discovered Tree:
// The branching factor of a tree position is unknown until a Run first asks
// for a choice there. The Session records it as the position's max and never
// re-discovers it. Backtracking is an iterative scan over an explicit
// []Position, not recursion, so tree depth never reaches the Go stack.
//
// Budget Exhaustion:
// Each Run may make at most budget non-degenerate choices. When a Generator
// asks for one more, Choice returns ErrBudgetExhausted and the attempt is
// abandoned. Repeat catches the failure long enough to lower the max of its
// count position, so longer sequences that can never fit are not retried.
//
// Single Outstanding Run:
// A Run borrows the Session's path. Calling Session.Next or Session.Restore
// invalidates the previous Run; any later use of it panics.
//
// Determinism:
// For a fixed budget and a fixed Generator, a fresh Session always produces
// the same attempts in the same order. There is no randomness and no
// concurrency in this package.
package exhaustive

// Package store keeps enumeration sessions in SQLite.
//
// A session row names what was enumerated (shape text and budget). Each
// session has at most one checkpoint, replaced as the walk advances, and any
// number of recorded failures:
//
//   - sessions: id, label, shape, budget, created_seq
//   - checkpoints: the latest exhaustive.Checkpoint of a session as JSON
//   - failures: attempts whose value failed a check, with the choice path
//     needed to rebuild the value
//
// # Ordering
//
// Sessions are ordered by created_seq, a logical counter assigned on insert,
// never by wall time. Failures are ordered by attempt. Listing the same
// database twice gives the same order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store

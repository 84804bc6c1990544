package store

import (
	"context"
	"fmt"
)

// CreateSession inserts a session and returns it with its ID and Seq set.
// An empty ID is filled from the store's IDGenerator.
func (s *Store) CreateSession(ctx context.Context, sess Session) (Session, error) {
	if sess.Budget < 0 {
		return Session{}, fmt.Errorf("create session: negative budget %d", sess.Budget)
	}
	if sess.ID == "" {
		sess.ID = s.ids.Generate()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("create session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(created_seq), 0) + 1 FROM sessions`,
	).Scan(&sess.Seq); err != nil {
		return Session{}, fmt.Errorf("create session: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, label, shape, budget, created_seq)
		VALUES (?, ?, ?, ?, ?)
	`, sess.ID, sess.Label, sess.Shape, sess.Budget, sess.Seq)
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("create session: commit: %w", err)
	}
	return sess, nil
}

// SaveCheckpoint replaces the checkpoint of a session.
//
// Note: The session must exist (foreign key constraint).
func (s *Store) SaveCheckpoint(ctx context.Context, cp Checkpoint) error {
	state, err := marshalState(cp.State)
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checkpoints (session_id, attempts, yielded, state)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			attempts = excluded.attempts,
			yielded  = excluded.yielded,
			state    = excluded.state
	`, cp.SessionID, cp.State.Attempts, cp.Yielded, state)
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

// WriteFailure records a failed attempt.
// Uses ON CONFLICT DO NOTHING for idempotency - recording the same attempt
// twice keeps the first record.
func (s *Store) WriteFailure(ctx context.Context, f Failure) error {
	path, err := marshalPath(f.Path)
	if err != nil {
		return fmt.Errorf("write failure: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO failures (session_id, attempt, value_id, value, path, message)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, attempt) DO NOTHING
	`, f.SessionID, f.Attempt, f.ValueID, f.Value, path, f.Message)
	if err != nil {
		return fmt.Errorf("write failure: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReadSession returns the session with the given ID, or ErrNotFound.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, shape, budget, created_seq
		FROM sessions
		WHERE id = ?
	`, id).Scan(&sess.ID, &sess.Label, &sess.Shape, &sess.Budget, &sess.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("read session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return sess, nil
}

// ListSessions returns every session in creation order.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, shape, budget, created_seq
		FROM sessions
		ORDER BY created_seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Label, &sess.Shape, &sess.Budget, &sess.Seq); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadCheckpoint returns the latest checkpoint of a session, or ErrNotFound
// if none was saved.
func (s *Store) ReadCheckpoint(ctx context.Context, sessionID string) (Checkpoint, error) {
	cp := Checkpoint{SessionID: sessionID}
	var state string
	err := s.db.QueryRowContext(ctx, `
		SELECT yielded, state FROM checkpoints WHERE session_id = ?
	`, sessionID).Scan(&cp.Yielded, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{}, fmt.Errorf("read checkpoint %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return Checkpoint{}, fmt.Errorf("read checkpoint %s: %w", sessionID, err)
	}

	cp.State, err = unmarshalState(state)
	if err != nil {
		return Checkpoint{}, fmt.Errorf("read checkpoint %s: %w", sessionID, err)
	}
	return cp, nil
}

// ReadFailures returns the failures recorded for a session, by attempt.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadFailures(ctx context.Context, sessionID string) ([]Failure, error) {
	return s.queryFailures(ctx, `
		SELECT session_id, attempt, value_id, value, path, message
		FROM failures
		WHERE session_id = ?
		ORDER BY attempt ASC
	`, sessionID)
}

// FindFailuresByValue returns failures of any session whose value has the
// given value ID, ordered by session creation then attempt.
func (s *Store) FindFailuresByValue(ctx context.Context, valueID string) ([]Failure, error) {
	return s.queryFailures(ctx, `
		SELECT f.session_id, f.attempt, f.value_id, f.value, f.path, f.message
		FROM failures f
		JOIN sessions s ON s.id = f.session_id
		WHERE f.value_id = ?
		ORDER BY s.created_seq ASC, f.attempt ASC
	`, valueID)
}

func (s *Store) queryFailures(ctx context.Context, query string, args ...any) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	failures := []Failure{}
	for rows.Next() {
		var f Failure
		var path string
		if err := rows.Scan(&f.SessionID, &f.Attempt, &f.ValueID, &f.Value, &path, &f.Message); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		if f.Path, err = unmarshalPath(path); err != nil {
			return nil, err
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}
	return failures, nil
}

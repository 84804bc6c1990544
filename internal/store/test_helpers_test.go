package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/exhaustive/internal/testutil"
)

// createTestStore creates a new store in a temp dir with fixed session IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.SequentialIDs("session", 10)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession inserts a session with minimal required fields.
func createTestSession(t *testing.T, s *Store, shape string, budget int) Session {
	t.Helper()
	sess, err := s.CreateSession(context.Background(), Session{Shape: shape, Budget: budget})
	if err != nil {
		t.Fatalf("CreateSession() failed: %v", err)
	}
	return sess
}

package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/exhaustive/internal/exhaustive"
	"github.com/roach88/exhaustive/internal/store"
	"github.com/roach88/exhaustive/internal/value"
)

// seedSession stores a []bool session at budget 3 with the given failures.
func seedSession(t *testing.T, failures ...store.Failure) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.CreateSession(ctx, store.Session{ID: "s1", Label: "bools", Shape: "[]bool", Budget: 3})
	require.NoError(t, err)
	for _, f := range failures {
		f.SessionID = "s1"
		require.NoError(t, st.WriteFailure(ctx, f))
	}
	return dbPath
}

func boolListFailure(attempt int, recorded value.Value, path ...exhaustive.Position) store.Failure {
	return store.Failure{
		Attempt: attempt,
		ValueID: value.MustID(recorded),
		Value:   value.Render(recorded),
		Path:    path,
		Message: "boom",
	}
}

var trueFalsePath = []exhaustive.Position{{Value: 2, Max: 3}, {Value: 1, Max: 1}, {Value: 0, Max: 1}}

func TestReplayMissingDatabaseFlag(t *testing.T) {
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	_, _, err := execute(cmd, "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestReplayUnknownSession(t *testing.T) {
	dbPath := seedSession(t)

	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	_, _, err := execute(cmd, "nope", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown session")
}

func TestReplayNoFailures(t *testing.T) {
	dbPath := seedSession(t)

	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	out, _, err := execute(cmd, "s1", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Session s1")
	assert.Contains(t, out, "label:  bools")
	assert.Contains(t, out, "budget: 3")
	assert.NotContains(t, out, "checkpoint:")
	assert.Contains(t, out, "No failures recorded.")
}

func TestReplayShowsCheckpoint(t *testing.T) {
	dbPath := seedSession(t)
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	err = st.SaveCheckpoint(context.Background(), store.Checkpoint{
		SessionID: "s1",
		Yielded:   3,
		State:     exhaustive.Checkpoint{Budget: 3, Path: []exhaustive.Position{{Value: 1, Max: 3}, {Value: 1, Max: 1}}, Started: true, Attempts: 3},
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	out, _, err := execute(cmd, "s1", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "checkpoint: 3 values, 3 attempts, in progress")
}

func TestReplayRebuildsFailures(t *testing.T) {
	dbPath := seedSession(t,
		boolListFailure(6, value.List{value.Bool(true), value.Bool(false)}, trueFalsePath...),
		boolListFailure(1, value.List{}, exhaustive.Position{Value: 0, Max: 3}),
	)

	cmd := NewReplayCommand(&RootOptions{Format: "json"})
	out, _, err := execute(cmd, "s1", "--db", dbPath)
	require.NoError(t, err)

	var data ReplayResult
	resp := decodeData(t, out, &data)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, SessionInfo{ID: "s1", Label: "bools", Shape: "[]bool", Budget: 3}, data.Session)
	assert.Nil(t, data.Checkpoint)
	assert.Equal(t, 0, data.Mismatches)
	require.Len(t, data.Failures, 2)

	// Failures come back in attempt order.
	assert.Equal(t, 1, data.Failures[0].Attempt)
	assert.Equal(t, "[]", data.Failures[0].Rebuilt)
	assert.Equal(t, 6, data.Failures[1].Attempt)
	assert.Equal(t, "[true,false]", data.Failures[1].Rebuilt)
	assert.Equal(t, trueFalsePath, data.Failures[1].Path)
	assert.True(t, data.Failures[1].Match)
}

func TestReplayDetectsMismatch(t *testing.T) {
	dbPath := seedSession(t,
		boolListFailure(6, value.List{value.Bool(true), value.Bool(true)}, trueFalsePath...),
	)

	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	out, stderr, err := execute(cmd, "s1", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 failure(s) did not replay")

	assert.Contains(t, out, "✗ attempt 6: [true,true]")
	assert.Contains(t, out, "path rebuilds [true,false]")
	assert.Contains(t, stderr, "failure does not replay")
}

func TestReplayPathOverBudget(t *testing.T) {
	// Asking for three elements leaves too few choices for the third.
	dbPath := seedSession(t,
		boolListFailure(9, value.List{}, exhaustive.Position{Value: 3, Max: 3}, exhaustive.Position{Value: 0, Max: 1}, exhaustive.Position{Value: 0, Max: 1}),
	)

	cmd := NewReplayCommand(&RootOptions{Format: "json"})
	out, _, err := execute(cmd, "s1", "--db", dbPath)
	require.Error(t, err)

	var data ReplayResult
	decodeData(t, out, &data)
	require.Len(t, data.Failures, 1)
	assert.False(t, data.Failures[0].Match)
	assert.Contains(t, data.Failures[0].Error, "choice budget exhausted")
}

package harness

import (
	"context"
	"fmt"

	"github.com/roach88/exhaustive/internal/exhaustive"
	"github.com/roach88/exhaustive/internal/store"
	"github.com/roach88/exhaustive/internal/value"
)

// Failure describes a value that failed a check.
type Failure struct {
	Label   string
	Attempt int
	Path    []exhaustive.Position
	Value   value.Value
	Message string
}

// Recorder receives failures from Check and RunPlan.
type Recorder interface {
	RecordFailure(ctx context.Context, f Failure) error
}

// StoreRecorder writes failures to a store session.
type StoreRecorder struct {
	store     *store.Store
	sessionID string
}

// NewStoreRecorder creates a session in st for an enumeration of shapeText at
// budget and returns a recorder writing failures to it.
func NewStoreRecorder(ctx context.Context, st *store.Store, label, shapeText string, budget int) (*StoreRecorder, error) {
	sess, err := st.CreateSession(ctx, store.Session{Label: label, Shape: shapeText, Budget: budget})
	if err != nil {
		return nil, fmt.Errorf("create recorder session: %w", err)
	}
	return &StoreRecorder{store: st, sessionID: sess.ID}, nil
}

// SessionID returns the ID of the session failures are written to.
func (r *StoreRecorder) SessionID() string {
	return r.sessionID
}

// RecordFailure implements Recorder.
func (r *StoreRecorder) RecordFailure(ctx context.Context, f Failure) error {
	id, err := value.ID(f.Value)
	if err != nil {
		return fmt.Errorf("record failure: %w", err)
	}
	return r.store.WriteFailure(ctx, store.Failure{
		SessionID: r.sessionID,
		Attempt:   f.Attempt,
		ValueID:   id,
		Value:     value.Render(f.Value),
		Path:      f.Path,
		Message:   f.Message,
	})
}

// asValue returns v as a value.Value, or its formatted text when v is not one.
func asValue(v any, format func(any) string) value.Value {
	if vv, ok := v.(value.Value); ok {
		return vv
	}
	return value.String(format(v))
}

func renderValue(v any) (string, bool) {
	vv, ok := v.(value.Value)
	if !ok {
		return "", false
	}
	return value.Render(vv), true
}

package store

import "github.com/roach88/exhaustive/internal/exhaustive"

// Session describes one enumeration.
type Session struct {
	ID     string
	Label  string
	Shape  string // shape text, as accepted by shape.Parse
	Budget int
	Seq    int64 // assigned by CreateSession
}

// Checkpoint is the latest saved state of a session's walk.
type Checkpoint struct {
	SessionID string
	Yielded   int // values handed out so far
	State     exhaustive.Checkpoint
}

// Failure records an attempt whose value failed a check.
type Failure struct {
	SessionID string
	Attempt   int
	ValueID   string // value.ID of the failing value
	Value     string // canonical JSON of the failing value
	Path      []exhaustive.Position
	Message   string
}

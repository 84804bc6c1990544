package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/exhaustive/internal/exhaustive"
	"github.com/roach88/exhaustive/internal/shape"
	"github.com/roach88/exhaustive/internal/store"
	"github.com/roach88/exhaustive/internal/value"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayResult is the output of the replay command.
type ReplayResult struct {
	Session    SessionInfo       `json:"session"`
	Checkpoint *CheckpointInfo   `json:"checkpoint,omitempty"`
	Failures   []ReplayedFailure `json:"failures"`
	Mismatches int               `json:"mismatches"`
}

// CheckpointInfo summarises a saved checkpoint.
type CheckpointInfo struct {
	Yielded  int  `json:"yielded"`
	Attempts int  `json:"attempts"`
	Done     bool `json:"done"`
}

// ReplayedFailure is a recorded failure and the value its path rebuilds.
type ReplayedFailure struct {
	Attempt  int                   `json:"attempt"`
	Message  string                `json:"message"`
	Path     []exhaustive.Position `json:"path"`
	Recorded string                `json:"recorded"`
	Rebuilt  string                `json:"rebuilt,omitempty"`
	Match    bool                  `json:"match"`
	Error    string                `json:"error,omitempty"`
}

// WriteText prints the session, its checkpoint, and each failure.
func (r *ReplayResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Session %s\n", r.Session.ID)
	if r.Session.Label != "" {
		fmt.Fprintf(w, "  label:  %s\n", r.Session.Label)
	}
	fmt.Fprintf(w, "  shape:  %s\n", r.Session.Shape)
	fmt.Fprintf(w, "  budget: %d\n", r.Session.Budget)
	if cp := r.Checkpoint; cp != nil {
		state := "in progress"
		if cp.Done {
			state = "done"
		}
		fmt.Fprintf(w, "  checkpoint: %d values, %d attempts, %s\n", cp.Yielded, cp.Attempts, state)
	}

	if len(r.Failures) == 0 {
		_, err := fmt.Fprintln(w, "No failures recorded.")
		return err
	}
	fmt.Fprintln(w)
	for _, f := range r.Failures {
		mark := "✓"
		if !f.Match {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s attempt %d: %s\n", mark, f.Attempt, f.Recorded)
		fmt.Fprintf(w, "  %s\n", f.Message)
		switch {
		case f.Error != "":
			fmt.Fprintf(w, "  replay error: %s\n", f.Error)
		case !f.Match:
			fmt.Fprintf(w, "  path rebuilds %s\n", f.Rebuilt)
		}
	}
	_, err := fmt.Fprintf(w, "\n%d failure(s), %d mismatch(es)\n", len(r.Failures), r.Mismatches)
	return err
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <session-id>",
		Short: "Rebuild the failures recorded in a session",
		Long: `Show a recorded session and rebuild each of its failures from the stored
choice path, checking that the path still produces the recorded value.

A mismatch means the shape's generator is no longer deterministic or the
shape was changed after the failure was recorded.

Exit codes:
  0 - Every failure rebuilt to its recorded value
  1 - One or more failures rebuilt differently
  2 - Command error (database not found, unknown session, etc.)

Examples:
  exhaustive replay --db runs.db 01890a5d-ac96-774b-bcce-b302099a8057
  exhaustive replay --db runs.db 01890a5d-ac96-774b-bcce-b302099a8057 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	mustMarkRequired(cmd, "db")

	return cmd
}

func runReplay(opts *ReplayOptions, sessionID string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	st, closeStore, err := openStore(opts.Database, nil, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sess, err := st.ReadSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitCommandError, "unknown session", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}
	s, err := shape.Parse(sess.Shape)
	if err != nil {
		return WrapExitError(ExitCommandError, "stored shape is invalid", err)
	}
	g, err := shape.Generator(s)
	if err != nil {
		return WrapExitError(ExitCommandError, "stored shape is invalid", err)
	}

	result := &ReplayResult{
		Session:  newSessionInfo(sess),
		Failures: []ReplayedFailure{},
	}

	cp, err := st.ReadCheckpoint(ctx, sessionID)
	switch {
	case err == nil:
		result.Checkpoint = &CheckpointInfo{Yielded: cp.Yielded, Attempts: cp.State.Attempts, Done: cp.State.Done}
	case !errors.Is(err, store.ErrNotFound):
		return WrapExitError(ExitCommandError, "failed to read checkpoint", err)
	}

	failures, err := st.ReadFailures(ctx, sessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read failures", err)
	}
	for _, f := range failures {
		rf := replayFailure(sess.Budget, g, f)
		if !rf.Match {
			result.Mismatches++
			logger.Warn("failure does not replay",
				"session", sessionID,
				"attempt", f.Attempt,
				"recorded", rf.Recorded,
				"rebuilt", rf.Rebuilt,
				"error", rf.Error)
		}
		result.Failures = append(result.Failures, rf)
	}

	out := newFormatter(opts.RootOptions, cmd)
	if result.Mismatches > 0 {
		msg := fmt.Sprintf("%d failure(s) did not replay", result.Mismatches)
		if err := out.Failure(result, "E_REPLAY_MISMATCH", msg); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}
	return out.Success(result)
}

// replayFailure rebuilds the value at f's path and compares it with the
// recorded one.
func replayFailure(budget int, g exhaustive.Generator[value.Value], f store.Failure) ReplayedFailure {
	rf := ReplayedFailure{
		Attempt:  f.Attempt,
		Message:  f.Message,
		Path:     f.Path,
		Recorded: f.Value,
	}

	session, err := exhaustive.Replay(budget, f.Path)
	if err != nil {
		rf.Error = err.Error()
		return rf
	}
	run, ok := session.Next()
	if !ok {
		rf.Error = "session has no attempts"
		return rf
	}
	v, err := g.Generate(run)
	if err != nil {
		rf.Error = err.Error()
		return rf
	}
	rf.Rebuilt = value.Render(v)
	rf.Match = rf.Rebuilt == f.Value
	return rf
}

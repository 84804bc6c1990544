package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/exhaustive/internal/exhaustive"
	"github.com/roach88/exhaustive/internal/shape"
	"github.com/roach88/exhaustive/internal/store"
	"github.com/roach88/exhaustive/internal/value"
)

// EnumerateOptions holds flags for the enumerate command.
type EnumerateOptions struct {
	*RootOptions
	shapeFlags
	Budget   int
	Limit    int
	Database string
	Resume   string
	Label    string

	// IDGenerator allows overriding the session ID generator (for testing).
	// If nil, the store defaults to UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// EnumerateResult is the output of the enumerate command.
type EnumerateResult struct {
	SessionID string            `json:"session_id,omitempty"`
	Shape     string            `json:"shape"`
	Budget    int               `json:"budget"`
	Values    []json.RawMessage `json:"values"`
	Count     int               `json:"count"`
	Yielded   int               `json:"yielded"` // across all resumptions of the session
	Attempts  int               `json:"attempts"`
	Done      bool              `json:"done"`
}

// WriteText prints one value per line.
func (r *EnumerateResult) WriteText(w io.Writer) error {
	for _, v := range r.Values {
		if _, err := fmt.Fprintln(w, string(v)); err != nil {
			return err
		}
	}
	return nil
}

// NewEnumerateCommand creates the enumerate command.
func NewEnumerateCommand(rootOpts *RootOptions) *cobra.Command {
	return newEnumerateCommand(&EnumerateOptions{RootOptions: rootOpts})
}

func newEnumerateCommand(opts *EnumerateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enumerate [shape]",
		Short: "Print every value of a shape",
		Long: `Print every value of a shape that can be built within --budget choices,
one canonical JSON value per line, in enumeration order.

With --db the enumeration is recorded as a session and checkpointed when it
stops, so a --limit'ed run can be continued with --resume.

Examples:
  exhaustive enumerate "[]bool" --budget 3
  exhaustive enumerate --schema cart.cue --def '#Item' --budget 2
  exhaustive enumerate "[]int[0..9]" --budget 6 --limit 100 --db runs.db
  exhaustive enumerate --db runs.db --resume <session-id> --limit 100`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnumerate(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Budget, "budget", 4, "choices per value")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "stop after this many values (0 = no limit)")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema file to take the shape from")
	cmd.Flags().StringVar(&opts.Def, "def", "", "value in the schema, e.g. '#Item'")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to record the session in")
	cmd.Flags().StringVar(&opts.Resume, "resume", "", "continue a session from its checkpoint (requires --db)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for a new session")

	return cmd
}

func runEnumerate(opts *EnumerateOptions, args []string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if opts.Limit < 0 {
		return NewExitError(ExitCommandError, "--limit must be non-negative")
	}
	if opts.Resume != "" && opts.Database == "" {
		return NewExitError(ExitCommandError, "--resume requires --db")
	}
	if opts.Resume != "" && (len(args) > 0 || opts.Schema != "") {
		return NewExitError(ExitCommandError, "--resume takes the shape from the stored session")
	}

	var st *store.Store
	if opts.Database != "" {
		var closeStore func()
		var err error
		st, closeStore, err = openStore(opts.Database, opts.IDGenerator, logger)
		if err != nil {
			return err
		}
		defer closeStore()
	}

	var (
		s       *shape.Shape
		session *exhaustive.Session
		result  = &EnumerateResult{Values: []json.RawMessage{}}
	)
	if opts.Resume != "" {
		var err error
		s, session, result.Yielded, err = resumeSession(ctx, st, opts.Resume)
		if err != nil {
			return err
		}
		result.SessionID = opts.Resume
		logger.Info("resuming session", "session", opts.Resume, "yielded", result.Yielded)
	} else {
		if opts.Budget < 0 {
			return NewExitError(ExitCommandError, "--budget must be non-negative")
		}
		var err error
		s, err = resolveShape(args, opts.shapeFlags)
		if err != nil {
			return err
		}
		session = exhaustive.NewSession(opts.Budget)
		if st != nil {
			sess, err := st.CreateSession(ctx, store.Session{Label: opts.Label, Shape: s.String(), Budget: opts.Budget})
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to create session", err)
			}
			result.SessionID = sess.ID
			logger.Info("session created", "session", sess.ID, "shape", sess.Shape, "budget", sess.Budget)
		}
	}

	g, err := shape.Generator(s)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid shape", err)
	}

	result.Shape = s.String()
	result.Budget = session.Budget()
	enumerate(session, g, opts.Limit, result, logger)
	result.Yielded += result.Count

	if st != nil {
		cp := store.Checkpoint{SessionID: result.SessionID, Yielded: result.Yielded, State: session.Checkpoint()}
		if err := st.SaveCheckpoint(ctx, cp); err != nil {
			return WrapExitError(ExitCommandError, "failed to save checkpoint", err)
		}
		logger.Info("checkpoint saved",
			"session", result.SessionID,
			"yielded", result.Yielded,
			"attempts", result.Attempts,
			"done", result.Done)
	}

	return newFormatter(opts.RootOptions, cmd).Success(result)
}

// enumerate appends up to limit values of g to result.
func enumerate(session *exhaustive.Session, g exhaustive.Generator[value.Value], limit int, result *EnumerateResult, logger *slog.Logger) {
	for _, v := range exhaustive.Attempts(session, g) {
		b, err := value.MarshalCanonical(v)
		if err != nil {
			// Generated values are always representable.
			panic(err)
		}
		result.Values = append(result.Values, json.RawMessage(b))
		result.Count++
		logger.Debug("value", "attempt", session.Attempts(), "value", string(b))
		if limit > 0 && result.Count == limit {
			break
		}
	}
	result.Attempts = session.Attempts()
	result.Done = session.Done()
}

// resumeSession loads a stored session and restores its walk.
func resumeSession(ctx context.Context, st *store.Store, id string) (*shape.Shape, *exhaustive.Session, int, error) {
	sess, err := st.ReadSession(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, 0, WrapExitError(ExitCommandError, "unknown session", err)
		}
		return nil, nil, 0, WrapExitError(ExitCommandError, "failed to read session", err)
	}
	s, err := shape.Parse(sess.Shape)
	if err != nil {
		return nil, nil, 0, WrapExitError(ExitCommandError, "stored shape is invalid", err)
	}

	cp, err := st.ReadCheckpoint(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return s, exhaustive.NewSession(sess.Budget), 0, nil
	}
	if err != nil {
		return nil, nil, 0, WrapExitError(ExitCommandError, "failed to read checkpoint", err)
	}
	session, err := exhaustive.Resume(cp.State)
	if err != nil {
		return nil, nil, 0, WrapExitError(ExitCommandError, "stored checkpoint is invalid", err)
	}
	return s, session, cp.Yielded, nil
}

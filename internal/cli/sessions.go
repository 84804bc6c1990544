package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/exhaustive/internal/store"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database string
}

// SessionInfo describes a stored session.
type SessionInfo struct {
	ID     string `json:"id"`
	Label  string `json:"label,omitempty"`
	Shape  string `json:"shape"`
	Budget int    `json:"budget"`
}

func newSessionInfo(s store.Session) SessionInfo {
	return SessionInfo{ID: s.ID, Label: s.Label, Shape: s.Shape, Budget: s.Budget}
}

// SessionsResult is the output of the sessions command.
type SessionsResult struct {
	Sessions []SessionInfo `json:"sessions"`
}

// WriteText prints the sessions as a table.
func (r *SessionsResult) WriteText(w io.Writer) error {
	if len(r.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tBUDGET\tSHAPE")
	for _, s := range r.Sessions {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.ID, s.Label, s.Budget, s.Shape)
	}
	return tw.Flush()
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Long: `List the sessions recorded in a database, oldest first.

Examples:
  exhaustive sessions --db runs.db
  exhaustive sessions --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	mustMarkRequired(cmd, "db")

	return cmd
}

func runSessions(opts *SessionsOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, closeStore, err := openStore(opts.Database, nil, newLogger(opts.RootOptions, cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	result := &SessionsResult{Sessions: make([]SessionInfo, 0, len(sessions))}
	for _, s := range sessions {
		result.Sessions = append(result.Sessions, newSessionInfo(s))
	}
	return newFormatter(opts.RootOptions, cmd).Success(result)
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/exhaustive/internal/exhaustive"
	"github.com/roach88/exhaustive/internal/shape"
)

// CountOptions holds flags for the count command.
type CountOptions struct {
	*RootOptions
	shapeFlags
	Budget int
}

// CountResult is the output of the count command.
type CountResult struct {
	Shape    string `json:"shape"`
	Budget   int    `json:"budget"`
	Count    int    `json:"count"`
	Attempts int    `json:"attempts"`
}

// WriteText prints the count and the attempts it took.
func (r *CountResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d values of %s with budget %d (%d attempts)\n",
		r.Count, r.Shape, r.Budget, r.Attempts)
	return err
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "count [shape]",
		Short: "Count the values of a shape",
		Long: `Count the values of a shape that can be built within --budget choices.

Attempts is the number of paths tried, including those that ran out of
budget before producing a value.

Examples:
  exhaustive count "[]bool" --budget 8
  exhaustive count --schema cart.cue --def '#Cart' --budget 6 --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Budget, "budget", 4, "choices per value")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema file to take the shape from")
	cmd.Flags().StringVar(&opts.Def, "def", "", "value in the schema, e.g. '#Item'")

	return cmd
}

func runCount(opts *CountOptions, args []string, cmd *cobra.Command) error {
	if opts.Budget < 0 {
		return NewExitError(ExitCommandError, "--budget must be non-negative")
	}
	s, err := resolveShape(args, opts.shapeFlags)
	if err != nil {
		return err
	}
	g, err := shape.Generator(s)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid shape", err)
	}

	session := exhaustive.NewSession(opts.Budget)
	result := &CountResult{Shape: s.String(), Budget: opts.Budget}
	for range exhaustive.Attempts(session, g) {
		result.Count++
	}
	result.Attempts = session.Attempts()

	newLogger(opts.RootOptions, cmd.ErrOrStderr()).Debug("counted",
		"shape", result.Shape, "count", result.Count, "attempts", result.Attempts)

	return newFormatter(opts.RootOptions, cmd).Success(result)
}

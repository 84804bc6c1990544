package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/exhaustive/internal/harness"
	"github.com/roach88/exhaustive/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Update   bool   // regenerate golden files
	Filter   string // plan name filter (glob pattern)
	Golden   string // golden directory, defaults to <plans-dir>/golden
	Database string // records excluded values that were generated

	// IDGenerator allows overriding the session ID generator (for testing).
	IDGenerator store.IDGenerator
}

// PlanResult holds the result of a single plan.
type PlanResult struct {
	Name      string   `json:"name"`
	Pass      bool     `json:"pass"`
	Count     int      `json:"count"`
	SessionID string   `json:"session_id,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Plans  []PlanResult `json:"plans"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// WriteText prints one line per plan followed by a summary.
func (r *CheckResult) WriteText(w io.Writer) error {
	if r.Total == 0 {
		_, err := fmt.Fprintln(w, "No plans found.")
		return err
	}
	for _, p := range r.Plans {
		if p.Pass {
			fmt.Fprintf(w, "✓ %s (%d values)\n", p.Name, p.Count)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", p.Name)
		for _, e := range p.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		if p.SessionID != "" {
			fmt.Fprintf(w, "  session %s\n", p.SessionID)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Summary")
	fmt.Fprintln(w, "=============")
	fmt.Fprintf(w, "Total:  %d\n", r.Total)
	fmt.Fprintf(w, "Passed: %d\n", r.Passed)
	_, err := fmt.Fprintf(w, "Failed: %d\n", r.Failed)
	return err
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return newCheckCommand(&CheckOptions{RootOptions: rootOpts})
}

func newCheckCommand(opts *CheckOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <plans-dir>",
		Short: "Run enumeration plans",
		Long: `Run every plan in a directory and check its expectations.

A plan names a shape and a budget, and lists values the enumeration must
start with, contain, or never produce. When a golden file exists for a plan,
the values must also match it line for line.

Exit codes:
  0 - All plans passed
  1 - One or more plans failed
  2 - Command error (invalid directory, malformed plan, etc.)

Examples:
  exhaustive check ./plans
  exhaustive check ./plans --filter "cart*"
  exhaustive check ./plans --update
  exhaustive check ./plans --db runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter plans by glob pattern")
	cmd.Flags().StringVar(&opts.Golden, "golden", "", "golden file directory (default <plans-dir>/golden)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to record failures in")

	return cmd
}

func runCheck(opts *CheckOptions, plansDir string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if _, err := os.Stat(plansDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("plans directory not found: %s", plansDir))
	}
	if _, err := filepath.Match(opts.Filter, ""); err != nil {
		return WrapExitError(ExitCommandError, "invalid filter pattern", err)
	}
	goldenDir := opts.Golden
	if goldenDir == "" {
		goldenDir = filepath.Join(plansDir, "golden")
	}

	plans, err := harness.LoadPlans(plansDir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load plans", err)
	}

	var st *store.Store
	if opts.Database != "" {
		var closeStore func()
		st, closeStore, err = openStore(opts.Database, opts.IDGenerator, logger)
		if err != nil {
			return err
		}
		defer closeStore()
	}

	result := &CheckResult{Plans: []PlanResult{}}
	for _, plan := range plans {
		if opts.Filter != "" {
			if matched, _ := filepath.Match(opts.Filter, plan.Name); !matched {
				continue
			}
		}
		pr := runCheckPlan(ctx, plan, st, goldenDir, opts, logger)
		result.Plans = append(result.Plans, pr)
		result.Total++
		if pr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	f := newFormatter(opts.RootOptions, cmd)
	if result.Failed > 0 {
		msg := fmt.Sprintf("%d plan(s) failed", result.Failed)
		if err := f.Failure(result, "E_PLAN_FAILED", msg); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}
	return f.Success(result)
}

// runCheckPlan runs one plan and compares it with its golden file, if any.
func runCheckPlan(ctx context.Context, plan *harness.Plan, st *store.Store, goldenDir string, opts *CheckOptions, logger *slog.Logger) PlanResult {
	pr := PlanResult{Name: plan.Name}

	runOpts := []harness.Option{harness.WithLogger(logger)}
	if st != nil {
		s, err := plan.ResolveShape()
		if err != nil {
			pr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
			return pr
		}
		rec, err := harness.NewStoreRecorder(ctx, st, plan.Name, s.String(), plan.Budget)
		if err != nil {
			pr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
			return pr
		}
		runOpts = append(runOpts, harness.WithRecorder(rec))
		pr.SessionID = rec.SessionID()
	}

	result, err := harness.RunPlan(plan, runOpts...)
	if err != nil {
		pr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		return pr
	}
	pr.Count = result.Count
	pr.Errors = result.Errors

	if opts.Update {
		if err := harness.UpdateGolden(goldenDir, result); err != nil {
			pr.Errors = append(pr.Errors, fmt.Sprintf("golden update failed: %v", err))
		}
	} else if _, err := os.Stat(filepath.Join(goldenDir, plan.Name+".golden")); err == nil {
		if err := harness.CompareGolden(goldenDir, result); err != nil {
			pr.Errors = append(pr.Errors, fmt.Sprintf("golden mismatch (run with --update to regenerate): %v", err))
		}
	}

	pr.Pass = len(pr.Errors) == 0
	return pr
}

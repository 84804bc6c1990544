package harness

import (
	"context"
	"fmt"
	"slices"

	"github.com/roach88/exhaustive/internal/exhaustive"
	"github.com/roach88/exhaustive/internal/shape"
	"github.com/roach88/exhaustive/internal/value"
)

// RunPlan enumerates the plan's shape and evaluates its expectations.
//
// An error is returned when the plan cannot run at all: its shape does not
// resolve or an expected value is not representable. Failed expectations
// are reported in the Result instead.
//
// Every generated value listed in expect.excludes is passed to the recorder,
// if one is configured, with the path that rebuilds it.
func RunPlan(plan *Plan, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	label := cfg.label
	if label == "" {
		label = plan.Name
	}

	s, err := plan.ResolveShape()
	if err != nil {
		return nil, err
	}
	g, err := shape.Generator(s)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", plan.Name, err)
	}

	first, err := renderAll(plan.Expect.First)
	if err != nil {
		return nil, fmt.Errorf("plan %s: expect.first%w", plan.Name, err)
	}
	contains, err := renderAll(plan.Expect.Contains)
	if err != nil {
		return nil, fmt.Errorf("plan %s: expect.contains%w", plan.Name, err)
	}
	excludes, err := renderAll(plan.Expect.Excludes)
	if err != nil {
		return nil, fmt.Errorf("plan %s: expect.excludes%w", plan.Name, err)
	}

	result := NewResult(plan.Name)
	result.Shape = s.String()

	ctx := context.Background()
	session := exhaustive.NewSession(plan.Budget)
	for run, v := range exhaustive.Attempts(session, g) {
		rendered := value.Render(v)
		result.Values = append(result.Values, rendered)

		if slices.Contains(excludes, rendered) {
			msg := fmt.Sprintf("excluded value %s was generated", rendered)
			result.AddError(msg)
			if cfg.recorder != nil {
				f := Failure{
					Label:   label,
					Attempt: session.Attempts(),
					Path:    run.Path(),
					Value:   v,
					Message: msg,
				}
				if err := cfg.recorder.RecordFailure(ctx, f); err != nil {
					return nil, fmt.Errorf("plan %s: %w", plan.Name, err)
				}
			}
		}

		if plan.Limit > 0 && len(result.Values) == plan.Limit {
			break
		}
	}
	result.Count = len(result.Values)
	result.Attempts = session.Attempts()

	checkExpectations(plan, result, first, contains)

	cfg.logger.Info("plan enumerated",
		"plan", label,
		"shape", result.Shape,
		"budget", plan.Budget,
		"count", result.Count,
		"attempts", result.Attempts,
		"pass", result.Pass)
	return result, nil
}

func checkExpectations(plan *Plan, result *Result, first, contains []string) {
	if want := plan.Expect.Count; want != nil && *want != result.Count {
		result.AddError(fmt.Sprintf("count: got %d values, want %d", result.Count, *want))
	}

	for i, want := range first {
		if i >= len(result.Values) {
			result.AddError(fmt.Sprintf("first[%d]: want %s, enumeration ended after %d values", i, want, len(result.Values)))
			break
		}
		if got := result.Values[i]; got != want {
			result.AddError(fmt.Sprintf("first[%d]: got %s, want %s", i, got, want))
		}
	}

	for _, want := range contains {
		if !slices.Contains(result.Values, want) {
			result.AddError(fmt.Sprintf("contains: %s was not generated", want))
		}
	}
}

// renderAll converts YAML values to canonical JSON. Errors are prefixed with
// the failing index so they read as "expect.first[2]: ...".
func renderAll(vs []any) ([]string, error) {
	out := make([]string, len(vs))
	for i, raw := range vs {
		v, err := value.FromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = value.Render(v)
	}
	return out, nil
}

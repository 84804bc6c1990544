package harness

import (
	"context"
	"fmt"
	"testing"

	"github.com/roach88/exhaustive/internal/exhaustive"
)

// Report summarizes a Check.
type Report struct {
	Cases    int      // values the body ran on
	Attempts int      // attempts started, including those that ran out of budget
	Failure  *Failure // first failing value, nil if every case passed
}

// Check runs body on every value g builds within budget choices.
//
// Each case runs on its own goroutine with a testing.TB of its own, so a
// body may use require, t.Fatal or t.Skip as in a normal test. A case fails
// if body panics, reports an error through its TB, stops early with
// FailNow, or marks the outer t as failed. On the first failure Check
// rebuilds the value from its choice path, so the report shows the input as
// generated even if body modified it, logs it in a ">>>>> label =====" block,
// hands it to the recorder and fails t. Later values are not tried.
//
// Failures reported through the outer t can only be seen while t has not
// failed yet; use the case TB to report them.
//
// A Check that runs no cases at all also fails t, since the budget is
// probably too small for g.
func Check[T any](t testing.TB, budget int, g exhaustive.Generator[T], body func(t testing.TB, v T), opts ...Option) Report {
	t.Helper()
	cfg := newConfig(opts)
	label := cfg.label
	if label == "" {
		label = t.Name()
	}

	session := exhaustive.NewSession(budget)
	var report Report
	for run, v := range exhaustive.Attempts(session, g) {
		report.Cases++
		failedBefore := t.Failed()

		res := runCase(t, body, v)
		if !res.failed && !failedBefore && t.Failed() {
			res = caseResult{failed: true, msg: "test marked failed"}
		}
		if !res.failed {
			continue
		}

		run.Reset(budget)
		input, err := g.Generate(run)
		if err != nil {
			// A generator that succeeded once replays the same choices.
			panic(fmt.Errorf("harness: rebuilding failed input: %w", err))
		}

		report.Attempts = session.Attempts()
		report.Failure = &Failure{
			Label:   label,
			Attempt: session.Attempts(),
			Path:    run.Path(),
			Value:   asValue(input, cfg.format),
			Message: res.msg,
		}
		fail(t, cfg, report.Failure, cfg.format(input))
		return report
	}

	report.Attempts = session.Attempts()
	cfg.logger.Debug("exhaustive check passed",
		"label", label,
		"cases", report.Cases,
		"attempts", report.Attempts,
		"budget", budget)

	if report.Cases == 0 {
		t.Errorf("%s: no cases were generated with budget %d; try increasing the choice limit", label, budget)
	}
	return report
}

type caseResult struct {
	failed bool
	msg    string
}

// runCase calls body on a fresh goroutine and waits for it. A body that
// neither returns nor panics was stopped by runtime.Goexit, which is how
// FailNow and SkipNow end a test.
func runCase[T any](t testing.TB, body func(testing.TB, T), v T) caseResult {
	ct := &caseT{TB: t}
	done := make(chan struct{})
	var res caseResult

	go func() {
		defer close(done)
		returned := false
		defer func() {
			p := recover()
			switch {
			case p != nil:
				res = caseResult{failed: true, msg: fmt.Sprint(p)}
			case ct.Failed():
				res = caseResult{failed: true, msg: ct.message("test marked failed")}
			case !returned && !ct.Skipped():
				res = caseResult{failed: true, msg: "test stopped early"}
			}
		}()
		body(ct, v)
		returned = true
	}()

	<-done
	return res
}

func fail(t testing.TB, cfg *config, f *Failure, rendered string) {
	t.Helper()
	cfg.logger.Error("exhaustive check failed",
		"label", f.Label,
		"attempt", f.Attempt,
		"value", rendered,
		"error", f.Message)

	t.Logf(">>>>> %s =====\n%s", f.Label, rendered)

	if cfg.recorder != nil {
		if err := cfg.recorder.RecordFailure(context.Background(), *f); err != nil {
			t.Errorf("%s: recording failure: %v", f.Label, err)
		}
	}
	t.Errorf("%s: attempt %d failed: %s", f.Label, f.Attempt, f.Message)
}

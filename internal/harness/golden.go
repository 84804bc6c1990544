package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenDir is where golden files live, relative to the test's package.
const GoldenDir = "testdata/golden"

// Golden renders the values of a result as golden file content: one
// canonical JSON value per line.
func (r *Result) Golden() []byte {
	if len(r.Values) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(r.Values, "\n") + "\n")
}

// RunWithGolden runs a plan and compares its values against
// testdata/golden/{plan.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can check expectations too. Test failure
// (via goldie) occurs if the values don't match the golden file.
func RunWithGolden(t *testing.T, plan *Plan, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := RunPlan(plan, opts...)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, plan.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, result.Golden())
}

// CompareGolden compares a result with dir/{name}.golden outside of go test.
// It returns an error describing the first differing line.
func CompareGolden(dir string, result *Result) error {
	path := goldenPath(dir, result.Name)
	want, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}
	got := result.Golden()
	if bytes.Equal(got, want) {
		return nil
	}

	gotLines := strings.Split(string(got), "\n")
	wantLines := strings.Split(string(want), "\n")
	for i := 0; i < max(len(gotLines), len(wantLines)); i++ {
		var g, w string
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if g != w {
			return fmt.Errorf("%s:%d: got %q, want %q", path, i+1, g, w)
		}
	}
	return fmt.Errorf("%s: content differs", path)
}

// UpdateGolden writes the result's values to dir/{name}.golden.
func UpdateGolden(dir string, result *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create golden dir: %w", err)
	}
	if err := os.WriteFile(goldenPath(dir, result.Name), result.Golden(), 0o644); err != nil {
		return fmt.Errorf("write golden file: %w", err)
	}
	return nil
}

func goldenPath(dir, name string) string {
	return filepath.Join(dir, name+".golden")
}

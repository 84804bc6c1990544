package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlan(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlan_Valid(t *testing.T) {
	plan, err := LoadPlan("testdata/plans/bool_lists.yaml")
	require.NoError(t, err)

	assert.Equal(t, "bool_lists", plan.Name)
	assert.Equal(t, "[]bool", plan.Shape)
	assert.Equal(t, 3, plan.Budget)
	require.NotNil(t, plan.Expect.Count)
	assert.Equal(t, 7, *plan.Expect.Count)
	assert.Len(t, plan.Expect.First, 3)
	assert.Len(t, plan.Expect.Contains, 1)
	assert.Len(t, plan.Expect.Excludes, 1)
}

func TestLoadPlan_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing name", "description: d\nshape: bool\n", "name is required"},
		{"bad name", "name: a/b\ndescription: d\nshape: bool\n", "path separators"},
		{"missing description", "name: n\nshape: bool\n", "description is required"},
		{"no shape", "name: n\ndescription: d\n", "one of shape or schema is required"},
		{"both", "name: n\ndescription: d\nshape: bool\nschema: x.cue\n", "mutually exclusive"},
		{"definition alone", "name: n\ndescription: d\nshape: bool\ndefinition: '#X'\n", "definition requires schema"},
		{"negative budget", "name: n\ndescription: d\nshape: bool\nbudget: -1\n", "budget must be non-negative"},
		{"negative limit", "name: n\ndescription: d\nshape: bool\nlimit: -1\n", "limit must be non-negative"},
		{"negative count", "name: n\ndescription: d\nshape: bool\nexpect: {count: -1}\n", "expect.count must be non-negative"},
		{"unknown field", "name: n\ndescription: d\nshape: bool\nbudgte: 3\n", "field budgte not found"},
		{"not yaml", "name: [\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlan(t, t.TempDir(), "plan.yaml", tt.content)
			_, err := LoadPlan(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadPlan_MissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPlans_SortedByFileName(t *testing.T) {
	plans, err := LoadPlans("testdata/plans")
	require.NoError(t, err)

	var names []string
	for _, p := range plans {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"bool_lists", "cart_item", "option_limit"}, names)
}

func TestLoadPlans_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "a.yaml", "name: same\ndescription: d\nshape: bool\n")
	writePlan(t, dir, "b.yml", "name: same\ndescription: d\nshape: unit\n")
	writePlan(t, dir, "notes.txt", "ignored")

	_, err := LoadPlans(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `plan name "same" used by both a.yaml and b.yml`)
}

func TestResolveShape_SchemaRelativeToPlan(t *testing.T) {
	plan, err := LoadPlan("testdata/plans/cart_item.yaml")
	require.NoError(t, err)

	s, err := plan.ResolveShape()
	require.NoError(t, err)
	assert.Equal(t, "{sku: enum{a, b}, gift: bool}", s.String())
}

func TestResolveShape_BadShape(t *testing.T) {
	plan := &Plan{Name: "broken", Description: "d", Shape: "int[3..1]"}
	_, err := plan.ResolveShape()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan broken: shape: offset")
}

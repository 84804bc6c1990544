package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/exhaustive/internal/shape"
)

// Plan describes an enumeration and what its output must look like.
type Plan struct {
	// Name uniquely identifies this plan. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this plan validates.
	Description string `yaml:"description"`

	// Shape is a shape expression, as accepted by shape.Parse.
	// Exactly one of Shape and Schema must be set.
	Shape string `yaml:"shape,omitempty"`

	// Schema is a CUE file, relative to the plan file.
	Schema string `yaml:"schema,omitempty"`

	// Definition selects the value in Schema, for example "#Item".
	// Empty means the whole file.
	Definition string `yaml:"definition,omitempty"`

	// Budget is the number of choices each attempt may make.
	Budget int `yaml:"budget"`

	// Limit stops the enumeration after this many values. Zero means no limit.
	Limit int `yaml:"limit,omitempty"`

	// Expect holds the checks run against the values.
	Expect Expect `yaml:"expect,omitempty"`

	// path is the file the plan was loaded from.
	path string
}

// Expect lists checks against an enumeration. Values are written as YAML and
// compared by canonical JSON.
type Expect struct {
	// Count is the exact number of values, when set.
	Count *int `yaml:"count,omitempty"`

	// First must be a prefix of the values.
	First []any `yaml:"first,omitempty"`

	// Contains must all appear among the values.
	Contains []any `yaml:"contains,omitempty"`

	// Excludes must not appear among the values.
	Excludes []any `yaml:"excludes,omitempty"`
}

// LoadPlan reads and parses a plan YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	// Strict field validation catches typos like "exepct:"
	var plan Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	plan.path = path

	if err := validatePlan(&plan); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return &plan, nil
}

// LoadPlans loads every *.yaml and *.yml file in dir, sorted by file name.
func LoadPlans(dir string) ([]*Plan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	plans := make([]*Plan, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		plan, err := LoadPlan(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[plan.Name]; ok {
			return nil, fmt.Errorf("plan name %q used by both %s and %s", plan.Name, prev, name)
		}
		seen[plan.Name] = name
		plans = append(plans, plan)
	}
	return plans, nil
}

// validatePlan checks that required fields are present and valid.
func validatePlan(p *Plan) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if strings.ContainsAny(p.Name, `/\`) {
		return fmt.Errorf("name %q must not contain path separators", p.Name)
	}
	if p.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case p.Shape == "" && p.Schema == "":
		return fmt.Errorf("one of shape or schema is required")
	case p.Shape != "" && p.Schema != "":
		return fmt.Errorf("shape and schema are mutually exclusive")
	case p.Definition != "" && p.Schema == "":
		return fmt.Errorf("definition requires schema")
	}

	if p.Budget < 0 {
		return fmt.Errorf("budget must be non-negative")
	}
	if p.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if p.Expect.Count != nil && *p.Expect.Count < 0 {
		return fmt.Errorf("expect.count must be non-negative")
	}
	return nil
}

// ResolveShape returns the shape the plan enumerates, parsing Shape or
// loading Definition from Schema.
func (p *Plan) ResolveShape() (*shape.Shape, error) {
	if p.Shape != "" {
		s, err := shape.Parse(p.Shape)
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", p.Name, err)
		}
		return s, nil
	}

	schema := p.Schema
	if !filepath.IsAbs(schema) && p.path != "" {
		schema = filepath.Join(filepath.Dir(p.path), schema)
	}
	s, err := shape.LoadCUE(schema, p.Definition)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", p.Name, err)
	}
	return s, nil
}

package harness

// Result is the outcome of running a plan.
type Result struct {
	// Name is the plan name.
	Name string `json:"name"`

	// Pass indicates overall success.
	// True if every expectation holds.
	Pass bool `json:"pass"`

	// Shape is the canonical text of the enumerated shape.
	Shape string `json:"shape"`

	// Count is the number of values produced.
	Count int `json:"count"`

	// Attempts is the number of runs started, including discarded ones.
	Attempts int `json:"attempts"`

	// Values holds each value as canonical JSON, in enumeration order.
	Values []string `json:"values"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Pass:   true,
		Values: []string{},
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

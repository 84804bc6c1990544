package harness

import (
	"fmt"
	"io"
	"log/slog"
)

// config holds the settings shared by Check and RunPlan.
type config struct {
	label     string
	formatter func(any) string
	logger    *slog.Logger
	recorder  Recorder
}

// Option configures Check and RunPlan.
type Option func(*config)

// WithLabel sets the name used in failure reports. Check defaults to the
// test name, RunPlan to the plan name.
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

// WithFormatter sets how failing values are rendered in logs and records.
// Values of type value.Value are rendered as canonical JSON by default,
// everything else with %#v.
func WithFormatter(f func(any) string) Option {
	return func(c *config) {
		c.formatter = f
	}
}

// WithLogger sets the logger for progress and failure reports.
// Defaults to a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithRecorder records failing values, for example in a store.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		c.recorder = r
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) format(v any) string {
	if c.formatter != nil {
		return c.formatter(v)
	}
	if s, ok := renderValue(v); ok {
		return s
	}
	return fmt.Sprintf("%#v", v)
}

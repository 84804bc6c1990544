package harness

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// caseT is the testing.TB handed to one case of a Check. Failures and skips
// are tracked per case and forwarded to the enclosing test; everything else
// goes straight to it.
type caseT struct {
	testing.TB

	mu      sync.Mutex
	failed  bool
	skipped bool
	first   string // first error reported by the case
}

func (c *caseT) record(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed = true
	if c.first == "" {
		c.first = msg
	}
}

// message returns the first error the case reported, or fallback.
func (c *caseT) message(fallback string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.first == "" {
		return fallback
	}
	return c.first
}

func (c *caseT) Error(args ...any) {
	c.TB.Helper()
	c.record(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	c.TB.Error(args...)
}

func (c *caseT) Errorf(format string, args ...any) {
	c.TB.Helper()
	c.record(fmt.Sprintf(format, args...))
	c.TB.Errorf(format, args...)
}

func (c *caseT) Fail() {
	c.record("")
	c.TB.Fail()
}

func (c *caseT) FailNow() {
	c.Fail()
	runtime.Goexit()
}

func (c *caseT) Failed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

func (c *caseT) Fatal(args ...any) {
	c.TB.Helper()
	c.Error(args...)
	c.FailNow()
}

func (c *caseT) Fatalf(format string, args ...any) {
	c.TB.Helper()
	c.Errorf(format, args...)
	c.FailNow()
}

func (c *caseT) Skip(args ...any) {
	c.TB.Helper()
	c.TB.Log(args...)
	c.SkipNow()
}

func (c *caseT) Skipf(format string, args ...any) {
	c.TB.Helper()
	c.TB.Logf(format, args...)
	c.SkipNow()
}

// SkipNow skips the current case only.
func (c *caseT) SkipNow() {
	c.mu.Lock()
	c.skipped = true
	c.mu.Unlock()
	runtime.Goexit()
}

func (c *caseT) Skipped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.skipped
}

package testutil

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// RecordingTB is a testing.TB that records logs and errors instead of
// reporting them, so tests can assert that a helper fails a test.
//
// Only Helper, Name, Log, Logf, Error, Errorf, Fail, FailNow, Fatal, Fatalf
// and Failed are implemented. Calling any other testing.TB method panics.
// FailNow stops the calling goroutine with runtime.Goexit, as testing.T does.
type RecordingTB struct {
	testing.TB

	name string

	mu     sync.Mutex
	logs   []string
	errors []string
	failed bool
}

// NewRecordingTB creates a RecordingTB reporting the given test name.
func NewRecordingTB(name string) *RecordingTB {
	return &RecordingTB{name: name}
}

func (tb *RecordingTB) Helper() {}

func (tb *RecordingTB) Name() string { return tb.name }

func (tb *RecordingTB) Log(args ...any) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.logs = append(tb.logs, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func (tb *RecordingTB) Logf(format string, args ...any) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.logs = append(tb.logs, fmt.Sprintf(format, args...))
}

func (tb *RecordingTB) Error(args ...any) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.errors = append(tb.errors, strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	tb.failed = true
}

func (tb *RecordingTB) Errorf(format string, args ...any) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.errors = append(tb.errors, fmt.Sprintf(format, args...))
	tb.failed = true
}

func (tb *RecordingTB) Fail() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.failed = true
}

func (tb *RecordingTB) FailNow() {
	tb.Fail()
	runtime.Goexit()
}

func (tb *RecordingTB) Fatal(args ...any) {
	tb.Error(args...)
	tb.FailNow()
}

func (tb *RecordingTB) Fatalf(format string, args ...any) {
	tb.Errorf(format, args...)
	tb.FailNow()
}

func (tb *RecordingTB) Failed() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.failed
}

// Logs returns everything logged so far.
func (tb *RecordingTB) Logs() []string {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return append([]string(nil), tb.logs...)
}

// Errors returns every error reported so far.
func (tb *RecordingTB) Errors() []string {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return append([]string(nil), tb.errors...)
}

// Combined joins the logs and then the errors, one per line.
func (tb *RecordingTB) Combined() string {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return strings.Join(append(append([]string(nil), tb.logs...), tb.errors...), "\n")
}

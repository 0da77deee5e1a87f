// Package testutils provides testing helpers shared across packages
package testutils

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jzx17/gothreadpool/pkg/types"
)

// Record is one captured log call
type Record struct {
	Level   string
	Message string
	Args    []any
}

// Attr returns the value following key in the record arguments
func (r Record) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1], true
		}
	}
	return nil, false
}

// CaptureLogger is a types.Logger that keeps every record for inspection
type CaptureLogger struct {
	mu      sync.Mutex
	records []Record
}

var _ types.Logger = (*CaptureLogger)(nil)

// NewCaptureLogger creates an empty CaptureLogger
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

func (l *CaptureLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args) }
func (l *CaptureLogger) Info(msg string, args ...any)  { l.add("INFO", msg, args) }
func (l *CaptureLogger) Warn(msg string, args ...any)  { l.add("WARN", msg, args) }
func (l *CaptureLogger) Error(msg string, args ...any) { l.add("ERROR", msg, args) }

func (l *CaptureLogger) add(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, Record{Level: level, Message: msg, Args: args})
}

// Records returns a copy of the captured records
func (l *CaptureLogger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Find returns captured records at level whose message contains substr
func (l *CaptureLogger) Find(level, substr string) []Record {
	var out []Record
	for _, r := range l.Records() {
		if r.Level == level && strings.Contains(r.Message, substr) {
			out = append(out, r)
		}
	}
	return out
}

// WaitTimeout waits for wg and fails the test if it takes longer than timeout
func WaitTimeout(t testing.TB, wg *sync.WaitGroup, timeout time.Duration, msgAndArgs ...any) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("timed out after %v waiting %s", timeout, fmt.Sprint(msgAndArgs...))
	}
}

// Within runs fn and fails the test if it does not return within timeout
func Within(t testing.TB, timeout time.Duration, fn func(), msgAndArgs ...any) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("did not return within %v %s", timeout, fmt.Sprint(msgAndArgs...))
	}
}

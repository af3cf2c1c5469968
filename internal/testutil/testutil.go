// Package testutil provides testing utilities for splash tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// WriteFile writes content to dir/name and returns the path. Parent
// directories are created as needed.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// WriteFrames writes a background frame file whose frames are separated by
// "%%" lines and returns its path.
func WriteFrames(t *testing.T, dir, name string, frames ...string) string {
	t.Helper()

	trimmed := make([]string, len(frames))
	for i, f := range frames {
		trimmed[i] = strings.TrimSuffix(f, "\n")
	}
	return WriteFile(t, dir, name, strings.Join(trimmed, "\n%%\n")+"\n")
}

// Epoch is the start time of a Clock.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// Clock is a manually advanced clock. The zero value is not usable; use
// NewClock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock stopped at Epoch.
func NewClock() *Clock {
	return &Clock{now: Epoch}
}

// Now returns the current time of the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Elapsed returns the time advanced since Epoch.
func (c *Clock) Elapsed() time.Duration {
	return c.Now().Sub(Epoch)
}

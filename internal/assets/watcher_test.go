package assets

import (
	"os"
	"testing"
	"time"

	"github.com/Iron-Ham/splash/internal/testutil"
)

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "welcome.frames", "a\n")
	other := testutil.WriteFile(t, dir, "other.txt", "x\n")

	w, err := NewWatcher(nil, path, "", "https://example.com/ignored.txt")
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	defer func() { _ = w.Close() }()

	if err := os.WriteFile(other, []byte("y\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
		t.Fatal("unwatched file should not report a change")
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(path, []byte("b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	w, err := NewWatcher(nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
}

func TestWatcherClosesChanges(t *testing.T) {
	w, err := NewWatcher(nil)
	if err != nil {
		t.Fatalf("NewWatcher() error: %v", err)
	}
	_ = w.Close()

	select {
	case _, ok := <-w.Changes():
		if ok {
			t.Error("expected closed channel after Close()")
		}
	case <-time.After(time.Second):
		t.Fatal("Changes() was not closed")
	}
}

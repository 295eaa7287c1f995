package runlock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireIsExclusive(t *testing.T) {
	root := filepath.Join(t.TempDir(), "compress")

	first, err := Acquire(root)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := os.Stat(first.Path()); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}

	if _, err := Acquire(root); !errors.Is(err, ErrHeld) {
		t.Fatalf("expected ErrHeld, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	before, err := os.Stat(first.Path())
	if err != nil {
		t.Fatalf("lock file should survive release: %v", err)
	}

	second, err := Acquire(root)
	if err != nil {
		t.Fatalf("re-acquire after release: %v", err)
	}
	after, err := os.Stat(second.Path())
	if err != nil {
		t.Fatalf("stat lock file: %v", err)
	}
	if !os.SameFile(before, after) {
		t.Fatal("re-acquire should lock the same file")
	}
	if err := second.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
}

// Package runlock keeps two compression runs from writing into the same
// output root at once.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"mediapress/internal/services"
)

// FileName is the lock file created inside the output root.
const FileName = ".mediapress.lock"

// ErrHeld reports that another run owns the lock.
var ErrHeld = errors.New("another mediapress run is using this output directory")

// Lock is an acquired run lock.
type Lock struct {
	path  string
	flock *flock.Flock
}

// Acquire creates outputRoot if needed and takes an exclusive, non-blocking
// lock on its lock file.
func Acquire(outputRoot string) (*Lock, error) {
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return nil, services.Wrap(services.ErrFileSystem, "runlock", "create output root", outputRoot, err)
	}
	path := filepath.Join(outputRoot, FileName)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrFileSystem, "runlock", "acquire", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrHeld, path)
	}
	return &Lock{path: path, flock: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks the lock file. The file stays in place so every run locks
// the same inode.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}

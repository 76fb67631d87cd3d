// Package runlock enforces single-run execution against a corpora
// directory. Two concurrent runs would race on the stripped archive and
// corpus files, so the first run takes a file lock and later ones fail
// fast.
package runlock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld indicates another subclean run holds the lock.
var ErrHeld = errors.New("another subclean run is already processing this corpora directory")

// Lock guards a corpora directory for the duration of one run.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock for the given corpora directory, failing
// immediately when it is already held.
func Acquire(corporaDir string) (*Lock, error) {
	path := filepath.Join(corporaDir, ".subclean.lock")
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock.
func (l *Lock) Release() error {
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}

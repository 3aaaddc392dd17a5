//go:build !windows

package config

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-faster/errors"
)

// Lock acquires an exclusive lock, blocking until it is available.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, syscall.LOCK_EX)
}

// RLock acquires a shared lock, blocking until it is available.
func (l *FileLock) RLock() error {
	return l.acquire(os.O_CREATE|os.O_RDONLY, syscall.LOCK_SH)
}

func (l *FileLock) acquire(flag, how int) error {
	if l.file != nil {
		return errors.New("lock already held")
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return errors.Wrap(err, "create lock directory")
	}

	f, err := os.OpenFile(l.path, flag, 0o644)
	if err != nil {
		return errors.Wrap(err, "open lock file")
	}
	if err := syscall.Flock(int(f.Fd()), how); err != nil {
		f.Close()
		return errors.Wrap(err, "flock")
	}
	l.file = f
	return nil
}

// Unlock releases the lock. Unlocking a free lock does nothing.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	defer func() { l.file = nil }()

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		return errors.Wrap(err, "release lock")
	}
	if err := l.file.Close(); err != nil {
		return errors.Wrap(err, "close lock file")
	}
	return nil
}

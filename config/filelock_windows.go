//go:build windows

package config

import (
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"golang.org/x/sys/windows"
)

// Lock acquires an exclusive lock, blocking until it is available.
func (l *FileLock) Lock() error {
	return l.acquire(os.O_CREATE|os.O_RDWR, windows.LOCKFILE_EXCLUSIVE_LOCK)
}

// RLock acquires a shared lock, blocking until it is available.
func (l *FileLock) RLock() error {
	// No flags is a shared lock.
	return l.acquire(os.O_CREATE|os.O_RDONLY, 0)
}

func (l *FileLock) acquire(flag int, lockFlags uint32) error {
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
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(windows.Handle(f.Fd()), lockFlags, 0, 1, 0, ol); err != nil {
		f.Close()
		return errors.Wrap(err, "LockFileEx")
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

	ol := new(windows.Overlapped)
	if err := windows.UnlockFileEx(windows.Handle(l.file.Fd()), 0, 1, 0, ol); err != nil {
		l.file.Close()
		return errors.Wrap(err, "release lock")
	}
	if err := l.file.Close(); err != nil {
		return errors.Wrap(err, "close lock file")
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"

	"tgsheet/log"
)

const lockFileName = "tgsheet.lock"

// FileLock serializes writes to the files of one directory across tgsheet
// processes. It locks a separate file, never the data file itself.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns the lock guarding the directory of path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		path: filepath.Join(filepath.Dir(path), lockFileName),
	}
}

// withLock runs f holding the exclusive lock for path.
func withLock(path string, f func() error) error {
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()
	return f()
}

// withReadLock runs f holding the shared lock for path. A lock that cannot
// be taken is logged and f runs anyway: stale data beats no data.
func withReadLock(path string, f func() error) error {
	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock %s: %v", lock.path, err)
		return f()
	}
	defer lock.Unlock()
	return f()
}

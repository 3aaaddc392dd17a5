package telegram

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	dialogsBucket = []byte("dialogs")
	listKey       = []byte("list")
	updatedKey    = []byte("updated")
)

// Cache keeps the last fetched dialog list in a bolt database so the sheet
// has something to show before the network answers.
type Cache struct {
	db *bbolt.DB
}

// OpenCache opens or creates the cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open bolt cache")
	}
	return &Cache{db: db}, nil
}

// Close releases the database file.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Save replaces the cached list.
func (c *Cache) Save(dialogs []Dialog, at time.Time) error {
	data, err := json.Marshal(dialogs)
	if err != nil {
		return errors.Wrap(err, "marshal dialogs")
	}
	stamp, err := at.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "marshal timestamp")
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(dialogsBucket)
		if err != nil {
			return errors.Wrap(err, "create bucket")
		}
		if err := b.Put(listKey, data); err != nil {
			return errors.Wrap(err, "put dialogs")
		}
		return b.Put(updatedKey, stamp)
	})
}

// Load returns the cached list and when it was saved.
func (c *Cache) Load() ([]Dialog, time.Time, error) {
	var (
		dialogs []Dialog
		updated time.Time
	)
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(dialogsBucket)
		if b == nil {
			return ErrCacheEmpty
		}
		data := b.Get(listKey)
		if data == nil {
			return ErrCacheEmpty
		}
		if err := json.Unmarshal(data, &dialogs); err != nil {
			return errors.Wrap(err, "unmarshal dialogs")
		}
		if stamp := b.Get(updatedKey); stamp != nil {
			if err := updated.UnmarshalBinary(stamp); err != nil {
				return errors.Wrap(err, "unmarshal timestamp")
			}
		}
		return nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return dialogs, updated, nil
}

// Clear drops everything cached.
func (c *Cache) Clear() error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		err := tx.DeleteBucket(dialogsBucket)
		if errors.Is(err, bbolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}

// CachedSource serves dialogs from Upstream and stores every successful
// answer. When Upstream fails the cached list is returned instead, if any.
type CachedSource struct {
	Upstream Source
	Cache    *Cache
	Logger   *zap.Logger
	Now      func() time.Time
}

// Dialogs implements Source.
func (s *CachedSource) Dialogs(ctx context.Context, limit int) ([]Dialog, error) {
	lg := s.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	dialogs, err := s.Upstream.Dialogs(ctx, limit)
	if err == nil {
		if saveErr := s.Cache.Save(dialogs, now()); saveErr != nil {
			lg.Warn("Failed to cache dialogs", zap.Error(saveErr))
		}
		return dialogs, nil
	}

	cached, updated, cacheErr := s.Cache.Load()
	if cacheErr != nil {
		return nil, err
	}
	lg.Warn("Serving cached dialogs", zap.Error(err), zap.Time("updated", updated))
	if limit > 0 && len(cached) > limit {
		cached = cached[:limit]
	}
	return cached, nil
}

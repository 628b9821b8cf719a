package cache

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/kampusapp/kampus-sync/domain"
)

// badgerCache is the default session cache: an embedded store, durable
// across process restarts, holding only the token and the profile snapshot.
type badgerCache struct {
	db *badger.DB
}

var _ domain.SessionCache = (*badgerCache)(nil)

// NewBadgerCache opens the store at path with badger's own logging silenced.
func NewBadgerCache(path string) (*badgerCache, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerCache{db: db}, nil
}

// NewInMemoryBadgerCache opens a store without disk persistence, for tests.
func NewInMemoryBadgerCache() (*badgerCache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerCache{db: db}, nil
}

func (c *badgerCache) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (c *badgerCache) Set(_ context.Context, key string, value []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (c *badgerCache) Remove(_ context.Context, key string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (c *badgerCache) Close() error {
	return c.db.Close()
}

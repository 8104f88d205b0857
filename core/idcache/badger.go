package idcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// badgerCache is a Cache backed by an embedded badger store. It needs
// no external service but is local to one host.
type badgerCache struct {
	db     *badger.DB
	prefix string
	ttl    time.Duration
}

var _ Cache = (*badgerCache)(nil)

func openBadger(cfg Config) (*badgerCache, error) {
	opts := badger.DefaultOptions(cfg.BadgerPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open failed: %w", err)
	}
	return &badgerCache{
		db:     db,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL(),
	}, nil
}

func (c *badgerCache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	var val string
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(c.prefix + fingerprint))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			val = string(v)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *badgerCache) Set(ctx context.Context, fingerprint, assetID string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(c.prefix+fingerprint), []byte(assetID))
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

func (c *badgerCache) Len(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(c.prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func (c *badgerCache) Flush(ctx context.Context) error {
	return c.db.DropPrefix([]byte(c.prefix))
}

func (c *badgerCache) Close() error {
	return c.db.Close()
}

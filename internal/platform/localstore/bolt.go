// Package localstore is the device-local string key/value store: display
// preferences and the per-collection snapshot cache live here, and it is what
// backups export and import.
package localstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.etcd.io/bbolt"
)

const bucketEntries = "entries"

type Bolt struct {
	db *bbolt.DB
}

func Open(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create local storage dir: %w", err)
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEntries))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(bucketEntries)).Get([]byte(key))
		if raw != nil {
			value, found = string(raw), true
		}
		return nil
	})
	return value, found, err
}

func (b *Bolt) Set(key, value string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).Put([]byte(key), []byte(value))
	})
}

// SetMany writes all entries in one transaction.
func (b *Bolt) SetMany(entries map[string]string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketEntries))
		for k, v := range entries {
			if err := bucket.Put([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Bolt) Delete(key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).Delete([]byte(key))
	})
}

func (b *Bolt) Keys() ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketEntries)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	sort.Strings(keys)
	return keys, err
}

// Clear drops every entry.
func (b *Bolt) Clear() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketEntries)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketEntries))
		return err
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

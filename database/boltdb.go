package database

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("not found")

const (
	bucketTxns = "txns"
	bucketMeta = "meta"
)

// BoltDB is the outbox of signed transactions, keyed by transaction hash.
// It only records envelopes; it never submits them.
type BoltDB struct {
	DB *bolt.DB
}

func OpenDB(path string) (*BoltDB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketTxns, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &BoltDB{DB: db}, nil
}

func (db *BoltDB) Close() error {
	return db.DB.Close()
}

func (db *BoltDB) put(bucket, key string, value []byte) error {
	return db.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(key), value)
	})
}

func (db *BoltDB) get(bucket, key string) ([]byte, error) {
	var val []byte
	err := db.DB.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucket)).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("%s %q: %w", bucket, key, ErrNotFound)
		}
		// bolt memory is only valid inside the tx
		val = append([]byte{}, v...)
		return nil
	})
	return val, err
}

// PutTxn stores an envelope under its hash, replacing any earlier one.
func (db *BoltDB) PutTxn(hash string, envelope []byte) error {
	return db.put(bucketTxns, hash, envelope)
}

func (db *BoltDB) GetTxn(hash string) ([]byte, error) {
	return db.get(bucketTxns, hash)
}

func (db *BoltDB) DeleteTxn(hash string) error {
	return db.DB.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTxns)).Delete([]byte(hash))
	})
}

// ForEachTxn visits stored envelopes in hash order. Returning an error
// from fn stops the walk.
func (db *BoltDB) ForEachTxn(fn func(hash string, envelope []byte) error) error {
	return db.DB.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTxns)).ForEach(func(k, v []byte) error {
			return fn(string(k), append([]byte{}, v...))
		})
	})
}

func (db *BoltDB) PutMeta(key string, value []byte) error {
	return db.put(bucketMeta, key, value)
}

func (db *BoltDB) GetMeta(key string) ([]byte, error) {
	return db.get(bucketMeta, key)
}

func (db *BoltDB) ClearTxns() error {
	return db.DB.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket([]byte(bucketTxns))
		if err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err = tx.CreateBucket([]byte(bucketTxns))
		return err
	})
}

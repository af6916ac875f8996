// Package leveldb is a thin wrapper of goleveldb used for local checkpoint
// and index storage.
package leveldb

import (
	"errors"

	goleveldb "github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/chainledger/ChainLedger/log"
)

// IsNotFoundErr is err 'ErrNotFound'
func IsNotFoundErr(err error) bool {
	return errors.Is(err, dberrors.ErrNotFound)
}

// Database is a persistent key-value store with prefix iteration
type Database struct {
	path  string
	lvldb *goleveldb.DB
}

// Open returns a wrapped LevelDB handle, recovering a corrupted store
// when possible
func Open(path string) (*Database, error) {
	options := &opt.Options{
		Filter:                 filter.NewBloomFilter(10),
		DisableSeeksCompaction: true,
	}
	db, err := goleveldb.OpenFile(path, options)
	if dberrors.IsCorrupted(err) {
		log.Warn("leveldb corrupted, recovering", "path", path)
		db, err = goleveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, err
	}
	log.Info("opened leveldb store", "path", path)
	return &Database{path: path, lvldb: db}, nil
}

// Close flushes pending data and closes the store
func (db *Database) Close() error {
	return db.lvldb.Close()
}

// Has retrieves if a key is present
func (db *Database) Has(key []byte) (bool, error) {
	return db.lvldb.Has(key, nil)
}

// Get retrieves the value of key
func (db *Database) Get(key []byte) ([]byte, error) {
	return db.lvldb.Get(key, nil)
}

// Put inserts the given value
func (db *Database) Put(key, value []byte) error {
	return db.lvldb.Put(key, value, nil)
}

// Delete removes the key
func (db *Database) Delete(key []byte) error {
	return db.lvldb.Delete(key, nil)
}

// NewIterator iterates the keyspace with the given prefix starting at start
func (db *Database) NewIterator(prefix, start []byte) iterator.Iterator {
	slice := util.BytesPrefix(prefix)
	if start != nil {
		slice.Start = append(prefix, start...)
	}
	return db.lvldb.NewIterator(slice, nil)
}

// Path returns the database directory
func (db *Database) Path() string {
	return db.path
}

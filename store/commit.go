package store

import (
	"github.com/iov-one/vault/errors"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// CommitStore persists state in a tendermint database. Reads go straight to
// the database, writes done through a cache wrap are flushed in a single
// synchronous batch, so either all of them or none reach the disk.
type CommitStore struct {
	db dbm.DB
}

var _ CacheableKVStore = (*CommitStore)(nil)

// NewCommitStore wraps an opened database.
func NewCommitStore(db dbm.DB) *CommitStore {
	return &CommitStore{db: db}
}

// OpenCommitStore opens (or creates) a goleveldb database with given name in
// the directory.
func OpenCommitStore(name, dir string) (*CommitStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	return NewCommitStore(db), nil
}

// Get returns nil iff key doesn't exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return s.db.Get(key), nil
}

// Has checks if a key exists.
func (s *CommitStore) Has(key []byte) (bool, error) {
	if key == nil {
		return false, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return s.db.Has(key), nil
}

// Set writes directly and synchronously to the database.
func (s *CommitStore) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	s.db.SetSync(key, value)
	return nil
}

// Delete removes directly and synchronously from the database.
func (s *CommitStore) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	s.db.DeleteSync(key)
	return nil
}

// CacheWrap returns a scratch-pad whose Write flushes to the database in one
// atomic batch.
func (s *CommitStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, &dbBatch{db: s.db}, nil)
}

// Close releases the database.
func (s *CommitStore) Close() {
	s.db.Close()
}

// dbBatch collects operations and replays them into a database batch on
// Write. The database batch is created lazily so that a discarded cache wrap
// never allocates one.
type dbBatch struct {
	db  dbm.DB
	ops []Op
}

var _ Batch = (*dbBatch)(nil)

func (b *dbBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *dbBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *dbBatch) Write() (err error) {
	if len(b.ops) == 0 {
		return nil
	}
	// tendermint databases panic on failed writes.
	defer errors.Recover(&err)

	batch := b.db.NewBatch()
	for _, op := range b.ops {
		if op.IsSetOp() {
			batch.Set(op.key, op.value)
		} else {
			batch.Delete(op.key)
		}
	}
	batch.WriteSync()
	b.ops = nil
	return nil
}

func (b *dbBatch) Reset() {
	b.ops = nil
}

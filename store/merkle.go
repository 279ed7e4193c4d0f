package store

import (
	"github.com/iov-one/vault/errors"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// merkleCacheSize is the number of tree nodes kept in memory.
const merkleCacheSize = 10000

// MerkleStore keeps the state in a versioned iavl tree. Every write saves a
// new version of the tree, so each committed change is identified by a
// root hash that depends on the whole state.
type MerkleStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
}

var _ CacheableKVStore = (*MerkleStore)(nil)

// NewMerkleStore loads the latest version of the tree kept in given
// database.
func NewMerkleStore(db dbm.DB) (*MerkleStore, error) {
	tree := iavl.NewMutableTree(db, merkleCacheSize)
	if _, err := tree.Load(); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "load tree: %s", err)
	}
	return &MerkleStore{db: db, tree: tree}, nil
}

// OpenMerkleStore opens (or creates) a goleveldb backed tree with given
// name in the directory.
func OpenMerkleStore(name, dir string) (*MerkleStore, error) {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err)
	}
	s, err := NewMerkleStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Get returns nil iff key doesn't exist.
func (s *MerkleStore) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	_, val := s.tree.Get(key)
	return val, nil
}

// Has returns true if the key exists.
func (s *MerkleStore) Has(key []byte) (bool, error) {
	if key == nil {
		return false, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return s.tree.Has(key), nil
}

// Set writes a single value and saves a new version.
func (s *MerkleStore) Set(key, value []byte) error {
	return s.commit([]Op{SetOp(key, value)})
}

// Delete removes a single value and saves a new version.
func (s *MerkleStore) Delete(key []byte) error {
	return s.commit([]Op{DelOp(key)})
}

// CacheWrap returns a scratch-pad whose Write saves all operations as a
// single new version.
func (s *MerkleStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, &treeBatch{store: s}, nil)
}

// Hash returns the root hash of the latest saved version.
func (s *MerkleStore) Hash() []byte {
	return s.tree.Hash()
}

// Version returns the latest saved version. It is zero for an empty store.
func (s *MerkleStore) Version() int64 {
	return s.tree.Version()
}

// Close releases the database.
func (s *MerkleStore) Close() {
	s.db.Close()
}

// commit applies all operations to the tree and saves them as one version.
// On failure the tree is rolled back to the last saved version.
func (s *MerkleStore) commit(ops []Op) (err error) {
	if len(ops) == 0 {
		return nil
	}
	defer func() {
		if err != nil {
			s.tree.Rollback()
		}
	}()
	// iavl panics on invalid input and on failed writes.
	defer errors.Recover(&err)

	for _, op := range ops {
		switch {
		case op.key == nil:
			return errors.Wrap(errors.ErrDatabase, "nil key")
		case op.IsSetOp() && op.value == nil:
			return errors.Wrapf(errors.ErrDatabase, "nil value for %x", op.key)
		case op.IsSetOp():
			s.tree.Set(op.key, op.value)
		default:
			s.tree.Remove(op.key)
		}
	}
	if _, _, err := s.tree.SaveVersion(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "save version: %s", err)
	}
	return nil
}

// treeBatch collects operations of a cache wrap and commits them to the
// tree on Write.
type treeBatch struct {
	store *MerkleStore
	ops   []Op
}

var _ Batch = (*treeBatch)(nil)

func (b *treeBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *treeBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *treeBatch) Write() error {
	err := b.store.commit(b.ops)
	b.ops = nil
	return err
}

func (b *treeBatch) Reset() {
	b.ops = nil
}

package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vault/errors"
)

// DefaultFreeListSize is the number of free btree nodes kept for reuse.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheWrap keeps uncommitted changes in a btree on top of a read only
// store. Every change is recorded in the batch as well, so that Write can
// replay them onto the parent.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over kv. All writes go to the batch,
// kv is only read from. free can be shared between wraps of the same store
// and may be nil.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap returns a nested cache. Its Write applies changes to this cache
// only.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b), b.free)
}

// Write flushes the batch to the parent store and clears the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all cached changes. The nodes are returned to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
	if r, ok := b.batch.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	b.bt.ReplaceOrInsert(item{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	b.bt.ReplaceOrInsert(item{key: key, deleted: true})
	return b.batch.Delete(key)
}

// Get returns the cached value, or reads the parent if the key was not
// changed.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	it, ok := b.lookup(key)
	if !ok {
		return b.back.Get(key)
	}
	if it.deleted {
		return nil, nil
	}
	return it.value, nil
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	it, ok := b.lookup(key)
	if !ok {
		return b.back.Has(key)
	}
	return !it.deleted, nil
}

func (b BTreeCacheWrap) lookup(key []byte) (item, bool) {
	res := b.bt.Get(item{key: key})
	if res == nil {
		return item{}, false
	}
	return res.(item), true
}

// item is a single cached change. A deleted item hides the parent's value.
type item struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = item{}

func (i item) Less(other btree.Item) bool {
	return bytes.Compare(i.key, other.(item).key) < 0
}

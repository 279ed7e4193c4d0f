package vault

// ReadOnlyKVStore gives read access to a key value store.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists.
	Has(key []byte) (bool, error)
}

// SetDeleter is the write access shared by stores and batches. Neither key
// nor value may be modified by the implementation.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the minimal interface every backing store implements.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Batch collects writes and applies them to the underlying store on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore is a KVStore that can create scratch-pads of uncommitted
// changes on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch-pad of uncommitted changes. Reads see the changes
// made so far. Write applies them to the parent store, Discard drops them.
// Every command runs in its own cache wrap, so that a failing command leaves
// no trace.
type KVCacheWrap interface {
	// Cache wraps can be nested.
	CacheableKVStore

	Write() error
	Discard()
}

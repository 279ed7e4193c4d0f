package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB holding models of a single type.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
type Bucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

// NewBucket creates a bucket to store models of the same type as given
// prototype.
func NewBucket(name string, proto Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  reflect.TypeOf(proto),
	}
}

// Name returns the name of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the model stored under given key into dest. It returns
// ErrNotFound if there is no such entry.
func (b Bucket) One(db vault.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "db get")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %x", b.name, key)
	}
	if err := rlp.DecodeBytes(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "decode %s %x: %s", b.name, key, err)
	}
	return nil
}

// Has returns true if an entry with given key exists.
func (b Bucket) Has(db vault.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates the model and writes it under given key, replacing any
// previous value.
func (b Bucket) Put(db vault.KVStore, key []byte, m Model) error {
	if err := b.checkType(m); err != nil {
		return err
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", b.name)
	}
	raw, err := rlp.EncodeToBytes(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "encode %s %x: %s", b.name, key, err)
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete removes the entry stored under given key. Deleting a missing
// entry is not an error.
func (b Bucket) Delete(db vault.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

func (b Bucket) checkType(m Model) error {
	if reflect.TypeOf(m) != b.model {
		return errors.Wrapf(errors.ErrType, "%s bucket holds %s, got %T", b.name, b.model, m)
	}
	return nil
}

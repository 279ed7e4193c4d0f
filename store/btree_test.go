package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreGetSet(t *testing.T) {
	db := MemStore()

	v, err := db.Get([]byte("foo"))
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, db.Set([]byte("foo"), []byte("bar")))
	v, err = db.Get([]byte("foo"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bar"), v)

	has, err := db.Has([]byte("foo"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, db.Delete([]byte("foo")))
	has, err = db.Has([]byte("foo"))
	require.NoError(t, err)
	assert.False(t, has)

	assert.Error(t, db.Set(nil, []byte("x")))
}

func TestCacheWrap(t *testing.T) {
	cases := map[string]struct {
		write bool
		want  []byte
	}{
		"written cache is visible in the parent": {
			write: true,
			want:  []byte("new"),
		},
		"discarded cache leaves the parent untouched": {
			write: false,
			want:  []byte("old"),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := MemStore()
			require.NoError(t, db.Set([]byte("key"), []byte("old")))
			require.NoError(t, db.Set([]byte("gone"), []byte("soon")))

			cache := db.CacheWrap()
			require.NoError(t, cache.Set([]byte("key"), []byte("new")))
			require.NoError(t, cache.Delete([]byte("gone")))

			// Cache sees its own writes before they are flushed.
			v, err := cache.Get([]byte("key"))
			require.NoError(t, err)
			assert.Equal(t, []byte("new"), v)
			has, err := cache.Has([]byte("gone"))
			require.NoError(t, err)
			assert.False(t, has)

			// Parent does not.
			v, err = db.Get([]byte("key"))
			require.NoError(t, err)
			assert.Equal(t, []byte("old"), v)

			if tc.write {
				require.NoError(t, cache.Write())
			} else {
				cache.Discard()
			}

			v, err = db.Get([]byte("key"))
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)

			has, err = db.Has([]byte("gone"))
			require.NoError(t, err)
			assert.Equal(t, !tc.write, has)
		})
	}
}

func TestNestedCacheWrap(t *testing.T) {
	db := MemStore()
	outer := db.CacheWrap()
	require.NoError(t, outer.Set([]byte("a"), []byte("1")))

	inner := outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("b"), []byte("2")))
	inner.Discard()

	has, err := outer.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	inner = outer.CacheWrap()
	require.NoError(t, inner.Set([]byte("c"), []byte("3")))
	require.NoError(t, inner.Write())
	require.NoError(t, outer.Write())

	for key, want := range map[string][]byte{"a": []byte("1"), "b": nil, "c": []byte("3")} {
		v, err := db.Get([]byte(key))
		require.NoError(t, err)
		assert.Equal(t, want, v, key)
	}
}

func TestNonAtomicBatch(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("b"), []byte("old")))

	batch := NewNonAtomicBatch(db)
	require.NoError(t, batch.Set([]byte("a"), []byte("1")))
	require.NoError(t, batch.Delete([]byte("b")))

	// Nothing is applied before Write.
	has, err := db.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, batch.Write())
	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	has, err = db.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, has)

	// Reset drops pending operations.
	require.NoError(t, batch.Set([]byte("c"), []byte("3")))
	batch.Reset()
	require.NoError(t, batch.Write())
	has, err = db.Has([]byte("c"))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestOp(t *testing.T) {
	set := SetOp([]byte("k"), []byte("v"))
	assert.True(t, set.IsSetOp())
	assert.Equal(t, []byte("k"), set.Key())
	assert.Equal(t, []byte("v"), set.Value())

	del := DelOp([]byte("k"))
	assert.False(t, del.IsSetOp())

	db := MemStore()
	require.NoError(t, set.Apply(db))
	has, err := db.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)
	require.NoError(t, del.Apply(db))
	has, err = db.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)
}

package store

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNestedCacheWraps(t *testing.T) {
	root := BTreeCacheable{EmptyKVStore{}}.CacheWrap()
	alice, bob := []byte("bal:alice"), []byte("bal:bob")

	assertGetHas(t, root, alice, nil, false)
	require.NoError(t, root.Set(alice, []byte{100}))

	// a savepoint sees its parent and hides its own writes from it
	savepoint := root.CacheWrap()
	assertGetHas(t, savepoint, alice, []byte{100}, true)
	require.NoError(t, savepoint.Set(bob, []byte{10}))
	require.NoError(t, savepoint.Set(alice, []byte{90}))
	assertGetHas(t, savepoint, bob, []byte{10}, true)
	assertGetHas(t, root, bob, nil, false)
	assertGetHas(t, root, alice, []byte{100}, true)

	require.NoError(t, savepoint.Write())
	assertGetHas(t, root, alice, []byte{90}, true)
	assertGetHas(t, root, bob, []byte{10}, true)

	// a zeroed balance is deleted, the delete stays pending until written
	savepoint = root.CacheWrap()
	require.NoError(t, savepoint.Delete(bob))
	assertGetHas(t, savepoint, bob, nil, false)
	assertGetHas(t, root, bob, []byte{10}, true)
	savepoint.Discard()
	assertGetHas(t, root, bob, []byte{10}, true)
}

func TestCacheWrapDiscardKeepsParent(t *testing.T) {
	Convey("Given a store with a balance", t, func() {
		db := MemStore()
		So(db.Set([]byte("bal:alice"), []byte{100}), ShouldBeNil)

		Convey("a discarded cache wrap leaves no trace", func() {
			cache := db.CacheWrap()
			So(cache.Set([]byte("bal:alice"), []byte{10}), ShouldBeNil)
			So(cache.Set([]byte("bal:bob"), []byte{90}), ShouldBeNil)
			cache.Discard()

			val, err := db.Get([]byte("bal:alice"))
			So(err, ShouldBeNil)
			So(val, ShouldResemble, []byte{100})
			has, err := db.Has([]byte("bal:bob"))
			So(err, ShouldBeNil)
			So(has, ShouldBeFalse)
		})

		Convey("a written cache wrap applies every change", func() {
			cache := db.CacheWrap()
			So(cache.Set([]byte("bal:alice"), []byte{10}), ShouldBeNil)
			So(cache.Set([]byte("bal:bob"), []byte{90}), ShouldBeNil)
			So(cache.Write(), ShouldBeNil)

			val, err := db.Get([]byte("bal:bob"))
			So(err, ShouldBeNil)
			So(val, ShouldResemble, []byte{90})
		})
	})
}

func TestCacheIteratorMergesLayers(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))
	require.NoError(t, base.Set([]byte("c"), []byte("3")))
	require.NoError(t, base.Set([]byte("d"), []byte("4")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Set([]byte("c"), []byte("three")))
	require.NoError(t, cache.Delete([]byte("d")))

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	got := collect(t, it)
	assert.Equal(t, []Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("c"), Value: []byte("three")},
	}, got)

	rit, err := cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	got = collect(t, rit)
	assert.Equal(t, []Model{
		{Key: []byte("c"), Value: []byte("three")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("a"), Value: []byte("1")},
	}, got)

	// ranges are end exclusive
	it, err = cache.Iterator([]byte("b"), []byte("c"))
	require.NoError(t, err)
	got = collect(t, it)
	assert.Equal(t, []Model{{Key: []byte("b"), Value: []byte("2")}}, got)
}

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func collect(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Close()
	var res []Model
	for ; it.Valid(); require.NoError(t, it.Next()) {
		res = append(res, Model{Key: it.Key(), Value: it.Value()})
	}
	return res
}

package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/tokendrop/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCommitStore(t testing.TB) (CommitStore, func()) {
	t.Helper()
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	require.NoError(t, err)
	commit, err := NewCommitStore(tmpDir, "base")
	require.NoError(t, err)
	return commit, func() { os.RemoveAll(tmpDir) }
}

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheGetSet(t *testing.T) {
	commit, cleanup := makeCommitStore(t)
	defer cleanup()
	base := commit.Adapter()

	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	require.NoError(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)
}

func TestCommitAndReload(t *testing.T) {
	commit, cleanup := makeCommitStore(t)
	defer cleanup()

	cache := commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("bal:alice"), []byte{7}))
	require.NoError(t, cache.Write())

	// not visible in the committed state until Commit
	val, err := commit.Get([]byte("bal:alice"))
	require.NoError(t, err)
	assert.Nil(t, val)

	id, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	val, err = commit.Get([]byte("bal:alice"))
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, val)

	// a discarded cache wrap never reaches the tree
	cache = commit.CacheWrap()
	require.NoError(t, cache.Set([]byte("bal:bob"), []byte{1}))
	cache.Discard()
	id2, err := commit.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2.Version)
	assert.Equal(t, id.Hash, id2.Hash)

	require.NoError(t, commit.LoadLatestVersion())
	latest, err := commit.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id2, latest)
}

func TestIteratorOrder(t *testing.T) {
	commit := NewMemCommitStore()
	kv := commit.Adapter()
	for _, k := range []string{"b", "a", "c"} {
		require.NoError(t, kv.Set([]byte(k), []byte(k)))
	}

	it, err := kv.Iterator(nil, nil)
	require.NoError(t, err)
	var got []string
	for ; it.Valid(); require.NoError(t, it.Next()) {
		got = append(got, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"a", "b", "c"}, got)

	it, err = kv.ReverseIterator([]byte("a"), []byte("c"))
	require.NoError(t, err)
	got = nil
	for ; it.Valid(); require.NoError(t, it.Next()) {
		got = append(got, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"b", "a"}, got)
}

package store

import weave "github.com/iov-one/tokendrop"

// Short names for the store interfaces of the root package, so that the
// implementations here and in iavl read naturally.
type (
	ReadOnlyKVStore  = weave.ReadOnlyKVStore
	SetDeleter       = weave.SetDeleter
	KVStore          = weave.KVStore
	Batch            = weave.Batch
	Iterator         = weave.Iterator
	CacheableKVStore = weave.CacheableKVStore
	KVCacheWrap      = weave.KVCacheWrap
	CommitKVStore    = weave.CommitKVStore
	CommitID         = weave.CommitID
	Model            = weave.Model
)

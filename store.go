package weave

// ReadOnlyKVStore reads keys and ranges. A missing key gives a nil value
// and no error. Range ends are exclusive and a nil bound is open.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Iterator(start, end []byte) (Iterator, error)
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches. Neither may
// keep or modify the slices passed in.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store handlers work on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them with Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator walks a key range. It must not outlive writes to that range.
//
//   it, err := db.Iterator(start, end)
//   ...
//   defer it.Close()
//   for ; it.Valid(); err = it.Next() {
//     use(it.Key(), it.Value())
//   }
//
// Key and Value panic once Valid is false, Next returns an error.
type Iterator interface {
	Valid() bool
	Next() error
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack a scratch pad on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes over its parent. Reads see the buffered
// writes. Write applies them to the parent and Discard drops them. A cache
// wrap can be wrapped again, which is how savepoints nest.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. Changes go through a
// CacheWrap and become a new version on Commit.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion opens the last version that was fully written.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID names a committed version by number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}

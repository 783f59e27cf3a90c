package store

import (
	"bytes"

	"github.com/google/btree"
)

// BTreeCacheable gives a KVStore without a cache layer of its own a btree
// backed CacheWrap. The iavl adapter relies on it.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a store that lives in memory only. Writes are kept in
// the btree of a cache wrap that is never flushed.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending writes in a btree on top of a read only
// parent. Reads see pending writes first. Write replays them through the
// batch and Discard drops them.
type BTreeCacheWrap struct {
	pending *btree.BTree
	free    *btree.FreeList
	parent  ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap layers a cache over parent. Every write is recorded
// in batch as well, which must write into the store parent reads from.
//
// free may be nil. Nested cache wraps share the free list of the outer one.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		pending: btree.NewWithFreeList(2, free),
		free:    free,
		parent:  parent,
		batch:   batch,
	}
}

// CacheWrap stacks another layer. A savepoint in the decorator chain uses
// it to roll back a single message.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes pending writes to the parent and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops pending writes. Nodes go back to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.pending.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return b.parent.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.lookup(key); ok {
		return !e.deleted, nil
	}
	return b.parent.Has(key)
}

// Iterator walks [start, end) in ascending order, merging pending writes
// with the parent content.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.snapshot(start, end, false), parent, false)
}

// ReverseIterator walks [start, end) in descending order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(b.snapshot(start, end, true), parent, true)
}

func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := b.pending.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// snapshot copies the pending entries of [start, end). An iterator works
// on the copy, so writes made while iterating do not disturb it.
func (b BTreeCacheWrap) snapshot(start, end []byte, reverse bool) []entry {
	var res []entry
	collect := func(item btree.Item) bool {
		e := item.(entry)
		if end != nil && bytes.Compare(e.key, end) >= 0 {
			return false
		}
		res = append(res, e)
		return true
	}
	if start == nil {
		b.pending.Ascend(collect)
	} else {
		b.pending.AscendGreaterOrEqual(entry{key: start}, collect)
	}
	if reverse {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// entry is a pending write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}

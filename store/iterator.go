package store

import (
	"bytes"

	"github.com/iov-one/tokendrop/errors"
)

// mergeIterator combines a snapshot of pending cache entries with the
// iterator of the parent store. On equal keys the cached entry wins and
// the parent one is skipped. Deleted entries are never exposed.
type mergeIterator struct {
	cached  []entry
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []entry, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{cached: cached, parent: parent, reverse: reverse}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

type side uint8

const (
	fromNone side = iota
	fromCache
	fromParent
	fromBoth
)

// head tells which source holds the current key.
func (it *mergeIterator) head() side {
	cacheOK := len(it.cached) > 0
	parentOK := it.parent != nil && it.parent.Valid()
	switch {
	case !cacheOK && !parentOK:
		return fromNone
	case !parentOK:
		return fromCache
	case !cacheOK:
		return fromParent
	}

	cmp := bytes.Compare(it.cached[0].key, it.parent.Key())
	if it.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return fromCache
	case cmp > 0:
		return fromParent
	default:
		return fromBoth
	}
}

func (it *mergeIterator) Valid() bool {
	return it.head() != fromNone
}

func (it *mergeIterator) Next() error {
	switch it.head() {
	case fromNone:
		return errors.Wrap(errors.ErrDatabase, "iterator exhausted")
	case fromCache:
		it.cached = it.cached[1:]
	case fromParent:
		if err := it.parent.Next(); err != nil {
			return err
		}
	case fromBoth:
		it.cached = it.cached[1:]
		if err := it.parent.Next(); err != nil {
			return err
		}
	}
	return it.skipDeleted()
}

func (it *mergeIterator) Key() []byte {
	switch it.head() {
	case fromCache, fromBoth:
		return it.cached[0].key
	case fromParent:
		return it.parent.Key()
	default:
		panic("iterator exhausted")
	}
}

func (it *mergeIterator) Value() []byte {
	switch it.head() {
	case fromCache, fromBoth:
		return it.cached[0].value
	case fromParent:
		return it.parent.Value()
	default:
		panic("iterator exhausted")
	}
}

func (it *mergeIterator) Close() {
	it.cached = nil
	if it.parent != nil {
		it.parent.Close()
	}
}

// skipDeleted advances past deleted cache entries together with the
// parent values they hide.
func (it *mergeIterator) skipDeleted() error {
	for {
		s := it.head()
		if s != fromCache && s != fromBoth {
			return nil
		}
		if !it.cached[0].deleted {
			return nil
		}
		it.cached = it.cached[1:]
		if s == fromBoth {
			if err := it.parent.Next(); err != nil {
				return err
			}
		}
	}
}

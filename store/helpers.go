package store

import (
	"github.com/iov-one/tokendrop/errors"
)

// SliceIterator iterates over models that are already loaded, for
// example a page read from an iavl tree or a decoded query result.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next fails with ErrDatabase once the iterator is exhausted.
func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.Wrap(errors.ErrDatabase, "passed end of slice")
	}
	s.idx++
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("passed end of slice")
	}
	return s.data[s.idx]
}

func (s *SliceIterator) Close() {
	s.data = nil
}

// EmptyKVStore holds nothing and ignores writes. MemStore layers a cache
// over it.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error    { return nil }
func (EmptyKVStore) Delete(key []byte) error        { return nil }
func (e EmptyKVStore) NewBatch() Batch              { return NewNonAtomicBatch(e) }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// op is a recorded write. A nil value means delete.
type op struct {
	key   []byte
	value []byte
}

func (o op) apply(out SetDeleter) error {
	if o.value == nil {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch records writes and replays them in order on Write. A
// failure half way leaves the earlier writes applied, so it is only fit
// for in memory stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	b.ops = append(b.ops, op{key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: key})
	return nil
}

// Write replays all recorded writes and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, o := range b.ops {
		if err := o.apply(b.out); err != nil {
			return errors.Wrapf(err, "write %q", o.key)
		}
	}
	b.ops = nil
	return nil
}

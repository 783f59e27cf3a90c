package utils

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// Savepoint runs the rest of the chain on a cache wrap of the store. The
// cache is written on success and discarded on failure, so a failed
// message leaves no partial state behind. It only acts in the phases
// enabled with OnCheck and OnDeliver.
//
// Writes made above the savepoint, such as sequence increments of the
// signature decorator, are kept either way.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ weave.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint that is disabled in both phases.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	var res *weave.CheckResult
	err := isolate(s.onCheck, db, func(db weave.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	var res *weave.DeliverResult
	err := isolate(s.onDeliver, db, func(db weave.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn with a cache wrap of db when enabled and db supports it.
func isolate(enabled bool, db weave.KVStore, fn func(weave.KVStore) error) error {
	cdb, ok := db.(weave.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cdb.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write savepoint")
	}
	return nil
}

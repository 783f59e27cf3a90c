package orm

import (
	"reflect"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// ModelBucket stores a single model type under its keys. Balances,
// registries and entitlements are kept in model buckets.
type ModelBucket interface {
	// One loads the model stored under key into dest, or fails with
	// ErrNotFound.
	One(db weave.ReadOnlyKVStore, key []byte, dest Model) error

	// Has fails with ErrNotFound when key is not stored.
	Has(db weave.ReadOnlyKVStore, key []byte) error

	// Put validates m and stores it under key. m must have the type the
	// bucket was created with.
	Put(db weave.KVStore, key []byte, m Model) error

	// Delete fails with ErrNotFound when key is not stored.
	Delete(db weave.KVStore, key []byte) error

	// Register serves the bucket under "/<path>".
	Register(path string, r weave.QueryRouter)
}

// NewModelBucket returns a bucket named name for models of the type of m.
func NewModelBucket(name string, m Model) ModelBucket {
	return modelBucket{
		b:    NewBucket(name, NewSimpleObj(nil, m)),
		kind: reflect.TypeOf(m),
	}
}

type modelBucket struct {
	b    Bucket
	kind reflect.Type
}

var _ ModelBucket = modelBucket{}

func (mb modelBucket) Register(path string, r weave.QueryRouter) { mb.b.Register(path, r) }

func (mb modelBucket) One(db weave.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	switch {
	case err != nil:
		return err
	case obj == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.b.Name(), key)
	}
	src := reflect.ValueOf(obj.Value())
	if !src.Type().AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "cannot load %s into %T", src.Type(), dest)
	}
	reflect.ValueOf(dest).Elem().Set(src.Elem())
	return nil
}

func (mb modelBucket) Has(db weave.ReadOnlyKVStore, key []byte) error {
	switch ok, err := mb.b.Has(db, key); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.b.Name(), key)
	}
	return nil
}

func (mb modelBucket) Put(db weave.KVStore, key []byte, m Model) error {
	if got := reflect.TypeOf(m); got != mb.kind {
		return errors.Wrapf(errors.ErrType, "%s bucket holds %s, got %s", mb.b.Name(), mb.kind, got)
	}
	if err := mb.b.Save(db, NewSimpleObj(key, m)); err != nil {
		return errors.Wrapf(err, "put %s", mb.b.Name())
	}
	return nil
}

func (mb modelBucket) Delete(db weave.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

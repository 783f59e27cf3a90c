/*
Package orm stores typed models in the key value store.

A Bucket owns every key starting with "<name>:" and keeps a single model
type there: tokens, balances, registries and entitlements each have one.
Keys are read one at a time or by prefix, which is also how buckets answer
queries.
*/
package orm

import (
	"fmt"
	"regexp"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket reads and writes objects of the proto type under its prefix.
// Extensions wrap it in a bucket of their own model type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

var _ weave.QueryHandler = Bucket{}

// NewBucket panics on a name that is not 3 to 10 lower case letters or
// underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":"), proto: proto}
}

func (b Bucket) Name() string { return b.name }

// DBKey returns a new slice holding the prefix followed by key.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

// Register serves the bucket under "/<path>". An empty path uses the
// bucket name.
func (b Bucket) Register(path string, r weave.QueryRouter) {
	if path == "" {
		path = b.name
	}
	r.Register("/"+path, b)
}

// Query looks up data, or everything starting with it, within the bucket.
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	return queryMod(db, mod, b.DBKey(data))
}

// Get returns nil and no error when nothing is stored under key.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db weave.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse decodes a stored value into a new object with the given key. A
// value that does not decode is ErrDatabase.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "%s: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates obj before writing it.
func (b Bucket) Save(db weave.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "%s: %s", b.name, err)
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

func (b Bucket) Delete(db weave.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

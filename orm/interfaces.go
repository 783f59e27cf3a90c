package orm

import weave "github.com/iov-one/tokendrop"

// Model is a protobuf value that can check itself and be copied.
type Model interface {
	weave.Persistent
	Validate() error
	Copy() Model
}

// Object is a model together with the key it is stored under, without the
// bucket prefix.
type Object interface {
	Keyed
	Cloneable
	Validate() error
	Value() weave.Persistent
}

type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable returns an empty object of its own type, used by buckets to
// decode stored values.
type Cloneable interface {
	Clone() Object
}

package orm

import (
	"reflect"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// SimpleObj pairs a key with a model. Buckets return their entries as
// SimpleObj and extensions unwrap them with a type assertion.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte             { return o.key }
func (o SimpleObj) Value() weave.Persistent { return o.value }
func (o *SimpleObj) SetKey(key []byte)      { o.key = key }

// Validate requires a key and a value, and a valid value.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "required")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "required")
	}
	return errors.Field("Value", o.value.Validate(), "invalid")
}

// Clone returns an object with a copy of the key and a zero value of the
// same model type, ready for Unmarshal.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	c := &SimpleObj{value: zero}
	if len(o.key) != 0 {
		c.key = append([]byte(nil), o.key...)
	}
	return c
}

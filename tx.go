package weave

import (
	"reflect"

	"github.com/iov-one/tokendrop/errors"
)

// Marshaller serializes a value to its protobuf form.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be serialized and read back. Unmarshal usually needs a
// pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is the action a transaction requests, for example a transfer or a
// claim. Who requested it is only known from the Tx around it.
type Msg interface {
	Persistent

	// Path selects the handler, like "ledger/transfer". It is made of
	// [0-9A-Za-z_\-/] characters.
	Path() string

	// Validate checks the message on its own, without any state.
	Validate() error
}

// Tx is what a client submits: one message plus whatever the decorators
// need, such as signatures. Every application defines its own Tx type.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder reads a Tx from its serialized form.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message of tx, or "(missing)".
func GetPath(tx Tx) string {
	const missing = "(missing)"
	if tx == nil {
		return missing
	}
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return missing
	}
	return msg.Path()
}

// LoadMsg copies the message of tx into dest, which must point to a value
// of the message type, and validates it.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	to := reflect.ValueOf(dest)
	if to.Kind() != reflect.Ptr || to.IsNil() {
		return errors.Wrapf(errors.ErrType, "want a non nil pointer, got %T", dest)
	}
	from := reflect.Indirect(reflect.ValueOf(msg))
	if !from.Type().AssignableTo(to.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "cannot load %T into %T", msg, dest)
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	to.Elem().Set(from)
	return nil
}

package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by every extension. Codes below 100 belong to this
// package. Extensions register their own in a dedicated range (see doc.go).
var (
	// ErrUnauthorized means a required signature is missing.
	ErrUnauthorized = Register(2, "unauthorized")

	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned for a transaction message that cannot be handled,
	// including a transaction without any message.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned by the Validate method of a stored entity.
	ErrModel = Register(5, "invalid model")

	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that a correct program never reaches.
	ErrHuman = Register(7, "coding error")

	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a balance cannot cover a
	// transfer, burn or claim.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrAmount is returned for a malformed or non positive amount.
	ErrAmount = Register(13, "invalid amount")

	ErrInput   = Register(14, "invalid input")
	ErrExpired = Register(15, "expired")

	// ErrOverflow is returned when a result does not fit its type, for
	// example a supply above 2^256-1 or a sequence above 2^53.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase is returned when the store fails or holds data that
	// cannot be decoded.
	ErrDatabase = Register(17, "database")

	ErrMetadata = Register(18, "metadata")

	// ErrPanic is only produced by recovering from a panic. Its message is
	// never sent to a client.
	ErrPanic = Register(111222, "panic")
)

// Error is a root error. Every error returned by the application should
// wrap one of them so that clients receive a stable ABCI code.
//
// Declare new root errors with Register only, at package initialisation.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string    { return e.desc }
func (e Error) ABCICode() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is reports whether err is e or wraps it. A group matches when any of its
// members does. A nil root error matches only nil values, including typed
// nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for !isNilErr(err) {
		if err == e {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, member := range u.Unpack() {
				if e.Is(member) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// usedCodes guarantees that no two root errors share a code. Code 1 is
// reserved for errors that do not carry a code at all.
var usedCodes = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: "internal"},
}

// Register declares a new root error. It panics if the code is taken.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	e := &Error{code: code, desc: description}
	usedCodes[code] = e
	return e
}

// Wrap adds context to err. It returns nil for a nil err so that a
// function can end with `return errors.Wrap(err, "...")`.
//
// The innermost wrap records the stack trace. An error without an ABCI
// code is reported as internal.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// isNilErr also catches a typed nil pointer stored in an error interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	val := reflect.ValueOf(err)
	return val.Kind() == reflect.Ptr && val.IsNil()
}

package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attributes err to the named field of a validated value. It returns
// nil when err is nil, so validation code can wrap results unconditionally.
//
// Use Go names with dot notation for nested values and the index for list
// elements, for example "Amounts.3" or "Registry.Owner".
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField adds the field error, if any, to the errors collected so far.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error  { return err.parent }
func (err *fieldError) Field() string { return err.field }

type fielder interface {
	Field() string
}

// FieldErrors returns every error attributed to the given field name. The
// search descends into groups and wrapped errors but stops at the first
// match on each path.
func FieldErrors(err error, fieldName string) []error {
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			return []error{err}
		}
		if u, ok := err.(unpacker); ok {
			var res []error
			for _, e := range u.Unpack() {
				res = append(res, FieldErrors(e, fieldName)...)
			}
			return res
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return nil
}

package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored. If
// none of the arguments is an error, nil is returned.
//
// The first non nil error decides the ABCI code of the group.
func Append(errs ...error) error {
	var res []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		// Flatten nested groups so that Unpack always returns leaves.
		if u, ok := e.(unpacker); ok {
			res = append(res, u.Unpack()...)
			continue
		}
		res = append(res, e)
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	}
	return multiErr(res)
}

type unpacker interface {
	Unpack() []error
}

type multiErr []error

var _ unpacker = multiErr(nil)
var _ coder = multiErr(nil)

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(m), strings.Join(msgs, "; "))
}

// Unpack returns all clubbed errors.
func (m multiErr) Unpack() []error {
	return m
}

// ABCICode returns the code of the first error in the group.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

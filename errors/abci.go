package errors

import (
	"fmt"
)

const (
	// SuccessABCICode is the code of a successfully processed request.
	SuccessABCICode = 0

	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and the log message reported to the client for
// the given error. Errors without a registered root are internal: their
// message is replaced unless debug is set. In debug mode the log includes
// the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the cause chain until an error declares its code. An
// error chain without one is internal.
func abciCode(err error) uint32 {
	for !isNilErr(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

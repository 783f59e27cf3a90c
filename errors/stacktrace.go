package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first found stack trace frame carried by given error
// or any wrapped error. It returns nil if no stack trace is found.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// Format prints the error message and, for %+v, the stack trace of the
// point where the error was first wrapped. Frames of this package, except
// its tests, are removed.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' || !s.Flag('+') {
		_, _ = io.WriteString(s, e.Error())
		return
	}
	_, _ = io.WriteString(s, e.Error())
	for _, f := range stackTrace(e) {
		frame := fmt.Sprintf("%+v", f)
		if strings.Contains(frame, "tokendrop/errors.") && !strings.Contains(frame, "_test.go") {
			continue
		}
		_, _ = io.WriteString(s, "\n"+frame)
	}
}

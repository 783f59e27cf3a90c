package app

import (
	"github.com/iov-one/tokendrop/errors"
)

// App reserves error codes 19 and 20.
var (
	// ErrNoSuchPath is returned when a message path has no registered
	// handler.
	ErrNoSuchPath = errors.Register(19, "no such path")

	// ErrGenesis is returned when the genesis file cannot be read or
	// applied.
	ErrGenesis = errors.Register(20, "invalid genesis")
)

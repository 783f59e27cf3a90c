package airdrop

import (
	"github.com/iov-one/tokendrop/errors"
)

// Airdrop reserves 200~209 error codes
var (
	ErrLengthMismatch    = errors.Register(200, "array lengths mismatch")
	ErrAlreadyRegistered = errors.Register(201, "recipient already set")
	ErrNothingToClaim    = errors.Register(202, "nothing to claim")
	ErrPaused            = errors.Register(203, "paused")
	ErrNoLeftovers       = errors.Register(204, "no leftovers")
)

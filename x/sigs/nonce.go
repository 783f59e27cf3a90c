package sigs

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// NextNonce returns the sequence the next signature of addr must use. An
// address that never signed starts at zero.
func NextNonce(db weave.ReadOnlyKVStore, addr weave.Address) (int64, error) {
	obj, err := NewBucket().Get(db, addr)
	if err != nil {
		return 0, errors.Wrap(err, "load user")
	}
	if u := AsUser(obj); u != nil {
		return u.Sequence, nil
	}
	return 0, nil
}

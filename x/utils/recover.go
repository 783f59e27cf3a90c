package utils

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// Recovery converts a panic further down the chain into an ErrPanic. The
// client only sees the code, never the panic value.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (res *weave.CheckResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Check(ctx, db, tx)
	return res, err
}

func (Recovery) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (res *weave.DeliverResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Deliver(ctx, db, tx)
	return res, err
}

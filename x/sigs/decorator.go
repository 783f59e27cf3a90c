/*
Package sigs authenticates transactions by their ed25519 signatures.

Every signer has a sequence stored under its address. A signature is only
valid for the current sequence, which then increments, so a signed
transaction cannot be replayed.
*/
package sigs

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// verifyGas is charged in CheckTx for each verified signature.
const verifyGas = 500

// RegisterQuery exposes the sequence bucket under "/auth".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and passes the signers
// down the chain in the context. A transaction without signatures is
// rejected. A transaction that is not a SignedTx passes unchanged.
type Decorator struct{}

var _ weave.Decorator = Decorator{}

func NewDecorator() Decorator {
	return Decorator{}
}

func (d Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	ctx, n, err := authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n * verifyGas)
	return res, nil
}

func (d Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	ctx, _, err := authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns ctx extended with the verified signers and their
// count.
func authenticate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (weave.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, weave.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}

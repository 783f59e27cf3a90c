package sigs

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/orm"
	"github.com/iov-one/tokendrop/x"
)

// RegisterRoutes registers the BumpSequenceMsg handler.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequenceMsg, bumpSequenceHandler{bucket: NewBucket(), auth: auth})
}

// bumpSequenceHandler raises the sequence of the main signer. The
// decorator already added one for the signature itself, so the handler
// adds Increment-1 on top.
type bumpSequenceHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h bumpSequenceHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.load(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h bumpSequenceHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	user, msg, err := h.load(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.Increment > 1 {
		user.Sequence += int64(msg.Increment) - 1
		if err := h.bucket.Save(db, orm.NewSimpleObj(user.Pubkey.Address(), user)); err != nil {
			return nil, errors.Wrap(err, "save user")
		}
	}
	return &weave.DeliverResult{}, nil
}

func (h bumpSequenceHandler) load(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	obj, err := h.bucket.Get(db, signer.Address())
	if err != nil {
		return nil, nil, errors.Wrap(err, "load user")
	}
	user := AsUser(obj)
	if user == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "no sequence for %s", signer.Address())
	}
	if user.Sequence > maxSequence-int64(msg.Increment) {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	return user, &msg, nil
}

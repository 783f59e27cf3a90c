package airdrop

import (
	"strconv"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	setRecipientsCost int64 = 100
	recipientCost     int64 = 10
	claimCost         int64 = 100
	adminCost         int64 = 50
)

// RegisterRoutes registers the registry handlers.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathSetRecipientsMsg, &setRecipientsHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathClaimMsg, &claimHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathPauseMsg, &pauseHandler{auth: auth, ctrl: ctrl, paused: true})
	r.Handle(pathUnpauseMsg, &pauseHandler{auth: auth, ctrl: ctrl, paused: false})
	r.Handle(pathSweepMsg, &sweepHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// RegisterQuery exposes the registry under "/airdrop" and the
// entitlements under "/airdrop/recipients".
func RegisterQuery(qr weave.QueryRouter) {
	NewRegistryBucket().Register("airdrop", qr)
	NewEntitlementBucket().Register("airdrop/recipients", qr)
}

// requireOwner returns the registry if the registry owner signed the
// transaction.
func requireOwner(ctx weave.Context, db weave.ReadOnlyKVStore, auth x.Authenticator, ctrl Controller) (*Registry, error) {
	r, err := ctrl.Registry(db)
	if err != nil {
		return nil, err
	}
	if err := x.RequireSigner(ctx, auth, r.Owner, "owner"); err != nil {
		return nil, err
	}
	return r, nil
}

type setRecipientsHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *setRecipientsHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.checkRecipients(db, msg.Addresses, msg.Amounts); err != nil {
		return nil, err
	}
	gas := setRecipientsCost + recipientCost*int64(len(msg.Addresses))
	return &weave.CheckResult{GasAllocated: gas}, nil
}

func (h *setRecipientsHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.SetRecipients(db, msg.Addresses, msg.Amounts); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("recipients registered", "count", len(msg.Addresses))
	return &weave.DeliverResult{
		Tags: []common.KVPair{
			weave.Tag("airdrop.recipients", strconv.Itoa(len(msg.Addresses))),
		},
	}, nil
}

func (h *setRecipientsHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*SetRecipientsMsg, error) {
	var msg SetRecipientsMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := requireOwner(ctx, db, h.auth, h.ctrl); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if limit := int(conf.MaxBatch); limit > 0 && len(msg.Addresses) > limit {
		return nil, errors.Wrapf(errors.ErrInput, "batch of %d recipients exceeds %d", len(msg.Addresses), limit)
	}
	return &msg, nil
}

type claimHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *claimHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: claimCost}, nil
}

func (h *claimHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	recipient, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount, err := h.ctrl.Claim(db, recipient)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("claimed", "recipient", recipient, "amount", amount)
	return &weave.DeliverResult{
		Tags: []common.KVPair{
			weave.Tag("airdrop.recipient", recipient.String()),
			weave.Tag("airdrop.amount", amount.String()),
		},
	}, nil
}

func (h *claimHandler) validate(ctx weave.Context, tx weave.Tx) (weave.Address, error) {
	var msg ClaimMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return signer.Address(), nil
}

// pauseHandler serves both PauseMsg and UnpauseMsg.
type pauseHandler struct {
	auth   x.Authenticator
	ctrl   Controller
	paused bool
}

func (h *pauseHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: adminCost}, nil
}

func (h *pauseHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	if err := h.ctrl.SetPaused(db, h.paused); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("pause changed", "paused", h.paused)
	return &weave.DeliverResult{
		Tags: []common.KVPair{
			weave.Tag("airdrop.paused", strconv.FormatBool(h.paused)),
		},
	}, nil
}

func (h *pauseHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) error {
	var err error
	if h.paused {
		err = weave.LoadMsg(tx, &PauseMsg{})
	} else {
		err = weave.LoadMsg(tx, &UnpauseMsg{})
	}
	if err != nil {
		return errors.Wrap(err, "load msg")
	}
	_, err = requireOwner(ctx, db, h.auth, h.ctrl)
	return err
}

type sweepHandler struct {
	auth x.Authenticator
	ctrl Controller
}

func (h *sweepHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: adminCost}, nil
}

func (h *sweepHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	amount, err := h.ctrl.Sweep(db)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("swept", "amount", amount)
	return &weave.DeliverResult{
		Tags: []common.KVPair{
			weave.Tag("airdrop.swept", amount.String()),
		},
	}, nil
}

func (h *sweepHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) error {
	if err := weave.LoadMsg(tx, &SweepMsg{}); err != nil {
		return errors.Wrap(err, "load msg")
	}
	_, err := requireOwner(ctx, db, h.auth, h.ctrl)
	return err
}

package ledger

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	transferCost int64 = 100
	burnCost     int64 = 100
)

// RegisterRoutes registers the transfer and burn handlers.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathTransferMsg, &TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathBurnMsg, &BurnHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery exposes token records under "/tokens" and balances under
// "/balances".
func RegisterQuery(qr weave.QueryRouter) {
	NewTokenBucket().Register("tokens", qr)
	NewBalanceBucket().Register("balances", qr)
}

// TransferHandler moves tokens between two addresses.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*TransferHandler)(nil)

// Check verifies the message is well formed and signed by the source. Funds
// are only checked on delivery.
func (h *TransferHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h *TransferHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("transfer",
		"from", msg.Source, "to", msg.Destination, "amount", msg.Amount)
	return &weave.DeliverResult{
		Tags: []common.KVPair{
			weave.Tag("transfer.from", msg.Source.String()),
			weave.Tag("transfer.to", msg.Destination.String()),
			weave.Tag("transfer.amount", msg.Amount.String()),
		},
	}, nil
}

func (h *TransferHandler) validate(ctx weave.Context, tx weave.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "source"); err != nil {
		return nil, err
	}
	return &msg, nil
}

// BurnHandler destroys tokens of the signer.
type BurnHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = (*BurnHandler)(nil)

func (h *BurnHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: burnCost}, nil
}

func (h *BurnHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Burn(db, msg.Source, msg.Amount); err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("burn", "from", msg.Source, "amount", msg.Amount)
	return &weave.DeliverResult{
		Tags: []common.KVPair{
			weave.Tag("burn.from", msg.Source.String()),
			weave.Tag("burn.amount", msg.Amount.String()),
		},
	}, nil
}

func (h *BurnHandler) validate(ctx weave.Context, tx weave.Tx) (*BurnMsg, error) {
	var msg BurnMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireSigner(ctx, h.auth, msg.Source, "source"); err != nil {
		return nil, err
	}
	return &msg, nil
}

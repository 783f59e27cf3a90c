package app

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete ABCI application. StoreApp provides state, queries
// and block handling. BaseApp decodes transactions and passes them to the
// handler, usually a decorated router.
type BaseApp struct {
	*StoreApp
	decoder weave.TxDecoder
	handler weave.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns a BaseApp. With debug set, error responses carry the
// full error including internal ones and stack traces.
func NewBaseApp(store *StoreApp, decoder weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx executes the transaction on the deliver store.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, ctx, err := b.prepare(txBytes, "deliver_tx")
	if err != nil {
		return weave.DeliverTxResponse(nil, err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return weave.DeliverTxResponse(res, err, b.debug)
}

// CheckTx validates the transaction on the check store. State changes only
// last until the next commit.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, ctx, err := b.prepare(txBytes, "check_tx")
	if err != nil {
		return weave.CheckTxResponse(nil, err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return weave.CheckTxResponse(res, err, b.debug)
}

// prepare decodes the transaction and builds its context. A decoder panic
// is reported as an error.
func (b BaseApp) prepare(txBytes []byte, call string) (tx weave.Tx, ctx weave.Context, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(txBytes); err != nil {
		return nil, nil, err
	}
	ctx = weave.WithLogInfo(b.BlockContext(), "call", call, "path", weave.GetPath(tx))
	return tx, ctx, nil
}

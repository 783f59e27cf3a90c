/*
Package dropd assembles the token ledger and the airdrop registry into an
ABCI application.

Transactions are signed with ed25519 keys and carry exactly one message.
The decorator chain verifies signatures, keeps per signer sequences and
makes every delivered transaction atomic.
*/
package dropd

import (
	"context"
	"path/filepath"
	"strings"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/app"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/orm"
	"github.com/iov-one/tokendrop/store/iavl"
	"github.com/iov-one/tokendrop/x"
	"github.com/iov-one/tokendrop/x/airdrop"
	"github.com/iov-one/tokendrop/x/ledger"
	"github.com/iov-one/tokendrop/x/sigs"
	"github.com/iov-one/tokendrop/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

const metricsNamespace = "tokendrop"

// Authenticator accepts the ed25519 signers of the transaction.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// LedgerControl returns the controller of the token ledger.
func LedgerControl() ledger.BaseController {
	return ledger.NewController()
}

// AirdropControl returns the registry controller moving tokens through the
// ledger.
func AirdropControl() airdrop.Controller {
	return airdrop.NewController(LedgerControl())
}

// Chain returns the decorators every transaction passes through. Metrics
// are collected only when reg is not nil.
func Chain(reg prometheus.Registerer) app.Decorators {
	var metrics *utils.Metrics
	if reg != nil {
		metrics = utils.NewMetrics(metricsNamespace, reg)
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		// a failed check leaves no trace in the check state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed message rolls back every write it made
		// but the signer sequence is still incremented
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching ledger, registry and sequence
// messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	ledger.RegisterRoutes(r, authFn, LedgerControl())
	airdrop.RegisterRoutes(r, authFn, AirdropControl())
	sigs.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter serves "/tokens", "/balances", "/airdrop",
// "/airdrop/recipients", "/auth" and the raw store under "/".
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		ledger.RegisterQuery,
		airdrop.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Stack is the handler of the application: Router behind Chain.
func Stack(reg prometheus.Registerer) weave.Handler {
	authFn := Authenticator()
	return Chain(reg).WithHandler(Router(authFn))
}

// Initializers returns the genesis initializers. The ledger goes first so
// that the registry can refer to an existing token.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		ledger.Initializer{},
		airdrop.Initializer{},
	)
}

// Application opens the state at dbPath and returns the ABCI application
// running h. An empty dbPath keeps the state in memory. Every transaction
// is logged to logger.
func Application(name string, h weave.Handler, decoder weave.TxDecoder, dbPath string, logger log.Logger, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, errors.Wrap(err, "open state")
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers()).
		WithLogger(logger)
	return app.NewBaseApp(store, decoder, h, debug), nil
}

// CommitKVStore returns the iavl store kept in dbPath, a directory and a
// database name. A ".db" suffix is dropped from the name. An empty path
// gives a memory store.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}

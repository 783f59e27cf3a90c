package weave

import (
	"encoding/json"

	"github.com/iov-one/tokendrop/errors"
)

// Checker validates a transaction without committing to it. Check may
// write to the store, but those writes only live until the next commit.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes the messages routed to it, for example a ledger
// transfer or a distribution claim.
type Handler interface {
	Checker
	Deliverer
}

// Decorator runs around every handler and decides whether and how next is
// called. Signature checks and logging are decorators.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the genesis app state, one raw JSON section per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section named key into obj. A missing section
// leaves obj unchanged.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis section %q: %s", key, err)
	}
	return nil
}

// Initializer loads the state of one extension from genesis.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

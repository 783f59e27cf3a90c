package airdrop

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/gconf"
	"github.com/iov-one/tokendrop/x/ledger"
)

const optKey = "airdrop"

// GenesisRegistry is the "airdrop" section of the genesis file.
type GenesisRegistry struct {
	Owner  weave.Address `json:"owner"`
	Ledger string        `json:"ledger"`
	Paused bool          `json:"paused"`
}

// Initializer creates the registry and loads the airdrop configuration
// from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	var gen *GenesisRegistry
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if gen == nil {
		return nil
	}
	switch token, err := ledger.NewController().Token(db); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrInput, "no token %q in genesis", gen.Ledger)
	case err != nil:
		return err
	case token.Symbol != gen.Ledger:
		return errors.Wrapf(errors.ErrInput, "registry pays out %q, token is %q", gen.Ledger, token.Symbol)
	}
	r := &Registry{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    gen.Owner,
		Ledger:   gen.Ledger,
		Paused:   gen.Paused,
	}
	if err := NewController(ledger.NewController()).Create(db, r); err != nil {
		return errors.Wrap(err, "create registry")
	}
	return nil
}

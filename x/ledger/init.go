package ledger

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
)

const optKey = "ledger"

// GenesisToken is the "ledger" section of the genesis file.
//
// Supply is written in whole tokens, optionally followed by the symbol,
// for example "1000000000 SOFT" or "1.5".
type GenesisToken struct {
	Name        string        `json:"name"`
	Symbol      string        `json:"symbol"`
	Holder      weave.Address `json:"holder"`
	Supply      string        `json:"supply"`
	Owner       weave.Address `json:"owner"`
	Endpoint    string        `json:"endpoint"`
	MainChainID uint32        `json:"main_chain_id"`
}

// Initializer creates the token from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis creates the token described in the "ledger" section. A missing
// section creates nothing.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var gen *GenesisToken
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if gen == nil {
		return nil
	}
	supply, ticker, err := coin.ParseHumanFormat(gen.Supply)
	if err != nil {
		return errors.Wrap(err, "supply")
	}
	if ticker != "" && ticker != gen.Symbol {
		return errors.Wrapf(errors.ErrInput, "supply ticker %q does not match symbol %q", ticker, gen.Symbol)
	}
	owner := gen.Owner
	if len(owner) == 0 {
		owner = gen.Holder
	}
	token := &Token{
		Metadata:    &weave.Metadata{Schema: 1},
		Name:        gen.Name,
		Symbol:      gen.Symbol,
		TotalSupply: supply,
		Owner:       owner,
		Endpoint:    gen.Endpoint,
		MainChainID: gen.MainChainID,
	}
	if err := NewController().Create(db, gen.Holder, token); err != nil {
		return errors.Wrap(err, "create token")
	}
	return nil
}

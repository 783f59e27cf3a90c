package ledger

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/orm"
)

// Controller is the functionality needed by other extensions to read and
// move balances.
type Controller interface {
	Balance(db weave.ReadOnlyKVStore, holder weave.Address) (coin.Amount, error)
	Transfer(db weave.KVStore, src, dest weave.Address, amount coin.Amount) error
	Burn(db weave.KVStore, src weave.Address, amount coin.Amount) error
	Token(db weave.ReadOnlyKVStore) (*Token, error)
}

// BaseController is the default ledger implementation.
type BaseController struct {
	tokens   TokenBucket
	balances balanceStore
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the default buckets.
func NewController() BaseController {
	return BaseController{
		tokens:   NewTokenBucket(),
		balances: balanceStore{b: NewBalanceBucket()},
	}
}

// Create writes the token record and credits the whole supply to the
// initial holder. It fails with ErrDuplicate if a token already exists.
func (c BaseController) Create(db weave.KVStore, holder weave.Address, t *Token) error {
	existing, err := c.tokens.All(db)
	if err != nil {
		return errors.Wrap(err, "load tokens")
	}
	if len(existing) != 0 {
		return errors.Wrapf(errors.ErrDuplicate, "token %q already created", existing[0].Symbol)
	}
	if err := holder.Validate(); err != nil {
		return errors.Wrap(err, "initial holder")
	}
	t.Decimals = coin.Decimals
	if t.Metadata == nil {
		t.Metadata = &weave.Metadata{Schema: 1}
	}
	if err := c.tokens.Put(db, t); err != nil {
		return errors.Wrap(err, "save token")
	}
	return c.balances.set(db, holder, t.TotalSupply)
}

// Token returns the token record. It fails with ErrNotFound before the
// token was created.
func (c BaseController) Token(db weave.ReadOnlyKVStore) (*Token, error) {
	tokens, err := c.tokens.All(db)
	if err != nil {
		return nil, errors.Wrap(err, "load tokens")
	}
	if len(tokens) == 0 {
		return nil, errors.Wrap(errors.ErrNotFound, "no token")
	}
	return tokens[0], nil
}

// Balance returns the amount held by the address. Unknown holders have
// a zero balance.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, holder weave.Address) (coin.Amount, error) {
	return c.balances.get(db, holder)
}

// Transfer moves amount from src to dest. A zero amount or a transfer to
// self leaves all balances unchanged.
func (c BaseController) Transfer(db weave.KVStore, src, dest weave.Address, amount coin.Amount) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	have, err := c.balances.get(db, src)
	if err != nil {
		return err
	}
	left, err := have.Sub(amount)
	if err != nil {
		return errors.Wrap(err, "transfer amount exceeds balance")
	}
	if amount.IsZero() || src.Equals(dest) {
		return nil
	}
	got, err := c.balances.get(db, dest)
	if err != nil {
		return err
	}
	got, err = got.Add(amount)
	if err != nil {
		return errors.Wrap(err, "recipient balance")
	}
	if err := c.balances.set(db, src, left); err != nil {
		return err
	}
	return c.balances.set(db, dest, got)
}

// Burn destroys amount from the balance of src and the total supply.
func (c BaseController) Burn(db weave.KVStore, src weave.Address, amount coin.Amount) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "cannot burn zero tokens")
	}
	have, err := c.balances.get(db, src)
	if err != nil {
		return err
	}
	left, err := have.Sub(amount)
	if err != nil {
		return errors.Wrap(err, "burn amount exceeds balance")
	}
	t, err := c.Token(db)
	if err != nil {
		return err
	}
	supply, err := t.TotalSupply.Sub(amount)
	if err != nil {
		// Balances can never exceed the supply.
		return errors.Wrap(errors.ErrHuman, "supply below balance")
	}
	t.TotalSupply = supply
	if err := c.tokens.Put(db, t); err != nil {
		return errors.Wrap(err, "save token")
	}
	return c.balances.set(db, src, left)
}

// balanceStore hides the missing-means-zero convention of balances.
// Zero balances are removed from the store.
type balanceStore struct {
	b orm.ModelBucket
}

func (s balanceStore) get(db weave.ReadOnlyKVStore, holder weave.Address) (coin.Amount, error) {
	var bal Balance
	switch err := s.b.One(db, holder, &bal); {
	case err == nil:
		return bal.Amount, nil
	case errors.ErrNotFound.Is(err):
		return coin.Amount{}, nil
	default:
		return nil, errors.Wrap(err, "load balance")
	}
}

func (s balanceStore) set(db weave.KVStore, holder weave.Address, amount coin.Amount) error {
	if amount.IsZero() {
		err := s.b.Delete(db, holder)
		if err != nil && !errors.ErrNotFound.Is(err) {
			return errors.Wrap(err, "delete balance")
		}
		return nil
	}
	bal := &Balance{
		Metadata: &weave.Metadata{Schema: 1},
		Amount:   amount,
	}
	if err := s.b.Put(db, holder, bal); err != nil {
		return errors.Wrap(err, "save balance")
	}
	return nil
}

package airdrop

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/orm"
	"github.com/iov-one/tokendrop/x/ledger"
)

// Controller implements the registry operations. It does not authenticate
// the caller, handlers do.
type Controller struct {
	ledger       ledger.Controller
	registry     orm.ModelBucket
	entitlements orm.ModelBucket
}

// NewController returns a controller paying out through the given ledger.
func NewController(l ledger.Controller) Controller {
	return Controller{
		ledger:       l,
		registry:     NewRegistryBucket(),
		entitlements: NewEntitlementBucket(),
	}
}

// Create stores a new registry. It fails with ErrDuplicate if a registry
// exists already.
func (c Controller) Create(db weave.KVStore, r *Registry) error {
	switch err := c.registry.Has(db, registryKey); {
	case err == nil:
		return errors.Wrap(errors.ErrDuplicate, "registry exists")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return c.registry.Put(db, registryKey, r)
}

// Registry returns the registry record.
func (c Controller) Registry(db weave.ReadOnlyKVStore) (*Registry, error) {
	var r Registry
	if err := c.registry.One(db, registryKey, &r); err != nil {
		return nil, errors.Wrap(err, "registry")
	}
	return &r, nil
}

// SetRecipients registers every address with the amount at the same
// position. Nothing is written unless every address can be registered.
func (c Controller) SetRecipients(db weave.KVStore, addrs []weave.Address, amounts []coin.Amount) error {
	if err := c.checkRecipients(db, addrs, amounts); err != nil {
		return err
	}
	for i, a := range addrs {
		e := &Entitlement{
			Metadata: &weave.Metadata{Schema: 1},
			Amount:   amounts[i],
		}
		if err := c.entitlements.Put(db, a, e); err != nil {
			return errors.Wrapf(err, "save recipient %s", a)
		}
	}
	return nil
}

func (c Controller) checkRecipients(db weave.ReadOnlyKVStore, addrs []weave.Address, amounts []coin.Amount) error {
	if len(addrs) != len(amounts) {
		return errors.Wrapf(ErrLengthMismatch, "%d addresses, %d amounts", len(addrs), len(amounts))
	}
	seen := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		if _, ok := seen[string(a)]; ok {
			return errors.Wrapf(ErrAlreadyRegistered, "%s repeated", a)
		}
		seen[string(a)] = struct{}{}

		switch err := c.entitlements.Has(db, a); {
		case err == nil:
			return errors.Wrapf(ErrAlreadyRegistered, "%s", a)
		case !errors.ErrNotFound.Is(err):
			return err
		}
	}
	return nil
}

// Claim zeroes the entitlement of the recipient and then pays it out from
// the registry account. The caller must discard all writes if an error is
// returned.
func (c Controller) Claim(db weave.KVStore, recipient weave.Address) (coin.Amount, error) {
	r, err := c.Registry(db)
	if err != nil {
		return nil, err
	}
	if r.Paused {
		return nil, errors.Wrap(ErrPaused, "claims are paused")
	}
	amount, err := c.ClaimableTokens(db, recipient)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, errors.Wrapf(ErrNothingToClaim, "%s", recipient)
	}
	e := &Entitlement{
		Metadata: &weave.Metadata{Schema: 1},
		Amount:   coin.Amount{},
	}
	if err := c.entitlements.Put(db, recipient, e); err != nil {
		return nil, errors.Wrap(err, "save recipient")
	}
	if err := c.ledger.Transfer(db, r.Account(), recipient, amount); err != nil {
		return nil, errors.Wrap(err, "pay out")
	}
	return amount, nil
}

// SetPaused sets the pause flag. Setting it to its current value is a
// no-op.
func (c Controller) SetPaused(db weave.KVStore, paused bool) error {
	r, err := c.Registry(db)
	if err != nil {
		return err
	}
	if r.Paused == paused {
		return nil
	}
	r.Paused = paused
	return c.registry.Put(db, registryKey, r)
}

// Sweep moves the whole registry account balance to the owner and returns
// the moved amount. Entitlements are left as they are.
func (c Controller) Sweep(db weave.KVStore) (coin.Amount, error) {
	r, err := c.Registry(db)
	if err != nil {
		return nil, err
	}
	left, err := c.ledger.Balance(db, r.Account())
	if err != nil {
		return nil, err
	}
	if left.IsZero() {
		return nil, errors.Wrap(ErrNoLeftovers, "registry account is empty")
	}
	if err := c.ledger.Transfer(db, r.Account(), r.Owner, left); err != nil {
		return nil, errors.Wrap(err, "sweep")
	}
	return left, nil
}

// ClaimableTokens returns what the address can claim. Unknown addresses
// can claim nothing.
func (c Controller) ClaimableTokens(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Amount, error) {
	var e Entitlement
	switch err := c.entitlements.One(db, addr, &e); {
	case err == nil:
		return e.Amount, nil
	case errors.ErrNotFound.Is(err):
		return coin.Amount{}, nil
	default:
		return nil, errors.Wrap(err, "load recipient")
	}
}

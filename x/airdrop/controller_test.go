package airdrop

import (
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/store"
	"github.com/iov-one/tokendrop/weavetest"
	"github.com/iov-one/tokendrop/x/ledger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestController(t *testing.T) {
	Convey("Given a funded registry", t, func() {
		db := store.MemStore()
		lg := ledger.NewController()
		ctrl := NewController(lg)

		owner := weavetest.NewCondition().Address()
		alice := weavetest.NewCondition().Address()
		bob := weavetest.NewCondition().Address()

		token := &ledger.Token{
			Metadata:    &weave.Metadata{Schema: 1},
			Name:        "Simple OFT",
			Symbol:      "SOFT",
			TotalSupply: coin.Tokens(1000),
		}
		So(lg.Create(db, owner, token), ShouldBeNil)

		registry := &Registry{
			Metadata: &weave.Metadata{Schema: 1},
			Owner:    owner,
			Ledger:   "SOFT",
		}
		So(ctrl.Create(db, registry), ShouldBeNil)
		So(lg.Transfer(db, owner, registry.Account(), coin.Tokens(100)), ShouldBeNil)

		balance := func(a weave.Address) coin.Amount {
			amount, err := lg.Balance(db, a)
			So(err, ShouldBeNil)
			return amount
		}
		claimable := func(a weave.Address) coin.Amount {
			amount, err := ctrl.ClaimableTokens(db, a)
			So(err, ShouldBeNil)
			return amount
		}

		Convey("A second registry cannot be created", func() {
			err := ctrl.Create(db, &Registry{Metadata: &weave.Metadata{Schema: 1}, Owner: alice, Ledger: "SOFT"})
			So(errors.ErrDuplicate.Is(err), ShouldBeTrue)

			r, err := ctrl.Registry(db)
			So(err, ShouldBeNil)
			So(r.Owner, ShouldResemble, owner)
		})

		Convey("Unknown addresses can claim nothing", func() {
			So(claimable(alice).IsZero(), ShouldBeTrue)
			_, err := ctrl.Claim(db, alice)
			So(ErrNothingToClaim.Is(err), ShouldBeTrue)
		})

		Convey("Registered recipients can claim once", func() {
			err := ctrl.SetRecipients(db,
				[]weave.Address{alice, bob},
				[]coin.Amount{coin.Tokens(10), coin.Tokens(20)})
			So(err, ShouldBeNil)
			So(claimable(alice).Equals(coin.Tokens(10)), ShouldBeTrue)
			So(claimable(bob).Equals(coin.Tokens(20)), ShouldBeTrue)

			amount, err := ctrl.Claim(db, alice)
			So(err, ShouldBeNil)
			So(amount.Equals(coin.Tokens(10)), ShouldBeTrue)
			So(balance(alice).Equals(coin.Tokens(10)), ShouldBeTrue)
			So(balance(registry.Account()).Equals(coin.Tokens(90)), ShouldBeTrue)
			So(claimable(alice).IsZero(), ShouldBeTrue)

			_, err = ctrl.Claim(db, alice)
			So(ErrNothingToClaim.Is(err), ShouldBeTrue)
			So(balance(alice).Equals(coin.Tokens(10)), ShouldBeTrue)

			Convey("A claimed address stays registered", func() {
				err := ctrl.SetRecipients(db, []weave.Address{alice}, []coin.Amount{coin.Tokens(5)})
				So(ErrAlreadyRegistered.Is(err), ShouldBeTrue)
			})
		})

		Convey("A failed batch registers nobody", func() {
			So(ctrl.SetRecipients(db, []weave.Address{alice}, []coin.Amount{coin.Tokens(10)}), ShouldBeNil)

			err := ctrl.SetRecipients(db,
				[]weave.Address{bob, alice},
				[]coin.Amount{coin.Tokens(20), coin.Tokens(30)})
			So(ErrAlreadyRegistered.Is(err), ShouldBeTrue)
			So(claimable(bob).IsZero(), ShouldBeTrue)
			So(claimable(alice).Equals(coin.Tokens(10)), ShouldBeTrue)

			err = ctrl.SetRecipients(db, []weave.Address{bob}, nil)
			So(ErrLengthMismatch.Is(err), ShouldBeTrue)
			So(claimable(bob).IsZero(), ShouldBeTrue)
		})

		Convey("An empty batch is accepted", func() {
			So(ctrl.SetRecipients(db, nil, nil), ShouldBeNil)
		})

		Convey("Pausing blocks claims until unpaused", func() {
			So(ctrl.SetRecipients(db, []weave.Address{alice}, []coin.Amount{coin.Tokens(10)}), ShouldBeNil)
			So(ctrl.SetPaused(db, true), ShouldBeNil)
			So(ctrl.SetPaused(db, true), ShouldBeNil)

			_, err := ctrl.Claim(db, alice)
			So(ErrPaused.Is(err), ShouldBeTrue)
			So(claimable(alice).Equals(coin.Tokens(10)), ShouldBeTrue)

			So(ctrl.SetPaused(db, false), ShouldBeNil)
			So(ctrl.SetPaused(db, false), ShouldBeNil)
			_, err = ctrl.Claim(db, alice)
			So(err, ShouldBeNil)
		})

		Convey("Sweeping moves the whole account to the owner", func() {
			So(ctrl.SetRecipients(db, []weave.Address{alice}, []coin.Amount{coin.Tokens(10)}), ShouldBeNil)

			swept, err := ctrl.Sweep(db)
			So(err, ShouldBeNil)
			So(swept.Equals(coin.Tokens(100)), ShouldBeTrue)
			So(balance(owner).Equals(coin.Tokens(1000)), ShouldBeTrue)
			So(balance(registry.Account()).IsZero(), ShouldBeTrue)

			// Entitlements survive the sweep.
			So(claimable(alice).Equals(coin.Tokens(10)), ShouldBeTrue)

			_, err = ctrl.Sweep(db)
			So(ErrNoLeftovers.Is(err), ShouldBeTrue)

			_, err = ctrl.Claim(db, alice)
			So(errors.ErrInsufficientAmount.Is(err), ShouldBeTrue)
		})
	})

	Convey("Without a registry", t, func() {
		db := store.MemStore()
		ctrl := NewController(ledger.NewController())
		alice := weavetest.NewCondition().Address()

		_, err := ctrl.Registry(db)
		So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		_, err = ctrl.Claim(db, alice)
		So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		_, err = ctrl.Sweep(db)
		So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		So(errors.ErrNotFound.Is(ctrl.SetPaused(db, true)), ShouldBeTrue)
	})
}

func TestRegistryValidate(t *testing.T) {
	Convey("Registry validation", t, func() {
		owner := weavetest.NewCondition().Address()
		meta := &weave.Metadata{Schema: 1}

		So((&Registry{Metadata: meta, Owner: owner, Ledger: "SOFT"}).Validate(), ShouldBeNil)

		err := (&Registry{Metadata: meta, Ledger: "SOFT"}).Validate()
		So(errors.ErrInput.Is(err), ShouldBeTrue)

		err = (&Registry{Metadata: meta, Owner: owner, Ledger: "soft"}).Validate()
		So(errors.ErrInput.Is(err), ShouldBeTrue)

		err = (&Registry{Owner: owner, Ledger: "SOFT"}).Validate()
		So(errors.ErrMetadata.Is(err), ShouldBeTrue)
	})

	Convey("The registry account depends on the ledger only", t, func() {
		a := &Registry{Owner: weavetest.NewCondition().Address(), Ledger: "SOFT"}
		b := &Registry{Owner: weavetest.NewCondition().Address(), Ledger: "SOFT"}
		c := &Registry{Owner: a.Owner, Ledger: "HARD"}
		So(a.Account(), ShouldResemble, b.Account())
		So(a.Account(), ShouldNotResemble, c.Account())
		So(a.Account().Validate(), ShouldBeNil)
	})
}

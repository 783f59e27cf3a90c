package weavetest

import (
	"context"
	"crypto/rand"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/crypto"
)

// NewKey returns a fresh ed25519 key.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() weave.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns a random address that no key controls.
func RandomAddr(t testing.TB) weave.Address {
	addr := make(weave.Address, weave.AddressLength)
	if _, err := rand.Read(addr); err != nil {
		t.Fatalf("random address: %s", err)
	}
	return addr
}

// Auth is an x.Authenticator with a fixed set of signers, the same for
// every context. Signer and Signers are both taken into account.
type Auth struct {
	Signer  weave.Condition
	Signers []weave.Condition
}

func (a *Auth) GetConditions(weave.Context) []weave.Condition {
	conds := make([]weave.Condition, 0, len(a.Signers)+1)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is an x.Authenticator that reads the signers from the context.
// Each test sets them per call with SetConditions. Instances with a
// different Key do not see each other's signers.
type CtxAuth struct {
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx weave.Context, conds ...weave.Condition) weave.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx weave.Context) []weave.Condition {
	conds, _ := ctx.Value(ctxAuthKey(a.Key)).([]weave.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx weave.Context, addr weave.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []weave.Condition, addr weave.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

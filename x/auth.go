package x

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// Authenticator tells a handler which conditions authorized the current
// transaction. Handlers receive it in their constructor, so tests can
// replace signature checks with a fixed set of signers.
type Authenticator interface {
	GetConditions(weave.Context) []weave.Condition
	HasAddress(weave.Context, weave.Address) bool
}

// MainSigner is the first condition, the one paying for sequences and
// receiving claims, or nil.
func MainSigner(ctx weave.Context, auth Authenticator) weave.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}

// RequireSigner fails with ErrUnauthorized unless addr signed the
// transaction. Role names addr in the error, like "registry owner".
func RequireSigner(ctx weave.Context, auth Authenticator, addr weave.Address, role string) error {
	if len(addr) != 0 && auth.HasAddress(ctx, addr) {
		return nil
	}
	return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
}

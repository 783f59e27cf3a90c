package x

import (
	"context"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/weavetest"
	"github.com/iov-one/tokendrop/weavetest/assert"
)

func TestMainSigner(t *testing.T) {
	owner, holder := weavetest.NewCondition(), weavetest.NewCondition()
	signed := &weavetest.CtxAuth{Key: "sigs"}

	cases := map[string]struct {
		ctx  weave.Context
		auth Authenticator
		want weave.Condition
	}{
		"nobody signed":           {ctx: context.Background(), auth: &weavetest.Auth{}},
		"single signer":           {ctx: context.Background(), auth: &weavetest.Auth{Signer: owner}, want: owner},
		"first of many":           {ctx: signed.SetConditions(context.Background(), holder, owner), auth: signed, want: holder},
		"other context key empty": {ctx: signed.SetConditions(context.Background(), owner), auth: &weavetest.CtxAuth{Key: "other"}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, MainSigner(tc.ctx, tc.auth))
		})
	}
}

func TestRequireSigner(t *testing.T) {
	owner, holder, stranger := weavetest.NewCondition(), weavetest.NewCondition(), weavetest.NewCondition()
	auth := &weavetest.Auth{Signers: []weave.Condition{owner, holder}}
	ctx := context.Background()

	assert.Nil(t, RequireSigner(ctx, auth, owner.Address(), "registry owner"))
	assert.Nil(t, RequireSigner(ctx, auth, holder.Address(), "holder"))

	err := RequireSigner(ctx, auth, stranger.Address(), "registry owner")
	assert.IsErr(t, errors.ErrUnauthorized, err)
	if got := err.Error(); got != "registry owner signature required: unauthorized" {
		t.Fatalf("unexpected message %q", got)
	}

	assert.IsErr(t, errors.ErrUnauthorized, RequireSigner(ctx, auth, nil, "registry owner"))
}

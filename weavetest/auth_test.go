package weavetest

import (
	"context"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	stranger := NewCondition()

	cases := map[string]struct {
		auth Auth
		want []weave.Condition
	}{
		"nobody":          {auth: Auth{}, want: []weave.Condition{}},
		"signer":          {auth: Auth{Signer: a}, want: []weave.Condition{a}},
		"signers":         {auth: Auth{Signers: []weave.Condition{a, b}}, want: []weave.Condition{a, b}},
		"signer is first": {auth: Auth{Signer: c, Signers: []weave.Condition{a, b}}, want: []weave.Condition{c, a, b}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			assert.Equal(t, tc.want, tc.auth.GetConditions(ctx))
			for _, cond := range tc.want {
				assert.True(t, tc.auth.HasAddress(ctx, cond.Address()))
			}
			assert.False(t, tc.auth.HasAddress(ctx, stranger.Address()))
		})
	}
}

func TestCtxAuth(t *testing.T) {
	owner, holder := NewCondition(), NewCondition()
	a := &CtxAuth{Key: "auth"}
	other := &CtxAuth{Key: "other"}

	empty := context.Background()
	assert.Nil(t, a.GetConditions(empty))
	assert.False(t, a.HasAddress(empty, owner.Address()))

	ctx := a.SetConditions(empty, owner, holder)
	assert.Equal(t, []weave.Condition{owner, holder}, a.GetConditions(ctx))
	assert.True(t, a.HasAddress(ctx, holder.Address()))
	assert.False(t, a.HasAddress(ctx, NewCondition().Address()))

	assert.Nil(t, other.GetConditions(ctx))
	assert.False(t, other.HasAddress(ctx, owner.Address()))
}

func TestRandomAddr(t *testing.T) {
	addr := RandomAddr(t)
	assert.NoError(t, addr.Validate())
	assert.NotEqual(t, addr, RandomAddr(t))
}

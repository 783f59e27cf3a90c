package sigs

import (
	"context"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/crypto"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/store"
	"github.com/iov-one/tokendrop/weavetest"
	"github.com/iov-one/tokendrop/weavetest/assert"
)

type routes map[string]weave.Handler

func (r routes) Handle(path string, h weave.Handler) { r[path] = h }

func TestBumpSequence(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	cases := map[string]struct {
		initSeq   int64
		signer    weave.Condition
		increment uint32
		wantErr   *errors.Error
		wantSeq   int64
	}{
		"increment by one is a no-op on top of the signature bump": {
			initSeq:   4,
			signer:    pub.Condition(),
			increment: 1,
			wantSeq:   4,
		},
		"increment by many": {
			initSeq:   4,
			signer:    pub.Condition(),
			increment: 100,
			wantSeq:   103,
		},
		"too big increment": {
			signer:    pub.Condition(),
			increment: maxSequenceIncrement + 1,
			wantErr:   errors.ErrMsg,
		},
		"sequence overflow": {
			initSeq:   maxSequence - 2,
			signer:    pub.Condition(),
			increment: 5,
			wantErr:   errors.ErrOverflow,
		},
		"missing signature": {
			increment: 5,
			wantErr:   errors.ErrUnauthorized,
		},
		"unknown signer": {
			signer:    weavetest.NewCondition(),
			increment: 5,
			wantErr:   errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewBucket()
			user := NewUser(pub)
			AsUser(user).Sequence = tc.initSeq
			assert.Nil(t, b.Save(db, user))

			r := make(routes)
			auth := &weavetest.Auth{}
			if tc.signer != nil {
				auth.Signer = tc.signer
			}
			RegisterRoutes(r, auth)
			h := r[pathBumpSequenceMsg]

			tx := &weavetest.Tx{Msg: &BumpSequenceMsg{
				Metadata:  &weave.Metadata{Schema: 1},
				Increment: tc.increment,
			}}
			ctx := context.Background()
			if _, err := h.Check(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			seq, err := NextNonce(db, pub.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantSeq, seq)
		})
	}
}

func TestUserDataValidate(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	ok := &UserData{Metadata: &weave.Metadata{Schema: 1}, Pubkey: pub, Sequence: 3}
	assert.Nil(t, ok.Validate())

	noKey := &UserData{Metadata: &weave.Metadata{Schema: 1}, Sequence: 3}
	assert.FieldError(t, noKey.Validate(), "Pubkey", errors.ErrEmpty)

	negative := &UserData{Metadata: &weave.Metadata{Schema: 1}, Pubkey: pub, Sequence: -1}
	assert.FieldError(t, negative.Validate(), "Sequence", ErrInvalidSequence)

	noMeta := &UserData{Pubkey: pub}
	assert.FieldError(t, noMeta.Validate(), "Metadata", errors.ErrMetadata)

	raw, err := ok.Marshal()
	assert.Nil(t, err)
	var loaded UserData
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, ok.Sequence, loaded.Sequence)
	assert.Equal(t, ok.Pubkey.Address(), loaded.Pubkey.Address())
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := &UserData{Sequence: 7}
	assert.IsErr(t, ErrInvalidSequence, u.CheckAndIncrementSequence(6))
	assert.Nil(t, u.CheckAndIncrementSequence(7))
	assert.Equal(t, int64(8), u.Sequence)

	u.Sequence = (1 << 53) - 1
	assert.IsErr(t, errors.ErrOverflow, u.CheckAndIncrementSequence(u.Sequence))
}

func TestNextNonce(t *testing.T) {
	db := store.MemStore()
	pub := crypto.GenPrivKeyEd25519().PublicKey()

	seq, err := NextNonce(db, pub.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), seq)
}

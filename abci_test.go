package weave_test

import (
	"fmt"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestErrorResponses(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantLog  string
		wantCode uint32
	}{
		"stdlib error is redacted": {
			err:      fmt.Errorf("disk full"),
			wantLog:  "internal error",
			wantCode: 1,
		},
		"stdlib error in debug mode": {
			err:      fmt.Errorf("disk full"),
			debug:    true,
			wantLog:  "disk full",
			wantCode: 1,
		},
		"registered error is exposed": {
			err:      errors.Wrap(errors.ErrInsufficientAmount, "burn amount exceeds balance"),
			wantLog:  "burn amount exceeds balance: insufficient amount",
			wantCode: 12,
		},
		"panic keeps its code": {
			err:      errors.Wrap(errors.ErrPanic, "boom"),
			wantLog:  "boom: panic",
			wantCode: 111222,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			dres := weave.DeliverTxResponse(nil, tc.err, tc.debug)
			assert.True(t, dres.IsErr())
			assert.Contains(t, dres.Log, "cannot deliver tx: "+tc.wantLog)
			assert.Equal(t, tc.wantCode, dres.Code)

			cres := weave.CheckTxResponse(nil, tc.err, tc.debug)
			assert.True(t, cres.IsErr())
			assert.Contains(t, cres.Log, "cannot check tx: "+tc.wantLog)
			assert.Equal(t, tc.wantCode, cres.Code)
		})
	}
}

func TestSuccessResponses(t *testing.T) {
	dres := &weave.DeliverResult{
		Data: []byte{1, 3, 4},
		Log:  "sent",
		Tags: []common.KVPair{weave.Tag("action", "ledger/transfer")},
	}
	ad := weave.DeliverTxResponse(dres, nil, false)
	assert.False(t, ad.IsErr())
	assert.Equal(t, []byte{1, 3, 4}, ad.Data)
	assert.Equal(t, "sent", ad.Log)
	if assert.Len(t, ad.Tags, 1) {
		assert.Equal(t, []byte("ledger/transfer"), ad.Tags[0].Value)
	}

	cres := &weave.CheckResult{Log: "ok", GasAllocated: 12345}
	ac := weave.CheckTxResponse(cres, nil, false)
	assert.False(t, ac.IsErr())
	assert.Equal(t, "ok", ac.Log)
	assert.Equal(t, int64(12345), ac.GasWanted)
	assert.Empty(t, ac.Data)

	bad := weave.CheckTxResponse(cres, errors.ErrUnauthorized, false)
	assert.Equal(t, uint32(2), bad.Code)
}

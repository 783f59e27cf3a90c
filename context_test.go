package weave

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/iov-one/tokendrop/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func TestBlockValuesAreSetOnce(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)
	_, ok = GetHeader(ctx)
	assert.False(t, ok)
	assert.Panics(t, func() { GetChainID(ctx) })

	ctx = WithHeight(ctx, 12)
	ctx = WithHeader(ctx, abci.Header{Height: 12, ChainID: "drop-test"})
	ctx = WithChainID(ctx, "drop-test")

	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(12), height)
	header, ok := GetHeader(ctx)
	assert.True(t, ok)
	assert.Equal(t, "drop-test", header.ChainID)
	assert.Equal(t, "drop-test", GetChainID(ctx))

	assert.Panics(t, func() { WithHeight(ctx, 13) })
	assert.Panics(t, func() { WithHeader(ctx, abci.Header{}) })
	assert.Panics(t, func() { WithChainID(ctx, "drop-other") })
}

func TestBlockTime(t *testing.T) {
	ctx := context.Background()
	_, err := BlockTime(ctx)
	assert.True(t, errors.ErrState.Is(err))
	_, err = BlockTime(WithBlockTime(ctx, time.Time{}))
	assert.True(t, errors.ErrState.Is(err))

	cet := time.Date(2019, 5, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	ctx = WithBlockTime(ctx, cet)
	got, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, cet.UTC(), got)

	later := cet.Add(time.Minute)
	got, err = BlockTime(WithBlockTime(ctx, later))
	require.NoError(t, err)
	assert.Equal(t, later.UTC(), got)
}

func TestLogInfo(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultLogger, GetLogger(ctx))

	var buf bytes.Buffer
	ctx = WithLogger(ctx, log.NewTMLogger(&buf))
	ctx = WithLogInfo(ctx, "path", "airdrop/claim")
	GetLogger(ctx).Info("claimed")
	assert.Contains(t, buf.String(), "path=airdrop/claim")
}

func TestChainID(t *testing.T) {
	cases := map[string]bool{
		"":                              false,
		"drop":                          false,
		"tokendrop":                     true,
		"drop-TEST_88":                  true,
		"drop;test":                     false,
		"this-chain-id-is-way-too-long": false,
	}
	for id, valid := range cases {
		assert.Equal(t, valid, IsValidChainID(id), id)
		if !valid {
			assert.Panics(t, func() { WithChainID(context.Background(), id) }, id)
		}
	}
}

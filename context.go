/*
Package weave holds the interfaces shared by the ledger, the distribution
registry and the application that runs them, plus the simple types every
one of them needs: addresses, conditions and the transaction context.

Block data travels in the context. Each value has a With function that
stores it and a Get function that reads it back. Height, header and chain
id are set once per block and a second With panics, so that no handler can
rewrite them for the handlers after it.
*/
package weave

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/iov-one/tokendrop/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is the standard context carrying block data.
type Context = context.Context

type contextKey int

const (
	contextKeyHeader contextKey = iota
	contextKeyHeight
	contextKeyChainID
	contextKeyLogger
	contextKeyBlockTime
)

var (
	// DefaultLogger is returned by GetLogger when the context has none.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID reports whether s may be used as a chain id.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// setOnce stores value under key and panics if the key is already set.
func setOnce(ctx Context, key contextKey, name string, value interface{}) Context {
	if ctx.Value(key) != nil {
		panic(name + " already set")
	}
	return context.WithValue(ctx, key, value)
}

func WithHeader(ctx Context, header abci.Header) Context {
	return setOnce(ctx, contextKeyHeader, "header", header)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(contextKeyHeader).(abci.Header)
	return h, ok
}

func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, contextKeyHeight, "height", height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(contextKeyHeight).(int64)
	return h, ok
}

// WithChainID panics on an invalid id as well.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return setOnce(ctx, contextKeyChainID, "chain id", chainID)
}

// GetChainID panics when no chain id is set. The application sets it for
// every block, so a missing id is a wiring bug.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("chain id not set")
	}
	return id
}

// WithBlockTime stores t in UTC. Unlike the height it may be replaced.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyBlockTime, t.UTC())
}

// BlockTime fails with ErrState when no block time or the zero time is set.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, errors.Wrap(errors.ErrState, "no block time")
	}
	return t, nil
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger falls back to DefaultLogger.
func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithLogInfo adds the key value pairs to every later log line.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

package weavetest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/app"
	abci "github.com/tendermint/tendermint/abci/types"
)

// WeaveRunner drives an ABCI application the way tendermint does: genesis
// first, then blocks of transactions, each ending with a commit. Every
// ABCI call goes through the serialized interface.
type WeaveRunner struct {
	t       testing.TB
	app     abci.Application
	chainID string
	height  int64
}

func NewWeaveRunner(t testing.TB, app abci.Application, chainID string) *WeaveRunner {
	return &WeaveRunner{t: t, app: app, chainID: chainID}
}

// WeaveApp is what a block body sees: transaction processing and read
// access to the committed state.
type WeaveApp interface {
	CheckTx(weave.Tx) error
	DeliverTx(weave.Tx) error
	weave.ReadOnlyKVStore
}

var _ WeaveApp = (*WeaveRunner)(nil)

// ResponseError is returned by CheckTx and DeliverTx for a response with a
// non zero code.
type ResponseError struct {
	Code uint32
	Log  string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Log)
}

// ABCICode returns the code of the response.
func (e *ResponseError) ABCICode() uint32 {
	return e.Code
}

// InitChain loads genesis, serialized to JSON, in its own block. The test
// fails if the genesis leaves the state unchanged.
func (w *WeaveRunner) InitChain(genesis interface{}) {
	w.t.Helper()
	raw, err := json.Marshal(genesis)
	if err != nil {
		w.t.Fatalf("genesis: %s", err)
	}
	changed := w.InBlock(func(WeaveApp) error {
		w.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       w.chainID,
			AppStateBytes: raw,
		})
		return nil
	})
	if !changed {
		w.t.Fatalf("genesis did not change the state")
	}
}

// InBlock runs fn within a new block and commits it. It returns whether
// the app hash changed. An error returned by fn fails the test.
func (w *WeaveRunner) InBlock(fn func(WeaveApp) error) bool {
	w.t.Helper()

	w.height++
	before := w.app.Info(abci.RequestInfo{}).LastBlockAppHash
	w.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: w.chainID, Height: w.height, Time: time.Now()},
	})
	if err := fn(w); err != nil {
		w.t.Fatalf("block %d: %+v", w.height, err)
	}
	w.app.EndBlock(abci.RequestEndBlock{Height: w.height})
	after := w.app.Commit().Data
	return !bytes.Equal(before, after)
}

func (w *WeaveRunner) CheckTx(tx weave.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return err
	}
	if res := w.app.CheckTx(raw); res.IsErr() {
		return &ResponseError{Code: res.Code, Log: res.Log}
	}
	return nil
}

func (w *WeaveRunner) DeliverTx(tx weave.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return err
	}
	if res := w.app.DeliverTx(raw); res.IsErr() {
		return &ResponseError{Code: res.Code, Log: res.Log}
	}
	return nil
}

// The read methods query the committed state. The application must serve
// the raw store under "/".

func (w *WeaveRunner) Get(key []byte) ([]byte, error) {
	return app.NewABCIStore(w.app).Get(key)
}

func (w *WeaveRunner) Has(key []byte) (bool, error) {
	return app.NewABCIStore(w.app).Has(key)
}

func (w *WeaveRunner) Iterator(start, end []byte) (weave.Iterator, error) {
	return app.NewABCIStore(w.app).Iterator(start, end)
}

func (w *WeaveRunner) ReverseIterator(start, end []byte) (weave.Iterator, error) {
	return app.NewABCIStore(w.app).ReverseIterator(start, end)
}

package app

import (
	"encoding/json"
	"fmt"
	"strings"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp serves the state side of ABCI: genesis, blocks, commits and
// queries. BaseApp embeds it and adds transaction processing.
//
// Info, InitChain, BeginBlock, EndBlock and Commit have no way to return
// an error to tendermint, so StoreApp panics when one of them fails. A
// node cannot continue from such a state anyway.
type StoreApp struct {
	name        string
	logger      log.Logger
	store       *CommitStore
	initializer weave.Initializer
	queries     weave.QueryRouter

	// chainID is empty until genesis and never changes after.
	chainID string
	// baseContext lives as long as the app. blockContext adds the
	// header of the current block to it.
	baseContext  weave.Context
	blockContext weave.Context
}

// NewStoreApp opens the latest version of db. It panics if the state
// cannot be read.
func NewStoreApp(name string, db weave.CommitKVStore, queries weave.QueryRouter, ctx weave.Context) *StoreApp {
	cs, err := NewCommitStore(db)
	if err != nil {
		panic(err)
	}
	s := &StoreApp{
		name:        name,
		store:       cs,
		queries:     queries,
		baseContext: ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID, err = loadChainID(cs.DeliverStore()); err != nil {
		panic(err)
	}
	if s.chainID != "" {
		s.baseContext = weave.WithChainID(s.baseContext, s.chainID)
	}
	s.blockContext = weave.WithHeight(s.baseContext, s.mustCommitInfo().Version)
	return s
}

// WithInit sets the genesis initializer.
func (s *StoreApp) WithInit(init weave.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger of the app and of every transaction context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = weave.WithLogger(s.baseContext, logger)
	return s
}

func (s *StoreApp) GetChainID() string                   { return s.chainID }
func (s *StoreApp) Logger() log.Logger                   { return s.logger }
func (s *StoreApp) BlockContext() weave.Context          { return s.blockContext }
func (s *StoreApp) DeliverStore() weave.CacheableKVStore { return s.store.DeliverStore() }
func (s *StoreApp) CheckStore() weave.CacheableKVStore   { return s.store.CheckStore() }

func (s *StoreApp) mustCommitInfo() weave.CommitID {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	return info
}

// loadGenesis runs once, on the first start of the chain. It stores the
// chain id and passes the app state to init.
func (s *StoreApp) loadGenesis(appState []byte, chainID string, init weave.Initializer) error {
	if s.chainID != "" {
		return errors.Wrapf(ErrGenesis, "chain %q already initialized", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(ErrGenesis, "no app_state")
	}
	var opts weave.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrap(ErrGenesis, err.Error())
	}

	db := s.DeliverStore()
	if err := saveChainID(db, chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = weave.WithChainID(s.baseContext, chainID)

	if init == nil {
		return nil
	}
	return init.FromGenesis(opts, db)
}

// Info reports the last committed height and app hash so that tendermint
// can replay the missing blocks.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info := s.mustCommitInfo()
	s.logger.Info("info", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// InitChain loads genesis. See loadGenesis.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId, s.initializer); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := weave.WithHeader(s.baseContext, req.Header)
	ctx = weave.WithHeight(ctx, req.Header.GetHeight())
	s.blockContext = weave.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("commit", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed state. The path selects a registered
// query handler and may end with "?<mod>", for example
// "/balances?prefix". Data is the key, or the key prefix, to look up. The
// requested height is ignored.
//
// Key and Value of the response hold the keys and the values of all
// matching models as ResultSets of the same length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queries.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(ErrNoSuchPath, "query path %q", req.Path))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	models, err := h.Query(s.store.committed.CacheWrap(), mod, req.Data)
	if err != nil {
		return queryError(err)
	}

	res := abci.ResponseQuery{Height: info.Version}
	if res.Key, err = ResultsFromKeys(models).Marshal(); err != nil {
		return queryError(err)
	}
	if res.Value, err = ResultsFromValues(models).Marshal(); err != nil {
		return queryError(err)
	}
	return res
}

func queryError(err error) abci.ResponseQuery {
	code, msg := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: msg}
}

package app

import (
	"context"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/orm"
	"github.com/iov-one/tokendrop/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func newTestStoreApp(t *testing.T) *StoreApp {
	t.Helper()
	qr := weave.NewQueryRouter()
	orm.RegisterQuery(qr)
	return NewStoreApp("tokendrop", iavl.NewMemCommitStore(), qr, context.Background())
}

func TestStoreAppCommit(t *testing.T) {
	s := newTestStoreApp(t)

	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, "tokendrop", info.Data)
	assert.Equal(t, int64(0), info.LastBlockHeight)

	require.NoError(t, s.DeliverStore().Set([]byte("tokens:SOFT"), []byte("soft")))

	// Nothing is visible to queries before the commit.
	res := s.Query(abci.RequestQuery{Path: "/", Data: []byte("tokens:SOFT")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(res.Value))
	assert.Len(t, values.Results, 0)

	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	s.EndBlock(abci.RequestEndBlock{})
	commit := s.Commit()
	assert.NotEmpty(t, commit.Data)

	info = s.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	res = s.Query(abci.RequestQuery{Path: "/", Data: []byte("tokens:SOFT")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, int64(1), res.Height)
	var got []byte
	require.NoError(t, UnmarshalOneResult(res.Value, (*rawValue)(&got)))
	assert.Equal(t, []byte("soft"), got)

	res = s.Query(abci.RequestQuery{Path: "/?prefix", Data: []byte("tokens:")})
	require.Equal(t, uint32(0), res.Code, res.Log)
	var keys ResultSet
	require.NoError(t, keys.Unmarshal(res.Key))
	assert.Equal(t, [][]byte{[]byte("tokens:SOFT")}, keys.Results)
}

func TestStoreAppQueryErrors(t *testing.T) {
	s := newTestStoreApp(t)

	res := s.Query(abci.RequestQuery{Path: "/nothing", Data: []byte("x")})
	assert.Equal(t, ErrNoSuchPath.ABCICode(), res.Code)

	res = s.Query(abci.RequestQuery{Path: "/?range", Data: []byte("x")})
	assert.NotEqual(t, uint32(0), res.Code)
}

func TestABCIStore(t *testing.T) {
	s := newTestStoreApp(t)
	db := s.DeliverStore()
	require.NoError(t, db.Set([]byte("balances:a"), []byte{1}))
	require.NoError(t, db.Set([]byte("balances:b"), []byte{2}))
	require.NoError(t, db.Set([]byte("tokens:SOFT"), []byte{3}))
	s.Commit()

	abciStore := NewABCIStore(NewBaseApp(s, nil, nil, false))

	v, err := abciStore.Get([]byte("tokens:SOFT"))
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, v)

	ok, err := abciStore.Has([]byte("tokens:IOV"))
	require.NoError(t, err)
	assert.False(t, ok)

	itr, err := abciStore.Iterator([]byte("balances:"), nil)
	require.NoError(t, err)
	models, err := orm.ConsumeIterator(itr)
	require.NoError(t, err)
	assert.Equal(t, []weave.Model{
		weave.Pair([]byte("balances:a"), []byte{1}),
		weave.Pair([]byte("balances:b"), []byte{2}),
	}, models)

	itr, err = abciStore.ReverseIterator([]byte("balances:"), nil)
	require.NoError(t, err)
	models, err = orm.ConsumeIterator(itr)
	require.NoError(t, err)
	assert.Equal(t, []byte("balances:b"), models[0].Key)

	_, err = abciStore.Iterator([]byte("a"), []byte("b"))
	assert.Error(t, err)
}

// rawValue unmarshals into a plain byte slice.
type rawValue []byte

func (r *rawValue) Marshal() ([]byte, error) { return *r, nil }
func (r *rawValue) Unmarshal(b []byte) error {
	*r = b
	return nil
}

package app

import (
	"context"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	c.called++
	return nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file         string
		wantParseErr *errors.Error
		wantInitErr  *errors.Error
		wantChain    string
		wantCalled   int
		wantValue    []byte
	}{
		"no such file": {
			file:         "testdata/bad_file.json",
			wantParseErr: ErrGenesis,
			wantInitErr:  ErrGenesis,
		},
		"json": {
			file:       "testdata/genesis.json",
			wantChain:  "test-chain-67",
			wantCalled: 1,
			wantValue:  []byte("secret"),
		},
		"toml": {
			file:       "testdata/genesis.toml",
			wantChain:  "test-chain-68",
			wantCalled: 1,
			wantValue:  []byte("toml secret"),
		},
		"yaml": {
			file:       "testdata/genesis.yaml",
			wantChain:  "test-chain-69",
			wantCalled: 1,
			wantValue:  []byte("yaml secret"),
		},
		"broken toml": {
			file:         "testdata/broken.toml",
			wantParseErr: ErrGenesis,
			wantInitErr:  ErrGenesis,
		},
		"initializer failure": {
			file:        "testdata/bad_genesis.json",
			wantInitErr: errors.ErrInput,
			wantChain:   "super-chain-22",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			gen, err := LoadGenesis(tc.file)
			if !tc.wantParseErr.Is(err) {
				t.Fatalf("want %v parse error, got %+v", tc.wantParseErr, err)
			}
			if tc.wantParseErr == nil {
				assert.Equal(t, tc.wantChain, gen.ChainID)
			}

			c := new(countInit)
			init := ChainInitializers(dummyInit{}, c)
			s := NewStoreApp("foo", iavl.NewMemCommitStore(), weave.NewQueryRouter(), context.Background())
			assert.Equal(t, "", s.GetChainID())

			if err := s.LoadGenesis(tc.file, init); !tc.wantInitErr.Is(err) {
				t.Fatalf("want %v init error, got %+v", tc.wantInitErr, err)
			}
			assert.Equal(t, tc.wantChain, s.GetChainID())
			assert.Equal(t, tc.wantCalled, c.called)

			val, err := s.DeliverStore().Get([]byte(dummyKey))
			require.NoError(t, err)
			assert.Equal(t, tc.wantValue, val)
		})
	}
}

func TestGenesisLoadedOnce(t *testing.T) {
	s := NewStoreApp("foo", iavl.NewMemCommitStore(), weave.NewQueryRouter(), context.Background())
	require.NoError(t, s.LoadGenesis("testdata/genesis.json", dummyInit{}))

	err := s.LoadGenesis("testdata/genesis.toml", dummyInit{})
	assert.True(t, ErrGenesis.Is(err), "%+v", err)
	assert.Equal(t, "test-chain-67", s.GetChainID())
}

func TestSaveChainID(t *testing.T) {
	s := NewStoreApp("foo", iavl.NewMemCommitStore(), weave.NewQueryRouter(), context.Background())
	db := s.DeliverStore()

	err := saveChainID(db, "bad")
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	id, err := loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "", id)

	require.NoError(t, saveChainID(db, "test-chain-1"))
	err = saveChainID(db, "test-chain-2")
	assert.True(t, errors.ErrImmutable.Is(err), "%+v", err)

	id, err = loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "test-chain-1", id)
}

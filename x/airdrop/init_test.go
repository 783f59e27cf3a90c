package airdrop

import (
	"encoding/json"
	"strings"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/gconf"
	"github.com/iov-one/tokendrop/store"
	"github.com/iov-one/tokendrop/weavetest"
	"github.com/iov-one/tokendrop/x/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	owner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		genesis      string
		noToken      bool
		wantErr      *errors.Error
		wantRegistry bool
		wantPaused   bool
		wantMaxBatch uint32
	}{
		"registry only": {
			genesis:      `{"airdrop": {"owner": "OWNER", "ledger": "SOFT"}}`,
			wantRegistry: true,
		},
		"paused registry with configuration": {
			genesis: `{
				"airdrop": {"owner": "OWNER", "ledger": "SOFT", "paused": true},
				"conf": {"airdrop": {"metadata": {"schema": 1}, "owner": "OWNER", "max_batch": 250}}
			}`,
			wantRegistry: true,
			wantPaused:   true,
			wantMaxBatch: 250,
		},
		"nothing to do": {
			genesis: `{}`,
		},
		"invalid ledger ticker": {
			genesis: `{"airdrop": {"owner": "OWNER", "ledger": "soft"}}`,
			wantErr: errors.ErrInput,
		},
		"registry of another token": {
			genesis: `{"airdrop": {"owner": "OWNER", "ledger": "SOFU"}}`,
			wantErr: errors.ErrInput,
		},
		"registry without a token": {
			genesis: `{"airdrop": {"owner": "OWNER", "ledger": "SOFT"}}`,
			noToken: true,
			wantErr: errors.ErrInput,
		},
		"missing owner": {
			genesis: `{"airdrop": {"ledger": "SOFT"}}`,
			wantErr: errors.ErrInput,
		},
		"configuration without owner": {
			genesis: `{"conf": {"airdrop": {"metadata": {"schema": 1}, "max_batch": 250}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw := strings.Replace(tc.genesis, "OWNER", owner.String(), -1)
			var opts weave.Options
			require.NoError(t, json.Unmarshal([]byte(raw), &opts))

			db := store.MemStore()
			if !tc.noToken {
				token := &ledger.Token{Name: "Simple OFT", Symbol: "SOFT", TotalSupply: coin.Tokens(1000)}
				require.NoError(t, ledger.NewController().Create(db, owner, token))
			}
			err := Initializer{}.FromGenesis(opts, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}

			r, err := NewController(nil).Registry(db)
			if !tc.wantRegistry {
				assert.True(t, errors.ErrNotFound.Is(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, owner, r.Owner)
				assert.Equal(t, "SOFT", r.Ledger)
				assert.Equal(t, tc.wantPaused, r.Paused)
			}

			var conf Configuration
			err = gconf.Load(db, confPkg, &conf)
			if tc.wantMaxBatch == 0 {
				assert.True(t, errors.ErrNotFound.Is(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantMaxBatch, conf.MaxBatch)
			}
		})
	}
}

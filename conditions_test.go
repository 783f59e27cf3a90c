package weave_test

import (
	"encoding/json"
	"testing"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond     weave.Condition
		wantExt  string
		wantType string
		wantData []byte
		wantErr  *errors.Error
	}{
		"registry": {
			cond:     weave.NewCondition("airdrop", "registry", []byte("SOFT")),
			wantExt:  "airdrop",
			wantType: "registry",
			wantData: []byte("SOFT"),
		},
		"newline in data": {
			cond:     weave.NewCondition("sigs", "ed25519", []byte{'\n', 0}),
			wantExt:  "sigs",
			wantType: "ed25519",
			wantData: []byte{'\n', 0},
		},
		"no separators": {
			cond:    weave.Condition("no-slashes"),
			wantErr: errors.ErrInput,
		},
		"extension too short": {
			cond:    weave.NewCondition("x", "registry", []byte("SOFT")),
			wantErr: errors.ErrInput,
		},
		"no data": {
			cond:    weave.NewCondition("airdrop", "registry", nil),
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.True(t, tc.wantErr.Is(tc.cond.Validate()))
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantType, typ)
			assert.Equal(t, tc.wantData, data)
		})
	}
}

func TestConditionJSON(t *testing.T) {
	registry := weave.NewCondition("airdrop", "registry", []byte("SOFT"))

	raw, err := json.Marshal(registry)
	require.NoError(t, err)
	assert.Equal(t, `"airdrop/registry/534F4654"`, string(raw))

	var got weave.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, registry.Equals(got))

	raw, err = json.Marshal(weave.Condition(nil))
	require.NoError(t, err)
	assert.Equal(t, `""`, string(raw))
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Nil(t, got)

	for _, bad := range []string{`"airdrop/534F4654"`, `"airdrop/registry/SOFT"`, `42`} {
		err := json.Unmarshal([]byte(bad), &got)
		assert.True(t, errors.ErrInput.Is(err), bad)
	}
}

func TestConditionString(t *testing.T) {
	cond := weave.NewCondition("sigs", "ed25519", []byte{0xab, 0x01})
	assert.Equal(t, "sigs/ed25519/AB01", cond.String())
	assert.Equal(t, "invalid condition 61", weave.Condition("a").String())
}

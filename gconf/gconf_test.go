package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/store"
	"github.com/iov-one/tokendrop/weavetest"
	"github.com/iov-one/tokendrop/weavetest/assert"
)

type testConfig struct {
	Owner weave.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Num   int64         `protobuf:"varint,2,opt,name=num,proto3" json:"num,omitempty"`
	Str   string        `protobuf:"bytes,3,opt,name=str,proto3" json:"str,omitempty"`
}

type testConfigCodec testConfig

func (m *testConfigCodec) Reset()         { *m = testConfigCodec{} }
func (m *testConfigCodec) String() string { return proto.CompactTextString(m) }
func (*testConfigCodec) ProtoMessage()    {}

func (c *testConfig) Marshal() ([]byte, error) { return proto.Marshal((*testConfigCodec)(c)) }
func (c *testConfig) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*testConfigCodec)(c)) }

func (c *testConfig) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return nil
}

func (c *testConfig) GetOwner() weave.Address { return c.Owner }

type testConfigMsg struct {
	Patch *testConfig
}

func (*testConfigMsg) Path() string {
	return "test/update_configuration"
}

func (*testConfigMsg) Marshal() ([]byte, error) {
	panic("not implemented")
}

func (*testConfigMsg) Unmarshal(b []byte) error {
	panic("not implemented")
}

func (m *testConfigMsg) Validate() error {
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()
	addr := weavetest.RandomAddr(t)

	var got testConfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "test", &got))

	invalid := &testConfig{Owner: addr, Num: -1}
	assert.IsErr(t, errors.ErrInput, Save(db, "test", invalid))

	want := &testConfig{Owner: addr, Num: 42, Str: "foo"}
	assert.Nil(t, Save(db, "test", want))
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, want, &got)

	// configurations are namespaced by package
	var other testConfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "other", &other))
}

func TestInitConfig(t *testing.T) {
	addr := weavetest.RandomAddr(t)
	raw, err := json.Marshal(map[string]interface{}{
		"conf": map[string]interface{}{
			"test": map[string]interface{}{
				"owner": addr,
				"num":   7,
			},
		},
	})
	assert.Nil(t, err)
	var opts weave.Options
	assert.Nil(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	var conf testConfig
	assert.Nil(t, InitConfig(db, opts, "test", &conf))

	var loaded testConfig
	assert.Nil(t, Load(db, "test", &loaded))
	assert.Equal(t, int64(7), loaded.Num)
	assert.Equal(t, addr, loaded.Owner)

	err = InitConfig(store.MemStore(), opts, "missing", &conf)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestUpdateConfigurationHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	admin := weavetest.NewCondition()
	stranger := weavetest.NewCondition()

	cases := map[string]struct {
		init       *testConfig
		initAdmin  func(weave.ReadOnlyKVStore) (weave.Address, error)
		patch      *testConfig
		signer     weave.Condition
		wantErr    *errors.Error
		wantConfig *testConfig
	}{
		"owner can patch": {
			init:       &testConfig{Owner: owner.Address(), Num: 5, Str: "foo"},
			patch:      &testConfig{Num: 9},
			signer:     owner,
			wantConfig: &testConfig{Owner: owner.Address(), Num: 9, Str: "foo"},
		},
		"stranger cannot patch": {
			init:    &testConfig{Owner: owner.Address(), Num: 5},
			patch:   &testConfig{Num: 9},
			signer:  stranger,
			wantErr: errors.ErrUnauthorized,
		},
		"missing configuration is created by the init admin": {
			initAdmin: func(weave.ReadOnlyKVStore) (weave.Address, error) {
				return admin.Address(), nil
			},
			patch:      &testConfig{Owner: owner.Address(), Num: 1},
			signer:     admin,
			wantConfig: &testConfig{Owner: owner.Address(), Num: 1},
		},
		"missing configuration without init admin": {
			patch:   &testConfig{Owner: owner.Address(), Num: 1},
			signer:  admin,
			wantErr: errors.ErrUnauthorized,
		},
		"patch is required": {
			init:    &testConfig{Owner: owner.Address(), Num: 5},
			signer:  owner,
			wantErr: errors.ErrEmpty,
		},
		"invalid patch result is rejected": {
			init:    &testConfig{Owner: owner.Address(), Num: 5},
			patch:   &testConfig{Num: -3},
			signer:  owner,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.init != nil {
				assert.Nil(t, Save(db, "test", tc.init))
			}
			auth := &weavetest.Auth{Signer: tc.signer}
			h := NewUpdateConfigurationHandler("test", &testConfig{}, auth, tc.initAdmin)
			tx := &weavetest.Tx{Msg: &testConfigMsg{Patch: tc.patch}}

			_, err := h.Deliver(context.Background(), db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantConfig == nil {
				return
			}
			var got testConfig
			assert.Nil(t, Load(db, "test", &got))
			assert.Equal(t, tc.wantConfig, &got)
		})
	}
}

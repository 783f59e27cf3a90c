package airdrop

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/gconf"
	"github.com/iov-one/tokendrop/x"
)

const confPkg = "airdrop"

// Configuration holds the tunable parameters of the airdrop. It is stored
// with gconf and can be changed by its Owner.
//
// MaxBatch limits the number of recipients registered by a single message.
// Zero means no limit.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	MaxBatch uint32          `protobuf:"varint,3,opt,name=max_batch,json=maxBatch,proto3" json:"max_batch,omitempty"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

type configurationCodec Configuration

func (m *configurationCodec) Reset()         { *m = configurationCodec{} }
func (m *configurationCodec) String() string { return proto.CompactTextString(m) }
func (*configurationCodec) ProtoMessage()    {}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationCodec)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationCodec)(c))
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	return errs
}

func (c *Configuration) GetOwner() weave.Address {
	return c.Owner
}

// loadConf returns the stored configuration, or a zero configuration when
// none was saved.
func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &Configuration{}, nil
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// UpdateConfigurationMsg changes the non zero fields of the configuration
// to the values of Patch.
type UpdateConfigurationMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration  `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

type updateConfigurationMsgCodec UpdateConfigurationMsg

func (m *updateConfigurationMsgCodec) Reset()         { *m = updateConfigurationMsgCodec{} }
func (m *updateConfigurationMsgCodec) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsgCodec) ProtoMessage()    {}

func (msg *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateConfigurationMsgCodec)(msg))
}

func (msg *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updateConfigurationMsgCodec)(msg))
}

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (msg *UpdateConfigurationMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if msg.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	if len(msg.Patch.Owner) != 0 {
		if err := msg.Patch.Owner.Validate(); err != nil {
			return errors.Field("Patch", err, "owner")
		}
	}
	return nil
}

// NewConfigHandler returns a handler of UpdateConfigurationMsg. Without a
// stored configuration only the registry owner can create one.
func NewConfigHandler(auth x.Authenticator) weave.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth, registryOwner)
}

func registryOwner(db weave.ReadOnlyKVStore) (weave.Address, error) {
	var r Registry
	if err := NewRegistryBucket().One(db, registryKey, &r); err != nil {
		return nil, err
	}
	return r.Owner, nil
}

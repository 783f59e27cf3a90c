package weave

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokendrop/errors"
)

// Metadata is embedded in every persisted model and message. It carries the
// schema version the entity was written with.
type Metadata struct {
	Schema uint32 `protobuf:"varint,1,opt,name=schema,proto3" json:"schema,omitempty"`
}

// metadataCodec has the wire layout of Metadata without its methods, so the
// reflection based codec never calls back into Metadata.Marshal.
type metadataCodec Metadata

func (m *metadataCodec) Reset()         { *m = metadataCodec{} }
func (m *metadataCodec) String() string { return proto.CompactTextString(m) }
func (*metadataCodec) ProtoMessage()    {}

func (m *Metadata) Marshal() ([]byte, error) {
	return proto.Marshal((*metadataCodec)(m))
}

func (m *Metadata) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*metadataCodec)(m))
}

func (m *Metadata) String() string {
	return proto.CompactTextString((*metadataCodec)(m))
}

// Validate returns an error if the metadata is missing or declares an
// unknown schema version.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be at least 1")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.Model interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

package sigs

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the nonce of the main signer by the given
// value, invalidating any pre-signed transactions with a lower sequence.
type BumpSequenceMsg struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Increment uint32          `protobuf:"varint,2,opt,name=increment,proto3" json:"increment,omitempty"`
}

var _ weave.Msg = (*BumpSequenceMsg)(nil)

type bumpSequenceMsgCodec BumpSequenceMsg

func (m *bumpSequenceMsgCodec) Reset()         { *m = bumpSequenceMsgCodec{} }
func (m *bumpSequenceMsgCodec) String() string { return proto.CompactTextString(m) }
func (*bumpSequenceMsgCodec) ProtoMessage()    {}

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*bumpSequenceMsgCodec)(msg))
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*bumpSequenceMsgCodec)(msg))
}

func (msg *BumpSequenceMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}

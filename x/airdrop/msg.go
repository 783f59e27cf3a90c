package airdrop

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
)

const (
	pathSetRecipientsMsg       = "airdrop/set_recipients"
	pathClaimMsg               = "airdrop/claim"
	pathPauseMsg               = "airdrop/pause"
	pathUnpauseMsg             = "airdrop/unpause"
	pathSweepMsg               = "airdrop/sweep"
	pathUpdateConfigurationMsg = "airdrop/update_configuration"
)

// SetRecipientsMsg registers Amounts[i] as the entitlement of
// Addresses[i]. Both lists must have the same length.
type SetRecipientsMsg struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Addresses []weave.Address `protobuf:"bytes,2,rep,name=addresses,proto3" json:"addresses,omitempty"`
	Amounts   []coin.Amount   `protobuf:"bytes,3,rep,name=amounts,proto3" json:"amounts,omitempty"`
}

var _ weave.Msg = (*SetRecipientsMsg)(nil)

type setRecipientsMsgCodec SetRecipientsMsg

func (m *setRecipientsMsgCodec) Reset()         { *m = setRecipientsMsgCodec{} }
func (m *setRecipientsMsgCodec) String() string { return proto.CompactTextString(m) }
func (*setRecipientsMsgCodec) ProtoMessage()    {}

func (msg *SetRecipientsMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*setRecipientsMsgCodec)(msg))
}

func (msg *SetRecipientsMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*setRecipientsMsgCodec)(msg))
}

func (SetRecipientsMsg) Path() string {
	return pathSetRecipientsMsg
}

// Validate checks each address and amount. Length mismatch and duplicates
// are reported when the message is executed, after the owner was
// authenticated.
func (msg *SetRecipientsMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	var errs error
	for i, a := range msg.Addresses {
		if err := a.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "address %d", i))
		}
	}
	for i, a := range msg.Amounts {
		if err := a.Validate(); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "amount %d", i))
		}
	}
	return errs
}

// ClaimMsg transfers the whole entitlement of the main signer to it.
type ClaimMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

// PauseMsg stops all claims until an UnpauseMsg is processed.
type PauseMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

// UnpauseMsg allows claims again.
type UnpauseMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

// SweepMsg moves the whole registry account balance to the owner.
type SweepMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

var (
	_ weave.Msg = (*ClaimMsg)(nil)
	_ weave.Msg = (*PauseMsg)(nil)
	_ weave.Msg = (*UnpauseMsg)(nil)
	_ weave.Msg = (*SweepMsg)(nil)
)

type claimMsgCodec ClaimMsg

func (m *claimMsgCodec) Reset()         { *m = claimMsgCodec{} }
func (m *claimMsgCodec) String() string { return proto.CompactTextString(m) }
func (*claimMsgCodec) ProtoMessage()    {}

func (msg *ClaimMsg) Marshal() ([]byte, error)   { return proto.Marshal((*claimMsgCodec)(msg)) }
func (msg *ClaimMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*claimMsgCodec)(msg)) }
func (msg *ClaimMsg) Validate() error            { return msg.Metadata.Validate() }
func (ClaimMsg) Path() string                    { return pathClaimMsg }

type pauseMsgCodec PauseMsg

func (m *pauseMsgCodec) Reset()         { *m = pauseMsgCodec{} }
func (m *pauseMsgCodec) String() string { return proto.CompactTextString(m) }
func (*pauseMsgCodec) ProtoMessage()    {}

func (msg *PauseMsg) Marshal() ([]byte, error)   { return proto.Marshal((*pauseMsgCodec)(msg)) }
func (msg *PauseMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*pauseMsgCodec)(msg)) }
func (msg *PauseMsg) Validate() error            { return msg.Metadata.Validate() }
func (PauseMsg) Path() string                    { return pathPauseMsg }

type unpauseMsgCodec UnpauseMsg

func (m *unpauseMsgCodec) Reset()         { *m = unpauseMsgCodec{} }
func (m *unpauseMsgCodec) String() string { return proto.CompactTextString(m) }
func (*unpauseMsgCodec) ProtoMessage()    {}

func (msg *UnpauseMsg) Marshal() ([]byte, error)   { return proto.Marshal((*unpauseMsgCodec)(msg)) }
func (msg *UnpauseMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*unpauseMsgCodec)(msg)) }
func (msg *UnpauseMsg) Validate() error            { return msg.Metadata.Validate() }
func (UnpauseMsg) Path() string                    { return pathUnpauseMsg }

type sweepMsgCodec SweepMsg

func (m *sweepMsgCodec) Reset()         { *m = sweepMsgCodec{} }
func (m *sweepMsgCodec) String() string { return proto.CompactTextString(m) }
func (*sweepMsgCodec) ProtoMessage()    {}

func (msg *SweepMsg) Marshal() ([]byte, error)   { return proto.Marshal((*sweepMsgCodec)(msg)) }
func (msg *SweepMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*sweepMsgCodec)(msg)) }
func (msg *SweepMsg) Validate() error            { return msg.Metadata.Validate() }
func (SweepMsg) Path() string                    { return pathSweepMsg }

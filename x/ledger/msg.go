package ledger

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
)

const (
	pathTransferMsg = "ledger/transfer"
	pathBurnMsg     = "ledger/burn"

	maxMemoSize = 128
)

// TransferMsg moves Amount base units from Source to Destination. The
// transaction must be signed by the Source.
type TransferMsg struct {
	Metadata    *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source      weave.Address   `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
	Destination weave.Address   `protobuf:"bytes,3,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      coin.Amount     `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount"`
	Memo        string          `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ weave.Msg = (*TransferMsg)(nil)

type transferMsgCodec TransferMsg

func (m *transferMsgCodec) Reset()         { *m = transferMsgCodec{} }
func (m *transferMsgCodec) String() string { return proto.CompactTextString(m) }
func (*transferMsgCodec) ProtoMessage()    {}

func (msg *TransferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsgCodec)(msg))
}

func (msg *TransferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transferMsgCodec)(msg))
}

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (msg *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", msg.Source.Validate())
	errs = errors.AppendField(errs, "Destination", msg.Destination.Validate())
	errs = errors.AppendField(errs, "Amount", msg.Amount.Validate())
	if len(msg.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "too long"))
	}
	return errs
}

// BurnMsg destroys Amount base units held by Source.
type BurnMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source   weave.Address   `protobuf:"bytes,2,opt,name=source,proto3" json:"source,omitempty"`
	Amount   coin.Amount     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount"`
}

var _ weave.Msg = (*BurnMsg)(nil)

type burnMsgCodec BurnMsg

func (m *burnMsgCodec) Reset()         { *m = burnMsgCodec{} }
func (m *burnMsgCodec) String() string { return proto.CompactTextString(m) }
func (*burnMsgCodec) ProtoMessage()    {}

func (msg *BurnMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*burnMsgCodec)(msg))
}

func (msg *BurnMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*burnMsgCodec)(msg))
}

func (BurnMsg) Path() string {
	return pathBurnMsg
}

// Validate does not reject a zero amount. Burning nothing is refused when
// the message is executed.
func (msg *BurnMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	errs = errors.AppendField(errs, "Source", msg.Source.Validate())
	errs = errors.AppendField(errs, "Amount", msg.Amount.Validate())
	return errs
}

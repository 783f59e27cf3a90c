package dropd

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/x/airdrop"
	"github.com/iov-one/tokendrop/x/ledger"
	"github.com/iov-one/tokendrop/x/sigs"
)

// Tx is the transaction processed by the application. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures             []*sigs.StdSignature            `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	TransferMsg            *ledger.TransferMsg             `protobuf:"bytes,2,opt,name=transfer_msg,json=transferMsg,proto3" json:"transfer_msg,omitempty"`
	BurnMsg                *ledger.BurnMsg                 `protobuf:"bytes,3,opt,name=burn_msg,json=burnMsg,proto3" json:"burn_msg,omitempty"`
	SetRecipientsMsg       *airdrop.SetRecipientsMsg       `protobuf:"bytes,4,opt,name=set_recipients_msg,json=setRecipientsMsg,proto3" json:"set_recipients_msg,omitempty"`
	ClaimMsg               *airdrop.ClaimMsg               `protobuf:"bytes,5,opt,name=claim_msg,json=claimMsg,proto3" json:"claim_msg,omitempty"`
	PauseMsg               *airdrop.PauseMsg               `protobuf:"bytes,6,opt,name=pause_msg,json=pauseMsg,proto3" json:"pause_msg,omitempty"`
	UnpauseMsg             *airdrop.UnpauseMsg             `protobuf:"bytes,7,opt,name=unpause_msg,json=unpauseMsg,proto3" json:"unpause_msg,omitempty"`
	SweepMsg               *airdrop.SweepMsg               `protobuf:"bytes,8,opt,name=sweep_msg,json=sweepMsg,proto3" json:"sweep_msg,omitempty"`
	UpdateConfigurationMsg *airdrop.UpdateConfigurationMsg `protobuf:"bytes,9,opt,name=update_configuration_msg,json=updateConfigurationMsg,proto3" json:"update_configuration_msg,omitempty"`
	BumpSequenceMsg        *sigs.BumpSequenceMsg           `protobuf:"bytes,10,opt,name=bump_sequence_msg,json=bumpSequenceMsg,proto3" json:"bump_sequence_msg,omitempty"`
}

// make sure tx fulfills all interfaces
var (
	_ weave.Tx      = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

type txCodec Tx

func (m *txCodec) Reset()         { *m = txCodec{} }
func (m *txCodec) String() string { return proto.CompactTextString(m) }
func (*txCodec) ProtoMessage()    {}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txCodec)(tx))
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txCodec)(tx))
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	var msgs []weave.Msg
	add := func(present bool, m weave.Msg) {
		if present {
			msgs = append(msgs, m)
		}
	}
	add(tx.TransferMsg != nil, tx.TransferMsg)
	add(tx.BurnMsg != nil, tx.BurnMsg)
	add(tx.SetRecipientsMsg != nil, tx.SetRecipientsMsg)
	add(tx.ClaimMsg != nil, tx.ClaimMsg)
	add(tx.PauseMsg != nil, tx.PauseMsg)
	add(tx.UnpauseMsg != nil, tx.UnpauseMsg)
	add(tx.SweepMsg != nil, tx.SweepMsg)
	add(tx.UpdateConfigurationMsg != nil, tx.UpdateConfigurationMsg)
	add(tx.BumpSequenceMsg != nil, tx.BumpSequenceMsg)

	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "%d messages in one transaction", len(msgs))
	}
}

// SetMsg puts the message in its field. It fails with ErrMsg for messages
// the application does not route.
func (tx *Tx) SetMsg(msg weave.Msg) error {
	switch m := msg.(type) {
	case *ledger.TransferMsg:
		tx.TransferMsg = m
	case *ledger.BurnMsg:
		tx.BurnMsg = m
	case *airdrop.SetRecipientsMsg:
		tx.SetRecipientsMsg = m
	case *airdrop.ClaimMsg:
		tx.ClaimMsg = m
	case *airdrop.PauseMsg:
		tx.PauseMsg = m
	case *airdrop.UnpauseMsg:
		tx.UnpauseMsg = m
	case *airdrop.SweepMsg:
		tx.SweepMsg = m
	case *airdrop.UpdateConfigurationMsg:
		tx.UpdateConfigurationMsg = m
	case *sigs.BumpSequenceMsg:
		tx.BumpSequenceMsg = m
	default:
		return errors.Wrapf(errors.ErrMsg, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

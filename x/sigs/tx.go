package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokendrop/crypto"
	"github.com/iov-one/tokendrop/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	// Equivalent to weave.MustMarshal(tx.GetMsg()) if Msg has a deterministic
	// serialization.
	//
	// Helpful to store original, unparsed bytes here, just in case.
	GetSignBytes() ([]byte, error)

	// Signatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature together with the public key and the
// sequence it was created for.
type StdSignature struct {
	Sequence  int64             `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
	Pubkey    *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,4,opt,name=signature,proto3" json:"signature,omitempty"`
}

type stdSignatureCodec StdSignature

func (m *stdSignatureCodec) Reset()         { *m = stdSignatureCodec{} }
func (m *stdSignatureCodec) String() string { return proto.CompactTextString(m) }
func (*stdSignatureCodec) ProtoMessage()    {}

func (s *StdSignature) Marshal() ([]byte, error) { return proto.Marshal((*stdSignatureCodec)(s)) }

func (s *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignatureCodec)(s))
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

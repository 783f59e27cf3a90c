package crypto

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
)

// ExtensionName is used for the conditions we get from signatures
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey holds the raw bytes of an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// PrivateKey holds the raw bytes of an ed25519 private key (seed and
// public key, 64 bytes).
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Signature holds an ed25519 signature.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

type publicKeyCodec PublicKey

func (m *publicKeyCodec) Reset()         { *m = publicKeyCodec{} }
func (m *publicKeyCodec) String() string { return proto.CompactTextString(m) }
func (*publicKeyCodec) ProtoMessage()    {}

type privateKeyCodec PrivateKey

func (m *privateKeyCodec) Reset()         { *m = privateKeyCodec{} }
func (m *privateKeyCodec) String() string { return proto.CompactTextString(m) }
func (*privateKeyCodec) ProtoMessage()    {}

type signatureCodec Signature

func (m *signatureCodec) Reset()         { *m = signatureCodec{} }
func (m *signatureCodec) String() string { return proto.CompactTextString(m) }
func (*signatureCodec) ProtoMessage()    {}

func (m *PublicKey) Marshal() ([]byte, error) { return proto.Marshal((*publicKeyCodec)(m)) }

func (m *PublicKey) Unmarshal(raw []byte) error {
	return errors.Wrap(proto.Unmarshal(raw, (*publicKeyCodec)(m)), "public key")
}

func (m *PrivateKey) Marshal() ([]byte, error) { return proto.Marshal((*privateKeyCodec)(m)) }

func (m *PrivateKey) Unmarshal(raw []byte) error {
	return errors.Wrap(proto.Unmarshal(raw, (*privateKeyCodec)(m)), "private key")
}

func (m *Signature) Marshal() ([]byte, error) { return proto.Marshal((*signatureCodec)(m)) }

func (m *Signature) Unmarshal(raw []byte) error {
	return errors.Wrap(proto.Unmarshal(raw, (*signatureCodec)(m)), "signature")
}

// GetEd25519 returns the signature bytes, safe to call on nil.
func (m *Signature) GetEd25519() []byte {
	if m == nil {
		return nil
	}
	return m.Ed25519
}

// Address is a shortcut for Condition().Address()
func (p *PublicKey) Address() weave.Address {
	return p.Condition().Address()
}

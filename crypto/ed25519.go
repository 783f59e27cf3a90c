package crypto

import (
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/errors"
	"golang.org/x/crypto/ed25519"
)

var _ Signer = (*PrivateKey)(nil)

// Condition is "sigs/ed25519/<key>", or nil for an empty key. Its address
// is the account of the key holder.
func (p *PublicKey) Condition() weave.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return weave.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Verify reports whether sig signs message with this key. Malformed keys
// and signatures never verify.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	raw := sig.GetEd25519()
	return len(raw) == ed25519.SignatureSize && ed25519.Verify(p.Ed25519, message, raw)
}

func (p *PrivateKey) valid() bool {
	return p != nil && len(p.Ed25519) == ed25519.PrivateKeySize
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if !p.valid() {
		return nil, errors.Wrap(errors.ErrInput, "malformed ed25519 private key")
	}
	return &Signature{Ed25519: ed25519.Sign(p.Ed25519, message)}, nil
}

// PublicKey is nil for a malformed private key.
func (p *PrivateKey) PublicKey() *PublicKey {
	if !p.valid() {
		return nil
	}
	return &PublicKey{Ed25519: ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)}
}

// GenPrivKeyEd25519 returns a key from crypto/rand. It panics if the
// system has no randomness to offer.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed derives the key from a 32 byte seed and panics on
// any other length. Genesis fixtures and tests use it for fixed keys.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

package crypto

import (
	"strings"

	"github.com/iov-one/tokendrop/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	bip39 "github.com/tyler-smith/go-bip39"
)

// DefaultDerivationPath is the SLIP-0010 path used for operator keys when
// no other path is requested.
const DefaultDerivationPath = "m/44'/234'/0'"

// NewMnemonic returns a fresh 24 word recovery phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", errors.Wrap(err, "entropy")
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "mnemonic")
	}
	return mnemonic, nil
}

// KeyFromMnemonic derives an ed25519 private key from a bip39 recovery
// phrase using the given hardened derivation path.
func KeyFromMnemonic(mnemonic, path string) (*PrivateKey, error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.Wrap(errors.ErrInput, "invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")
	return KeyFromSeed(seed, path)
}

// KeyFromSeed derives an ed25519 private key from a raw bip39 seed.
func KeyFromSeed(seed []byte, path string) (*PrivateKey, error) {
	if path == "" {
		path = DefaultDerivationPath
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	raw := k.RawSeed()
	return PrivKeyEd25519FromSeed(raw[:]), nil
}

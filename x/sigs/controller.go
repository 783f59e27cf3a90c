package sigs

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/crypto"
	"github.com/iov-one/tokendrop/errors"
)

// SignCodeV1 prefixes the signed document. Changing the document layout
// requires a new code.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures verifies every signature of tx and bumps the sequence
// of each signer. It returns the signer conditions in signature order. A
// single invalid signature fails the whole transaction.
func VerifyTxSignatures(db weave.KVStore, tx SignedTx, chainID string) ([]weave.Condition, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	sigs := tx.GetSignatures()
	signers := make([]weave.Condition, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = VerifySignature(db, sig, signBytes, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return signers, nil
}

// VerifySignature checks a single signature of signBytes. The signature
// sequence must equal the one stored for the public key, which is then
// incremented. Unknown keys start at sequence zero.
func VerifySignature(db weave.KVStore, sig *StdSignature, signBytes []byte, chainID string) (weave.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	doc, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	b := NewBucket()
	obj, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	user := AsUser(obj)
	if !user.Pubkey.Verify(doc, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := b.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	return user.Pubkey.Condition(), nil
}

/*
BuildSignBytes returns the digest a signer signs. It is the sha512 of

  code    | len(chainID) | chainID | sequence         | signBytes
  4 bytes | 1 byte       | ascii   | 8 bytes, big end | serialized tx

A fixed size digest lets hardware wallets sign any transaction.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrapf(ErrInvalidSequence, "negative sequence %d", seq)
	}
	if !weave.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	var doc bytes.Buffer
	doc.Grow(len(SignCodeV1) + 1 + len(chainID) + 8 + len(signBytes))
	doc.Write(SignCodeV1)
	doc.WriteByte(uint8(len(chainID)))
	doc.WriteString(chainID)
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], uint64(seq))
	doc.Write(seqBytes[:])
	doc.Write(signBytes)

	digest := sha512.Sum512(doc.Bytes())
	return digest[:], nil
}

// SignTx signs tx for the given chain and sequence. The transaction must
// not carry signatures yet, or GetSignBytes must ignore them.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	doc, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(doc)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

package sigs

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/crypto"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/orm"
)

// BucketName prefixes the signer state.
const BucketName = "sigs"

// UserData is the nonce state kept for every public key that signed a
// transaction.
type UserData struct {
	Metadata *weave.Metadata   `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

type userDataCodec UserData

func (m *userDataCodec) Reset()         { *m = userDataCodec{} }
func (m *userDataCodec) String() string { return proto.CompactTextString(m) }
func (*userDataCodec) ProtoMessage()    {}

func (u *UserData) Marshal() ([]byte, error) { return proto.Marshal((*userDataCodec)(u)) }

func (u *UserData) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*userDataCodec)(u))
}

var _ orm.Model = (*UserData)(nil)

// Validate allows a zero sequence without a key, which is how a user looks
// before its first signature.
func (u *UserData) Validate() error {
	errs := errors.AppendField(nil, "Metadata", u.Metadata.Validate())
	switch {
	case u.Sequence < 0:
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	case u.Sequence > 0 && u.Pubkey == nil:
		errs = errors.Append(errs, errors.Field("Pubkey", errors.ErrEmpty, "required with sequence %d", u.Sequence))
	}
	return errs
}

func (u *UserData) Copy() orm.Model {
	c := *u
	c.Metadata = u.Metadata.Copy()
	return &c
}

// maxSequence is Number.MAX_SAFE_INTEGER, the largest sequence a
// javascript client still counts exactly.
const maxSequence = 1<<53 - 1

// CheckAndIncrementSequence accepts only the current sequence and moves
// past it.
func (u *UserData) CheckAndIncrementSequence(got int64) error {
	switch {
	case got != u.Sequence:
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, got)
	case u.Sequence >= maxSequence:
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	u.Sequence++
	return nil
}

// AsUser returns the UserData of obj, or nil for a missing object.
func AsUser(obj orm.Object) *UserData {
	if obj == nil {
		return nil
	}
	u, _ := obj.Value().(*UserData)
	return u
}

// NewUser returns the state of a key that never signed, stored under the
// address of pubkey.
func NewUser(pubkey *crypto.PublicKey) orm.Object {
	u := &UserData{Metadata: &weave.Metadata{Schema: 1}, Pubkey: pubkey}
	if pubkey == nil {
		return orm.NewSimpleObj(nil, u)
	}
	return orm.NewSimpleObj(pubkey.Address(), u)
}

// Bucket keeps one UserData per signer address.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{Bucket: orm.NewBucket(BucketName, NewUser(nil))}
}

// GetOrCreate returns a new user for a key that has no state yet. The new
// user is not saved.
func (b Bucket) GetOrCreate(db weave.KVStore, pubkey *crypto.PublicKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return NewUser(pubkey), nil
	}
	return obj, nil
}

package airdrop

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/orm"
)

// registryKey is the key of the only registry record.
var registryKey = []byte("registry")

// Registry is the state of the distribution. Ledger is the symbol of the
// token paid out.
type Registry struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Ledger   string          `protobuf:"bytes,3,opt,name=ledger,proto3" json:"ledger,omitempty"`
	Paused   bool            `protobuf:"varint,4,opt,name=paused,proto3" json:"paused,omitempty"`
}

var _ orm.Model = (*Registry)(nil)

type registryCodec Registry

func (m *registryCodec) Reset()         { *m = registryCodec{} }
func (m *registryCodec) String() string { return proto.CompactTextString(m) }
func (*registryCodec) ProtoMessage()    {}

func (r *Registry) Marshal() ([]byte, error) { return proto.Marshal((*registryCodec)(r)) }
func (r *Registry) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*registryCodec)(r)) }

func (r *Registry) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", r.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", r.Owner.Validate())
	if !coin.IsTicker(r.Ledger) {
		errs = errors.Append(errs, errors.Field("Ledger", errors.ErrInput, "invalid ticker"))
	}
	return errs
}

func (r *Registry) Copy() orm.Model {
	return &Registry{
		Metadata: r.Metadata.Copy(),
		Owner:    append(weave.Address(nil), r.Owner...),
		Ledger:   r.Ledger,
		Paused:   r.Paused,
	}
}

// Account returns the ledger address holding the tokens to distribute.
func (r *Registry) Account() weave.Address {
	return RegistryCondition(r.Ledger).Address()
}

// RegistryCondition returns the condition owning the registry account of
// the given token.
func RegistryCondition(symbol string) weave.Condition {
	return weave.NewCondition("airdrop", "registry", []byte(symbol))
}

// Entitlement is the amount a recipient can still claim. A stored
// entitlement, even with a zero amount, marks the recipient as registered.
type Entitlement struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Amount   coin.Amount     `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
}

var _ orm.Model = (*Entitlement)(nil)

type entitlementCodec Entitlement

func (m *entitlementCodec) Reset()         { *m = entitlementCodec{} }
func (m *entitlementCodec) String() string { return proto.CompactTextString(m) }
func (*entitlementCodec) ProtoMessage()    {}

func (e *Entitlement) Marshal() ([]byte, error) { return proto.Marshal((*entitlementCodec)(e)) }
func (e *Entitlement) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*entitlementCodec)(e)) }

func (e *Entitlement) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Amount", e.Amount.Validate())
	return errs
}

func (e *Entitlement) Copy() orm.Model {
	return &Entitlement{
		Metadata: e.Metadata.Copy(),
		Amount:   append(coin.Amount(nil), e.Amount...),
	}
}

// NewRegistryBucket returns the bucket holding the registry record.
func NewRegistryBucket() orm.ModelBucket {
	return orm.NewModelBucket("airdrop", &Registry{})
}

// NewEntitlementBucket returns the bucket of entitlements, keyed by
// recipient address.
func NewEntitlementBucket() orm.ModelBucket {
	return orm.NewModelBucket("recipients", &Entitlement{})
}

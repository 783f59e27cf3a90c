package ledger

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/tokendrop"
	"github.com/iov-one/tokendrop/coin"
	"github.com/iov-one/tokendrop/errors"
	"github.com/iov-one/tokendrop/orm"
)

const (
	maxNameLength     = 64
	maxEndpointLength = 128
)

// Token describes the one fungible token managed by the ledger.
//
// Owner, Endpoint and MainChainID are informational. They are kept so that
// a relay could later be configured, but no code path uses them.
type Token struct {
	Metadata    *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Name        string          `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Symbol      string          `protobuf:"bytes,3,opt,name=symbol,proto3" json:"symbol,omitempty"`
	Decimals    uint32          `protobuf:"varint,4,opt,name=decimals,proto3" json:"decimals,omitempty"`
	TotalSupply coin.Amount     `protobuf:"bytes,5,opt,name=total_supply,json=totalSupply,proto3" json:"total_supply"`
	Owner       weave.Address   `protobuf:"bytes,6,opt,name=owner,proto3" json:"owner,omitempty"`
	Endpoint    string          `protobuf:"bytes,7,opt,name=endpoint,proto3" json:"endpoint,omitempty"`
	MainChainID uint32          `protobuf:"varint,8,opt,name=main_chain_id,json=mainChainId,proto3" json:"main_chain_id,omitempty"`
}

var _ orm.Model = (*Token)(nil)

type tokenCodec Token

func (m *tokenCodec) Reset()         { *m = tokenCodec{} }
func (m *tokenCodec) String() string { return proto.CompactTextString(m) }
func (*tokenCodec) ProtoMessage()    {}

func (t *Token) Marshal() ([]byte, error) { return proto.Marshal((*tokenCodec)(t)) }
func (t *Token) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*tokenCodec)(t)) }

func (t *Token) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", t.Metadata.Validate())
	if t.Name == "" {
		errs = errors.Append(errs, errors.Field("Name", errors.ErrEmpty, "required"))
	} else if len(t.Name) > maxNameLength {
		errs = errors.Append(errs, errors.Field("Name", errors.ErrInput, "too long"))
	}
	if !coin.IsTicker(t.Symbol) {
		errs = errors.Append(errs, errors.Field("Symbol", errors.ErrInput, "invalid ticker"))
	}
	if t.Decimals != coin.Decimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInput, "must be 18"))
	}
	errs = errors.AppendField(errs, "TotalSupply", t.TotalSupply.Validate())
	if len(t.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", t.Owner.Validate())
	}
	if len(t.Endpoint) > maxEndpointLength {
		errs = errors.Append(errs, errors.Field("Endpoint", errors.ErrInput, "too long"))
	}
	return errs
}

func (t *Token) Copy() orm.Model {
	return &Token{
		Metadata:    t.Metadata.Copy(),
		Name:        t.Name,
		Symbol:      t.Symbol,
		Decimals:    t.Decimals,
		TotalSupply: append(coin.Amount(nil), t.TotalSupply...),
		Owner:       append(weave.Address(nil), t.Owner...),
		Endpoint:    t.Endpoint,
		MainChainID: t.MainChainID,
	}
}

// Balance is the amount held by a single address.
type Balance struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Amount   coin.Amount     `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
}

var _ orm.Model = (*Balance)(nil)

type balanceCodec Balance

func (m *balanceCodec) Reset()         { *m = balanceCodec{} }
func (m *balanceCodec) String() string { return proto.CompactTextString(m) }
func (*balanceCodec) ProtoMessage()    {}

func (b *Balance) Marshal() ([]byte, error) { return proto.Marshal((*balanceCodec)(b)) }
func (b *Balance) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*balanceCodec)(b))
}

func (b *Balance) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", b.Metadata.Validate())
	errs = errors.AppendField(errs, "Amount", b.Amount.Validate())
	return errs
}

func (b *Balance) Copy() orm.Model {
	return &Balance{
		Metadata: b.Metadata.Copy(),
		Amount:   append(coin.Amount(nil), b.Amount...),
	}
}

// TokenBucket stores token records under their symbol.
type TokenBucket struct {
	orm.Bucket
}

// NewTokenBucket returns a bucket for token records.
func NewTokenBucket() TokenBucket {
	return TokenBucket{
		Bucket: orm.NewBucket("tokens", orm.NewSimpleObj(nil, &Token{})),
	}
}

// One returns the token with the given symbol or ErrNotFound.
func (b TokenBucket) One(db weave.ReadOnlyKVStore, symbol string) (*Token, error) {
	obj, err := b.Get(db, []byte(symbol))
	if err != nil {
		return nil, err
	}
	if obj == nil || obj.Value() == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "token %q", symbol)
	}
	return obj.Value().(*Token), nil
}

// All returns every stored token, ordered by symbol.
func (b TokenBucket) All(db weave.ReadOnlyKVStore) ([]*Token, error) {
	models, err := b.Query(db, weave.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	tokens := make([]*Token, 0, len(models))
	for _, m := range models {
		obj, err := b.Parse(nil, m.Value)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, obj.Value().(*Token))
	}
	return tokens, nil
}

// Put validates and stores the token under its symbol.
func (b TokenBucket) Put(db weave.KVStore, t *Token) error {
	return b.Save(db, orm.NewSimpleObj([]byte(t.Symbol), t))
}

// NewBalanceBucket returns a bucket for balances, keyed by holder address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("balances", &Balance{})
}

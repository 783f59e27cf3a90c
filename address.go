package weave

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/tokendrop/errors"
	"github.com/mr-tron/base58"
)

// AddressLength is the size of every address. Changing it invalidates all
// stored balances.
const AddressLength = 20

// Address is the truncated sha256 of a Condition. Balances and
// distribution entries are keyed by it.
type Address []byte

// NewAddress returns the address of the given condition bytes. Nil data
// gives a nil address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return sum[:AddressLength]
}

func (a Address) Equals(o Address) bool { return bytes.Equal(a, o) }

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address of %d bytes", len(a))
	}
	return nil
}

// String is the upper case hex form, which ParseAddress reads without a
// prefix.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Base58 is read back by ParseAddress with the "base58:" prefix.
func (a Address) Base58() string {
	return base58.Encode(a)
}

// Bech32 encodes the address with the given human readable part. It is
// read back by ParseAddress with the "bech32:" prefix.
func (a Address) Bech32(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	s, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return s, nil
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// addressDecoders maps a text prefix to the decoder of the rest.
var addressDecoders = map[string]func(string) (Address, error){
	"hex": func(s string) (Address, error) {
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "hex address")
		}
		return b, nil
	},
	"cond": func(s string) (Address, error) {
		c, err := parseCondition(s)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	},
	"bech32": func(s string) (Address, error) {
		_, data, err := bech32.Decode(s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
		}
		b, err := bech32.ConvertBits(data, 5, 8, false)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
		}
		return b, nil
	},
	"base58": func(s string) (Address, error) {
		b, err := base58.Decode(s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "base58 address: %s", err)
		}
		return b, nil
	},
}

// ParseAddress reads an address in one of the forms
//
//   <hex>
//   hex:<hex>
//   cond:<ext>/<type>/<hex data>
//   bech32:<bech32>
//   base58:<base58>
//
// An empty value, with or without a prefix, is a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	decode, ok := addressDecoders[format]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown address format %q", format)
	}
	if value == "" {
		return nil, nil
	}
	addr, err := decode(value)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

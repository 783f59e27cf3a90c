package coin

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/holiman/uint256"
	"github.com/iov-one/tokendrop/errors"
)

const (
	// Decimals is the number of decimal places of every token. One whole
	// token is 10^Decimals base units.
	Decimals = 18

	// maxAmountBytes is the size of the largest representable amount.
	maxAmountBytes = 32
)

// IsTicker is the RegExp to ensure valid token symbols
var IsTicker = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,11}$`).MatchString

// Amount is an unsigned 256 bit integer counting base units. It is stored
// as minimal big endian bytes so that it can be embedded in protobuf
// messages as a bytes field. An empty value is zero.
type Amount []byte

// NewAmount returns an amount of the given base units.
func NewAmount(units uint64) Amount {
	return FromInt(uint256.NewInt(units))
}

// FromInt converts a 256 bit integer into an amount.
func FromInt(i *uint256.Int) Amount {
	if i == nil || i.IsZero() {
		return Amount{}
	}
	return Amount(i.Bytes())
}

// Tokens returns an amount of whole tokens, scaled by 10^Decimals.
func Tokens(whole uint64) Amount {
	v := new(uint256.Int).Mul(uint256.NewInt(whole), unit())
	return FromInt(v)
}

func unit() *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(Decimals))
}

// ParseAmount reads a decimal string of base units.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(errors.ErrAmount, "empty amount")
	}
	var i uint256.Int
	if err := i.SetFromDecimal(s); err != nil {
		return nil, errors.Wrapf(errors.ErrAmount, "%q: %s", s, err)
	}
	return FromInt(&i), nil
}

var humanAmountRx = regexp.MustCompile(`^\s*(\d+)(?:\.(\d+))?\s*([A-Z][A-Z0-9]{2,11})?\s*$`)

// ParseHumanFormat reads a whole token representation like "1.5 SOFT" or
// "100000000" and returns the amount in base units together with the
// optional ticker.
func ParseHumanFormat(h string) (Amount, string, error) {
	m := humanAmountRx.FindStringSubmatch(h)
	if m == nil {
		return nil, "", errors.Wrapf(errors.ErrAmount, "invalid format %q", h)
	}
	whole, frac, ticker := m[1], m[2], m[3]
	if len(frac) > Decimals {
		return nil, "", errors.Wrapf(errors.ErrAmount, "more than %d decimal places", Decimals)
	}
	digits := whole + frac + strings.Repeat("0", Decimals-len(frac))
	// SetFromDecimal refuses leading zeros in some versions.
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return Amount{}, ticker, nil
	}
	a, err := ParseAmount(digits)
	if err != nil {
		return nil, "", err
	}
	return a, ticker, nil
}

// Int returns the amount as a 256 bit integer.
func (a Amount) Int() *uint256.Int {
	return new(uint256.Int).SetBytes(a)
}

// IsZero returns true if the amount represents no value.
func (a Amount) IsZero() bool {
	return a.Int().IsZero()
}

// Cmp compares two amounts. It returns -1 if a < b, 0 if they are equal
// and 1 if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.Int().Cmp(b.Int())
}

// Equals returns true if both amounts represent the same value.
func (a Amount) Equals(b Amount) bool {
	return a.Cmp(b) == 0
}

// Add returns the sum of both amounts. It fails with ErrOverflow if the
// result does not fit in 256 bits.
func (a Amount) Add(b Amount) (Amount, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a.Int(), b.Int())
	if overflow {
		return nil, errors.Wrap(errors.ErrOverflow, "amount addition")
	}
	return FromInt(sum), nil
}

// Sub returns a - b. It fails with ErrInsufficientAmount if b is greater
// than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a.Int(), b.Int())
	if underflow {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", a, b)
	}
	return FromInt(diff), nil
}

// String returns the decimal representation of the base units.
func (a Amount) String() string {
	return a.Int().Dec()
}

// Validate returns an error if the amount is not in its canonical form.
func (a Amount) Validate() error {
	if len(a) > maxAmountBytes {
		return errors.Wrap(errors.ErrAmount, "more than 256 bits")
	}
	if len(a) > 0 && a[0] == 0 {
		return errors.Wrap(errors.ErrAmount, "leading zero byte")
	}
	return nil
}

// MarshalJSON writes the amount as a decimal string, so that values over
// 2^53 survive JavaScript clients.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a decimal string or a JSON number of base units.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	var s string
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return errors.Wrap(errors.ErrAmount, err.Error())
		}
	} else {
		s = string(raw)
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

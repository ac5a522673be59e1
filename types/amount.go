package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// maxUint256 is 2^256 - 1, the largest representable Amount.
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Amount is an unsigned 256-bit integer quantity of the asset.
// All arithmetic is integer-only and never mutates the receiver; every
// operation returns a fresh value. Operations that would produce a
// negative or out-of-range result panic — callers are expected to have
// validated preconditions (balance sufficiency, range) beforehand.
//
// The zero value is a usable zero amount.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for unmarshalers.
type Amount struct {
	i *big.Int // nil means zero; always non-negative and <= maxUint256
}

// Zero returns the zero Amount.
func Zero() Amount { return Amount{} }

// NewAmount creates an Amount from a uint64.
func NewAmount(v uint64) Amount {
	return Amount{i: new(big.Int).SetUint64(v)}
}

// AmountFromString parses a base-10 Amount. Negative values and values
// above 2^256-1 are rejected.
func AmountFromString(s string) (Amount, error) {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("types: parse amount %q: not a base-10 integer", s)
	}
	if i.Sign() < 0 {
		return Amount{}, fmt.Errorf("types: parse amount %q: negative", s)
	}
	if i.Cmp(maxUint256) > 0 {
		return Amount{}, fmt.Errorf("types: parse amount %q: exceeds 2^256-1", s)
	}
	return Amount{i: i}, nil
}

// AmountFromBigInt copies a big.Int into an Amount. Negative values and
// values above 2^256-1 are rejected.
func AmountFromBigInt(i *big.Int) (Amount, error) {
	if i.Sign() < 0 {
		return Amount{}, fmt.Errorf("types: amount %s: negative", i.String())
	}
	if i.Cmp(maxUint256) > 0 {
		return Amount{}, fmt.Errorf("types: amount %s: exceeds 2^256-1", i.String())
	}
	return Amount{i: new(big.Int).Set(i)}, nil
}

// MustAmount is like AmountFromString but panics on error. Use for hardcoded values.
func MustAmount(s string) Amount {
	a, err := AmountFromString(s)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// big returns the underlying value, treating nil as zero. Never returns nil.
// Callers must not mutate the result.
func (a Amount) big() *big.Int {
	if a.i == nil {
		return new(big.Int)
	}
	return a.i
}

// BigInt returns a copy of the amount as a *big.Int.
func (a Amount) BigInt() *big.Int {
	return new(big.Int).Set(a.big())
}

// Arithmetic operations

// Add returns a + other. Panics if the result exceeds 2^256-1.
func (a Amount) Add(other Amount) Amount {
	r := new(big.Int).Add(a.big(), other.big())
	if r.Cmp(maxUint256) > 0 {
		panic("amount: addition overflows uint256")
	}
	return Amount{i: r}
}

// Sub returns a - other. Panics if other > a; Amounts are unsigned.
func (a Amount) Sub(other Amount) Amount {
	if a.big().Cmp(other.big()) < 0 {
		panic("amount: subtraction underflows")
	}
	return Amount{i: new(big.Int).Sub(a.big(), other.big())}
}

// SatSub returns a - other, saturating at zero instead of panicking.
func (a Amount) SatSub(other Amount) Amount {
	if a.big().Cmp(other.big()) <= 0 {
		return Amount{}
	}
	return Amount{i: new(big.Int).Sub(a.big(), other.big())}
}

// Mul returns a * n. The intermediate result may exceed 2^256-1; only a
// following Div is expected to bring it back into range, which is why
// vesting math multiplies before dividing.
func (a Amount) Mul(n uint64) Amount {
	return Amount{i: new(big.Int).Mul(a.big(), new(big.Int).SetUint64(n))}
}

// Div returns a / n using floor division. Panics if n is zero.
func (a Amount) Div(n uint64) Amount {
	if n == 0 {
		panic("amount: division by zero")
	}
	return Amount{i: new(big.Int).Quo(a.big(), new(big.Int).SetUint64(n))}
}

// Comparison methods

// Cmp compares a and other, returning -1, 0, or +1.
func (a Amount) Cmp(other Amount) int { return a.big().Cmp(other.big()) }

// Equal reports whether a == other.
func (a Amount) Equal(other Amount) bool { return a.Cmp(other) == 0 }

// LessThan reports whether a < other.
func (a Amount) LessThan(other Amount) bool { return a.Cmp(other) < 0 }

// GreaterThan reports whether a > other.
func (a Amount) GreaterThan(other Amount) bool { return a.Cmp(other) > 0 }

// IsZero reports whether a is zero.
func (a Amount) IsZero() bool { return a.big().Sign() == 0 }

// IsPositive reports whether a is greater than zero.
func (a Amount) IsPositive() bool { return a.big().Sign() > 0 }

// Min returns the smaller of a and other.
func (a Amount) Min(other Amount) Amount {
	if a.Cmp(other) < 0 {
		return a
	}
	return other
}

// String returns the base-10 representation.
func (a Amount) String() string { return a.big().String() }

// MarshalJSON encodes the amount as a base-10 JSON string, since 256-bit
// values do not fit a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON decodes a base-10 JSON string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("types: decode amount: expected JSON string, got %s", s)
	}

	parsed, err := AmountFromString(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalCBOR encodes the amount as a CBOR integer or bignum.
func (a Amount) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(a.big())
}

// UnmarshalCBOR decodes the amount from a CBOR integer or bignum.
func (a *Amount) UnmarshalCBOR(data []byte) error {
	var i big.Int
	if err := cbor.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("types: decode amount: %w", err)
	}
	if i.Sign() < 0 {
		return fmt.Errorf("types: decode amount: negative value %s", i.String())
	}
	if i.Cmp(maxUint256) > 0 {
		return fmt.Errorf("types: decode amount: exceeds 2^256-1")
	}

	*a = Amount{i: &i}
	return nil
}

// Sum calculates the sum of multiple Amounts.
func Sum(values ...Amount) Amount {
	result := Zero()
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

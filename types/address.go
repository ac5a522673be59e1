// Package types provides common value types used across TokenLedger.
package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// AddressLen is the byte length of a holder address.
const AddressLen = 20

// Address is the fixed-width opaque identity of a holder. The engine never
// interprets its contents; any 20-byte value is a valid holder from genesis.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for unmarshalers.
type Address [AddressLen]byte

// ZeroAddress is the all-zero address. It is an ordinary holder identity:
// mint sources and burn destinations are modeled as tagged movement
// variants, not as this value.
var ZeroAddress Address

// AddressFromHex parses a hex-encoded address, with or without a "0x" prefix.
func AddressFromHex(s string) (Address, error) {
	var a Address

	raw := strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return a, fmt.Errorf("types: parse address %q: %w", s, err)
	}
	if len(b) != AddressLen {
		return a, fmt.Errorf("types: parse address %q: expected %d bytes, got %d", s, AddressLen, len(b))
	}

	copy(a[:], b)
	return a, nil
}

// AddressFromBytes copies a raw byte slice into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, fmt.Errorf("types: address must be %d bytes, got %d", AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// MustAddress is like AddressFromHex but panics on error. Use for hardcoded values.
func MustAddress(s string) Address {
	a, err := AddressFromHex(s)
	if err != nil {
		panic(fmt.Sprintf("types: must parse address %q: %v", s, err))
	}
	return a
}

// IsZero reports whether the address is the all-zero value.
func (a Address) IsZero() bool { return a == ZeroAddress }

// Bytes returns a copy of the raw address bytes.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLen)
	copy(b, a[:])
	return b
}

// String returns the 0x-prefixed lowercase hex representation.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(data []byte) error {
	parsed, err := AddressFromHex(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalCBOR encodes the address as a CBOR byte string.
func (a Address) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(a[:])
}

// UnmarshalCBOR decodes the address from a CBOR byte string.
func (a *Address) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("types: decode address: %w", err)
	}

	parsed, err := AddressFromBytes(b)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

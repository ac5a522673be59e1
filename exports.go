package tokenledger

import "github.com/xraph/tokenledger/types"

// Re-export common types for convenience so users don't have to import
// the types package.

// Address is re-exported from the types package.
type Address = types.Address

// Amount is re-exported from the types package.
type Amount = types.Amount

// Re-export Address constructors
var (
	AddressFromHex   = types.AddressFromHex
	AddressFromBytes = types.AddressFromBytes
	MustAddress      = types.MustAddress
	ZeroAddress      = types.ZeroAddress
)

// Re-export Amount constructors
var (
	NewAmount        = types.NewAmount
	AmountFromString = types.AmountFromString
	MustAmount       = types.MustAmount
	Zero             = types.Zero
	Sum              = types.Sum
)

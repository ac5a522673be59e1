// Package holder defines the per-address ledger record.
package holder

import (
	"github.com/xraph/tokenledger/types"
	"github.com/xraph/tokenledger/vesting"
)

// Holder is the ledger record for a single address. A record
// conceptually exists for every address from genesis with zero balance
// and cleared flags; the store only materializes records the engine has
// touched. Records are mutated in place and never deleted.
type Holder struct {
	Address     types.Address     `json:"address" cbor:"address"`
	Balance     types.Amount      `json:"balance" cbor:"balance"`
	Whitelisted bool              `json:"whitelisted" cbor:"whitelisted"`
	Frozen      bool              `json:"frozen" cbor:"frozen"`
	Vesting     *vesting.Schedule `json:"vesting,omitempty" cbor:"vesting,omitempty"`
	types.Entity
}

// New creates the genesis-default record for an address: zero balance,
// not whitelisted, not frozen, no vesting schedule.
func New(addr types.Address) *Holder {
	return &Holder{
		Address: addr,
		Balance: types.Zero(),
		Entity:  types.NewEntity(),
	}
}

// HasVesting reports whether an active vesting schedule is attached.
func (h *Holder) HasVesting() bool {
	return vesting.Active(h.Vesting)
}

// Clone returns a deep copy of the record, so stored state is never
// aliased by callers.
func (h *Holder) Clone() *Holder {
	if h == nil {
		return nil
	}
	dup := *h
	dup.Vesting = h.Vesting.Clone()
	return &dup
}

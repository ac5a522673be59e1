// Package event defines the observable records emitted by the engine.
//
// Every successful mutation emits exactly one event, after all invariant
// checks pass. Events are delivered through the plugin registry; the
// audithook package bridges them to an external audit trail.
package event

import (
	"time"

	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/types"
)

// Kind names the mutation an event records.
type Kind string

// Event kinds for every mutating operation.
const (
	KindMint             Kind = "mint"
	KindBurn             Kind = "burn"
	KindTransfer         Kind = "transfer"
	KindVestingCreated   Kind = "vesting.created"
	KindWhitelistAdded   Kind = "whitelist.added"
	KindWhitelistRemoved Kind = "whitelist.removed"
	KindFrozen           Kind = "holder.frozen"
	KindUnfrozen         Kind = "holder.unfrozen"
	KindPaused           Kind = "system.paused"
	KindUnpaused         Kind = "system.unpaused"
	KindInitialized      Kind = "system.initialized"
)

// Event is one observable record of a successful mutation. From is nil
// for mints and administrative events; To is nil for burns. Amount is
// zero for flag and pause changes.
type Event struct {
	ID        id.EventID     `json:"id"`
	Kind      Kind           `json:"kind"`
	From      *types.Address `json:"from,omitempty"`
	To        *types.Address `json:"to,omitempty"`
	Amount    types.Amount   `json:"amount"`
	Timestamp time.Time      `json:"timestamp"`
}

// New creates an event with a fresh ID.
func New(kind Kind, from, to *types.Address, amount types.Amount, at time.Time) *Event {
	return &Event{
		ID:        id.NewEventID(),
		Kind:      kind,
		From:      from,
		To:        to,
		Amount:    amount,
		Timestamp: at,
	}
}

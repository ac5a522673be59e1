// Package store defines the storage interface for TokenLedger state.
package store

import (
	"context"

	"github.com/xraph/tokenledger/holder"
	"github.com/xraph/tokenledger/types"
)

// State is the single global ledger state record. It is mutated only by
// the engine's administrative operations.
type State struct {
	Initialized bool          `json:"initialized" cbor:"initialized"`
	Owner       types.Address `json:"owner" cbor:"owner"`
	Paused      bool          `json:"paused" cbor:"paused"`
	TotalSupply types.Amount  `json:"total_supply" cbor:"total_supply"`
	types.Entity
}

// Clone returns a copy of the state record.
func (s *State) Clone() *State {
	dup := *s
	return &dup
}

// Store is the storage interface for ledger state. Implementations must
// return defensive copies: the engine owns all records exclusively and
// callers must never observe shared mutable state.
//
// The engine serializes all mutating access itself, so implementations
// only need to be safe for concurrent reads.
type Store interface {
	// Holder methods. GetHolder returns ErrHolderNotFound for addresses
	// the engine has never written; the engine synthesizes the
	// genesis-default record in that case.
	GetHolder(ctx context.Context, addr types.Address) (*holder.Holder, error)
	SaveHolder(ctx context.Context, h *holder.Holder) error
	ListHolders(ctx context.Context) ([]*holder.Holder, error)
	HolderCount(ctx context.Context) (int, error)

	// Global state methods.
	GetState(ctx context.Context) (*State, error)
	SaveState(ctx context.Context, st *State) error

	// Snapshot methods. Snapshot returns a deterministic encoding of the
	// full ledger state; Restore replaces all state with a snapshot's.
	Snapshot(ctx context.Context) ([]byte, error)
	Restore(ctx context.Context, data []byte) error

	// Core methods.
	Ping(ctx context.Context) error
	Close() error
}

// Package plugin provides an extensible hook system for TokenLedger.
// Plugins can observe engine lifecycle and ledger events to extend
// functionality: audit trails, metrics, external notification.
//
// Hooks are observational only — a hook error is logged and ignored,
// never rolled into the outcome of the operation that triggered it.
package plugin

import (
	"context"

	"github.com/xraph/tokenledger/event"
	"github.com/xraph/tokenledger/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called once when the engine is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the engine is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Balance movement hooks
// ──────────────────────────────────────────────────

// OnMinted is called after units are minted to a holder.
type OnMinted interface {
	Plugin
	OnMinted(ctx context.Context, evt *event.Event) error
}

// OnBurned is called after units are burned from a holder.
type OnBurned interface {
	Plugin
	OnBurned(ctx context.Context, evt *event.Event) error
}

// OnTransferred is called after a holder-initiated transfer settles.
type OnTransferred interface {
	Plugin
	OnTransferred(ctx context.Context, evt *event.Event) error
}

// OnMovementDenied is called when a balance mutation is rejected by the
// transfer validator. The rejected operation has no effect on state;
// this hook exists for monitoring denied activity.
type OnMovementDenied interface {
	Plugin
	OnMovementDenied(ctx context.Context, kind event.Kind, from, to *types.Address, amount types.Amount, reason error) error
}

// ──────────────────────────────────────────────────
// Vesting hooks
// ──────────────────────────────────────────────────

// OnVestingCreated is called after a vesting mint attaches a schedule.
type OnVestingCreated interface {
	Plugin
	OnVestingCreated(ctx context.Context, evt *event.Event) error
}

// ──────────────────────────────────────────────────
// Administrative hooks
// ──────────────────────────────────────────────────

// OnWhitelistChanged is called after a holder's whitelist membership changes.
type OnWhitelistChanged interface {
	Plugin
	OnWhitelistChanged(ctx context.Context, addr types.Address, listed bool) error
}

// OnFreezeChanged is called after a holder's freeze flag changes.
type OnFreezeChanged interface {
	Plugin
	OnFreezeChanged(ctx context.Context, addr types.Address, frozen bool) error
}

// OnPauseChanged is called after the global pause switch toggles.
type OnPauseChanged interface {
	Plugin
	OnPauseChanged(ctx context.Context, paused bool) error
}

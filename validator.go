package tokenledger

import (
	"context"
	"time"

	"github.com/xraph/tokenledger/event"
	"github.com/xraph/tokenledger/holder"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
	"github.com/xraph/tokenledger/vesting"
)

// movementKind tags the three balance mutations. Mints have no sender
// and burns have no receiver; the tag replaces any reserved "null
// address" sentinel, so an all-zero address stays a legitimate holder
// identity.
type movementKind int

const (
	mintMovement movementKind = iota + 1
	burnMovement
	transferMovement
)

// movement is one requested balance mutation, as seen by the validator.
type movement struct {
	kind   movementKind
	from   types.Address // ignored for mints
	to     types.Address // ignored for burns
	amount types.Amount

	// vest attaches a schedule covering amount on a mint.
	vest         bool
	vestDuration time.Duration
}

// applyMovement is the single entry point for every balance mutation.
// Checks run in a fixed order with no effect on state until all pass:
//
//  1. global pause switch
//  2. sender whitelist, freeze, then vesting lock (transfers only)
//  3. receiver whitelist, freeze
//  4. schedule-exists precondition (vesting mints only)
//  5. balance sufficiency
//
// Only then are balances mutated, the sender's vesting release recorded,
// and the event record built. The first failing check wins; callers must
// not assume which violation is reported when several coexist, only that
// this order is deterministic.
//
// The caller holds the engine's write lock and is responsible for owner
// authorization and hook emission.
func (e *Engine) applyMovement(ctx context.Context, st *store.State, mv movement) (*event.Event, error) {
	if st.Paused {
		return nil, ErrSystemPaused
	}

	now := e.clock()

	var src, dst *holder.Holder

	if mv.kind != mintMovement {
		h, err := e.loadOrSeed(ctx, mv.from)
		if err != nil {
			return nil, err
		}
		src = h

		if !src.Whitelisted {
			return nil, ErrNotWhitelisted
		}
		if src.Frozen {
			return nil, ErrAddressFrozen
		}
		// The vesting lock gates holder-initiated transfers only; an
		// administrative burn may destroy locked units.
		if mv.kind == transferMovement && src.HasVesting() {
			if mv.amount.GreaterThan(src.Vesting.AvailableAt(now)) {
				return nil, ErrAmountLocked
			}
		}
	}

	if mv.kind != burnMovement {
		if src != nil && mv.to == mv.from {
			dst = src
		} else {
			h, err := e.loadOrSeed(ctx, mv.to)
			if err != nil {
				return nil, err
			}
			dst = h
		}

		if !dst.Whitelisted {
			return nil, ErrNotWhitelisted
		}
		if dst.Frozen {
			return nil, ErrAddressFrozen
		}
	}

	if mv.vest && vesting.Active(dst.Vesting) {
		return nil, ErrVestingAlreadyExists
	}

	if src != nil && src.Balance.LessThan(mv.amount) {
		return nil, ErrInsufficientBalance
	}

	// All checks passed; mutate.
	switch mv.kind {
	case mintMovement:
		dst.Balance = dst.Balance.Add(mv.amount)
		st.TotalSupply = st.TotalSupply.Add(mv.amount)
		if mv.vest {
			dst.Vesting = vesting.New(mv.amount, now, mv.vestDuration)
		}
	case burnMovement:
		src.Balance = src.Balance.Sub(mv.amount)
		st.TotalSupply = st.TotalSupply.Sub(mv.amount)
	case transferMovement:
		src.Balance = src.Balance.Sub(mv.amount)
		dst.Balance = dst.Balance.Add(mv.amount)
	}

	// Settlement: any outbound movement from a vesting holder counts
	// against the schedule, saturating at its total.
	if src != nil && src.HasVesting() {
		src.Vesting.Release(mv.amount)
	}

	if src != nil {
		src.Touch()
		if err := e.store.SaveHolder(ctx, src); err != nil {
			return nil, err
		}
	}
	if dst != nil && dst != src {
		dst.Touch()
		if err := e.store.SaveHolder(ctx, dst); err != nil {
			return nil, err
		}
	}
	st.Touch()
	if err := e.store.SaveState(ctx, st); err != nil {
		return nil, err
	}

	return e.movementEvent(mv, now), nil
}

// movementEvent builds the observable record for a settled movement.
func (e *Engine) movementEvent(mv movement, at time.Time) *event.Event {
	switch mv.kind {
	case mintMovement:
		to := mv.to
		return event.New(event.KindMint, nil, &to, mv.amount, at)
	case burnMovement:
		from := mv.from
		return event.New(event.KindBurn, &from, nil, mv.amount, at)
	default:
		from, to := mv.from, mv.to
		return event.New(event.KindTransfer, &from, &to, mv.amount, at)
	}
}

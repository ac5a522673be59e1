// Package tokenledger provides a permissioned fungible-asset ledger engine
// for Go applications.
//
// TokenLedger is designed as a library, not a service. Import it directly
// into your Go application and drive it from whatever transport, signer,
// or automation you already have. It tracks per-holder balances of a
// single asset class under a single administrative authority and provides:
//
//   - Whitelist and per-holder freeze gating on every movement
//   - Owner-gated mint and burn with supply conservation
//   - Per-holder linear vesting schedules attached at mint time
//   - A global pause switch halting all balance mutations
//   - A transfer validator composing all of the above into one
//     deterministic accept/reject decision per operation
//   - Pluggable hooks for audit trails and metrics
//
// # Quick Start
//
// Create an engine with the in-memory store and establish the owner:
//
//	import (
//	    "github.com/xraph/tokenledger"
//	    "github.com/xraph/tokenledger/store/memory"
//	)
//
//	eng := tokenledger.New(memory.New())
//	defer eng.Close()
//
//	owner := tokenledger.MustAddress("0x0101010101010101010101010101010101010101")
//	if err := eng.Initialize(ctx, owner); err != nil {
//	    log.Fatal(err)
//	}
//
// The initializing caller becomes the owner and is automatically
// whitelisted. Administrative operations take the caller's address
// explicitly and fail with ErrUnauthorized for anyone else:
//
//	alice := tokenledger.MustAddress("0x0202020202020202020202020202020202020202")
//	_ = eng.AddToWhitelist(ctx, owner, alice)
//	_ = eng.Mint(ctx, owner, alice, tokenledger.NewAmount(1_000_000))
//
// Holders move units with Transfer; the sender is always the caller:
//
//	err := eng.Transfer(ctx, alice, bob, tokenledger.NewAmount(100))
//
// # Validation Order
//
// Every balance mutation is validated in a fixed order before any state
// changes: pause switch, sender whitelist and freeze, the sender's
// vesting lock (transfers only), receiver whitelist and freeze, then
// balance sufficiency. The first failing check wins; a rejected
// operation leaves all state unchanged.
//
// # Vesting
//
// MintWithVesting attaches a linear unlock schedule to the minted units.
// At most one schedule ever exists per holder; a second vesting mint
// fails with ErrVestingAlreadyExists and mints nothing. The vested
// amount grows linearly from the mint time over the schedule's duration,
// computed with arbitrary-precision integers (multiply before divide),
// and the schedule's released counter saturates at its total rather than
// erroring. Administrative burns bypass the vesting lock; holder
// transfers never do.
//
// A schedule created over a zero amount is indistinguishable from no
// schedule at all: existence is tested as total != 0, so such a holder
// behaves as unscheduled on every subsequent query. This ambiguity is
// deliberate, documented behavior.
//
// # Pause Semantics
//
// Pause and Unpause are owner-only and idempotent: toggling into the
// current state is a no-op, not an error. While paused, every mint,
// burn, and transfer fails with ErrSystemPaused before any other check;
// whitelist and freeze changes, and pause toggling itself, remain
// permitted.
//
// # Concurrency
//
// All mutating entry points are serialized behind a single mutex, so
// every operation is atomic and totally ordered: it either commits all
// of its effects or none. Read-only queries run concurrently with each
// other. The only external input is the current time, injectable via
// WithClock for deterministic tests.
//
// # TypeID
//
// Event records and vesting schedules use TypeID for globally unique,
// K-sortable identifiers:
//
//	evt_01h2xcejqtf2nbrexx3vqjhp41   // Event record
//	vest_01h455vb4pex5vsknk084sn02q  // Vesting schedule
//
// Holder identities are fixed-width 20-byte addresses, opaque to the
// engine.
package tokenledger

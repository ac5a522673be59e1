package tokenledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/tokenledger/event"
	"github.com/xraph/tokenledger/holder"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
	"github.com/xraph/tokenledger/vesting"
)

// Engine is the ledger's state-transition engine. Every balance-changing
// operation routes through its transfer validator, which composes the
// access gate, freeze flags, the pause switch, and vesting locks into a
// single accept/reject decision before any state is touched.
//
// All mutating entry points are serialized behind one mutex so the
// observed effect is identical to a strictly sequential execution;
// read-only queries run concurrently with each other.
type Engine struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	clock   func() time.Time

	mu sync.RWMutex
}

// New creates a new Engine instance backed by the given store.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		clock:   time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.plugins.WithLogger(e.logger)
	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock sets the time source consulted by vesting math. The default
// is time.Now; tests inject a fixed clock for deterministic schedules.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithHookTimeout bounds how long a single plugin hook call may run.
func WithHookTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.plugins.WithTimeout(d)
	}
}

// Plugins returns the engine's plugin registry.
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// Initialize establishes the owner identity. The initializing caller
// becomes the owner and is automatically whitelisted. It must be called
// exactly once per store; a second call fails with ErrAlreadyInitialized.
func (e *Engine) Initialize(ctx context.Context, owner types.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.store.GetState(ctx)
	if err != nil {
		return err
	}
	if st.Initialized {
		return ErrAlreadyInitialized
	}

	st.Initialized = true
	st.Owner = owner
	st.Paused = false
	st.TotalSupply = types.Zero()
	st.Touch()

	h, err := e.loadOrSeed(ctx, owner)
	if err != nil {
		return err
	}
	h.Whitelisted = true
	h.Touch()

	if err := e.store.SaveHolder(ctx, h); err != nil {
		return err
	}
	if err := e.store.SaveState(ctx, st); err != nil {
		return err
	}

	e.plugins.EmitInit(ctx, e)
	e.plugins.EmitWhitelistChanged(ctx, owner, true)

	e.logger.Info("ledger initialized", "owner", owner)
	return nil
}

// Close shuts down the Engine and its store.
func (e *Engine) Close() error {
	e.plugins.EmitShutdown(context.Background())
	return e.store.Close()
}

// ──────────────────────────────────────────────────
// Administrative operations (owner-only)
// ──────────────────────────────────────────────────

// AddToWhitelist grants addr permission to hold, send, and receive.
// Idempotent: whitelisting an already-listed holder is not an error.
func (e *Engine) AddToWhitelist(ctx context.Context, caller, addr types.Address) error {
	return e.setWhitelisted(ctx, caller, addr, true)
}

// RemoveFromWhitelist revokes addr's whitelist membership. Idempotent.
func (e *Engine) RemoveFromWhitelist(ctx context.Context, caller, addr types.Address) error {
	return e.setWhitelisted(ctx, caller, addr, false)
}

func (e *Engine) setWhitelisted(ctx context.Context, caller, addr types.Address, listed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.authorized(ctx, caller); err != nil {
		return err
	}

	h, err := e.loadOrSeed(ctx, addr)
	if err != nil {
		return err
	}
	h.Whitelisted = listed
	h.Touch()

	if err := e.store.SaveHolder(ctx, h); err != nil {
		return err
	}

	e.plugins.EmitWhitelistChanged(ctx, addr, listed)
	e.logger.Info("whitelist updated", "address", addr, "listed", listed)
	return nil
}

// FreezeAddress blocks all incoming and outgoing movement for addr,
// independent of whitelist status. Idempotent.
func (e *Engine) FreezeAddress(ctx context.Context, caller, addr types.Address) error {
	return e.setFrozen(ctx, caller, addr, true)
}

// UnfreezeAddress clears addr's freeze flag. Idempotent.
func (e *Engine) UnfreezeAddress(ctx context.Context, caller, addr types.Address) error {
	return e.setFrozen(ctx, caller, addr, false)
}

func (e *Engine) setFrozen(ctx context.Context, caller, addr types.Address, frozen bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.authorized(ctx, caller); err != nil {
		return err
	}

	h, err := e.loadOrSeed(ctx, addr)
	if err != nil {
		return err
	}
	h.Frozen = frozen
	h.Touch()

	if err := e.store.SaveHolder(ctx, h); err != nil {
		return err
	}

	e.plugins.EmitFreezeChanged(ctx, addr, frozen)
	e.logger.Info("freeze flag updated", "address", addr, "frozen", frozen)
	return nil
}

// Pause halts every balance-mutating operation until Unpause.
// Administrative flag changes remain permitted while paused.
// Pausing an already-paused ledger is a no-op.
func (e *Engine) Pause(ctx context.Context, caller types.Address) error {
	return e.setPaused(ctx, caller, true)
}

// Unpause restores normal operation. Unpausing an active ledger is a no-op.
func (e *Engine) Unpause(ctx context.Context, caller types.Address) error {
	return e.setPaused(ctx, caller, false)
}

func (e *Engine) setPaused(ctx context.Context, caller types.Address, paused bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.authorized(ctx, caller)
	if err != nil {
		return err
	}
	if st.Paused == paused {
		return nil
	}

	st.Paused = paused
	st.Touch()

	if err := e.store.SaveState(ctx, st); err != nil {
		return err
	}

	e.plugins.EmitPauseChanged(ctx, paused)
	e.logger.Info("pause switch updated", "paused", paused)
	return nil
}

// ──────────────────────────────────────────────────
// Issuance and destruction (owner-only)
// ──────────────────────────────────────────────────

// Mint issues amount new units to a whitelisted holder, increasing the
// total supply. The mint routes through the transfer validator with no
// sender, so pause and receiver checks apply uniformly.
func (e *Engine) Mint(ctx context.Context, caller, to types.Address, amount types.Amount) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.authorized(ctx, caller)
	if err != nil {
		return err
	}

	evt, err := e.applyMovement(ctx, st, movement{kind: mintMovement, to: to, amount: amount})
	if err != nil {
		e.plugins.EmitMovementDenied(ctx, event.KindMint, nil, &to, amount, err)
		return err
	}

	e.plugins.EmitMinted(ctx, evt)
	e.logger.Info("minted", "to", to, "amount", amount, "total_supply", st.TotalSupply)
	return nil
}

// MintWithVesting is Mint plus the atomic attachment of a linear vesting
// schedule covering the minted amount, starting now and fully vested
// after duration. If a schedule is already attached to the holder the
// whole operation fails with ErrVestingAlreadyExists and nothing is
// minted.
func (e *Engine) MintWithVesting(ctx context.Context, caller, to types.Address, amount types.Amount, duration time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.authorized(ctx, caller)
	if err != nil {
		return err
	}

	evt, err := e.applyMovement(ctx, st, movement{
		kind:         mintMovement,
		to:           to,
		amount:       amount,
		vest:         true,
		vestDuration: duration,
	})
	if err != nil {
		e.plugins.EmitMovementDenied(ctx, event.KindMint, nil, &to, amount, err)
		return err
	}

	e.plugins.EmitMinted(ctx, evt)
	e.plugins.EmitVestingCreated(ctx, event.New(event.KindVestingCreated, nil, &to, amount, evt.Timestamp))
	e.logger.Info("minted with vesting",
		"to", to,
		"amount", amount,
		"duration", duration,
		"total_supply", st.TotalSupply,
	)
	return nil
}

// Burn destroys amount units held by from, decreasing the total supply.
// The burn routes through the transfer validator with no receiver. It is
// gated by the raw balance, not by the vesting lock: the owner can burn
// vesting-locked units administratively, an emergency-recovery privilege
// holder-initiated transfers do not have.
func (e *Engine) Burn(ctx context.Context, caller, from types.Address, amount types.Amount) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.authorized(ctx, caller)
	if err != nil {
		return err
	}

	evt, err := e.applyMovement(ctx, st, movement{kind: burnMovement, from: from, amount: amount})
	if err != nil {
		e.plugins.EmitMovementDenied(ctx, event.KindBurn, &from, nil, amount, err)
		return err
	}

	e.plugins.EmitBurned(ctx, evt)
	e.logger.Info("burned", "from", from, "amount", amount, "total_supply", st.TotalSupply)
	return nil
}

// ──────────────────────────────────────────────────
// Holder-initiated operations
// ──────────────────────────────────────────────────

// Transfer moves amount units from the caller to another holder. Both
// sides must be whitelisted and unfrozen, and if the caller has a
// vesting schedule the amount must not exceed its currently available
// (vested, unreleased) balance.
func (e *Engine) Transfer(ctx context.Context, caller, to types.Address, amount types.Amount) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.state(ctx)
	if err != nil {
		return err
	}

	evt, err := e.applyMovement(ctx, st, movement{kind: transferMovement, from: caller, to: to, amount: amount})
	if err != nil {
		e.plugins.EmitMovementDenied(ctx, event.KindTransfer, &caller, &to, amount, err)
		return err
	}

	e.plugins.EmitTransferred(ctx, evt)
	e.logger.Info("transferred", "from", caller, "to", to, "amount", amount)
	return nil
}

// ──────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────

// BalanceOf returns the raw balance of addr.
func (e *Engine) BalanceOf(ctx context.Context, addr types.Address) (types.Amount, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, err := e.loadOrSeed(ctx, addr)
	if err != nil {
		return types.Zero(), err
	}
	return h.Balance, nil
}

// Available returns the portion of addr's balance not locked by vesting:
// the full balance for unscheduled holders, otherwise the vested,
// unreleased amount at the current time.
func (e *Engine) Available(ctx context.Context, addr types.Address) (types.Amount, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, err := e.loadOrSeed(ctx, addr)
	if err != nil {
		return types.Zero(), err
	}
	if !h.HasVesting() {
		return h.Balance, nil
	}
	return h.Vesting.AvailableAt(e.clock()), nil
}

// VestedAmount returns how much of addr's schedule has vested at the
// current time. An unscheduled holder's entire balance counts as vested.
func (e *Engine) VestedAmount(ctx context.Context, addr types.Address) (types.Amount, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, err := e.loadOrSeed(ctx, addr)
	if err != nil {
		return types.Zero(), err
	}
	if !h.HasVesting() {
		return h.Balance, nil
	}
	return h.Vesting.VestedAt(e.clock()), nil
}

// VestingOf returns a copy of addr's vesting schedule, or nil if none is
// attached. Schedules remain queryable after full consumption.
func (e *Engine) VestingOf(ctx context.Context, addr types.Address) (*vesting.Schedule, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, err := e.loadOrSeed(ctx, addr)
	if err != nil {
		return nil, err
	}
	return h.Vesting.Clone(), nil
}

// IsWhitelisted reports whether addr may hold, send, and receive.
func (e *Engine) IsWhitelisted(ctx context.Context, addr types.Address) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, err := e.loadOrSeed(ctx, addr)
	if err != nil {
		return false, err
	}
	return h.Whitelisted, nil
}

// IsFrozen reports whether addr is blocked from all movement.
func (e *Engine) IsFrozen(ctx context.Context, addr types.Address) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	h, err := e.loadOrSeed(ctx, addr)
	if err != nil {
		return false, err
	}
	return h.Frozen, nil
}

// TotalSupply returns the sum of all holder balances.
func (e *Engine) TotalSupply(ctx context.Context) (types.Amount, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st, err := e.state(ctx)
	if err != nil {
		return types.Zero(), err
	}
	return st.TotalSupply, nil
}

// Owner returns the administrative authority's address.
func (e *Engine) Owner(ctx context.Context) (types.Address, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st, err := e.state(ctx)
	if err != nil {
		return types.ZeroAddress, err
	}
	return st.Owner, nil
}

// Paused reports whether the global pause switch is set.
func (e *Engine) Paused(ctx context.Context) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st, err := e.state(ctx)
	if err != nil {
		return false, err
	}
	return st.Paused, nil
}

// HolderCount returns the number of holder records the engine has
// materialized.
func (e *Engine) HolderCount(ctx context.Context) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.store.HolderCount(ctx)
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// state loads the global state and fails unless the engine has been
// initialized.
func (e *Engine) state(ctx context.Context) (*store.State, error) {
	st, err := e.store.GetState(ctx)
	if err != nil {
		return nil, err
	}
	if !st.Initialized {
		return nil, ErrNotInitialized
	}
	return st, nil
}

// authorized loads the global state and verifies caller is the owner.
func (e *Engine) authorized(ctx context.Context, caller types.Address) (*store.State, error) {
	st, err := e.state(ctx)
	if err != nil {
		return nil, err
	}
	if st.Owner != caller {
		return nil, ErrUnauthorized
	}
	return st, nil
}

// loadOrSeed returns the stored record for addr, or the genesis-default
// record when none has been materialized yet.
func (e *Engine) loadOrSeed(ctx context.Context, addr types.Address) (*holder.Holder, error) {
	h, err := e.store.GetHolder(ctx, addr)
	if err != nil {
		if IsNotFound(err) {
			return holder.New(addr), nil
		}
		return nil, err
	}
	return h, nil
}

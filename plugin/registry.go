package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/tokenledger/event"
	"github.com/xraph/tokenledger/types"
)

// DefaultHookTimeout bounds how long a single hook call may run.
const DefaultHookTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// It caches per-hook plugin lists at registration time so emission never
// repeats interface assertions.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	// Type-cached plugin lists for efficient dispatch
	onInit             []OnInit
	onShutdown         []OnShutdown
	onMinted           []OnMinted
	onBurned           []OnBurned
	onTransferred      []OnTransferred
	onMovementDenied   []OnMovementDenied
	onVestingCreated   []OnVestingCreated
	onWhitelistChanged []OnWhitelistChanged
	onFreezeChanged    []OnFreezeChanged
	onPauseChanged     []OnPauseChanged
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultHookTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets the per-hook call timeout.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Register adds a plugin to the registry and caches its hook interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	hooks := 0
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
		hooks++
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
		hooks++
	}
	if v, ok := p.(OnMinted); ok {
		r.onMinted = append(r.onMinted, v)
		hooks++
	}
	if v, ok := p.(OnBurned); ok {
		r.onBurned = append(r.onBurned, v)
		hooks++
	}
	if v, ok := p.(OnTransferred); ok {
		r.onTransferred = append(r.onTransferred, v)
		hooks++
	}
	if v, ok := p.(OnMovementDenied); ok {
		r.onMovementDenied = append(r.onMovementDenied, v)
		hooks++
	}
	if v, ok := p.(OnVestingCreated); ok {
		r.onVestingCreated = append(r.onVestingCreated, v)
		hooks++
	}
	if v, ok := p.(OnWhitelistChanged); ok {
		r.onWhitelistChanged = append(r.onWhitelistChanged, v)
		hooks++
	}
	if v, ok := p.(OnFreezeChanged); ok {
		r.onFreezeChanged = append(r.onFreezeChanged, v)
		hooks++
	}
	if v, ok := p.(OnPauseChanged); ok {
		r.onPauseChanged = append(r.onPauseChanged, v)
		hooks++
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"hooks", hooks,
	)

	return nil
}

// Get returns a plugin by name, or nil if not registered.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitMinted emits a mint event.
func (r *Registry) EmitMinted(ctx context.Context, evt *event.Event) {
	r.mu.RLock()
	plugins := r.onMinted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMinted(ctx, evt)
		}); err != nil {
			r.logger.Warn("plugin OnMinted failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitBurned emits a burn event.
func (r *Registry) EmitBurned(ctx context.Context, evt *event.Event) {
	r.mu.RLock()
	plugins := r.onBurned
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBurned(ctx, evt)
		}); err != nil {
			r.logger.Warn("plugin OnBurned failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitTransferred emits a transfer event.
func (r *Registry) EmitTransferred(ctx context.Context, evt *event.Event) {
	r.mu.RLock()
	plugins := r.onTransferred
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransferred(ctx, evt)
		}); err != nil {
			r.logger.Warn("plugin OnTransferred failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitMovementDenied emits a denied-movement notification.
func (r *Registry) EmitMovementDenied(ctx context.Context, kind event.Kind, from, to *types.Address, amount types.Amount, reason error) {
	r.mu.RLock()
	plugins := r.onMovementDenied
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMovementDenied(ctx, kind, from, to, amount, reason)
		}); err != nil {
			r.logger.Warn("plugin OnMovementDenied failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitVestingCreated emits a vesting schedule creation event.
func (r *Registry) EmitVestingCreated(ctx context.Context, evt *event.Event) {
	r.mu.RLock()
	plugins := r.onVestingCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnVestingCreated(ctx, evt)
		}); err != nil {
			r.logger.Warn("plugin OnVestingCreated failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitWhitelistChanged emits a whitelist membership change.
func (r *Registry) EmitWhitelistChanged(ctx context.Context, addr types.Address, listed bool) {
	r.mu.RLock()
	plugins := r.onWhitelistChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnWhitelistChanged(ctx, addr, listed)
		}); err != nil {
			r.logger.Warn("plugin OnWhitelistChanged failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitFreezeChanged emits a freeze flag change.
func (r *Registry) EmitFreezeChanged(ctx context.Context, addr types.Address, frozen bool) {
	r.mu.RLock()
	plugins := r.onFreezeChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnFreezeChanged(ctx, addr, frozen)
		}); err != nil {
			r.logger.Warn("plugin OnFreezeChanged failed", "plugin", p.Name(), "error", err)
		}
	}
}

// EmitPauseChanged emits a pause switch change.
func (r *Registry) EmitPauseChanged(ctx context.Context, paused bool) {
	r.mu.RLock()
	plugins := r.onPauseChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPauseChanged(ctx, paused)
		}); err != nil {
			r.logger.Warn("plugin OnPauseChanged failed", "plugin", p.Name(), "error", err)
		}
	}
}

// callWithTimeout calls a hook with a timeout.
// Hooks must never block the ledger pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.timeout):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}

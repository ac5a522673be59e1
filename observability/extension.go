// Package observability provides a metrics extension for TokenLedger that
// records event counts via an injected MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/tokenledger/event"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin             = (*MetricsExtension)(nil)
	_ plugin.OnMinted           = (*MetricsExtension)(nil)
	_ plugin.OnBurned           = (*MetricsExtension)(nil)
	_ plugin.OnTransferred      = (*MetricsExtension)(nil)
	_ plugin.OnMovementDenied   = (*MetricsExtension)(nil)
	_ plugin.OnVestingCreated   = (*MetricsExtension)(nil)
	_ plugin.OnWhitelistChanged = (*MetricsExtension)(nil)
	_ plugin.OnFreezeChanged    = (*MetricsExtension)(nil)
	_ plugin.OnPauseChanged     = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// MetricFactory creates metrics. Implementations typically adapt a
// Prometheus registry or a statsd client.
type MetricFactory interface {
	Counter(name string) Counter
}

// MetricsExtension records per-event counters for every ledger event.
type MetricsExtension struct {
	mints      Counter
	burns      Counter
	transfers  Counter
	denied     Counter
	vestings   Counter
	whitelists Counter
	freezes    Counter
	pauses     Counter
}

// New creates a MetricsExtension with counters from the given factory.
func New(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		mints:      factory.Counter("tokenledger_mints_total"),
		burns:      factory.Counter("tokenledger_burns_total"),
		transfers:  factory.Counter("tokenledger_transfers_total"),
		denied:     factory.Counter("tokenledger_movements_denied_total"),
		vestings:   factory.Counter("tokenledger_vesting_schedules_total"),
		whitelists: factory.Counter("tokenledger_whitelist_changes_total"),
		freezes:    factory.Counter("tokenledger_freeze_changes_total"),
		pauses:     factory.Counter("tokenledger_pause_changes_total"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability" }

// OnMinted implements plugin.OnMinted.
func (m *MetricsExtension) OnMinted(_ context.Context, _ *event.Event) error {
	m.mints.Inc()
	return nil
}

// OnBurned implements plugin.OnBurned.
func (m *MetricsExtension) OnBurned(_ context.Context, _ *event.Event) error {
	m.burns.Inc()
	return nil
}

// OnTransferred implements plugin.OnTransferred.
func (m *MetricsExtension) OnTransferred(_ context.Context, _ *event.Event) error {
	m.transfers.Inc()
	return nil
}

// OnMovementDenied implements plugin.OnMovementDenied.
func (m *MetricsExtension) OnMovementDenied(_ context.Context, _ event.Kind, _, _ *types.Address, _ types.Amount, _ error) error {
	m.denied.Inc()
	return nil
}

// OnVestingCreated implements plugin.OnVestingCreated.
func (m *MetricsExtension) OnVestingCreated(_ context.Context, _ *event.Event) error {
	m.vestings.Inc()
	return nil
}

// OnWhitelistChanged implements plugin.OnWhitelistChanged.
func (m *MetricsExtension) OnWhitelistChanged(_ context.Context, _ types.Address, _ bool) error {
	m.whitelists.Inc()
	return nil
}

// OnFreezeChanged implements plugin.OnFreezeChanged.
func (m *MetricsExtension) OnFreezeChanged(_ context.Context, _ types.Address, _ bool) error {
	m.freezes.Inc()
	return nil
}

// OnPauseChanged implements plugin.OnPauseChanged.
func (m *MetricsExtension) OnPauseChanged(_ context.Context, _ bool) error {
	m.pauses.Inc()
	return nil
}

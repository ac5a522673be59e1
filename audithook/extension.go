// Package audithook bridges TokenLedger events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on
// any particular audit system. Callers inject a Recorder (or a
// RecorderFunc adapter) that bridges to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/tokenledger/event"
	"github.com/xraph/tokenledger/plugin"
	"github.com/xraph/tokenledger/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin             = (*Extension)(nil)
	_ plugin.OnMinted           = (*Extension)(nil)
	_ plugin.OnBurned           = (*Extension)(nil)
	_ plugin.OnTransferred      = (*Extension)(nil)
	_ plugin.OnMovementDenied   = (*Extension)(nil)
	_ plugin.OnVestingCreated   = (*Extension)(nil)
	_ plugin.OnWhitelistChanged = (*Extension)(nil)
	_ plugin.OnFreezeChanged    = (*Extension)(nil)
	_ plugin.OnPauseChanged     = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is the audit-trail representation of one ledger event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges ledger events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Movement hooks
// ──────────────────────────────────────────────────

// OnMinted implements plugin.OnMinted.
func (e *Extension) OnMinted(ctx context.Context, evt *event.Event) error {
	return e.record(ctx, ActionMinted, SeverityInfo, OutcomeSuccess,
		ResourceLedger, evt.ID.String(), CategoryMovement, nil,
		"to", addrString(evt.To),
		"amount", evt.Amount.String(),
	)
}

// OnBurned implements plugin.OnBurned.
func (e *Extension) OnBurned(ctx context.Context, evt *event.Event) error {
	return e.record(ctx, ActionBurned, SeverityWarning, OutcomeSuccess,
		ResourceLedger, evt.ID.String(), CategoryMovement, nil,
		"from", addrString(evt.From),
		"amount", evt.Amount.String(),
	)
}

// OnTransferred implements plugin.OnTransferred.
func (e *Extension) OnTransferred(ctx context.Context, evt *event.Event) error {
	return e.record(ctx, ActionTransferred, SeverityInfo, OutcomeSuccess,
		ResourceLedger, evt.ID.String(), CategoryMovement, nil,
		"from", addrString(evt.From),
		"to", addrString(evt.To),
		"amount", evt.Amount.String(),
	)
}

// OnMovementDenied implements plugin.OnMovementDenied.
func (e *Extension) OnMovementDenied(ctx context.Context, kind event.Kind, from, to *types.Address, amount types.Amount, reason error) error {
	return e.record(ctx, ActionDenied, SeverityWarning, OutcomeFailure,
		ResourceLedger, "", CategoryMovement, reason,
		"kind", string(kind),
		"from", addrString(from),
		"to", addrString(to),
		"amount", amount.String(),
	)
}

// ──────────────────────────────────────────────────
// Vesting hooks
// ──────────────────────────────────────────────────

// OnVestingCreated implements plugin.OnVestingCreated.
func (e *Extension) OnVestingCreated(ctx context.Context, evt *event.Event) error {
	return e.record(ctx, ActionVestingCreated, SeverityInfo, OutcomeSuccess,
		ResourceVesting, evt.ID.String(), CategoryMovement, nil,
		"to", addrString(evt.To),
		"amount", evt.Amount.String(),
	)
}

// ──────────────────────────────────────────────────
// Administrative hooks
// ──────────────────────────────────────────────────

// OnWhitelistChanged implements plugin.OnWhitelistChanged.
func (e *Extension) OnWhitelistChanged(ctx context.Context, addr types.Address, listed bool) error {
	action := ActionWhitelistAdded
	if !listed {
		action = ActionWhitelistRemoved
	}

	return e.record(ctx, action, SeverityInfo, OutcomeSuccess,
		ResourceHolder, addr.String(), CategoryAccess, nil,
		"address", addr.String(),
	)
}

// OnFreezeChanged implements plugin.OnFreezeChanged.
func (e *Extension) OnFreezeChanged(ctx context.Context, addr types.Address, frozen bool) error {
	action := ActionFrozen
	severity := SeverityWarning
	if !frozen {
		action = ActionUnfrozen
		severity = SeverityInfo
	}

	return e.record(ctx, action, severity, OutcomeSuccess,
		ResourceHolder, addr.String(), CategoryAccess, nil,
		"address", addr.String(),
	)
}

// OnPauseChanged implements plugin.OnPauseChanged.
func (e *Extension) OnPauseChanged(ctx context.Context, paused bool) error {
	action := ActionPaused
	severity := SeverityCritical
	if !paused {
		action = ActionUnpaused
		severity = SeverityInfo
	}

	return e.record(ctx, action, severity, OutcomeSuccess,
		ResourceSystem, "", CategorySystem, nil)
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// record builds and submits an AuditEvent unless the action is filtered out.
func (e *Extension) record(ctx context.Context, action, severity, outcome, resource, resourceID, category string, cause error, kv ...string) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Category:   category,
		Outcome:    outcome,
		Severity:   severity,
	}
	if cause != nil {
		evt.Reason = cause.Error()
	}
	if len(kv) > 0 {
		evt.Metadata = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			evt.Metadata[kv[i]] = kv[i+1]
		}
	}

	if err := e.recorder.Record(ctx, evt); err != nil {
		e.logger.Warn("audit record failed", "action", action, "error", err)
		return fmt.Errorf("audithook: record %s: %w", action, err)
	}
	return nil
}

func addrString(a *types.Address) string {
	if a == nil {
		return ""
	}
	return a.String()
}

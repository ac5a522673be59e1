package audithook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/tokenledger/event"
	"github.com/xraph/tokenledger/types"
)

var (
	sender   = types.MustAddress("0x0101010101010101010101010101010101010101")
	receiver = types.MustAddress("0x0202020202020202020202020202020202020202")
)

// captureRecorder collects every submitted audit event.
type captureRecorder struct {
	events []*AuditEvent
}

func (r *captureRecorder) Record(_ context.Context, evt *AuditEvent) error {
	r.events = append(r.events, evt)
	return nil
}

func (r *captureRecorder) last(t *testing.T) *AuditEvent {
	t.Helper()
	if len(r.events) == 0 {
		t.Fatal("no audit events recorded")
	}
	return r.events[len(r.events)-1]
}

func TestMovementActions(t *testing.T) {
	rec := &captureRecorder{}
	ext := New(rec)
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Minted", func(t *testing.T) {
		evt := event.New(event.KindMint, nil, &receiver, types.NewAmount(100), at)
		if err := ext.OnMinted(ctx, evt); err != nil {
			t.Fatalf("OnMinted: %v", err)
		}

		got := rec.last(t)
		if got.Action != ActionMinted {
			t.Errorf("action: got %q, want %q", got.Action, ActionMinted)
		}
		if got.Resource != ResourceLedger || got.Category != CategoryMovement {
			t.Errorf("resource/category: got %q/%q", got.Resource, got.Category)
		}
		if got.Outcome != OutcomeSuccess || got.Severity != SeverityInfo {
			t.Errorf("outcome/severity: got %q/%q", got.Outcome, got.Severity)
		}
		if got.ResourceID != evt.ID.String() {
			t.Errorf("resource id: got %q, want %q", got.ResourceID, evt.ID)
		}
		if got.Metadata["to"] != receiver.String() || got.Metadata["amount"] != "100" {
			t.Errorf("metadata: %v", got.Metadata)
		}
	})

	t.Run("Burned", func(t *testing.T) {
		evt := event.New(event.KindBurn, &sender, nil, types.NewAmount(30), at)
		if err := ext.OnBurned(ctx, evt); err != nil {
			t.Fatalf("OnBurned: %v", err)
		}

		got := rec.last(t)
		if got.Action != ActionBurned || got.Severity != SeverityWarning {
			t.Errorf("action/severity: got %q/%q", got.Action, got.Severity)
		}
		if got.Metadata["from"] != sender.String() {
			t.Errorf("metadata: %v", got.Metadata)
		}
	})

	t.Run("Transferred", func(t *testing.T) {
		evt := event.New(event.KindTransfer, &sender, &receiver, types.NewAmount(10), at)
		if err := ext.OnTransferred(ctx, evt); err != nil {
			t.Fatalf("OnTransferred: %v", err)
		}

		got := rec.last(t)
		if got.Action != ActionTransferred {
			t.Errorf("action: got %q", got.Action)
		}
		if got.Metadata["from"] != sender.String() || got.Metadata["to"] != receiver.String() {
			t.Errorf("metadata: %v", got.Metadata)
		}
	})

	t.Run("Denied", func(t *testing.T) {
		cause := errors.New("holder frozen")
		err := ext.OnMovementDenied(ctx, event.KindTransfer, &sender, &receiver, types.NewAmount(10), cause)
		if err != nil {
			t.Fatalf("OnMovementDenied: %v", err)
		}

		got := rec.last(t)
		if got.Action != ActionDenied || got.Outcome != OutcomeFailure {
			t.Errorf("action/outcome: got %q/%q", got.Action, got.Outcome)
		}
		if got.Reason != "holder frozen" {
			t.Errorf("reason: got %q", got.Reason)
		}
		if got.Metadata["kind"] != string(event.KindTransfer) {
			t.Errorf("metadata: %v", got.Metadata)
		}
	})
}

func TestAdministrativeActions(t *testing.T) {
	rec := &captureRecorder{}
	ext := New(rec)
	ctx := context.Background()

	tests := []struct {
		name         string
		emit         func() error
		wantAction   string
		wantSeverity string
	}{
		{"WhitelistAdded", func() error { return ext.OnWhitelistChanged(ctx, sender, true) }, ActionWhitelistAdded, SeverityInfo},
		{"WhitelistRemoved", func() error { return ext.OnWhitelistChanged(ctx, sender, false) }, ActionWhitelistRemoved, SeverityInfo},
		{"Frozen", func() error { return ext.OnFreezeChanged(ctx, sender, true) }, ActionFrozen, SeverityWarning},
		{"Unfrozen", func() error { return ext.OnFreezeChanged(ctx, sender, false) }, ActionUnfrozen, SeverityInfo},
		{"Paused", func() error { return ext.OnPauseChanged(ctx, true) }, ActionPaused, SeverityCritical},
		{"Unpaused", func() error { return ext.OnPauseChanged(ctx, false) }, ActionUnpaused, SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.emit(); err != nil {
				t.Fatalf("emit: %v", err)
			}
			got := rec.last(t)
			if got.Action != tt.wantAction {
				t.Errorf("action: got %q, want %q", got.Action, tt.wantAction)
			}
			if got.Severity != tt.wantSeverity {
				t.Errorf("severity: got %q, want %q", got.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestActionFilters(t *testing.T) {
	rec := &captureRecorder{}
	ext := New(rec, WithEnabledActions(ActionMinted))
	ctx := context.Background()
	at := time.Now()

	if err := ext.OnMinted(ctx, event.New(event.KindMint, nil, &receiver, types.NewAmount(1), at)); err != nil {
		t.Fatal(err)
	}
	if err := ext.OnBurned(ctx, event.New(event.KindBurn, &sender, nil, types.NewAmount(1), at)); err != nil {
		t.Fatal(err)
	}
	if err := ext.OnPauseChanged(ctx, true); err != nil {
		t.Fatal(err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(rec.events))
	}
	if rec.events[0].Action != ActionMinted {
		t.Errorf("action: got %q, want %q", rec.events[0].Action, ActionMinted)
	}
}

func TestDisabledActions(t *testing.T) {
	rec := &captureRecorder{}
	ext := New(rec, WithDisabledActions(ActionDenied))
	ctx := context.Background()
	at := time.Now()

	if err := ext.OnMovementDenied(ctx, event.KindMint, nil, &receiver, types.NewAmount(1), errors.New("paused")); err != nil {
		t.Fatal(err)
	}
	if err := ext.OnMinted(ctx, event.New(event.KindMint, nil, &receiver, types.NewAmount(1), at)); err != nil {
		t.Fatal(err)
	}

	if len(rec.events) != 1 || rec.events[0].Action != ActionMinted {
		t.Errorf("events: %+v, want only %q", rec.events, ActionMinted)
	}
}

func TestRecorderFailure(t *testing.T) {
	failing := RecorderFunc(func(context.Context, *AuditEvent) error {
		return errors.New("backend down")
	})
	ext := New(failing, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	err := ext.OnPauseChanged(context.Background(), true)
	if err == nil {
		t.Fatal("expected error from failed recorder")
	}
}

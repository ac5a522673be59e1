package event

import (
	"testing"
	"time"

	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/types"
)

func TestNew(t *testing.T) {
	from := types.MustAddress("0x0101010101010101010101010101010101010101")
	to := types.MustAddress("0x0202020202020202020202020202020202020202")
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	evt := New(KindTransfer, &from, &to, types.NewAmount(25), at)

	if evt.ID.IsNil() {
		t.Error("event should get a fresh ID")
	}
	if evt.ID.Prefix() != id.PrefixEvent {
		t.Errorf("ID prefix: got %q, want %q", evt.ID.Prefix(), id.PrefixEvent)
	}
	if evt.Kind != KindTransfer {
		t.Errorf("kind: got %q, want %q", evt.Kind, KindTransfer)
	}
	if evt.From == nil || *evt.From != from || evt.To == nil || *evt.To != to {
		t.Errorf("parties: from %v, to %v", evt.From, evt.To)
	}
	if !evt.Amount.Equal(types.NewAmount(25)) {
		t.Errorf("amount: got %v, want 25", evt.Amount)
	}
	if !evt.Timestamp.Equal(at) {
		t.Errorf("timestamp: got %v, want %v", evt.Timestamp, at)
	}
}

func TestNewOmitsAbsentParties(t *testing.T) {
	to := types.MustAddress("0x0303030303030303030303030303030303030303")
	at := time.Now()

	mint := New(KindMint, nil, &to, types.NewAmount(1), at)
	if mint.From != nil {
		t.Error("mint event should have no sender")
	}

	burn := New(KindBurn, &to, nil, types.NewAmount(1), at)
	if burn.To != nil {
		t.Error("burn event should have no receiver")
	}

	if mint.ID.String() == burn.ID.String() {
		t.Error("events should get distinct IDs")
	}
}

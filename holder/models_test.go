package holder

import (
	"testing"
	"time"

	"github.com/xraph/tokenledger/types"
	"github.com/xraph/tokenledger/vesting"
)

var addr = types.MustAddress("0x0101010101010101010101010101010101010101")

func TestNewIsGenesisDefault(t *testing.T) {
	h := New(addr)

	if h.Address != addr {
		t.Errorf("address: got %s, want %s", h.Address, addr)
	}
	if !h.Balance.IsZero() {
		t.Errorf("balance: got %v, want 0", h.Balance)
	}
	if h.Whitelisted || h.Frozen {
		t.Errorf("flags: whitelisted=%v frozen=%v, want both false", h.Whitelisted, h.Frozen)
	}
	if h.HasVesting() {
		t.Error("genesis record should have no vesting schedule")
	}
}

func TestHasVesting(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		schedule *vesting.Schedule
		want     bool
	}{
		{"None", nil, false},
		{"ZeroTotal", vesting.New(types.Zero(), start, time.Hour), false},
		{"Attached", vesting.New(types.NewAmount(100), start, time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(addr)
			h.Vesting = tt.schedule
			if got := h.HasVesting(); got != tt.want {
				t.Errorf("HasVesting: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	h := New(addr)
	h.Balance = types.NewAmount(500)
	h.Whitelisted = true
	h.Vesting = vesting.New(types.NewAmount(500), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), time.Hour)

	dup := h.Clone()

	dup.Balance = types.NewAmount(1)
	dup.Frozen = true
	dup.Vesting.Release(types.NewAmount(100))

	if !h.Balance.Equal(types.NewAmount(500)) {
		t.Errorf("original balance changed: %v", h.Balance)
	}
	if h.Frozen {
		t.Error("original frozen flag changed")
	}
	if !h.Vesting.Released.IsZero() {
		t.Errorf("original schedule changed: released %v", h.Vesting.Released)
	}
}

func TestCloneNil(t *testing.T) {
	var h *Holder
	if h.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

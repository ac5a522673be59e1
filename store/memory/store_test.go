package memory

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tokenledger "github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/holder"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
	"github.com/xraph/tokenledger/vesting"
)

var (
	addrA = types.MustAddress("0x0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a")
	addrB = types.MustAddress("0x0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	addrC = types.MustAddress("0x0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c0c")
)

func TestHolderRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.GetHolder(ctx, addrA); !errors.Is(err, tokenledger.ErrHolderNotFound) {
		t.Errorf("GetHolder on empty store: err = %v, want ErrHolderNotFound", err)
	}

	h := holder.New(addrA)
	h.Balance = types.NewAmount(42)
	h.Whitelisted = true
	if err := s.SaveHolder(ctx, h); err != nil {
		t.Fatalf("SaveHolder: %v", err)
	}

	got, err := s.GetHolder(ctx, addrA)
	if err != nil {
		t.Fatalf("GetHolder: %v", err)
	}
	if got.Address != addrA {
		t.Errorf("address: got %s, want %s", got.Address, addrA)
	}
	if !got.Balance.Equal(types.NewAmount(42)) {
		t.Errorf("balance: got %v, want 42", got.Balance)
	}
	if !got.Whitelisted {
		t.Error("whitelisted flag lost")
	}
}

func TestDefensiveCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	h := holder.New(addrA)
	h.Balance = types.NewAmount(10)
	if err := s.SaveHolder(ctx, h); err != nil {
		t.Fatal(err)
	}

	// Mutating the saved record must not reach the store.
	h.Balance = types.NewAmount(999)
	h.Frozen = true

	got, err := s.GetHolder(ctx, addrA)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Balance.Equal(types.NewAmount(10)) || got.Frozen {
		t.Errorf("store shares memory with caller: balance %v, frozen %v", got.Balance, got.Frozen)
	}

	// And mutating a returned record must not reach the store either.
	got.Balance = types.NewAmount(0)
	again, err := s.GetHolder(ctx, addrA)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Balance.Equal(types.NewAmount(10)) {
		t.Errorf("returned record shares memory with store: %v", again.Balance)
	}
}

func TestListHoldersSorted(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, addr := range []types.Address{addrC, addrA, addrB} {
		if err := s.SaveHolder(ctx, holder.New(addr)); err != nil {
			t.Fatal(err)
		}
	}

	holders, err := s.ListHolders(ctx)
	if err != nil {
		t.Fatalf("ListHolders: %v", err)
	}
	if len(holders) != 3 {
		t.Fatalf("len: got %d, want 3", len(holders))
	}
	want := []types.Address{addrA, addrB, addrC}
	for i, h := range holders {
		if h.Address != want[i] {
			t.Errorf("holders[%d]: got %s, want %s", i, h.Address, want[i])
		}
	}

	n, err := s.HolderCount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("HolderCount: got %d, want 3", n)
	}
}

func TestStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	st, err := s.GetState(ctx)
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if st.Initialized {
		t.Error("fresh store should be uninitialized")
	}

	st.Initialized = true
	st.Owner = addrA
	st.TotalSupply = types.NewAmount(1000)
	if err := s.SaveState(ctx, st); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	got, err := s.GetState(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Initialized || got.Owner != addrA || !got.TotalSupply.Equal(types.NewAmount(1000)) {
		t.Errorf("state lost fields: %+v", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	s := New()

	st, _ := s.GetState(ctx)
	st.Initialized = true
	st.Owner = addrA
	st.TotalSupply = types.NewAmount(150)
	if err := s.SaveState(ctx, st); err != nil {
		t.Fatal(err)
	}

	h := holder.New(addrB)
	h.Balance = types.NewAmount(150)
	h.Whitelisted = true
	h.Vesting = vesting.New(types.NewAmount(150), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), time.Hour)
	if err := s.SaveHolder(ctx, h); err != nil {
		t.Fatal(err)
	}

	data, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored := New()
	if err := restored.Restore(ctx, data); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	got, err := restored.GetHolder(ctx, addrB)
	if err != nil {
		t.Fatalf("GetHolder after restore: %v", err)
	}
	if !got.Balance.Equal(types.NewAmount(150)) || !got.Whitelisted {
		t.Errorf("holder lost fields across restore: %+v", got)
	}
	if got.Vesting == nil {
		t.Fatal("vesting schedule lost across restore")
	}
	if !got.Vesting.Total.Equal(types.NewAmount(150)) || got.Vesting.Duration != time.Hour {
		t.Errorf("schedule fields: total %v, duration %v", got.Vesting.Total, got.Vesting.Duration)
	}

	gotState, err := restored.GetState(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if gotState.Owner != addrA || !gotState.TotalSupply.Equal(types.NewAmount(150)) {
		t.Errorf("state lost fields across restore: %+v", gotState)
	}

	// A restored store re-encodes to the identical byte sequence.
	data2, err := restored.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, data2) {
		t.Error("snapshot encoding is not deterministic across restore")
	}
}

func TestRestoreRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Restore(ctx, []byte{0xff, 0x00, 0x12}); err == nil {
		t.Error("Restore accepted garbage input")
	}
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping on open store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	checks := []struct {
		name string
		op   func() error
	}{
		{"Ping", func() error { return s.Ping(ctx) }},
		{"GetHolder", func() error { _, err := s.GetHolder(ctx, addrA); return err }},
		{"SaveHolder", func() error { return s.SaveHolder(ctx, holder.New(addrA)) }},
		{"ListHolders", func() error { _, err := s.ListHolders(ctx); return err }},
		{"HolderCount", func() error { _, err := s.HolderCount(ctx); return err }},
		{"GetState", func() error { _, err := s.GetState(ctx); return err }},
		{"SaveState", func() error { return s.SaveState(ctx, &store.State{}) }},
		{"Snapshot", func() error { _, err := s.Snapshot(ctx); return err }},
	}

	for _, tt := range checks {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, tokenledger.ErrStoreClosed) {
				t.Errorf("%s: err = %v, want ErrStoreClosed", tt.name, err)
			}
		})
	}
}

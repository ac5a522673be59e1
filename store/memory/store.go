// Package memory provides the in-memory reference Store.
//
// It is the natural backend for the engine's strictly serialized
// execution model and the store used throughout the test suite.
// Snapshots use deterministic (canonical) CBOR so two stores holding
// identical state produce byte-identical snapshots.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fxamacker/cbor/v2"

	tokenledger "github.com/xraph/tokenledger"
	"github.com/xraph/tokenledger/holder"
	"github.com/xraph/tokenledger/store"
	"github.com/xraph/tokenledger/types"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeUnixMicro // keep sub-second vesting offsets across restore
	var err error
	if encMode, err = opts.EncMode(); err != nil {
		panic(fmt.Sprintf("memory: cbor enc mode: %v", err))
	}
	if decMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(fmt.Sprintf("memory: cbor dec mode: %v", err))
	}
}

// snapshot is the CBOR wire form of a full ledger state.
type snapshot struct {
	State   *store.State     `cbor:"state"`
	Holders []*holder.Holder `cbor:"holders"`
}

// Store is an in-memory Store implementation.
type Store struct {
	mu      sync.RWMutex
	closed  bool
	state   *store.State
	holders map[types.Address]*holder.Holder
}

// New creates an empty in-memory store with a fresh, uninitialized
// global state record.
func New() *Store {
	return &Store{
		state:   &store.State{TotalSupply: types.Zero(), Entity: types.NewEntity()},
		holders: make(map[types.Address]*holder.Holder),
	}
}

// GetHolder returns the record for addr, or ErrHolderNotFound if the
// engine has never written one.
func (s *Store) GetHolder(_ context.Context, addr types.Address) (*holder.Holder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}

	h, ok := s.holders[addr]
	if !ok {
		return nil, tokenledger.ErrHolderNotFound
	}
	return h.Clone(), nil
}

// SaveHolder stores a copy of the record, keyed by its address.
func (s *Store) SaveHolder(_ context.Context, h *holder.Holder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}

	s.holders[h.Address] = h.Clone()
	return nil
}

// ListHolders returns copies of all materialized holder records,
// ordered by address.
func (s *Store) ListHolders(_ context.Context) ([]*holder.Holder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}

	result := make([]*holder.Holder, 0, len(s.holders))
	for _, h := range s.holders {
		result = append(result, h.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Address.String() < result[j].Address.String()
	})
	return result, nil
}

// HolderCount returns the number of materialized holder records.
func (s *Store) HolderCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, tokenledger.ErrStoreClosed
	}
	return len(s.holders), nil
}

// GetState returns a copy of the global state record.
func (s *Store) GetState(_ context.Context) (*store.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, tokenledger.ErrStoreClosed
	}
	return s.state.Clone(), nil
}

// SaveState stores a copy of the global state record.
func (s *Store) SaveState(_ context.Context, st *store.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}

	s.state = st.Clone()
	return nil
}

// Snapshot encodes the full ledger state as canonical CBOR.
func (s *Store) Snapshot(ctx context.Context) ([]byte, error) {
	holders, err := s.ListHolders(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}

	data, err := encMode.Marshal(&snapshot{State: state, Holders: holders})
	if err != nil {
		return nil, fmt.Errorf("memory: encode snapshot: %w", err)
	}
	return data, nil
}

// Restore replaces all state with the contents of a snapshot.
func (s *Store) Restore(_ context.Context, data []byte) error {
	var snap snapshot
	if err := decMode.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("memory: decode snapshot: %w", err)
	}
	if snap.State == nil {
		return fmt.Errorf("memory: decode snapshot: missing global state")
	}

	holders := make(map[types.Address]*holder.Holder, len(snap.Holders))
	for _, h := range snap.Holders {
		holders[h.Address] = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}

	s.state = snap.State
	s.holders = holders
	return nil
}

// Ping reports whether the store is usable.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return tokenledger.ErrStoreClosed
	}
	return nil
}

// Close marks the store closed. Subsequent calls fail with ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

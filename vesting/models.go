// Package vesting implements per-holder linear unlock schedules.
//
// A schedule locks units issued at mint time and releases them linearly
// between Start and Start+Duration. The schedule tracks Released, the
// units already counted as moved out of the vested bucket; the engine's
// transfer validator advances it on every outbound movement from the
// holder. Released never exceeds Total: additions saturate rather than
// error, so an internal accounting slip can never brick a holder.
package vesting

import (
	"math/big"
	"time"

	"github.com/xraph/tokenledger/id"
	"github.com/xraph/tokenledger/types"
)

// Schedule is a linear vesting schedule attached to a single holder.
// At most one schedule ever exists per holder; it is created on the
// first vesting mint and never deleted, remaining queryable after it is
// fully consumed (Released == Total).
type Schedule struct {
	ID       id.ScheduleID `json:"id" cbor:"id"`
	Total    types.Amount  `json:"total" cbor:"total"`
	Released types.Amount  `json:"released" cbor:"released"`
	Start    time.Time     `json:"start" cbor:"start"`
	Duration time.Duration `json:"duration" cbor:"duration"`
	types.Entity
}

// New creates a schedule for total units starting at start and fully
// vested after duration.
func New(total types.Amount, start time.Time, duration time.Duration) *Schedule {
	return &Schedule{
		ID:       id.NewScheduleID(),
		Total:    total,
		Released: types.Zero(),
		Start:    start,
		Duration: duration,
		Entity:   types.NewEntity(),
	}
}

// Active reports whether s represents an attached schedule. A schedule
// created with a zero total is indistinguishable from no schedule at
// all; every query then treats the holder as unscheduled. This is
// deliberate, documented behavior.
func Active(s *Schedule) bool {
	return s != nil && !s.Total.IsZero()
}

// VestedAt returns how many of Total have vested at the given instant:
// zero before Start, Total at or after Start+Duration, and otherwise
// floor(Total * elapsed / Duration). The multiplication happens before
// the division on arbitrary-precision integers, so the intermediate
// product cannot overflow for any representable Total.
func (s *Schedule) VestedAt(now time.Time) types.Amount {
	elapsed := now.Sub(s.Start)
	if elapsed < 0 {
		return types.Zero()
	}
	if elapsed >= s.Duration {
		return s.Total
	}

	num := new(big.Int).Mul(s.Total.BigInt(), big.NewInt(elapsed.Nanoseconds()))
	num.Quo(num, big.NewInt(s.Duration.Nanoseconds()))

	vested, err := types.AmountFromBigInt(num)
	if err != nil {
		// elapsed < Duration guarantees the quotient is below Total.
		panic("vesting: vested amount out of range: " + err.Error())
	}
	return vested
}

// AvailableAt returns the vested, not-yet-released portion at the given
// instant: VestedAt(now) - Released, floored at zero.
func (s *Schedule) AvailableAt(now time.Time) types.Amount {
	return s.VestedAt(now).SatSub(s.Released)
}

// Release records amount as moved out of the vested bucket. Released is
// clamped to Total rather than erroring on overshoot.
func (s *Schedule) Release(amount types.Amount) {
	s.Released = s.Released.Add(amount).Min(s.Total)
	s.Touch()
}

// FullyVestedAt returns the instant the schedule completes.
func (s *Schedule) FullyVestedAt() time.Time {
	return s.Start.Add(s.Duration)
}

// Consumed reports whether every scheduled unit has been released.
func (s *Schedule) Consumed() bool {
	return s.Released.Equal(s.Total)
}

// Clone returns a deep copy of the schedule.
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	dup := *s
	return &dup
}

package types

import "time"

// Entity is the base type for ledger records that carry timestamps.
// Embed it in a domain type to get creation/modification tracking.
type Entity struct {
	CreatedAt time.Time `json:"created_at" cbor:"created_at"`
	UpdatedAt time.Time `json:"updated_at" cbor:"updated_at"`
}

// NewEntity creates an Entity with current timestamps.
func NewEntity() Entity {
	now := time.Now().UTC()
	return Entity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the UpdatedAt timestamp to now.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// Age returns how long ago the record was created.
func (e Entity) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

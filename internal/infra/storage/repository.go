// Package storage provides the persistence layer for the life server.
// This package implements the repository pattern to keep the domain pure.
package storage

import (
	"context"
	"time"

	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/events"
)

// SaveSummary is the listing row for a save slot, without the payload.
type SaveSummary struct {
	SlotID    string    `json:"slotId"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaveRepository persists life snapshots keyed by slot id.
type SaveRepository interface {
	// Upsert stores the snapshot under the slot, creating it on first
	// write.
	Upsert(ctx context.Context, slotID, name string, state life.State) error

	// Get loads a snapshot. Returns (nil, nil) when the slot doesn't
	// exist.
	Get(ctx context.Context, slotID string) (*life.State, error)

	// List returns all slots, most recently updated first.
	List(ctx context.Context) ([]SaveSummary, error)

	// Delete removes a slot and its audit rows.
	Delete(ctx context.Context, slotID string) error
}

// EventRepository persists the structured audit trail.
type EventRepository interface {
	// Append adds one entry to the immutable ledger.
	Append(ctx context.Context, slotID string, entry events.Entry) error

	// ListBySlot retrieves a slot's entries, oldest first.
	ListBySlot(ctx context.Context, slotID string) ([]events.Entry, error)

	// ListByKind retrieves a slot's entries of one kind, oldest first.
	ListByKind(ctx context.Context, slotID string, kind events.Kind) ([]events.Entry, error)
}

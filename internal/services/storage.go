package services

import (
	"context"

	"github.com/google/uuid"

	"fablestream/pkg/state"
)

// Storage persists world-state snapshots. Snapshots are opaque to the
// store: a loaded state must be byte-for-byte the structure that was saved.
type Storage interface {
	// Ping tests the storage connection.
	Ping(ctx context.Context) error

	// Close closes the storage connection.
	Close() error

	// SaveWorldState saves a world-state snapshot for the session.
	SaveWorldState(ctx context.Context, id uuid.UUID, ws state.WorldState) error

	// LoadWorldState retrieves a world-state snapshot. It returns
	// (nil, nil) when the session does not exist.
	LoadWorldState(ctx context.Context, id uuid.UUID) (*state.WorldState, error)

	// DeleteWorldState removes a session's snapshot.
	DeleteWorldState(ctx context.Context, id uuid.UUID) error
}

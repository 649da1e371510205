package ports

import (
	"context"

	"github.com/aretw0/bombrisk/pkg/domain"
)

// GaugeStore defines the interface for persisting widget snapshots.
// This lets stateless hosts rebuild the same widget on every request.
type GaugeStore interface {
	// Save persists the snapshot under its ID.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a widget ID.
	// Returns domain.ErrSessionNotFound if the widget does not exist.
	Load(ctx context.Context, id string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a widget ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored widgets.
	List(ctx context.Context) ([]string, error)
}

package ports

import (
	"context"

	"github.com/aretw0/exinc/pkg/domain"
)

// ResultStore defines the interface for persisting expansion records.
type ResultStore interface {
	// Save persists the record under record.ID.
	Save(ctx context.Context, record *domain.Record) error

	// Load retrieves a record by ID.
	// Returns domain.ErrResultNotFound if the record does not exist.
	Load(ctx context.Context, id string) (*domain.Record, error)

	// Delete removes a record. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored records.
	List(ctx context.Context) ([]string, error)
}

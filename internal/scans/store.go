package scans

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/soilscan/pkg/pagination"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Store is the persistence backend behind System. Implementations assign
// ID and CreatedAt on Append and order reads by CreatedAt descending with
// later inserts first on ties.
type Store interface {
	Append(ctx context.Context, s Scan) (Scan, error)
	// List returns at most limit scans, filtered by user when userID is set.
	List(ctx context.Context, userID *string, limit int) ([]Scan, error)
	Find(ctx context.Context, id uuid.UUID) (Scan, error)
	Page(ctx context.Context, page pagination.PageRequest, filters Filters) ([]Scan, int, error)
	Count(ctx context.Context, filters Filters) (int, error)
}

// NewID returns a time-ordered scan ID.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

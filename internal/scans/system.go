package scans

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/soilscan/pkg/pagination"
)

// System is the scan history contract.
type System interface {
	Handler() *Handler

	// Record persists one scan. Failures wrap ErrStorage and are not
	// retried. A cancelled ctx creates nothing.
	Record(ctx context.Context, cmd RecordCommand) (*Scan, error)

	// ListByUser returns scans newest first, restricted to userID when set.
	// A nil limit means the configured maximum. The result is never nil.
	ListByUser(ctx context.Context, userID *string, limit *int) ([]Scan, error)

	Find(ctx context.Context, id uuid.UUID) (*Scan, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Scan], error)

	Count(ctx context.Context, filters Filters) (int, error)
}

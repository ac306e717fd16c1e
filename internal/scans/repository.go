package scans

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/soilscan/pkg/pagination"
	"github.com/JaimeStill/soilscan/pkg/storage"
)

type repo struct {
	store      Store
	images     storage.System
	logger     *slog.Logger
	pagination pagination.Config
	maxLimit   int
}

// New creates a System over store. images may be nil when image retention
// is disabled. maxLimit caps ListByUser.
func New(
	store Store,
	images storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxLimit int,
) System {
	return &repo{
		store:      store,
		images:     images,
		logger:     logger.With("system", "scans"),
		pagination: pagination,
		maxLimit:   maxLimit,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.images, r.logger, r.pagination)
}

func (r *repo) Record(ctx context.Context, cmd RecordCommand) (*Scan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := r.store.Append(ctx, cmd.scan())
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, wrapStorage(err)
	}

	r.logger.Info("scan recorded", "id", s.ID, "soil_type", s.SoilType, "confidence", s.Confidence)
	return &s, nil
}

func (r *repo) ListByUser(ctx context.Context, userID *string, limit *int) ([]Scan, error) {
	n := r.maxLimit
	if limit != nil {
		if *limit < 0 {
			return nil, ErrInvalidLimit
		}
		n = min(*limit, r.maxLimit)
	}
	if n == 0 {
		return []Scan{}, nil
	}

	out, err := r.store.List(ctx, userID, n)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return out, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Scan, error) {
	s, err := r.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Scan], error) {
	page.Normalize(r.pagination)

	data, total, err := r.store.Page(ctx, page, filters)
	if err != nil {
		return nil, wrapStorage(err)
	}

	result := pagination.NewPageResult(data, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Count(ctx context.Context, filters Filters) (int, error) {
	n, err := r.store.Count(ctx, filters)
	if err != nil {
		return 0, wrapStorage(err)
	}
	return n, nil
}

// wrapStorage marks err as a storage failure unless it already is one.
func wrapStorage(err error) error {
	if isStorage(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

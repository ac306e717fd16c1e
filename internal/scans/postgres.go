package scans

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/soilscan/pkg/pagination"
	"github.com/JaimeStill/soilscan/pkg/query"
	"github.com/JaimeStill/soilscan/pkg/repository"
)

const insertScan = `
	INSERT INTO scans(id, user_id, soil_type, confidence, report, image_key)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, user_id, soil_type, confidence, report, image_key, created_at`

type postgresStore struct {
	db *sql.DB
}

// NewPostgresStore returns a Store over the scans table.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (p *postgresStore) Append(ctx context.Context, s Scan) (Scan, error) {
	payload, err := json.Marshal(s.Report)
	if err != nil {
		return Scan{}, fmt.Errorf("encode report: %w", err)
	}

	args := []any{NewID(), s.UserID, s.SoilType, s.Confidence, string(payload), s.ImageKey}

	out, err := repository.WithTx(ctx, p.db, func(tx *sql.Tx) (Scan, error) {
		return repository.QueryOne(ctx, tx, insertScan, args, scanScan)
	})
	if err != nil {
		return Scan{}, storageError("insert scan", repository.MapError(err, ErrNotFound, ErrDuplicate))
	}
	return out, nil
}

func (p *postgresStore) List(ctx context.Context, userID *string, limit int) ([]Scan, error) {
	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", userID).
		BuildLimit(limit)

	out, err := repository.QueryMany(ctx, p.db, q, args, scanScan)
	if err != nil {
		return nil, storageError("list scans", err)
	}
	return out, nil
}

func (p *postgresStore) Find(ctx context.Context, id uuid.UUID) (Scan, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, p.db, q, args, scanScan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Scan{}, ErrNotFound
		}
		return Scan{}, storageError("find scan", err)
	}
	return s, nil
}

func (p *postgresStore) Page(ctx context.Context, page pagination.PageRequest, filters Filters) ([]Scan, int, error) {
	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "SoilType", "UserID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryCount(ctx, p.db, countSQL, countArgs)
	if err != nil {
		return nil, 0, storageError("count scans", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	out, err := repository.QueryMany(ctx, p.db, pageSQL, pageArgs, scanScan)
	if err != nil {
		return nil, 0, storageError("page scans", err)
	}
	return out, total, nil
}

func (p *postgresStore) Count(ctx context.Context, filters Filters) (int, error) {
	q, args := filters.Apply(query.NewBuilder(projection)).BuildCount()

	n, err := repository.QueryCount(ctx, p.db, q, args)
	if err != nil {
		return 0, storageError("count scans", err)
	}
	return n, nil
}

func scanScan(sc repository.Scanner) (Scan, error) {
	var (
		s       Scan
		payload []byte
	)
	err := sc.Scan(
		&s.ID,
		&s.UserID,
		&s.SoilType,
		&s.Confidence,
		&payload,
		&s.ImageKey,
		&s.CreatedAt,
	)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(payload, &s.Report); err != nil {
		return s, fmt.Errorf("decode report %s: %w", s.ID, err)
	}
	return s, nil
}

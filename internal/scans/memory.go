package scans

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/soilscan/pkg/pagination"
)

type memoryStore struct {
	mu    sync.RWMutex
	scans []Scan
	now   func() time.Time
}

// NewMemoryStore returns a process-local Store. Records are lost on exit.
func NewMemoryStore() Store {
	return &memoryStore{now: time.Now}
}

func (m *memoryStore) Append(ctx context.Context, s Scan) (Scan, error) {
	if err := ctx.Err(); err != nil {
		return Scan{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s.ID = NewID()
	s.CreatedAt = m.now().UTC()
	if n := len(m.scans); n > 0 && s.CreatedAt.Before(m.scans[n-1].CreatedAt) {
		s.CreatedAt = m.scans[n-1].CreatedAt
	}

	m.scans = append(m.scans, s)
	return s, nil
}

func (m *memoryStore) List(ctx context.Context, userID *string, limit int) ([]Scan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Scan, 0, min(limit, len(m.scans)))
	for i := len(m.scans) - 1; i >= 0 && len(out) < limit; i-- {
		s := m.scans[i]
		if userID != nil && (s.UserID == nil || *s.UserID != *userID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryStore) Find(ctx context.Context, id uuid.UUID) (Scan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.scans {
		if s.ID == id {
			return s, nil
		}
	}
	return Scan{}, ErrNotFound
}

func (m *memoryStore) Page(ctx context.Context, page pagination.PageRequest, filters Filters) ([]Scan, int, error) {
	matched := m.filter(filters, page.Search)

	if len(page.Sort) > 0 {
		slices.SortStableFunc(matched, func(a, b Scan) int {
			for _, f := range page.Sort {
				c := compareField(a, b, f.Field)
				if f.Descending {
					c = -c
				}
				if c != 0 {
					return c
				}
			}
			return 0
		})
	}

	total := len(matched)
	start := min(max(page.Offset(), 0), total)
	end := min(start+page.PageSize, total)
	return matched[start:end], total, nil
}

func (m *memoryStore) Count(ctx context.Context, filters Filters) (int, error) {
	return len(m.filter(filters, nil)), nil
}

// filter returns matching scans newest first.
func (m *memoryStore) filter(f Filters, search *string) []Scan {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Scan, 0)
	for i := len(m.scans) - 1; i >= 0; i-- {
		s := m.scans[i]
		if f.SoilType != nil && s.SoilType != *f.SoilType {
			continue
		}
		if f.UserID != nil && (s.UserID == nil || *s.UserID != *f.UserID) {
			continue
		}
		if search != nil && *search != "" && !matchesSearch(s, *search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesSearch(s Scan, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(s.SoilType), term) {
		return true
	}
	return s.UserID != nil && strings.Contains(strings.ToLower(*s.UserID), term)
}

func compareField(a, b Scan, field string) int {
	switch field {
	case "CreatedAt":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "SoilType":
		return cmp.Compare(a.SoilType, b.SoilType)
	case "Confidence":
		return cmp.Compare(a.Confidence, b.Confidence)
	case "ID":
		return strings.Compare(a.ID.String(), b.ID.String())
	}
	return 0
}

package scans

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/soilscan/internal/soil"
	"github.com/JaimeStill/soilscan/pkg/query"
)

type rowStub struct {
	values []any
	err    error
}

func (r rowStub) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case **string:
			*p = r.values[i].(*string)
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}

func TestScanScanDecodesReport(t *testing.T) {
	report := soil.NewSynthesizer(soil.Default(), soil.NewSource(4)).Synthesize("Cinder Soil", 71)
	payload, _ := json.Marshal(report)
	id := NewID()
	user := "grower-7"
	now := time.Now().UTC()

	s, err := scanScan(rowStub{values: []any{id, &user, "Cinder Soil", "71.0%", payload, (*string)(nil), now}})
	if err != nil {
		t.Fatalf("scanScan: %v", err)
	}

	if s.ID != id || *s.UserID != user || s.ImageKey != nil || !s.CreatedAt.Equal(now) {
		t.Errorf("scan = %+v", s)
	}
	if s.Report.SoilType != report.SoilType || s.Report.Nitrogen != report.Nitrogen {
		t.Errorf("report = %+v", s.Report)
	}
}

func TestScanScanBadPayload(t *testing.T) {
	_, err := scanScan(rowStub{values: []any{NewID(), (*string)(nil), "x", "1.0%", []byte("{"), (*string)(nil), time.Now()}})
	if err == nil || !strings.Contains(err.Error(), "decode report") {
		t.Errorf("err = %v", err)
	}
}

func TestListQueryOrdersNewestFirst(t *testing.T) {
	q, args := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", (*string)(nil)).
		BuildLimit(10)

	if !strings.HasSuffix(q, "ORDER BY s.created_at DESC, s.id DESC LIMIT 10") {
		t.Errorf("query = %s", q)
	}
	if len(args) != 0 {
		t.Errorf("args = %v", args)
	}
}

func TestNewIDIsTimeOrdered(t *testing.T) {
	a, b := NewID(), NewID()
	if a.Version() != 7 {
		t.Errorf("version = %d, want 7", a.Version())
	}
	if strings.Compare(a.String(), b.String()) >= 0 {
		t.Errorf("ids not increasing: %s then %s", a, b)
	}
}

func TestWrapStorageIsIdempotent(t *testing.T) {
	once := wrapStorage(errors.New("disk full"))
	twice := wrapStorage(once)
	if once != twice {
		t.Error("wrapStorage rewrapped a storage error")
	}
	if !errors.Is(twice, ErrStorage) {
		t.Error("not a storage error")
	}
}

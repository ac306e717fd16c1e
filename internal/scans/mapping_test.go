package scans_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/JaimeStill/soilscan/internal/scans"
)

func TestFiltersFromQuery(t *testing.T) {
	f := scans.FiltersFromQuery(url.Values{"soil_type": {"Peat Soil"}, "user_id": {"u9"}})
	if f.SoilType == nil || *f.SoilType != "Peat Soil" {
		t.Errorf("soil_type = %v", f.SoilType)
	}
	if f.UserID == nil || *f.UserID != "u9" {
		t.Errorf("user_id = %v", f.UserID)
	}

	empty := scans.FiltersFromQuery(url.Values{})
	if empty.SoilType != nil || empty.UserID != nil {
		t.Errorf("empty = %+v", empty)
	}
}

func TestListParamsFromQuery(t *testing.T) {
	user, limit, err := scans.ListParamsFromQuery(url.Values{"user_id": {"u1"}, "limit": {"7"}})
	if err != nil {
		t.Fatal(err)
	}
	if *user != "u1" || *limit != 7 {
		t.Errorf("user = %s limit = %d", *user, *limit)
	}

	user, limit, err = scans.ListParamsFromQuery(url.Values{})
	if err != nil || user != nil || limit != nil {
		t.Errorf("empty = %v %v %v", user, limit, err)
	}

	if _, _, err := scans.ListParamsFromQuery(url.Values{"limit": {"x"}}); !errors.Is(err, scans.ErrInvalidLimit) {
		t.Errorf("err = %v", err)
	}
}

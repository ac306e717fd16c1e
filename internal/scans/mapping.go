package scans

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/soilscan/pkg/query"
)

var projection = query.
	NewProjectionMap("public", "scans", "s").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("soil_type", "SoilType").
	Project("confidence", "Confidence").
	Project("report", "Report").
	Project("image_key", "ImageKey").
	Project("created_at", "CreatedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

// Filters narrows paged queries. Nil fields are ignored.
type Filters struct {
	SoilType *string `json:"soil_type,omitempty"`
	UserID   *string `json:"user_id,omitempty"`
}

// Apply adds the filter conditions to b.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("SoilType", f.SoilType).
		WhereEquals("UserID", f.UserID)
}

// FiltersFromQuery reads soil_type and user_id.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if st := values.Get("soil_type"); st != "" {
		f.SoilType = &st
	}
	if uid := values.Get("user_id"); uid != "" {
		f.UserID = &uid
	}
	return f
}

// ListParamsFromQuery reads user_id and limit for ListByUser. A missing
// limit is nil; a malformed one is reported as ErrInvalidLimit.
func ListParamsFromQuery(values url.Values) (userID *string, limit *int, err error) {
	if uid := values.Get("user_id"); uid != "" {
		userID = &uid
	}
	if l := values.Get("limit"); l != "" {
		n, convErr := strconv.Atoi(l)
		if convErr != nil {
			return nil, nil, ErrInvalidLimit
		}
		limit = &n
	}
	return userID, limit, nil
}

package scans

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("scan not found")
	ErrDuplicate    = errors.New("scan already exists")
	ErrStorage      = errors.New("scan storage failure")
	ErrInvalidLimit = errors.New("limit must not be negative")
	ErrInvalidID    = errors.New("invalid scan id")
	ErrNoImage      = errors.New("scan has no stored image")
)

// MapHTTPStatus maps scan errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoImage):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidLimit), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrStorage):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func isStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

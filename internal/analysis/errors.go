package analysis

import (
	"context"
	"errors"
	"net/http"

	"github.com/JaimeStill/soilscan/internal/classifier"
	"github.com/JaimeStill/soilscan/internal/scans"
)

var (
	ErrInvalidImage      = errors.New("invalid image")
	ErrImageTooLarge     = errors.New("image exceeds maximum upload size")
	ErrClassifierTimeout = errors.New("classifier timed out")
)

// MapHTTPStatus maps analysis errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrClassifierTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, classifier.ErrUnavailable), errors.Is(err, classifier.ErrInvalidResponse):
		return http.StatusBadGateway
	case errors.Is(err, scans.ErrStorage), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

package analysis

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/soilscan/pkg/formatting"
	"github.com/JaimeStill/soilscan/pkg/handlers"
	"github.com/JaimeStill/soilscan/pkg/routes"
)

const (
	// UserHeader carries the opaque user reference set by an upstream
	// authenticating proxy.
	UserHeader = "X-User-ID"
	// ScanHeader reports the ID of the recorded scan.
	ScanHeader = "X-Scan-ID"
)

// Handler serves the analyze endpoint.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler that rejects uploads over maxUploadSize bytes.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "analysis"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the analysis route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analyze",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Analyze},
		},
	}
}

// Analyze accepts a multipart "image" upload and responds with the soil
// report. The scan ID is returned in X-Scan-ID when history was recorded.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w (%s)", ErrImageTooLarge, formatting.FormatBytes(h.maxUploadSize, 0))
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidImage)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidImage)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidImage)
		return
	}

	cmd := AnalyzeCommand{
		Image:       data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		UserID:      userFromRequest(r),
	}

	result, err := h.sys.Analyze(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if result.Recorded {
		w.Header().Set(ScanHeader, result.Scan.ID.String())
	}
	handlers.RespondJSON(w, http.StatusOK, result.Report)
}

func userFromRequest(r *http.Request) *string {
	id := strings.TrimSpace(r.Header.Get(UserHeader))
	if id == "" {
		return nil
	}
	return &id
}

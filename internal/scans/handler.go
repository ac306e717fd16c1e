package scans

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/soilscan/pkg/handlers"
	"github.com/JaimeStill/soilscan/pkg/pagination"
	"github.com/JaimeStill/soilscan/pkg/routes"
	"github.com/JaimeStill/soilscan/pkg/storage"
)

// Handler serves scan history.
type Handler struct {
	sys        System
	images     storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest is the body of the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// CountResult is the body of the count endpoint.
type CountResult struct {
	Count int `json:"count"`
}

// NewHandler creates a Handler. images may be nil.
func NewHandler(
	sys System,
	images storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		images:     images,
		logger:     logger.With("handler", "scans"),
		pagination: pagination,
	}
}

// Routes returns the scan route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/scans",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.ListByUser},
			{Method: "GET", Pattern: "/page", Handler: h.List},
			{Method: "GET", Pattern: "/count", Handler: h.Count},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/image", Handler: h.Image},
		},
	}
}

// ListByUser returns recent scans, optionally for one user_id and capped by limit.
func (h *Handler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, limit, err := ListParamsFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	out, err := h.sys.ListByUser(r.Context(), userID, limit)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, out)
}

// List returns a page of scans filtered by query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search is List with a JSON body.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Count returns the number of scans matching the query filters.
func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.sys.Count(r.Context(), FiltersFromQuery(r.URL.Query()))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CountResult{Count: n})
}

// Find returns one scan.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	s, err := h.find(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

// Image streams the photo stored with a scan.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	s, err := h.find(r)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	if s.ImageKey == nil || h.images == nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNoImage)
		return
	}

	blob, err := h.images.Download(r.Context(), *s.ImageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = ErrNoImage
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer blob.Body.Close()

	w.Header().Set("Content-Type", blob.ContentType)
	if blob.ContentLength > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(blob.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, blob.Body); err != nil {
		h.logger.Warn("image stream interrupted", "id", s.ID, "error", err)
	}
}

func (h *Handler) find(r *http.Request) (*Scan, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, ErrInvalidID
	}
	return h.sys.Find(r.Context(), id)
}

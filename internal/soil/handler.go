package soil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/soilscan/pkg/handlers"
	"github.com/JaimeStill/soilscan/pkg/routes"
)

// ErrInvalidRequest indicates a malformed synthesis request body.
var ErrInvalidRequest = errors.New("invalid synthesis request")

// SynthesizeRequest is the body accepted by the report endpoint.
type SynthesizeRequest struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ProfileResult is a catalog lookup response. Cataloged is false when
// the profile returned is the fallback for an unknown label.
type ProfileResult struct {
	Profile   Profile `json:"profile"`
	Cataloged bool    `json:"cataloged"`
}

// Handler exposes the catalog and the synthesizer over HTTP.
type Handler struct {
	synth  *Synthesizer
	logger *slog.Logger
}

// NewHandler creates a Handler backed by synth.
func NewHandler(synth *Synthesizer, logger *slog.Logger) *Handler {
	return &Handler{
		synth:  synth,
		logger: logger.With("handler", "soils"),
	}
}

// Routes returns the route group for catalog endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/soils",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{label}", Handler: h.Find},
			{Method: "POST", Pattern: "/report", Handler: h.Report},
		},
	}
}

// List returns every cataloged profile.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.synth.Catalog().Profiles())
}

// Find resolves the label path parameter against the catalog.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, ok := h.synth.Catalog().Resolve(r.PathValue("label"))
	handlers.RespondJSON(w, http.StatusOK, ProfileResult{Profile: p, Cataloged: ok})
}

// Report synthesizes a report from a label and confidence without recording it.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	var req SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.synth.Synthesize(req.Label, req.Confidence))
}

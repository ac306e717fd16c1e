package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/soilscan/internal/config"
	"github.com/JaimeStill/soilscan/internal/soil"
	"github.com/JaimeStill/soilscan/pkg/openapi"
	"github.com/JaimeStill/soilscan/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	spec []byte,
	logger *slog.Logger,
) {
	routes.Register(
		mux,
		soil.NewHandler(domain.Synthesizer, logger).Routes(),
		domain.Scans.Handler().Routes(),
		domain.Analysis.Handler(cfg.Analysis.MaxUploadSizeBytes()).Routes(),
	)

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
}

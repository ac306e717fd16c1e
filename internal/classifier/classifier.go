// Package classifier turns soil photographs into a (label, confidence)
// prediction by calling an inference service.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// Prediction is a classifier result. Confidence is a percentage.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Image is the payload sent for classification.
type Image struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Classifier predicts the soil class of an image.
type Classifier interface {
	Classify(ctx context.Context, img Image) (Prediction, error)
}

// New builds the provider named in cfg. client is used by the http
// provider; nil selects a client with cfg's timeout.
func New(cfg *Config, client *http.Client, logger *slog.Logger) (Classifier, error) {
	logger = logger.With("system", "classifier", "provider", cfg.Provider)

	switch cfg.Provider {
	case ProviderHTTP:
		if client == nil {
			client = &http.Client{Timeout: cfg.TimeoutDuration()}
		}
		return newHTTP(cfg, client, logger), nil
	case ProviderStatic:
		logger.Warn("no inference endpoint configured, every image classifies as static label",
			"label", cfg.StaticLabel, "confidence", cfg.StaticConfidence)
		return Static(Prediction{Label: cfg.StaticLabel, Confidence: cfg.StaticConfidence}), nil
	}
	return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
}

// Static always returns the same prediction.
type Static Prediction

func (s Static) Classify(ctx context.Context, _ Image) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}
	return Prediction(s), nil
}

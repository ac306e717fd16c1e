// Package analysis runs the soil photo pipeline: classify the image,
// synthesize a report for the predicted label, and record the scan.
package analysis

import (
	"context"

	"github.com/JaimeStill/soilscan/internal/classifier"
	"github.com/JaimeStill/soilscan/internal/scans"
	"github.com/JaimeStill/soilscan/internal/soil"
)

// AnalyzeCommand is one uploaded photo.
type AnalyzeCommand struct {
	Image       []byte
	Filename    string
	ContentType string
	UserID      *string
}

// Result is the outcome of Analyze. Scan is nil when Recorded is false.
type Result struct {
	Report     soil.Report
	Prediction classifier.Prediction
	Scan       *scans.Scan
	Recorded   bool
}

// System analyzes soil photos.
type System interface {
	Handler(maxUploadSize int64) *Handler
	Analyze(ctx context.Context, cmd AnalyzeCommand) (*Result, error)
}

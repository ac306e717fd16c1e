// Package scans records synthesized soil reports as an append-only scan
// history and serves it back most recent first.
package scans

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/soilscan/internal/soil"
)

// Scan is one immutable history record.
type Scan struct {
	ID         uuid.UUID   `json:"id"`
	UserID     *string     `json:"user_id"`
	SoilType   string      `json:"soil_type"`
	Confidence string      `json:"confidence"`
	Report     soil.Report `json:"report"`
	ImageKey   *string     `json:"image_key,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// RecordCommand carries one analysis outcome to Record. Label is the
// classifier output. The stored confidence is taken from Report.
type RecordCommand struct {
	Report   soil.Report
	Label    string
	UserID   *string
	ImageKey *string
}

func (c RecordCommand) scan() Scan {
	return Scan{
		UserID:     c.UserID,
		SoilType:   c.Label,
		Confidence: c.Report.Confidence,
		Report:     c.Report,
		ImageKey:   c.ImageKey,
	}
}

package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/soilscan/internal/classifier"
	"github.com/JaimeStill/soilscan/internal/metrics"
	"github.com/JaimeStill/soilscan/internal/scans"
	"github.com/JaimeStill/soilscan/internal/soil"
	"github.com/JaimeStill/soilscan/pkg/storage"
)

type pipeline struct {
	classifier     classifier.Classifier
	synth          *soil.Synthesizer
	scans          scans.System
	images         storage.System
	metrics        *metrics.Metrics
	logger         *slog.Logger
	timeout        time.Duration
	requireDurable bool
}

// Deps are the collaborators of the analysis System.
type Deps struct {
	Classifier        classifier.Classifier
	Synthesizer       *soil.Synthesizer
	Scans             scans.System
	Images            storage.System
	Metrics           *metrics.Metrics
	Logger            *slog.Logger
	ClassifierTimeout time.Duration
}

// New creates an analysis System. Deps.Images may be nil.
func New(deps Deps, cfg Config) System {
	return &pipeline{
		classifier:     deps.Classifier,
		synth:          deps.Synthesizer,
		scans:          deps.Scans,
		images:         deps.Images,
		metrics:        deps.Metrics,
		logger:         deps.Logger.With("system", "analysis"),
		timeout:        deps.ClassifierTimeout,
		requireDurable: cfg.RequireDurable,
	}
}

func (p *pipeline) Handler(maxUploadSize int64) *Handler {
	return NewHandler(p, p.logger, maxUploadSize)
}

func (p *pipeline) Analyze(ctx context.Context, cmd AnalyzeCommand) (*Result, error) {
	contentType, err := validateImage(cmd)
	if err != nil {
		p.metrics.ObserveAnalysis(metrics.OutcomeFailed)
		return nil, err
	}

	img := classifier.Image{Data: cmd.Image, Filename: cmd.Filename, ContentType: contentType}
	pred, imageKey, err := p.classifyAndStore(ctx, img)
	if err != nil {
		p.metrics.ObserveAnalysis(metrics.OutcomeFailed)
		return nil, err
	}

	report := p.synth.Synthesize(pred.Label, pred.Confidence)
	p.metrics.ObserveReport(pred.Label)

	if err := ctx.Err(); err != nil {
		p.discardImage(ctx, imageKey)
		p.metrics.ObserveAnalysis(metrics.OutcomeFailed)
		return nil, err
	}

	scan, err := p.scans.Record(ctx, scans.RecordCommand{
		Report:   report,
		Label:    pred.Label,
		UserID:   cmd.UserID,
		ImageKey: imageKey,
	})
	p.metrics.ObserveRecord(err)

	if err != nil {
		p.discardImage(ctx, imageKey)

		if errors.Is(err, scans.ErrStorage) && !p.requireDurable {
			p.logger.Warn("scan not recorded, returning report without history", "label", pred.Label, "error", err)
			p.metrics.ObserveAnalysis(metrics.OutcomeUnrecorded)
			return &Result{Report: report, Prediction: pred}, nil
		}

		p.metrics.ObserveAnalysis(metrics.OutcomeFailed)
		return nil, err
	}

	p.metrics.ObserveAnalysis(metrics.OutcomeRecorded)
	return &Result{Report: report, Prediction: pred, Scan: scan, Recorded: true}, nil
}

// classifyAndStore classifies img and uploads it concurrently. Upload
// failures are logged and leave the key nil.
func (p *pipeline) classifyAndStore(ctx context.Context, img classifier.Image) (classifier.Prediction, *string, error) {
	var (
		pred     classifier.Prediction
		imageKey *string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cctx, cancel := context.WithTimeout(gctx, p.timeout)
		defer cancel()

		start := time.Now()
		out, err := p.classifier.Classify(cctx, img)
		p.metrics.ObserveClassification(time.Since(start), err)

		if err != nil {
			if errors.Is(cctx.Err(), context.DeadlineExceeded) && gctx.Err() == nil {
				return fmt.Errorf("%w after %v: %w", ErrClassifierTimeout, p.timeout, err)
			}
			return fmt.Errorf("classify image: %w", err)
		}
		pred = out
		return nil
	})

	if p.images != nil {
		key := imageKeyFor(img.Filename)
		g.Go(func() error {
			err := p.images.Upload(gctx, key, bytes.NewReader(img.Data), img.ContentType)
			p.metrics.ObserveUpload(err)
			if err != nil {
				p.logger.Warn("image upload failed, scan will have no image", "key", key, "error", err)
				return nil
			}
			imageKey = &key
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.discardImage(ctx, imageKey)
		return classifier.Prediction{}, nil, err
	}
	return pred, imageKey, nil
}

// discardImage removes an uploaded image whose scan was not recorded.
func (p *pipeline) discardImage(ctx context.Context, key *string) {
	if key == nil || p.images == nil {
		return
	}
	if err := p.images.Delete(context.WithoutCancel(ctx), *key); err != nil {
		p.logger.Warn("compensating image delete failed", "key", *key, "error", err)
	}
}

func validateImage(cmd AnalyzeCommand) (string, error) {
	if len(cmd.Image) == 0 {
		return "", fmt.Errorf("%w: empty upload", ErrInvalidImage)
	}

	ct := strings.TrimSpace(cmd.ContentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(cmd.Image)
	}
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: content type %q", ErrInvalidImage, ct)
	}
	return ct, nil
}

func imageKeyFor(filename string) string {
	return fmt.Sprintf("scans/%s/%s", uuid.NewString(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" || name == "" {
		name = "image"
	}
	return url.PathEscape(name)
}

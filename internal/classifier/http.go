package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

const maxResponseBytes = 1 << 20

type httpClassifier struct {
	endpoint string
	client   *http.Client
	scale    bool
	logger   *slog.Logger
}

func newHTTP(cfg *Config, client *http.Client, logger *slog.Logger) *httpClassifier {
	return &httpClassifier{
		endpoint: strings.TrimSuffix(cfg.BaseURL, "/") + "/predict",
		client:   client,
		scale:    cfg.ScaleConfidence,
		logger:   logger,
	}
}

func (h *httpClassifier) Classify(ctx context.Context, img Image) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, err
	}

	body, contentType, err := encodeImage(img)
	if err != nil {
		return Prediction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return Prediction{}, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Prediction{}, ctx.Err()
		}
		return Prediction{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return Prediction{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Prediction{}, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, bytes.TrimSpace(raw))
	}

	var p Prediction
	if err := json.Unmarshal(raw, &p); err != nil {
		return Prediction{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if strings.TrimSpace(p.Label) == "" {
		return Prediction{}, fmt.Errorf("%w: empty label", ErrInvalidResponse)
	}
	if h.scale {
		p.Confidence *= 100
	}

	h.logger.Debug("image classified", "label", p.Label, "confidence", p.Confidence, "duration", time.Since(start))
	return p, nil
}

func encodeImage(img Image) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	filename := img.Filename
	if filename == "" {
		filename = "image"
	}

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	hdr.Set("Content-Type", img.ContentType)

	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, "", fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", fmt.Errorf("write image part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

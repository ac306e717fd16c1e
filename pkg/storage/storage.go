// Package storage stores scan images in a blob container.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JaimeStill/soilscan/pkg/lifecycle"
)

// Blob is a downloaded object. The caller closes Body.
type Blob struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// System is a keyed blob store.
type System interface {
	Start(lc *lifecycle.Coordinator) error
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	// Download returns ErrNotFound for a missing key.
	Download(ctx context.Context, key string) (*Blob, error)
	// Delete returns ErrNotFound for a missing key.
	Delete(ctx context.Context, key string) error
	Ready() bool
}

// New builds the provider named in cfg. It returns nil, nil when storage
// is disabled.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Provider {
	case ProviderAzure:
		return newAzure(cfg, logger)
	case ProviderMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return ErrInvalidKey
	}
	for seg := range strings.SplitSeq(key, "/") {
		if seg == ".." || seg == "." || seg == "" {
			return ErrInvalidKey
		}
	}
	return nil
}

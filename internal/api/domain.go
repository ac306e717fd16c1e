package api

import (
	"fmt"

	"github.com/JaimeStill/soilscan/internal/analysis"
	"github.com/JaimeStill/soilscan/internal/classifier"
	"github.com/JaimeStill/soilscan/internal/config"
	"github.com/JaimeStill/soilscan/internal/scans"
	"github.com/JaimeStill/soilscan/internal/soil"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Synthesizer *soil.Synthesizer
	Scans       scans.System
	Analysis    analysis.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	synth := newSynthesizer(cfg, runtime)

	store, err := newStore(cfg, runtime)
	if err != nil {
		return nil, err
	}

	scansSystem := scans.New(
		store,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
		cfg.Scans.MaxLimit,
	)

	c, err := classifier.New(&cfg.Classifier, nil, runtime.Logger)
	if err != nil {
		return nil, err
	}

	analysisSystem := analysis.New(analysis.Deps{
		Classifier:        c,
		Synthesizer:       synth,
		Scans:             scansSystem,
		Images:            runtime.Storage,
		Metrics:           runtime.Metrics,
		Logger:            runtime.Logger,
		ClassifierTimeout: cfg.Classifier.TimeoutDuration(),
	}, cfg.Analysis)

	return &Domain{
		Synthesizer: synth,
		Scans:       scansSystem,
		Analysis:    analysisSystem,
	}, nil
}

func newSynthesizer(cfg *config.Config, runtime *Runtime) *soil.Synthesizer {
	var rng soil.Rand
	if cfg.Scans.Seed != nil {
		rng = soil.NewSource(*cfg.Scans.Seed)
	}

	synth := soil.NewSynthesizer(soil.Default(), rng)

	logger := runtime.Logger.With("system", "soil")
	synth.OnFallback(func(label string, fallback soil.Profile) {
		logger.Warn("unknown soil label, using fallback profile", "label", label, "fallback", fallback.Key)
		runtime.Metrics.ObserveFallback(label)
	})
	return synth
}

func newStore(cfg *config.Config, runtime *Runtime) (scans.Store, error) {
	switch cfg.Scans.Store {
	case scans.StoreMemory:
		runtime.Logger.Warn("scan history is kept in memory and lost on restart")
		return scans.NewMemoryStore(), nil
	case scans.StorePostgres:
		if runtime.Database == nil {
			return nil, fmt.Errorf("scans store %q requires a database", cfg.Scans.Store)
		}
		return scans.NewPostgresStore(runtime.Database.Connection()), nil
	}
	return nil, fmt.Errorf("unknown scans store %q", cfg.Scans.Store)
}

package soil

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
)

// Health scores are drawn from this band regardless of soil type.
const (
	HealthScoreMin = 65
	HealthScoreMax = 98
)

// Rand is the random source consumed by the Synthesizer.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// FallbackObserver is notified when a label resolves to the fallback profile.
type FallbackObserver func(label string, fallback Profile)

// NewSource returns a deterministic random source for the given seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Synthesizer maps (label, confidence) to a Report. It never fails; labels
// missing from the catalog resolve to the fallback profile.
// It is safe for concurrent use.
type Synthesizer struct {
	catalog  *Catalog
	observer FallbackObserver

	mu  sync.Mutex
	rng Rand
}

// NewSynthesizer creates a Synthesizer over catalog drawing from rng.
// A nil rng is replaced with a source seeded from the runtime generator.
func NewSynthesizer(catalog *Catalog, rng Rand) *Synthesizer {
	if rng == nil {
		rng = NewSource(rand.Uint64())
	}
	return &Synthesizer{
		catalog: catalog,
		rng:     rng,
	}
}

// OnFallback registers fn to be called for labels that are not cataloged.
// It must be set before the Synthesizer is shared.
func (s *Synthesizer) OnFallback(fn FallbackObserver) {
	s.observer = fn
}

// Catalog returns the catalog backing the Synthesizer.
func (s *Synthesizer) Catalog() *Catalog {
	return s.catalog
}

// Synthesize builds a report for label. confidence is a percentage and is
// rendered as given, without clamping.
func (s *Synthesizer) Synthesize(label string, confidence float64) Report {
	p, matched := s.catalog.Resolve(label)
	if !matched && s.observer != nil {
		s.observer(label, p)
	}

	sample := s.draw(p)

	return Report{
		Confidence:            FormatConfidence(confidence),
		SoilType:              p.DisplayType,
		Texture:               p.Texture,
		PHMin:                 PH(p.PH.Min),
		PHMax:                 PH(p.PH.Max),
		Nitrogen:              formatMgKg(sample.Nitrogen),
		Phosphorus:            formatMgKg(sample.Phosphorus),
		Potassium:             formatMgKg(sample.Potassium),
		OrganicMatter:         strconv.FormatFloat(sample.OrganicMatter, 'f', 1, 64) + "%",
		Moisture:              formatPercent(sample.Moisture),
		WaterRetention:        p.WaterRetention,
		SalinityEC:            strconv.FormatFloat(sample.SalinityEC, 'f', 2, 64) + " dS/m",
		CEC:                   p.CEC,
		MicroNutrients:        slices.Clone(p.MicroNutrients),
		PlantingSeason:        p.Season,
		OptimalTemp:           formatTempBand(p.Temp),
		DrainageType:          p.Drainage,
		CompactionLevel:       p.Compaction,
		ClimateZone:           p.ClimateZone,
		PossibleDeficiencies:  slices.Clone(p.Deficiencies),
		RecommendedFertilizer: p.Fertilizer,
		RecommendedCrops:      slices.Clone(p.Crops),
		HealthScore:           strconv.Itoa(sample.HealthScore) + "/100",
		Sample:                sample,
	}
}

// draw samples every randomized field in a fixed order so seeded sources
// reproduce identical reports.
func (s *Synthesizer) draw(p Profile) Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Sample{
		Nitrogen:      s.intIn(p.Nitrogen),
		Phosphorus:    s.intIn(p.Phosphorus),
		Potassium:     s.intIn(p.Potassium),
		OrganicMatter: s.floatIn(p.OrganicMatter),
		Moisture:      s.intIn(p.Moisture),
		SalinityEC:    s.floatIn(p.SalinityEC),
		HealthScore:   s.intIn(IntRange{HealthScoreMin, HealthScoreMax}),
	}
}

func (s *Synthesizer) intIn(r IntRange) int {
	return r.Min + s.rng.IntN(r.Max-r.Min+1)
}

func (s *Synthesizer) floatIn(r Range) float64 {
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

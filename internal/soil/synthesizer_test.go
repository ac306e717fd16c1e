package soil_test

import (
	"encoding/json"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/JaimeStill/soilscan/internal/soil"
)

// edgeRand always returns the lowest or highest value in range.
type edgeRand struct{ high bool }

func (e edgeRand) IntN(n int) int {
	if e.high {
		return n - 1
	}
	return 0
}

func (e edgeRand) Float64() float64 {
	if e.high {
		return 0.9999999999
	}
	return 0
}

var reportKeys = []string{
	"confidence", "soil_type", "texture", "ph_min", "ph_max", "nitrogen",
	"phosphorus", "potassium", "organic_matter", "moisture", "water_retention",
	"salinity_ec", "cec", "micro_nutrients", "planting_season", "optimal_temp",
	"drainage_type", "compaction_level", "climate_zone", "possible_deficiencies",
	"recommended_fertilizer", "recommended_crops", "health_score",
}

func TestSynthesizeBlackSoil(t *testing.T) {
	s := soil.NewSynthesizer(soil.Default(), soil.NewSource(7))
	r := s.Synthesize("Black Soil", 92.345)

	if r.Confidence != "92.3%" {
		t.Errorf("confidence = %q, want 92.3%%", r.Confidence)
	}
	if r.PHMin != 6.5 || r.PHMax != 7.8 {
		t.Errorf("ph = [%v, %v], want [6.5, 7.8]", r.PHMin, r.PHMax)
	}
	if r.SoilType != "Black (Chernozem)" {
		t.Errorf("soil_type = %q", r.SoilType)
	}

	m := regexp.MustCompile(`^(\d+) mg/kg$`).FindStringSubmatch(r.Nitrogen)
	if m == nil {
		t.Fatalf("nitrogen = %q, want <int> mg/kg", r.Nitrogen)
	}
	n, _ := strconv.Atoi(m[1])
	if n < 45 || n > 70 {
		t.Errorf("nitrogen = %d, want within [45, 70]", n)
	}

	wantCrops := []string{"Cotton", "Wheat", "Linseed", "Tobacco", "Gram"}
	if !slices.Equal(r.RecommendedCrops, wantCrops) {
		t.Errorf("crops = %v, want %v", r.RecommendedCrops, wantCrops)
	}
	if r.OptimalTemp != "20°C - 30°C" {
		t.Errorf("optimal_temp = %q", r.OptimalTemp)
	}
}

func TestSynthesizeUnknownLabelFallsBack(t *testing.T) {
	c := soil.Default()
	s := soil.NewSynthesizer(c, soil.NewSource(1))

	var observed []string
	s.OnFallback(func(label string, p soil.Profile) {
		observed = append(observed, label+"->"+p.Key)
	})

	r := s.Synthesize("Unknown Rock", 10.0)

	fb := c.Fallback()
	if r.SoilType != fb.DisplayType {
		t.Errorf("soil_type = %q, want %q", r.SoilType, fb.DisplayType)
	}
	if !slices.Equal(r.RecommendedCrops, fb.Crops) {
		t.Errorf("crops = %v, want %v", r.RecommendedCrops, fb.Crops)
	}
	if r.Confidence != "10.0%" {
		t.Errorf("confidence = %q, want 10.0%%", r.Confidence)
	}
	if !slices.Equal(observed, []string{"Unknown Rock->Yellow Soil"}) {
		t.Errorf("observer calls = %v", observed)
	}

	s.Synthesize("Black Soil", 50)
	if len(observed) != 1 {
		t.Errorf("observer called for cataloged label: %v", observed)
	}
}

func TestSynthesizePHPassthrough(t *testing.T) {
	for _, p := range soil.Default().Profiles() {
		for _, conf := range []float64{0, 42.5, 100} {
			r := soil.NewSynthesizer(soil.Default(), nil).Synthesize(p.Key, conf)
			if float64(r.PHMin) != p.PH.Min || float64(r.PHMax) != p.PH.Max {
				t.Errorf("%s: ph = [%v, %v], want [%v, %v]", p.Key, r.PHMin, r.PHMax, p.PH.Min, p.PH.Max)
			}
		}
	}
}

func TestSynthesizeSamplesWithinBands(t *testing.T) {
	inInt := func(v int, r soil.IntRange) bool { return v >= r.Min && v <= r.Max }
	inFloat := func(v float64, r soil.Range) bool { return v >= r.Min && v <= r.Max }

	for _, p := range soil.Default().Profiles() {
		t.Run(p.Key, func(t *testing.T) {
			for seed := range uint64(200) {
				r := soil.NewSynthesizer(soil.Default(), soil.NewSource(seed)).Synthesize(p.Key, 80)
				s := r.Sample

				if !inInt(s.Nitrogen, p.Nitrogen) {
					t.Fatalf("seed %d: nitrogen %d outside %+v", seed, s.Nitrogen, p.Nitrogen)
				}
				if !inInt(s.Phosphorus, p.Phosphorus) {
					t.Fatalf("seed %d: phosphorus %d outside %+v", seed, s.Phosphorus, p.Phosphorus)
				}
				if !inInt(s.Potassium, p.Potassium) {
					t.Fatalf("seed %d: potassium %d outside %+v", seed, s.Potassium, p.Potassium)
				}
				if !inInt(s.Moisture, p.Moisture) {
					t.Fatalf("seed %d: moisture %d outside %+v", seed, s.Moisture, p.Moisture)
				}
				if !inFloat(s.OrganicMatter, p.OrganicMatter) {
					t.Fatalf("seed %d: organic matter %v outside %+v", seed, s.OrganicMatter, p.OrganicMatter)
				}
				if !inFloat(s.SalinityEC, p.SalinityEC) {
					t.Fatalf("seed %d: salinity %v outside %+v", seed, s.SalinityEC, p.SalinityEC)
				}
				if s.HealthScore < soil.HealthScoreMin || s.HealthScore > soil.HealthScoreMax {
					t.Fatalf("seed %d: health score %d outside [65, 98]", seed, s.HealthScore)
				}
			}
		})
	}
}

func TestSynthesizeBandEdges(t *testing.T) {
	p := soil.Default().Lookup("Peat Soil")

	low := soil.NewSynthesizer(soil.Default(), edgeRand{}).Synthesize(p.Key, 1)
	if low.Nitrogen != "50 mg/kg" || low.Moisture != "40%" || low.HealthScore != "65/100" {
		t.Errorf("low edge = %s, %s, %s", low.Nitrogen, low.Moisture, low.HealthScore)
	}
	if low.OrganicMatter != "30.0%" || low.SalinityEC != "0.10 dS/m" {
		t.Errorf("low edge = %s, %s", low.OrganicMatter, low.SalinityEC)
	}

	high := soil.NewSynthesizer(soil.Default(), edgeRand{high: true}).Synthesize(p.Key, 1)
	if high.Nitrogen != "90 mg/kg" || high.Moisture != "70%" || high.HealthScore != "98/100" {
		t.Errorf("high edge = %s, %s, %s", high.Nitrogen, high.Moisture, high.HealthScore)
	}
	if high.OrganicMatter != "60.0%" || high.SalinityEC != "0.40 dS/m" {
		t.Errorf("high edge = %s, %s", high.OrganicMatter, high.SalinityEC)
	}
}

func TestSynthesizeRenderedMatchesSample(t *testing.T) {
	r := soil.NewSynthesizer(soil.Default(), soil.NewSource(99)).Synthesize("Cinder Soil", 61.25)
	s := r.Sample

	checks := map[string][2]string{
		"nitrogen":       {r.Nitrogen, strconv.Itoa(s.Nitrogen) + " mg/kg"},
		"phosphorus":     {r.Phosphorus, strconv.Itoa(s.Phosphorus) + " mg/kg"},
		"potassium":      {r.Potassium, strconv.Itoa(s.Potassium) + " mg/kg"},
		"moisture":       {r.Moisture, strconv.Itoa(s.Moisture) + "%"},
		"organic_matter": {r.OrganicMatter, strconv.FormatFloat(s.OrganicMatter, 'f', 1, 64) + "%"},
		"salinity_ec":    {r.SalinityEC, strconv.FormatFloat(s.SalinityEC, 'f', 2, 64) + " dS/m"},
		"health_score":   {r.HealthScore, strconv.Itoa(s.HealthScore) + "/100"},
	}

	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", name, c[0], c[1])
		}
	}
}

func TestSynthesizeSeededIsReproducible(t *testing.T) {
	a := soil.NewSynthesizer(soil.Default(), soil.NewSource(2024)).Synthesize("Laterite Soil", 77.7)
	b := soil.NewSynthesizer(soil.Default(), soil.NewSource(2024)).Synthesize("Laterite Soil", 77.7)

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)

	if string(ja) != string(jb) {
		t.Errorf("seeded reports differ:\n%s\n%s", ja, jb)
	}
}

func TestSynthesizeUnseededDescriptiveFieldsStable(t *testing.T) {
	s := soil.NewSynthesizer(soil.Default(), nil)
	a := s.Synthesize("Yellow Soil", 85)
	b := s.Synthesize("Yellow Soil", 85)

	if a.SoilType != b.SoilType || a.Texture != b.Texture || a.CEC != b.CEC ||
		a.PlantingSeason != b.PlantingSeason || a.OptimalTemp != b.OptimalTemp ||
		a.RecommendedFertilizer != b.RecommendedFertilizer || a.Confidence != b.Confidence {
		t.Error("descriptive fields differ between calls")
	}
	if !slices.Equal(a.PossibleDeficiencies, b.PossibleDeficiencies) {
		t.Error("deficiencies differ between calls")
	}
}

func TestSynthesizeConfidenceNotClamped(t *testing.T) {
	s := soil.NewSynthesizer(soil.Default(), soil.NewSource(3))

	tests := []struct {
		in   float64
		want string
	}{
		{150, "150.0%"},
		{-5, "-5.0%"},
		{0, "0.0%"},
		{99.96, "100.0%"},
	}

	for _, tt := range tests {
		if got := s.Synthesize("Black Soil", tt.in).Confidence; got != tt.want {
			t.Errorf("Synthesize(_, %v).Confidence = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReportJSONKeys(t *testing.T) {
	r := soil.NewSynthesizer(soil.Default(), soil.NewSource(5)).Synthesize("Black Soil", 90)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := make([]string, 0, len(m))
	for k := range m {
		got = append(got, k)
	}
	sort.Strings(got)

	want := slices.Clone(reportKeys)
	sort.Strings(want)

	if !slices.Equal(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
}

func TestReportDoesNotAliasCatalog(t *testing.T) {
	c := soil.Default()
	s := soil.NewSynthesizer(c, soil.NewSource(11))

	r := s.Synthesize("Black Soil", 90)
	r.RecommendedCrops[0] = "Weeds"
	r.MicroNutrients[0].Value = "0 ppm"

	p := c.Lookup("Black Soil")
	if p.Crops[0] != "Cotton" {
		t.Errorf("catalog crops mutated: %v", p.Crops)
	}
	if v, _ := p.MicroNutrients.Get("Boron"); v != "0.5 ppm" {
		t.Errorf("catalog micro nutrients mutated: %v", p.MicroNutrients)
	}
}

func TestSynthesizeConcurrent(t *testing.T) {
	s := soil.NewSynthesizer(soil.Default(), soil.NewSource(8))

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			label := soil.Default().Labels()[i%5]
			r := s.Synthesize(label, 50)
			if r.Sample.HealthScore < soil.HealthScoreMin || r.Sample.HealthScore > soil.HealthScoreMax {
				t.Errorf("health score %d out of range", r.Sample.HealthScore)
			}
		})
	}
	wg.Wait()
}

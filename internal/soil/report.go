package soil

import (
	"fmt"
	"strconv"
)

// Report is a synthesized agronomic report for one classified sample.
// String fields carry their unit suffix so existing clients render them verbatim.
type Report struct {
	Confidence            string            `json:"confidence"`
	SoilType              string            `json:"soil_type"`
	Texture               string            `json:"texture"`
	PHMin                 PH                `json:"ph_min"`
	PHMax                 PH                `json:"ph_max"`
	Nitrogen              string            `json:"nitrogen"`
	Phosphorus            string            `json:"phosphorus"`
	Potassium             string            `json:"potassium"`
	OrganicMatter         string            `json:"organic_matter"`
	Moisture              string            `json:"moisture"`
	WaterRetention        string            `json:"water_retention"`
	SalinityEC            string            `json:"salinity_ec"`
	CEC                   string            `json:"cec"`
	MicroNutrients        Nutrients         `json:"micro_nutrients"`
	PlantingSeason        string            `json:"planting_season"`
	OptimalTemp           string            `json:"optimal_temp"`
	DrainageType          string            `json:"drainage_type"`
	CompactionLevel       string            `json:"compaction_level"`
	ClimateZone           string            `json:"climate_zone"`
	PossibleDeficiencies  []string          `json:"possible_deficiencies"`
	RecommendedFertilizer string            `json:"recommended_fertilizer"`
	RecommendedCrops      []string          `json:"recommended_crops"`
	HealthScore           string            `json:"health_score"`

	// Sample holds the typed values behind the rendered strings.
	// It is not serialized and is zero for reports decoded from storage.
	Sample Sample `json:"-"`
}

// Sample is the set of values drawn while synthesizing a report.
type Sample struct {
	Nitrogen      int
	Phosphorus    int
	Potassium     int
	OrganicMatter float64
	Moisture      int
	SalinityEC    float64
	HealthScore   int
}

// FormatConfidence renders a confidence percentage with one decimal, e.g. "92.3%".
func FormatConfidence(percent float64) string {
	return strconv.FormatFloat(percent, 'f', 1, 64) + "%"
}

func formatMgKg(v int) string {
	return fmt.Sprintf("%d mg/kg", v)
}

func formatPercent(v int) string {
	return fmt.Sprintf("%d%%", v)
}

func formatTempBand(r IntRange) string {
	return fmt.Sprintf("%d°C - %d°C", r.Min, r.Max)
}

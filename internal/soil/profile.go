// Package soil implements the soil property catalog and the report synthesizer.
// A classifier label resolves to a Profile; the Synthesizer turns that profile
// into a Report by sampling each agronomic band with an injected random source.
package soil

import "fmt"

// Range is a closed interval of continuous values.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IntRange is a closed interval of integer values.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Valid reports whether Min <= Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Valid reports whether Min <= Max.
func (r IntRange) Valid() bool {
	return r.Min <= r.Max
}

// Profile holds the agronomic properties of a single soil class.
// Key matches the classifier output label exactly.
type Profile struct {
	Key            string            `json:"key"`
	DisplayType    string            `json:"display_type"`
	Texture        string            `json:"texture"`
	PH             Range             `json:"ph"`
	Nitrogen       IntRange          `json:"nitrogen"`
	Phosphorus     IntRange          `json:"phosphorus"`
	Potassium      IntRange          `json:"potassium"`
	OrganicMatter  Range             `json:"organic_matter"`
	Moisture       IntRange          `json:"moisture"`
	WaterRetention string            `json:"water_retention"`
	SalinityEC     Range             `json:"salinity_ec"`
	CEC            string            `json:"cec"`
	MicroNutrients Nutrients         `json:"micro_nutrients"`
	Season         string            `json:"season"`
	Temp           IntRange          `json:"temp"`
	Drainage       string            `json:"drainage"`
	Compaction     string            `json:"compaction"`
	ClimateZone    string            `json:"climate_zone"`
	Deficiencies   []string          `json:"deficiencies"`
	Fertilizer     string            `json:"fertilizer"`
	Crops          []string          `json:"crops"`
}

func (p Profile) validate() error {
	if p.Key == "" {
		return fmt.Errorf("profile key required")
	}

	floats := map[string]Range{
		"ph":             p.PH,
		"organic_matter": p.OrganicMatter,
		"salinity_ec":    p.SalinityEC,
	}
	for name, r := range floats {
		if !r.Valid() {
			return fmt.Errorf("%s: invalid %s range [%v, %v]", p.Key, name, r.Min, r.Max)
		}
	}

	ints := map[string]IntRange{
		"nitrogen":   p.Nitrogen,
		"phosphorus": p.Phosphorus,
		"potassium":  p.Potassium,
		"moisture":   p.Moisture,
		"temp":       p.Temp,
	}
	for name, r := range ints {
		if !r.Valid() {
			return fmt.Errorf("%s: invalid %s range [%d, %d]", p.Key, name, r.Min, r.Max)
		}
	}

	return nil
}

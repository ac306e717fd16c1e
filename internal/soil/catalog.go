package soil

import (
	"fmt"
	"slices"
)

// FallbackLabel is the profile used when a classifier label has no catalog entry.
const FallbackLabel = "Yellow Soil"

// Catalog is an immutable set of soil profiles keyed by classifier label,
// with one designated fallback profile.
type Catalog struct {
	profiles map[string]Profile
	labels   []string
	fallback string
}

// NewCatalog builds a catalog from profiles. Keys must be unique, every range
// must satisfy Min <= Max, and fallbackKey must name one of the profiles.
func NewCatalog(profiles []Profile, fallbackKey string) (*Catalog, error) {
	c := &Catalog{
		profiles: make(map[string]Profile, len(profiles)),
		labels:   make([]string, 0, len(profiles)),
		fallback: fallbackKey,
	}

	for _, p := range profiles {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.profiles[p.Key]; exists {
			return nil, fmt.Errorf("duplicate profile key: %s", p.Key)
		}
		c.profiles[p.Key] = p
		c.labels = append(c.labels, p.Key)
	}

	if _, ok := c.profiles[fallbackKey]; !ok {
		return nil, fmt.Errorf("fallback profile %q not in catalog", fallbackKey)
	}

	return c, nil
}

// Lookup returns the profile for label, or the fallback profile when label is not cataloged.
// Matching is exact and case-sensitive.
func (c *Catalog) Lookup(label string) Profile {
	p, _ := c.Resolve(label)
	return p
}

// Resolve is Lookup that also reports whether label matched a catalog entry.
func (c *Catalog) Resolve(label string) (Profile, bool) {
	if p, ok := c.profiles[label]; ok {
		return p, true
	}
	return c.profiles[c.fallback], false
}

// Fallback returns the designated fallback profile.
func (c *Catalog) Fallback() Profile {
	return c.profiles[c.fallback]
}

// Labels returns cataloged labels in declaration order.
func (c *Catalog) Labels() []string {
	return slices.Clone(c.labels)
}

// Profiles returns all profiles in declaration order.
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, 0, len(c.labels))
	for _, l := range c.labels {
		out = append(out, c.profiles[l])
	}
	return out
}

// Default returns the built-in catalog covering the classifier's label set.
func Default() *Catalog {
	c, err := NewCatalog(defaultProfiles, FallbackLabel)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultProfiles = []Profile{
	{
		Key:            "Black Soil",
		DisplayType:    "Black (Chernozem)",
		Texture:        "Clayey / Heavy",
		PH:             Range{6.5, 7.8},
		Nitrogen:       IntRange{45, 70},
		Phosphorus:     IntRange{25, 45},
		Potassium:      IntRange{50, 90},
		OrganicMatter:  Range{5, 9},
		Moisture:       IntRange{15, 25},
		WaterRetention: "High",
		SalinityEC:     Range{0.5, 1.2},
		CEC:            "Low to Moderate",
		MicroNutrients: Nutrients{{"Boron", "0.5 ppm"}, {"Iron", "4.5 ppm"}, {"Zinc", "0.8 ppm"}, {"Manganese", "12 ppm"}},
		Season:         "Post-Monsoon (Rabi)",
		Temp:           IntRange{20, 30},
		Drainage:       "Slow",
		Compaction:     "Moderate",
		ClimateZone:    "Semi-Arid / Temperate",
		Deficiencies:   []string{"Zinc", "Nitrogen", "Boron"},
		Fertilizer:     "Urea, Zinc Sulphate, and Borax",
		Crops:          []string{"Cotton", "Wheat", "Linseed", "Tobacco", "Gram"},
	},
	{
		Key:            "Cinder Soil",
		DisplayType:    "Cinder (Volcanic)",
		Texture:        "Porous / Sandy",
		PH:             Range{5.8, 6.8},
		Nitrogen:       IntRange{10, 25},
		Phosphorus:     IntRange{30, 60},
		Potassium:      IntRange{40, 70},
		OrganicMatter:  Range{1, 3},
		Moisture:       IntRange{5, 12},
		WaterRetention: "Very Low",
		SalinityEC:     Range{0.8, 2.0},
		CEC:            "High",
		MicroNutrients: Nutrients{{"Boron", "1.2 ppm"}, {"Iron", "25 ppm"}, {"Zinc", "2.5 ppm"}, {"Manganese", "40 ppm"}},
		Season:         "Year-round with irrigation",
		Temp:           IntRange{15, 35},
		Drainage:       "Excessive",
		Compaction:     "None",
		ClimateZone:    "Volcanic Regions / Tropical",
		Deficiencies:   []string{"Phosphorus", "Potassium", "Nitrogen"},
		Fertilizer:     "NPK 10-26-26 and Ammonium Nitrate",
		Crops:          []string{"Coffee", "Grapes", "Potatoes", "Succulents", "Orchids"},
	},
	{
		Key:            "Laterite Soil",
		DisplayType:    "Laterite (Red)",
		Texture:        "Gravelly / Loamy",
		PH:             Range{4.5, 6.0},
		Nitrogen:       IntRange{15, 30},
		Phosphorus:     IntRange{10, 20},
		Potassium:      IntRange{20, 40},
		OrganicMatter:  Range{2, 4},
		Moisture:       IntRange{10, 18},
		WaterRetention: "Low",
		SalinityEC:     Range{0.2, 0.6},
		CEC:            "Very Low",
		MicroNutrients: Nutrients{{"Boron", "0.2 ppm"}, {"Iron", "15 ppm"}, {"Zinc", "0.4 ppm"}, {"Manganese", "5 ppm"}},
		Season:         "Monsoon (Kharif)",
		Temp:           IntRange{25, 40},
		Drainage:       "Fast",
		Compaction:     "Low",
		ClimateZone:    "Tropical Wet / Monsoon",
		Deficiencies:   []string{"Nitrogen", "Lime", "Phosphorus"},
		Fertilizer:     "DAP, Lime, and Rock Phosphate",
		Crops:          []string{"Cashew", "Rubber", "Tea", "Coffee", "Coconut"},
	},
	{
		Key:            "Peat Soil",
		DisplayType:    "Peat (Muck)",
		Texture:        "Spongy / Fibrous",
		PH:             Range{3.5, 5.2},
		Nitrogen:       IntRange{50, 90},
		Phosphorus:     IntRange{5, 15},
		Potassium:      IntRange{10, 25},
		OrganicMatter:  Range{30, 60},
		Moisture:       IntRange{40, 70},
		WaterRetention: "Extreme",
		SalinityEC:     Range{0.1, 0.4},
		CEC:            "Extremely High",
		MicroNutrients: Nutrients{{"Boron", "0.1 ppm"}, {"Iron", "8 ppm"}, {"Zinc", "0.2 ppm"}, {"Manganese", "2 ppm"}},
		Season:         "Summer (Zaid)",
		Temp:           IntRange{10, 25},
		Drainage:       "Poor (Waterlogged)",
		Compaction:     "None (Soft)",
		ClimateZone:    "Cold Wet / Marshy",
		Deficiencies:   []string{"Potassium", "Copper", "Molybdenum"},
		Fertilizer:     "MOP (Muriate of Potash) and Copper Sulphate",
		Crops:          []string{"Blueberries", "Cranberries", "Sphagnum", "Rice", "Muck-land Vegetables"},
	},
	{
		Key:            "Yellow Soil",
		DisplayType:    "Yellow (Podzolic)",
		Texture:        "Silty / Clay",
		PH:             Range{5.0, 6.5},
		Nitrogen:       IntRange{20, 40},
		Phosphorus:     IntRange{15, 30},
		Potassium:      IntRange{30, 50},
		OrganicMatter:  Range{3, 5},
		Moisture:       IntRange{12, 20},
		WaterRetention: "Moderate",
		SalinityEC:     Range{0.3, 0.8},
		CEC:            "Moderate",
		MicroNutrients: Nutrients{{"Boron", "0.4 ppm"}, {"Iron", "5 ppm"}, {"Zinc", "0.6 ppm"}, {"Manganese", "10 ppm"}},
		Season:         "Spring / Kharif",
		Temp:           IntRange{18, 30},
		Drainage:       "Moderate",
		Compaction:     "High",
		ClimateZone:    "Humid Subtropical",
		Deficiencies:   []string{"Iron", "Magnesium", "Calcium"},
		Fertilizer:     "Chelated Iron, Magnesium Nitrate, and Gypsum",
		Crops:          []string{"Paddy", "Citrus", "Soybeans", "Tea", "Cereals"},
	},
}

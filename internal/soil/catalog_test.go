package soil_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/soilscan/internal/soil"
)

func TestDefaultCatalogLabels(t *testing.T) {
	c := soil.Default()

	want := []string{"Black Soil", "Cinder Soil", "Laterite Soil", "Peat Soil", "Yellow Soil"}
	if got := c.Labels(); !slices.Equal(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
}

func TestDefaultCatalogRanges(t *testing.T) {
	for _, p := range soil.Default().Profiles() {
		t.Run(p.Key, func(t *testing.T) {
			for name, r := range map[string]soil.Range{
				"ph": p.PH, "organic_matter": p.OrganicMatter, "salinity_ec": p.SalinityEC,
			} {
				if !r.Valid() {
					t.Errorf("%s range invalid: %+v", name, r)
				}
			}
			for name, r := range map[string]soil.IntRange{
				"nitrogen": p.Nitrogen, "phosphorus": p.Phosphorus, "potassium": p.Potassium,
				"moisture": p.Moisture, "temp": p.Temp,
			} {
				if !r.Valid() {
					t.Errorf("%s range invalid: %+v", name, r)
				}
			}
			if len(p.Crops) == 0 {
				t.Error("crops empty")
			}
		})
	}
}

func TestLookup(t *testing.T) {
	c := soil.Default()

	tests := []struct {
		name      string
		label     string
		wantType  string
		wantFound bool
	}{
		{"exact match", "Black Soil", "Black (Chernozem)", true},
		{"peat", "Peat Soil", "Peat (Muck)", true},
		{"unknown label", "Unknown Rock", "Yellow (Podzolic)", false},
		{"case sensitive", "black soil", "Yellow (Podzolic)", false},
		{"empty label", "", "Yellow (Podzolic)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, found := c.Resolve(tt.label)
			if found != tt.wantFound {
				t.Errorf("Resolve(%q) found = %v, want %v", tt.label, found, tt.wantFound)
			}
			if p.DisplayType != tt.wantType {
				t.Errorf("Resolve(%q) type = %q, want %q", tt.label, p.DisplayType, tt.wantType)
			}
			if got := c.Lookup(tt.label); got.Key != p.Key {
				t.Errorf("Lookup(%q) key = %q, want %q", tt.label, got.Key, p.Key)
			}
		})
	}
}

func TestLookupFallbackDeterministic(t *testing.T) {
	c := soil.Default()

	first := c.Lookup("Gravel")
	for range 10 {
		if got := c.Lookup("Gravel"); got.Key != first.Key {
			t.Fatalf("fallback changed: %q then %q", first.Key, got.Key)
		}
	}
	if first.Key != c.Fallback().Key {
		t.Errorf("fallback key = %q, want %q", first.Key, c.Fallback().Key)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	valid := soil.Default().Profiles()

	t.Run("duplicate key", func(t *testing.T) {
		_, err := soil.NewCatalog(append(valid, valid[0]), soil.FallbackLabel)
		if err == nil || !strings.Contains(err.Error(), "duplicate") {
			t.Errorf("err = %v, want duplicate error", err)
		}
	})

	t.Run("missing fallback", func(t *testing.T) {
		_, err := soil.NewCatalog(valid, "Sand")
		if err == nil {
			t.Error("expected error for missing fallback")
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		bad := valid[0]
		bad.Key = "Inverted"
		bad.Nitrogen = soil.IntRange{Min: 70, Max: 45}

		_, err := soil.NewCatalog(append(slices.Clone(valid), bad), soil.FallbackLabel)
		if err == nil || !strings.Contains(err.Error(), "nitrogen") {
			t.Errorf("err = %v, want nitrogen range error", err)
		}
	})

	t.Run("empty key", func(t *testing.T) {
		bad := valid[0]
		bad.Key = ""

		if _, err := soil.NewCatalog([]soil.Profile{bad}, ""); err == nil {
			t.Error("expected error for empty key")
		}
	})
}

func TestLabelsReturnsCopy(t *testing.T) {
	c := soil.Default()
	labels := c.Labels()
	labels[0] = "mutated"

	if c.Labels()[0] != "Black Soil" {
		t.Error("Labels() exposed internal slice")
	}
}

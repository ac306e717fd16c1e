package soil_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/soilscan/internal/soil"
	"github.com/JaimeStill/soilscan/pkg/routes"
)

func setupMux() *http.ServeMux {
	h := soil.NewHandler(
		soil.NewSynthesizer(soil.Default(), soil.NewSource(1)),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func TestHandlerList(t *testing.T) {
	rec := httptest.NewRecorder()
	setupMux().ServeHTTP(rec, httptest.NewRequest("GET", "/soils", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var profiles []soil.Profile
	if err := json.NewDecoder(rec.Body).Decode(&profiles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(profiles) != 5 {
		t.Errorf("profiles = %d, want 5", len(profiles))
	}
}

func TestHandlerFind(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		wantKey       string
		wantCataloged bool
	}{
		{"cataloged", "/soils/Cinder%20Soil", "Cinder Soil", true},
		{"fallback", "/soils/Gravel", "Yellow Soil", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			setupMux().ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var res soil.ProfileResult
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if res.Profile.Key != tt.wantKey {
				t.Errorf("key = %q, want %q", res.Profile.Key, tt.wantKey)
			}
			if res.Cataloged != tt.wantCataloged {
				t.Errorf("cataloged = %v, want %v", res.Cataloged, tt.wantCataloged)
			}
		})
	}
}

func TestHandlerReport(t *testing.T) {
	t.Run("synthesizes report", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := strings.NewReader(`{"label":"Black Soil","confidence":92.345}`)
		setupMux().ServeHTTP(rec, httptest.NewRequest("POST", "/soils/report", body))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var m map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&m); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if m["confidence"] != "92.3%" {
			t.Errorf("confidence = %v", m["confidence"])
		}
		if m["soil_type"] != "Black (Chernozem)" {
			t.Errorf("soil_type = %v", m["soil_type"])
		}
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		setupMux().ServeHTTP(rec, httptest.NewRequest("POST", "/soils/report", strings.NewReader("{")))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

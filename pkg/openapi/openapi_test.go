package openapi_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/soilscan/pkg/openapi"
)

func TestNewSpecAndServe(t *testing.T) {
	cfg := &openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatal(err)
	}

	spec := openapi.NewSpec(cfg, "0.1.0")
	spec.AddServer("/api")
	spec.AddPaths("/scans", map[string]*openapi.PathItem{
		"": {Get: &openapi.Operation{
			Summary:   "List scans",
			Responses: map[int]*openapi.Response{200: openapi.ResponseJSONArray("Scans", "Scan")},
		}},
		"/{id}": {Get: &openapi.Operation{
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "uuid", "Scan ID")},
			Responses:  map[int]*openapi.Response{404: openapi.ResponseRef("NotFound")},
		}},
	})

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	var doc map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if doc["openapi"] != "3.1.0" {
		t.Errorf("openapi = %v", doc["openapi"])
	}
	info := doc["info"].(map[string]any)
	if info["title"] != "Soilscan API" || info["version"] != "0.1.0" {
		t.Errorf("info = %v", info)
	}

	paths := doc["paths"].(map[string]any)
	for _, p := range []string{"/scans", "/scans/{id}"} {
		if _, ok := paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}

	get := paths["/scans/{id}"].(map[string]any)["get"].(map[string]any)
	ref := get["responses"].(map[string]any)["404"].(map[string]any)["$ref"]
	if ref != "#/components/responses/NotFound" {
		t.Errorf("404 ref = %v", ref)
	}
}

func TestConfigMerge(t *testing.T) {
	c := openapi.Config{Title: "A", Description: "B"}
	c.Merge(&openapi.Config{Title: "C"})
	if c.Title != "C" || c.Description != "B" {
		t.Errorf("merged = %+v", c)
	}
}

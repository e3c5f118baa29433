package api

import (
	"encoding/json"
	"testing"

	"github.com/identiflora/identiflora/internal/config"
	"github.com/identiflora/identiflora/pkg/openapi"
)

func TestBuildSpec(t *testing.T) {
	cfg := &config.Config{
		Version: "1.0.0",
		API: config.APIConfig{
			BasePath: "/api",
			OpenAPI: openapi.Config{
				Title:       "Identiflora Database API",
				Description: "Plant misidentification records",
			},
		},
	}

	data, err := buildSpec(cfg)
	if err != nil {
		t.Fatalf("build spec failed: %v", err)
	}

	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths      map[string]json.RawMessage `json:"paths"`
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("spec is not valid JSON: %v", err)
	}

	if doc.OpenAPI != "3.1.0" {
		t.Errorf("openapi = %s, want 3.1.0", doc.OpenAPI)
	}
	if doc.Info.Title != "Identiflora Database API" {
		t.Errorf("title = %s", doc.Info.Title)
	}
	if doc.Info.Version != "1.0.0" {
		t.Errorf("version = %s, want 1.0.0", doc.Info.Version)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "/api" {
		t.Errorf("servers = %+v, want single /api entry", doc.Servers)
	}

	wantPaths := []string{
		"/incorrect-identifications",
		"/incorrect-identifications/{id}",
		"/plant-species",
		"/plant-species/{id}",
		"/plant-species-url",
		"/identification-submissions/{id}",
	}
	for _, p := range wantPaths {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("missing path %s", p)
		}
	}

	wantSchemas := []string{"Species", "SpeciesCreate", "Correction", "CorrectionCreate", "CorrectionResult", "Submission"}
	for _, s := range wantSchemas {
		if _, ok := doc.Components.Schemas[s]; !ok {
			t.Errorf("missing schema %s", s)
		}
	}
}

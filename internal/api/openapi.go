package api

import (
	"github.com/identiflora/identiflora/internal/config"
	"github.com/identiflora/identiflora/pkg/openapi"
)

func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(schemas())
	spec.Paths = paths()

	return openapi.MarshalJSON(spec)
}

func schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Species": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"species_id":      {Type: "integer"},
				"common_name":     {Type: "string"},
				"scientific_name": {Type: "string"},
				"genus":           {Type: "string"},
				"img_url":         {Type: "string", Description: "Stored image filename"},
			},
		},
		"SpeciesCreate": {
			Type:     "object",
			Required: []string{"scientific_name", "img_url"},
			Properties: map[string]*openapi.Schema{
				"common_name":     {Type: "string"},
				"scientific_name": {Type: "string", Example: "Quercus robur"},
				"genus":           {Type: "string"},
				"img_url":         {Type: "string", Example: "quercus_robur.png"},
			},
		},
		"Correction": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"identification_id":    {Type: "integer"},
				"correct_species_id":   {Type: "integer"},
				"incorrect_species_id": {Type: "integer"},
				"reported_at":          {Type: "string", Format: "date-time"},
			},
		},
		"CorrectionCreate": {
			Type:     "object",
			Required: []string{"identification_id", "correct_species_id", "incorrect_species_id"},
			Properties: map[string]*openapi.Schema{
				"identification_id":    {Type: "integer"},
				"correct_species_id":   {Type: "integer"},
				"incorrect_species_id": {Type: "integer"},
			},
		},
		"CorrectionResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"identification_id":    {Type: "integer"},
				"correct_species_id":   {Type: "integer"},
				"incorrect_species_id": {Type: "integer"},
				"message":              {Type: "string"},
			},
		},
		"Submission": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"identification_id":  {Type: "integer"},
				"submitted_at":       {Type: "string", Format: "date-time"},
				"option_species_ids": {Type: "array", Items: &openapi.Schema{Type: "integer"}},
			},
		},
	}
}

func pageParams() []*openapi.Parameter {
	return []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("sort", "string", "Comma-separated sort fields, - prefix for descending", false),
	}
}

func paths() map[string]*openapi.PathItem {
	return map[string]*openapi.PathItem{
		"/incorrect-identifications": {
			Post: &openapi.Operation{
				Summary:     "Record a misidentification",
				Tags:        []string{"corrections"},
				RequestBody: openapi.RequestBodyJSON("CorrectionCreate", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Correction recorded", "CorrectionResult"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
					409: openapi.ResponseRef("Conflict"),
				},
			},
			Get: &openapi.Operation{
				Summary: "List recorded corrections",
				Tags:    []string{"corrections"},
				Parameters: append(pageParams(),
					openapi.QueryParam("identification_id", "integer", "Filter by identification submission", false),
					openapi.QueryParam("correct_species_id", "integer", "Filter by correct species", false),
					openapi.QueryParam("incorrect_species_id", "integer", "Filter by incorrect species", false),
				),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Page of corrections", "Correction"),
				},
			},
		},
		"/incorrect-identifications/{id}": {
			Get: &openapi.Operation{
				Summary:    "Find a correction by submission id",
				Tags:       []string{"corrections"},
				Parameters: []*openapi.Parameter{openapi.PathParam("id", "Identification submission id")},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Recorded correction", "Correction"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/plant-species": {
			Get: &openapi.Operation{
				Summary: "List plant species",
				Tags:    []string{"species"},
				Parameters: append(pageParams(),
					openapi.QueryParam("search", "string", "Search common and scientific names", false),
					openapi.QueryParam("genus", "string", "Filter by genus", false),
				),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Page of species", "Species"),
				},
			},
			Post: &openapi.Operation{
				Summary:     "Register a plant species",
				Tags:        []string{"species"},
				RequestBody: openapi.RequestBodyJSON("SpeciesCreate", true),
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Created species", "Species"),
					400: openapi.ResponseRef("BadRequest"),
					409: openapi.ResponseRef("Conflict"),
				},
			},
		},
		"/plant-species/{id}": {
			Get: &openapi.Operation{
				Summary:    "Find a plant species",
				Tags:       []string{"species"},
				Parameters: []*openapi.Parameter{openapi.PathParam("id", "Species id")},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Species", "Species"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/plant-species-url": {
			Get: &openapi.Operation{
				Summary: "Resolve the image URL for a species",
				Tags:    []string{"species"},
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("scientific_name", "string", "Scientific name of the species", true),
					openapi.QueryParam("host", "string", "Image server host, defaults to the request host", false),
					openapi.QueryParam("port", "integer", "Image server port, defaults to the request port", false),
					openapi.QueryParam("img_path", "string", "Image mount path, defaults to plant-images", false),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseText("Absolute image URL"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/identification-submissions/{id}": {
			Get: &openapi.Operation{
				Summary:    "Find an identification submission",
				Tags:       []string{"submissions"},
				Parameters: []*openapi.Parameter{openapi.PathParam("id", "Identification submission id")},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Submission with option species ids", "Submission"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
	}
}

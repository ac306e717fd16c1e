package api

import (
	"maps"
	"slices"

	"github.com/JaimeStill/soilscan/internal/analysis"
	"github.com/JaimeStill/soilscan/internal/config"
	"github.com/JaimeStill/soilscan/pkg/openapi"
)

var (
	str     = &openapi.Schema{Type: "string"}
	integer = &openapi.Schema{Type: "integer"}
	number  = &openapi.Schema{Type: "number"}
	strs    = &openapi.Schema{Type: "array", Items: str}
	strMap  = &openapi.Schema{Type: "object", AdditionalProperties: str}
	band    = &openapi.Schema{
		Type:       "object",
		Properties: map[string]*openapi.Schema{"min": number, "max": number},
	}
)

// buildSpec renders the OpenAPI document for every API route.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(schemas())
	spec.AddPaths("", soilPaths())
	spec.AddPaths("", scanPaths())
	spec.AddPaths("", analysisPaths())
	return openapi.MarshalJSON(spec)
}

func schemas() map[string]*openapi.Schema {
	reportFields := map[string]*openapi.Schema{
		"confidence":             {Type: "string", Example: "92.3%"},
		"soil_type":              {Type: "string", Example: "Black (Chernozem)"},
		"texture":                str,
		"ph_min":                 number,
		"ph_max":                 number,
		"nitrogen":               {Type: "string", Example: "58 mg/kg"},
		"phosphorus":             str,
		"potassium":              str,
		"organic_matter":         {Type: "string", Example: "3.4%"},
		"moisture":               {Type: "string", Example: "41%"},
		"water_retention":        str,
		"salinity_ec":            {Type: "string", Example: "0.62 dS/m"},
		"cec":                    str,
		"micro_nutrients":        strMap,
		"planting_season":        str,
		"optimal_temp":           {Type: "string", Example: "20°C - 30°C"},
		"drainage_type":          str,
		"compaction_level":       str,
		"climate_zone":           str,
		"possible_deficiencies":  strs,
		"recommended_fertilizer": str,
		"recommended_crops":      strs,
		"health_score":           {Type: "string", Example: "87/100"},
	}
	reportRequired := slices.Sorted(maps.Keys(reportFields))

	return map[string]*openapi.Schema{
		"Report": {
			Type:        "object",
			Description: "Synthesized soil report",
			Properties:  reportFields,
			Required:    reportRequired,
		},
		"Profile": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":             str,
				"display_type":    str,
				"texture":         str,
				"ph":              band,
				"nitrogen":        band,
				"phosphorus":      band,
				"potassium":       band,
				"organic_matter":  band,
				"moisture":        band,
				"water_retention": str,
				"salinity_ec":     band,
				"cec":             str,
				"micro_nutrients": strMap,
				"season":          str,
				"temp":            band,
				"drainage":        str,
				"compaction":      str,
				"climate_zone":    str,
				"deficiencies":    strs,
				"fertilizer":      str,
				"crops":           strs,
			},
		},
		"ProfileResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"profile":   openapi.SchemaRef("Profile"),
				"cataloged": {Type: "boolean", Description: "False when the fallback profile was returned"},
			},
		},
		"SynthesizeRequest": {
			Type:     "object",
			Required: []string{"label", "confidence"},
			Properties: map[string]*openapi.Schema{
				"label":      {Type: "string", Example: "Black Soil"},
				"confidence": {Type: "number", Description: "Percentage", Example: 92.3},
			},
		},
		"Scan": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"user_id":    {Type: "string", Nullable: true},
				"soil_type":  {Type: "string", Description: "Classifier label"},
				"confidence": str,
				"report":     openapi.SchemaRef("Report"),
				"image_key":  str,
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"ScanPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf("Scan"),
				"total":       integer,
				"page":        integer,
				"page_size":   integer,
				"total_pages": integer,
			},
		},
		"ScanSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":      integer,
				"page_size": integer,
				"search":    str,
				"sort":      {Type: "string", Example: "-CreatedAt"},
				"soil_type": str,
				"user_id":   str,
			},
		},
		"Count": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"count": integer},
		},
	}
}

func soilPaths() map[string]*openapi.PathItem {
	return map[string]*openapi.PathItem{
		"/soils": {
			Get: &openapi.Operation{
				Summary:   "List cataloged soil profiles",
				Tags:      []string{"Soils"},
				Responses: map[int]*openapi.Response{200: openapi.ResponseJSONArray("Soil profiles", "Profile")},
			},
		},
		"/soils/{label}": {
			Get: &openapi.Operation{
				Summary:     "Resolve a classifier label",
				Description: "Unknown labels resolve to the fallback profile.",
				Tags:        []string{"Soils"},
				Parameters:  []*openapi.Parameter{openapi.PathParam("label", "", "Classifier label")},
				Responses:   map[int]*openapi.Response{200: openapi.ResponseJSON("Resolved profile", "ProfileResult")},
			},
		},
		"/soils/report": {
			Post: &openapi.Operation{
				Summary:     "Synthesize a report for a label",
				Tags:        []string{"Soils"},
				RequestBody: openapi.RequestBodyJSON("SynthesizeRequest", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Soil report", "Report"),
					400: openapi.ResponseRef("BadRequest"),
				},
			},
		},
	}
}

func scanPaths() map[string]*openapi.PathItem {
	id := openapi.PathParam("id", "uuid", "Scan ID")

	return map[string]*openapi.PathItem{
		"/scans": {
			Get: &openapi.Operation{
				Summary: "List recent scans, newest first",
				Tags:    []string{"Scans"},
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("user_id", "string", "Restrict to one user", false),
					openapi.QueryParam("limit", "integer", "Maximum scans returned", false),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSONArray("Scans", "Scan"),
					400: openapi.ResponseRef("BadRequest"),
					503: openapi.ResponseRef("ServiceUnavailable"),
				},
			},
		},
		"/scans/page": {
			Get: &openapi.Operation{
				Summary: "Page through scans",
				Tags:    []string{"Scans"},
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
					openapi.QueryParam("page_size", "integer", "Results per page", false),
					openapi.QueryParam("search", "string", "Matches soil type or user", false),
					openapi.QueryParam("sort", "string", "Comma-separated sort fields", false),
					openapi.QueryParam("soil_type", "string", "Filter by classifier label", false),
					openapi.QueryParam("user_id", "string", "Filter by user", false),
				},
				Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Scan page", "ScanPage")},
			},
		},
		"/scans/count": {
			Get: &openapi.Operation{
				Summary: "Count scans",
				Tags:    []string{"Scans"},
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("soil_type", "string", "Filter by classifier label", false),
					openapi.QueryParam("user_id", "string", "Filter by user", false),
				},
				Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Scan count", "Count")},
			},
		},
		"/scans/search": {
			Post: &openapi.Operation{
				Summary:     "Search scans",
				Tags:        []string{"Scans"},
				RequestBody: openapi.RequestBodyJSON("ScanSearch", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Scan page", "ScanPage"),
					400: openapi.ResponseRef("BadRequest"),
				},
			},
		},
		"/scans/{id}": {
			Get: &openapi.Operation{
				Summary:    "Get a scan",
				Tags:       []string{"Scans"},
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Scan", "Scan"),
					400: openapi.ResponseRef("BadRequest"),
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/scans/{id}/image": {
			Get: &openapi.Operation{
				Summary:    "Download the photo of a scan",
				Tags:       []string{"Scans"},
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					200: {
						Description: "Image bytes",
						Content:     map[string]*openapi.MediaType{"image/*": {Schema: &openapi.Schema{Type: "string", Format: "binary"}}},
					},
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
	}
}

func analysisPaths() map[string]*openapi.PathItem {
	report := openapi.ResponseJSON("Soil report", "Report")
	report.Headers = map[string]*openapi.Header{
		analysis.ScanHeader: {
			Description: "ID of the recorded scan; absent when history could not be written",
			Schema:      &openapi.Schema{Type: "string", Format: "uuid"},
		},
	}

	return map[string]*openapi.PathItem{
		"/analyze": {
			Post: &openapi.Operation{
				Summary:     "Analyze a soil photo",
				Description: "Classifies the image, synthesizes a report, and records the scan.",
				Tags:        []string{"Analysis"},
				Parameters: []*openapi.Parameter{
					openapi.HeaderParam(analysis.UserHeader, "Opaque user reference"),
				},
				RequestBody: openapi.RequestBodyMultipart("image", "Soil photo"),
				Responses: map[int]*openapi.Response{
					200: report,
					400: openapi.ResponseRef("BadRequest"),
					413: openapi.ResponseRef("PayloadTooLarge"),
					502: openapi.ResponseRef("BadGateway"),
					503: openapi.ResponseRef("ServiceUnavailable"),
					504: {Description: "Classifier timed out"},
				},
			},
		},
	}
}

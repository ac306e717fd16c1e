package openapi

import "maps"

var errorBody = map[string]*MediaType{
	"application/json": {
		Schema: &Schema{
			Type:       "object",
			Properties: map[string]*Schema{"error": {Type: "string"}},
		},
	},
}

// NewComponents returns the shared paging schema and error responses.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields, - prefix for descending", Example: "-CreatedAt"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":         {Description: "Invalid request", Content: errorBody},
			"NotFound":           {Description: "Resource not found", Content: errorBody},
			"PayloadTooLarge":    {Description: "Upload exceeds the size limit", Content: errorBody},
			"BadGateway":         {Description: "Upstream classifier failed", Content: errorBody},
			"ServiceUnavailable": {Description: "A required backend is unavailable", Content: errorBody},
		},
	}
}

// AddSchemas merges schemas into the components.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges responses into the components.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}

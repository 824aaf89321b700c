// Package api builds the huma API shared by the server and the handler tests.
package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // registers application/cbor
	"github.com/go-chi/chi/v5"
)

const (
	// Title is the OpenAPI document title.
	Title = "Hello Docker API"

	DocsPath    = "/docs"
	OpenAPIPath = "/openapi"
	SchemasPath = "/schemas"

	contentTypeJSON = "application/json"
	contentTypeCBOR = "application/cbor"
)

// NewConfig returns the huma configuration for the service. Response bodies are kept
// exactly as declared: the default schema link transformer, which injects a $schema
// field and a Link header, is not installed.
func NewConfig(version string) huma.Config {
	cfg := huma.DefaultConfig(Title, version)
	cfg.CreateHooks = nil
	cfg.DocsPath = DocsPath
	cfg.OpenAPIPath = OpenAPIPath
	cfg.SchemasPath = SchemasPath
	cfg.Info.Description = "Greeting and health check endpoints."
	return cfg
}

// New mounts a huma API on router and advertises CBOR next to JSON in the OpenAPI document.
func New(router chi.Router, version string) huma.API {
	api := humachi.New(router, NewConfig(version))
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation, addCBORContent)
	return api
}

// DocPrefixes lists path prefixes served by huma's documentation handlers.
func DocPrefixes() []string {
	return []string{DocsPath, OpenAPIPath, SchemasPath}
}

func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if c, ok := op.RequestBody.Content[contentTypeJSON]; ok {
			op.RequestBody.Content[contentTypeCBOR] = c
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if c, ok := resp.Content[contentTypeJSON]; ok {
			resp.Content[contentTypeCBOR] = c
		}
	}
}

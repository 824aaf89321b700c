package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/janisto/hello-docker/internal/platform/api"
	"github.com/janisto/hello-docker/internal/platform/respond"
)

func TestRegisterServesBothEndpoints(t *testing.T) {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	Register(api.New(router, "test"))

	tests := []struct {
		path string
		want map[string]string
	}{
		{"/", map[string]string{"message": "Hello from FastAPI (Docker)"}},
		{"/health", map[string]string{"status": "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if len(body) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, body)
			}
			for k, v := range tt.want {
				if body[k] != v {
					t.Fatalf("expected %s=%q, got %q", k, v, body[k])
				}
			}
		})
	}
}

func TestRegisterDocumentsOnlyKnownOperations(t *testing.T) {
	router := chi.NewRouter()
	a := api.New(router, "test")
	Register(a)

	var ids []string
	for _, item := range a.OpenAPI().Paths {
		if item.Get != nil {
			ids = append(ids, item.Get.OperationID)
		}
		if item.Post != nil || item.Put != nil || item.Patch != nil || item.Delete != nil {
			t.Fatalf("unexpected write operation on %+v", item)
		}
	}
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "get-health" || ids[1] != "get-root" {
		t.Fatalf("unexpected operations: %v", ids)
	}
}

func TestRegisterKeepsBodySchemasApart(t *testing.T) {
	router := chi.NewRouter()
	a := api.New(router, "test")
	Register(a)

	tests := []struct {
		path     string
		property string
	}{
		{"/", "message"},
		{"/health", "status"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			item := a.OpenAPI().Paths[tt.path]
			if item == nil || item.Get == nil {
				t.Fatalf("expected GET %s in OpenAPI document", tt.path)
			}
			resp := item.Get.Responses["200"]
			if resp == nil || resp.Content["application/json"] == nil {
				t.Fatalf("expected JSON 200 response for %s", tt.path)
			}
			ref := resp.Content["application/json"].Schema.Ref
			schema := a.OpenAPI().Components.Schemas.SchemaFromRef(ref)
			if schema == nil {
				t.Fatalf("schema %q not registered", ref)
			}
			if len(schema.Properties) != 1 || schema.Properties[tt.property] == nil {
				t.Fatalf("%s: expected only property %q, got %v", ref, tt.property, schema.Properties)
			}
		})
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	Register(api.New(router, "test"))

	for _, path := range []string{"/healthz", "/hello", "/health/"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, resp.Code)
		}
	}
}

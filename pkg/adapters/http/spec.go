package http

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// Spec returns the raw OpenAPI document served at /openapi.yaml.
func Spec() []byte {
	return bytes.Clone(rawSpec)
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// validateBody checks the JSON request body against a component schema before
// the handler decodes it. The body is restored for the next handler.
func validateBody(doc *openapi3.T, schemaName string) func(http.Handler) http.Handler {
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref.Value == nil {
		panic(fmt.Sprintf("openapi: schema %q not found", schemaName))
	}
	schema := ref.Value

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				writeError(w, http.StatusBadRequest, errorBody{Category: "request", Message: err.Error()})
				return
			}

			var value any
			if err := json.Unmarshal(body, &value); err != nil {
				writeError(w, http.StatusBadRequest, errorBody{Category: "request", Message: "invalid JSON body: " + err.Error()})
				return
			}
			if err := schema.VisitJSON(value); err != nil {
				writeError(w, http.StatusBadRequest, errorBody{Category: "request", Message: err.Error()})
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

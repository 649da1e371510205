package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/schema"
)

type errorBody struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Method   string `json:"method,omitempty"`
	Field    string `json:"field,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// classify maps a domain error to an HTTP status and a typed body.
func classify(err error) (int, errorBody) {
	body := errorBody{Message: err.Error()}

	var cfgErr *domain.ConfigError
	if errors.As(err, &cfgErr) {
		body.Category = "config"
		body.Method = cfgErr.Method
		body.Field = cfgErr.Field
		return http.StatusBadRequest, body
	}
	if len(schema.ValidationErrors(err)) > 0 {
		body.Category = "config"
		return http.StatusBadRequest, body
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrTreatmentNotFound):
		body.Category = "not_found"
		return http.StatusNotFound, body
	case errors.Is(err, domain.ErrOutOfRange):
		body.Category = "range"
		return http.StatusUnprocessableEntity, body
	case errors.Is(err, domain.ErrCommitted), errors.Is(err, domain.ErrDisabled), errors.Is(err, domain.ErrDestroyed):
		body.Category = "conflict"
		return http.StatusConflict, body
	case errors.Is(err, domain.ErrUnknownSignal):
		body.Category = "request"
		return http.StatusBadRequest, body
	case errors.Is(err, domain.ErrMissingOperation):
		body.Category = "unsupported"
		return http.StatusNotImplemented, body
	}
	body.Category = "internal"
	return http.StatusInternalServerError, body
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, errorResponse{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/stocksage/stocksage/internal/models"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WritePipelineError maps a pipeline error kind to an HTTP status and writes
// the error with its kind as the code.
func WritePipelineError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case models.ErrValidation:
		status = http.StatusBadRequest
	case models.ErrDataUnavailable:
		status = http.StatusUnprocessableEntity
	case models.ErrExternalService:
		status = http.StatusBadGateway
	case models.ErrRendering:
		status = http.StatusInternalServerError
	}
	WriteJSON(w, status, ErrorResponse{Error: err.Error(), Code: string(kind)})
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// PathParam extracts a path parameter from the URL path.
// For a pattern like /api/reports/{id}/download, calling
// PathParam(r.URL.Path, "/api/reports/", "/download") extracts the {id} part.
func PathParam(path, prefix, suffix string) string {
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := path[len(prefix):]
	if suffix != "" {
		idx := strings.Index(rest, suffix)
		if idx < 0 {
			return ""
		}
		rest = rest[:idx]
	}
	return rest
}

// Package handlers implements the JSON endpoint handlers for the API.
// Handlers follow one layering: resolve the actor, resolve the target
// through the stores (soft-delete aware), ask the authorization rules,
// and only then touch the store. A deny never reaches storage.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"blogapi/internal/apperr"
)

// errorResponse is the uniform error payload.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the uniform confirmation payload.
type messageResponse struct {
	Message string `json:"message"`
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// respondError maps an error to its HTTP status and writes the payload.
// Forbidden responses carry a fixed message so the reason for a deny is
// never disclosed.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "Authentication credentials were not provided or are invalid."})
	case errors.Is(err, apperr.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "You do not have permission to perform this action."})
	case errors.Is(err, apperr.ErrNotFound):
		msg := err.Error()
		if err == apperr.ErrNotFound {
			msg = "Not found."
		}
		respondJSON(w, http.StatusNotFound, errorResponse{Error: msg})
	case errors.Is(err, apperr.ErrValidation):
		msg := err.Error()
		if err == apperr.ErrValidation {
			msg = "Invalid request."
		}
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
	default:
		slog.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error."})
	}
}

// decodeJSON reads the request body into dst, returning a validation
// error for malformed payloads.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Invalid JSON body.")
	}
	return nil
}

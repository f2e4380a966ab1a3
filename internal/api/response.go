package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/qtts/assetdesk/internal/state"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// commandError maps a failed store command to an HTTP error.
func commandError(w http.ResponseWriter, err error) {
	var verr *state.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonResponse(w, http.StatusBadRequest, map[string]any{"error": err.Error(), "fields": verr.Fields})
	case errors.Is(err, state.ErrNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, state.ErrDuplicateID):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, state.ErrInvalid), errors.Is(err, state.ErrMalformedImport):
		jsonError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("command failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

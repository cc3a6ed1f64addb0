package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"quill/app/repositories"
	"quill/app/services"
)

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	sendJSON(w, status, map[string]string{"error": message})
}

// sendServiceError maps service-layer errors onto HTTP responses. A
// validation failure echoes the rejected input so the caller can
// re-prompt without losing the payload.
func sendServiceError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		sendJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": verr.Err.Error(),
			"input": verr.Input,
		})
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, "not found", http.StatusNotFound)
	case errors.Is(err, repositories.ErrConflict):
		sendError(w, "already exists", http.StatusConflict)
	case errors.Is(err, services.ErrUnauthenticated):
		sendError(w, "authentication required", http.StatusUnauthorized)
	case errors.Is(err, services.ErrInvalidCredentials):
		sendError(w, "invalid credentials", http.StatusUnauthorized)
	default:
		sendError(w, "internal error", http.StatusInternalServerError)
	}
}

// parsePage reads the optional page query parameter. A missing or
// non-numeric value falls back to the first page; out-of-range numbers
// are clamped by the catalog itself.
func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

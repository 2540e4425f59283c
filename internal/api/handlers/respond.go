package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-be/internal/services"
)

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondMessage writes a {"message": ...} body.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"message": msg})
}

// respondError maps a service error onto an HTTP response. Anything
// outside the known taxonomy is logged with detail and surfaced to the
// client only as a generic message.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		respondMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		respondMessage(w, http.StatusConflict, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrForbidden):
		respondMessage(w, http.StatusForbidden, "Only the receiver can update this request")
	case errors.Is(err, services.ErrNotPending):
		respondMessage(w, http.StatusBadRequest, "Request already handled")
	default:
		log.Error().Err(err).Msg("Unhandled service error")
		respondMessage(w, http.StatusInternalServerError, "Something went wrong")
	}
}

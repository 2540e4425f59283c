package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillswap/skillswap-be/internal/auth"
	"github.com/skillswap/skillswap-be/internal/services"
)

// SwapHandler handles the swap request endpoints.
type SwapHandler struct {
	swaps services.SwapServiceProvider
}

// NewSwapHandler creates a new SwapHandler.
func NewSwapHandler(swaps services.SwapServiceProvider) *SwapHandler {
	return &SwapHandler{swaps: swaps}
}

// CreatePayload defines the structure for new swap requests. Any status
// the client sends is ignored; new requests always start Pending.
type CreatePayload struct {
	ToUserID string `json:"toUserId"`
	Message  string `json:"message"`
}

// TransitionPayload defines the structure for accept/decline requests.
type TransitionPayload struct {
	Action string `json:"action"`
}

// Create handles POST /swaps.
func (h *SwapHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	swap, err := h.swaps.Create(r.Context(), auth.UserID(r.Context()), payload.ToUserID, payload.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, swap)
}

// ListMine handles GET /swaps/mine: all swaps where the caller is sender
// or receiver, with both sides resolved to public profiles.
func (h *SwapHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	swaps, err := h.swaps.ListMine(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, swaps)
}

// Transition handles PATCH /swaps/{id} with an accept or decline action.
func (h *SwapHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var payload TransitionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	swap, err := h.swaps.Transition(r.Context(), chi.URLParam(r, "id"), auth.UserID(r.Context()), payload.Action)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, swap)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/skillswap/skillswap-be/internal/auth"
	"github.com/skillswap/skillswap-be/internal/models"
	"github.com/skillswap/skillswap-be/internal/services"
)

// UserHandler handles the user directory endpoints: search, profiles and
// the aggregated skill list.
type UserHandler struct {
	users services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider) *UserHandler {
	return &UserHandler{users: users}
}

// Search handles GET /users with the filter/pagination query parameters.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := services.SearchParams{
		Q:           q.Get("q"),
		Offered:     splitCSV(q.Get("offered")),
		Wanted:      splitCSV(q.Get("wanted")),
		Role:        models.Role(q.Get("role")),
		Location:    q.Get("location"),
		ExcludeIDs:  splitCSV(q.Get("exclude")),
		ExcludeSelf: q.Get("excludeSelf") == "true" || q.Get("excludeSelf") == "1",
		CallerID:    auth.UserID(r.Context()),
		Page:        atoiOr(q.Get("page"), 1),
		Limit:       atoiOr(q.Get("limit"), services.DefaultPageSize),
	}

	result, err := h.users.Search(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Get handles retrieving a user's profile by id.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Update handles partial profile updates. Users may only edit their own
// profile; email and password are not reachable through this endpoint.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if auth.UserID(r.Context()) != id {
		respondMessage(w, http.StatusForbidden, "You can only edit your own profile")
		return
	}

	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), id, upd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Skills handles GET /skills: every distinct skill across the directory.
func (h *UserHandler) Skills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.users.ListSkills(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, skills)
}

// splitCSV splits a comma-separated query value, dropping empty entries.
func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// atoiOr parses a query integer, falling back on garbage.
func atoiOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

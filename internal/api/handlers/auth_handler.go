package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-be/internal/auth"
	"github.com/skillswap/skillswap-be/internal/services"
)

// AuthHandler handles signup, signin, signout and the /me lookup.
type AuthHandler struct {
	users      services.UserServiceProvider
	tokens     *auth.Tokens
	cookieName string
	secure     bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, tokens *auth.Tokens, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, cookieName: cookieName, secure: secure}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninPayload defines the structure for login requests.
type SigninPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new account registration and signs the user in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Signup(r.Context(), payload.FullName, payload.Email, payload.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Failed to issue session token")
		respondMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	auth.SetSessionCookie(w, h.cookieName, token, h.tokens.TTL(), h.secure)

	respondMessage(w, http.StatusCreated, "Account created successfully")
}

// Signin handles authentication and session issuance.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var payload SigninPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Signin(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex())
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.Hex()).Msg("Failed to issue session token")
		respondMessage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	auth.SetSessionCookie(w, h.cookieName, token, h.tokens.TTL(), h.secure)

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// Me returns the currently authenticated user, or null for anonymous
// callers. Always 200: the frontend polls this to know its login state.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	user, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Signout clears the session cookie. The token itself stays valid until
// expiry since sessions are stateless.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cookieName, h.secure)
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

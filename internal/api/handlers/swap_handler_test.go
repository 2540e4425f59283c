package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-be/internal/auth"
	"github.com/skillswap/skillswap-be/internal/models"
	"github.com/skillswap/skillswap-be/internal/services"
)

// fakeSwapService stubs SwapServiceProvider per test.
type fakeSwapService struct {
	create     func(fromID, toID, message string) (*models.SwapRequest, error)
	listMine   func(userID string) ([]models.PopulatedSwap, error)
	transition func(id, actorID, action string) (*models.SwapRequest, error)
}

func (f *fakeSwapService) Create(_ context.Context, fromID, toID, message string) (*models.SwapRequest, error) {
	return f.create(fromID, toID, message)
}

func (f *fakeSwapService) ListMine(_ context.Context, userID string) ([]models.PopulatedSwap, error) {
	return f.listMine(userID)
}

func (f *fakeSwapService) Transition(_ context.Context, id, actorID, action string) (*models.SwapRequest, error) {
	return f.transition(id, actorID, action)
}

func authedRequest(method, target, body, userID string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}

func TestSwapCreate_Created(t *testing.T) {
	t.Parallel()

	me := primitive.NewObjectID()
	other := primitive.NewObjectID()
	h := NewSwapHandler(&fakeSwapService{
		create: func(fromID, toID, message string) (*models.SwapRequest, error) {
			assert.Equal(t, me.Hex(), fromID)
			assert.Equal(t, other.Hex(), toID)
			return &models.SwapRequest{
				ID: primitive.NewObjectID(), From: me, To: other,
				Message: message, Status: models.SwapPending,
			}, nil
		},
	})

	w := httptest.NewRecorder()
	h.Create(w, authedRequest("POST", "/swaps", `{"toUserId":"`+other.Hex()+`","message":"hi"}`, me.Hex()))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Pending"`)
}

func TestSwapCreate_SelfSwapRejected(t *testing.T) {
	t.Parallel()

	h := NewSwapHandler(&fakeSwapService{
		create: func(string, string, string) (*models.SwapRequest, error) {
			return nil, services.ErrInvalidInput
		},
	})

	me := primitive.NewObjectID().Hex()
	w := httptest.NewRecorder()
	h.Create(w, authedRequest("POST", "/swaps", `{"toUserId":"`+me+`"}`, me))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSwapListMine(t *testing.T) {
	t.Parallel()

	me := primitive.NewObjectID()
	h := NewSwapHandler(&fakeSwapService{
		listMine: func(userID string) ([]models.PopulatedSwap, error) {
			assert.Equal(t, me.Hex(), userID)
			return []models.PopulatedSwap{
				{ID: primitive.NewObjectID(), From: models.PublicProfile{FullName: "Other"}, Status: models.SwapPending},
			}, nil
		},
	})

	w := httptest.NewRecorder()
	h.ListMine(w, authedRequest("GET", "/swaps/mine", "", me.Hex()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fullName":"Other"`)
}

// transitionRequest routes through chi so the URL parameter resolves.
func transitionRequest(t *testing.T, h *SwapHandler, swapID, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Patch("/swaps/{id}", h.Transition)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest("PATCH", "/swaps/"+swapID, body, userID))
	return w
}

func TestSwapTransition_Accepted(t *testing.T) {
	t.Parallel()

	swapID := primitive.NewObjectID()
	me := primitive.NewObjectID()
	h := NewSwapHandler(&fakeSwapService{
		transition: func(id, actorID, action string) (*models.SwapRequest, error) {
			assert.Equal(t, swapID.Hex(), id)
			assert.Equal(t, me.Hex(), actorID)
			assert.Equal(t, "accept", action)
			return &models.SwapRequest{ID: swapID, To: me, Status: models.SwapAccepted}, nil
		},
	})

	w := transitionRequest(t, h, swapID.Hex(), me.Hex(), `{"action":"accept"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Accepted"`)
}

func TestSwapTransition_ErrorsMapToStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", services.ErrNotFound, http.StatusNotFound},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"already handled", services.ErrNotPending, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSwapHandler(&fakeSwapService{
				transition: func(string, string, string) (*models.SwapRequest, error) {
					return nil, tt.err
				},
			})

			w := transitionRequest(t, h, primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), `{"action":"accept"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

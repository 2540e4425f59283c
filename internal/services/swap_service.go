package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-be/internal/models"
	"github.com/skillswap/skillswap-be/internal/store"
)

// SwapStore defines the persistence operations the swap service needs.
type SwapStore interface {
	Insert(ctx context.Context, sw *models.SwapRequest) error
	FindByID(ctx context.Context, id string) (*models.SwapRequest, error)
	FindForUser(ctx context.Context, userID primitive.ObjectID) ([]models.SwapRequest, error)
	TransitionIfPending(ctx context.Context, id primitive.ObjectID, status models.SwapStatus) (*models.SwapRequest, error)
}

// SwapServiceProvider defines the interface for the swap workflow.
type SwapServiceProvider interface {
	Create(ctx context.Context, fromID, toID, message string) (*models.SwapRequest, error)
	ListMine(ctx context.Context, userID string) ([]models.PopulatedSwap, error)
	Transition(ctx context.Context, id, actorID, action string) (*models.SwapRequest, error)
}

// SwapService implements the swap request workflow: a directed proposal
// that only the receiver may accept or decline, exactly once.
type SwapService struct {
	swaps SwapStore
	users UserStore
}

// NewSwapService creates a new SwapService.
func NewSwapService(swaps SwapStore, users UserStore) *SwapService {
	return &SwapService{swaps: swaps, users: users}
}

// Create opens a new Pending swap request from one user to another. The
// message is capped at models.MaxSwapMessageLen characters and the status
// is always Pending no matter what the caller sends.
func (s *SwapService) Create(ctx context.Context, fromID, toID, message string) (*models.SwapRequest, error) {
	if toID == "" {
		return nil, invalidInput("toUserId required")
	}
	if toID == fromID {
		return nil, invalidInput("cannot send a request to yourself")
	}

	from, err := primitive.ObjectIDFromHex(fromID)
	if err != nil {
		return nil, invalidInput("invalid sender id")
	}
	to, err := primitive.ObjectIDFromHex(toID)
	if err != nil {
		return nil, invalidInput("invalid toUserId")
	}

	if r := []rune(message); len(r) > models.MaxSwapMessageLen {
		message = string(r[:models.MaxSwapMessageLen])
	}

	sw := &models.SwapRequest{
		From:    from,
		To:      to,
		Message: message,
		Status:  models.SwapPending,
	}
	if err := s.swaps.Insert(ctx, sw); err != nil {
		return nil, err
	}
	return sw, nil
}

// ListMine returns every swap where the user is sender or receiver, newest
// first, with both endpoints resolved to minimal public profiles.
func (s *SwapService) ListMine(ctx context.Context, userID string) ([]models.PopulatedSwap, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, invalidInput("invalid user id")
	}

	swaps, err := s.swaps.FindForUser(ctx, oid)
	if err != nil {
		return nil, err
	}

	idSet := make(map[primitive.ObjectID]struct{}, len(swaps)*2)
	for _, sw := range swaps {
		idSet[sw.From] = struct{}{}
		idSet[sw.To] = struct{}{}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	profiles, err := s.users.PublicProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.PopulatedSwap, 0, len(swaps))
	for _, sw := range swaps {
		out = append(out, models.PopulatedSwap{
			ID:        sw.ID,
			From:      profileOr(profiles, sw.From),
			To:        profileOr(profiles, sw.To),
			Message:   sw.Message,
			Status:    sw.Status,
			CreatedAt: sw.CreatedAt,
			UpdatedAt: sw.UpdatedAt,
		})
	}
	return out, nil
}

// profileOr tolerates orphaned references: a swap pointing at a user that
// no longer resolves still lists, with only the id filled in.
func profileOr(profiles map[primitive.ObjectID]models.PublicProfile, id primitive.ObjectID) models.PublicProfile {
	if p, ok := profiles[id]; ok {
		return p
	}
	return models.PublicProfile{ID: id}
}

// Transition accepts or declines a pending swap request. Only the receiver
// may act, and a request that already left Pending cannot move again.
func (s *SwapService) Transition(ctx context.Context, id, actorID, action string) (*models.SwapRequest, error) {
	sw, err := s.swaps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if sw.To.Hex() != actorID {
		return nil, ErrForbidden
	}

	var next models.SwapStatus
	switch action {
	case "accept":
		next = models.SwapAccepted
	case "decline":
		next = models.SwapDeclined
	default:
		return nil, invalidInput("invalid action")
	}

	updated, err := s.swaps.TransitionIfPending(ctx, sw.ID, next)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// We just fetched it, so it exists: it must have left Pending.
			return nil, ErrNotPending
		}
		return nil, err
	}
	return updated, nil
}

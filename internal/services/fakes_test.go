package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-be/internal/models"
	"github.com/skillswap/skillswap-be/internal/store"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User

	skills   []string
	profiles map[primitive.ObjectID]models.PublicProfile

	searchData  []models.User
	searchTotal int64

	lastQuery store.SearchQuery
	lastSkip  int64
	lastLimit int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:     make(map[string]*models.User),
		byEmail:  make(map[string]*models.User),
		profiles: make(map[primitive.ObjectID]models.PublicProfile),
	}
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return store.ErrDuplicateKey
	}
	u.ID = primitive.NewObjectID()
	f.byEmail[u.Email] = u
	f.byID[u.ID.Hex()] = u
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = *upd.AvatarURL
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.SkillsOffered != nil {
		u.SkillsOffered = *upd.SkillsOffered
	}
	if upd.SkillsWanted != nil {
		u.SkillsWanted = *upd.SkillsWanted
	}
	if upd.Location != nil {
		u.Location = *upd.Location
	}
	if upd.Age != nil {
		u.Age = upd.Age
	}
	if upd.CurrentPosition != nil {
		u.CurrentPosition = *upd.CurrentPosition
	}
	return u, nil
}

func (f *fakeUserStore) Search(_ context.Context, q store.SearchQuery, skip, limit int64) ([]models.User, int64, error) {
	f.lastQuery = q
	f.lastSkip = skip
	f.lastLimit = limit
	return f.searchData, f.searchTotal, nil
}

func (f *fakeUserStore) DistinctSkills(_ context.Context) ([]string, error) {
	return f.skills, nil
}

func (f *fakeUserStore) PublicProfiles(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.PublicProfile, error) {
	out := make(map[primitive.ObjectID]models.PublicProfile, len(ids))
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

// fakeSwapStore is an in-memory SwapStore for service tests.
type fakeSwapStore struct {
	byID map[primitive.ObjectID]*models.SwapRequest
}

func newFakeSwapStore() *fakeSwapStore {
	return &fakeSwapStore{byID: make(map[primitive.ObjectID]*models.SwapRequest)}
}

func (f *fakeSwapStore) Insert(_ context.Context, sw *models.SwapRequest) error {
	sw.ID = primitive.NewObjectID()
	cp := *sw
	f.byID[sw.ID] = &cp
	return nil
}

func (f *fakeSwapStore) FindByID(_ context.Context, id string) (*models.SwapRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	sw, ok := f.byID[oid]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *sw
	return &cp, nil
}

func (f *fakeSwapStore) FindForUser(_ context.Context, userID primitive.ObjectID) ([]models.SwapRequest, error) {
	var out []models.SwapRequest
	for _, sw := range f.byID {
		if sw.From == userID || sw.To == userID {
			out = append(out, *sw)
		}
	}
	return out, nil
}

func (f *fakeSwapStore) TransitionIfPending(_ context.Context, id primitive.ObjectID, status models.SwapStatus) (*models.SwapRequest, error) {
	sw, ok := f.byID[id]
	if !ok || sw.Status != models.SwapPending {
		return nil, store.ErrNotFound
	}
	sw.Status = status
	cp := *sw
	return &cp, nil
}

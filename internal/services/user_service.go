package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/skillswap/skillswap-be/internal/models"
	"github.com/skillswap/skillswap-be/internal/store"
	"github.com/skillswap/skillswap-be/internal/validate"
)

// DefaultPageSize is the user search page size when none is requested.
const DefaultPageSize = 12

// MaxPageSize caps the user search page size.
const MaxPageSize = 50

// signinFloor is the minimum elapsed time for a failed signin. Both "no
// such email" and "wrong password" pad to this floor so response timing
// doesn't leak which one happened.
const signinFloor = 250 * time.Millisecond

// dummyHash is a structurally valid bcrypt hash compared against when the
// email is unknown, so the CPU cost matches the wrong-password path.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// UserStore defines the persistence operations the user service needs.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
	Search(ctx context.Context, q store.SearchQuery, skip, limit int64) ([]models.User, int64, error)
	DistinctSkills(ctx context.Context) ([]string, error)
	PublicProfiles(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.PublicProfile, error)
}

// SearchParams are the parsed user search filters plus pagination.
type SearchParams struct {
	Q           string
	Offered     []string
	Wanted      []string
	Role        models.Role
	Location    string
	ExcludeIDs  []string
	ExcludeSelf bool
	CallerID    string
	Page        int
	Limit       int
}

// SearchResult is one page of user search results.
type SearchResult struct {
	Data       []models.User `json:"data"`
	Page       int           `json:"page"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"totalPages"`
}

// UserServiceProvider defines the interface for user directory services.
type UserServiceProvider interface {
	Signup(ctx context.Context, fullName, email, password string) (*models.User, error)
	Signin(ctx context.Context, email, password string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
	ListSkills(ctx context.Context) ([]string, error)
}

// UserService provides business logic for the user directory.
type UserService struct {
	users      UserStore
	bcryptCost int
	collator   *collate.Collator
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, bcryptCost int) *UserService {
	return &UserService{
		users:      users,
		bcryptCost: bcryptCost,
		collator:   collate.New(language.English),
	}
}

// Signup validates the credentials, hashes the password and creates the
// account. Duplicate emails fail with ErrEmailTaken; the storage layer's
// unique index is the authoritative check, so concurrent signups with the
// same email cannot both win.
func (s *UserService) Signup(ctx context.Context, fullName, email, password string) (*models.User, error) {
	name, err := validate.FullName(fullName)
	if err != nil {
		return nil, invalidInput(err.Error())
	}
	normalized, err := validate.Email(email)
	if err != nil {
		return nil, invalidInput(err.Error())
	}
	if err := validate.Password(password); err != nil {
		return nil, invalidInput(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		FullName:      name,
		Email:         normalized,
		PasswordHash:  string(hash),
		Role:          models.RoleBoth,
		SkillsOffered: []string{},
		SkillsWanted:  []string{},
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Signin authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller: same error, and both paths
// run a bcrypt comparison and pad to the same minimum latency.
func (s *UserService) Signin(ctx context.Context, email, password string) (*models.User, error) {
	start := time.Now()

	normalized, err := validate.Email(email)
	if err != nil {
		return nil, invalidInput(err.Error())
	}
	if password == "" {
		return nil, invalidInput("password is required")
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same bcrypt cost as a real comparison.
			bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			holdUntil(start, signinFloor)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		holdUntil(start, signinFloor)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// holdUntil sleeps out the remainder of floor since start. Deliberately
// not tied to request cancellation: aborting the request must not reveal
// how far the signin got.
func holdUntil(start time.Time, floor time.Duration) {
	if remaining := floor - time.Since(start); remaining > 0 {
		time.Sleep(remaining)
	}
}

// GetProfile retrieves a single user by id.
func (s *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial profile update. Email and password are
// not updatable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	if upd.Role != nil && !models.ValidRole(*upd.Role) {
		return nil, invalidInput("invalid role")
	}
	if upd.SkillsOffered != nil {
		*upd.SkillsOffered = cleanSkills(*upd.SkillsOffered)
	}
	if upd.SkillsWanted != nil {
		*upd.SkillsWanted = cleanSkills(*upd.SkillsWanted)
	}

	user, err := s.users.UpdateProfile(ctx, id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// cleanSkills trims entries and drops empties, keeping order.
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			out = append(out, sk)
		}
	}
	return out
}

// Search returns one page of users matching the filters, newest first.
func (s *UserService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	switch {
	case limit == 0:
		limit = DefaultPageSize
	case limit < 1:
		limit = 1
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	excludes := make([]primitive.ObjectID, 0, len(params.ExcludeIDs)+1)
	for _, id := range params.ExcludeIDs {
		if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id)); err == nil {
			excludes = append(excludes, oid)
		}
	}
	if params.ExcludeSelf && params.CallerID != "" {
		if oid, err := primitive.ObjectIDFromHex(params.CallerID); err == nil {
			excludes = append(excludes, oid)
		}
	}

	query := store.SearchQuery{
		Role:       params.Role,
		Offered:    cleanSkills(params.Offered),
		Wanted:     cleanSkills(params.Wanted),
		Location:   strings.TrimSpace(params.Location),
		Q:          strings.TrimSpace(params.Q),
		ExcludeIDs: excludes,
	}

	skip := int64(page-1) * int64(limit)
	data, total, err := s.users.Search(ctx, query, skip, int64(limit))
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return &SearchResult{Data: data, Page: page, Total: total, TotalPages: totalPages}, nil
}

// ListSkills returns the deduplicated union of every user's offered and
// wanted skills, sorted with English collation.
func (s *UserService) ListSkills(ctx context.Context) ([]string, error) {
	raw, err := s.users.DistinctSkills(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	skills := make([]string, 0, len(raw))
	for _, sk := range raw {
		sk = strings.TrimSpace(sk)
		if sk == "" {
			continue
		}
		if _, dup := seen[sk]; dup {
			continue
		}
		seen[sk] = struct{}{}
		skills = append(skills, sk)
	}

	s.collator.SortStrings(skills)
	return skills, nil
}

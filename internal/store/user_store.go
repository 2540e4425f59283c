// Package store implements the document-store collaborators on top of
// MongoDB. Query building lives here so the services stay driver-free.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswap/skillswap-be/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	// For users this is the authoritative duplicate-email signal.
	ErrDuplicateKey = errors.New("duplicate key")
)

// SearchQuery describes the user search filters. All fields are optional
// and combine with AND semantics; multi-value fields match with OR/IN
// semantics internally.
type SearchQuery struct {
	Role       models.Role
	Offered    []string
	Wanted     []string
	Location   string
	Q          string
	ExcludeIDs []primitive.ObjectID
}

// Users provides CRUD and search over the users collection.
type Users struct {
	col *mongo.Collection
}

// NewUsers creates a user store on the given database.
func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

// Insert stores a new user, filling in its id and timestamps. A unique
// index violation on email surfaces as ErrDuplicateKey.
func (s *Users) Insert(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByEmail looks a user up by normalized email, password hash included.
func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// FindByID looks a user up by its hex id.
func (s *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

// UpdateProfile applies a partial profile update and returns the updated
// document. Nil fields in upd are left untouched; email and password are
// not reachable through this path.
func (s *Users) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := buildProfileSet(upd)
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

// buildProfileSet turns a partial update into a $set document.
func buildProfileSet(upd models.ProfileUpdate) bson.M {
	set := bson.M{}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.AvatarURL != nil {
		set["avatarUrl"] = *upd.AvatarURL
	}
	if upd.Role != nil {
		set["role"] = *upd.Role
	}
	if upd.SkillsOffered != nil {
		set["skillsOffered"] = *upd.SkillsOffered
	}
	if upd.SkillsWanted != nil {
		set["skillsWanted"] = *upd.SkillsWanted
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Age != nil {
		set["age"] = *upd.Age
	}
	if upd.CurrentPosition != nil {
		set["currentPosition"] = *upd.CurrentPosition
	}
	return set
}

// buildSearchFilter translates a SearchQuery into a Mongo filter document.
// Filters AND together; offered/wanted use $in, location and q are
// case-insensitive substring matches, and q ORs across full name and both
// skill arrays.
func buildSearchFilter(q SearchQuery) bson.M {
	filter := bson.M{}

	if q.Role != "" && q.Role != "Any" {
		filter["role"] = q.Role
	}
	if len(q.Offered) > 0 {
		filter["skillsOffered"] = bson.M{"$in": q.Offered}
	}
	if len(q.Wanted) > 0 {
		filter["skillsWanted"] = bson.M{"$in": q.Wanted}
	}
	if q.Location != "" {
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(q.Location), "$options": "i"}
	}
	if len(q.ExcludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": q.ExcludeIDs}
	}
	if q.Q != "" {
		re := bson.M{"$regex": regexp.QuoteMeta(q.Q), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"fullName": re},
			bson.M{"skillsOffered": bson.M{"$elemMatch": re}},
			bson.M{"skillsWanted": bson.M{"$elemMatch": re}},
		}
	}
	return filter
}

// Search returns one page of users matching the query plus the total match
// count. Results are newest first with ties broken by id, and never carry
// the password hash.
func (s *Users) Search(ctx context.Context, q SearchQuery, skip, limit int64) ([]models.User, int64, error) {
	filter := buildSearchFilter(q)

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{"passwordHash": 0})

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("decode users: %w", err)
	}
	return users, total, nil
}

// DistinctSkills returns the raw union of skillsOffered and skillsWanted
// values across all users. Cleanup and ordering happen in the service.
func (s *Users) DistinctSkills(ctx context.Context) ([]string, error) {
	var all []string
	for _, field := range []string{"skillsOffered", "skillsWanted"} {
		values, err := s.col.Distinct(ctx, field, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("distinct %s: %w", field, err)
		}
		for _, v := range values {
			if str, ok := v.(string); ok {
				all = append(all, str)
			}
		}
	}
	return all, nil
}

// PublicProfiles resolves a set of user ids to their minimal public
// profiles in one query.
func (s *Users) PublicProfiles(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.PublicProfile, error) {
	out := make(map[primitive.ObjectID]models.PublicProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{"fullName": 1, "avatarUrl": 1})
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	defer cur.Close(ctx)

	var profiles []models.PublicProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	for _, p := range profiles {
		out[p.ID] = p
	}
	return out, nil
}

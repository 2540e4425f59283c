package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswap/skillswap-be/internal/models"
)

// Swaps provides persistence for swap requests.
type Swaps struct {
	col *mongo.Collection
}

// NewSwaps creates a swap store on the given database.
func NewSwaps(db *mongo.Database) *Swaps {
	return &Swaps{col: db.Collection("swaps")}
}

// Insert stores a new swap request, filling in its id and timestamps.
func (s *Swaps) Insert(ctx context.Context, sw *models.SwapRequest) error {
	now := time.Now().UTC()
	sw.CreatedAt = now
	sw.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, sw)
	if err != nil {
		return fmt.Errorf("insert swap: %w", err)
	}
	sw.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID looks a swap request up by its hex id.
func (s *Swaps) FindByID(ctx context.Context, id string) (*models.SwapRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var sw models.SwapRequest
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&sw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find swap: %w", err)
	}
	return &sw, nil
}

// FindForUser returns every swap where the user is sender or receiver,
// newest first.
func (s *Swaps) FindForUser(ctx context.Context, userID primitive.ObjectID) ([]models.SwapRequest, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"from": userID},
		bson.M{"to": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find swaps: %w", err)
	}
	defer cur.Close(ctx)

	swaps := []models.SwapRequest{}
	if err := cur.All(ctx, &swaps); err != nil {
		return nil, fmt.Errorf("decode swaps: %w", err)
	}
	return swaps, nil
}

// TransitionIfPending moves a swap to the given status only if it is still
// Pending, and returns the updated document. ErrNotFound means either the
// id doesn't resolve or the request already left Pending; callers that
// fetched the document first can tell the two apart.
func (s *Swaps) TransitionIfPending(ctx context.Context, id primitive.ObjectID, status models.SwapStatus) (*models.SwapRequest, error) {
	filter := bson.M{"_id": id, "status": models.SwapPending}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var sw models.SwapRequest
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&sw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("transition swap: %w", err)
	}
	return &sw, nil
}

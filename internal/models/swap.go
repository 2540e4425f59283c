package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapPending  SwapStatus = "Pending"
	SwapAccepted SwapStatus = "Accepted"
	SwapDeclined SwapStatus = "Declined"
)

// MaxSwapMessageLen caps the free-text message on a swap request.
const MaxSwapMessageLen = 1000

// SwapRequest is a directed skill-trade proposal from one user to another.
// Only the receiver may move it out of Pending, and it moves at most once.
type SwapRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From      primitive.ObjectID `bson:"from" json:"from"`
	To        primitive.ObjectID `bson:"to" json:"to"`
	Message   string             `bson:"message" json:"message"`
	Status    SwapStatus         `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedSwap is a swap request with its endpoints resolved to minimal
// public profiles for listing views.
type PopulatedSwap struct {
	ID        primitive.ObjectID `json:"id"`
	From      PublicProfile      `json:"from"`
	To        PublicProfile      `json:"to"`
	Message   string             `json:"message"`
	Status    SwapStatus         `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a user's stated participation mode in the marketplace.
type Role string

const (
	RoleLearner Role = "Learner"
	RoleMentor  Role = "Mentor"
	RoleBoth    Role = "Both"
)

// ValidRole reports whether r is one of the accepted role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleLearner, RoleMentor, RoleBoth:
		return true
	}
	return false
}

// User represents a user account and its skill profile.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName        string             `bson:"fullName" json:"fullName"`
	Email           string             `bson:"email" json:"email"`
	PasswordHash    string             `bson:"passwordHash" json:"-"` // Never expose this to the client
	Bio             string             `bson:"bio" json:"bio"`
	AvatarURL       string             `bson:"avatarUrl" json:"avatarUrl"`
	Role            Role               `bson:"role" json:"role"`
	SkillsOffered   []string           `bson:"skillsOffered" json:"skillsOffered"`
	SkillsWanted    []string           `bson:"skillsWanted" json:"skillsWanted"`
	Location        string             `bson:"location" json:"location"`
	Age             *int               `bson:"age,omitempty" json:"age,omitempty"`
	CurrentPosition string             `bson:"currentPosition,omitempty" json:"currentPosition,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the minimal view of a user embedded in swap listings.
type PublicProfile struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FullName  string             `bson:"fullName" json:"fullName"`
	AvatarURL string             `bson:"avatarUrl" json:"avatarUrl"`
}

// Public returns the minimal profile for embedding in other documents.
func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, FullName: u.FullName, AvatarURL: u.AvatarURL}
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Nil fields are left untouched. Email and password are deliberately
// absent; they have their own flows.
type ProfileUpdate struct {
	Bio             *string   `json:"bio"`
	AvatarURL       *string   `json:"avatarUrl"`
	Role            *Role     `json:"role"`
	SkillsOffered   *[]string `json:"skillsOffered"`
	SkillsWanted    *[]string `json:"skillsWanted"`
	Location        *string   `json:"location"`
	Age             *int      `json:"age"`
	CurrentPosition *string   `json:"currentPosition"`
}

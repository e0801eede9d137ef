package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Code prefixes for the human-shareable link codes.
const (
	CoachCodePrefix  = "PG-C-"
	ClientCodePrefix = "PG-A-"
)

// CodePrefix returns the link-code prefix used for profiles of this role.
func (r Role) CodePrefix() string {
	if r == RoleCoach {
		return CoachCodePrefix
	}
	return ClientCodePrefix
}

// CoachProfile is the coach side of a User (1:1 with the user).
type CoachProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Code      string             `bson:"code" json:"code"` // PG-C-XXXX, unique among coaches
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ClientProfile is the client side of a User (1:1 with the user).
type ClientProfile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Code   string             `bson:"code" json:"code"` // PG-A-XXXX, unique among clients
	// CoachID is set once by the linking flow and never reassigned.
	CoachID   *primitive.ObjectID `bson:"coachId" json:"coachId,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// HasCoach reports whether the client is already linked to a coach.
func (p *ClientProfile) HasCoach() bool {
	return p.CoachID != nil && *p.CoachID != primitive.NilObjectID
}

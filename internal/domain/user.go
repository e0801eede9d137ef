package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleCoach  Role = "COACH"
	RoleClient Role = "CLIENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCoach || r == RoleClient
}

// HomePath is where a freshly authenticated user of this role lands.
func (r Role) HomePath() string {
	if r == RoleCoach {
		return "/dashboard"
	}
	return "/home"
}

// User represents an account in the system (either a Coach or a Client).
// Role-specific data lives in CoachProfile / ClientProfile.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`       // Unique
	Username     string             `bson:"username" json:"username"` // Unique, derived from Name at signup
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsClient() bool {
	return u.Role == RoleClient
}

// Actor is the authenticated caller of a request. It is built by the auth
// middleware from the session token and handed to every service call.
type Actor struct {
	UserID primitive.ObjectID
	Role   Role
}

func (a Actor) IsCoach() bool  { return a.Role == RoleCoach }
func (a Actor) IsClient() bool { return a.Role == RoleClient }

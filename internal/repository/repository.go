package repository

import (
	"alcyxob/coach-app/internal/domain" // Import our defined domain models
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrNotModified  = RepositoryError("no document matched the update conditions")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CoachProfileRepository defines the interface for coach profiles.
type CoachProfileRepository interface {
	Create(ctx context.Context, profile *domain.CoachProfile) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CoachProfile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.CoachProfile, error)
	GetByCode(ctx context.Context, code string) (*domain.CoachProfile, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// ClientProfileRepository defines the interface for client profiles.
type ClientProfileRepository interface {
	Create(ctx context.Context, profile *domain.ClientProfile) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.ClientProfile, error)
	GetByCode(ctx context.Context, code string) (*domain.ClientProfile, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	// SetCoachIfUnset links the client to coachID only while the client has
	// no coach. Returns ErrNotModified if a coach is already set.
	SetCoachIfUnset(ctx context.Context, clientID, coachID primitive.ObjectID) error
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.ClientProfile, error)
	CountByCoachID(ctx context.Context, coachID primitive.ObjectID) (int64, error)
}

// WorkoutRepository defines the interface for coach-owned workouts.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Workout, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.Workout, error)
	SearchByTitle(ctx context.Context, coachID primitive.ObjectID, query string, limit int64) ([]domain.Workout, error)
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
}

// WorkoutAssignmentRepository defines the interface for dated workout assignments.
type WorkoutAssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.WorkoutAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutAssignment, error)
	// GetByClientID returns newest first; limit <= 0 means no limit.
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WorkoutAssignment, error)
	// FindInRange returns the first assignment with from <= date < to.
	FindInRange(ctx context.Context, clientID primitive.ObjectID, from, to time.Time) (*domain.WorkoutAssignment, error)
	SetCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error
	SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) error
	CountPending(ctx context.Context, clientIDs []primitive.ObjectID, dueBy time.Time) (int64, error)
}

// MealPlanRepository defines the interface for coach-owned meal plans.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MealPlan, error)
	GetByCoachID(ctx context.Context, coachID primitive.ObjectID) ([]domain.MealPlan, error)
	// LatestByCoachID returns the most recently updated plan of the coach.
	LatestByCoachID(ctx context.Context, coachID primitive.ObjectID) (*domain.MealPlan, error)
	Update(ctx context.Context, plan *domain.MealPlan) error
	Delete(ctx context.Context, id, coachID primitive.ObjectID) error
}

// MealAssignmentRepository defines the interface for per-day meal assignments.
type MealAssignmentRepository interface {
	// Create returns ErrDuplicateKey when a row for (clientId, date) exists.
	Create(ctx context.Context, assignment *domain.MealAssignment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.MealAssignment, error)
	FindInRange(ctx context.Context, clientID primitive.ObjectID, from, to time.Time) (*domain.MealAssignment, error)
	// AddCompletedMeal and RemoveCompletedMeal return ErrNotModified when
	// the meal is already in (resp. absent from) the completed list.
	AddCompletedMeal(ctx context.Context, id primitive.ObjectID, meal string) error
	RemoveCompletedMeal(ctx context.Context, id primitive.ObjectID, meal string) error
	SetCustomContent(ctx context.Context, id primitive.ObjectID, content string) error
}

// ProgressLogRepository defines the interface for client progress logs.
type ProgressLogRepository interface {
	Create(ctx context.Context, log *domain.ProgressLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgressLog, error)
	// GetByClientID returns newest first; limit <= 0 means no limit.
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.ProgressLog, error)
	SetPhotoKey(ctx context.Context, id primitive.ObjectID, key string) error
}

// MessageRepository defines the interface for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Message, error)
	// Conversation returns messages exchanged between a and b in either
	// direction. offset counts back from the newest message; the returned
	// page is oldest first.
	Conversation(ctx context.Context, a, b primitive.ObjectID, offset, limit int64) ([]domain.Message, error)
	// MarkRead flips read=true only if receiverID is the receiver.
	MarkRead(ctx context.Context, id, receiverID primitive.ObjectID) error
	CountUnread(ctx context.Context, receiverID primitive.ObjectID, senderID *primitive.ObjectID) (int64, error)
}

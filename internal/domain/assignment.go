package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutAssignment attaches a Workout to a client for a specific day.
type WorkoutAssignment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"` // ClientProfile.ID
	Date      time.Time          `bson:"date" json:"date"`         // Start of the UTC day
	Completed bool               `bson:"completed" json:"completed"`
	Feedback  string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MealAssignment is the per-day nutrition record of a client. There is at
// most one per (ClientID, Date).
type MealAssignment struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClientID       primitive.ObjectID  `bson:"clientId" json:"clientId"`
	MealPlanID     *primitive.ObjectID `bson:"mealPlanId" json:"mealPlanId,omitempty"`
	Date           time.Time           `bson:"date" json:"date"`
	CompletedMeals []string            `bson:"completedMeals" json:"completedMeals"`
	CustomContent  string              `bson:"customContent" json:"customContent"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}

// IsMealCompleted reports whether the named meal is ticked off.
func (a *MealAssignment) IsMealCompleted(name string) bool {
	for _, m := range a.CompletedMeals {
		if m == name {
			return true
		}
	}
	return false
}

// DayStart truncates t to midnight UTC. All day-granular dates are stored
// in this form.
func DayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayRange returns the half-open interval [start, end) covering t's UTC day.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := DayStart(t)
	return start, start.AddDate(0, 0, 1)
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseEntry is one line of a workout, in the order the coach entered it.
type ExerciseEntry struct {
	Name   string `bson:"name" json:"name"`
	Sets   int    `bson:"sets" json:"sets"`
	Reps   string `bson:"reps" json:"reps"`     // "8-12", "AMRAP", ...
	Weight string `bson:"weight" json:"weight"` // "40kg", "BW", ...
}

// Workout is a reusable session template owned by a coach.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID     primitive.ObjectID `bson:"coachId" json:"coachId"` // CoachProfile.ID
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []ExerciseEntry    `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

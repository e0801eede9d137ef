package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodEntry is a single food line inside a meal.
type FoodEntry struct {
	Name     string  `bson:"name" json:"name"`
	Amount   float64 `bson:"amount" json:"amount"`
	Unit     string  `bson:"unit" json:"unit"`
	Calories float64 `bson:"calories" json:"calories"`
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fat      float64 `bson:"fat" json:"fat"`
}

// Meal groups foods under a name ("Breakfast", "Post-workout", ...).
// The name is what clients tick off in the completion tracker.
type Meal struct {
	Name  string      `bson:"name" json:"name"`
	Foods []FoodEntry `bson:"foods" json:"foods"`
}

// MealPlanContent is the structured body of a meal plan.
type MealPlanContent struct {
	Meals   []Meal `bson:"meals" json:"meals"`
	Summary string `bson:"summary,omitempty" json:"summary,omitempty"`
}

// Validate checks the content before it is persisted.
func (c MealPlanContent) Validate() error {
	if len(c.Meals) == 0 {
		return errors.New("meal plan must contain at least one meal")
	}
	seen := make(map[string]struct{}, len(c.Meals))
	for i, m := range c.Meals {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			return fmt.Errorf("meal %d has no name", i+1)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("meal name %q is used twice", name)
		}
		seen[name] = struct{}{}
		for _, f := range m.Foods {
			if strings.TrimSpace(f.Name) == "" {
				return fmt.Errorf("meal %q has a food without a name", name)
			}
			if f.Amount < 0 || f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
				return fmt.Errorf("food %q in meal %q has negative values", f.Name, name)
			}
		}
	}
	return nil
}

// MealPlan is a coach-authored nutrition plan.
type MealPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID   primitive.ObjectID `bson:"coachId" json:"coachId"` // CoachProfile.ID
	Title     string             `bson:"title" json:"title"`
	Content   MealPlanContent    `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Package catalog serves the static exercise library and food table used by
// the workout and meal-plan editors for autocomplete.
package catalog

import "strings"

const (
	MaxExerciseResults = 10
	MaxFoodResults     = 15
)

// Food is a reference nutrition entry. Values are per Unit.
type Food struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Unit     string  `json:"unit"` // "100g", "piece", "scoop", ...
}

// SearchExercises returns up to MaxExerciseResults exercise names containing
// query, case-insensitively, in library order. An empty query matches nothing.
func SearchExercises(query string) []string {
	q := normalize(query)
	matches := []string{}
	if q == "" {
		return matches
	}
	for _, name := range exercises {
		if strings.Contains(strings.ToLower(name), q) {
			matches = append(matches, name)
			if len(matches) == MaxExerciseResults {
				break
			}
		}
	}
	return matches
}

// SearchFoods returns up to MaxFoodResults foods whose name contains query,
// case-insensitively, in table order. An empty query matches nothing.
func SearchFoods(query string) []Food {
	q := normalize(query)
	matches := []Food{}
	if q == "" {
		return matches
	}
	for _, f := range foods {
		if strings.Contains(strings.ToLower(f.Name), q) {
			matches = append(matches, f)
			if len(matches) == MaxFoodResults {
				break
			}
		}
	}
	return matches
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

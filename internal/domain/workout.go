package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutExercise is one performed entry within a workout, referencing a
// catalog exercise by ID.
type WorkoutExercise struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Sets       int                `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps       int                `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight     float64            `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Workout is a logged training session owned by exactly one user. It is
// created by the owner, or synthesized as an achievement record when a
// bootcamp invitation is accepted.
type Workout struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Date            time.Time          `bson:"date" json:"date"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	Exercises       []WorkoutExercise  `bson:"exercises,omitempty" json:"exercises,omitempty"`
	CaloriesBurned  int                `bson:"caloriesBurned" json:"caloriesBurned"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// caloriesPerMinute is the flat burn rate used when the client does not
// report a total.
const caloriesPerMinute = 7

// EstimateCalories derives a calorie total from session length and volume.
// Used whenever a workout is stored without an explicit total.
func EstimateCalories(durationMinutes int, exercises []WorkoutExercise) int {
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	total := durationMinutes * caloriesPerMinute
	for _, e := range exercises {
		total += e.Sets * 2
	}
	return total
}

// TotalSets sums the set counts across all entries.
func (w *Workout) TotalSets() int {
	sets := 0
	for _, e := range w.Exercises {
		sets += e.Sets
	}
	return sets
}

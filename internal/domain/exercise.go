package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory classifies catalog entries.
type ExerciseCategory string

const (
	CategoryCardio      ExerciseCategory = "cardio"
	CategoryStrength    ExerciseCategory = "strength"
	CategoryFlexibility ExerciseCategory = "flexibility"
	CategoryBalance     ExerciseCategory = "balance"
)

// ExerciseDifficulty grades catalog entries.
type ExerciseDifficulty string

const (
	DifficultyBeginner     ExerciseDifficulty = "beginner"
	DifficultyIntermediate ExerciseDifficulty = "intermediate"
	DifficultyAdvanced     ExerciseDifficulty = "advanced"
)

// Exercise is an immutable catalog entry, seeded once and read-only
// from the application's perspective.
type Exercise struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Category     ExerciseCategory   `bson:"category" json:"category"`
	MuscleGroup  string             `bson:"muscleGroup,omitempty" json:"muscleGroup,omitempty"`
	Difficulty   ExerciseDifficulty `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

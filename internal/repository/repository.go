package repository

import (
	"campfit/fitness-app/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate entity")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")

	// Outcomes of the conditional participant insert.
	ErrDuplicateParticipant = RepositoryError("participant already present")
	ErrCapacityReached      = RepositoryError("participant capacity reached")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	// SetSuspension writes the suspension flag and bookkeeping fields.
	// Unsuspending clears reason and timestamp.
	SetSuspension(ctx context.Context, id primitive.ObjectID, suspended bool, reason string, at *time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	CountSuspended(ctx context.Context) (int64, error)
}

// ExerciseFilter narrows catalog listings; zero values match everything.
type ExerciseFilter struct {
	Category    string
	MuscleGroup string
	Difficulty  string
}

// ExerciseRepository defines the interface for the read-mostly exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	Find(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, error)
}

// WorkoutTotals aggregates calories and minutes across a set of workouts.
type WorkoutTotals struct {
	Workouts int64
	Calories int64
	Duration int64
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	// Delete requires the owner's ID in the filter so ownership is enforced
	// at the store as well as in the service.
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
	TotalsAll(ctx context.Context) (WorkoutTotals, error)
	TotalsByUserID(ctx context.Context, userID primitive.ObjectID) (WorkoutTotals, error)
}

// BootcampRepository defines the interface for interacting with bootcamp data.
type BootcampRepository interface {
	Create(ctx context.Context, bootcamp *domain.Bootcamp) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Bootcamp, error)
	GetAll(ctx context.Context) ([]domain.Bootcamp, error)
	// GetActiveAt returns the bootcamp whose window contains now, preferring
	// the most recently started one. ErrNotFound when no window matches.
	GetActiveAt(ctx context.Context, now time.Time) (*domain.Bootcamp, error)
	// GetUpcomingAt returns the next bootcamp starting strictly after now.
	GetUpcomingAt(ctx context.Context, now time.Time) (*domain.Bootcamp, error)
	Update(ctx context.Context, bootcamp *domain.Bootcamp) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// AddParticipant appends the entry in a single conditional update: it
	// succeeds only if the user holds no entry yet and the capacity (when
	// set) is not exhausted. Returns ErrNotFound, ErrDuplicateParticipant
	// or ErrCapacityReached otherwise.
	AddParticipant(ctx context.Context, id primitive.ObjectID, p domain.Participant) error
	// RemoveParticipant pulls any entry for the user. Removing a missing
	// entry is a no-op, not an error.
	RemoveParticipant(ctx context.Context, id, userID primitive.ObjectID) error
}

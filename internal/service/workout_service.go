package service

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("workout belongs to another user")
	ErrWorkoutValidation   = errors.New("workout validation failed")
)

// WorkoutParams carries create/update input for a workout.
type WorkoutParams struct {
	Name            string
	Description     string
	Notes           string
	Date            time.Time
	DurationMinutes int
	Exercises       []domain.WorkoutExercise
	// CaloriesBurned of 0 means "estimate for me".
	CaloriesBurned int
}

// --- Service Interface ---
type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID primitive.ObjectID, params WorkoutParams) (*domain.Workout, error)
	// GetWorkout enforces ownership: a foreign workout is access-denied,
	// not hidden.
	GetWorkout(ctx context.Context, callerID, id primitive.ObjectID) (*domain.Workout, error)
	GetUserWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	UpdateWorkout(ctx context.Context, callerID, id primitive.ObjectID, params WorkoutParams) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, callerID, id primitive.ObjectID) error
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// CreateWorkout validates and stores a workout for the caller.
func (s *workoutService) CreateWorkout(ctx context.Context, userID primitive.ObjectID, params WorkoutParams) (*domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	if err := validateWorkoutParams(params); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID:          userID,
		Name:            params.Name,
		Description:     params.Description,
		Notes:           params.Notes,
		Date:            params.Date,
		DurationMinutes: params.DurationMinutes,
		Exercises:       params.Exercises,
		CaloriesBurned:  params.CaloriesBurned,
	}
	if workout.CaloriesBurned == 0 {
		workout.CaloriesBurned = domain.EstimateCalories(params.DurationMinutes, params.Exercises)
	}

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

// GetWorkout retrieves a single workout the caller owns.
func (s *workoutService) GetWorkout(ctx context.Context, callerID, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	return workout, nil
}

// GetUserWorkouts lists the caller's own workouts; scoping happens in the
// query filter, not post-hoc.
func (s *workoutService) GetUserWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}
	return s.workoutRepo.GetByUserID(ctx, userID)
}

// UpdateWorkout rewrites an owned workout with the given fields.
func (s *workoutService) UpdateWorkout(ctx context.Context, callerID, id primitive.ObjectID, params WorkoutParams) (*domain.Workout, error) {
	if err := validateWorkoutParams(params); err != nil {
		return nil, err
	}

	workout, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	workout.Name = params.Name
	workout.Description = params.Description
	workout.Notes = params.Notes
	workout.Date = params.Date
	workout.DurationMinutes = params.DurationMinutes
	workout.Exercises = params.Exercises
	workout.CaloriesBurned = params.CaloriesBurned
	if workout.CaloriesBurned == 0 {
		workout.CaloriesBurned = domain.EstimateCalories(params.DurationMinutes, params.Exercises)
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// DeleteWorkout removes an owned workout. The repository filter includes
// the owner as well, so the check holds at the store too.
func (s *workoutService) DeleteWorkout(ctx context.Context, callerID, id primitive.ObjectID) error {
	if _, err := s.getOwned(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, id, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// getOwned fetches a workout and verifies the caller owns it: 404 when the
// id does not resolve, 403 when it resolves to someone else's record.
func (s *workoutService) getOwned(ctx context.Context, callerID, id primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != callerID {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

func validateWorkoutParams(params WorkoutParams) error {
	if params.Name == "" || params.Date.IsZero() || params.DurationMinutes <= 0 {
		return ErrWorkoutValidation
	}
	return nil
}

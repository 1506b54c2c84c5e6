package service

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newWorkoutServiceForTest() (WorkoutService, *MockWorkoutRepository) {
	workoutRepo := new(MockWorkoutRepository)
	return NewWorkoutService(workoutRepo), workoutRepo
}

func validWorkoutParams() WorkoutParams {
	return WorkoutParams{
		Name:            "Leg Day",
		Date:            time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
	}
}

func TestCreateWorkout_EstimatesCaloriesWhenUnset(t *testing.T) {
	svc, workoutRepo := newWorkoutServiceForTest()
	ctx := context.Background()
	userID := primitive.NewObjectID()
	newID := primitive.NewObjectID()

	params := validWorkoutParams()
	params.Exercises = []domain.WorkoutExercise{{ExerciseID: primitive.NewObjectID(), Sets: 4}}

	workoutRepo.On("Create", ctx, mock.MatchedBy(func(w *domain.Workout) bool {
		return w.UserID == userID && w.CaloriesBurned == domain.EstimateCalories(45, params.Exercises)
	})).Return(newID, nil).Once()

	workout, err := svc.CreateWorkout(ctx, userID, params)

	assert.NoError(t, err)
	assert.Equal(t, newID, workout.ID)
	workoutRepo.AssertExpectations(t)
}

func TestCreateWorkout_KeepsExplicitCalories(t *testing.T) {
	svc, workoutRepo := newWorkoutServiceForTest()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	params := validWorkoutParams()
	params.CaloriesBurned = 999

	workoutRepo.On("Create", ctx, mock.MatchedBy(func(w *domain.Workout) bool {
		return w.CaloriesBurned == 999
	})).Return(primitive.NewObjectID(), nil).Once()

	_, err := svc.CreateWorkout(ctx, userID, params)
	assert.NoError(t, err)
	workoutRepo.AssertExpectations(t)
}

func TestCreateWorkout_Validation(t *testing.T) {
	svc, workoutRepo := newWorkoutServiceForTest()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	noName := validWorkoutParams()
	noName.Name = ""
	_, err := svc.CreateWorkout(ctx, userID, noName)
	assert.ErrorIs(t, err, ErrWorkoutValidation)

	noDate := validWorkoutParams()
	noDate.Date = time.Time{}
	_, err = svc.CreateWorkout(ctx, userID, noDate)
	assert.ErrorIs(t, err, ErrWorkoutValidation)

	zeroDuration := validWorkoutParams()
	zeroDuration.DurationMinutes = 0
	_, err = svc.CreateWorkout(ctx, userID, zeroDuration)
	assert.ErrorIs(t, err, ErrWorkoutValidation)

	workoutRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetWorkout_ForeignWorkoutIsAccessDenied(t *testing.T) {
	svc, workoutRepo := newWorkoutServiceForTest()
	ctx := context.Background()

	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	stored := &domain.Workout{ID: primitive.NewObjectID(), UserID: owner, Name: "Private"}

	workoutRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()

	_, err := svc.GetWorkout(ctx, stranger, stored.ID)
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)
}

func TestGetWorkout_NotFound(t *testing.T) {
	svc, workoutRepo := newWorkoutServiceForTest()
	ctx := context.Background()
	id := primitive.NewObjectID()

	workoutRepo.On("GetByID", ctx, id).Return(nil, repository.ErrNotFound).Once()

	_, err := svc.GetWorkout(ctx, primitive.NewObjectID(), id)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestUpdateWorkout_ForeignWorkoutIsAccessDenied(t *testing.T) {
	svc, workoutRepo := newWorkoutServiceForTest()
	ctx := context.Background()

	stored := &domain.Workout{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	workoutRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()

	_, err := svc.UpdateWorkout(ctx, primitive.NewObjectID(), stored.ID, validWorkoutParams())

	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)
	workoutRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteWorkout_ForeignWorkoutIsAccessDenied(t *testing.T) {
	svc, workoutRepo := newWorkoutServiceForTest()
	ctx := context.Background()

	stored := &domain.Workout{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	workoutRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()

	err := svc.DeleteWorkout(ctx, primitive.NewObjectID(), stored.ID)

	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)
	workoutRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteWorkout_ScopesDeleteToOwner(t *testing.T) {
	svc, workoutRepo := newWorkoutServiceForTest()
	ctx := context.Background()

	owner := primitive.NewObjectID()
	stored := &domain.Workout{ID: primitive.NewObjectID(), UserID: owner}

	workoutRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()
	workoutRepo.On("Delete", ctx, stored.ID, owner).Return(nil).Once()

	assert.NoError(t, svc.DeleteWorkout(ctx, owner, stored.ID))
	workoutRepo.AssertExpectations(t)
}

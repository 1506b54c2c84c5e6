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

func newAdminServiceForTest() (AdminService, *MockUserRepository, *MockWorkoutRepository) {
	userRepo := new(MockUserRepository)
	workoutRepo := new(MockWorkoutRepository)
	return NewAdminService(userRepo, workoutRepo, newMockNotifier()), userRepo, workoutRepo
}

func TestSuspendUser_RequiresReason(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest()

	_, err := svc.SuspendUser(context.Background(), primitive.NewObjectID(), "")

	assert.ErrorIs(t, err, ErrReasonRequired)
	userRepo.AssertNotCalled(t, "SetSuspension", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSuspendUser_StoresReasonAndTimestamp(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest()
	ctx := context.Background()
	id := primitive.NewObjectID()

	userRepo.On("SetSuspension", ctx, id, true, "spam", mock.AnythingOfType("*time.Time")).Return(nil).Once()
	userRepo.On("GetByID", ctx, id).Return(&domain.User{
		ID:              id,
		Email:           "spammer@example.com",
		Suspended:       true,
		SuspendedReason: "spam",
	}, nil).Once()

	user, err := svc.SuspendUser(ctx, id, "spam")

	assert.NoError(t, err)
	assert.True(t, user.Suspended)
	assert.Equal(t, "spam", user.SuspendedReason)
	userRepo.AssertExpectations(t)
}

func TestUnsuspendUser_ClearsSuspension(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest()
	ctx := context.Background()
	id := primitive.NewObjectID()

	userRepo.On("SetSuspension", ctx, id, false, "", (*time.Time)(nil)).Return(nil).Once()
	userRepo.On("GetByID", ctx, id).Return(&domain.User{ID: id}, nil).Once()

	user, err := svc.UnsuspendUser(ctx, id)

	assert.NoError(t, err)
	assert.False(t, user.Suspended)
	userRepo.AssertExpectations(t)
}

func TestSuspendUser_NotFound(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest()
	ctx := context.Background()
	id := primitive.NewObjectID()

	userRepo.On("SetSuspension", ctx, id, true, "spam", mock.Anything).Return(repository.ErrNotFound).Once()

	_, err := svc.SuspendUser(ctx, id, "spam")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser_CascadesWorkoutsFirst(t *testing.T) {
	svc, userRepo, workoutRepo := newAdminServiceForTest()
	ctx := context.Background()
	id := primitive.NewObjectID()

	userRepo.On("GetByID", ctx, id).Return(&domain.User{ID: id}, nil).Once()
	workoutRepo.On("DeleteByUserID", ctx, id).Return(nil).Once()
	userRepo.On("Delete", ctx, id).Return(nil).Once()

	assert.NoError(t, svc.DeleteUser(ctx, id))
	userRepo.AssertExpectations(t)
	workoutRepo.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc, userRepo, workoutRepo := newAdminServiceForTest()
	ctx := context.Background()
	id := primitive.NewObjectID()

	userRepo.On("GetByID", ctx, id).Return(nil, repository.ErrNotFound).Once()

	assert.ErrorIs(t, svc.DeleteUser(ctx, id), ErrUserNotFound)
	workoutRepo.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
}

func TestGetStats(t *testing.T) {
	svc, userRepo, workoutRepo := newAdminServiceForTest()
	ctx := context.Background()

	userRepo.On("Count", ctx).Return(int64(42), nil).Once()
	userRepo.On("CountSuspended", ctx).Return(int64(3), nil).Once()
	workoutRepo.On("TotalsAll", ctx).Return(repository.WorkoutTotals{
		Workouts: 120,
		Calories: 50400,
		Duration: 7200,
	}, nil).Once()

	stats, err := svc.GetStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.SuspendedUsers)
	assert.Equal(t, int64(120), stats.TotalWorkouts)
	assert.Equal(t, int64(50400), stats.TotalCalories)
	assert.Equal(t, int64(7200), stats.TotalDuration)
}

func TestGetUserDetail(t *testing.T) {
	svc, userRepo, workoutRepo := newAdminServiceForTest()
	ctx := context.Background()
	id := primitive.NewObjectID()

	userRepo.On("GetByID", ctx, id).Return(&domain.User{ID: id, Name: "Jo", PasswordHash: "secret"}, nil).Once()
	workoutRepo.On("TotalsByUserID", ctx, id).Return(repository.WorkoutTotals{Workouts: 8, Calories: 3400, Duration: 420}, nil).Once()
	workoutRepo.On("GetRecentByUserID", ctx, id, int64(recentWorkoutLimit)).Return([]domain.Workout{{Name: "Leg Day"}}, nil).Once()

	detail, err := svc.GetUserDetail(ctx, id)

	assert.NoError(t, err)
	assert.Empty(t, detail.User.PasswordHash)
	assert.Equal(t, int64(8), detail.TotalWorkouts)
	assert.Len(t, detail.RecentWorkouts, 1)
}

func TestListUsers_StripsHashes(t *testing.T) {
	svc, userRepo, _ := newAdminServiceForTest()
	ctx := context.Background()

	userRepo.On("GetAll", ctx).Return([]domain.User{
		{Name: "A", PasswordHash: "h1"},
		{Name: "B", PasswordHash: "h2"},
	}, nil).Once()

	users, err := svc.ListUsers(ctx)

	assert.NoError(t, err)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

package service

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/repository"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SetSuspension(ctx context.Context, id primitive.ObjectID, suspended bool, reason string, at *time.Time) error {
	args := m.Called(ctx, id, suspended, reason, at)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountSuspended(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockWorkoutRepository is a mock implementation of repository.WorkoutRepository.
type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	args := m.Called(ctx, workout)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	args := m.Called(ctx, workout)
	return args.Error(0)
}

func (m *MockWorkoutRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockWorkoutRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockWorkoutRepository) TotalsAll(ctx context.Context) (repository.WorkoutTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.WorkoutTotals), args.Error(1)
}

func (m *MockWorkoutRepository) TotalsByUserID(ctx context.Context, userID primitive.ObjectID) (repository.WorkoutTotals, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(repository.WorkoutTotals), args.Error(1)
}

// MockBootcampRepository is a mock implementation of repository.BootcampRepository.
type MockBootcampRepository struct {
	mock.Mock
}

func (m *MockBootcampRepository) Create(ctx context.Context, bootcamp *domain.Bootcamp) (primitive.ObjectID, error) {
	args := m.Called(ctx, bootcamp)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockBootcampRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Bootcamp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bootcamp), args.Error(1)
}

func (m *MockBootcampRepository) GetAll(ctx context.Context) ([]domain.Bootcamp, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bootcamp), args.Error(1)
}

func (m *MockBootcampRepository) GetActiveAt(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bootcamp), args.Error(1)
}

func (m *MockBootcampRepository) GetUpcomingAt(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bootcamp), args.Error(1)
}

func (m *MockBootcampRepository) Update(ctx context.Context, bootcamp *domain.Bootcamp) error {
	args := m.Called(ctx, bootcamp)
	return args.Error(0)
}

func (m *MockBootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBootcampRepository) AddParticipant(ctx context.Context, id primitive.ObjectID, p domain.Participant) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

func (m *MockBootcampRepository) RemoveParticipant(ctx context.Context, id, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockNotifier is a mock implementation of notification.Notifier. Sends are
// dispatched in goroutines, so tests configure it with Maybe() and never
// assert call counts.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendWelcome(ctx context.Context, toEmail, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *MockNotifier) SendSuspension(ctx context.Context, toEmail, name, reason string) error {
	args := m.Called(ctx, toEmail, name, reason)
	return args.Error(0)
}

func (m *MockNotifier) SendReinstatement(ctx context.Context, toEmail, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *MockNotifier) SendBootcampInvite(ctx context.Context, toEmail, name, bootcampTitle string, startTime time.Time) error {
	args := m.Called(ctx, toEmail, name, bootcampTitle, startTime)
	return args.Error(0)
}

// newMockNotifier returns a notifier that accepts any send.
func newMockNotifier() *MockNotifier {
	n := new(MockNotifier)
	n.On("SendWelcome", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	n.On("SendSuspension", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	n.On("SendReinstatement", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	n.On("SendBootcampInvite", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return n
}

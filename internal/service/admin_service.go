package service

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/notification"
	"campfit/fitness-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrReasonRequired = errors.New("a suspension reason is required")
)

// Number of recent workouts included in a user detail view.
const recentWorkoutLimit = 5

// UserDetail is the admin view of one account: the user plus their workout
// totals and most recent sessions.
type UserDetail struct {
	User           domain.User
	TotalWorkouts  int64
	TotalCalories  int64
	TotalDuration  int64
	RecentWorkouts []domain.Workout
}

// Stats aggregates platform-wide counts for the admin dashboard.
type Stats struct {
	TotalUsers     int64 `json:"totalUsers"`
	SuspendedUsers int64 `json:"suspendedUsers"`
	TotalWorkouts  int64 `json:"totalWorkouts"`
	TotalCalories  int64 `json:"totalCalories"`
	TotalDuration  int64 `json:"totalDuration"`
}

// --- Service Interface ---
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserDetail(ctx context.Context, id primitive.ObjectID) (*UserDetail, error)
	// DeleteUser removes the account and cascades to the user's workouts.
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	GetStats(ctx context.Context) (*Stats, error)
	SuspendUser(ctx context.Context, id primitive.ObjectID, reason string) (*domain.User, error)
	UnsuspendUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// --- Service Implementation ---

type adminService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	notifier    notification.Notifier
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository, notifier notification.Notifier) AdminService {
	return &adminService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		notifier:    notifier,
	}
}

// ListUsers returns every account, newest first.
func (s *adminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetUserDetail returns one account with its workout totals and the five
// most recent sessions.
func (s *adminService) GetUserDetail(ctx context.Context, id primitive.ObjectID) (*UserDetail, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""

	totals, err := s.workoutRepo.TotalsByUserID(ctx, id)
	if err != nil {
		return nil, err
	}
	recent, err := s.workoutRepo.GetRecentByUserID(ctx, id, recentWorkoutLimit)
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		User:           *user,
		TotalWorkouts:  totals.Workouts,
		TotalCalories:  totals.Calories,
		TotalDuration:  totals.Duration,
		RecentWorkouts: recent,
	}, nil
}

// DeleteUser removes the account and all workouts it owns. The workouts go
// first so a failure cannot orphan them behind a deleted user.
func (s *adminService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.workoutRepo.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetStats aggregates platform-wide counts.
func (s *adminService) GetStats(ctx context.Context) (*Stats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	suspended, err := s.userRepo.CountSuspended(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := s.workoutRepo.TotalsAll(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:     totalUsers,
		SuspendedUsers: suspended,
		TotalWorkouts:  totals.Workouts,
		TotalCalories:  totals.Calories,
		TotalDuration:  totals.Duration,
	}, nil
}

// SuspendUser marks the account suspended and emails the user best-effort.
func (s *adminService) SuspendUser(ctx context.Context, id primitive.ObjectID, reason string) (*domain.User, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	now := time.Now().UTC()
	if err := s.userRepo.SetSuspension(ctx, id, true, reason, &now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	email, name := user.Email, user.Name
	notification.Dispatch(func(ctx context.Context) error {
		return s.notifier.SendSuspension(ctx, email, name, reason)
	})
	return user, nil
}

// UnsuspendUser clears the suspension and emails the user best-effort.
func (s *adminService) UnsuspendUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if err := s.userRepo.SetSuspension(ctx, id, false, "", nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	email, name := user.Email, user.Name
	notification.Dispatch(func(ctx context.Context) error {
		return s.notifier.SendReinstatement(ctx, email, name)
	})
	return user, nil
}

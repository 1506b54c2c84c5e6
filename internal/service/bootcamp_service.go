package service

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/notification"
	"campfit/fitness-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrBootcampNotFound     = errors.New("bootcamp not found")
	ErrBootcampAccessDenied = errors.New("only the creator or an admin may modify this bootcamp")
	ErrBootcampStarted      = errors.New("bootcamp has already started")
	ErrBootcampValidation   = errors.New("bootcamp validation failed")
	ErrAlreadyAccepted      = errors.New("already accepted this bootcamp")
	ErrBootcampFull         = errors.New("bootcamp is full")
	ErrNoInvitees           = errors.New("none of the given user ids resolve to accounts")
)

// BootcampWithCreator pairs a bootcamp with its creator's display name for
// listings.
type BootcampWithCreator struct {
	domain.Bootcamp
	CreatorName string
}

// CreateBootcampParams carries creation input.
type CreateBootcampParams struct {
	Title           string
	Description     string
	Expectations    string
	Exercises       []string
	StartTime       time.Time
	EndTime         time.Time
	Difficulty      string
	MaxParticipants int
}

// UpdateBootcampParams carries a partial update; nil fields are left
// untouched.
type UpdateBootcampParams struct {
	Title           *string
	Description     *string
	Expectations    *string
	Exercises       *[]string
	StartTime       *time.Time
	EndTime         *time.Time
	Difficulty      *string
	MaxParticipants *int
}

// --- Service Interface ---
type BootcampService interface {
	ListBootcamps(ctx context.Context) ([]BootcampWithCreator, error)
	// GetActive returns the bootcamp running right now, or nil when none
	// is (not an error).
	GetActive(ctx context.Context, now time.Time) (*domain.Bootcamp, error)
	// GetUpcoming returns the next scheduled bootcamp, or nil when none.
	GetUpcoming(ctx context.Context, now time.Time) (*domain.Bootcamp, error)
	GetStatus(ctx context.Context, id primitive.ObjectID, now time.Time) (*domain.BootcampStatus, error)
	Create(ctx context.Context, creatorID primitive.ObjectID, params CreateBootcampParams) (*domain.Bootcamp, error)
	Update(ctx context.Context, callerID primitive.ObjectID, callerIsAdmin bool, id primitive.ObjectID, params UpdateBootcampParams) (*domain.Bootcamp, error)
	Delete(ctx context.Context, callerID primitive.ObjectID, callerIsAdmin bool, id primitive.ObjectID) error
	// Accept adds the caller as a participant and synthesizes the
	// achievement workout, returning both.
	Accept(ctx context.Context, userID, id primitive.ObjectID, now time.Time) (*domain.Bootcamp, *domain.Workout, error)
	// Decline removes the caller's entry; declining without one is a
	// successful no-op.
	Decline(ctx context.Context, userID, id primitive.ObjectID) error
	// Invite emails each resolvable user; returns how many were sent.
	Invite(ctx context.Context, id primitive.ObjectID, userIDs []primitive.ObjectID) (int, error)
}

// --- Service Implementation ---

type bootcampService struct {
	bootcampRepo repository.BootcampRepository
	userRepo     repository.UserRepository
	workoutRepo  repository.WorkoutRepository
	notifier     notification.Notifier
}

// NewBootcampService creates a new instance of bootcampService.
func NewBootcampService(
	bootcampRepo repository.BootcampRepository,
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	notifier notification.Notifier,
) BootcampService {
	return &bootcampService{
		bootcampRepo: bootcampRepo,
		userRepo:     userRepo,
		workoutRepo:  workoutRepo,
		notifier:     notifier,
	}
}

// ListBootcamps returns every bootcamp, startTime ascending, with the
// creator's name joined in.
func (s *bootcampService) ListBootcamps(ctx context.Context) ([]BootcampWithCreator, error) {
	bootcamps, err := s.bootcampRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	creatorIDs := make([]primitive.ObjectID, 0, len(bootcamps))
	seen := make(map[primitive.ObjectID]bool)
	for _, b := range bootcamps {
		if !seen[b.CreatedBy] {
			seen[b.CreatedBy] = true
			creatorIDs = append(creatorIDs, b.CreatedBy)
		}
	}

	creators, err := s.userRepo.GetByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(creators))
	for _, u := range creators {
		names[u.ID] = u.Name
	}

	result := make([]BootcampWithCreator, len(bootcamps))
	for i, b := range bootcamps {
		result[i] = BootcampWithCreator{Bootcamp: b, CreatorName: names[b.CreatedBy]}
	}
	return result, nil
}

// GetActive returns the bootcamp whose window contains now, nil when none.
func (s *bootcampService) GetActive(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
	bootcamp, err := s.bootcampRepo.GetActiveAt(ctx, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bootcamp, nil
}

// GetUpcoming returns the next scheduled bootcamp, nil when none.
func (s *bootcampService) GetUpcoming(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
	bootcamp, err := s.bootcampRepo.GetUpcomingAt(ctx, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return bootcamp, nil
}

// GetStatus derives the lifecycle snapshot for a bootcamp.
func (s *bootcampService) GetStatus(ctx context.Context, id primitive.ObjectID, now time.Time) (*domain.BootcampStatus, error) {
	bootcamp, err := s.bootcampRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBootcampNotFound
		}
		return nil, err
	}
	status := bootcamp.StatusAt(now)
	return &status, nil
}

// Create validates and stores a new bootcamp.
func (s *bootcampService) Create(ctx context.Context, creatorID primitive.ObjectID, params CreateBootcampParams) (*domain.Bootcamp, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	if params.Title == "" || params.Description == "" || params.Expectations == "" ||
		params.StartTime.IsZero() || params.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: title, description, expectations, startTime and endTime are required", ErrBootcampValidation)
	}
	if !params.EndTime.After(params.StartTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrBootcampValidation)
	}
	if params.MaxParticipants < 0 {
		return nil, fmt.Errorf("%w: maxParticipants cannot be negative", ErrBootcampValidation)
	}

	difficulty := params.Difficulty
	if difficulty == "" {
		difficulty = domain.DefaultBootcampDifficulty
	}

	bootcamp := &domain.Bootcamp{
		Title:           params.Title,
		Description:     params.Description,
		Expectations:    params.Expectations,
		Exercises:       params.Exercises,
		StartTime:       params.StartTime,
		EndTime:         params.EndTime,
		Difficulty:      difficulty,
		MaxParticipants: params.MaxParticipants,
		CreatedBy:       creatorID,
		Participants:    []domain.Participant{},
	}

	id, err := s.bootcampRepo.Create(ctx, bootcamp)
	if err != nil {
		return nil, err
	}
	bootcamp.ID = id
	return bootcamp, nil
}

// Update applies a partial merge, guarded the same way as Delete: only the
// creator or an admin, and only strictly before the start time.
func (s *bootcampService) Update(ctx context.Context, callerID primitive.ObjectID, callerIsAdmin bool, id primitive.ObjectID, params UpdateBootcampParams) (*domain.Bootcamp, error) {
	bootcamp, err := s.guardMutable(ctx, callerID, callerIsAdmin, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		bootcamp.Title = *params.Title
	}
	if params.Description != nil {
		bootcamp.Description = *params.Description
	}
	if params.Expectations != nil {
		bootcamp.Expectations = *params.Expectations
	}
	if params.Exercises != nil {
		bootcamp.Exercises = *params.Exercises
	}
	if params.StartTime != nil {
		bootcamp.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		bootcamp.EndTime = *params.EndTime
	}
	if params.Difficulty != nil {
		bootcamp.Difficulty = *params.Difficulty
	}
	if params.MaxParticipants != nil {
		if *params.MaxParticipants < 0 {
			return nil, fmt.Errorf("%w: maxParticipants cannot be negative", ErrBootcampValidation)
		}
		bootcamp.MaxParticipants = *params.MaxParticipants
	}

	if !bootcamp.EndTime.After(bootcamp.StartTime) {
		return nil, fmt.Errorf("%w: endTime must be after startTime", ErrBootcampValidation)
	}

	if err := s.bootcampRepo.Update(ctx, bootcamp); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBootcampNotFound
		}
		return nil, err
	}
	return bootcamp, nil
}

// Delete removes a bootcamp under the same guards as Update. Achievement
// workouts from prior acceptances are not cascaded.
func (s *bootcampService) Delete(ctx context.Context, callerID primitive.ObjectID, callerIsAdmin bool, id primitive.ObjectID) error {
	if _, err := s.guardMutable(ctx, callerID, callerIsAdmin, id); err != nil {
		return err
	}
	if err := s.bootcampRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBootcampNotFound
		}
		return err
	}
	return nil
}

// guardMutable fetches the bootcamp and enforces the edit guards: creator
// or admin, and strictly pre-start (a bootcamp starting exactly now is
// already frozen).
func (s *bootcampService) guardMutable(ctx context.Context, callerID primitive.ObjectID, callerIsAdmin bool, id primitive.ObjectID) (*domain.Bootcamp, error) {
	bootcamp, err := s.bootcampRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBootcampNotFound
		}
		return nil, err
	}
	if bootcamp.CreatedBy != callerID && !callerIsAdmin {
		return nil, ErrBootcampAccessDenied
	}
	if bootcamp.HasStartedAt(time.Now().UTC()) {
		return nil, ErrBootcampStarted
	}
	return bootcamp, nil
}

// Accept adds the caller as a participant. Duplicate entries and the
// capacity bound are enforced by the repository's conditional update, so
// two concurrent accepts at the limit cannot both succeed. On success an
// achievement workout is written for the caller.
func (s *bootcampService) Accept(ctx context.Context, userID, id primitive.ObjectID, now time.Time) (*domain.Bootcamp, *domain.Workout, error) {
	participant := domain.Participant{
		UserID:     userID,
		AcceptedAt: now,
		Status:     domain.ParticipantAccepted,
	}

	err := s.bootcampRepo.AddParticipant(ctx, id, participant)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil, ErrBootcampNotFound
	case errors.Is(err, repository.ErrDuplicateParticipant):
		return nil, nil, ErrAlreadyAccepted
	case errors.Is(err, repository.ErrCapacityReached):
		return nil, nil, ErrBootcampFull
	default:
		return nil, nil, err
	}

	bootcamp, err := s.bootcampRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	achievement := buildAchievementWorkout(userID, bootcamp)
	workoutID, err := s.workoutRepo.Create(ctx, achievement)
	if err != nil {
		// The participant entry stands; the achievement record failed.
		return nil, nil, fmt.Errorf("accepted but failed to record achievement: %w", err)
	}
	achievement.ID = workoutID

	return bootcamp, achievement, nil
}

// buildAchievementWorkout synthesizes the workout record marking a
// bootcamp acceptance.
func buildAchievementWorkout(userID primitive.ObjectID, bootcamp *domain.Bootcamp) *domain.Workout {
	duration := int(bootcamp.EndTime.Sub(bootcamp.StartTime).Minutes())
	return &domain.Workout{
		UserID:          userID,
		Name:            fmt.Sprintf("Bootcamp: %s", bootcamp.Title),
		Description:     bootcamp.Description,
		Notes:           fmt.Sprintf("Joined bootcamp %q. Expectations: %s", bootcamp.Title, bootcamp.Expectations),
		Date:            bootcamp.StartTime,
		DurationMinutes: duration,
		CaloriesBurned:  domain.EstimateCalories(duration, nil),
	}
}

// Decline removes any participant entry for the caller. Idempotent.
func (s *bootcampService) Decline(ctx context.Context, userID, id primitive.ObjectID) error {
	err := s.bootcampRepo.RemoveParticipant(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBootcampNotFound
		}
		return err
	}
	return nil
}

// Invite resolves the given users and emails each an invitation.
// Unresolvable IDs are dropped silently; a send failure for one invitee
// never affects the others or the response.
func (s *bootcampService) Invite(ctx context.Context, id primitive.ObjectID, userIDs []primitive.ObjectID) (int, error) {
	bootcamp, err := s.bootcampRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrBootcampNotFound
		}
		return 0, err
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, ErrNoInvitees
	}

	for _, u := range users {
		email, name := u.Email, u.Name
		notification.Dispatch(func(ctx context.Context) error {
			return s.notifier.SendBootcampInvite(ctx, email, name, bootcamp.Title, bootcamp.StartTime)
		})
	}
	return len(users), nil
}

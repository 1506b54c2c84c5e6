package service

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/notification"
	"campfit/fitness-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// SuspendedError is returned from Login for a suspended account so the
// handler can echo the stored reason and timestamp. No token is ever issued
// alongside it.
type SuspendedError struct {
	Reason      string
	SuspendedAt *time.Time
}

func (e *SuspendedError) Error() string {
	return fmt.Sprintf("account suspended: %s", e.Reason)
}

// RegisterParams carries registration input. The profile fields are
// optional.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Age      *int
	Weight   *float64
	Height   *float64
	Goal     string
}

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (token string, user *domain.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// GetUserByID resolves a token subject to its current account state.
	// The admin gate uses this so elevated rights never ride on a stale
	// token snapshot.
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	notifier      notification.Notifier
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, notifier notification.Notifier, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 30 * 24 * time.Hour // Default to 30 days
	}
	return &authService{
		userRepo:      userRepo,
		notifier:      notifier,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration and issues the first token.
func (s *authService) Register(ctx context.Context, params RegisterParams) (string, *domain.User, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" {
		return "", nil, errors.New("name, email and password cannot be empty")
	}

	// Check if the email is already taken.
	_, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err == nil {
		return "", nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hashedPassword),
		Age:          params.Age,
		Weight:       params.Weight,
		Height:       params.Height,
		Goal:         params.Goal,
		// IsAdmin stays false; admin accounts come from the seeder or an
		// existing admin, never from registration input.
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique index closes the register/register race.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, ErrUserAlreadyExists
		}
		return "", nil, err
	}
	user.ID = userID

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	notification.Dispatch(func(ctx context.Context) error {
		return s.notifier.SendWelcome(ctx, user.Email, user.Name)
	})

	user.PasswordHash = ""
	return token, user, nil
}

// Login handles user authentication and JWT generation. Suspended accounts
// are rejected after the password check so that credentials are still
// required to learn the suspension details.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	if user.Suspended {
		return "", nil, &SuspendedError{Reason: user.SuspendedReason, SuspendedAt: user.SuspendedAt}
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// GetUserByID resolves an account by ID.
func (s *authService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload. The isAdmin claim is
// a point-in-time snapshot; admin-gated routes re-check the store.
type jwtClaims struct {
	UserID  string `json:"uid"`
	IsAdmin bool   `json:"adm"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID:  user.ID.Hex(),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "campfit",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

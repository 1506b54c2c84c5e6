package api

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Age      *int     `json:"age" binding:"omitempty,gt=0"`
	Weight   *float64 `json:"weight" binding:"omitempty,gt=0"`
	Height   *float64 `json:"height" binding:"omitempty,gt=0"`
	Goal     string   `json:"goal"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like password hash.
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Age       *int       `json:"age,omitempty"`
	Weight    *float64   `json:"weight,omitempty"`
	Height    *float64   `json:"height,omitempty"`
	Goal      string     `json:"goal,omitempty"`
	IsAdmin   bool       `json:"isAdmin"`
	Suspended bool       `json:"suspended"`
	CreatedAt time.Time  `json:"createdAt"`
	SuspendedAt *time.Time `json:"suspendedAt,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Register creates a new account and issues the first token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.Register(c.Request.Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Weight:   req.Weight,
		Height:   req.Height,
		Goal:     req.Goal,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrHashingFailed), errors.Is(err, service.ErrTokenGeneration):
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: MapUserToResponse(user)})
}

// Login authenticates and issues a token. Suspended accounts get 403 with
// the stored reason and timestamp, never a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var suspended *service.SuspendedError
		switch {
		case errors.As(err, &suspended):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":     "Account suspended",
				"reason":      suspended.Reason,
				"suspendedAt": suspended.SuspendedAt,
			})
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrTokenGeneration):
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: MapUserToResponse(user)})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID.Hex(),
		Name:        user.Name,
		Email:       user.Email,
		Age:         user.Age,
		Weight:      user.Weight,
		Height:      user.Height,
		Goal:        user.Goal,
		IsAdmin:     user.IsAdmin,
		Suspended:   user.Suspended,
		CreatedAt:   user.CreatedAt,
		SuspendedAt: user.SuspendedAt,
	}
}

package api

import (
	"campfit/fitness-app/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler holds the admin service dependency.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// --- DTOs ---

type SuspendRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type UserDetailResponse struct {
	User           UserResponse      `json:"user"`
	TotalWorkouts  int64             `json:"totalWorkouts"`
	TotalCalories  int64             `json:"totalCalories"`
	TotalDuration  int64             `json:"totalDuration"`
	RecentWorkouts []WorkoutResponse `json:"recentWorkouts"`
}

// --- Handler Methods ---

// ListUsers returns every account.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetUser returns one account with workout totals and recent sessions.
func (h *AdminHandler) GetUser(c *gin.Context) {
	h.withUserID(c, func(id primitive.ObjectID) {
		detail, err := h.adminService.GetUserDetail(c.Request.Context(), id)
		if err != nil {
			h.abortAdminError(c, err)
			return
		}
		c.JSON(http.StatusOK, UserDetailResponse{
			User:           MapUserToResponse(&detail.User),
			TotalWorkouts:  detail.TotalWorkouts,
			TotalCalories:  detail.TotalCalories,
			TotalDuration:  detail.TotalDuration,
			RecentWorkouts: MapWorkoutsToResponse(detail.RecentWorkouts),
		})
	})
}

// DeleteUser removes an account and its workouts.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	h.withUserID(c, func(id primitive.ObjectID) {
		if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
			h.abortAdminError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	})
}

// GetStats returns platform-wide aggregates.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SuspendUser marks an account suspended with a reason.
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	var req SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.withUserID(c, func(id primitive.ObjectID) {
		user, err := h.adminService.SuspendUser(c.Request.Context(), id, req.Reason)
		if err != nil {
			h.abortAdminError(c, err)
			return
		}
		c.JSON(http.StatusOK, MapUserToResponse(user))
	})
}

// UnsuspendUser clears an account's suspension.
func (h *AdminHandler) UnsuspendUser(c *gin.Context) {
	h.withUserID(c, func(id primitive.ObjectID) {
		user, err := h.adminService.UnsuspendUser(c.Request.Context(), id)
		if err != nil {
			h.abortAdminError(c, err)
			return
		}
		c.JSON(http.StatusOK, MapUserToResponse(user))
	})
}

func (h *AdminHandler) withUserID(c *gin.Context, fn func(id primitive.ObjectID)) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}
	fn(id)
}

func (h *AdminHandler) abortAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrReasonRequired):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Admin operation failed")
	}
}

package api

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BootcampHandler holds the bootcamp service dependency.
type BootcampHandler struct {
	bootcampService service.BootcampService
}

// NewBootcampHandler creates a new BootcampHandler.
func NewBootcampHandler(bootcampService service.BootcampService) *BootcampHandler {
	return &BootcampHandler{bootcampService: bootcampService}
}

// --- DTOs ---

type CreateBootcampRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description" binding:"required"`
	Expectations    string    `json:"expectations" binding:"required"`
	Exercises       []string  `json:"exercises"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	EndTime         time.Time `json:"endTime" binding:"required"`
	Difficulty      string    `json:"difficulty"`
	MaxParticipants int       `json:"maxParticipants" binding:"omitempty,gte=0"`
}

type UpdateBootcampRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Expectations    *string    `json:"expectations"`
	Exercises       *[]string  `json:"exercises"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	Difficulty      *string    `json:"difficulty"`
	MaxParticipants *int       `json:"maxParticipants"`
}

type InviteRequest struct {
	UserIDs []string `json:"userIds" binding:"required,min=1"`
}

type ParticipantResponse struct {
	UserID     string    `json:"userId"`
	AcceptedAt time.Time `json:"acceptedAt"`
	Status     string    `json:"status"`
}

type BootcampResponse struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Expectations     string                `json:"expectations"`
	Exercises        []string              `json:"exercises,omitempty"`
	StartTime        time.Time             `json:"startTime"`
	EndTime          time.Time             `json:"endTime"`
	Difficulty       string                `json:"difficulty"`
	MaxParticipants  int                   `json:"maxParticipants"`
	CreatedBy        string                `json:"createdBy"`
	CreatorName      string                `json:"creatorName,omitempty"`
	Participants     []ParticipantResponse `json:"participants"`
	ParticipantCount int                   `json:"participantCount"`
	CreatedAt        time.Time             `json:"createdAt"`
}

type AcceptResponse struct {
	Bootcamp    BootcampResponse `json:"bootcamp"`
	Achievement WorkoutResponse  `json:"achievement"`
}

// MapBootcampToResponse converts a domain.Bootcamp to its DTO.
func MapBootcampToResponse(b *domain.Bootcamp) BootcampResponse {
	if b == nil {
		return BootcampResponse{}
	}
	participants := make([]ParticipantResponse, len(b.Participants))
	for i, p := range b.Participants {
		participants[i] = ParticipantResponse{
			UserID:     p.UserID.Hex(),
			AcceptedAt: p.AcceptedAt,
			Status:     string(p.Status),
		}
	}
	return BootcampResponse{
		ID:               b.ID.Hex(),
		Title:            b.Title,
		Description:      b.Description,
		Expectations:     b.Expectations,
		Exercises:        b.Exercises,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		Difficulty:       b.Difficulty,
		MaxParticipants:  b.MaxParticipants,
		CreatedBy:        b.CreatedBy.Hex(),
		Participants:     participants,
		ParticipantCount: len(b.Participants),
		CreatedAt:        b.CreatedAt,
	}
}

// --- Handler Methods ---

// List returns all bootcamps, startTime ascending, with creator names.
func (h *BootcampHandler) List(c *gin.Context) {
	bootcamps, err := h.bootcampService.ListBootcamps(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list bootcamps")
		return
	}

	responses := make([]BootcampResponse, len(bootcamps))
	for i := range bootcamps {
		resp := MapBootcampToResponse(&bootcamps[i].Bootcamp)
		resp.CreatorName = bootcamps[i].CreatorName
		responses[i] = resp
	}
	c.JSON(http.StatusOK, responses)
}

// GetActive returns the currently running bootcamp, or {} when none.
func (h *BootcampHandler) GetActive(c *gin.Context) {
	bootcamp, err := h.bootcampService.GetActive(c.Request.Context(), time.Now().UTC())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load active bootcamp")
		return
	}
	if bootcamp == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, MapBootcampToResponse(bootcamp))
}

// GetUpcoming returns the next scheduled bootcamp, or {} when none.
func (h *BootcampHandler) GetUpcoming(c *gin.Context) {
	bootcamp, err := h.bootcampService.GetUpcoming(c.Request.Context(), time.Now().UTC())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load upcoming bootcamp")
		return
	}
	if bootcamp == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, MapBootcampToResponse(bootcamp))
}

// GetStatus returns the derived lifecycle snapshot for one bootcamp.
func (h *BootcampHandler) GetStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid bootcamp ID")
		return
	}

	status, err := h.bootcampService.GetStatus(c.Request.Context(), id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to derive bootcamp status")
		}
		return
	}
	c.JSON(http.StatusOK, status)
}

// Create stores a new bootcamp. Admin only (enforced by route middleware).
func (h *BootcampHandler) Create(c *gin.Context) {
	var req CreateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	creatorID, err := getUserObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
		return
	}

	bootcamp, err := h.bootcampService.Create(c.Request.Context(), creatorID, service.CreateBootcampParams{
		Title:           req.Title,
		Description:     req.Description,
		Expectations:    req.Expectations,
		Exercises:       req.Exercises,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Difficulty:      req.Difficulty,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		if errors.Is(err, service.ErrBootcampValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create bootcamp")
		}
		return
	}

	c.JSON(http.StatusCreated, MapBootcampToResponse(bootcamp))
}

// Update merges the provided fields into a bootcamp, pre-start only.
func (h *BootcampHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid bootcamp ID")
		return
	}

	var req UpdateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	callerID, err := getUserObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
		return
	}

	bootcamp, err := h.bootcampService.Update(c.Request.Context(), callerID, isAdminFromContext(c), id, service.UpdateBootcampParams{
		Title:           req.Title,
		Description:     req.Description,
		Expectations:    req.Expectations,
		Exercises:       req.Exercises,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Difficulty:      req.Difficulty,
		MaxParticipants: req.MaxParticipants,
	})
	if err != nil {
		h.abortMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapBootcampToResponse(bootcamp))
}

// Delete removes a bootcamp, pre-start only.
func (h *BootcampHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid bootcamp ID")
		return
	}

	callerID, err := getUserObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
		return
	}

	if err := h.bootcampService.Delete(c.Request.Context(), callerID, isAdminFromContext(c), id); err != nil {
		h.abortMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bootcamp deleted"})
}

// Accept joins the caller to the bootcamp and returns the updated bootcamp
// together with the achievement workout.
func (h *BootcampHandler) Accept(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid bootcamp ID")
		return
	}

	userID, err := getUserObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
		return
	}

	bootcamp, achievement, err := h.bootcampService.Accept(c.Request.Context(), userID, id, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootcampNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAlreadyAccepted), errors.Is(err, service.ErrBootcampFull):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to accept bootcamp")
		}
		return
	}

	c.JSON(http.StatusOK, AcceptResponse{
		Bootcamp:    MapBootcampToResponse(bootcamp),
		Achievement: MapWorkoutToResponse(achievement),
	})
}

// Decline removes the caller's participation; succeeds even without one.
func (h *BootcampHandler) Decline(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid bootcamp ID")
		return
	}

	userID, err := getUserObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
		return
	}

	if err := h.bootcampService.Decline(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrBootcampNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to decline bootcamp")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Declined"})
}

// Invite emails invitations to the given users. Admin only.
func (h *BootcampHandler) Invite(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid bootcamp ID")
		return
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Unparseable IDs are dropped here the same way unresolvable ones are
	// dropped in the service.
	userIDs := make([]primitive.ObjectID, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		if oid, err := primitive.ObjectIDFromHex(raw); err == nil {
			userIDs = append(userIDs, oid)
		}
	}

	sent, err := h.bootcampService.Invite(c.Request.Context(), id, userIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootcampNotFound), errors.Is(err, service.ErrNoInvitees):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to send invitations")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"invited": sent})
}

func (h *BootcampHandler) abortMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBootcampNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBootcampAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrBootcampStarted), errors.Is(err, service.ErrBootcampValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to modify bootcamp")
	}
}

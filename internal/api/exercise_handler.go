package api

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/repository"
	"campfit/fitness-app/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise catalog service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// ExerciseResponse is the DTO for catalog entries.
type ExerciseResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	MuscleGroup  string    `json:"muscleGroup,omitempty"`
	Difficulty   string    `json:"difficulty,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MapExerciseToResponse converts a domain.Exercise to its DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:           ex.ID.Hex(),
		Name:         ex.Name,
		Category:     string(ex.Category),
		MuscleGroup:  ex.MuscleGroup,
		Difficulty:   string(ex.Difficulty),
		Instructions: ex.Instructions,
		CreatedAt:    ex.CreatedAt,
	}
}

// List returns catalog entries, optionally filtered by query parameters
// category, muscleGroup and difficulty.
func (h *ExerciseHandler) List(c *gin.Context) {
	filter := repository.ExerciseFilter{
		Category:    c.Query("category"),
		MuscleGroup: c.Query("muscleGroup"),
		Difficulty:  c.Query("difficulty"),
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}

	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	c.JSON(http.StatusOK, responses)
}

// Get returns a single catalog entry.
func (h *ExerciseHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load exercise")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

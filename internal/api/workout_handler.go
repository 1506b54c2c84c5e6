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

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type WorkoutExerciseRequest struct {
	ExerciseID string  `json:"exerciseId" binding:"required"`
	Sets       int     `json:"sets" binding:"omitempty,gte=0"`
	Reps       int     `json:"reps" binding:"omitempty,gte=0"`
	Weight     float64 `json:"weight" binding:"omitempty,gte=0"`
	Notes      string  `json:"notes"`
}

type WorkoutRequest struct {
	Name            string                   `json:"name" binding:"required"`
	Description     string                   `json:"description"`
	Notes           string                   `json:"notes"`
	Date            time.Time                `json:"date" binding:"required"`
	DurationMinutes int                      `json:"durationMinutes" binding:"required,gt=0"`
	Exercises       []WorkoutExerciseRequest `json:"exercises"`
	CaloriesBurned  int                      `json:"caloriesBurned" binding:"omitempty,gte=0"`
}

type WorkoutExerciseResponse struct {
	ExerciseID string  `json:"exerciseId"`
	Sets       int     `json:"sets,omitempty"`
	Reps       int     `json:"reps,omitempty"`
	Weight     float64 `json:"weight,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

type WorkoutResponse struct {
	ID              string                    `json:"id"`
	UserID          string                    `json:"userId"`
	Name            string                    `json:"name"`
	Description     string                    `json:"description,omitempty"`
	Notes           string                    `json:"notes,omitempty"`
	Date            time.Time                 `json:"date"`
	DurationMinutes int                       `json:"durationMinutes"`
	Exercises       []WorkoutExerciseResponse `json:"exercises,omitempty"`
	CaloriesBurned  int                       `json:"caloriesBurned"`
	CreatedAt       time.Time                 `json:"createdAt"`
}

// MapWorkoutToResponse converts a domain.Workout to its DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	exercises := make([]WorkoutExerciseResponse, len(w.Exercises))
	for i, e := range w.Exercises {
		exercises[i] = WorkoutExerciseResponse{
			ExerciseID: e.ExerciseID.Hex(),
			Sets:       e.Sets,
			Reps:       e.Reps,
			Weight:     e.Weight,
			Notes:      e.Notes,
		}
	}
	return WorkoutResponse{
		ID:              w.ID.Hex(),
		UserID:          w.UserID.Hex(),
		Name:            w.Name,
		Description:     w.Description,
		Notes:           w.Notes,
		Date:            w.Date,
		DurationMinutes: w.DurationMinutes,
		Exercises:       exercises,
		CaloriesBurned:  w.CaloriesBurned,
		CreatedAt:       w.CreatedAt,
	}
}

// MapWorkoutsToResponse converts a slice of workouts.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = MapWorkoutToResponse(&workouts[i])
	}
	return responses
}

func (req *WorkoutRequest) toParams() (service.WorkoutParams, error) {
	exercises := make([]domain.WorkoutExercise, len(req.Exercises))
	for i, e := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
		if err != nil {
			return service.WorkoutParams{}, errors.New("invalid exercise ID: " + e.ExerciseID)
		}
		exercises[i] = domain.WorkoutExercise{
			ExerciseID: exerciseID,
			Sets:       e.Sets,
			Reps:       e.Reps,
			Weight:     e.Weight,
			Notes:      e.Notes,
		}
	}
	return service.WorkoutParams{
		Name:            req.Name,
		Description:     req.Description,
		Notes:           req.Notes,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Exercises:       exercises,
		CaloriesBurned:  req.CaloriesBurned,
	}, nil
}

// --- Handler Methods ---

// Create logs a new workout for the caller.
func (h *WorkoutHandler) Create(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
		return
	}

	params, err := req.toParams()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, params)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create workout")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// List returns the caller's workouts, most recent date first.
func (h *WorkoutHandler) List(c *gin.Context) {
	userID, err := getUserObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
		return
	}

	workouts, err := h.workoutService.GetUserWorkouts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workouts")
		return
	}

	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// Get returns a single owned workout.
func (h *WorkoutHandler) Get(c *gin.Context) {
	h.withOwned(c, func(callerID, id primitive.ObjectID) {
		workout, err := h.workoutService.GetWorkout(c.Request.Context(), callerID, id)
		if err != nil {
			h.abortWorkoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
	})
}

// Update rewrites a single owned workout.
func (h *WorkoutHandler) Update(c *gin.Context) {
	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	h.withOwned(c, func(callerID, id primitive.ObjectID) {
		workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), callerID, id, params)
		if err != nil {
			h.abortWorkoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
	})
}

// Delete removes a single owned workout.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	h.withOwned(c, func(callerID, id primitive.ObjectID) {
		if err := h.workoutService.DeleteWorkout(c.Request.Context(), callerID, id); err != nil {
			h.abortWorkoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Workout deleted"})
	})
}

// withOwned parses the path ID and caller identity shared by the
// single-item handlers.
func (h *WorkoutHandler) withOwned(c *gin.Context, fn func(callerID, id primitive.ObjectID)) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID")
		return
	}
	callerID, err := getUserObjectID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to resolve identity from token")
		return
	}
	fn(callerID, id)
}

func (h *WorkoutHandler) abortWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrWorkoutValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Workout operation failed")
	}
}

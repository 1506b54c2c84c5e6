package api

import (
	"campfit/fitness-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the HTTP surface. Public reads (bootcamp listings and
// status derivation) sit outside the auth middleware; everything else runs
// behind it, with admin routes additionally behind the store-backed admin
// gate.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	bootcampService service.BootcampService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
	adminService service.AdminService,
) {
	authHandler := NewAuthHandler(authService)
	bootcampHandler := NewBootcampHandler(bootcampService)
	workoutHandler := NewWorkoutHandler(workoutService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	adminHandler := NewAdminHandler(adminService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminMiddleware := AdminMiddleware(authService)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Public bootcamp reads.
		bootcamps := apiGroup.Group("/bootcamps")
		{
			bootcamps.GET("", bootcampHandler.List)
			bootcamps.GET("/active", bootcampHandler.GetActive)
			bootcamps.GET("/upcoming", bootcampHandler.GetUpcoming)
			bootcamps.GET("/status/:id", bootcampHandler.GetStatus)

			// Authenticated bootcamp operations.
			bootcamps.POST("", authMiddleware, adminMiddleware, bootcampHandler.Create)
			bootcamps.PUT("/:id", authMiddleware, bootcampHandler.Update)
			bootcamps.DELETE("/:id", authMiddleware, bootcampHandler.Delete)
			bootcamps.POST("/:id/accept", authMiddleware, bootcampHandler.Accept)
			bootcamps.POST("/:id/decline", authMiddleware, bootcampHandler.Decline)
			bootcamps.POST("/:id/invite", authMiddleware, adminMiddleware, bootcampHandler.Invite)
		}

		protected := apiGroup.Group("")
		protected.Use(authMiddleware)
		{
			workouts := protected.Group("/workouts")
			{
				workouts.GET("", workoutHandler.List)
				workouts.POST("", workoutHandler.Create)
				workouts.GET("/:id", workoutHandler.Get)
				workouts.PUT("/:id", workoutHandler.Update)
				workouts.DELETE("/:id", workoutHandler.Delete)
			}

			exercises := protected.Group("/exercises")
			{
				exercises.GET("", exerciseHandler.List)
				exercises.GET("/:id", exerciseHandler.Get)
			}

			admin := protected.Group("/admin")
			admin.Use(adminMiddleware)
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/users/:id", adminHandler.GetUser)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)
				admin.PUT("/users/:id/suspend", adminHandler.SuspendUser)
				admin.PUT("/users/:id/unsuspend", adminHandler.UnsuspendUser)
				admin.GET("/stats", adminHandler.GetStats)
			}
		}
	}
}

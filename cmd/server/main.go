package main

import (
	"campfit/fitness-app/internal/api"
	"campfit/fitness-app/internal/config"
	"campfit/fitness-app/internal/notification"
	"campfit/fitness-app/internal/repository/mongo"
	"campfit/fitness-app/internal/service"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting CampFit server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongo.EnsureBootcampIndexes(ctx, appDB.Collection("bootcamps"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Notifier ---
	var notifier notification.Notifier
	if cfg.Mail.Enabled {
		notifier, err = notification.NewSESNotifier(cfg.Mail)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize SES notifier: %v", err)
		}
	} else {
		log.Println("Mail disabled; using log-only notifier.")
		notifier = notification.NewLogNotifier()
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	bootcampRepo := mongo.NewMongoBootcampRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, notifier, cfg.JWT.Secret, cfg.JWT.Expiration)
	bootcampService := service.NewBootcampService(bootcampRepo, userRepo, workoutRepo, notifier)
	workoutService := service.NewWorkoutService(workoutRepo)
	exerciseService := service.NewExerciseService(exerciseRepo)
	adminService := service.NewAdminService(userRepo, workoutRepo, notifier)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	api.SetupRoutes(router, cfg.JWT.Secret, authService, bootcampService, workoutService, exerciseService, adminService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

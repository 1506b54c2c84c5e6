// Seeds the exercise catalog and bootstraps the initial admin account.
// Safe to re-run: existing catalog entries and accounts are left alone.
package main

import (
	"campfit/fitness-app/internal/config"
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/repository"
	mongorepo "campfit/fitness-app/internal/repository/mongo"
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var catalog = []domain.Exercise{
	{Name: "Running", Category: domain.CategoryCardio, MuscleGroup: "Legs", Difficulty: domain.DifficultyBeginner,
		Instructions: "Maintain a steady pace you can hold a conversation at."},
	{Name: "Cycling", Category: domain.CategoryCardio, MuscleGroup: "Legs", Difficulty: domain.DifficultyBeginner,
		Instructions: "Keep a cadence around 80-100 rpm."},
	{Name: "Jump Rope", Category: domain.CategoryCardio, MuscleGroup: "Full Body", Difficulty: domain.DifficultyIntermediate,
		Instructions: "Land softly on the balls of your feet, elbows close to the body."},
	{Name: "Push-Up", Category: domain.CategoryStrength, MuscleGroup: "Chest", Difficulty: domain.DifficultyBeginner,
		Instructions: "Keep a straight line from head to heels, lower until elbows reach 90 degrees."},
	{Name: "Pull-Up", Category: domain.CategoryStrength, MuscleGroup: "Back", Difficulty: domain.DifficultyAdvanced,
		Instructions: "Full hang at the bottom, chin over the bar at the top."},
	{Name: "Squat", Category: domain.CategoryStrength, MuscleGroup: "Legs", Difficulty: domain.DifficultyBeginner,
		Instructions: "Hips back and down, knees tracking over the toes."},
	{Name: "Deadlift", Category: domain.CategoryStrength, MuscleGroup: "Back", Difficulty: domain.DifficultyAdvanced,
		Instructions: "Flat back, bar close to the shins, drive through the heels."},
	{Name: "Bench Press", Category: domain.CategoryStrength, MuscleGroup: "Chest", Difficulty: domain.DifficultyIntermediate,
		Instructions: "Shoulder blades pinned, bar touches mid-chest, press to lockout."},
	{Name: "Plank", Category: domain.CategoryStrength, MuscleGroup: "Core", Difficulty: domain.DifficultyBeginner,
		Instructions: "Forearms down, body in one line, do not let the hips sag."},
	{Name: "Hamstring Stretch", Category: domain.CategoryFlexibility, MuscleGroup: "Legs", Difficulty: domain.DifficultyBeginner,
		Instructions: "Hinge at the hips with a straight back, hold 30 seconds per side."},
	{Name: "Downward Dog", Category: domain.CategoryFlexibility, MuscleGroup: "Full Body", Difficulty: domain.DifficultyBeginner,
		Instructions: "Hands shoulder-width, press the floor away, heels toward the ground."},
	{Name: "Single-Leg Stand", Category: domain.CategoryBalance, MuscleGroup: "Legs", Difficulty: domain.DifficultyBeginner,
		Instructions: "Fix your gaze on a point and hold 30 seconds per leg."},
	{Name: "Bosu Squat", Category: domain.CategoryBalance, MuscleGroup: "Legs", Difficulty: domain.DifficultyIntermediate,
		Instructions: "Center your stance on the dome before lowering into the squat."},
}

func main() {
	log.Println("Starting seed...")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		_ = mongorepo.DisconnectDB(client)
	}()
	db := client.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	mongorepo.EnsureUserIndexes(ctx, db.Collection("users"))
	mongorepo.EnsureExerciseIndexes(ctx, db.Collection("exercises"))

	exerciseRepo := mongorepo.NewMongoExerciseRepository(db)
	userRepo := mongorepo.NewMongoUserRepository(db)

	seedExercises(ctx, exerciseRepo)
	seedAdmin(ctx, userRepo, cfg.Seed)

	log.Println("Seed completed.")
}

func seedExercises(ctx context.Context, repo repository.ExerciseRepository) {
	created, skipped := 0, 0
	for i := range catalog {
		exercise := catalog[i]
		if _, err := repo.GetByName(ctx, exercise.Name); err == nil {
			skipped++
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			log.Fatalf("Failed to check exercise %q: %v", exercise.Name, err)
		}
		if _, err := repo.Create(ctx, &exercise); err != nil {
			log.Fatalf("Failed to seed exercise %q: %v", exercise.Name, err)
		}
		created++
	}
	log.Printf("Exercises: %d created, %d already present", created, skipped)
}

// seedAdmin creates the bootstrap admin account. Admin rights live on the
// user document; this is the only path that grants them outside an
// existing admin.
func seedAdmin(ctx context.Context, repo repository.UserRepository, seed config.SeedConfig) {
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		log.Println("No seed admin configured, skipping admin bootstrap.")
		return
	}

	if _, err := repo.GetByEmail(ctx, seed.AdminEmail); err == nil {
		log.Printf("Admin account %s already exists.", seed.AdminEmail)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("Failed to check admin account: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &domain.User{
		Name:         seed.AdminName,
		Email:        seed.AdminEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if _, err := repo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}
	log.Printf("Admin account %s created.", seed.AdminEmail)
}

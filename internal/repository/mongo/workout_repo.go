package mongo

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Name == "" {
		return primitive.NilObjectID, errors.New("workout requires userId and name")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetByUserID retrieves all workouts owned by a user, most recent date first.
// Listing is scoped by the query filter itself, not a post-hoc check.
func (r *mongoWorkoutRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return r.findWorkouts(ctx, bson.M{"userId": userID}, findOptions)
}

// GetRecentByUserID retrieves the user's most recently logged workouts.
func (r *mongoWorkoutRepository) GetRecentByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.findWorkouts(ctx, bson.M{"userId": userID}, findOptions)
}

func (r *mongoWorkoutRepository) findWorkouts(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Workout, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

// Update rewrites the mutable fields of a workout. Ownership (userId) never
// changes through this path.
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID {
		return errors.New("workout ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"name":            workout.Name,
			"description":     workout.Description,
			"notes":           workout.Notes,
			"date":            workout.Date,
			"durationMinutes": workout.DurationMinutes,
			"exercises":       workout.Exercises,
			"caloriesBurned":  workout.CaloriesBurned,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": workout.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a workout. The filter includes the owner so a foreign
// workout reads as not found.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every workout owned by the user. Used by the admin
// cascade when an account is deleted; zero deletions is fine.
func (r *mongoWorkoutRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// TotalsAll aggregates counts, calories and minutes across every workout.
func (r *mongoWorkoutRepository) TotalsAll(ctx context.Context) (repository.WorkoutTotals, error) {
	return r.totals(ctx, bson.M{})
}

// TotalsByUserID aggregates one user's workouts the same way.
func (r *mongoWorkoutRepository) TotalsByUserID(ctx context.Context, userID primitive.ObjectID) (repository.WorkoutTotals, error) {
	return r.totals(ctx, bson.M{"userId": userID})
}

func (r *mongoWorkoutRepository) totals(ctx context.Context, match bson.M) (repository.WorkoutTotals, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"workouts": bson.M{"$sum": 1},
			"calories": bson.M{"$sum": "$caloriesBurned"},
			"duration": bson.M{"$sum": "$durationMinutes"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return repository.WorkoutTotals{}, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Workouts int64 `bson:"workouts"`
		Calories int64 `bson:"calories"`
		Duration int64 `bson:"duration"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return repository.WorkoutTotals{}, err
	}
	if len(results) == 0 {
		return repository.WorkoutTotals{}, nil
	}
	return repository.WorkoutTotals{
		Workouts: results[0].Workouts,
		Calories: results[0].Calories,
		Duration: results[0].Duration,
	}, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

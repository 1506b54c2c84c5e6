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

const bootcampCollectionName = "bootcamps"

// mongoBootcampRepository implements repository.BootcampRepository.
type mongoBootcampRepository struct {
	collection *mongo.Collection
}

// NewMongoBootcampRepository creates a new bootcamp repository.
func NewMongoBootcampRepository(db *mongo.Database) repository.BootcampRepository {
	return &mongoBootcampRepository{
		collection: db.Collection(bootcampCollectionName),
	}
}

// Create inserts a new bootcamp.
func (r *mongoBootcampRepository) Create(ctx context.Context, bootcamp *domain.Bootcamp) (primitive.ObjectID, error) {
	if bootcamp.Title == "" || bootcamp.CreatedBy == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("bootcamp requires title and createdBy")
	}
	bootcamp.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	bootcamp.CreatedAt = now
	bootcamp.UpdatedAt = now
	if bootcamp.Participants == nil {
		bootcamp.Participants = []domain.Participant{}
	}

	result, err := r.collection.InsertOne(ctx, bootcamp)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted bootcamp ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single bootcamp.
func (r *mongoBootcampRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Bootcamp, error) {
	var bootcamp domain.Bootcamp
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bootcamp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &bootcamp, nil
}

// GetAll retrieves every bootcamp, startTime ascending.
func (r *mongoBootcampRepository) GetAll(ctx context.Context) ([]domain.Bootcamp, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bootcamps []domain.Bootcamp
	if err = cursor.All(ctx, &bootcamps); err != nil {
		return nil, err
	}
	if bootcamps == nil {
		bootcamps = []domain.Bootcamp{}
	}
	return bootcamps, nil
}

// GetActiveAt returns the bootcamp whose window contains now. When windows
// overlap the most recently started one wins.
func (r *mongoBootcampRepository) GetActiveAt(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
	filter := bson.M{
		"startTime": bson.M{"$lte": now},
		"endTime":   bson.M{"$gte": now},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "startTime", Value: -1}})

	var bootcamp domain.Bootcamp
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&bootcamp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &bootcamp, nil
}

// GetUpcomingAt returns the next bootcamp starting strictly after now.
func (r *mongoBootcampRepository) GetUpcomingAt(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
	filter := bson.M{"startTime": bson.M{"$gt": now}}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "startTime", Value: 1}})

	var bootcamp domain.Bootcamp
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&bootcamp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &bootcamp, nil
}

// Update rewrites the editable fields. The participants array is owned by
// AddParticipant/RemoveParticipant and deliberately left out of the $set.
func (r *mongoBootcampRepository) Update(ctx context.Context, bootcamp *domain.Bootcamp) error {
	if bootcamp.ID == primitive.NilObjectID {
		return errors.New("bootcamp ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"title":           bootcamp.Title,
			"description":     bootcamp.Description,
			"expectations":    bootcamp.Expectations,
			"exercises":       bootcamp.Exercises,
			"startTime":       bootcamp.StartTime,
			"endTime":         bootcamp.EndTime,
			"difficulty":      bootcamp.Difficulty,
			"maxParticipants": bootcamp.MaxParticipants,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": bootcamp.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a bootcamp. Achievement workouts already created from prior
// acceptances are intentionally left in place.
func (r *mongoBootcampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddParticipant appends the entry with a single conditional update so that
// duplicate-membership and capacity enforcement are atomic at the store:
// the $push only matches documents where the user is absent and either no
// capacity is set or the array is still under it. Two concurrent accepts at
// the capacity boundary therefore cannot both commit.
func (r *mongoBootcampRepository) AddParticipant(ctx context.Context, id primitive.ObjectID, p domain.Participant) error {
	filter := bson.M{
		"_id":                 id,
		"participants.userId": bson.M{"$ne": p.UserID},
		"$expr": bson.M{"$or": bson.A{
			bson.M{"$lte": bson.A{"$maxParticipants", 0}},
			bson.M{"$lt": bson.A{
				bson.M{"$size": bson.M{"$ifNull": bson.A{"$participants", bson.A{}}}},
				"$maxParticipants",
			}},
		}},
	}
	update := bson.M{
		"$push": bson.M{"participants": p},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: re-read once only to classify the refusal.
	bootcamp, err := r.GetByID(ctx, id)
	if err != nil {
		return err // repository.ErrNotFound when the bootcamp is gone
	}
	if bootcamp.HasParticipant(p.UserID) {
		return repository.ErrDuplicateParticipant
	}
	if bootcamp.IsFull() {
		return repository.ErrCapacityReached
	}
	// The document changed between the update and the re-read; surface a
	// generic failure so the caller can retry.
	return repository.ErrUpdateFailed
}

// RemoveParticipant pulls any entry for the user. A missing entry is a
// no-op; only a missing bootcamp is an error.
func (r *mongoBootcampRepository) RemoveParticipant(ctx context.Context, id, userID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"participants": bson.M{"userId": userID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureBootcampIndexes creates necessary indexes. Call during startup.
func EnsureBootcampIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Window queries for active/upcoming derivation.
			Keys:    bson.D{{Key: "startTime", Value: 1}, {Key: "endTime", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

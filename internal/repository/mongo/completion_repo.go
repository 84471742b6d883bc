package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const completionCollectionName = "completions"

// mongoCompletionRepository implements repository.CompletionRepository
type mongoCompletionRepository struct {
	collection *mongo.Collection
}

// NewMongoCompletionRepository creates a new WorkoutCompletion repository.
func NewMongoCompletionRepository(db *mongo.Database) repository.CompletionRepository {
	return &mongoCompletionRepository{
		collection: db.Collection(completionCollectionName),
	}
}

// Create inserts a completion record. CompletedAt defaults to now.
func (r *mongoCompletionRepository) Create(ctx context.Context, completion *domain.WorkoutCompletion) (primitive.ObjectID, error) {
	if completion.WorkoutID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("completion requires workoutId")
	}
	completion.ID = primitive.NewObjectID()
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, completion)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted completion ID")
	}
	return insertedID, nil
}

// GetByWorkoutID retrieves all completions of a workout, most recent first.
func (r *mongoCompletionRepository) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutCompletion, error) {
	filter := bson.M{"workoutId": workoutID}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	completions := []domain.WorkoutCompletion{}
	if err = cursor.All(ctx, &completions); err != nil {
		return nil, err
	}
	return completions, nil
}

// CountByWorkoutID returns how many times a workout was completed.
func (r *mongoCompletionRepository) CountByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"workoutId": workoutID})
}

// LastCompleted returns the most recent completion time, or nil if the
// workout was never completed.
func (r *mongoCompletionRepository) LastCompleted(ctx context.Context, workoutID primitive.ObjectID) (*time.Time, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	var completion domain.WorkoutCompletion
	err := r.collection.FindOne(ctx, bson.M{"workoutId": workoutID}, findOptions).Decode(&completion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &completion.CompletedAt, nil
}

// DeleteByWorkoutID removes every completion of a workout (cascade path).
func (r *mongoCompletionRepository) DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error {
	if workoutID == primitive.NilObjectID {
		return errors.New("workout ID is required for deletion")
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID})
	return err
}

// EnsureCompletionIndexes creates necessary indexes. Call during startup.
func EnsureCompletionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}

package repository

import (
	"context"
	"time"

	"alcyxob/gym-buddy/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("conflict")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutFilter narrows and pages a workout listing. Zero values mean
// "no filter"; Favorite is a tri-state via pointer.
type WorkoutFilter struct {
	Category string
	Search   string
	Favorite *bool
	Page     int
	Limit    int
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	List(ctx context.Context, filter WorkoutFilter) ([]domain.Workout, int64, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
// GetByWorkoutID returns exercises sorted ascending by order; ties fall back
// to creation sequence so display is deterministic.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, workoutID, id primitive.ObjectID) error
	DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error
}

// CompletionRepository defines the interface for interacting with workout
// completion records. Completions are append-only.
type CompletionRepository interface {
	Create(ctx context.Context, completion *domain.WorkoutCompletion) (primitive.ObjectID, error)
	GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutCompletion, error)
	CountByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (int64, error)
	LastCompleted(ctx context.Context, workoutID primitive.ObjectID) (*time.Time, error)
	DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error
}

// TxRunner runs fn inside a single atomic transaction. The context passed to
// fn is the transaction handle: every repository call made with it is part of
// the transaction, and an error from fn rolls all of them back.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

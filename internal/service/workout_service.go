package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"
	"alcyxob/gym-buddy/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// Pagination bounds for the list endpoint.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// WorkoutView is the read model returned after every write: the workout, its
// exercises sorted ascending by order, and completion aggregates.
type WorkoutView struct {
	Workout         domain.Workout
	Exercises       []domain.Exercise
	CompletionCount int64
	LastCompleted   *time.Time
}

// WorkoutDetail is the single-workout read model: a WorkoutView plus the full
// completion history, most recent first.
type WorkoutDetail struct {
	WorkoutView
	Completions []domain.WorkoutCompletion
}

// WorkoutPage is one page of a workout listing.
type WorkoutPage struct {
	Workouts []domain.Workout
	Total    int64
	Page     int
	Limit    int
}

// WorkoutService owns the workout lifecycle: CRUD, exercise reconciliation,
// favorites and completions.
type WorkoutService interface {
	List(ctx context.Context, filter repository.WorkoutFilter) (*WorkoutPage, error)
	Create(ctx context.Context, payload validation.WorkoutPayload) (*WorkoutView, error)
	Get(ctx context.Context, id primitive.ObjectID) (*WorkoutDetail, error)
	Update(ctx context.Context, id primitive.ObjectID, payload validation.WorkoutPayload) (*WorkoutView, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ToggleFavorite(ctx context.Context, id primitive.ObjectID) (*WorkoutView, error)
	Complete(ctx context.Context, id primitive.ObjectID, payload validation.CompletionPayload) (*domain.WorkoutCompletion, error)
}

type workoutService struct {
	workouts    repository.WorkoutRepository
	exercises   repository.ExerciseRepository
	completions repository.CompletionRepository
	tx          repository.TxRunner
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workouts repository.WorkoutRepository,
	exercises repository.ExerciseRepository,
	completions repository.CompletionRepository,
	tx repository.TxRunner,
) WorkoutService {
	return &workoutService{
		workouts:    workouts,
		exercises:   exercises,
		completions: completions,
		tx:          tx,
	}
}

func (s *workoutService) List(ctx context.Context, filter repository.WorkoutFilter) (*WorkoutPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageLimit
	}
	if filter.Limit > MaxPageLimit {
		filter.Limit = MaxPageLimit
	}

	workouts, total, err := s.workouts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &WorkoutPage{
		Workouts: workouts,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	}, nil
}

func (s *workoutService) Create(ctx context.Context, payload validation.WorkoutPayload) (*WorkoutView, error) {
	req, err := validation.ParseCreateWorkout(payload)
	if err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		workoutID, err := s.workouts.Create(txCtx, workout)
		if err != nil {
			return err
		}
		for _, ec := range req.Exercises {
			exercise := &domain.Exercise{
				WorkoutID: workoutID,
				Name:      ec.Name,
				Reps:      ec.Reps,
				Sets:      ec.Sets,
				Duration:  ec.Duration,
				Notes:     ec.Notes,
				Order:     ec.Order,
			}
			if _, err := s.exercises.Create(txCtx, exercise); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.assembleView(ctx, workout.ID)
}

func (s *workoutService) Get(ctx context.Context, id primitive.ObjectID) (*WorkoutDetail, error) {
	view, err := s.assembleView(ctx, id)
	if err != nil {
		return nil, err
	}
	completions, err := s.completions.GetByWorkoutID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WorkoutDetail{WorkoutView: *view, Completions: completions}, nil
}

func (s *workoutService) Update(ctx context.Context, id primitive.ObjectID, payload validation.WorkoutPayload) (*WorkoutView, error) {
	// Existence is checked before validation so a missing workout yields 404
	// even for a malformed payload.
	workout, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}

	req, err := validation.ParseUpdateWorkout(payload)
	if err != nil {
		return nil, err
	}

	existing, err := s.exercises.GetByWorkoutID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if req.HasScalarChanges() {
			applyWorkoutChanges(workout, req)
			if err := s.workouts.Update(txCtx, workout); err != nil {
				return mapNotFound(err, ErrWorkoutNotFound)
			}
		}
		if req.HasExercises {
			if err := s.reconcileExercises(txCtx, id, existing, req.Exercises); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.assembleView(ctx, id)
}

func (s *workoutService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.workouts.GetByID(ctx, id); err != nil {
		return mapNotFound(err, ErrWorkoutNotFound)
	}
	// Cascade: exercises and completions go with the workout.
	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.exercises.DeleteByWorkoutID(txCtx, id); err != nil {
			return err
		}
		if err := s.completions.DeleteByWorkoutID(txCtx, id); err != nil {
			return err
		}
		return s.workouts.Delete(txCtx, id)
	})
}

func (s *workoutService) ToggleFavorite(ctx context.Context, id primitive.ObjectID) (*WorkoutView, error) {
	workout, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	workout.IsFavorite = !workout.IsFavorite
	if err := s.workouts.Update(ctx, workout); err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	return s.assembleView(ctx, id)
}

func (s *workoutService) Complete(ctx context.Context, id primitive.ObjectID, payload validation.CompletionPayload) (*domain.WorkoutCompletion, error) {
	if _, err := s.workouts.GetByID(ctx, id); err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}

	req, err := validation.ParseCompletion(payload)
	if err != nil {
		return nil, err
	}

	completion := &domain.WorkoutCompletion{
		WorkoutID: id,
		Notes:     req.Notes,
		Duration:  req.Duration,
	}
	if _, err := s.completions.Create(ctx, completion); err != nil {
		return nil, err
	}
	return completion, nil
}

// assembleView reloads a workout with its ordered exercises and completion
// aggregates. Every write path returns its result through here.
func (s *workoutService) assembleView(ctx context.Context, id primitive.ObjectID) (*WorkoutView, error) {
	workout, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrWorkoutNotFound)
	}
	exercises, err := s.exercises.GetByWorkoutID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.completions.CountByWorkoutID(ctx, id)
	if err != nil {
		return nil, err
	}
	last, err := s.completions.LastCompleted(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WorkoutView{
		Workout:         *workout,
		Exercises:       exercises,
		CompletionCount: count,
		LastCompleted:   last,
	}, nil
}

func applyWorkoutChanges(workout *domain.Workout, req *validation.WorkoutUpdate) {
	if req.Name != nil {
		workout.Name = *req.Name
	}
	if req.Description != nil {
		workout.Description = *req.Description
	}
	if req.Category != nil {
		workout.Category = *req.Category
	}
	if req.IsFavorite != nil {
		workout.IsFavorite = *req.IsFavorite
	}
}

func mapNotFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}

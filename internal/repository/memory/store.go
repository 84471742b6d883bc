// Package memory provides an in-memory implementation of the repository
// interfaces with snapshot-based transactions. It mirrors the behavior of
// the mongo implementation (sorting, cascades, sentinel errors) and exists
// so the service layer, reconciliation engine included, can be unit tested
// without a live database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds all aggregates behind one lock. Repositories are views onto
// the same store so transactions can snapshot everything at once.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	workouts    map[primitive.ObjectID]domain.Workout
	exercises   map[primitive.ObjectID]domain.Exercise
	completions map[primitive.ObjectID]domain.WorkoutCompletion

	// Insertion sequence, used to break order ties deterministically the way
	// ascending ObjectIDs do against real mongo.
	seq     map[primitive.ObjectID]int64
	nextSeq int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		workouts:    make(map[primitive.ObjectID]domain.Workout),
		exercises:   make(map[primitive.ObjectID]domain.Exercise),
		completions: make(map[primitive.ObjectID]domain.WorkoutCompletion),
		seq:         make(map[primitive.ObjectID]int64),
	}
}

// Workouts returns the workout repository view of the store.
func (s *Store) Workouts() repository.WorkoutRepository { return &workoutRepo{s} }

// Exercises returns the exercise repository view of the store.
func (s *Store) Exercises() repository.ExerciseRepository { return &exerciseRepo{s} }

// Completions returns the completion repository view of the store.
func (s *Store) Completions() repository.CompletionRepository { return &completionRepo{s} }

// WithinTx implements repository.TxRunner by snapshotting the whole store
// and restoring the snapshot if fn fails. Transactions are serialized.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	workouts    map[primitive.ObjectID]domain.Workout
	exercises   map[primitive.ObjectID]domain.Exercise
	completions map[primitive.ObjectID]domain.WorkoutCompletion
	seq         map[primitive.ObjectID]int64
	nextSeq     int64
}

func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeSnapshot{
		workouts:    copyMap(s.workouts),
		exercises:   copyMap(s.exercises),
		completions: copyMap(s.completions),
		seq:         copyMap(s.seq),
		nextSeq:     s.nextSeq,
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = snap.workouts
	s.exercises = snap.exercises
	s.completions = snap.completions
	s.seq = snap.seq
	s.nextSeq = snap.nextSeq
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) nextSequence(id primitive.ObjectID) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

// --- workouts ---

type workoutRepo struct{ s *Store }

func (r *workoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	r.s.workouts[workout.ID] = *workout
	r.s.nextSequence(workout.ID)
	return workout.ID, nil
}

func (r *workoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	workout, ok := r.s.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &workout, nil
}

func (r *workoutRepo) List(ctx context.Context, filter repository.WorkoutFilter) ([]domain.Workout, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []domain.Workout{}
	for _, w := range r.s.workouts {
		if filter.Category != "" && w.Category != filter.Category {
			continue
		}
		if filter.Favorite != nil && w.IsFavorite != *filter.Favorite {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(w.Name), q) &&
				!strings.Contains(strings.ToLower(w.Description), q) {
				continue
			}
		}
		matched = append(matched, w)
	}

	// Newest first, like the mongo createdAt sort.
	sort.Slice(matched, func(i, j int) bool {
		return r.s.seq[matched[i].ID] > r.s.seq[matched[j].ID]
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *workoutRepo) Update(ctx context.Context, workout *domain.Workout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	workout.UpdatedAt = time.Now().UTC()
	r.s.workouts[workout.ID] = *workout
	return nil
}

func (r *workoutRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.workouts, id)
	return nil
}

// --- exercises ---

type exerciseRepo struct{ s *Store }

func (r *exerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.s.exercises[exercise.ID] = *exercise
	r.s.nextSequence(exercise.ID)
	return exercise.ID, nil
}

func (r *exerciseRepo) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	exercises := []domain.Exercise{}
	for _, ex := range r.s.exercises {
		if ex.WorkoutID == workoutID {
			exercises = append(exercises, ex)
		}
	}
	// Ascending by order; ties fall back to creation sequence.
	sort.Slice(exercises, func(i, j int) bool {
		if exercises[i].Order != exercises[j].Order {
			return exercises[i].Order < exercises[j].Order
		}
		return r.s.seq[exercises[i].ID] < r.s.seq[exercises[j].ID]
	})
	return exercises, nil
}

func (r *exerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.exercises[exercise.ID]
	if !ok || current.WorkoutID != exercise.WorkoutID {
		return repository.ErrNotFound
	}
	exercise.UpdatedAt = time.Now().UTC()
	r.s.exercises[exercise.ID] = *exercise
	return nil
}

func (r *exerciseRepo) Delete(ctx context.Context, workoutID, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.exercises[id]
	if !ok || current.WorkoutID != workoutID {
		return repository.ErrNotFound
	}
	delete(r.s.exercises, id)
	return nil
}

func (r *exerciseRepo) DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, ex := range r.s.exercises {
		if ex.WorkoutID == workoutID {
			delete(r.s.exercises, id)
		}
	}
	return nil
}

// --- completions ---

type completionRepo struct{ s *Store }

func (r *completionRepo) Create(ctx context.Context, completion *domain.WorkoutCompletion) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	completion.ID = primitive.NewObjectID()
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now().UTC()
	}
	r.s.completions[completion.ID] = *completion
	r.s.nextSequence(completion.ID)
	return completion.ID, nil
}

func (r *completionRepo) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.WorkoutCompletion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	completions := []domain.WorkoutCompletion{}
	for _, c := range r.s.completions {
		if c.WorkoutID == workoutID {
			completions = append(completions, c)
		}
	}
	sort.Slice(completions, func(i, j int) bool {
		if !completions[i].CompletedAt.Equal(completions[j].CompletedAt) {
			return completions[i].CompletedAt.After(completions[j].CompletedAt)
		}
		return r.s.seq[completions[i].ID] > r.s.seq[completions[j].ID]
	})
	return completions, nil
}

func (r *completionRepo) CountByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, c := range r.s.completions {
		if c.WorkoutID == workoutID {
			count++
		}
	}
	return count, nil
}

func (r *completionRepo) LastCompleted(ctx context.Context, workoutID primitive.ObjectID) (*time.Time, error) {
	completions, err := r.GetByWorkoutID(ctx, workoutID)
	if err != nil || len(completions) == 0 {
		return nil, err
	}
	last := completions[0].CompletedAt
	return &last, nil
}

func (r *completionRepo) DeleteByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, c := range r.s.completions {
		if c.WorkoutID == workoutID {
			delete(r.s.completions, id)
		}
	}
	return nil
}

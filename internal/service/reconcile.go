package service

import (
	"context"

	"alcyxob/gym-buddy/internal/domain"
	"alcyxob/gym-buddy/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reconcileExercises applies a caller-supplied directive list against the
// exercises currently persisted for a workout. Directives are dispatched in
// the order the caller provided them:
//
//   - delete action with an id removes that exercise;
//   - an id matching an existing exercise patches only the supplied fields;
//   - anything else (no id, or an unknown id) creates a new exercise.
//
// After dispatch, pre-existing exercises that no directive touched are swept
// away only in replacement mode: the caller signalled a full-list replace by
// including at least one directive without an id or tagged with a create
// action. A directive list of pure id-bearing updates is a partial patch and
// leaves untouched exercises alone.
//
// All mutations go through txCtx; any failure aborts the surrounding
// transaction, so a bad directive late in the list undoes everything.
func (s *workoutService) reconcileExercises(
	txCtx context.Context,
	workoutID primitive.ObjectID,
	existing []domain.Exercise,
	directives []validation.ExerciseDirective,
) error {
	existingByID := make(map[string]*domain.Exercise, len(existing))
	for i := range existing {
		existingByID[existing[i].ID.Hex()] = &existing[i]
	}

	replaceMode := false
	for i := range directives {
		d := &directives[i]
		if !d.HasID() || d.Action == validation.ActionCreate {
			replaceMode = true
			break
		}
	}

	resolved := make(map[string]bool, len(directives))

	for i := range directives {
		d := &directives[i]
		switch {
		case d.Action == validation.ActionDelete:
			// Validation guarantees delete directives carry an id.
			id, err := primitive.ObjectIDFromHex(d.ID)
			if err != nil {
				return ErrExerciseNotFound
			}
			if err := s.exercises.Delete(txCtx, workoutID, id); err != nil {
				return mapNotFound(err, ErrExerciseNotFound)
			}
			resolved[d.ID] = true

		case d.HasID() && existingByID[d.ID] != nil:
			exercise := existingByID[d.ID]
			applyDirective(exercise, d)
			if err := s.exercises.Update(txCtx, exercise); err != nil {
				return mapNotFound(err, ErrExerciseNotFound)
			}
			resolved[d.ID] = true

		default:
			// No id, or an id that matches nothing here: create.
			exercise := &domain.Exercise{
				WorkoutID: workoutID,
				Name:      domain.DefaultExerciseName,
				Order:     0,
			}
			applyDirective(exercise, d)
			if exercise.Name == "" {
				exercise.Name = domain.DefaultExerciseName
			}
			id, err := s.exercises.Create(txCtx, exercise)
			if err != nil {
				return err
			}
			resolved[id.Hex()] = true
		}
	}

	if !replaceMode {
		return nil
	}
	for i := range existing {
		hex := existing[i].ID.Hex()
		if resolved[hex] {
			continue
		}
		if err := s.exercises.Delete(txCtx, workoutID, existing[i].ID); err != nil {
			return mapNotFound(err, ErrExerciseNotFound)
		}
	}
	return nil
}

// applyDirective copies only the fields the directive actually supplied onto
// the exercise. Null clears the clearable fields (reps, sets, duration,
// notes); order changes only when explicitly provided.
func applyDirective(exercise *domain.Exercise, d *validation.ExerciseDirective) {
	if d.Name.Present() {
		exercise.Name = d.Name.Value
	}
	if d.Reps.Set {
		if d.Reps.Null {
			exercise.Reps = nil
		} else {
			v := d.Reps.Value
			exercise.Reps = &v
		}
	}
	if d.Sets.Set {
		if d.Sets.Null {
			exercise.Sets = nil
		} else {
			v := d.Sets.Value
			exercise.Sets = &v
		}
	}
	if d.Duration.Set {
		if d.Duration.Null {
			exercise.Duration = ""
		} else {
			exercise.Duration = d.Duration.Value
		}
	}
	if d.Notes.Set {
		if d.Notes.Null {
			exercise.Notes = ""
		} else {
			exercise.Notes = d.Notes.Value
		}
	}
	if d.Order.Present() {
		exercise.Order = d.Order.Value
	}
}

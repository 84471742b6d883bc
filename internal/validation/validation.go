package validation

import (
	"fmt"
	"strings"
)

// Error aggregates all field-level problems found in one payload.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func (e *Error) add(format string, args ...any) {
	e.Fields = append(e.Fields, fmt.Sprintf(format, args...))
}

func (e *Error) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Sanitize trims leading/trailing whitespace and collapses internal
// whitespace runs to a single space.
func Sanitize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Directive actions accepted in an exercise update entry.
const (
	ActionUpdate = "update"
	ActionCreate = "create"
	ActionDelete = "delete"
)

// WorkoutPayload is the raw JSON body of a workout create or update request.
// Every field is tri-state so update mode can tell absent from null.
type WorkoutPayload struct {
	Name        Optional[string]            `json:"name"`
	Description Optional[string]            `json:"description"`
	Category    Optional[string]            `json:"category"`
	IsFavorite  Optional[bool]              `json:"isFavorite"`
	Exercises   Optional[[]ExercisePayload] `json:"exercises"`
}

// ExercisePayload is one entry of a payload's exercises array.
type ExercisePayload struct {
	ID       Optional[string] `json:"id"`
	Name     Optional[string] `json:"name"`
	Reps     Optional[int]    `json:"reps"`
	Sets     Optional[int]    `json:"sets"`
	Duration Optional[string] `json:"duration"`
	Notes    Optional[string] `json:"notes"`
	Order    Optional[int]    `json:"order"`
	Action   Optional[string] `json:"_action"`
}

// CompletionPayload is the raw JSON body of a complete-workout request.
type CompletionPayload struct {
	Notes    Optional[string] `json:"notes"`
	Duration Optional[int]    `json:"duration"`
}

// WorkoutCreate is a fully validated create request.
type WorkoutCreate struct {
	Name        string
	Description string
	Category    string
	Exercises   []ExerciseCreate
}

// ExerciseCreate is one validated exercise of a create request.
type ExerciseCreate struct {
	Name     string
	Reps     *int
	Sets     *int
	Duration string
	Notes    string
	Order    int
}

// WorkoutUpdate is a validated partial update. Nil pointers mean the field
// was not supplied; Exercises is only meaningful when HasExercises is true.
type WorkoutUpdate struct {
	Name         *string
	Description  *string
	Category     *string
	IsFavorite   *bool
	HasExercises bool
	Exercises    []ExerciseDirective
}

// HasScalarChanges reports whether any workout-level field was supplied.
func (u *WorkoutUpdate) HasScalarChanges() bool {
	return u.Name != nil || u.Description != nil || u.Category != nil || u.IsFavorite != nil
}

// ExerciseDirective expresses caller intent for one exercise: update it,
// create it, or delete it. Fields keep their tri-state so the reconciliation
// engine can patch individual fields and clear optional ones.
type ExerciseDirective struct {
	ID       string
	Action   string // "", "update", "create" or "delete"
	Name     Optional[string]
	Reps     Optional[int]
	Sets     Optional[int]
	Duration Optional[string]
	Notes    Optional[string]
	Order    Optional[int]
}

// HasID reports whether the directive refers to an existing exercise.
func (d *ExerciseDirective) HasID() bool {
	return d.ID != ""
}

// CompletionCreate is a validated complete-workout request.
type CompletionCreate struct {
	Notes    string
	Duration *int
}

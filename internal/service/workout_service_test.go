package service

import (
	"context"
	"fmt"
	"testing"

	"alcyxob/gym-buddy/internal/repository"
	"alcyxob/gym-buddy/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateWorkout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	body := `{"name":"Leg Day","category":"Strength","exercises":[{"name":"Squats","sets":4,"reps":10,"order":0}]}`
	view, err := svc.Create(ctx, workoutPayload(t, body))
	require.NoError(t, err)

	assert.Equal(t, "Leg Day", view.Workout.Name)
	assert.Equal(t, "strength", view.Workout.Category) // normalized to lowercase
	assert.False(t, view.Workout.IsFavorite)
	require.Len(t, view.Exercises, 1)
	assert.Equal(t, "Squats", view.Exercises[0].Name)
	assert.False(t, view.Exercises[0].ID.IsZero())
	assert.Equal(t, view.Workout.ID, view.Exercises[0].WorkoutID)
	assert.Zero(t, view.CompletionCount)
	assert.Nil(t, view.LastCompleted)
}

func TestCreateWorkout_ValidationAggregatesErrors(t *testing.T) {
	svc, _ := newTestService(t)

	body := `{"category":"swimming","exercises":[{"reps":0,"order":0},{"name":"OK","order":2000}]}`
	_, err := svc.Create(context.Background(), workoutPayload(t, body))

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name is required")
	assert.Contains(t, verr.Fields, "Exercise 1: name is required")
	assert.Contains(t, verr.Fields, "Exercise 1: reps must be between 1 and 1000")
	assert.Contains(t, verr.Fields, "Exercise 2: order must be between 0 and 1000")
}

func TestCreateWorkout_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	body := `{"name":"Round Trip","category":"cardio","exercises":[{"name":"A","order":0},{"name":"B","order":1}]}`
	view, err := svc.Create(ctx, workoutPayload(t, body))
	require.NoError(t, err)

	detail, err := svc.Get(ctx, view.Workout.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 2)
	assert.Equal(t, "A", detail.Exercises[0].Name)
	assert.Equal(t, "B", detail.Exercises[1].Name)
	assert.False(t, detail.Exercises[0].ID.IsZero())
	assert.False(t, detail.Exercises[1].ID.IsZero())
}

func TestGetWorkout_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Get(context.Background(), primitive.NewObjectID())
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestUpdateWorkout_ScalarFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	view := seedWorkout(t, svc, "Squats")

	body := `{"name":"Renamed","description":"with  extra   spaces","category":"CARDIO"}`
	updated, err := svc.Update(ctx, view.Workout.ID, workoutPayload(t, body))
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Workout.Name)
	assert.Equal(t, "with extra spaces", updated.Workout.Description)
	assert.Equal(t, "cardio", updated.Workout.Category)
	// Exercises untouched when no exercises array is supplied.
	require.Len(t, updated.Exercises, 1)
}

func TestUpdateWorkout_NullClearsDescription(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	body := `{"name":"Described","description":"something","category":"other","exercises":[{"name":"A","order":0}]}`
	view, err := svc.Create(ctx, workoutPayload(t, body))
	require.NoError(t, err)
	require.Equal(t, "something", view.Workout.Description)

	updated, err := svc.Update(ctx, view.Workout.ID, workoutPayload(t, `{"description":null}`))
	require.NoError(t, err)
	assert.Empty(t, updated.Workout.Description)
	assert.Equal(t, "Described", updated.Workout.Name)
}

func TestUpdateWorkout_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Update(context.Background(), primitive.NewObjectID(), workoutPayload(t, `{"name":"x"}`))
	require.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestToggleFavorite_IsItsOwnInverse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	view := seedWorkout(t, svc, "Squats")
	require.False(t, view.Workout.IsFavorite)

	toggled, err := svc.ToggleFavorite(ctx, view.Workout.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Workout.IsFavorite)

	toggled, err = svc.ToggleFavorite(ctx, view.Workout.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Workout.IsFavorite)
}

func TestCompleteWorkout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	view := seedWorkout(t, svc, "Squats")

	completion, err := svc.Complete(ctx, view.Workout.ID, completionPayload(t, `{"duration":45}`))
	require.NoError(t, err)
	require.NotNil(t, completion.Duration)
	assert.Equal(t, 45, *completion.Duration)
	assert.Empty(t, completion.Notes)
	assert.False(t, completion.CompletedAt.IsZero())

	detail, err := svc.Get(ctx, view.Workout.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.CompletionCount)
	require.NotNil(t, detail.LastCompleted)
	assert.Equal(t, completion.CompletedAt, *detail.LastCompleted)
	require.Len(t, detail.Completions, 1)
}

func TestCompleteWorkout_ValidatesDuration(t *testing.T) {
	svc, _ := newTestService(t)
	view := seedWorkout(t, svc, "Squats")

	_, err := svc.Complete(context.Background(), view.Workout.ID, completionPayload(t, `{"duration":700}`))
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "duration must be between 1 and 600 minutes")
}

func TestDeleteWorkout_Cascades(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	view := seedWorkout(t, svc, "Squats", "Lunges")

	_, err := svc.Complete(ctx, view.Workout.ID, completionPayload(t, `{}`))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, view.Workout.ID))

	_, err = svc.Get(ctx, view.Workout.ID)
	require.ErrorIs(t, err, ErrWorkoutNotFound)

	exercises, err := store.Exercises().GetByWorkoutID(ctx, view.Workout.ID)
	require.NoError(t, err)
	assert.Empty(t, exercises)

	count, err := store.Completions().CountByWorkoutID(ctx, view.Workout.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListWorkouts_FilterAndPaginate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		category := "strength"
		if i%2 == 1 {
			category = "cardio"
		}
		body := fmt.Sprintf(`{"name":"Workout %d","category":%q,"exercises":[{"name":"A","order":0}]}`, i, category)
		_, err := svc.Create(ctx, workoutPayload(t, body))
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, repository.WorkoutFilter{Category: "strength"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Workouts, 3)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageLimit, page.Limit)

	page, err = svc.List(ctx, repository.WorkoutFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Len(t, page.Workouts, 2)

	page, err = svc.List(ctx, repository.WorkoutFilter{Search: "workout 3"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Workouts, 1)
	assert.Equal(t, "Workout 3", page.Workouts[0].Name)
}

func TestListWorkouts_FavoriteFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := seedWorkout(t, svc, "Squats")
	seedWorkout(t, svc, "Lunges")

	_, err := svc.ToggleFavorite(ctx, first.Workout.ID)
	require.NoError(t, err)

	fav := true
	page, err := svc.List(ctx, repository.WorkoutFilter{Favorite: &fav})
	require.NoError(t, err)
	require.Len(t, page.Workouts, 1)
	assert.Equal(t, first.Workout.ID, page.Workouts[0].ID)
}

func TestListWorkouts_LimitCapped(t *testing.T) {
	svc, _ := newTestService(t)
	page, err := svc.List(context.Background(), repository.WorkoutFilter{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxPageLimit, page.Limit)
}

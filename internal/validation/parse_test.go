package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeWorkout(t *testing.T, body string) WorkoutPayload {
	t.Helper()
	var p WorkoutPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hello world", Sanitize("  hello   world  "))
	assert.Equal(t, "a b c", Sanitize("a\tb\n c"))
	assert.Equal(t, "", Sanitize("   "))
}

func TestOptionalTriState(t *testing.T) {
	var p WorkoutPayload
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","description":null}`), &p))

	assert.True(t, p.Name.Present())
	assert.True(t, p.Description.Set)
	assert.True(t, p.Description.Null)
	assert.False(t, p.Category.Set) // absent key never touches the field
}

func TestParseCreateWorkout_Valid(t *testing.T) {
	p := decodeWorkout(t, `{
		"name":"  Leg   Day ",
		"category":"STRENGTH",
		"exercises":[
			{"name":"Squats","sets":4,"reps":10},
			{"name":"Lunges","duration":"30 seconds","notes":"slow"}
		]
	}`)

	req, err := ParseCreateWorkout(p)
	require.NoError(t, err)

	assert.Equal(t, "Leg Day", req.Name)
	assert.Equal(t, "strength", req.Category)
	require.Len(t, req.Exercises, 2)
	// Order defaults to array position when omitted.
	assert.Equal(t, 0, req.Exercises[0].Order)
	assert.Equal(t, 1, req.Exercises[1].Order)
	require.NotNil(t, req.Exercises[0].Reps)
	assert.Equal(t, 10, *req.Exercises[0].Reps)
	assert.Equal(t, "30 seconds", req.Exercises[1].Duration)
}

func TestParseCreateWorkout_RequiredFields(t *testing.T) {
	_, err := ParseCreateWorkout(decodeWorkout(t, `{}`))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name is required")
	assert.Contains(t, verr.Fields, "category is required")
	assert.Contains(t, verr.Fields, "at least one exercise is required")
}

func TestParseCreateWorkout_CategoryAllowList(t *testing.T) {
	_, err := ParseCreateWorkout(decodeWorkout(t,
		`{"name":"X","category":"underwater basket weaving","exercises":[{"name":"A"}]}`))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Contains(t, verr.Fields[0], "category must be one of")
}

func TestParseCreateWorkout_ExerciseErrorsArePrefixed(t *testing.T) {
	_, err := ParseCreateWorkout(decodeWorkout(t, `{
		"name":"X","category":"other",
		"exercises":[{"name":"ok"},{"reps":2000},{"name":"ok","sets":0}]
	}`))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Exercise 2: name is required")
	assert.Contains(t, verr.Fields, "Exercise 2: reps must be between 1 and 1000")
	assert.Contains(t, verr.Fields, "Exercise 3: sets must be between 1 and 100")
}

func TestParseCreateWorkout_LengthBounds(t *testing.T) {
	long := strings.Repeat("x", 101)
	_, err := ParseCreateWorkout(decodeWorkout(t,
		`{"name":"`+long+`","category":"other","exercises":[{"name":"A"}]}`))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name must be at most 100 characters")
}

func TestParseUpdateWorkout_AbsentVsNullVsValue(t *testing.T) {
	req, err := ParseUpdateWorkout(decodeWorkout(t, `{"description":null}`))
	require.NoError(t, err)
	require.NotNil(t, req.Description)
	assert.Empty(t, *req.Description) // null clears
	assert.Nil(t, req.Name)           // absent leaves untouched
	assert.False(t, req.HasExercises)
	assert.True(t, req.HasScalarChanges())

	req, err = ParseUpdateWorkout(decodeWorkout(t, `{}`))
	require.NoError(t, err)
	assert.Nil(t, req.Description)
	assert.False(t, req.HasScalarChanges())
}

func TestParseUpdateWorkout_EmptyNameRejected(t *testing.T) {
	for _, body := range []string{`{"name":null}`, `{"name":""}`, `{"name":"   "}`} {
		_, err := ParseUpdateWorkout(decodeWorkout(t, body))
		var verr *Error
		require.ErrorAs(t, err, &verr, body)
		assert.Contains(t, verr.Fields, "name cannot be empty")
	}
}

func TestParseUpdateWorkout_DirectiveActions(t *testing.T) {
	req, err := ParseUpdateWorkout(decodeWorkout(t, `{"exercises":[
		{"id":"abc","_action":"update"},
		{"_action":"create","name":"New"},
		{"id":"def","_action":"delete"}
	]}`))
	require.NoError(t, err)
	require.True(t, req.HasExercises)
	require.Len(t, req.Exercises, 3)
	assert.Equal(t, ActionUpdate, req.Exercises[0].Action)
	assert.Equal(t, ActionCreate, req.Exercises[1].Action)
	assert.Equal(t, ActionDelete, req.Exercises[2].Action)
	assert.True(t, req.Exercises[0].HasID())
	assert.False(t, req.Exercises[1].HasID())
}

func TestParseUpdateWorkout_DeleteRequiresID(t *testing.T) {
	_, err := ParseUpdateWorkout(decodeWorkout(t, `{"exercises":[{"_action":"delete"}]}`))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Exercise 1: id is required for delete action")
}

func TestParseUpdateWorkout_UnknownActionRejected(t *testing.T) {
	_, err := ParseUpdateWorkout(decodeWorkout(t, `{"exercises":[{"_action":"upsert"}]}`))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Exercise 1: _action must be one of: update, create, delete")
}

func TestParseUpdateWorkout_DirectiveFieldBounds(t *testing.T) {
	_, err := ParseUpdateWorkout(decodeWorkout(t, `{"exercises":[
		{"id":"abc","reps":5000,"order":-1}
	]}`))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Exercise 1: reps must be between 1 and 1000")
	assert.Contains(t, verr.Fields, "Exercise 1: order must be between 0 and 1000")
}

func TestParseCompletion(t *testing.T) {
	var p CompletionPayload
	require.NoError(t, json.Unmarshal([]byte(`{"notes":" felt  great ","duration":45}`), &p))

	req, err := ParseCompletion(p)
	require.NoError(t, err)
	assert.Equal(t, "felt great", req.Notes)
	require.NotNil(t, req.Duration)
	assert.Equal(t, 45, *req.Duration)
}

func TestParseCompletion_Bounds(t *testing.T) {
	var p CompletionPayload
	require.NoError(t, json.Unmarshal([]byte(`{"duration":0}`), &p))

	_, err := ParseCompletion(p)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "duration must be between 1 and 600 minutes")
}

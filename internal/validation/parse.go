package validation

import (
	"strings"

	"alcyxob/gym-buddy/internal/domain"
)

// Field bounds shared by create and update modes.
const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxDurationLen    = 50
	maxNotesLen       = 500
	maxOrder          = 1000
	maxReps           = 1000
	maxSets           = 100

	maxCompletionNotesLen = 1000
	maxCompletionMinutes  = 600
)

// ParseCreateWorkout validates a payload in create mode and returns the
// sanitized request, or an *Error aggregating every field problem.
func ParseCreateWorkout(p WorkoutPayload) (*WorkoutCreate, error) {
	verr := &Error{}
	out := &WorkoutCreate{}

	name := Sanitize(p.Name.Value)
	switch {
	case !p.Name.Present() || name == "":
		verr.add("name is required")
	case len(name) > maxNameLen:
		verr.add("name must be at most %d characters", maxNameLen)
	default:
		out.Name = name
	}

	if p.Description.Present() {
		desc := Sanitize(p.Description.Value)
		if len(desc) > maxDescriptionLen {
			verr.add("description must be at most %d characters", maxDescriptionLen)
		}
		out.Description = desc
	}

	category := Sanitize(p.Category.Value)
	switch {
	case !p.Category.Present() || category == "":
		verr.add("category is required")
	case !domain.ValidCategory(category):
		verr.add("category must be one of: %s", strings.Join(domain.Categories, ", "))
	default:
		out.Category = strings.ToLower(category)
	}

	if !p.Exercises.Present() || len(p.Exercises.Value) == 0 {
		verr.add("at least one exercise is required")
	}
	for i, ep := range p.Exercises.Value {
		ex, errs := parseExerciseCreate(ep, i)
		for _, msg := range errs {
			verr.add("Exercise %d: %s", i+1, msg)
		}
		out.Exercises = append(out.Exercises, ex)
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseExerciseCreate(p ExercisePayload, index int) (ExerciseCreate, []string) {
	var errs []string
	out := ExerciseCreate{Order: index} // order defaults to array position

	name := Sanitize(p.Name.Value)
	switch {
	case !p.Name.Present() || name == "":
		errs = append(errs, "name is required")
	case len(name) > maxNameLen:
		errs = append(errs, "name must be at most 100 characters")
	default:
		out.Name = name
	}

	errs = append(errs, checkCounts(p, &out.Reps, &out.Sets)...)

	if p.Duration.Present() {
		dur := Sanitize(p.Duration.Value)
		if dur == "" || len(dur) > maxDurationLen {
			errs = append(errs, "duration must be between 1 and 50 characters")
		} else {
			out.Duration = dur
		}
	}
	if p.Notes.Present() {
		notes := Sanitize(p.Notes.Value)
		if len(notes) > maxNotesLen {
			errs = append(errs, "notes must be at most 500 characters")
		} else {
			out.Notes = notes
		}
	}
	if p.Order.Present() {
		if p.Order.Value < 0 || p.Order.Value > maxOrder {
			errs = append(errs, "order must be between 0 and 1000")
		} else {
			out.Order = p.Order.Value
		}
	} else if p.Order.Null {
		errs = append(errs, "order must be an integer")
	}

	return out, errs
}

func checkCounts(p ExercisePayload, reps, sets **int) []string {
	var errs []string
	if p.Reps.Present() {
		if p.Reps.Value < 1 || p.Reps.Value > maxReps {
			errs = append(errs, "reps must be between 1 and 1000")
		} else {
			v := p.Reps.Value
			*reps = &v
		}
	}
	if p.Sets.Present() {
		if p.Sets.Value < 1 || p.Sets.Value > maxSets {
			errs = append(errs, "sets must be between 1 and 100")
		} else {
			v := p.Sets.Value
			*sets = &v
		}
	}
	return errs
}

// ParseUpdateWorkout validates a payload in update mode: every field is
// optional, absent fields stay untouched, null/empty clears optional fields.
func ParseUpdateWorkout(p WorkoutPayload) (*WorkoutUpdate, error) {
	verr := &Error{}
	out := &WorkoutUpdate{}

	if p.Name.Set {
		name := Sanitize(p.Name.Value)
		switch {
		case p.Name.Null || name == "":
			verr.add("name cannot be empty")
		case len(name) > maxNameLen:
			verr.add("name must be at most %d characters", maxNameLen)
		default:
			out.Name = &name
		}
	}

	if p.Description.Set {
		desc := ""
		if !p.Description.Null {
			desc = Sanitize(p.Description.Value)
		}
		if len(desc) > maxDescriptionLen {
			verr.add("description must be at most %d characters", maxDescriptionLen)
		} else {
			out.Description = &desc
		}
	}

	if p.Category.Set {
		category := Sanitize(p.Category.Value)
		switch {
		case p.Category.Null || category == "":
			verr.add("category cannot be empty")
		case !domain.ValidCategory(category):
			verr.add("category must be one of: %s", strings.Join(domain.Categories, ", "))
		default:
			lc := strings.ToLower(category)
			out.Category = &lc
		}
	}

	if p.IsFavorite.Present() {
		fav := p.IsFavorite.Value
		out.IsFavorite = &fav
	}

	if p.Exercises.Present() {
		out.HasExercises = true
		for i, ep := range p.Exercises.Value {
			d, errs := parseExerciseDirective(ep)
			for _, msg := range errs {
				verr.add("Exercise %d: %s", i+1, msg)
			}
			out.Exercises = append(out.Exercises, d)
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseExerciseDirective(p ExercisePayload) (ExerciseDirective, []string) {
	var errs []string
	d := ExerciseDirective{}

	if p.ID.Present() {
		d.ID = Sanitize(p.ID.Value)
	}

	if p.Action.Present() {
		action := strings.ToLower(Sanitize(p.Action.Value))
		switch action {
		case ActionUpdate, ActionCreate, ActionDelete:
			d.Action = action
		default:
			errs = append(errs, "_action must be one of: update, create, delete")
		}
	}
	if d.Action == ActionDelete && !d.HasID() {
		errs = append(errs, "id is required for delete action")
	}

	if p.Name.Set {
		name := Sanitize(p.Name.Value)
		switch {
		case p.Name.Null || name == "":
			errs = append(errs, "name cannot be empty")
		case len(name) > maxNameLen:
			errs = append(errs, "name must be at most 100 characters")
		default:
			d.Name = Optional[string]{Set: true, Value: name}
		}
	}

	if p.Reps.Set {
		if p.Reps.Null {
			d.Reps = p.Reps
		} else if p.Reps.Value < 1 || p.Reps.Value > maxReps {
			errs = append(errs, "reps must be between 1 and 1000")
		} else {
			d.Reps = p.Reps
		}
	}
	if p.Sets.Set {
		if p.Sets.Null {
			d.Sets = p.Sets
		} else if p.Sets.Value < 1 || p.Sets.Value > maxSets {
			errs = append(errs, "sets must be between 1 and 100")
		} else {
			d.Sets = p.Sets
		}
	}

	if p.Duration.Set {
		if p.Duration.Null {
			d.Duration = p.Duration
		} else {
			dur := Sanitize(p.Duration.Value)
			if len(dur) > maxDurationLen {
				errs = append(errs, "duration must be at most 50 characters")
			} else {
				d.Duration = Optional[string]{Set: true, Null: dur == "", Value: dur}
			}
		}
	}
	if p.Notes.Set {
		if p.Notes.Null {
			d.Notes = p.Notes
		} else {
			notes := Sanitize(p.Notes.Value)
			if len(notes) > maxNotesLen {
				errs = append(errs, "notes must be at most 500 characters")
			} else {
				d.Notes = Optional[string]{Set: true, Null: notes == "", Value: notes}
			}
		}
	}

	if p.Order.Set {
		switch {
		case p.Order.Null:
			errs = append(errs, "order must be an integer")
		case p.Order.Value < 0 || p.Order.Value > maxOrder:
			errs = append(errs, "order must be between 0 and 1000")
		default:
			d.Order = p.Order
		}
	}

	return d, errs
}

// ParseCompletion validates a complete-workout payload.
func ParseCompletion(p CompletionPayload) (*CompletionCreate, error) {
	verr := &Error{}
	out := &CompletionCreate{}

	if p.Notes.Present() {
		notes := Sanitize(p.Notes.Value)
		if len(notes) > maxCompletionNotesLen {
			verr.add("notes must be at most %d characters", maxCompletionNotesLen)
		} else {
			out.Notes = notes
		}
	}

	if p.Duration.Present() {
		if p.Duration.Value < 1 || p.Duration.Value > maxCompletionMinutes {
			verr.add("duration must be between 1 and %d minutes", maxCompletionMinutes)
		} else {
			v := p.Duration.Value
			out.Duration = &v
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is one step within a workout. Reps/sets are structured counts;
// Duration stays free text ("30 seconds", "2 min") on purpose.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	Name      string             `bson:"name" json:"name"`
	Reps      *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	Sets      *int               `bson:"sets,omitempty" json:"sets,omitempty"`
	Duration  string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Order     int                `bson:"order" json:"order"` // ascending display sequence within the workout
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultExerciseName is used when a create directive arrives without a name.
const DefaultExerciseName = "Untitled Exercise"

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutCompletion records that a workout was performed at a point in time.
// Append-only: created by the complete action, removed only when the owning
// workout is deleted.
type WorkoutCompletion struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID   primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Duration    *int               `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
}

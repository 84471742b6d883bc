package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a named, categorized template composed of ordered exercises.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category" json:"category"` // stored lowercase
	IsFavorite  bool               `bson:"isFavorite" json:"isFavorite"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
	// Exercises and Completions live in their own collections, keyed by WorkoutID.
}

// Categories is the allow-list a workout category must match (case-insensitive).
var Categories = []string{
	"strength",
	"cardio",
	"flexibility",
	"balance",
	"sports",
	"other",
}

// ValidCategory reports whether s matches the allow-list, ignoring case.
func ValidCategory(s string) bool {
	s = strings.ToLower(s)
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

package schema

import "github.com/google/uuid"

// MuscleGroup is a catalog grouping for exercises.
type MuscleGroup struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Exercise is a single catalog entry, always attached to a muscle group.
type Exercise struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	GroupID     uuid.UUID `json:"groupId"`
}

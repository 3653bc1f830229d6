// Package storage persists named value profiles as UUID-keyed JSON files
// with an index for name lookup.
package storage

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the identity shared by stored records
type Entity struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewEntity creates a new entity with generated UUID and current timestamps
func NewEntity(name, description string) Entity {
	now := time.Now().UTC()
	return Entity{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EntitySummary is the index.json view of an entity
type EntitySummary struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      string    `json:"schema,omitempty" yaml:"schema,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

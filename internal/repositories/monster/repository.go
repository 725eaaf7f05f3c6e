// Package monster provides storage for monster builds.
package monster

import (
	"context"

	"github.com/forgelight/forge-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=monstermock github.com/forgelight/forge-api/internal/repositories/monster Repository

// CreateInput contains parameters for storing a new monster
type CreateInput struct {
	Monster *entities.Monster
}

// CreateOutput contains the stored monster
type CreateOutput struct {
	Monster *entities.Monster
}

// GetInput contains parameters for retrieving a monster
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved monster
type GetOutput struct {
	Monster *entities.Monster
}

// UpdateInput contains parameters for replacing an existing monster
type UpdateInput struct {
	Monster *entities.Monster
}

// UpdateOutput contains the updated monster
type UpdateOutput struct {
	Monster *entities.Monster
}

// DeleteInput contains parameters for deleting a monster
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting a monster
type DeleteOutput struct{}

// ListByDirectorInput contains parameters for listing a director's monsters
type ListByDirectorInput struct {
	DirectorID string
}

// ListByDirectorOutput contains the director's monsters sorted by name
type ListByDirectorOutput struct {
	Monsters []*entities.Monster
}

// Repository defines the interface for monster storage operations
type Repository interface {
	// Create stores a new monster and indexes it under its director
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a monster by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing monster, moving the director index if needed
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a monster and its index entry
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByDirector returns all monsters owned by a director
	ListByDirector(ctx context.Context, input ListByDirectorInput) (*ListByDirectorOutput, error)
}

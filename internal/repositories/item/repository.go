// Package item provides storage for forged items.
package item

import (
	"context"

	"github.com/forgelight/forge-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=itemmock github.com/forgelight/forge-api/internal/repositories/item Repository

// CreateInput contains parameters for storing a new item
type CreateInput struct {
	Item *entities.Item
}

// CreateOutput contains the stored item
type CreateOutput struct {
	Item *entities.Item
}

// GetInput contains parameters for retrieving an item
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved item
type GetOutput struct {
	Item *entities.Item
}

// UpdateInput contains parameters for replacing an existing item
type UpdateInput struct {
	Item *entities.Item
}

// UpdateOutput contains the updated item
type UpdateOutput struct {
	Item *entities.Item
}

// DeleteInput contains parameters for deleting an item
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of deleting an item
type DeleteOutput struct{}

// ListByDirectorInput contains parameters for listing a director's items
type ListByDirectorInput struct {
	DirectorID string
}

// ListByDirectorOutput contains the director's items sorted by name
type ListByDirectorOutput struct {
	Items []*entities.Item
}

// Repository defines the interface for item storage operations
type Repository interface {
	// Create stores a new item and indexes it under its director
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an item by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing item, moving the director index if needed
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an item and its index entry
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByDirector returns all items owned by a director
	ListByDirector(ctx context.Context, input ListByDirectorInput) (*ListByDirectorOutput, error)
}

// Package forge defines the interface for forged-item operations
package forge

//go:generate mockgen -destination=mock/mock_service.go -package=forgemock github.com/forgelight/forge-api/internal/services/forge Service

import (
	"context"

	"github.com/forgelight/forge-api/internal/engine/forgetext"
	"github.com/forgelight/forge-api/internal/entities"
)

// Service defines the interface for forged-item operations
type Service interface {
	// PreviewItem renders a configuration without persisting anything.
	// This is the live-preview path while a director edits a forge.
	PreviewItem(ctx context.Context, input *PreviewItemInput) (*PreviewItemOutput, error)

	// Item lifecycle
	CreateItem(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error)
	GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error)
	UpdateItem(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error)
	DeleteItem(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error)
	ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error)
}

// PreviewItemInput contains a configuration to render
type PreviewItemInput struct {
	Level  int32
	Rarity string
	Config entities.ItemConfig

	// Sections filters the rendered sections by ID; empty means all.
	Sections []string
}

// PreviewItemOutput contains the rendered preview
type PreviewItemOutput struct {
	Sections []forgetext.RenderedSection
	Warnings []string
	Totals   *entities.ForgeTotal
}

// CreateItemInput contains parameters for forging a new item
type CreateItemInput struct {
	DirectorID string
	Name       string
	Rarity     string
	Level      int32
	Config     entities.ItemConfig
}

// CreateItemOutput contains the created item with computed totals
type CreateItemOutput struct {
	Item *entities.Item
}

// GetItemInput contains parameters for retrieving an item
type GetItemInput struct {
	ID string
}

// GetItemOutput contains the item plus its rendered sections
type GetItemOutput struct {
	Item     *entities.Item
	Sections []forgetext.RenderedSection
	Warnings []string
}

// UpdateItemInput replaces an item's name and configuration
type UpdateItemInput struct {
	ID     string
	Name   string
	Rarity string
	Level  int32
	Config entities.ItemConfig
}

// UpdateItemOutput contains the updated item with recomputed totals
type UpdateItemOutput struct {
	Item *entities.Item
}

// DeleteItemInput contains parameters for deleting an item
type DeleteItemInput struct {
	ID string
}

// DeleteItemOutput contains the result of deleting an item
type DeleteItemOutput struct{}

// ListItemsInput contains parameters for listing a director's items
type ListItemsInput struct {
	DirectorID string
}

// ListItemsOutput contains the director's items
type ListItemsOutput struct {
	Items []*entities.Item
}

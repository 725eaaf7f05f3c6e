// Package monster defines the interface for monster operations
package monster

//go:generate mockgen -destination=mock/mock_service.go -package=monstermock github.com/forgelight/forge-api/internal/services/monster Service

import (
	"context"

	"github.com/forgelight/forge-api/internal/entities"
)

// Service defines the interface for monster operations
type Service interface {
	// Monster lifecycle
	CreateMonster(ctx context.Context, input *CreateMonsterInput) (*CreateMonsterOutput, error)
	GetMonster(ctx context.Context, input *GetMonsterInput) (*GetMonsterOutput, error)
	UpdateMonster(ctx context.Context, input *UpdateMonsterInput) (*UpdateMonsterOutput, error)
	DeleteMonster(ctx context.Context, input *DeleteMonsterInput) (*DeleteMonsterOutput, error)
	ListMonsters(ctx context.Context, input *ListMonstersInput) (*ListMonstersOutput, error)

	// RenderTraits resolves a monster's trait and limit-break templates
	// into display text.
	RenderTraits(ctx context.Context, input *RenderTraitsInput) (*RenderTraitsOutput, error)
}

// CreateMonsterInput contains parameters for creating a monster
type CreateMonsterInput struct {
	DirectorID  string
	Name        string
	Level       int32
	Attributes  []entities.MonsterAttribute
	Traits      []entities.MonsterTrait
	LimitBreaks []string
	Attack      *entities.ItemConfig
}

// CreateMonsterOutput contains the created monster
type CreateMonsterOutput struct {
	Monster *entities.Monster
}

// GetMonsterInput contains parameters for retrieving a monster
type GetMonsterInput struct {
	ID string
}

// GetMonsterOutput contains the retrieved monster
type GetMonsterOutput struct {
	Monster *entities.Monster
}

// UpdateMonsterInput replaces a monster's build
type UpdateMonsterInput struct {
	ID          string
	Name        string
	Level       int32
	Attributes  []entities.MonsterAttribute
	Traits      []entities.MonsterTrait
	LimitBreaks []string
	Attack      *entities.ItemConfig
}

// UpdateMonsterOutput contains the updated monster
type UpdateMonsterOutput struct {
	Monster *entities.Monster
}

// DeleteMonsterInput contains parameters for deleting a monster
type DeleteMonsterInput struct {
	ID string
}

// DeleteMonsterOutput contains the result of deleting a monster
type DeleteMonsterOutput struct{}

// ListMonstersInput contains parameters for listing a director's monsters
type ListMonstersInput struct {
	DirectorID string
}

// ListMonstersOutput contains the director's monsters
type ListMonstersOutput struct {
	Monsters []*entities.Monster
}

// RenderTraitsInput contains parameters for rendering a monster's traits
type RenderTraitsInput struct {
	MonsterID string
}

// RenderedTrait is one resolved trait or limit-break text
type RenderedTrait struct {
	ID   string
	Name string
	Text string
}

// RenderTraitsOutput contains the resolved trait and limit-break texts.
// Warnings name traits that reference unknown templates.
type RenderTraitsOutput struct {
	Traits      []RenderedTrait
	LimitBreaks []RenderedTrait
	Warnings    []string
}

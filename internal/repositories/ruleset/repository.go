// Package ruleset provides storage for the admin-curated rule collections
// the forge consumes: damage types, effects, attributes, warding and
// sanctified options, monster traits and limit breaks.
package ruleset

import (
	"context"

	"github.com/forgelight/forge-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rulesetmock github.com/forgelight/forge-api/internal/repositories/ruleset Repository

// Collection names one stored rule collection.
type Collection string

// Stored collections. Each lives under its own key so seeding can
// replace one picklist without touching the others.
const (
	CollectionDamageTypes       Collection = "damage_types"
	CollectionAttackEffects     Collection = "attack_effects"
	CollectionDefenceEffects    Collection = "defence_effects"
	CollectionAttributes        Collection = "attributes"
	CollectionWardingOptions    Collection = "warding_options"
	CollectionSanctifiedOptions Collection = "sanctified_options"
	CollectionTraits            Collection = "traits"
	CollectionLimitBreaks       Collection = "limit_breaks"
)

// AllCollections lists every stored collection in a stable order.
var AllCollections = []Collection{
	CollectionDamageTypes,
	CollectionAttackEffects,
	CollectionDefenceEffects,
	CollectionAttributes,
	CollectionWardingOptions,
	CollectionSanctifiedOptions,
	CollectionTraits,
	CollectionLimitBreaks,
}

// GetInput contains parameters for assembling the full ruleset
type GetInput struct{}

// GetOutput contains the assembled ruleset. Missing collections come
// back empty, never nil output.
type GetOutput struct {
	Ruleset *entities.Ruleset
}

// PutInput replaces the named collections with the corresponding slices
// from Ruleset. Collections not named are left untouched.
type PutInput struct {
	Ruleset     entities.Ruleset
	Collections []Collection
}

// PutOutput contains the result of replacing collections
type PutOutput struct{}

// Repository defines the interface for ruleset storage operations
type Repository interface {
	// Get assembles the full ruleset from all stored collections
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put replaces the named collections
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
}

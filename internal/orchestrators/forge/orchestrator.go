// Package forge implements the forge orchestrator: it wires the rules
// cache, the engine core, and item storage into the forged-item
// operations the API exposes.
package forge

import (
	"context"
	"log/slog"

	"github.com/forgelight/forge-api/internal/engine"
	"github.com/forgelight/forge-api/internal/engine/cost"
	"github.com/forgelight/forge-api/internal/engine/descriptor"
	"github.com/forgelight/forge-api/internal/engine/forgetext"
	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	"github.com/forgelight/forge-api/internal/pkg/clock"
	"github.com/forgelight/forge-api/internal/pkg/idgen"
	"github.com/forgelight/forge-api/internal/pkg/rulecache"
	itemrepo "github.com/forgelight/forge-api/internal/repositories/item"
	"github.com/forgelight/forge-api/internal/services/forge"
)

// Config holds the dependencies for the forge orchestrator
type Config struct {
	ItemRepo    itemrepo.Repository
	Rules       *rulecache.Cache
	Engine      engine.Engine
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the forge.Service interface
type Orchestrator struct {
	itemRepo itemrepo.Repository
	rules    *rulecache.Cache
	engine   engine.Engine
	idGen    idgen.Generator
	clock    clock.Clock
}

// Ensure Orchestrator implements the Service interface
var _ forge.Service = (*Orchestrator)(nil)

// NewOrchestrator creates a new forge orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Orchestrator{
		itemRepo: cfg.ItemRepo,
		rules:    cfg.Rules,
		engine:   cfg.Engine,
		idGen:    cfg.IDGenerator,
		clock:    c,
	}, nil
}

var itemTypeNames = []string{
	string(entities.ItemTypeWeapon),
	string(entities.ItemTypeArmor),
	string(entities.ItemTypeShield),
	string(entities.ItemTypeItem),
}

func validateConfig(config *entities.ItemConfig, vb *errors.ValidationBuilder) {
	errors.ValidateEnum("config.type", string(config.Type), itemTypeNames, vb)
}

// PreviewItem renders a configuration live, without persisting. Overspent
// budgets and unresolved tokens are representable results, not errors.
func (o *Orchestrator) PreviewItem(ctx context.Context, input *forge.PreviewItemInput) (*forge.PreviewItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	validateConfig(&input.Config, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	bundle, err := o.rules.Get(ctx)
	if err != nil {
		return nil, err
	}

	result := o.engine.BuildDescriptorResult(&descriptor.Input{
		Config:             input.Config,
		AttributeTemplates: bundle.Ruleset.AttributeTemplates(input.Config.Type),
	})

	var opts *forgetext.RenderOptions
	if len(input.Sections) > 0 {
		opts = &forgetext.RenderOptions{Sections: input.Sections}
	}

	totals := o.calculateTotals(input.Level, input.Rarity, &input.Config, bundle)

	return &forge.PreviewItemOutput{
		Sections: o.engine.RenderForgeResult(result, opts),
		Warnings: result.Warnings,
		Totals:   totals,
	}, nil
}

// CreateItem validates, prices, and stores a new forged item.
func (o *Orchestrator) CreateItem(ctx context.Context, input *forge.CreateItemInput) (*forge.CreateItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("director_id", input.DirectorID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	validateConfig(&input.Config, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	bundle, err := o.rules.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now().Unix()
	item := &entities.Item{
		ID:         o.idGen.Generate(),
		DirectorID: input.DirectorID,
		Name:       input.Name,
		Rarity:     input.Rarity,
		Level:      input.Level,
		Config:     input.Config,
		Totals:     o.calculateTotals(input.Level, input.Rarity, &input.Config, bundle),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := o.itemRepo.Create(ctx, itemrepo.CreateInput{Item: item})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}

	slog.InfoContext(ctx, "forged item created",
		"item_id", created.Item.ID,
		"director_id", created.Item.DirectorID,
		"type", created.Item.Config.Type,
	)

	return &forge.CreateItemOutput{Item: created.Item}, nil
}

// GetItem loads an item and renders its descriptor sections.
func (o *Orchestrator) GetItem(ctx context.Context, input *forge.GetItemInput) (*forge.GetItemOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	out, err := o.itemRepo.Get(ctx, itemrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	bundle, err := o.rules.Get(ctx)
	if err != nil {
		return nil, err
	}

	result := o.engine.BuildDescriptorResult(&descriptor.Input{
		Config:             out.Item.Config,
		AttributeTemplates: bundle.Ruleset.AttributeTemplates(out.Item.Config.Type),
	})

	return &forge.GetItemOutput{
		Item:     out.Item,
		Sections: o.engine.RenderForgeResult(result, nil),
		Warnings: result.Warnings,
	}, nil
}

// UpdateItem replaces an item's configuration and recomputes its totals.
func (o *Orchestrator) UpdateItem(ctx context.Context, input *forge.UpdateItemInput) (*forge.UpdateItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", input.ID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	validateConfig(&input.Config, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	existing, err := o.itemRepo.Get(ctx, itemrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	bundle, err := o.rules.Get(ctx)
	if err != nil {
		return nil, err
	}

	item := &entities.Item{
		ID:         existing.Item.ID,
		DirectorID: existing.Item.DirectorID,
		Name:       input.Name,
		Rarity:     input.Rarity,
		Level:      input.Level,
		Config:     input.Config,
		Totals:     o.calculateTotals(input.Level, input.Rarity, &input.Config, bundle),
		CreatedAt:  existing.Item.CreatedAt,
		UpdatedAt:  o.clock.Now().Unix(),
	}

	updated, err := o.itemRepo.Update(ctx, itemrepo.UpdateInput{Item: item})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update item")
	}

	slog.InfoContext(ctx, "forged item updated", "item_id", updated.Item.ID)

	return &forge.UpdateItemOutput{Item: updated.Item}, nil
}

// DeleteItem removes an item.
func (o *Orchestrator) DeleteItem(ctx context.Context, input *forge.DeleteItemInput) (*forge.DeleteItemOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	if _, err := o.itemRepo.Delete(ctx, itemrepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "forged item deleted", "item_id", input.ID)

	return &forge.DeleteItemOutput{}, nil
}

// ListItems returns all items owned by a director.
func (o *Orchestrator) ListItems(ctx context.Context, input *forge.ListItemsInput) (*forge.ListItemsOutput, error) {
	if input == nil || input.DirectorID == "" {
		return nil, errors.InvalidArgument("director ID is required")
	}

	out, err := o.itemRepo.ListByDirector(ctx, itemrepo.ListByDirectorInput{DirectorID: input.DirectorID})
	if err != nil {
		return nil, err
	}

	return &forge.ListItemsOutput{Items: out.Items}, nil
}

func (o *Orchestrator) calculateTotals(level int32, rarity string, config *entities.ItemConfig, bundle *rulecache.Bundle) *entities.ForgeTotal {
	return o.engine.CalculateForgeTotals(
		&cost.Values{Level: level, Rarity: rarity, Config: *config},
		bundle.ConfigRows,
		bundle.CostRows,
		&cost.Context{
			Type:      config.Type,
			TypeLabel: config.TypeLabel,
			Size:      config.Size,
			Location:  config.Location,
		},
	)
}

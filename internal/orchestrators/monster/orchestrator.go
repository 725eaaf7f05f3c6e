// Package monster implements the monster orchestrator: CRUD over monster
// builds plus trait and limit-break template rendering.
package monster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgelight/forge-api/internal/engine"
	"github.com/forgelight/forge-api/internal/engine/template"
	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	"github.com/forgelight/forge-api/internal/pkg/clock"
	"github.com/forgelight/forge-api/internal/pkg/idgen"
	"github.com/forgelight/forge-api/internal/pkg/rulecache"
	monsterrepo "github.com/forgelight/forge-api/internal/repositories/monster"
	"github.com/forgelight/forge-api/internal/services/monster"
)

// Config holds the dependencies for the monster orchestrator
type Config struct {
	MonsterRepo monsterrepo.Repository
	Rules       *rulecache.Cache
	Engine      engine.Engine
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.MonsterRepo == nil {
		vb.RequiredField("MonsterRepo")
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

// Orchestrator implements the monster.Service interface
type Orchestrator struct {
	monsterRepo monsterrepo.Repository
	rules       *rulecache.Cache
	engine      engine.Engine
	idGen       idgen.Generator
	clock       clock.Clock
}

// Ensure Orchestrator implements the Service interface
var _ monster.Service = (*Orchestrator)(nil)

// NewOrchestrator creates a new monster orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &Orchestrator{
		monsterRepo: cfg.MonsterRepo,
		rules:       cfg.Rules,
		engine:      cfg.Engine,
		idGen:       cfg.IDGenerator,
		clock:       c,
	}, nil
}

var dieSizeNames = []string{
	string(entities.DieD4),
	string(entities.DieD6),
	string(entities.DieD8),
	string(entities.DieD10),
	string(entities.DieD12),
}

func validateBuild(name string, level int32, attributes []entities.MonsterAttribute, vb *errors.ValidationBuilder) {
	errors.ValidateRequired("name", name, vb)
	if level < 0 {
		vb.Field("level", "must not be negative")
	}
	for i, attr := range attributes {
		field := fmt.Sprintf("attributes[%d]", i)
		if attr.Name == "" {
			vb.RequiredField(field + ".name")
		}
		errors.ValidateEnum(field+".die", string(attr.Die), dieSizeNames, vb)
	}
}

// CreateMonster validates and stores a new monster build.
func (o *Orchestrator) CreateMonster(ctx context.Context, input *monster.CreateMonsterInput) (*monster.CreateMonsterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("director_id", input.DirectorID, vb)
	validateBuild(input.Name, input.Level, input.Attributes, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	now := o.clock.Now().Unix()
	m := &entities.Monster{
		ID:          o.idGen.Generate(),
		DirectorID:  input.DirectorID,
		Name:        input.Name,
		Level:       input.Level,
		Attributes:  input.Attributes,
		Traits:      input.Traits,
		LimitBreaks: input.LimitBreaks,
		Attack:      input.Attack,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := o.monsterRepo.Create(ctx, monsterrepo.CreateInput{Monster: m})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create monster")
	}

	slog.InfoContext(ctx, "monster created",
		"monster_id", created.Monster.ID,
		"director_id", created.Monster.DirectorID,
		"level", created.Monster.Level,
	)

	return &monster.CreateMonsterOutput{Monster: created.Monster}, nil
}

// GetMonster retrieves a monster by ID.
func (o *Orchestrator) GetMonster(ctx context.Context, input *monster.GetMonsterInput) (*monster.GetMonsterOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("monster ID is required")
	}

	out, err := o.monsterRepo.Get(ctx, monsterrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	return &monster.GetMonsterOutput{Monster: out.Monster}, nil
}

// UpdateMonster replaces a monster's build.
func (o *Orchestrator) UpdateMonster(ctx context.Context, input *monster.UpdateMonsterInput) (*monster.UpdateMonsterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("id", input.ID, vb)
	validateBuild(input.Name, input.Level, input.Attributes, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	existing, err := o.monsterRepo.Get(ctx, monsterrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}

	m := &entities.Monster{
		ID:          existing.Monster.ID,
		DirectorID:  existing.Monster.DirectorID,
		Name:        input.Name,
		Level:       input.Level,
		Attributes:  input.Attributes,
		Traits:      input.Traits,
		LimitBreaks: input.LimitBreaks,
		Attack:      input.Attack,
		CreatedAt:   existing.Monster.CreatedAt,
		UpdatedAt:   o.clock.Now().Unix(),
	}

	updated, err := o.monsterRepo.Update(ctx, monsterrepo.UpdateInput{Monster: m})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update monster")
	}

	slog.InfoContext(ctx, "monster updated", "monster_id", updated.Monster.ID)

	return &monster.UpdateMonsterOutput{Monster: updated.Monster}, nil
}

// DeleteMonster removes a monster.
func (o *Orchestrator) DeleteMonster(ctx context.Context, input *monster.DeleteMonsterInput) (*monster.DeleteMonsterOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("monster ID is required")
	}

	if _, err := o.monsterRepo.Delete(ctx, monsterrepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "monster deleted", "monster_id", input.ID)

	return &monster.DeleteMonsterOutput{}, nil
}

// ListMonsters returns all monsters owned by a director.
func (o *Orchestrator) ListMonsters(ctx context.Context, input *monster.ListMonstersInput) (*monster.ListMonstersOutput, error) {
	if input == nil || input.DirectorID == "" {
		return nil, errors.InvalidArgument("director ID is required")
	}

	out, err := o.monsterRepo.ListByDirector(ctx, monsterrepo.ListByDirectorInput{DirectorID: input.DirectorID})
	if err != nil {
		return nil, err
	}

	return &monster.ListMonstersOutput{Monsters: out.Monsters}, nil
}

// RenderTraits resolves a monster's trait and limit-break templates into
// display text. A trait whose value the admin never set still renders;
// unknown tokens come through as "?" per the template rules.
func (o *Orchestrator) RenderTraits(ctx context.Context, input *monster.RenderTraitsInput) (*monster.RenderTraitsOutput, error) {
	if input == nil || input.MonsterID == "" {
		return nil, errors.InvalidArgument("monster ID is required")
	}

	out, err := o.monsterRepo.Get(ctx, monsterrepo.GetInput{ID: input.MonsterID})
	if err != nil {
		return nil, err
	}

	bundle, err := o.rules.Get(ctx)
	if err != nil {
		return nil, err
	}

	m := out.Monster
	result := &monster.RenderTraitsOutput{
		Traits:      []monster.RenderedTrait{},
		LimitBreaks: []monster.RenderedTrait{},
	}

	traitsByID := make(map[string]entities.TraitTemplate, len(bundle.Ruleset.Traits))
	for _, t := range bundle.Ruleset.Traits {
		traitsByID[t.ID] = t
	}
	breaksByID := make(map[string]entities.LimitBreakTemplate, len(bundle.Ruleset.LimitBreaks))
	for _, lb := range bundle.Ruleset.LimitBreaks {
		breaksByID[lb.ID] = lb
	}

	for _, trait := range m.Traits {
		tmpl, ok := traitsByID[trait.TraitID]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("trait %s: no template found", trait.TraitID))
			continue
		}

		renderCtx := o.buildContext(m)
		renderCtx["TraitValue"] = trait.Value

		result.Traits = append(result.Traits, monster.RenderedTrait{
			ID:   tmpl.ID,
			Name: tmpl.Name,
			Text: o.engine.RenderTemplate(tmpl.Template, renderCtx),
		})
	}

	for _, id := range m.LimitBreaks {
		tmpl, ok := breaksByID[id]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("limit break %s: no template found", id))
			continue
		}

		result.LimitBreaks = append(result.LimitBreaks, monster.RenderedTrait{
			ID:   tmpl.ID,
			Name: tmpl.Name,
			Text: o.engine.RenderTemplate(tmpl.Template, o.buildContext(m)),
		})
	}

	return result, nil
}

// buildContext assembles the token context for one monster: its level and
// one die-size token per attribute, keyed by attribute name.
func (o *Orchestrator) buildContext(m *entities.Monster) template.Context {
	renderCtx := template.Context{
		"MonsterLevel": m.Level,
	}
	for _, attr := range m.Attributes {
		renderCtx[attr.Name] = attr.Die
	}
	return renderCtx
}

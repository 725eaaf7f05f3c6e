// Package seed loads admin-curated rule data from YAML files into the
// ruleset and cost table repositories. Each file may carry any subset of
// the sections; files in one directory are merged before storing.
package seed

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/forgelight/forge-api/internal/entities"
	"github.com/forgelight/forge-api/internal/errors"
	"github.com/forgelight/forge-api/internal/repositories/costtable"
	"github.com/forgelight/forge-api/internal/repositories/ruleset"
)

// Config holds the dependencies for the seed loader
type Config struct {
	RulesetRepo   ruleset.Repository
	CostTableRepo costtable.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.RulesetRepo == nil {
		vb.RequiredField("RulesetRepo")
	}
	if c.CostTableRepo == nil {
		vb.RequiredField("CostTableRepo")
	}

	return vb.Build()
}

// Loader reads rule YAML files and stores them.
type Loader struct {
	rulesets ruleset.Repository
	costs    costtable.Repository
}

// NewLoader creates a seed loader.
func NewLoader(cfg *Config) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &Loader{
		rulesets: cfg.RulesetRepo,
		costs:    cfg.CostTableRepo,
	}, nil
}

// ruleFile is the on-disk YAML schema. Every section is optional.
type ruleFile struct {
	DamageTypes []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
		Mode string `yaml:"mode"`
	} `yaml:"damage_types"`

	AttackEffects []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"attack_effects"`

	DefenceEffects []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"defence_effects"`

	Attributes []struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Kind     string `yaml:"kind"`
		Template string `yaml:"template"`
	} `yaml:"attributes"`

	WardingOptions []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"warding_options"`

	SanctifiedOptions []struct {
		ID   string `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"sanctified_options"`

	Traits []struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Template string `yaml:"template"`
	} `yaml:"traits"`

	LimitBreaks []struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Template string `yaml:"template"`
	} `yaml:"limit_breaks"`

	ConfigRows []struct {
		Category   string  `yaml:"category"`
		Selector1  string  `yaml:"selector1"`
		Selector2  string  `yaml:"selector2"`
		Multiplier float64 `yaml:"multiplier"`
	} `yaml:"config_rows"`

	CostRows []struct {
		Category  string  `yaml:"category"`
		Selector1 string  `yaml:"selector1"`
		Selector2 string  `yaml:"selector2"`
		Selector3 string  `yaml:"selector3"`
		Value     float64 `yaml:"value"`
	} `yaml:"cost_rows"`
}

// LoadDir reads every .yml/.yaml file in dir, merges their sections, and
// stores them. Only sections that appeared in at least one file are
// replaced; everything else in storage is left alone.
func (l *Loader) LoadDir(ctx context.Context, dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to read seed directory %s", dir)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, f.Name())
		}
	}
	if len(names) == 0 {
		return errors.InvalidArgumentf("no rule files found in %s", dir)
	}
	sort.Strings(names)

	merged := &ruleFile{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path) // #nosec G304 // path comes from the seed directory listing
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}

		var rf ruleFile
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
		mergeFiles(merged, &rf)

		slog.InfoContext(ctx, "loaded rule file", "file", name)
	}

	if err := l.storeRuleset(ctx, merged); err != nil {
		return err
	}
	return l.storeCostTables(ctx, merged)
}

func mergeFiles(dst, src *ruleFile) {
	dst.DamageTypes = append(dst.DamageTypes, src.DamageTypes...)
	dst.AttackEffects = append(dst.AttackEffects, src.AttackEffects...)
	dst.DefenceEffects = append(dst.DefenceEffects, src.DefenceEffects...)
	dst.Attributes = append(dst.Attributes, src.Attributes...)
	dst.WardingOptions = append(dst.WardingOptions, src.WardingOptions...)
	dst.SanctifiedOptions = append(dst.SanctifiedOptions, src.SanctifiedOptions...)
	dst.Traits = append(dst.Traits, src.Traits...)
	dst.LimitBreaks = append(dst.LimitBreaks, src.LimitBreaks...)
	dst.ConfigRows = append(dst.ConfigRows, src.ConfigRows...)
	dst.CostRows = append(dst.CostRows, src.CostRows...)
}

func (l *Loader) storeRuleset(ctx context.Context, rf *ruleFile) error {
	rules := entities.Ruleset{}
	collections := []ruleset.Collection{}

	if len(rf.DamageTypes) > 0 {
		for _, dt := range rf.DamageTypes {
			rules.DamageTypes = append(rules.DamageTypes, entities.DamageType{
				ID:   dt.ID,
				Name: dt.Name,
				Mode: entities.DamageMode(strings.ToUpper(dt.Mode)),
			})
		}
		collections = append(collections, ruleset.CollectionDamageTypes)
	}
	if len(rf.AttackEffects) > 0 {
		for _, e := range rf.AttackEffects {
			rules.AttackEffects = append(rules.AttackEffects, entities.AttackEffect{ID: e.ID, Name: e.Name})
		}
		collections = append(collections, ruleset.CollectionAttackEffects)
	}
	if len(rf.DefenceEffects) > 0 {
		for _, e := range rf.DefenceEffects {
			rules.DefenceEffects = append(rules.DefenceEffects, entities.DefenceEffect{ID: e.ID, Name: e.Name})
		}
		collections = append(collections, ruleset.CollectionDefenceEffects)
	}
	if len(rf.Attributes) > 0 {
		for _, a := range rf.Attributes {
			rules.Attributes = append(rules.Attributes, entities.ItemAttribute{
				ID:       a.ID,
				Name:     a.Name,
				Kind:     entities.ItemType(strings.ToUpper(a.Kind)),
				Template: a.Template,
			})
		}
		collections = append(collections, ruleset.CollectionAttributes)
	}
	if len(rf.WardingOptions) > 0 {
		for _, w := range rf.WardingOptions {
			rules.WardingOptions = append(rules.WardingOptions, entities.WardingOption{ID: w.ID, Name: w.Name})
		}
		collections = append(collections, ruleset.CollectionWardingOptions)
	}
	if len(rf.SanctifiedOptions) > 0 {
		for _, so := range rf.SanctifiedOptions {
			rules.SanctifiedOptions = append(rules.SanctifiedOptions, entities.SanctifiedOption{ID: so.ID, Name: so.Name})
		}
		collections = append(collections, ruleset.CollectionSanctifiedOptions)
	}
	if len(rf.Traits) > 0 {
		for _, t := range rf.Traits {
			rules.Traits = append(rules.Traits, entities.TraitTemplate{ID: t.ID, Name: t.Name, Template: t.Template})
		}
		collections = append(collections, ruleset.CollectionTraits)
	}
	if len(rf.LimitBreaks) > 0 {
		for _, lb := range rf.LimitBreaks {
			rules.LimitBreaks = append(rules.LimitBreaks, entities.LimitBreakTemplate{ID: lb.ID, Name: lb.Name, Template: lb.Template})
		}
		collections = append(collections, ruleset.CollectionLimitBreaks)
	}

	if len(collections) == 0 {
		return nil
	}

	if _, err := l.rulesets.Put(ctx, ruleset.PutInput{Ruleset: rules, Collections: collections}); err != nil {
		return errors.Wrap(err, "failed to store ruleset")
	}

	slog.InfoContext(ctx, "seeded ruleset", "collections", len(collections))
	return nil
}

func (l *Loader) storeCostTables(ctx context.Context, rf *ruleFile) error {
	if len(rf.ConfigRows) == 0 && len(rf.CostRows) == 0 {
		return nil
	}

	input := costtable.PutInput{}
	for _, row := range rf.ConfigRows {
		input.ConfigRows = append(input.ConfigRows, entities.ConfigRow{
			Category:   strings.ToUpper(row.Category),
			Selector1:  row.Selector1,
			Selector2:  row.Selector2,
			Multiplier: row.Multiplier,
		})
	}
	for _, row := range rf.CostRows {
		input.CostRows = append(input.CostRows, entities.CostRow{
			Category:  strings.ToUpper(row.Category),
			Selector1: row.Selector1,
			Selector2: row.Selector2,
			Selector3: row.Selector3,
			Value:     row.Value,
		})
	}

	if _, err := l.costs.Put(ctx, input); err != nil {
		return errors.Wrap(err, "failed to store cost tables")
	}

	slog.InfoContext(ctx, "seeded cost tables",
		"config_rows", len(input.ConfigRows),
		"cost_rows", len(input.CostRows),
	)
	return nil
}

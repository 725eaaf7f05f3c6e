// Package descriptor deterministically compiles an item configuration into
// ordered sections of renderable lines. Build is pure: it never mutates its
// input, touches no shared state, and is safe to call on every keystroke of
// a live preview.
package descriptor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forgelight/forge-api/internal/entities"
)

// Build compiles the input into sections. Sections are emitted only when
// they contain at least one line and are returned in ascending section
// order. Warnings (attribute without a template, unresolved tokens) are
// diagnostic only and never block other lines.
func Build(input *Input) *Result {
	b := &builder{
		cfg:       &input.Config,
		templates: input.AttributeTemplates,
	}

	b.buildModifiers()
	if b.isDefensive() {
		b.buildVRP()
		b.buildDefence()
		b.buildGreaterDefence()
	}
	b.buildAttributes()
	if b.isOffensive() {
		b.buildAttackActions()
	}

	sort.SliceStable(b.sections, func(i, j int) bool {
		return b.sections[i].Order < b.sections[j].Order
	})

	return &Result{Sections: b.sections, Warnings: b.warnings}
}

type builder struct {
	cfg       *entities.ItemConfig
	templates map[string]string
	sections  []Section
	warnings  []string
}

func (b *builder) isDefensive() bool {
	return b.cfg.Type == entities.ItemTypeArmor || b.cfg.Type == entities.ItemTypeShield
}

func (b *builder) isOffensive() bool {
	return b.cfg.Type == entities.ItemTypeWeapon || b.cfg.Type == entities.ItemTypeShield
}

func (b *builder) addSection(id, title string, order int, lines []Line) {
	if len(lines) == 0 {
		return
	}
	b.sections = append(b.sections, Section{ID: id, Title: title, Order: order, Lines: lines})
}

func (b *builder) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

// buildModifiers dedupes global attribute modifiers by name (last write
// wins), sorts them alphabetically, and emits a single structured line.
func (b *builder) buildModifiers() {
	if len(b.cfg.Modifiers) == 0 {
		return
	}

	byName := make(map[string]int32)
	for _, mod := range b.cfg.Modifiers {
		byName[mod.Attribute] = mod.Magnitude
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	modifiers := make([]entities.AttributeModifier, 0, len(names))
	for _, name := range names {
		modifiers = append(modifiers, entities.AttributeModifier{
			Attribute: name,
			Magnitude: byName[name],
		})
	}

	b.addSection("modifiers", "Modifiers", orderModifiers, []Line{{
		Kind:      LineGlobalModifiers,
		ItemType:  b.cfg.Type,
		Modifiers: modifiers,
	}})
}

func (b *builder) buildVRP() {
	resolved := resolveVRP(b.cfg.VRP)
	lines := make([]Line, 0, len(resolved))
	for _, entry := range resolved {
		lines = append(lines, Line{Kind: LineText, ItemType: b.cfg.Type, Text: vrpText(entry)})
	}
	b.addSection("vrp", "Vulnerabilities, Resistances & Protections", orderVRP, lines)
}

func (b *builder) buildDefence() {
	clause := b.cfg.Type.PossessionClause()
	var text string
	switch {
	case b.cfg.PPV > 0 && b.cfg.MPV > 0:
		text = fmt.Sprintf("%s, increase your Physical Protection by %d and your Mental Protection by %d.",
			clause, b.cfg.PPV, b.cfg.MPV)
	case b.cfg.PPV > 0:
		text = fmt.Sprintf("%s, increase your Physical Protection by %d.", clause, b.cfg.PPV)
	case b.cfg.MPV > 0:
		text = fmt.Sprintf("%s, increase your Mental Protection by %d.", clause, b.cfg.MPV)
	default:
		return
	}

	b.addSection("defence", "Defence", orderDefence, []Line{{
		Kind:     LineText,
		ItemType: b.cfg.Type,
		Text:     text,
	}})
}

func (b *builder) buildGreaterDefence() {
	seen := make(map[string]bool)
	var names []string
	for _, name := range b.cfg.DefenceEffects {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]Line, 0, len(names))
	for _, name := range names {
		lines = append(lines, Line{
			Kind:     LineText,
			ItemType: b.cfg.Type,
			Text:     fmt.Sprintf("Greater successes on Defence rolls grant you 1 stack of %s.", name),
		})
	}
	b.addSection("greater-defence", "Greater Defence Effects", orderGreaterDefence, lines)
}

// buildAttributes renders every selected attribute through its authored
// template. Attributes without a template are skipped with a warning;
// unresolved tokens warn but the line is still emitted.
func (b *builder) buildAttributes() {
	if len(b.cfg.Attributes) == 0 {
		return
	}

	type parsedAttribute struct {
		attr     entities.SelectedAttribute
		base     string
		value    int32
		hasValue bool
	}

	parsed := make([]parsedAttribute, 0, len(b.cfg.Attributes))
	for _, attr := range b.cfg.Attributes {
		base, value, hasValue := splitAttributeName(attr.Name)
		parsed = append(parsed, parsedAttribute{attr: attr, base: base, value: value, hasValue: hasValue})
	}

	sort.SliceStable(parsed, func(i, j int) bool {
		if parsed[i].base != parsed[j].base {
			return parsed[i].base < parsed[j].base
		}
		return parsed[i].attr.Name < parsed[j].attr.Name
	})

	var lines []Line
	for _, p := range parsed {
		tmpl, ok := b.templates[p.base]
		if !ok || strings.TrimSpace(tmpl) == "" {
			b.warnf("attribute %q has no descriptor template", p.attr.Name)
			continue
		}

		tokens := attributeTokens(b.cfg, p.attr, p.value, p.hasValue)
		rendered, leftover := substituteTokens(tmpl, tokens)
		for _, name := range leftover {
			b.warnf("attribute %q: unresolved token [%s]", p.attr.Name, name)
		}

		prefix := p.base + ":"
		if !strings.HasPrefix(strings.ToLower(rendered), strings.ToLower(prefix)) {
			rendered = prefix + " " + rendered
		}

		lines = append(lines, Line{Kind: LineWeaponAttribute, ItemType: b.cfg.Type, Text: rendered})
	}

	b.addSection("attributes", b.attributeSectionTitle(), orderAttributes, lines)
}

func (b *builder) attributeSectionTitle() string {
	switch b.cfg.Type {
	case entities.ItemTypeWeapon:
		return "Weapon Attributes"
	case entities.ItemTypeArmor:
		return "Armor Attributes"
	case entities.ItemTypeShield:
		return "Shield Attributes"
	default:
		return "Item Attributes"
	}
}

// buildAttackActions emits one line per enabled range that passes gating:
// some strength, damage types of its own (no global fallback), and a shape
// for area attacks.
func (b *builder) buildAttackActions() {
	var lines []Line
	for _, kind := range []entities.RangeKind{entities.RangeMelee, entities.RangeRanged, entities.RangeAoe} {
		r := b.cfg.Range(kind)
		if r == nil || !r.Enabled {
			continue
		}
		if r.PhysicalStrength <= 0 && r.MentalStrength <= 0 {
			continue
		}
		if kind == entities.RangeAoe && r.AoeShape == "" {
			continue
		}

		damage := damageEntries(r)
		if len(damage) == 0 {
			continue
		}

		lines = append(lines, Line{
			Kind:     LineAttackAction,
			ItemType: b.cfg.Type,
			Attack: &AttackAction{
				Specs: []RangeSpec{{
					Kind:     r.Kind,
					Targets:  r.Targets,
					Distance: r.Distance,
					AoeCount: r.AoeCount,
					AoeShape: r.AoeShape,
					AoeSize:  r.AoeSize,
				}},
				Damage:         damage,
				GreaterSuccess: dedupeStrings(r.GreaterSuccessEffects),
				Skill:          r.Skill,
			},
		})
	}

	b.addSection("attack-actions", "Attack Actions", orderAttackActions, lines)
}

// damageEntries builds one entry per damage type whose mode has a positive
// strength on this range. Types are deduplicated case-insensitively and
// sorted alphabetically.
func damageEntries(r *entities.AttackRange) []DamageEntry {
	seen := make(map[string]bool)
	var types []entities.DamageTypeRef
	for _, dt := range r.DamageTypes {
		key := strings.ToLower(dt.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		types = append(types, dt)
	}
	sort.Slice(types, func(i, j int) bool {
		return strings.ToLower(types[i].Name) < strings.ToLower(types[j].Name)
	})

	var entries []DamageEntry
	for _, dt := range types {
		amount := r.PhysicalStrength
		if dt.Mode == entities.DamageModeMental {
			amount = r.MentalStrength
		}
		if amount <= 0 {
			continue
		}
		entries = append(entries, DamageEntry{Amount: amount, Mode: dt.Mode, DamageType: dt.Name})
	}
	return entries
}

func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

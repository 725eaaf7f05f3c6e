// Package forgetext maps structured descriptor lines to final display text.
// Every function here is a pure mapping: no lookups beyond what is embedded
// in the line itself.
package forgetext

import (
	"fmt"
	"strings"

	"github.com/forgelight/forge-api/internal/engine/descriptor"
	"github.com/forgelight/forge-api/internal/entities"
)

// RenderedSection is one display-ready section: a title and its lines.
type RenderedSection struct {
	Title string
	Lines []string
}

// RenderOptions tunes result rendering. A nil options value renders
// everything.
type RenderOptions struct {
	// Sections restricts output to the named section IDs; nil means all.
	Sections []string
}

// RenderResult renders every section of a descriptor result to display text.
func RenderResult(result *descriptor.Result, opts *RenderOptions) []RenderedSection {
	var include map[string]bool
	if opts != nil && opts.Sections != nil {
		include = make(map[string]bool, len(opts.Sections))
		for _, id := range opts.Sections {
			include[id] = true
		}
	}

	var rendered []RenderedSection
	for _, section := range result.Sections {
		if include != nil && !include[section.ID] {
			continue
		}
		lines := make([]string, 0, len(section.Lines))
		for _, line := range section.Lines {
			lines = append(lines, RenderLine(line))
		}
		rendered = append(rendered, RenderedSection{Title: section.Title, Lines: lines})
	}
	return rendered
}

// RenderLine maps one descriptor line to its display text.
func RenderLine(line descriptor.Line) string {
	switch line.Kind {
	case descriptor.LineGlobalModifiers:
		return renderModifiers(line)
	case descriptor.LineAttackAction:
		return renderAttackAction(line)
	default:
		return line.Text
	}
}

// renderModifiers renders "Whilst wielding this weapon, the wielder gains
// +2 to Might, +1 to Grace and +1 to Wits."
func renderModifiers(line descriptor.Line) string {
	parts := make([]string, 0, len(line.Modifiers))
	for _, mod := range line.Modifiers {
		parts = append(parts, fmt.Sprintf("%s to %s", signed(mod.Magnitude), mod.Attribute))
	}
	return fmt.Sprintf("%s, the wielder gains %s.", line.ItemType.PossessionClause(), joinWithAnd(parts))
}

func renderAttackAction(line descriptor.Line) string {
	attack := line.Attack

	clauses := make([]string, 0, len(attack.Specs))
	for _, spec := range attack.Specs {
		clauses = append(clauses, targetingClause(spec))
	}

	var sb strings.Builder
	sb.WriteString("Attack ")
	sb.WriteString(strings.Join(clauses, ", or "))
	if attack.Skill != "" {
		fmt.Fprintf(&sb, " and roll %s dice.", attack.Skill)
	} else {
		sb.WriteString(" and roll your attack dice.")
	}

	entries := make([]string, 0, len(attack.Damage))
	for _, entry := range attack.Damage {
		entries = append(entries, fmt.Sprintf("%d %s %s %s",
			entry.Amount,
			strings.ToLower(string(entry.Mode)),
			entry.DamageType,
			pluralize(entry.Amount, "wound", "wounds"),
		))
	}
	// damage entries join with a plain "and" at any count; only the
	// modifier list uses comma joining
	fmt.Fprintf(&sb, " This %s inflicts %s per success.", line.ItemType.Noun(), strings.Join(entries, " and "))

	if len(attack.GreaterSuccess) > 0 {
		fmt.Fprintf(&sb, " Each greater success inflicts 1 stack of %s.", strings.Join(attack.GreaterSuccess, ", or "))
	}

	return sb.String()
}

// targetingClause builds the per-range targeting text: adjacent targets for
// melee, targets within a distance for ranged, and counted shapes for area
// attacks. Zero-distance areas anchor on the attacker: spheres are
// "centered on yourself", cones and lines "emanating from yourself".
func targetingClause(spec descriptor.RangeSpec) string {
	switch spec.Kind {
	case entities.RangeMelee:
		return fmt.Sprintf("%d adjacent %s", spec.Targets, pluralize(spec.Targets, "target", "targets"))
	case entities.RangeRanged:
		return fmt.Sprintf("%d %s within %dft", spec.Targets, pluralize(spec.Targets, "target", "targets"), spec.Distance)
	default:
		shape := strings.ToLower(string(spec.AoeShape))
		count := spec.AoeCount
		if count < 1 {
			count = 1
		}

		var sb strings.Builder
		if count > 1 {
			fmt.Fprintf(&sb, "up to %d %dft %ss", count, spec.AoeSize, shape)
		} else {
			fmt.Fprintf(&sb, "1 %dft %s", spec.AoeSize, shape)
		}

		switch {
		case spec.Distance > 0:
			fmt.Fprintf(&sb, " within %dft", spec.Distance)
		case spec.AoeShape == entities.ShapeSphere:
			sb.WriteString(" centered on yourself")
		default:
			sb.WriteString(" emanating from yourself")
		}
		return sb.String()
	}
}

func signed(n int32) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func pluralize(n int32, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// joinWithAnd joins items as "a", "a and b", or "a, b and c".
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

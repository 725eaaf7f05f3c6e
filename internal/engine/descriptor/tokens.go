package descriptor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/forgelight/forge-api/internal/entities"
)

// Fixed token vocabulary for attribute descriptor templates. Attribute
// templates use plain token substitution, never the arithmetic evaluator.
var attributeTokenRegex = regexp.MustCompile(`\[([A-Za-z0-9]+)\]`)

// trailing integer on an attribute name, e.g. "Reload 5"
var attributeValueRegex = regexp.MustCompile(`^(.*?)\s+(\d+)$`)

// splitAttributeName parses a selected attribute's full name into its base
// name and optional trailing numeric value.
func splitAttributeName(name string) (base string, value int32, hasValue bool) {
	trimmed := strings.TrimSpace(name)
	if m := attributeValueRegex.FindStringSubmatch(trimmed); m != nil {
		parsed, err := strconv.Atoi(m[2])
		if err == nil {
			return m[1], int32(parsed), true
		}
	}
	return trimmed, 0, false
}

// attributeTokens assembles the substitution vocabulary for one selected
// attribute: its own value, aggregates across all enabled ranges, per-range
// targeting and strength values, and the chosen range's [Strength]/[Range]
// for parameterized attributes.
func attributeTokens(cfg *entities.ItemConfig, attr entities.SelectedAttribute, value int32, hasValue bool) map[string]string {
	tokens := make(map[string]string)

	if hasValue {
		tokens["AttributeValue"] = strconv.Itoa(int(value))
	}

	tokens["DamageTypes"] = joinNames(aggregateDamageTypes(cfg))
	tokens["GreaterSuccessEffects"] = joinNames(aggregateGreaterSuccess(cfg))

	for i := range cfg.Ranges {
		r := &cfg.Ranges[i]
		if !r.Enabled {
			continue
		}
		switch r.Kind {
		case entities.RangeMelee:
			tokens["MeleeTargets"] = strconv.Itoa(int(r.Targets))
			tokens["MeleePhysicalStrength"] = strconv.Itoa(int(r.PhysicalStrength))
			tokens["MeleeMentalStrength"] = strconv.Itoa(int(r.MentalStrength))
		case entities.RangeRanged:
			tokens["RangedTargets"] = strconv.Itoa(int(r.Targets))
			tokens["RangedDistance"] = strconv.Itoa(int(r.Distance))
			tokens["RangedPhysicalStrength"] = strconv.Itoa(int(r.PhysicalStrength))
			tokens["RangedMentalStrength"] = strconv.Itoa(int(r.MentalStrength))
		case entities.RangeAoe:
			tokens["AoeCount"] = strconv.Itoa(int(r.AoeCount))
			tokens["AoeShape"] = strings.ToLower(string(r.AoeShape))
			tokens["AoeSize"] = strconv.Itoa(int(r.AoeSize))
			tokens["AoeDistance"] = strconv.Itoa(int(r.Distance))
			tokens["AoePhysicalStrength"] = strconv.Itoa(int(r.PhysicalStrength))
			tokens["AoeMentalStrength"] = strconv.Itoa(int(r.MentalStrength))
		}
	}

	// parameterized attributes reference the range the director chose
	if attr.Range != "" {
		if chosen := cfg.Range(attr.Range); chosen != nil && chosen.Enabled {
			strength := chosen.PhysicalStrength
			if strength <= 0 {
				strength = chosen.MentalStrength
			}
			tokens["Strength"] = strconv.Itoa(int(strength))
			tokens["Range"] = strconv.Itoa(int(chosen.Distance))
		}
	}

	return tokens
}

// substituteTokens replaces every known token and returns the names of any
// tokens left unresolved.
func substituteTokens(tmpl string, tokens map[string]string) (string, []string) {
	var leftover []string
	rendered := attributeTokenRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[1 : len(match)-1]
		if replacement, ok := tokens[name]; ok {
			return replacement
		}
		leftover = append(leftover, name)
		return match
	})
	return rendered, leftover
}

// aggregateDamageTypes returns the damage-type names across all enabled
// ranges, deduplicated case-insensitively and sorted.
func aggregateDamageTypes(cfg *entities.ItemConfig) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range cfg.Ranges {
		r := &cfg.Ranges[i]
		if !r.Enabled {
			continue
		}
		for _, dt := range r.DamageTypes {
			key := strings.ToLower(dt.Name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, dt.Name)
		}
	}
	sortNamesFold(names)
	return names
}

// aggregateGreaterSuccess returns the greater-success effect names across
// all enabled ranges, deduplicated and sorted.
func aggregateGreaterSuccess(cfg *entities.ItemConfig) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range cfg.Ranges {
		r := &cfg.Ranges[i]
		if !r.Enabled {
			continue
		}
		for _, name := range r.GreaterSuccessEffects {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func sortNamesFold(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

package descriptor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forgelight/forge-api/internal/entities"
)

// vrpConflicts reports whether two VRP kinds are mutually exclusive for the
// same damage type. Vulnerability conflicts with both resistance and
// protection; resistance and protection can coexist.
func vrpConflicts(a, b entities.VRPKind) bool {
	if a == b {
		return false
	}
	return a == entities.VRPVulnerability || b == entities.VRPVulnerability
}

// resolveVRP applies entries in order: invalid entries (non-positive
// magnitude, empty damage type) are dropped, same-kind entries for a damage
// type merge by keeping the maximum magnitude, and a conflicting
// opposite-polarity entry discards whatever it conflicts with. The survivors
// are sorted by (kind, damage type, magnitude).
func resolveVRP(entries []entities.VRPEntry) []entities.VRPEntry {
	var resolved []entities.VRPEntry

	for _, entry := range entries {
		kind := entities.VRPKind(strings.ToUpper(string(entry.Kind)))
		damageType := strings.TrimSpace(entry.DamageType)
		if entry.Magnitude <= 0 || damageType == "" {
			continue
		}

		magnitude := entry.Magnitude
		kept := resolved[:0]
		for _, existing := range resolved {
			if existing.DamageType != damageType {
				kept = append(kept, existing)
				continue
			}
			if existing.Kind == kind {
				if existing.Magnitude > magnitude {
					magnitude = existing.Magnitude
				}
				continue
			}
			if vrpConflicts(existing.Kind, kind) {
				continue
			}
			kept = append(kept, existing)
		}

		resolved = append(kept, entities.VRPEntry{
			Kind:       kind,
			Magnitude:  magnitude,
			DamageType: damageType,
		})
	}

	sort.Slice(resolved, func(i, j int) bool {
		if resolved[i].Kind != resolved[j].Kind {
			return resolved[i].Kind < resolved[j].Kind
		}
		if resolved[i].DamageType != resolved[j].DamageType {
			return resolved[i].DamageType < resolved[j].DamageType
		}
		return resolved[i].Magnitude < resolved[j].Magnitude
	})

	return resolved
}

// vrpText renders the kind-specific wording for one resolved entry.
func vrpText(entry entities.VRPEntry) string {
	switch entry.Kind {
	case entities.VRPVulnerability:
		return fmt.Sprintf("When defending against %s wounds, suffer -%d on your Defence roll.",
			entry.DamageType, entry.Magnitude)
	case entities.VRPResistance:
		return fmt.Sprintf("When defending against %s wounds, gain +%d on your Defence roll.",
			entry.DamageType, entry.Magnitude)
	default:
		return fmt.Sprintf("When defending against %s wounds, gain +%d dice on your Defence roll.",
			entry.DamageType, entry.Magnitude)
	}
}

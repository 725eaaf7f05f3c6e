package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgelight/forge-api/internal/engine/descriptor"
	"github.com/forgelight/forge-api/internal/entities"
)

func buildVRP(t *testing.T, entries []entities.VRPEntry) []string {
	t.Helper()
	input := &descriptor.Input{
		Config: entities.ItemConfig{Type: entities.ItemTypeArmor, VRP: entries},
	}
	result := descriptor.Build(input)
	if len(result.Sections) == 0 {
		return nil
	}
	require.Equal(t, "vrp", result.Sections[0].ID)
	texts := make([]string, 0, len(result.Sections[0].Lines))
	for _, line := range result.Sections[0].Lines {
		texts = append(texts, line.Text)
	}
	return texts
}

func TestVRPWording(t *testing.T) {
	texts := buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPVulnerability, Magnitude: 2, DamageType: "Fire"},
		{Kind: entities.VRPResistance, Magnitude: 3, DamageType: "Frost"},
		{Kind: entities.VRPProtection, Magnitude: 1, DamageType: "Dread"},
	})

	assert.Equal(t, []string{
		"When defending against Dread wounds, gain +1 dice on your Defence roll.",
		"When defending against Frost wounds, gain +3 on your Defence roll.",
		"When defending against Fire wounds, suffer -2 on your Defence roll.",
	}, texts)
}

// Opposite-polarity kinds are mutually exclusive per damage type: whichever
// is applied later discards the earlier one.
func TestVRPConflictLaterEntryWins(t *testing.T) {
	vulnThenResist := buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPVulnerability, Magnitude: 2, DamageType: "Fire"},
		{Kind: entities.VRPResistance, Magnitude: 3, DamageType: "Fire"},
	})
	assert.Equal(t, []string{
		"When defending against Fire wounds, gain +3 on your Defence roll.",
	}, vulnThenResist)

	resistThenVuln := buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPResistance, Magnitude: 3, DamageType: "Fire"},
		{Kind: entities.VRPVulnerability, Magnitude: 2, DamageType: "Fire"},
	})
	assert.Equal(t, []string{
		"When defending against Fire wounds, suffer -2 on your Defence roll.",
	}, resistThenVuln)
}

func TestVRPSameKindKeepsMaxMagnitude(t *testing.T) {
	texts := buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPResistance, Magnitude: 1, DamageType: "Fire"},
		{Kind: entities.VRPResistance, Magnitude: 3, DamageType: "Fire"},
		{Kind: entities.VRPResistance, Magnitude: 2, DamageType: "Fire"},
	})
	assert.Equal(t, []string{
		"When defending against Fire wounds, gain +3 on your Defence roll.",
	}, texts)
}

// Resistance and protection do not conflict; both survive for one type.
func TestVRPResistanceAndProtectionCoexist(t *testing.T) {
	texts := buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPResistance, Magnitude: 2, DamageType: "Fire"},
		{Kind: entities.VRPProtection, Magnitude: 1, DamageType: "Fire"},
	})
	assert.Len(t, texts, 2)
}

// Triple conflict applied in order: a vulnerability wipes both gain-polarity
// entries, and a later gain-polarity entry wipes only the vulnerability.
func TestVRPTripleConflictSequence(t *testing.T) {
	texts := buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPResistance, Magnitude: 3, DamageType: "Fire"},
		{Kind: entities.VRPProtection, Magnitude: 1, DamageType: "Fire"},
		{Kind: entities.VRPVulnerability, Magnitude: 2, DamageType: "Fire"},
	})
	assert.Equal(t, []string{
		"When defending against Fire wounds, suffer -2 on your Defence roll.",
	}, texts)

	texts = buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPVulnerability, Magnitude: 2, DamageType: "Fire"},
		{Kind: entities.VRPResistance, Magnitude: 3, DamageType: "Fire"},
		{Kind: entities.VRPProtection, Magnitude: 1, DamageType: "Fire"},
	})
	assert.Equal(t, []string{
		"When defending against Fire wounds, gain +1 dice on your Defence roll.",
		"When defending against Fire wounds, gain +3 on your Defence roll.",
	}, texts)
}

func TestVRPInvalidEntriesDropped(t *testing.T) {
	texts := buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPResistance, Magnitude: 0, DamageType: "Fire"},
		{Kind: entities.VRPResistance, Magnitude: -1, DamageType: "Frost"},
		{Kind: entities.VRPResistance, Magnitude: 2, DamageType: "   "},
	})
	assert.Empty(t, texts)
}

func TestVRPLowercaseKindNormalized(t *testing.T) {
	texts := buildVRP(t, []entities.VRPEntry{
		{Kind: entities.VRPKind("resistance"), Magnitude: 2, DamageType: "Fire"},
	})
	assert.Equal(t, []string{
		"When defending against Fire wounds, gain +2 on your Defence roll.",
	}, texts)
}

package descriptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgelight/forge-api/internal/engine/descriptor"
	"github.com/forgelight/forge-api/internal/entities"
)

func weaponInput() *descriptor.Input {
	return &descriptor.Input{
		Config: entities.ItemConfig{
			Type: entities.ItemTypeWeapon,
			Modifiers: []entities.AttributeModifier{
				{Attribute: "Might", Magnitude: 1},
				{Attribute: "Grace", Magnitude: 2},
			},
			Ranges: []entities.AttackRange{
				{
					Kind:             entities.RangeMelee,
					Enabled:          true,
					Skill:            "Might",
					PhysicalStrength: 3,
					Targets:          1,
					DamageTypes: []entities.DamageTypeRef{
						{Name: "Slashing", Mode: entities.DamageModePhysical},
					},
					GreaterSuccessEffects: []string{"Bleed"},
				},
			},
			Attributes: []entities.SelectedAttribute{
				{Name: "Reload 5"},
				{Name: "Keen"},
			},
		},
		AttributeTemplates: map[string]string{
			"Reload": "spend [AttributeValue] actions to reload.",
			"Keen":   "Keen: greater successes count twice against [DamageTypes] resistance.",
		},
	}
}

func TestBuildDeterministic(t *testing.T) {
	input := weaponInput()
	first := descriptor.Build(input)
	second := descriptor.Build(input)
	assert.Equal(t, first, second)
}

func TestBuildSectionOrdering(t *testing.T) {
	result := descriptor.Build(weaponInput())
	require.NotEmpty(t, result.Sections)

	for i := 1; i < len(result.Sections); i++ {
		assert.Less(t, result.Sections[i-1].Order, result.Sections[i].Order)
	}

	ids := make([]string, 0, len(result.Sections))
	for _, s := range result.Sections {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"modifiers", "attributes", "attack-actions"}, ids)
}

func TestBuildModifierDedupe(t *testing.T) {
	input := &descriptor.Input{
		Config: entities.ItemConfig{
			Type: entities.ItemTypeWeapon,
			Modifiers: []entities.AttributeModifier{
				{Attribute: "Might", Magnitude: 1},
				{Attribute: "Wits", Magnitude: 3},
				{Attribute: "Might", Magnitude: 2}, // last write wins
			},
		},
	}

	result := descriptor.Build(input)
	require.Len(t, result.Sections, 1)
	require.Len(t, result.Sections[0].Lines, 1)

	line := result.Sections[0].Lines[0]
	assert.Equal(t, descriptor.LineGlobalModifiers, line.Kind)
	assert.Equal(t, []entities.AttributeModifier{
		{Attribute: "Might", Magnitude: 2},
		{Attribute: "Wits", Magnitude: 3},
	}, line.Modifiers)
}

func TestBuildAttributeSortIndependentOfInputOrder(t *testing.T) {
	templates := map[string]string{
		"Brutal": "add [AttributeValue] dice on a critical.",
		"Reload": "spend [AttributeValue] actions to reload.",
	}

	forward := &descriptor.Input{
		Config: entities.ItemConfig{
			Type: entities.ItemTypeWeapon,
			Attributes: []entities.SelectedAttribute{
				{Name: "Brutal 2"}, {Name: "Reload 5"}, {Name: "Brutal 1"},
			},
		},
		AttributeTemplates: templates,
	}
	reversed := &descriptor.Input{
		Config: entities.ItemConfig{
			Type: entities.ItemTypeWeapon,
			Attributes: []entities.SelectedAttribute{
				{Name: "Reload 5"}, {Name: "Brutal 1"}, {Name: "Brutal 2"},
			},
		},
		AttributeTemplates: templates,
	}

	assert.Equal(t, descriptor.Build(forward), descriptor.Build(reversed))

	result := descriptor.Build(forward)
	require.Len(t, result.Sections, 1)
	texts := make([]string, 0, 3)
	for _, line := range result.Sections[0].Lines {
		texts = append(texts, line.Text)
	}
	assert.Equal(t, []string{
		"Brutal: add 1 dice on a critical.",
		"Brutal: add 2 dice on a critical.",
		"Reload: spend 5 actions to reload.",
	}, texts)
}

func TestBuildAttributeMissingTemplateWarns(t *testing.T) {
	input := &descriptor.Input{
		Config: entities.ItemConfig{
			Type:       entities.ItemTypeWeapon,
			Attributes: []entities.SelectedAttribute{{Name: "Mystery 3"}},
		},
		AttributeTemplates: map[string]string{},
	}

	result := descriptor.Build(input)
	assert.Empty(t, result.Sections)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Mystery 3")
}

func TestBuildAttributeNoDoublePrefix(t *testing.T) {
	input := &descriptor.Input{
		Config: entities.ItemConfig{
			Type:       entities.ItemTypeWeapon,
			Attributes: []entities.SelectedAttribute{{Name: "Keen"}},
		},
		AttributeTemplates: map[string]string{
			"Keen": "keen: ignores cover.",
		},
	}

	result := descriptor.Build(input)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "keen: ignores cover.", result.Sections[0].Lines[0].Text)
}

func TestBuildAttributeLeftoverTokenWarns(t *testing.T) {
	input := &descriptor.Input{
		Config: entities.ItemConfig{
			Type:       entities.ItemTypeWeapon,
			Attributes: []entities.SelectedAttribute{{Name: "Odd"}},
		},
		AttributeTemplates: map[string]string{
			"Odd": "does something with [NoSuchToken].",
		},
	}

	result := descriptor.Build(input)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Odd: does something with [NoSuchToken].", result.Sections[0].Lines[0].Text)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "NoSuchToken")
}

func TestBuildAttackActionGating(t *testing.T) {
	base := func() entities.AttackRange {
		return entities.AttackRange{
			Kind:    entities.RangeMelee,
			Enabled: true,
			Targets: 1,
			DamageTypes: []entities.DamageTypeRef{
				{Name: "Slashing", Mode: entities.DamageModePhysical},
			},
		}
	}

	testCases := []struct {
		name      string
		mutate    func(r *entities.AttackRange)
		wantLines int
	}{
		{
			name:      "zero strength emits nothing",
			mutate:    func(r *entities.AttackRange) {},
			wantLines: 0,
		},
		{
			name:      "disabled emits nothing",
			mutate:    func(r *entities.AttackRange) { r.Enabled = false; r.PhysicalStrength = 3 },
			wantLines: 0,
		},
		{
			name:      "no damage types emits nothing",
			mutate:    func(r *entities.AttackRange) { r.PhysicalStrength = 3; r.DamageTypes = nil },
			wantLines: 0,
		},
		{
			name: "mental-only strength with physical damage type emits nothing",
			mutate: func(r *entities.AttackRange) {
				r.MentalStrength = 2
			},
			wantLines: 0,
		},
		{
			name:      "positive strength emits one line",
			mutate:    func(r *entities.AttackRange) { r.PhysicalStrength = 3 },
			wantLines: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := base()
			tc.mutate(&r)
			input := &descriptor.Input{
				Config: entities.ItemConfig{
					Type:   entities.ItemTypeWeapon,
					Ranges: []entities.AttackRange{r},
				},
			}

			result := descriptor.Build(input)
			if tc.wantLines == 0 {
				assert.Empty(t, result.Sections)
				return
			}

			require.Len(t, result.Sections, 1)
			require.Len(t, result.Sections[0].Lines, tc.wantLines)
			line := result.Sections[0].Lines[0]
			require.Equal(t, descriptor.LineAttackAction, line.Kind)
			require.Len(t, line.Attack.Damage, 1)
			assert.Equal(t, descriptor.DamageEntry{
				Amount:     3,
				Mode:       entities.DamageModePhysical,
				DamageType: "Slashing",
			}, line.Attack.Damage[0])
		})
	}
}

func TestBuildAttackRangesAreIndependent(t *testing.T) {
	input := &descriptor.Input{
		Config: entities.ItemConfig{
			Type: entities.ItemTypeWeapon,
			Ranges: []entities.AttackRange{
				{
					Kind:             entities.RangeMelee,
					Enabled:          true,
					PhysicalStrength: 3,
					Targets:          2,
					DamageTypes:      []entities.DamageTypeRef{{Name: "Slashing", Mode: entities.DamageModePhysical}},
				},
				{
					Kind:             entities.RangeRanged,
					Enabled:          true,
					PhysicalStrength: 2,
					Targets:          1,
					Distance:         30,
					DamageTypes:      []entities.DamageTypeRef{{Name: "Piercing", Mode: entities.DamageModePhysical}},
				},
			},
		},
	}

	result := descriptor.Build(input)
	require.Len(t, result.Sections, 1)
	assert.Len(t, result.Sections[0].Lines, 2)
}

func TestBuildAoeRequiresShape(t *testing.T) {
	r := entities.AttackRange{
		Kind:             entities.RangeAoe,
		Enabled:          true,
		PhysicalStrength: 2,
		AoeCount:         1,
		AoeSize:          20,
		DamageTypes:      []entities.DamageTypeRef{{Name: "Fire", Mode: entities.DamageModePhysical}},
	}

	input := &descriptor.Input{Config: entities.ItemConfig{Type: entities.ItemTypeWeapon, Ranges: []entities.AttackRange{r}}}
	assert.Empty(t, descriptor.Build(input).Sections)

	r.AoeShape = entities.ShapeSphere
	input = &descriptor.Input{Config: entities.ItemConfig{Type: entities.ItemTypeWeapon, Ranges: []entities.AttackRange{r}}}
	assert.Len(t, descriptor.Build(input).Sections, 1)
}

func TestBuildDamageTypeDedupeCaseInsensitive(t *testing.T) {
	input := &descriptor.Input{
		Config: entities.ItemConfig{
			Type: entities.ItemTypeWeapon,
			Ranges: []entities.AttackRange{{
				Kind:             entities.RangeMelee,
				Enabled:          true,
				PhysicalStrength: 2,
				MentalStrength:   1,
				Targets:          1,
				DamageTypes: []entities.DamageTypeRef{
					{Name: "fire", Mode: entities.DamageModePhysical},
					{Name: "Fire", Mode: entities.DamageModePhysical},
					{Name: "Dread", Mode: entities.DamageModeMental},
				},
			}},
		},
	}

	result := descriptor.Build(input)
	require.Len(t, result.Sections, 1)
	line := result.Sections[0].Lines[0]
	require.Equal(t, descriptor.LineAttackAction, line.Kind)
	assert.Equal(t, []descriptor.DamageEntry{
		{Amount: 1, Mode: entities.DamageModeMental, DamageType: "Dread"},
		{Amount: 2, Mode: entities.DamageModePhysical, DamageType: "fire"},
	}, line.Attack.Damage)
}

func TestBuildArmorDefenceSections(t *testing.T) {
	testCases := []struct {
		name     string
		ppv, mpv int32
		wantText string
	}{
		{
			name: "both values combine",
			ppv:  3, mpv: 2,
			wantText: "Whilst wearing this armor, increase your Physical Protection by 3 and your Mental Protection by 2.",
		},
		{
			name: "physical only",
			ppv:  3,
			wantText: "Whilst wearing this armor, increase your Physical Protection by 3.",
		},
		{
			name: "mental only",
			mpv:  2,
			wantText: "Whilst wearing this armor, increase your Mental Protection by 2.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := &descriptor.Input{
				Config: entities.ItemConfig{Type: entities.ItemTypeArmor, PPV: tc.ppv, MPV: tc.mpv},
			}
			result := descriptor.Build(input)
			require.Len(t, result.Sections, 1)
			assert.Equal(t, "defence", result.Sections[0].ID)
			require.Len(t, result.Sections[0].Lines, 1)
			assert.Equal(t, tc.wantText, result.Sections[0].Lines[0].Text)
		})
	}
}

// Armor with PPV=3, MPV=0 and nothing else yields exactly the Defence
// section and nothing more.
func TestBuildArmorEndToEndScenario(t *testing.T) {
	input := &descriptor.Input{
		Config: entities.ItemConfig{Type: entities.ItemTypeArmor, PPV: 3},
	}

	result := descriptor.Build(input)
	require.Len(t, result.Sections, 1)
	section := result.Sections[0]
	assert.Equal(t, "defence", section.ID)
	require.Len(t, section.Lines, 1)
	assert.Equal(t, "Whilst wearing this armor, increase your Physical Protection by 3.", section.Lines[0].Text)
	assert.Empty(t, result.Warnings)
}

func TestBuildZeroProtectionEmitsNoDefence(t *testing.T) {
	input := &descriptor.Input{Config: entities.ItemConfig{Type: entities.ItemTypeArmor}}
	assert.Empty(t, descriptor.Build(input).Sections)
}

func TestBuildGreaterDefenceEffects(t *testing.T) {
	input := &descriptor.Input{
		Config: entities.ItemConfig{
			Type:           entities.ItemTypeShield,
			DefenceEffects: []string{"Stagger", "Brace", "Stagger"},
		},
	}

	result := descriptor.Build(input)
	require.Len(t, result.Sections, 1)
	section := result.Sections[0]
	assert.Equal(t, "greater-defence", section.ID)
	require.Len(t, section.Lines, 2)
	assert.Equal(t, "Greater successes on Defence rolls grant you 1 stack of Brace.", section.Lines[0].Text)
	assert.Equal(t, "Greater successes on Defence rolls grant you 1 stack of Stagger.", section.Lines[1].Text)
}

func TestBuildVRPSectionsOnlyForDefensiveItems(t *testing.T) {
	vrp := []entities.VRPEntry{{Kind: entities.VRPResistance, Magnitude: 2, DamageType: "Fire"}}

	weapon := &descriptor.Input{Config: entities.ItemConfig{Type: entities.ItemTypeWeapon, VRP: vrp}}
	assert.Empty(t, descriptor.Build(weapon).Sections)

	armor := &descriptor.Input{Config: entities.ItemConfig{Type: entities.ItemTypeArmor, VRP: vrp}}
	result := descriptor.Build(armor)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "vrp", result.Sections[0].ID)
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	input := weaponInput()
	modifiersBefore := append([]entities.AttributeModifier(nil), input.Config.Modifiers...)
	attributesBefore := append([]entities.SelectedAttribute(nil), input.Config.Attributes...)

	descriptor.Build(input)

	assert.Equal(t, modifiersBefore, input.Config.Modifiers)
	assert.Equal(t, attributesBefore, input.Config.Attributes)
}

package descriptor

import "github.com/forgelight/forge-api/internal/entities"

// Input is everything the descriptor build needs: the live item
// configuration plus the authored descriptor templates for the item's
// attribute kind, keyed by attribute base name. Build never mutates it.
type Input struct {
	Config             entities.ItemConfig
	AttributeTemplates map[string]string
}

// Result is an ordered list of sections plus any diagnostic warnings
// collected during the build. Warnings never block line emission.
type Result struct {
	Sections []Section
	Warnings []string
}

// Section groups lines under a fixed (id, title, order) triple. Sections are
// emitted only when non-empty and are sorted by Order ascending.
type Section struct {
	ID    string
	Title string
	Order int
	Lines []Line
}

// LineKind tags the variant of a descriptor line
type LineKind string

// Line kinds
const (
	LineGlobalModifiers LineKind = "GLOBAL_ATTRIBUTE_MODIFIERS"
	LineWeaponAttribute LineKind = "WEAPON_ATTRIBUTE"
	LineText            LineKind = "TEXT"
	LineAttackAction    LineKind = "ATTACK_ACTION"
)

// Line is one renderable fact. Exactly one of the variant fields is set,
// according to Kind. ItemType carries the wording context ("wielding this
// weapon" vs "wearing this armor") for the structured variants.
type Line struct {
	Kind      LineKind
	ItemType  entities.ItemType
	Modifiers []entities.AttributeModifier
	Text      string
	Attack    *AttackAction
}

// AttackAction is one attack-action line: targeting specs plus the damage
// entries and greater-success effects it inflicts
type AttackAction struct {
	Specs          []RangeSpec
	Damage         []DamageEntry
	GreaterSuccess []string
	Skill          string
}

// RangeSpec is the targeting/geometry of one attack range
type RangeSpec struct {
	Kind     entities.RangeKind
	Targets  int32
	Distance int32
	AoeCount int32
	AoeShape entities.AoeShape
	AoeSize  int32
}

// DamageEntry is one amount/mode/type triple inflicted per success
type DamageEntry struct {
	Amount     int32
	Mode       entities.DamageMode
	DamageType string
}

// Section ordering. Sections always render in this order regardless of the
// order the build appends them.
const (
	orderModifiers      = 10
	orderVRP            = 15
	orderDefence        = 20
	orderGreaterDefence = 30
	orderAttributes     = 40
	orderAttackActions  = 50
)

// Package entities defines the domain types for the forge API
package entities

// ItemType identifies the kind of item being forged
type ItemType string

// Item types
const (
	ItemTypeWeapon ItemType = "WEAPON"
	ItemTypeArmor  ItemType = "ARMOR"
	ItemTypeShield ItemType = "SHIELD"
	ItemTypeItem   ItemType = "ITEM"
)

// PossessionClause returns the "whilst wielding/wearing" phrase used at the
// start of passive-benefit sentences for this item type.
func (t ItemType) PossessionClause() string {
	switch t {
	case ItemTypeWeapon:
		return "Whilst wielding this weapon"
	case ItemTypeShield:
		return "Whilst wielding this shield"
	case ItemTypeArmor:
		return "Whilst wearing this armor"
	default:
		return "Whilst wearing this item"
	}
}

// Noun returns the lower-cased noun for this item type ("weapon", "armor", ...)
func (t ItemType) Noun() string {
	switch t {
	case ItemTypeWeapon:
		return "weapon"
	case ItemTypeArmor:
		return "armor"
	case ItemTypeShield:
		return "shield"
	default:
		return "item"
	}
}

// DamageMode distinguishes physical from mental wounds
type DamageMode string

// Damage modes
const (
	DamageModePhysical DamageMode = "PHYSICAL"
	DamageModeMental   DamageMode = "MENTAL"
)

// RangeKind identifies one of the three independent attack ranges
type RangeKind string

// Range kinds
const (
	RangeMelee  RangeKind = "MELEE"
	RangeRanged RangeKind = "RANGED"
	RangeAoe    RangeKind = "AOE"
)

// AoeShape is the geometry of an area attack
type AoeShape string

// Area shapes
const (
	ShapeSphere AoeShape = "SPHERE"
	ShapeCone   AoeShape = "CONE"
	ShapeLine   AoeShape = "LINE"
)

// VRPKind is a vulnerability/resistance/protection effect kind
type VRPKind string

// VRP kinds
const (
	VRPVulnerability VRPKind = "VULNERABILITY"
	VRPResistance    VRPKind = "RESISTANCE"
	VRPProtection    VRPKind = "PROTECTION"
)

// AttributeModifier is a signed bonus to a named character attribute granted
// while the item is held or worn
type AttributeModifier struct {
	Attribute string `json:"attribute"`
	Magnitude int32  `json:"magnitude"`
}

// DamageTypeRef names a damage type together with its wound mode
type DamageTypeRef struct {
	Name string     `json:"name"`
	Mode DamageMode `json:"mode"`
}

// AttackRange is the configuration of one attack range on a weapon or shield.
// Each range is independent; an item may enable any combination of the three.
type AttackRange struct {
	Kind                  RangeKind       `json:"kind"`
	Enabled               bool            `json:"enabled"`
	Skill                 string          `json:"skill,omitempty"`
	PhysicalStrength      int32           `json:"physical_strength"`
	MentalStrength        int32           `json:"mental_strength"`
	DamageTypes           []DamageTypeRef `json:"damage_types,omitempty"`
	Targets               int32           `json:"targets"`
	Distance              int32           `json:"distance"` // feet, ranged and aoe only
	AoeCount              int32           `json:"aoe_count,omitempty"`
	AoeShape              AoeShape        `json:"aoe_shape,omitempty"`
	AoeSize               int32           `json:"aoe_size,omitempty"` // feet
	GreaterSuccessEffects []string        `json:"greater_success_effects,omitempty"`
}

// VRPEntry is one per-damage-type defensive modifier on armor or a shield
type VRPEntry struct {
	Kind       VRPKind `json:"kind"`
	Magnitude  int32   `json:"magnitude"`
	DamageType string  `json:"damage_type"`
}

// SelectedAttribute is one weapon/armor/shield attribute chosen for an item.
// The name may carry a trailing numeric value ("Reload 5"). Range is set only
// for weapon attributes whose descriptor is parameterized by a chosen range.
type SelectedAttribute struct {
	Name  string    `json:"name"`
	Range RangeKind `json:"range,omitempty"`
}

// ItemConfig is the complete forge configuration of a single item. It is the
// input to both the descriptor engine and the cost calculator and is never
// mutated by either.
type ItemConfig struct {
	Type              ItemType            `json:"type"`
	TypeLabel         string              `json:"type_label,omitempty"` // e.g. "Longsword"
	Size              string              `json:"size,omitempty"`       // weapon/shield size label
	Location          string              `json:"location,omitempty"`   // armor/item location label
	Modifiers         []AttributeModifier `json:"modifiers,omitempty"`
	Ranges            []AttackRange       `json:"ranges,omitempty"`
	PPV               int32               `json:"ppv,omitempty"`
	MPV               int32               `json:"mpv,omitempty"`
	PhysicalAura      int32               `json:"physical_aura,omitempty"`
	MentalAura        int32               `json:"mental_aura,omitempty"`
	DefenceEffects    []string            `json:"defence_effects,omitempty"`
	Attributes        []SelectedAttribute `json:"attributes,omitempty"`
	WardingOptions    []string            `json:"warding_options,omitempty"`
	SanctifiedOptions []string            `json:"sanctified_options,omitempty"`
	VRP               []VRPEntry          `json:"vrp,omitempty"`
}

// Range returns the configured block for the given range kind, or nil
func (c *ItemConfig) Range(kind RangeKind) *AttackRange {
	for i := range c.Ranges {
		if c.Ranges[i].Kind == kind {
			return &c.Ranges[i]
		}
	}
	return nil
}

// Item is a persisted forged item
type Item struct {
	ID         string      `json:"id"`
	DirectorID string      `json:"director_id"`
	Name       string      `json:"name"`
	Rarity     string      `json:"rarity"`
	Level      int32       `json:"level"`
	Config     ItemConfig  `json:"config"`
	Totals     *ForgeTotal `json:"totals,omitempty"`
	CreatedAt  int64       `json:"created_at"`
	UpdatedAt  int64       `json:"updated_at"`
}

// ForgeTotal is the point-budget snapshot stored alongside an item
type ForgeTotal struct {
	TotalFP      float64 `json:"total_fp"`
	SpentFP      float64 `json:"spent_fp"`
	RemainingFP  float64 `json:"remaining_fp"`
	PercentSpent float64 `json:"percent_spent"`
	Multiplier   float64 `json:"multiplier"`
}

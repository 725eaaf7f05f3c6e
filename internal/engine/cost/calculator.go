// Package cost implements the forge-point pricing pipeline: a rule-driven
// calculator that converts an item configuration into a spendable-points
// total via config and cost table lookups. Like the descriptor engine it is
// pure and runs on every keystroke of the forge form.
package cost

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/forgelight/forge-api/internal/entities"
)

// Config table categories
const (
	ConfigRarity           = "RARITY"
	ConfigWeaponMultiplier = "WEAPON_MULTIPLIER"
	ConfigArmorMultiplier  = "ARMOR_MULTIPLIER"
	ConfigItemMultiplier   = "ITEM_MULTIPLIER"
)

// Cost table categories
const (
	CategoryAttackTargets     = "ATTACK_TARGETS"
	CategoryAttackRange       = "ATTACK_RANGE"
	CategoryAttackShape       = "ATTACK_SHAPE"
	CategoryAoeCount          = "AOE_COUNT"
	CategoryAttackPotency     = "ATTACK_POTENCY"
	CategoryDamageTypes       = "DAMAGE_TYPES"
	CategoryGreaterSuccess    = "GREATER_SUCCESS"
	CategoryAttributeModifier = "ATTRIBUTE_MODIFIER"
	CategoryProtection        = "PROTECTION"
	CategoryAura              = "AURA"
	CategoryItemAttribute     = "ITEM_ATTRIBUTE"
	CategoryDefenceEffect     = "DEFENCE_EFFECT"
	CategoryWarding           = "WARDING"
	CategorySanctified        = "SANCTIFIED"
	CategoryVRP               = "VRP"
)

// Values is the live form state the calculator prices.
type Values struct {
	Level  int32
	Rarity string
	Config entities.ItemConfig
}

// Context carries the type-dependent multiplier keys.
type Context struct {
	Type      entities.ItemType
	TypeLabel string
	Size      string
	Location  string
}

// CalculateTotals prices the configuration. Overspend is representable:
// RemainingFP may go negative, while PercentSpent clamps to [0, 100].
func CalculateTotals(values *Values, configRows []entities.ConfigRow, costRows []entities.CostRow, ctx *Context) *entities.ForgeTotal {
	rarityScalar, ok := ConfigMultiplier(configRows, ConfigRarity, values.Rarity, "")
	if !ok {
		rarityScalar = 1
	}
	totalFP := float64(values.Level) * rarityScalar

	multiplier := typeMultiplier(configRows, ctx)

	raw := attackCost(costRows, &values.Config) + additiveCost(costRows, &values.Config, ctx)
	spentFP := raw * multiplier
	remainingFP := totalFP - spentFP

	percent := 0.0
	if totalFP > 0 {
		percent = spentFP / totalFP * 100
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
	}

	return &entities.ForgeTotal{
		TotalFP:      totalFP,
		SpentFP:      spentFP,
		RemainingFP:  remainingFP,
		PercentSpent: percent,
		Multiplier:   multiplier,
	}
}

// typeMultiplier resolves the type-dependent spend multiplier: weapons and
// shields key on (type label, size), armor and items on their location.
func typeMultiplier(rows []entities.ConfigRow, ctx *Context) float64 {
	var value float64
	var ok bool
	switch ctx.Type {
	case entities.ItemTypeWeapon, entities.ItemTypeShield:
		value, ok = ConfigMultiplier(rows, ConfigWeaponMultiplier, ctx.TypeLabel, ctx.Size)
	case entities.ItemTypeArmor:
		value, ok = ConfigMultiplier(rows, ConfigArmorMultiplier, ctx.Location, "")
	default:
		value, ok = ConfigMultiplier(rows, ConfigItemMultiplier, ctx.Location, "")
	}
	if !ok {
		return 1
	}
	return value
}

// attackCost sums the per-range attack lines. Each enabled range prices as
// max(1, targets+choice) x (potency+types+greater successes): a
// multiplicative base-times-effect model, with ranges summed.
func attackCost(rows []entities.CostRow, cfg *entities.ItemConfig) float64 {
	var total float64
	for i := range cfg.Ranges {
		r := &cfg.Ranges[i]
		if !r.Enabled {
			continue
		}
		total += RangeLineCost(rows, r)
	}
	return total
}

// RangeLineCost prices one attack range. Exported so the additivity of
// per-range contributions is independently testable.
func RangeLineCost(rows []entities.CostRow, r *entities.AttackRange) float64 {
	kind := string(r.Kind)

	lineTarget := Lookup(rows, Query{
		Category:  CategoryAttackTargets,
		Selector1: kind,
		Selector3: itoa(r.Targets),
		Magnitude: float64(r.Targets),
	})

	var lineChoice float64
	if r.Kind == entities.RangeRanged || r.Kind == entities.RangeAoe {
		lineChoice += Lookup(rows, Query{
			Category:  CategoryAttackRange,
			Selector1: kind,
			Selector3: itoa(r.Distance),
			Magnitude: float64(r.Distance),
		})
	}
	if r.Kind == entities.RangeAoe {
		lineChoice += Lookup(rows, Query{
			Category:  CategoryAttackShape,
			Selector1: string(r.AoeShape),
			Selector3: itoa(r.AoeSize),
			Magnitude: float64(r.AoeSize),
		})
		if r.AoeCount > 1 {
			lineChoice += Lookup(rows, Query{
				Category:  CategoryAoeCount,
				Selector1: string(r.AoeShape),
				Selector3: itoa(r.AoeCount),
				Magnitude: float64(r.AoeCount),
			})
		}
	}

	var linePotency float64
	if r.PhysicalStrength > 0 {
		linePotency += Lookup(rows, Query{
			Category:  CategoryAttackPotency,
			Selector1: kind,
			Selector2: string(entities.DamageModePhysical),
			Selector3: itoa(r.PhysicalStrength),
			Magnitude: float64(r.PhysicalStrength),
		})
	}
	if r.MentalStrength > 0 {
		linePotency += Lookup(rows, Query{
			Category:  CategoryAttackPotency,
			Selector1: kind,
			Selector2: string(entities.DamageModeMental),
			Selector3: itoa(r.MentalStrength),
			Magnitude: float64(r.MentalStrength),
		})
	}

	var lineType float64
	if count := countDamageTypes(r); count > 0 {
		lineType = Lookup(rows, Query{
			Category:  CategoryDamageTypes,
			Selector1: kind,
			Selector3: itoa(count),
			Magnitude: float64(count),
		})
	}

	var lineGS float64
	for _, effect := range r.GreaterSuccessEffects {
		lineGS += Lookup(rows, Query{
			Category:  CategoryGreaterSuccess,
			Selector1: effect,
			Magnitude: 1,
		})
	}

	base := lineTarget + lineChoice
	if base < 1 {
		base = 1
	}
	return base * (linePotency + lineType + lineGS)
}

// additiveCost sums every non-attack contribution.
func additiveCost(rows []entities.CostRow, cfg *entities.ItemConfig, ctx *Context) float64 {
	var total float64

	// modifiers dedupe by name with the last write winning, matching the
	// descriptor engine
	byName := make(map[string]int32)
	var order []string
	for _, mod := range cfg.Modifiers {
		if _, seen := byName[mod.Attribute]; !seen {
			order = append(order, mod.Attribute)
		}
		byName[mod.Attribute] = mod.Magnitude
	}
	for _, name := range order {
		magnitude := byName[name]
		total += Lookup(rows, Query{
			Category:  CategoryAttributeModifier,
			Selector1: name,
			Selector3: itoa(magnitude),
			Magnitude: float64(magnitude),
		})
	}

	if cfg.PPV > 0 {
		total += Lookup(rows, Query{
			Category:  CategoryProtection,
			Selector1: "PPV",
			Selector3: itoa(cfg.PPV),
			Magnitude: float64(cfg.PPV),
		})
	}
	if cfg.MPV > 0 {
		total += Lookup(rows, Query{
			Category:  CategoryProtection,
			Selector1: "MPV",
			Selector3: itoa(cfg.MPV),
			Magnitude: float64(cfg.MPV),
		})
	}
	if cfg.PhysicalAura > 0 {
		total += Lookup(rows, Query{
			Category:  CategoryAura,
			Selector1: string(entities.DamageModePhysical),
			Selector3: itoa(cfg.PhysicalAura),
			Magnitude: float64(cfg.PhysicalAura),
		})
	}
	if cfg.MentalAura > 0 {
		total += Lookup(rows, Query{
			Category:  CategoryAura,
			Selector1: string(entities.DamageModeMental),
			Selector3: itoa(cfg.MentalAura),
			Magnitude: float64(cfg.MentalAura),
		})
	}

	for _, attr := range cfg.Attributes {
		base, value, hasValue := splitTrailingValue(attr.Name)
		q := Query{
			Category:  CategoryItemAttribute,
			Selector1: string(ctx.Type),
			Selector2: base,
			Magnitude: 1,
		}
		if hasValue {
			q.Selector3 = itoa(value)
			q.Magnitude = float64(value)
		}
		total += Lookup(rows, q)
	}

	for _, effect := range cfg.DefenceEffects {
		total += Lookup(rows, Query{Category: CategoryDefenceEffect, Selector1: effect, Magnitude: 1})
	}
	for _, option := range cfg.WardingOptions {
		total += Lookup(rows, Query{Category: CategoryWarding, Selector1: option, Magnitude: 1})
	}
	for _, option := range cfg.SanctifiedOptions {
		total += Lookup(rows, Query{Category: CategorySanctified, Selector1: option, Magnitude: 1})
	}

	for _, entry := range cfg.VRP {
		if entry.Magnitude <= 0 || entry.DamageType == "" {
			continue
		}
		total += Lookup(rows, Query{
			Category:  CategoryVRP,
			Selector1: strings.ToUpper(string(entry.Kind)),
			Selector2: entry.DamageType,
			Selector3: itoa(entry.Magnitude),
			Magnitude: float64(entry.Magnitude),
		})
	}

	return total
}

func countDamageTypes(r *entities.AttackRange) int32 {
	seen := make(map[string]bool)
	for _, dt := range r.DamageTypes {
		key := strings.ToLower(dt.Name)
		if key == "" {
			continue
		}
		seen[key] = true
	}
	return int32(len(seen))
}

var trailingValueRegex = regexp.MustCompile(`^(.*?)\s+(\d+)$`)

func splitTrailingValue(name string) (string, int32, bool) {
	trimmed := strings.TrimSpace(name)
	if m := trailingValueRegex.FindStringSubmatch(trimmed); m != nil {
		if parsed, err := strconv.Atoi(m[2]); err == nil {
			return m[1], int32(parsed), true
		}
	}
	return trimmed, 0, false
}

func itoa(n int32) string {
	return strconv.Itoa(int(n))
}

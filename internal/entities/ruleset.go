package entities

// DamageType is an admin-curated damage type
type DamageType struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Mode DamageMode `json:"mode"`
}

// AttackEffect is a greater-success effect selectable on attack ranges
type AttackEffect struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefenceEffect is a greater-success effect selectable on armor and shields
type DefenceEffect struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemAttribute is an admin-curated weapon/armor/shield attribute. Template
// is the authored descriptor text with bracketed tokens; attributes without
// a template are skipped by the descriptor engine with a warning.
type ItemAttribute struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     ItemType `json:"kind"`
	Template string   `json:"template,omitempty"`
}

// WardingOption is a warding selection available on armor and shields
type WardingOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SanctifiedOption is a sanctified selection available on armor and shields
type SanctifiedOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TraitTemplate is an admin-curated monster trait with templated rules text
type TraitTemplate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Template string `json:"template"`
}

// LimitBreakTemplate is an admin-curated limit-break with templated rules text
type LimitBreakTemplate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Template string `json:"template"`
}

// Ruleset bundles every admin-curated picklist the forge consumes. It is
// assembled by the ruleset repository and handed to the engine as plain data.
type Ruleset struct {
	DamageTypes       []DamageType         `json:"damage_types"`
	AttackEffects     []AttackEffect       `json:"attack_effects"`
	DefenceEffects    []DefenceEffect      `json:"defence_effects"`
	Attributes        []ItemAttribute      `json:"attributes"`
	WardingOptions    []WardingOption      `json:"warding_options"`
	SanctifiedOptions []SanctifiedOption   `json:"sanctified_options"`
	Traits            []TraitTemplate      `json:"traits"`
	LimitBreaks       []LimitBreakTemplate `json:"limit_breaks"`
}

// AttributeTemplates returns the descriptor templates for the given item
// type, keyed by attribute base name.
func (r *Ruleset) AttributeTemplates(kind ItemType) map[string]string {
	templates := make(map[string]string)
	for _, attr := range r.Attributes {
		if attr.Kind != kind {
			continue
		}
		templates[attr.Name] = attr.Template
	}
	return templates
}

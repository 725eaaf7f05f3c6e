package entities

// DieSize is one of the game's five die sizes. It doubles as a numeric
// quantity (its face count) and a display string ("d8") in templates.
type DieSize string

// Die sizes
const (
	DieD4  DieSize = "D4"
	DieD6  DieSize = "D6"
	DieD8  DieSize = "D8"
	DieD10 DieSize = "D10"
	DieD12 DieSize = "D12"
)

// Faces returns the face count of the die, or 0 for an unrecognized size.
func (d DieSize) Faces() int32 {
	switch d {
	case DieD4:
		return 4
	case DieD6:
		return 6
	case DieD8:
		return 8
	case DieD10:
		return 10
	case DieD12:
		return 12
	default:
		return 0
	}
}

// MonsterAttribute is one named stat on a monster, rated as a die size
type MonsterAttribute struct {
	Name string  `json:"name"`
	Die  DieSize `json:"die"`
}

// MonsterTrait is a trait template selected for a monster, with the value
// the director assigned to it
type MonsterTrait struct {
	TraitID string `json:"trait_id"`
	Value   int32  `json:"value"`
}

// Monster is a persisted monster build
type Monster struct {
	ID          string             `json:"id"`
	DirectorID  string             `json:"director_id"`
	Name        string             `json:"name"`
	Level       int32              `json:"level"`
	Attributes  []MonsterAttribute `json:"attributes,omitempty"`
	Traits      []MonsterTrait     `json:"traits,omitempty"`
	LimitBreaks []string           `json:"limit_breaks,omitempty"` // limit-break template ids
	Attack      *ItemConfig        `json:"attack,omitempty"`       // attack/defence profile, weapon-shaped
	CreatedAt   int64              `json:"created_at"`
	UpdatedAt   int64              `json:"updated_at"`
}

package entities

// ConfigRow is one entry of the generic config table. Multipliers and
// scalars (rarity scaling, type multipliers) are keyed by category plus up
// to two selectors.
type ConfigRow struct {
	Category   string  `json:"category"`
	Selector1  string  `json:"selector1,omitempty"`
	Selector2  string  `json:"selector2,omitempty"`
	Multiplier float64 `json:"multiplier"`
}

// CostRow is one entry of the sparse cost table. An empty selector means the
// row does not filter on that field; Selector3 left empty marks a per-point
// rate multiplied by the queried magnitude.
type CostRow struct {
	Category  string  `json:"category"`
	Selector1 string  `json:"selector1,omitempty"`
	Selector2 string  `json:"selector2,omitempty"`
	Selector3 string  `json:"selector3,omitempty"`
	Value     float64 `json:"value"`
}

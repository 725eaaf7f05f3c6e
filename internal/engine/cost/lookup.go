package cost

import "github.com/forgelight/forge-api/internal/entities"

// Query is one cost-table lookup. Empty selectors do not filter; Selector3
// usually carries the magnitude as text for flat-rate rows, with Magnitude
// as the multiplier for per-point rows.
type Query struct {
	Category  string
	Selector1 string
	Selector2 string
	Selector3 string
	Magnitude float64
}

// A lookup resolves in strategy order: exact selector match, the same with
// selector1/selector2 swapped, a per-point rate (row without selector3,
// multiplied by the magnitude), then the swapped per-point rate. Unresolved
// lookups cost 0 and are never an error.
type strategy struct {
	name    string
	resolve func(rows []entities.CostRow, q Query) (float64, bool)
}

var strategies = []strategy{
	{name: "exact", resolve: exactMatch},
	{name: "swapped-exact", resolve: swappedExact},
	{name: "per-point", resolve: perPoint},
	{name: "swapped-per-point", resolve: swappedPerPoint},
}

// Lookup resolves a query against the cost table, trying each fallback
// strategy in order. The first structural match wins.
func Lookup(rows []entities.CostRow, q Query) float64 {
	for _, s := range strategies {
		if value, ok := s.resolve(rows, q); ok {
			return value
		}
	}
	return 0
}

// matches reports whether a selector field matches. An empty field on
// either side does not filter: queries omit selectors they do not care
// about, and rows omit selectors to act as category-wide defaults. Row
// order decides ties — the first structural match wins.
func matches(queryField, rowField string) bool {
	return queryField == "" || rowField == "" || queryField == rowField
}

func exactMatch(rows []entities.CostRow, q Query) (float64, bool) {
	if q.Selector3 == "" {
		return 0, false
	}
	for _, row := range rows {
		if row.Category == q.Category &&
			matches(q.Selector1, row.Selector1) &&
			matches(q.Selector2, row.Selector2) &&
			row.Selector3 == q.Selector3 {
			return row.Value, true
		}
	}
	return 0, false
}

func swappedExact(rows []entities.CostRow, q Query) (float64, bool) {
	return exactMatch(rows, swapSelectors(q))
}

func perPoint(rows []entities.CostRow, q Query) (float64, bool) {
	for _, row := range rows {
		if row.Category == q.Category &&
			matches(q.Selector1, row.Selector1) &&
			matches(q.Selector2, row.Selector2) &&
			row.Selector3 == "" {
			return row.Value * q.Magnitude, true
		}
	}
	return 0, false
}

func swappedPerPoint(rows []entities.CostRow, q Query) (float64, bool) {
	return perPoint(rows, swapSelectors(q))
}

func swapSelectors(q Query) Query {
	q.Selector1, q.Selector2 = q.Selector2, q.Selector1
	return q
}

// ConfigMultiplier resolves a multiplier from the config table; the first
// structural match wins. ok is false when no row matches.
func ConfigMultiplier(rows []entities.ConfigRow, category, selector1, selector2 string) (float64, bool) {
	for _, row := range rows {
		if row.Category == category &&
			matches(selector1, row.Selector1) &&
			matches(selector2, row.Selector2) {
			return row.Multiplier, true
		}
	}
	return 0, false
}

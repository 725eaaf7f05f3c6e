// Package engine exposes the forge rules core behind a single interface:
// arithmetic evaluation, template rendering, descriptor builds, display-text
// rendering, and forge-point totals. Every method is a pure function of its
// arguments with no I/O and no shared state, and is safe for concurrent use.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/forgelight/forge-api/internal/engine Engine

import (
	"github.com/forgelight/forge-api/internal/engine/cost"
	"github.com/forgelight/forge-api/internal/engine/descriptor"
	"github.com/forgelight/forge-api/internal/engine/forgetext"
	"github.com/forgelight/forge-api/internal/engine/template"
	"github.com/forgelight/forge-api/internal/entities"
)

// Engine provides the forge rules calculations
type Engine interface {
	// EvaluateArithmetic evaluates a restricted arithmetic expression.
	// ok is false for malformed input or division by zero; this is a
	// soft failure, never an error.
	EvaluateArithmetic(expr string) (float64, bool)

	// RenderTemplate resolves tokens and templated arithmetic in an
	// authored template against the context. Unknown values render "?".
	RenderTemplate(tmpl string, ctx template.Context) string

	// BuildDescriptorResult compiles an item configuration into ordered
	// sections of renderable lines.
	BuildDescriptorResult(input *descriptor.Input) *descriptor.Result

	// RenderForgeResult maps a descriptor result to display-ready
	// sections of text.
	RenderForgeResult(result *descriptor.Result, opts *forgetext.RenderOptions) []forgetext.RenderedSection

	// CalculateForgeTotals prices a configuration against the config and
	// cost tables.
	CalculateForgeTotals(values *cost.Values, configRows []entities.ConfigRow, costRows []entities.CostRow, ctx *cost.Context) *entities.ForgeTotal
}

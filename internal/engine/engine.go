package engine

import (
	"github.com/forgelight/forge-api/internal/engine/cost"
	"github.com/forgelight/forge-api/internal/engine/descriptor"
	"github.com/forgelight/forge-api/internal/engine/eval"
	"github.com/forgelight/forge-api/internal/engine/forgetext"
	"github.com/forgelight/forge-api/internal/engine/template"
	"github.com/forgelight/forge-api/internal/entities"
)

type engine struct{}

// Config holds engine construction options. The engine is stateless; the
// config exists so construction matches the rest of the codebase.
type Config struct{}

// Validate validates the Config
func (cfg *Config) Validate() error {
	return nil
}

// New creates the forge rules engine
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &engine{}, nil
}

func (e *engine) EvaluateArithmetic(expr string) (float64, bool) {
	return eval.Evaluate(expr)
}

func (e *engine) RenderTemplate(tmpl string, ctx template.Context) string {
	return template.Render(tmpl, ctx)
}

func (e *engine) BuildDescriptorResult(input *descriptor.Input) *descriptor.Result {
	return descriptor.Build(input)
}

func (e *engine) RenderForgeResult(result *descriptor.Result, opts *forgetext.RenderOptions) []forgetext.RenderedSection {
	return forgetext.RenderResult(result, opts)
}

func (e *engine) CalculateForgeTotals(values *cost.Values, configRows []entities.ConfigRow, costRows []entities.CostRow, ctx *cost.Context) *entities.ForgeTotal {
	return cost.CalculateTotals(values, configRows, costRows, ctx)
}

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgelight/forge-api/internal/engine"
	"github.com/forgelight/forge-api/internal/engine/descriptor"
	"github.com/forgelight/forge-api/internal/engine/template"
	"github.com/forgelight/forge-api/internal/entities"
)

func TestEngineEndToEnd(t *testing.T) {
	e, err := engine.New(&engine.Config{})
	require.NoError(t, err)

	value, ok := e.EvaluateArithmetic("(2+3)*4")
	assert.True(t, ok)
	assert.Equal(t, 20.0, value)

	_, ok = e.EvaluateArithmetic("1/0")
	assert.False(t, ok)

	assert.Equal(t, "4", e.RenderTemplate("(ceil([Level]/2))", template.Context{"Level": 7}))

	// armor with PPV 3 and nothing else renders exactly one Defence section
	result := e.BuildDescriptorResult(&descriptor.Input{
		Config: entities.ItemConfig{Type: entities.ItemTypeArmor, PPV: 3},
	})
	rendered := e.RenderForgeResult(result, nil)
	require.Len(t, rendered, 1)
	assert.Equal(t, "Defence", rendered[0].Title)
	assert.Equal(t, []string{
		"Whilst wearing this armor, increase your Physical Protection by 3.",
	}, rendered[0].Lines)
}

package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigEnablesAllInprocessingGates(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.DoProbe)
	assert.True(t, cfg.DoCompHandler)
	assert.True(t, cfg.DoRenumberVars)
	assert.Equal(t, RestartGlue, cfg.RestartType)
	assert.Equal(t, PolarityCache, cfg.PolarityMode)
	assert.Positive(t, cfg.XORCutSize)
	assert.NotEmpty(t, cfg.SimplifySchedStartup)
	assert.NotEmpty(t, cfg.SimplifySchedNonStartup)
}

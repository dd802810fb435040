package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconfiguratorChoosesXorHeavyPreset(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(10)
	s.state.XORs = make([]XORConstraint, 1)

	r := NewReconfigurator(s)
	assert.Equal(t, 3, r.Choose())
}

func TestReconfiguratorFallsBackToConservativePreset(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(10)

	r := NewReconfigurator(s)
	assert.Equal(t, 7, r.Choose())
}

func TestReconfiguratorApplyMutatesLiveConfig(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(1)
	require.NotEqual(t, RestartGeometric, s.Config().RestartType)

	r := NewReconfigurator(s)
	r.Apply(15)
	assert.Equal(t, RestartGeometric, s.Config().RestartType)
	assert.Equal(t, s.cfg.ConflGrowthRate, s.state.Cfg.ConflGrowthRate, "the state's config pointer must mirror the solver's")
}

func TestReconfiguratorApplyUnknownPresetIsNoop(t *testing.T) {
	s := NewSolver(DefaultConfig())
	before := s.Config()
	r := NewReconfigurator(s)
	r.Apply(999)
	assert.Equal(t, before, s.Config())
}

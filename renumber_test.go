package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenumbererShouldRenumberCrossesRatio(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.cfg.RenumberInactiveRatio = 0.4
	s.NewVars(5)
	rn := NewRenumberer(s)
	assert.False(t, rn.ShouldRenumber())

	for i := 0; i < 3; i++ {
		s.state.Vars.MarkRemoved(Var(i), RemovedEliminated)
	}
	assert.True(t, rn.ShouldRenumber())
}

func TestRenumbererRunCompactsActiveVariables(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(4)
	v0, v1, v2, v3 := Var(0), Var(1), Var(2), Var(3)
	s.state.GrowTo(4)

	// keep v1 and v3 active, eliminate v0 and v2.
	s.state.Watch.AttachBinary(v1.Lit(), v3.Lit(), false)
	s.state.Vars.MarkRemoved(v0, RemovedEliminated)
	s.state.Vars.MarkRemoved(v2, RemovedEliminated)

	rn := NewRenumberer(s)
	ok := rn.Run()
	require.True(t, ok)

	assert.Equal(t, 2, s.state.Vars.NbInter())
	require.NoError(t, CheckInvariants(s.state))
	assert.Equal(t, int64(1), s.Stats.NbRenumber)
}

func TestRenumbererPanicsAboveDecisionLevelZero(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(1)
	s.state.GrowTo(1)
	s.state.Trail.NewDecisionLevel()

	rn := NewRenumberer(s)
	assert.Panics(t, func() { rn.Run() })
}

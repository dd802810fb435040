package cdcl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveStateRequiresLevelZero(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(1)
	s.state.Trail.NewDecisionLevel()

	_, err := s.SaveState()
	assert.Error(t, err)
}

func TestSaveAndLoadStateRoundTrip(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(3)
	v1, v2, v3 := Var(0), Var(1), Var(2)
	s.state.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)

	c := NewClause([]Lit{v1.Lit(), v2.Lit(), v3.Lit()})
	h := s.state.Arena.Alloc(c)
	s.state.Watch.AttachLong(h, v1.Lit(), v2.Lit())

	snap, err := s.SaveState()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeSavedState(&buf, snap))
	decoded, err := DecodeSavedState(&buf)
	require.NoError(t, err)

	fresh := NewSolver(DefaultConfig())
	require.NoError(t, fresh.LoadState(decoded))
	require.True(t, fresh.Ok())

	require.NoError(t, CheckInvariants(fresh.state))
	assert.Equal(t, 3, fresh.state.Vars.NbInter())

	fresh.state.Trail.Enqueue(v1.Lit().Negation(), Reason{Kind: ReasonDecision})
	require.Nil(t, Propagate(fresh.state))
	assert.Equal(t, True, fresh.state.Trail.Value(v2))
}

func TestLoadStateReplaysLevelZeroUnits(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(1)
	s.state.Trail.Enqueue(Var(0).Lit(), Reason{Kind: ReasonIngressUnit})
	require.Nil(t, Propagate(s.state))

	snap, err := s.SaveState()
	require.NoError(t, err)
	assert.Equal(t, []Lit{Var(0).Lit()}, snap.Level0Units)

	fresh := NewSolver(DefaultConfig())
	require.NoError(t, fresh.LoadState(snap))
	assert.Equal(t, True, fresh.state.Trail.Value(Var(0)))
}

package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClausePanicsBelowThreeLiterals(t *testing.T) {
	assert.Panics(t, func() { NewClause([]Lit{Var(0).Lit(), Var(1).Lit()}) })
}

func TestNewLearnedClauseAssignsTierByGlue(t *testing.T) {
	cfg := DefaultConfig()
	lits := []Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()}

	core := NewLearnedClause(lits, cfg.GluePutLev0IfBelowOrEq, 0, &cfg)
	assert.Equal(t, TierCore, core.Tier())

	mid := NewLearnedClause(lits, cfg.GluePutLev1IfBelowOrEq, 0, &cfg)
	assert.Equal(t, TierMid, mid.Tier())

	local := NewLearnedClause(lits, cfg.GluePutLev1IfBelowOrEq+1, 0, &cfg)
	assert.Equal(t, TierLocal, local.Tier())
	assert.True(t, local.Redundant())
}

func TestClauseShrinkMarksStrengthened(t *testing.T) {
	c := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	c.Shrink(2)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Strengthened())
}

func TestHasDuplicateOrComplementDetectsBoth(t *testing.T) {
	v0, v1 := Var(0).Lit(), Var(1).Lit()

	dup := NewClause([]Lit{v0, v0, v1})
	assert.True(t, dup.HasDuplicateOrComplement())

	comp := NewClause([]Lit{v0, v0.Negation(), v1})
	assert.True(t, comp.HasDuplicateOrComplement())

	clean := NewClause([]Lit{v0, v1, Var(2).Lit()})
	assert.False(t, clean.HasDuplicateOrComplement())
}

func TestClauseActivityBumpAndRescale(t *testing.T) {
	c := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	c.BumpActivity(5)
	c.BumpActivity(3)
	assert.Equal(t, float32(8), c.Activity())
	c.RescaleActivity(0.5)
	assert.Equal(t, float32(4), c.Activity())
}

package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailEnqueueAndCancel(t *testing.T) {
	tr := NewTrail(3)
	v0, v1, v2 := Var(0), Var(1), Var(2)

	tr.Enqueue(v0.Lit(), Reason{Kind: ReasonDecision})
	tr.NewDecisionLevel()
	tr.Enqueue(v1.Lit().Negation(), Reason{Kind: ReasonDecision})
	tr.NewDecisionLevel()
	tr.Enqueue(v2.Lit(), Reason{Kind: ReasonPropBinary, Other: v0.Lit()})

	require.Equal(t, 2, tr.DecisionLevel())
	assert.Equal(t, True, tr.Value(v0))
	assert.Equal(t, False, tr.Value(v1))
	assert.Equal(t, True, tr.Value(v2))
	assert.Equal(t, 0, tr.LevelOf(v0))
	assert.Equal(t, 1, tr.LevelOf(v1))
	assert.Equal(t, 2, tr.LevelOf(v2))

	popped := tr.CancelUntil(1)
	assert.Equal(t, []Lit{v2.Lit()}, popped)
	assert.Equal(t, Undef, tr.Value(v2))
	assert.Equal(t, False, tr.Value(v1), "canceling to level 1 keeps level-1 and below")
	assert.Equal(t, 1, tr.DecisionLevel())
}

func TestTrailAtLevel0Fully(t *testing.T) {
	tr := NewTrail(2)
	assert.True(t, tr.AtLevel0Fully())
	tr.Enqueue(Var(0).Lit(), Reason{Kind: ReasonDecision})
	assert.False(t, tr.AtLevel0Fully())
	tr.SetQHead(tr.Len())
	assert.True(t, tr.AtLevel0Fully())
}

func TestTrailFlushLevel0(t *testing.T) {
	tr := NewTrail(2)
	tr.Enqueue(Var(0).Lit(), Reason{Kind: ReasonIngressUnit})
	tr.FlushLevel0()
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, Undef, tr.Value(Var(0)))
	assert.Equal(t, 0, tr.DecisionLevel())
}

func TestTrailRewriteDropsRemovedVariables(t *testing.T) {
	tr := NewTrail(3)
	tr.Enqueue(Var(0).Lit(), Reason{Kind: ReasonDecision})
	tr.Enqueue(Var(1).Lit().Negation(), Reason{Kind: ReasonDecision})

	// drop Var(0), remap Var(1) -> Var(0) in the new namespace.
	tr.Rewrite(1, func(l Lit) Lit {
		if l.Var() == Var(1) {
			return Var(0).SignedLit(!l.IsPositive())
		}
		return LitUndef
	})

	assert.Equal(t, False, tr.Value(Var(0)))
	assert.Equal(t, Var(0), tr.At(1).Lit.Var())
}

package simplify

import (
	"testing"

	cdcl "github.com/crillab/cdclsat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVarReplacerState(t *testing.T, nVars int) *cdcl.State {
	t.Helper()
	st := cdcl.NewState(cdcl.DefaultConfig())
	st.Stats = &cdcl.Stats{}
	st.Vars.NewVars(nVars)
	st.GrowTo(nVars)
	return st
}

// TestVarReplacerMergesEquivalentLiterals builds the two binary clauses
// encoding v1 <-> v2 and checks that FindAndReplace collapses one variable
// into the other and that propagating one forces the other consistently.
func TestVarReplacerMergesEquivalentLiterals(t *testing.T) {
	st := newVarReplacerState(t, 2)
	v1, v2 := cdcl.Var(0), cdcl.Var(1)
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit(), false)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit().Negation(), false)

	vr := NewVarReplacer(st)
	require.True(t, vr.FindAndReplace())

	outer1, outer2 := st.Vars.InterToOuter(v1), st.Vars.InterToOuter(v2)
	active1, active2 := st.Vars.IsActive(outer1), st.Vars.IsActive(outer2)
	assert.True(t, active1 != active2, "exactly one of the equivalent variables must be replaced away")

	var replaced, rep cdcl.Var
	if active1 {
		replaced, rep = outer2, outer1
	} else {
		replaced, rep = outer1, outer2
	}
	assert.True(t, vr.IsReplacer(rep))
	got := vr.GetLitReplacedWith(replaced.Lit())
	assert.Equal(t, rep, got.Var())
	require.NoError(t, cdcl.CheckInvariants(st))
}

func TestVarReplacerNoEquivalenceIsNoop(t *testing.T) {
	st := newVarReplacerState(t, 2)
	v1, v2 := cdcl.Var(0), cdcl.Var(1)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)

	vr := NewVarReplacer(st)
	require.True(t, vr.FindAndReplace())
	assert.True(t, st.Vars.IsActive(st.Vars.InterToOuter(v1)))
	assert.True(t, st.Vars.IsActive(st.Vars.InterToOuter(v2)))
}

func TestVarReplacerDetectsContradictoryEquivalence(t *testing.T) {
	st := newVarReplacerState(t, 2)
	v1, v2 := cdcl.Var(0), cdcl.Var(1)
	// v1 forced equivalent to both v2 and -v2 lands v2 and -v2 in the same
	// SCC as v1, which is a direct contradiction.
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit(), false)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit().Negation(), false)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit().Negation(), false)

	vr := NewVarReplacer(st)
	assert.False(t, vr.FindAndReplace(), "v1 and -v1 landing in the same SCC must refute")
}

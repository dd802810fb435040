package simplify

import (
	"testing"

	cdcl "github.com/crillab/cdclsat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompState(t *testing.T, nVars int) *cdcl.State {
	t.Helper()
	st := cdcl.NewState(cdcl.DefaultConfig())
	st.Stats = &cdcl.Stats{}
	st.Vars.NewVars(nVars)
	st.GrowTo(nVars)
	return st
}

// TestComponentHandlerSolvesDisjointComponentsIndependently builds two
// variable-disjoint binary clauses so FindAndHandle must split them into
// separate components, solve each on a nested Solver, and later extend a
// shared outer model with both results.
func TestComponentHandlerSolvesDisjointComponentsIndependently(t *testing.T) {
	st := newCompState(t, 4)
	v1, v2, v3, v4 := cdcl.Var(0), cdcl.Var(1), cdcl.Var(2), cdcl.Var(3)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	st.Watch.AttachBinary(v3.Lit(), v4.Lit(), false)

	ch := NewComponentHandler(st)
	require.True(t, ch.FindAndHandle())

	for _, v := range []cdcl.Var{v1, v2, v3, v4} {
		outer := st.Vars.InterToOuter(v)
		assert.False(t, st.Vars.IsActive(outer), "every solved component's variables must be marked decomposed")
	}

	model := ch.ExtendModel(make([]cdcl.TriVal, 4))
	for _, v := range []cdcl.Var{v1, v2, v3, v4} {
		outer := st.Vars.InterToOuter(v)
		assert.NotEqual(t, cdcl.Undef, model[outer], "the nested solve must have produced a value for every component variable")
	}
	assert.True(t, model[st.Vars.InterToOuter(v1)] == cdcl.True || model[st.Vars.InterToOuter(v2)] == cdcl.True)
	assert.True(t, model[st.Vars.InterToOuter(v3)] == cdcl.True || model[st.Vars.InterToOuter(v4)] == cdcl.True)
}

func TestComponentHandlerSingleComponentIsNoop(t *testing.T) {
	st := newCompState(t, 3)
	v1, v2, v3 := cdcl.Var(0), cdcl.Var(1), cdcl.Var(2)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	st.Watch.AttachBinary(v2.Lit().Negation(), v3.Lit(), false)

	ch := NewComponentHandler(st)
	require.True(t, ch.FindAndHandle())
	for _, v := range []cdcl.Var{v1, v2, v3} {
		assert.True(t, st.Vars.IsActive(st.Vars.InterToOuter(v)), "a single connected component is left untouched")
	}
}

// TestComponentHandlerFindComponentsLeavesVariablesActive checks that
// FindComponents, unlike FindAndHandle, only counts components and never
// detaches or solves any of them.
func TestComponentHandlerFindComponentsLeavesVariablesActive(t *testing.T) {
	st := newCompState(t, 4)
	v1, v2, v3, v4 := cdcl.Var(0), cdcl.Var(1), cdcl.Var(2), cdcl.Var(3)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	st.Watch.AttachBinary(v3.Lit(), v4.Lit(), false)

	ch := NewComponentHandler(st)
	require.True(t, ch.FindComponents())

	for _, v := range []cdcl.Var{v1, v2, v3, v4} {
		assert.True(t, st.Vars.IsActive(st.Vars.InterToOuter(v)), "discovery alone must not decompose any component")
	}
	assert.Equal(t, int64(2), st.Stats.NbComponentsFound)
}

func TestComponentHandlerReaddRemovedClausesRestoresVariables(t *testing.T) {
	st := newCompState(t, 4)
	v1, v2, v3, v4 := cdcl.Var(0), cdcl.Var(1), cdcl.Var(2), cdcl.Var(3)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	st.Watch.AttachBinary(v3.Lit(), v4.Lit(), false)

	ch := NewComponentHandler(st)
	require.True(t, ch.FindAndHandle())
	ch.ReaddRemovedClauses()

	for _, v := range []cdcl.Var{v1, v2, v3, v4} {
		assert.True(t, st.Vars.IsActive(st.Vars.InterToOuter(v)))
	}
	require.NoError(t, cdcl.CheckInvariants(st))
}

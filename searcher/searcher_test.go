package searcher_test

import (
	"testing"

	cdcl "github.com/crillab/cdclsat"
	"github.com/crillab/cdclsat/searcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T, nVars int) *cdcl.State {
	t.Helper()
	st := cdcl.NewState(cdcl.DefaultConfig())
	st.Stats = &cdcl.Stats{}
	st.Vars.NewVars(nVars)
	st.GrowTo(nVars)
	return st
}

func TestSearcherSolvesSatisfiableBinaryChain(t *testing.T) {
	st := newState(t, 3)
	v1, v2, v3 := cdcl.Var(0), cdcl.Var(1), cdcl.Var(2)

	st.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	st.Watch.AttachBinary(v2.Lit().Negation(), v3.Lit(), false)

	sr := searcher.New(st)
	verdict := sr.Solve(cdcl.SearchBudget{MaxConflicts: 1000})
	require.Equal(t, cdcl.VerdictSat, verdict)

	// every clause must have at least one true literal.
	assert.True(t, st.Trail.LitValue(v1.Lit()) == cdcl.True || st.Trail.LitValue(v2.Lit()) == cdcl.True)
	if st.Trail.LitValue(v2.Lit()) == cdcl.False {
		assert.Equal(t, cdcl.True, st.Trail.LitValue(v3.Lit()))
	}
}

func TestSearcherDetectsUnsatAtLevel0(t *testing.T) {
	st := newState(t, 2)
	v1, v2 := cdcl.Var(0), cdcl.Var(1)
	// v1 at level 0 forces both v2 and -v2.
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit(), false)
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit().Negation(), false)
	st.Trail.Enqueue(v1.Lit(), cdcl.Reason{Kind: cdcl.ReasonIngressUnit})

	sr := searcher.New(st)
	verdict := sr.Solve(cdcl.SearchBudget{MaxConflicts: 1000})
	assert.Equal(t, cdcl.VerdictUnsat, verdict)
}

func TestSearcherLearnsFromLongClauseConflict(t *testing.T) {
	st := newState(t, 4)
	v1, v2, v3, v4 := cdcl.Var(0), cdcl.Var(1), cdcl.Var(2), cdcl.Var(3)

	// (v1 v v2 v v3), (-v1 v v4), (-v2 v -v4), (-v3): forces a conflict
	// that must be resolved by learning, not by level-0 propagation alone.
	c := cdcl.NewClause([]cdcl.Lit{v1.Lit(), v2.Lit(), v3.Lit()})
	h := st.Arena.Alloc(c)
	st.Watch.AttachLong(h, v1.Lit(), v2.Lit())
	st.Watch.AttachBinary(v1.Lit().Negation(), v4.Lit(), false)
	st.Watch.AttachBinary(v2.Lit().Negation(), v4.Lit().Negation(), false)
	st.Trail.Enqueue(v3.Lit().Negation(), cdcl.Reason{Kind: cdcl.ReasonIngressUnit})

	sr := searcher.New(st)
	verdict := sr.Solve(cdcl.SearchBudget{MaxConflicts: 1000})
	require.NotEqual(t, cdcl.VerdictUndef, verdict)
	if verdict == cdcl.VerdictSat {
		require.NoError(t, cdcl.CheckInvariants(st))
	}
}

func TestSearcherRespectsConflictBudget(t *testing.T) {
	st := newState(t, 2)
	v1, v2 := cdcl.Var(0), cdcl.Var(1)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit().Negation(), false)
	st.Watch.AttachBinary(v1.Lit(), v2.Lit().Negation(), false)
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit(), false)

	sr := searcher.New(st)
	verdict := sr.Solve(cdcl.SearchBudget{MaxConflicts: 0})
	assert.Equal(t, cdcl.VerdictUndef, verdict)
}

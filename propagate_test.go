package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(nVars int) *State {
	st := NewState(DefaultConfig())
	st.Vars.NewVars(nVars)
	st.GrowTo(nVars)
	return st
}

func TestPropagateChainsUnitsThroughBinaries(t *testing.T) {
	st := newTestState(3)
	v1, v2, v3 := Var(0), Var(1), Var(2)

	// (-x1 v x2), (-x2 v x3): x1 forces x2 forces x3.
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit(), false)
	st.Watch.AttachBinary(v2.Lit().Negation(), v3.Lit(), false)
	st.Trail.Enqueue(v1.Lit(), Reason{Kind: ReasonDecision})

	conflict := Propagate(st)
	require.Nil(t, conflict)
	assert.Equal(t, True, st.Trail.Value(v2))
	assert.Equal(t, True, st.Trail.Value(v3))
	require.NoError(t, CheckInvariants(st))
}

func TestPropagateDetectsBinaryConflict(t *testing.T) {
	st := newTestState(2)
	v1, v2 := Var(0), Var(1)

	// (-x1 v x2), (-x1 v -x2): x1 true forces both x2 and -x2.
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit(), false)
	st.Watch.AttachBinary(v1.Lit().Negation(), v2.Lit().Negation(), false)
	st.Trail.Enqueue(v1.Lit(), Reason{Kind: ReasonDecision})

	conflict := Propagate(st)
	require.NotNil(t, conflict)
	assert.True(t, conflict.IsBinary)
}

func TestPropagateLongClauseUnitAndRelocation(t *testing.T) {
	st := newTestState(4)
	v1, v2, v3, v4 := Var(0), Var(1), Var(2), Var(3)

	c := NewClause([]Lit{v1.Lit(), v2.Lit(), v3.Lit(), v4.Lit()})
	h := st.Arena.Alloc(c)
	st.Watch.AttachLong(h, v1.Lit(), v2.Lit())

	// Falsify v1 and then v3: each falsified watch moves to an unassigned
	// literal (first v3, then v4) rather than conflicting; v2 stays watched.
	st.Trail.Enqueue(v1.Lit().Negation(), Reason{Kind: ReasonDecision})
	require.Nil(t, Propagate(st))
	st.Trail.Enqueue(v3.Lit().Negation(), Reason{Kind: ReasonDecision})
	require.Nil(t, Propagate(st))

	assert.Equal(t, 2, st.Watch.CountLongReferences(h))
	require.NoError(t, CheckInvariants(st))

	// Now falsify v4 too: only v2 remains unassigned, so it must be forced true.
	st.Trail.Enqueue(v4.Lit().Negation(), Reason{Kind: ReasonDecision})
	require.Nil(t, Propagate(st))
	assert.Equal(t, True, st.Trail.Value(v2))
}

func TestPropagateLongClauseConflict(t *testing.T) {
	st := newTestState(3)
	v1, v2, v3 := Var(0), Var(1), Var(2)

	c := NewClause([]Lit{v1.Lit(), v2.Lit(), v3.Lit()})
	h := st.Arena.Alloc(c)
	st.Watch.AttachLong(h, v1.Lit(), v2.Lit())

	st.Trail.Enqueue(v3.Lit().Negation(), Reason{Kind: ReasonDecision})
	require.Nil(t, Propagate(st))
	st.Trail.Enqueue(v1.Lit().Negation(), Reason{Kind: ReasonDecision})
	require.Nil(t, Propagate(st))
	st.Trail.Enqueue(v2.Lit().Negation(), Reason{Kind: ReasonDecision})

	conflict := Propagate(st)
	require.NotNil(t, conflict)
	assert.False(t, conflict.IsBinary)
	assert.Equal(t, h, conflict.Handle)
}

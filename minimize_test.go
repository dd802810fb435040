package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelMinimizerNoTrailAssignmentsIsNoop(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(2)
	m := NewModelMinimizer(s)
	model := []TriVal{True, False}
	assert.Equal(t, model, m.Minimize(model))
}

// TestModelMinimizerUsesTrailWithoutIndependentVars checks that
// minimization proceeds against the trail-derived candidate set even
// when the caller never declared an independent set.
func TestModelMinimizerUsesTrailWithoutIndependentVars(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(2)
	v1, v2 := Var(0), Var(1)
	s.state.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	s.state.Trail.NewDecisionLevel()
	s.state.Trail.Enqueue(v1.Lit(), Reason{Kind: ReasonDecision})
	s.state.Trail.Enqueue(v2.Lit(), Reason{Kind: ReasonDecision})

	m := NewModelMinimizer(s)
	minimized := m.Minimize([]TriVal{True, True})
	assert.Equal(t, Undef, minimized[v1])
	assert.Equal(t, True, minimized[v2])
}

// TestModelMinimizerClearsRedundantIndependentVar builds a single clause
// (v1 v v2) where both literals are true; since v2 alone still satisfies
// the clause, an independent v1 should be minimized away to Undef.
func TestModelMinimizerClearsRedundantIndependentVar(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(2)
	v1, v2 := Var(0), Var(1)
	s.state.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	s.state.Trail.NewDecisionLevel()
	s.state.Trail.Enqueue(v1.Lit(), Reason{Kind: ReasonDecision})
	s.state.Trail.Enqueue(v2.Lit(), Reason{Kind: ReasonDecision})
	s.state.Vars.IndependentVars.Add(v1)

	m := NewModelMinimizer(s)
	minimized := m.Minimize([]TriVal{True, True})
	assert.Equal(t, Undef, minimized[v1])
	assert.Equal(t, True, minimized[v2])
}

// TestModelMinimizerKeepsSoleSupportingLiteral checks that a variable
// solely responsible for satisfying a clause is never cleared.
func TestModelMinimizerKeepsSoleSupportingLiteral(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(2)
	v1, v2 := Var(0), Var(1)
	s.state.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	s.state.Trail.NewDecisionLevel()
	s.state.Trail.Enqueue(v1.Lit(), Reason{Kind: ReasonDecision})
	s.state.Vars.IndependentVars.Add(v1)

	m := NewModelMinimizer(s)
	minimized := m.Minimize([]TriVal{True, False})
	assert.Equal(t, True, minimized[v1], "v1 is the only true literal of its clause and must survive")
}

func TestModelMinimizerSkipsReplacerVariables(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(2)
	v1, v2 := Var(0), Var(1)
	s.state.Watch.AttachBinary(v1.Lit(), v2.Lit(), false)
	s.state.Trail.NewDecisionLevel()
	s.state.Trail.Enqueue(v1.Lit(), Reason{Kind: ReasonDecision})
	s.state.Trail.Enqueue(v2.Lit(), Reason{Kind: ReasonDecision})
	s.state.Vars.IndependentVars.Add(v1)
	s.SetVarReplacer(fakeReplacer{replacer: map[Var]bool{0: true}})

	m := NewModelMinimizer(s)
	minimized := m.Minimize([]TriVal{True, True})
	assert.Equal(t, True, minimized[v1], "a replacer variable must never be minimized away")
}

type fakeReplacer struct {
	replacer map[Var]bool
}

func (fakeReplacer) FindAndReplace() bool         { return true }
func (fakeReplacer) GetLitReplacedWith(l Lit) Lit { return l }
func (r fakeReplacer) IsReplacer(v Var) bool      { return r.replacer[v] }

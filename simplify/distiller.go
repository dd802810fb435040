package simplify

import "github.com/crillab/cdclsat"

// DistillerImpl is the default Distiller: clause shrinking via trial
// propagation of a clause's own literals, using the same
// trial-propagate/CancelUntil idiom Prober and the main search loop both
// use for speculative reasoning at an isolated decision level.
type DistillerImpl struct {
	st *cdcl.State
}

// NewDistiller returns a DistillerImpl bound to st.
func NewDistiller(st *cdcl.State) *DistillerImpl { return &DistillerImpl{st: st} }

// Distill implements cdcl.Distiller: for every live long clause, it
// enqueues the negation of each literal but the last in turn and
// propagates; if that derives the last literal or a conflict before it
// is reached, the clause is redundant given the rest of the database and
// can be shrunk (or, on an early conflict, dropped entirely as already
// implied).
func (d *DistillerImpl) Distill() bool {
	st := d.st
	if st.Trail.DecisionLevel() != 0 {
		return true
	}

	var handles []cdcl.Handle
	st.Arena.Each(func(h cdcl.Handle, c *cdcl.Clause) {
		if !c.Removed() {
			handles = append(handles, h)
		}
	})

	for _, h := range handles {
		if !d.distillOne(h) {
			return false
		}
	}
	return true
}

// distillOne tries to shrink the clause at h by trial-propagating the
// negation of its own literals.
func (d *DistillerImpl) distillOne(h cdcl.Handle) bool {
	st := d.st
	c := st.Arena.Deref(h)
	if c.Removed() {
		return true
	}
	lits := append([]cdcl.Lit(nil), c.Lits()...)

	// kept is the length of the shortest verified-sufficient prefix found so
	// far: if ~l0 .. ~l_{i} is unsat (directly, or because l_i is already
	// forced true by ~l0..~l_{i-1} alone), then l0 v .. v l_i is entailed by
	// the rest of the database and subsumes the original clause, so l_i
	// itself is always part of the kept prefix, never dropped from it.
	kept := len(lits)
	st.Trail.NewDecisionLevel()
	for i := 0; i < len(lits)-1; i++ {
		l := lits[i]
		if st.Trail.Value(l.Var()) == cdcl.Undef {
			st.Trail.Enqueue(l.Negation(), cdcl.Reason{Kind: cdcl.ReasonDecision})
			if cdcl.Propagate(st) != nil {
				kept = i + 1
				break
			}
		} else if st.Trail.LitValue(l) == cdcl.True {
			kept = i + 1
			break
		}
	}
	st.Trail.CancelUntil(0)

	if kept >= len(lits) {
		return true
	}

	newLits := append([]cdcl.Lit(nil), lits[:kept]...)
	old0, old1 := c.Get(0), c.Get(1)
	st.Watch.DetachLong(h, old0, old1)
	st.Drat.DeleteClause(c.Lits())
	c.MarkRemoved()
	st.Arena.Free(h)

	return admitInterClause(st, newLits)
}

var _ cdcl.Distiller = (*DistillerImpl)(nil)

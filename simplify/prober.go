package simplify

import "github.com/crillab/cdclsat"

// ProberImpl is the default Prober: failed-literal probing, generalized
// (per the inTree flag) into simple in-tree probing that also asserts, as
// level-0 units, the literals both polarities of a probe derive, using the same
// trial-propagation-then-CancelUntil idiom the search loop uses for
// backtracking, applied here at decision level 1 instead of inside the
// main search loop.
type ProberImpl struct {
	st *cdcl.State
}

// NewProber returns a ProberImpl bound to st.
func NewProber(st *cdcl.State) *ProberImpl { return &ProberImpl{st: st} }

// Probe implements cdcl.Prober: for every currently unassigned variable,
// tries both polarities via trial propagation. If one polarity conflicts,
// the other is a level-0 consequence of the whole formula and is asserted
// as a unit; if both conflict, the formula is UNSAT. When inTree is set,
// a pair of probes that both succeed has their common derived literals
// asserted as level-0 units, approximating in-tree probing's
// extra yield without building a separate implication-tree structure.
func (p *ProberImpl) Probe(inTree bool) bool {
	st := p.st
	if st.Trail.DecisionLevel() != 0 {
		return true
	}

	for v := 0; v < st.Vars.NbInter(); v++ {
		vv := cdcl.Var(v)
		if st.Trail.Value(vv) != cdcl.Undef {
			continue
		}
		outer := st.Vars.InterToOuter(vv)
		if !st.Vars.IsActive(outer) {
			continue
		}

		pos := vv.SignedLit(false)
		impliedPos, failedPos := p.tryProbe(pos)
		if failedPos {
			if !admitInterClause(st, []cdcl.Lit{pos.Negation()}) {
				return false
			}
			continue
		}

		neg := pos.Negation()
		impliedNeg, failedNeg := p.tryProbe(neg)
		if failedNeg {
			if !admitInterClause(st, []cdcl.Lit{pos}) {
				return false
			}
			continue
		}

		if inTree {
			if !p.recordCommonImplications(pos, impliedPos, neg, impliedNeg) {
				return false
			}
		}
	}
	return true
}

// tryProbe opens a decision level, enqueues trialLit, propagates, and
// unwinds back to level 0, reporting whether propagation conflicted and
// (if it did not) the set of literals it derived along the way.
func (p *ProberImpl) tryProbe(trialLit cdcl.Lit) (implied []cdcl.Lit, failed bool) {
	st := p.st
	start := st.Trail.Len()

	st.Trail.NewDecisionLevel()
	st.Trail.Enqueue(trialLit, cdcl.Reason{Kind: cdcl.ReasonDecision})
	conflict := cdcl.Propagate(st)

	if conflict != nil {
		st.Trail.CancelUntil(0)
		return nil, true
	}

	for i := start; i < st.Trail.Len(); i++ {
		implied = append(implied, st.Trail.At(i).Lit)
	}
	st.Trail.CancelUntil(0)
	return implied, false
}

// recordCommonImplications asserts, as level-0 units, every literal
// implied by both polarities of the probed variable: if l follows from v
// and from !v alike, l is a necessary consequence of the formula
// regardless of v, the same "necessary assignment" yield in-tree probing
// gets over plain failed-literal probing.
func (p *ProberImpl) recordCommonImplications(pos cdcl.Lit, impliedPos []cdcl.Lit, neg cdcl.Lit, impliedNeg []cdcl.Lit) bool {
	seen := make(map[cdcl.Lit]bool, len(impliedNeg))
	for _, l := range impliedNeg {
		seen[l] = true
	}
	for _, l := range impliedPos {
		if l == pos || l == neg {
			continue
		}
		if !seen[l] {
			continue
		}
		if !admitInterClause(p.st, []cdcl.Lit{l}) {
			return false
		}
	}
	return true
}

var _ cdcl.Prober = (*ProberImpl)(nil)

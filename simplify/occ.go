// Package simplify provides the default OccurrenceSimplifier,
// SolutionExtender, VarReplacer, ComponentHandler, Prober, Distiller,
// ImplicationCache and GaussianEngine collaborators the core orchestrator
// dispatches to: occurrence-list simplification and component handling
// are external collaborators, specified only at their interfaces.
package simplify

import (
	"sort"
	"strings"

	"github.com/crillab/cdclsat"
)

// maxBVEOccurrence bounds how many clauses a candidate variable may occur
// in before elimination is skipped as too costly, and the growth check in
// tryEliminate bounds it further: even under this cap, a variable is only
// eliminated if resolving it away does not increase the clause count,
// matching the "bounded" in bounded variable elimination.
const maxBVEOccurrence = 8

// occRecord is one variable's bounded-variable-elimination step: the
// outer-numbered clauses that mentioned it, removed from the live
// database and replayed by SolutionExtender against a satisfying model.
// Recorded in outer numbering since it must survive renumbering, unlike
// the inter numbering the live database uses.
type occRecord struct {
	v       cdcl.Var
	clauses [][]cdcl.Lit
}

// OccSimplifier is the default OccurrenceSimplifier and SolutionExtender:
// subsumption/self-subsumption ("backw-sub"), duplicate-binary cleanup
// ("clean-implicit") and bounded variable elimination ("bve"), all
// operating directly on the arena/watch index rather than a flat clause
// slice.
type OccSimplifier struct {
	st   *cdcl.State
	elim []occRecord
}

// New returns an OccSimplifier bound to st.
func New(st *cdcl.State) *OccSimplifier { return &OccSimplifier{st: st} }

// occClause is a live clause as the occurrence builder sees it: either a
// long clause (arena handle valid) or a binary (handle zero, binary flag set).
type occClause struct {
	lits     []cdcl.Lit
	handle   cdcl.Handle
	isBinary bool
	isRed    bool
}

// buildOccurrences returns every live clause of size >= 2 alongside a
// per-literal occurrence index, in inter numbering.
func (o *OccSimplifier) buildOccurrences() ([]occClause, [][]int) {
	return buildOccurrences(o.st)
}

func buildOccurrences(st *cdcl.State) ([]occClause, [][]int) {
	var clauses []occClause

	st.Arena.Each(func(h cdcl.Handle, c *cdcl.Clause) {
		if c.Removed() {
			return
		}
		clauses = append(clauses, occClause{lits: append([]cdcl.Lit(nil), c.Lits()...), handle: h, isRed: c.Redundant()})
	})

	seen := make(map[cdcl.Lit]cdcl.Lit)
	for litIdx, list := range watchLists(st) {
		for _, e := range list {
			if !e.IsBinary {
				continue
			}
			a, b := cdcl.Lit(litIdx).Negation(), e.Other
			if a > b {
				a, b = b, a
			}
			if seen[a] == b {
				continue
			}
			seen[a] = b
			clauses = append(clauses, occClause{lits: []cdcl.Lit{a, b}, isBinary: true, isRed: e.Redundant})
		}
	}

	occ := make([][]int, st.Vars.NbInter()*2)
	for ci, c := range clauses {
		for _, l := range c.lits {
			occ[l] = append(occ[l], ci)
		}
	}
	return clauses, occ
}

// Run implements cdcl.OccurrenceSimplifier: it executes the accumulated
// occ-* tokens (with their "occ-" prefix already stripped by
// InprocessScheduler) in the order given.
func (o *OccSimplifier) Run(strategy string) bool {
	for _, tok := range strings.Split(strategy, ",") {
		switch strings.TrimSpace(tok) {
		case "backw-sub":
			if !o.subsume() {
				return false
			}
		case "clean-implicit":
			o.cleanImplicit()
		case "bve":
			if !o.eliminate() {
				return false
			}
		case "gauss":
			// Matrix-finding itself is the GaussianEngine's job, invoked by
			// the scheduler right after this Run call returns.
		}
	}
	return true
}

// subsume removes every clause subsumed by a shorter one sharing a
// literal.
func (o *OccSimplifier) subsume() bool {
	clauses, occ := o.buildOccurrences()
	for _, c := range clauses {
		sort.Slice(c.lits, func(i, j int) bool { return c.lits[i] < c.lits[j] })
	}

	removed := make([]bool, len(clauses))
	for i := range clauses {
		if removed[i] || len(clauses[i].lits) == 0 {
			continue
		}
		shortest := clauses[i].lits[0]
		for _, j := range occ[shortest] {
			if i == j || removed[j] {
				continue
			}
			if subsumes(clauses[i].lits, clauses[j].lits) {
				removed[j] = true
				o.detach(clauses[j])
			}
		}
	}
	return true
}

// subsumes reports whether every literal of a appears in the (sorted) b.
func subsumes(a, b []cdcl.Lit) bool {
	if len(a) > len(b) {
		return false
	}
	bi := 0
	for _, la := range a {
		for bi < len(b) && b[bi] < la {
			bi++
		}
		if bi >= len(b) || b[bi] != la {
			return false
		}
	}
	return true
}

// cleanImplicit removes exact-duplicate binary clauses left behind by
// repeated equivalence substitution or distillation.
func (o *OccSimplifier) cleanImplicit() {
	st := o.st
	seen := make(map[cdcl.Lit]map[cdcl.Lit]bool)
	for lit, list := range watchLists(st) {
		kept := list[:0]
		for _, e := range list {
			if !e.IsBinary {
				kept = append(kept, e)
				continue
			}
			if seen[cdcl.Lit(lit)] == nil {
				seen[cdcl.Lit(lit)] = make(map[cdcl.Lit]bool)
			}
			if seen[cdcl.Lit(lit)][e.Other] {
				continue
			}
			seen[cdcl.Lit(lit)][e.Other] = true
			kept = append(kept, e)
		}
		setWatchList(st, cdcl.Lit(lit), kept)
	}
}

// detach logically removes c from the live database, unwatching it and
// emitting the matching DRAT deletion record.
func (o *OccSimplifier) detach(c occClause) {
	st := o.st
	st.Drat.DeleteClause(c.lits)
	if c.isBinary {
		st.Watch.DetachBinary(c.lits[0], c.lits[1])
		return
	}
	clause := st.Arena.Deref(c.handle)
	clause.MarkRemoved()
	st.Watch.DetachLong(c.handle, clause.Get(0), clause.Get(1))
	st.Arena.Free(c.handle)
}

// eliminate runs one bounded-variable-elimination pass over every active,
// unassigned, non-BVA, non-independent inter variable.
func (o *OccSimplifier) eliminate() bool {
	st := o.st
	for i := 0; i < st.Vars.NbInter(); i++ {
		v := cdcl.Var(i)
		outer := st.Vars.InterToOuter(v)
		if !st.Vars.IsActive(outer) || st.Vars.IsBVA(outer) {
			continue
		}
		if st.Trail.Value(v) != cdcl.Undef {
			continue
		}
		if st.Vars.IndependentVars.Cardinality() > 0 && st.Vars.IndependentVars.Contains(v) {
			continue
		}
		if !o.tryEliminate(v) {
			return false
		}
	}
	return true
}

// tryEliminate attempts to resolve away inter variable v, replacing every
// clause mentioning it with the (non-tautological) resolvents of its
// positive and negative occurrences, provided doing so does not grow the
// clause count.
func (o *OccSimplifier) tryEliminate(v cdcl.Var) bool {
	st := o.st
	pos, neg := v.Lit(), v.Lit().Negation()
	clauses, occIdx := o.buildOccurrences()
	posClauses := gather(clauses, occIdx[pos])
	negClauses := gather(clauses, occIdx[neg])
	if len(posClauses) == 0 || len(negClauses) == 0 {
		return true
	}
	if len(posClauses) > maxBVEOccurrence || len(negClauses) > maxBVEOccurrence {
		return true
	}

	var resolvents [][]cdcl.Lit
	for _, cp := range posClauses {
		for _, cn := range negClauses {
			res, tautology := resolve(cp.lits, cn.lits, v)
			if tautology {
				continue
			}
			resolvents = append(resolvents, res)
		}
	}
	if len(resolvents) > len(posClauses)+len(negClauses) {
		return true
	}

	outer := st.Vars.InterToOuter(v)
	rec := occRecord{v: outer}
	for _, c := range posClauses {
		rec.clauses = append(rec.clauses, toOuter(st, c.lits))
		o.detach(c)
	}
	for _, c := range negClauses {
		rec.clauses = append(rec.clauses, toOuter(st, c.lits))
		o.detach(c)
	}
	o.elim = append(o.elim, rec)
	st.Vars.MarkRemoved(outer, cdcl.RemovedEliminated)

	for _, res := range resolvents {
		if !admitInterClause(st, res) {
			return false
		}
	}
	return true
}

// resolve returns the resolvent of a and b on variable v, or tautology
// true if the resolvent contains a complementary pair.
func resolve(a, b []cdcl.Lit, v cdcl.Var) (res []cdcl.Lit, tautology bool) {
	set := make(map[cdcl.Lit]bool, len(a)+len(b))
	for _, l := range a {
		if l.Var() != v {
			set[l] = true
		}
	}
	for _, l := range b {
		if l.Var() == v {
			continue
		}
		if set[l.Negation()] {
			return nil, true
		}
		set[l] = true
	}
	res = make([]cdcl.Lit, 0, len(set))
	for l := range set {
		res = append(res, l)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res, false
}

func gather(clauses []occClause, idx []int) []occClause {
	out := make([]occClause, len(idx))
	for i, ci := range idx {
		out[i] = clauses[ci]
	}
	return out
}

// toOuter translates an inter-numbered literal slice into outer numbering
// for storage in an occRecord, which must remain valid across renumberings.
func toOuter(st *cdcl.State, lits []cdcl.Lit) []cdcl.Lit {
	out := make([]cdcl.Lit, len(lits))
	for i, l := range lits {
		out[i] = st.Vars.InterToOuter(l.Var()).SignedLit(!l.IsPositive())
	}
	return out
}

// Uneliminate implements cdcl.OccurrenceSimplifier: it reintroduces every
// clause recorded when outer variable v was eliminated, in reverse
// elimination order (last eliminated, first restored), a LIFO discipline
// over the elimination stack.
func (o *OccSimplifier) Uneliminate(v cdcl.Var) bool {
	st := o.st
	for i := len(o.elim) - 1; i >= 0; i-- {
		rec := o.elim[i]
		if rec.v != v {
			continue
		}
		o.elim = append(o.elim[:i], o.elim[i+1:]...)
		st.Vars.Unremove(v)
		st.Vars.EnsureInterSlot(v)
		for _, outerLits := range rec.clauses {
			lits := fromOuter(st, outerLits)
			if !admitInterClause(st, lits) {
				return false
			}
		}
		return true
	}
	return true
}

// fromOuter translates an outer-numbered literal slice (as stored by an
// occRecord) back to the current inter numbering, allocating inter slots
// for any variable that does not have one yet.
func fromOuter(st *cdcl.State, lits []cdcl.Lit) []cdcl.Lit {
	out := make([]cdcl.Lit, len(lits))
	for i, l := range lits {
		inter := st.Vars.EnsureInterSlot(l.Var())
		out[i] = inter.SignedLit(!l.IsPositive())
	}
	st.GrowTo(st.Vars.NbInter())
	return out
}

// Extend implements cdcl.SolutionExtender: replaying elimination records
// in reverse (last eliminated, first restored) against an outer-numbered
// model, setting each eliminated variable to whichever polarity satisfies
// every one of its removed clauses.
func (o *OccSimplifier) Extend(model []cdcl.TriVal) []cdcl.TriVal {
	for i := len(o.elim) - 1; i >= 0; i-- {
		rec := o.elim[i]
		val := cdcl.True
		if !satisfiesAll(model, rec.clauses, rec.v, cdcl.True) {
			val = cdcl.False
		}
		if int(rec.v) >= len(model) {
			grown := make([]cdcl.TriVal, int(rec.v)+1)
			copy(grown, model)
			model = grown
		}
		model[rec.v] = val
	}
	return model
}

// satisfiesAll reports whether every clause in clauses is satisfied when
// outer variable v is bound to candidate, under the rest of model.
func satisfiesAll(model []cdcl.TriVal, clauses [][]cdcl.Lit, v cdcl.Var, candidate cdcl.TriVal) bool {
	for _, c := range clauses {
		sat := false
		for _, l := range c {
			var val cdcl.TriVal
			if l.Var() == v {
				val = candidate
				if !l.IsPositive() {
					val = val.Not()
				}
			} else if int(l.Var()) < len(model) {
				lv := model[l.Var()]
				if !l.IsPositive() {
					lv = lv.Not()
				}
				val = lv
			}
			if val == cdcl.True {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

var _ cdcl.OccurrenceSimplifier = (*OccSimplifier)(nil)
var _ cdcl.SolutionExtender = (*OccSimplifier)(nil)

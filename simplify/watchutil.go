package simplify

import "github.com/crillab/cdclsat"

// watchLists returns every watch list in st.Watch, indexed by Lit, as a
// plain slice-of-slices so occurrence-building code can range over it
// without the root package exposing its internal storage layout.
func watchLists(st *cdcl.State) [][]cdcl.WatchEntry {
	lists := make([][]cdcl.WatchEntry, st.Watch.NbLits())
	for l := range lists {
		lists[l] = st.Watch.List(cdcl.Lit(l))
	}
	return lists
}

// setWatchList writes back a (possibly filtered) watch list for l.
func setWatchList(st *cdcl.State, l cdcl.Lit, entries []cdcl.WatchEntry) {
	st.Watch.SetList(l, entries)
}

// admitInterClause admits an already-inter-numbered literal slice straight
// into the clause database, bypassing ClauseIngress's outer-level
// machinery (which only Solver can reach, per state.go's ownership note):
// level-0-satisfied clauses are dropped, level-0-falsified literals are
// stripped, and what remains is dispatched by size exactly as
// Solver.dispatchClause does. Used by every simplify collaborator that
// derives new clauses (resolvents, rewritten long clauses) rather than
// merely detaching existing ones.
func admitInterClause(st *cdcl.State, lits []cdcl.Lit) bool {
	trail := st.Trail
	filtered := lits[:0]
	for _, l := range lits {
		v := l.Var()
		if trail.Value(v) != cdcl.Undef && trail.LevelOf(v) == 0 {
			if trail.LitValue(l) == cdcl.True {
				return true
			}
			continue
		}
		filtered = append(filtered, l)
	}
	lits = filtered

	switch len(lits) {
	case 0:
		st.Drat.Empty()
		return false
	case 1:
		st.Trail.Enqueue(lits[0], cdcl.Reason{Kind: cdcl.ReasonIngressUnit})
		st.Stats.NbUnitLearned++
		if c := cdcl.Propagate(st); c != nil {
			return false
		}
	case 2:
		st.Watch.AttachBinary(lits[0], lits[1], false)
		st.Stats.NbBinaryLearned++
	default:
		owned := append([]cdcl.Lit(nil), lits...)
		c := cdcl.NewClause(owned)
		h := st.Arena.Alloc(c)
		st.Watch.AttachLong(h, owned[0], owned[1])
	}
	st.Drat.AddClause(lits)
	return true
}

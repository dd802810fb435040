package simplify

import "github.com/crillab/cdclsat"

// litCacheEntry is one literal's transitively-implied set.
type litCacheEntry struct {
	implied map[cdcl.Lit]bool
}

// ImplicationCacheImpl is the default ImplicationCache: a per-literal cache
// of transitively implied literals, populated lazily by trial propagation
// (the same idiom ProberImpl uses) and consulted by TryBoth to derive
// necessary assignments without repeating the propagation work across
// scheduler passes. Intersecting a variable's two polarities' cached sets
// finds literals implied either way.
type ImplicationCacheImpl struct {
	st      *cdcl.State
	entries map[cdcl.Lit]*litCacheEntry
	enabled bool
}

// NewImplicationCache returns an ImplicationCacheImpl bound to st.
func NewImplicationCache(st *cdcl.State) *ImplicationCacheImpl {
	return &ImplicationCacheImpl{st: st, entries: make(map[cdcl.Lit]*litCacheEntry), enabled: true}
}

// Clean implements cdcl.ImplicationCache: drops cache entries for literals
// whose variable is no longer active (eliminated, replaced, decomposed) or
// already assigned.
func (ic *ImplicationCacheImpl) Clean() {
	st := ic.st
	for l := range ic.entries {
		v := l.Var()
		outer := st.Vars.InterToOuter(v)
		if !st.Vars.IsActive(outer) || st.Trail.Value(v) != cdcl.Undef {
			delete(ic.entries, l)
			continue
		}
	}
	for l, e := range ic.entries {
		for il := range e.implied {
			iv := il.Var()
			outer := st.Vars.InterToOuter(iv)
			if !st.Vars.IsActive(outer) {
				delete(e.implied, il)
			}
		}
		if len(e.implied) == 0 {
			delete(ic.entries, l)
		}
	}
}

// TryBoth implements cdcl.ImplicationCache: for every currently unassigned
// variable, populates (or reuses) both polarities' cached implication
// sets and asserts, as a level-0 unit, any literal that is a member of
// both sets, since a literal implied whichever way the variable is set is
// a necessary consequence of the formula. Returns false if the derivation
// refutes the formula.
func (ic *ImplicationCacheImpl) TryBoth() bool {
	if !ic.enabled {
		return true
	}
	st := ic.st
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
		neg := pos.Negation()

		posEntry, failedPos := ic.populate(pos)
		if failedPos {
			if !admitInterClause(st, []cdcl.Lit{neg}) {
				return false
			}
			continue
		}
		negEntry, failedNeg := ic.populate(neg)
		if failedNeg {
			if !admitInterClause(st, []cdcl.Lit{pos}) {
				return false
			}
			continue
		}

		for l := range posEntry.implied {
			if l == pos || l == neg {
				continue
			}
			if !negEntry.implied[l] {
				continue
			}
			if !admitInterClause(st, []cdcl.Lit{l}) {
				return false
			}
		}
	}
	return true
}

// populate returns the (possibly freshly computed) cache entry for trialLit,
// and whether asserting trialLit conflicts outright.
func (ic *ImplicationCacheImpl) populate(trialLit cdcl.Lit) (entry *litCacheEntry, failed bool) {
	if e, ok := ic.entries[trialLit]; ok {
		return e, false
	}

	st := ic.st
	start := st.Trail.Len()
	st.Trail.NewDecisionLevel()
	st.Trail.Enqueue(trialLit, cdcl.Reason{Kind: cdcl.ReasonDecision})
	conflict := cdcl.Propagate(st)
	if conflict != nil {
		st.Trail.CancelUntil(0)
		return nil, true
	}

	e := &litCacheEntry{implied: make(map[cdcl.Lit]bool)}
	for i := start; i < st.Trail.Len(); i++ {
		e.implied[st.Trail.At(i).Lit] = true
	}
	st.Trail.CancelUntil(0)
	ic.entries[trialLit] = e
	return e, false
}

// SizeBytes implements cdcl.ImplicationCache: a rough estimate consulted
// when deciding whether the cache has grown too large, counting each
// cached literal as one machine word plus map bookkeeping overhead.
func (ic *ImplicationCacheImpl) SizeBytes() int64 {
	const perEntryOverhead = 48
	const perLitOverhead = 24
	var total int64
	for _, e := range ic.entries {
		total += perEntryOverhead
		total += int64(len(e.implied)) * perLitOverhead
	}
	return total
}

// Disable implements cdcl.ImplicationCache: drops all cached state and
// stops TryBoth from doing any further work, the response to an
// over-budget cache.
func (ic *ImplicationCacheImpl) Disable() {
	ic.enabled = false
	ic.entries = make(map[cdcl.Lit]*litCacheEntry)
}

// Enabled implements cdcl.ImplicationCache.
func (ic *ImplicationCacheImpl) Enabled() bool { return ic.enabled }

var _ cdcl.ImplicationCache = (*ImplicationCacheImpl)(nil)

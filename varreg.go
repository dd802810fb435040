package cdcl

import mapset "github.com/deckarep/golang-set/v2"

// outsideNone marks an outer variable that has no corresponding outside
// variable, i.e. a BVA helper.
const outsideNone int32 = -1

// varMeta is the per-outer-variable bookkeeping: removed tag and bva
// flag. Polarity cache and activity live with the default Searcher
// (cdcl/searcher) since they are search heuristics, not orchestrator
// state; VarRegistry owns only what cross-cutting transformations must
// preserve.
type varMeta struct {
	removed      RemovedKind
	bva          bool
	outsideIndex int32 // outsideNone if bva
	resurrected  bool  // removed transitioned back to RemovedNone at least once
}

// VarRegistry is the variable universe: the outside/outer/inter
// three-level numbering plus the per-variable removed tag and bva flag.
type VarRegistry struct {
	meta []varMeta // indexed by outer Var; append-only

	nOutside int // count of outside variables (== count of non-bva outer variables)

	outerToInter []int32 // indexed by outer Var; -1 if the outer var has no inter slot yet
	interToOuter []int32 // indexed by inter Var

	outsideToOuter []int32 // indexed by outside Var; the outer var it currently identifies

	// IndependentVars is the caller-declared independent set, kept sticky
	// here because ModelMinimizer and save/load state both need it and it
	// survives across repeated simplify_problem_outside calls.
	IndependentVars mapset.Set[Var]
}

// NewVarRegistry returns an empty registry.
func NewVarRegistry() *VarRegistry {
	return &VarRegistry{IndependentVars: mapset.NewThreadUnsafeSet[Var]()}
}

// NbOuter returns the number of outer variables ever allocated.
func (r *VarRegistry) NbOuter() int { return len(r.meta) }

// NbOutside returns the number of outside (caller-visible) variables.
func (r *VarRegistry) NbOutside() int { return r.nOutside }

// NbInter returns the number of inter variables currently mapped.
func (r *VarRegistry) NbInter() int { return len(r.interToOuter) }

// NewVar allocates a fresh outer variable. isBVA marks it as a synthetic
// bounded-variable-addition helper. It returns the new variable in outer
// numbering; a 1:1 inter slot is assigned immediately (renumbering may
// later compact it away).
func (r *VarRegistry) NewVar(isBVA bool) Var {
	outer := Var(len(r.meta))
	m := varMeta{outsideIndex: outsideNone}
	if !isBVA {
		m.outsideIndex = int32(r.nOutside)
		r.nOutside++
		r.outsideToOuter = append(r.outsideToOuter, int32(outer))
	} else {
		m.bva = true
	}
	r.meta = append(r.meta, m)
	inter := int32(len(r.interToOuter))
	r.outerToInter = append(r.outerToInter, inter)
	r.interToOuter = append(r.interToOuter, int32(outer))
	return outer
}

// NewVars allocates n fresh, non-bva outer variables and returns the
// first one; the rest are contiguous.
func (r *VarRegistry) NewVars(n int) Var {
	first := Var(len(r.meta))
	for i := 0; i < n; i++ {
		r.NewVar(false)
	}
	return first
}

// IsBVA reports whether outer variable v is a synthetic BVA helper.
func (r *VarRegistry) IsBVA(v Var) bool { return r.meta[v].bva }

// Removed returns v's removed tag.
func (r *VarRegistry) Removed(v Var) RemovedKind { return r.meta[v].removed }

// IsActive reports whether v is currently part of the live variable
// universe: a variable is active iff removed == none.
func (r *VarRegistry) IsActive(v Var) bool { return r.meta[v].removed == RemovedNone }

// MarkRemoved transitions v's removed tag from none to kind. It panics
// if v is already removed with a different kind: the transition is
// monotonic absent an explicit un-remove.
func (r *VarRegistry) MarkRemoved(v Var, kind RemovedKind) {
	m := &r.meta[v]
	if m.removed != RemovedNone && m.removed != kind {
		panic("cdcl: conflicting removed-kind transition for variable")
	}
	m.removed = kind
}

// Unremove resurrects v back to an active variable. Used by
// ClauseIngress's un-elimination and component re-addition recovery
// paths. Recorded separately from a variable that was never removed.
func (r *VarRegistry) Unremove(v Var) {
	m := &r.meta[v]
	if m.removed != RemovedNone {
		m.resurrected = true
	}
	m.removed = RemovedNone
}

// WasResurrected reports whether v was ever brought back from a removed
// state, distinguishing it from a variable that was simply never removed.
func (r *VarRegistry) WasResurrected(v Var) bool { return r.meta[v].resurrected }

// OuterToInter maps an outer variable to its current inter variable. It
// returns (0, false) if the outer variable has no inter slot.
func (r *VarRegistry) OuterToInter(v Var) (Var, bool) {
	i := r.outerToInter[v]
	if i < 0 {
		return 0, false
	}
	return Var(i), true
}

// InterToOuter maps an inter variable back to its outer variable.
func (r *VarRegistry) InterToOuter(v Var) Var {
	return Var(r.interToOuter[v])
}

// OuterToOutside maps an outer variable to its outside index. ok is
// false for BVA variables, which have no outside representation.
func (r *VarRegistry) OuterToOutside(v Var) (Var, bool) {
	idx := r.meta[v].outsideIndex
	if idx == outsideNone {
		return 0, false
	}
	return Var(idx), true
}

// EnsureInterSlot guarantees outer variable v has an inter slot,
// allocating one (identity-appended) if it does not yet.
func (r *VarRegistry) EnsureInterSlot(v Var) Var {
	if i := r.outerToInter[v]; i >= 0 {
		return Var(i)
	}
	inter := Var(len(r.interToOuter))
	r.outerToInter[v] = int32(inter)
	r.interToOuter = append(r.interToOuter, int32(v))
	return inter
}

// RoundTrip checks the three-namespace round-trip law for a single
// outside variable: inter -> outer -> outside must yield v back,
// provided v is not a BVA variable. It is used by tests, never by the
// hot path.
func (r *VarRegistry) RoundTrip(outside Var) bool {
	outer := r.outsideToOuterIdentity(outside)
	if outer < 0 {
		return false
	}
	inter, ok := r.OuterToInter(Var(outer))
	if !ok {
		return false
	}
	backOuter := r.InterToOuter(inter)
	backOutside, ok := r.OuterToOutside(backOuter)
	return ok && backOutside == outside
}

// OutsideToOuter maps an outside variable to its current outer variable.
func (r *VarRegistry) OutsideToOuter(outside Var) Var {
	return Var(r.outsideToOuter[outside])
}

// outsideToOuterIdentity is a thin adapter used by RoundTrip.
func (r *VarRegistry) outsideToOuterIdentity(outside Var) int32 {
	if int(outside) >= len(r.outsideToOuter) {
		return -1
	}
	return r.outsideToOuter[outside]
}

// applyRenumbering installs a freshly computed outer<->inter map,
// produced by the Renumberer, replacing both maps wholesale.
func (r *VarRegistry) applyRenumbering(outerToInter, interToOuter []int32) {
	r.outerToInter = outerToInter
	r.interToOuter = interToOuter
}

package cdcl

// ReasonKind classifies why a trail record's literal became true.
type ReasonKind int8

const (
	// ReasonDecision marks a branching decision.
	ReasonDecision ReasonKind = iota
	// ReasonIngressUnit marks a unit derived by ClauseIngress.
	ReasonIngressUnit
	// ReasonPropBinary marks propagation through a binary clause.
	ReasonPropBinary
	// ReasonPropLong marks propagation through a long clause.
	ReasonPropLong
	// ReasonLearnedUnit marks a unit derived by conflict analysis (a
	// learned clause of size 1), asserted directly at level 0 by the
	// Searcher rather than routed back through ClauseIngress.
	ReasonLearnedUnit
)

// Reason records why a literal was assigned.
type Reason struct {
	Kind   ReasonKind
	Clause Handle // valid iff Kind == ReasonPropLong
	Other  Lit    // valid iff Kind == ReasonPropBinary: the other lit of the binary clause
}

// TrailRecord is one entry of the assignment trail.
type TrailRecord struct {
	Lit    Lit
	Reason Reason
}

// Trail is the ordered log of assignments, with per-decision-level
// fenceposts.
type Trail struct {
	records  []TrailRecord
	trailLim []int // trailLim[d] is the index where decision level d+1 began

	value  []TriVal // per-variable current binding
	level  []int32  // per-variable decision level, valid iff value != Undef
	reason []Reason // per-variable reason, valid iff value != Undef

	qhead int // index of the next trail entry to propagate
}

// NewTrail allocates a trail for nVars variables.
func NewTrail(nVars int) *Trail {
	return &Trail{
		value:  make([]TriVal, nVars),
		level:  make([]int32, nVars),
		reason: make([]Reason, nVars),
	}
}

// Grow extends the trail's per-variable arrays to cover nVars variables.
func (t *Trail) Grow(nVars int) {
	if nVars <= len(t.value) {
		return
	}
	value := make([]TriVal, nVars)
	copy(value, t.value)
	t.value = value
	level := make([]int32, nVars)
	copy(level, t.level)
	t.level = level
	reason := make([]Reason, nVars)
	copy(reason, t.reason)
	t.reason = reason
}

// DecisionLevel returns the current decision level (0 at the root).
func (t *Trail) DecisionLevel() int { return len(t.trailLim) }

// Len returns the number of trail records.
func (t *Trail) Len() int { return len(t.records) }

// At returns the ith trail record.
func (t *Trail) At(i int) TrailRecord { return t.records[i] }

// QHead returns the propagation queue head.
func (t *Trail) QHead() int { return t.qhead }

// SetQHead sets the propagation queue head, used by the propagator as it
// advances through pending literals.
func (t *Trail) SetQHead(i int) { t.qhead = i }

// AtLevel0Fully returns true iff every trail record has been consumed by
// propagation, the precondition ClauseIngress requires before admitting
// any new clause.
func (t *Trail) AtLevel0Fully() bool { return t.qhead == len(t.records) }

// Value returns the current binding of v.
func (t *Trail) Value(v Var) TriVal { return t.value[v] }

// LitValue returns the current truth value of literal l.
func (t *Trail) LitValue(l Lit) TriVal { return litValue(t.value[l.Var()], l) }

// LevelOf returns the decision level at which v was assigned. Only valid
// if Value(v) != Undef.
func (t *Trail) LevelOf(v Var) int { return int(t.level[v]) }

// ReasonOf returns the reason v was assigned. Only valid if Value(v) != Undef.
func (t *Trail) ReasonOf(v Var) Reason { return t.reason[v] }

// Enqueue appends lit to the trail, binding its variable at the current
// decision level with the given reason.
func (t *Trail) Enqueue(lit Lit, reason Reason) {
	v := lit.Var()
	t.value[v] = boolToTri(lit.IsPositive())
	t.level[v] = int32(t.DecisionLevel())
	t.reason[v] = reason
	t.records = append(t.records, TrailRecord{Lit: lit, Reason: reason})
}

// NewDecisionLevel opens a new decision level, recording where it begins.
func (t *Trail) NewDecisionLevel() {
	t.trailLim = append(t.trailLim, len(t.records))
}

// CancelUntil pops assignments back to the start of decision level d,
// unsetting value/level/reason for every popped variable, and returns the
// popped literals in trail order (oldest first) so a caller (e.g. the
// heuristic order heap) can reinsert the corresponding variables.
func (t *Trail) CancelUntil(d int) []Lit {
	if d >= t.DecisionLevel() {
		return nil
	}
	cut := t.trailLim[d]
	popped := make([]Lit, 0, len(t.records)-cut)
	for i := cut; i < len(t.records); i++ {
		popped = append(popped, t.records[i].Lit)
	}
	for _, lit := range popped {
		v := lit.Var()
		t.value[v] = Undef
		t.level[v] = 0
		t.reason[v] = Reason{}
	}
	t.records = t.records[:cut]
	t.trailLim = t.trailLim[:d]
	if t.qhead > cut {
		t.qhead = cut
	}
	return popped
}

// FlushLevel0 clears every record, used when the solver becomes
// terminally UNSAT: level-0 assignments are never retracted except
// during a UNSAT flush.
func (t *Trail) FlushLevel0() {
	for i := range t.value {
		t.value[i] = Undef
		t.level[i] = 0
		t.reason[i] = Reason{}
	}
	t.records = t.records[:0]
	t.trailLim = t.trailLim[:0]
	t.qhead = 0
}

// Rewrite rebuilds the trail's per-variable arrays and record literals
// under a variable renumbering. fn maps an old literal to its new one, or
// LitUndef if the underlying variable left the active universe (in which
// case the renumberer has already propagated the database to a fixpoint
// so no such variable can still be on the trail).
func (t *Trail) Rewrite(newNVars int, fn func(Lit) Lit) {
	value := make([]TriVal, newNVars)
	level := make([]int32, newNVars)
	reason := make([]Reason, newNVars)
	for v := range t.value {
		if t.value[v] == Undef {
			continue
		}
		l := boolToLit(Var(v), t.value[v])
		newLit := fn(l)
		if newLit == LitUndef {
			continue
		}
		nv := newLit.Var()
		value[nv] = t.value[v]
		level[nv] = t.level[v]
		reason[nv] = t.reason[v] // clause handles are relocated separately via Arena.Consolidate
	}
	t.value, t.level, t.reason = value, level, reason
	for i := range t.records {
		t.records[i].Lit = fn(t.records[i].Lit)
	}
}

func boolToLit(v Var, t TriVal) Lit {
	if t == True {
		return v.Lit()
	}
	return v.Lit().Negation()
}

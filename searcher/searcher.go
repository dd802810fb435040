// Package searcher provides the default Searcher collaborator: the CDCL
// decision heuristic, unit propagation driver, conflict analysis and
// clause learning, and restart policy the core orchestrator treats as an
// external collaborator, specified only at its interface.
//
// It follows the classic MiniSat-family main CDCL loop, 1UIP
// clause-learning algorithm, activity heap, Luby restart sequence and
// glue-trend restart trigger, adapted to operate against a *cdcl.State
// handle instead of an embedded solver struct: a plain module of
// functions that takes a mutable handle to the state.
package searcher

import (
	"math/rand"
	"sort"
	"time"

	"github.com/crillab/cdclsat"
)

// Searcher is the default cdcl.Searcher implementation.
type Searcher struct {
	st *cdcl.State

	activity []float64
	polarity []bool
	heap     *varHeap

	varInc      float64
	clauseInc   float32
	glue        glueTrend
	rng         *rand.Rand
	restartConf int64 // RestartGeometric: current per-restart conflict threshold
	lubyIndex   uint

	conflictsSinceRestart int64

	start            time.Time
	sinceLastTimeChk int64
}

// New returns a Searcher bound to st. Every per-variable slice is grown
// lazily from st.Vars.NbInter() as Solve is called, so New may be
// constructed before any variable exists.
func New(st *cdcl.State) *Searcher {
	sr := &Searcher{
		st:          st,
		varInc:      1.0,
		clauseInc:   1.0,
		rng:         rand.New(rand.NewSource(1)),
		restartConf: int64(st.Cfg.RestartFirst),
		lubyIndex:   1,
	}
	sr.heap = newVarHeap(nil)
	return sr
}

func (sr *Searcher) cfg() *cdcl.Config { return sr.st.Cfg }

// sync grows the per-variable heuristic slices to the current inter
// variable count and re-seeds the heap with any newly appeared
// variables. A shrink (only possible after a renumbering compacted the
// inter namespace) drops all heuristic history: only the clause database
// and trail are guaranteed to survive renumbering, not search-heuristic
// state.
func (sr *Searcher) sync() {
	n := sr.st.Vars.NbInter()
	if n < len(sr.activity) {
		sr.activity = sr.activity[:0]
		sr.polarity = sr.polarity[:0]
		sr.heap = newVarHeap(nil)
	}
	for len(sr.activity) < n {
		sr.activity = append(sr.activity, 0)
		sr.polarity = append(sr.polarity, false)
	}
	sr.heap.activity = sr.activity
	sr.heap.grow(n)
	for v := int32(0); v < int32(n); v++ {
		if sr.st.Trail.Value(cdcl.Var(v)) == cdcl.Undef && !sr.heap.contains(v) {
			sr.heap.insert(v)
		}
	}
}

// Solve implements cdcl.Searcher.
func (sr *Searcher) Solve(budget cdcl.SearchBudget) cdcl.Verdict {
	sr.sync()
	if sr.start.IsZero() {
		sr.start = time.Now()
	}
	trail := sr.st.Trail
	var conflictsThisCall int64

	for {
		conflict := cdcl.Propagate(sr.st)
		if conflict != nil {
			sr.st.Stats.NbConflicts++
			sr.conflictsSinceRestart++
			conflictsThisCall++
			if trail.DecisionLevel() == 0 {
				return cdcl.VerdictUnsat
			}
			sr.varInc /= sr.cfg().VarDecayStart
			sr.clauseInc /= float32(sr.cfg().ClauseDecay)

			learnt, backtrackLevel, glue := sr.analyze(conflict)
			sr.glue.add(glue)
			sr.backtrackTo(backtrackLevel)
			sr.attachLearnt(learnt, glue)

			if conflictsThisCall >= budget.MaxConflicts {
				return cdcl.VerdictUndef
			}
			if sr.timeExpired() {
				return cdcl.VerdictUndef
			}
			if sr.shouldRestart() {
				sr.backtrackTo(0)
			}
			continue
		}

		if trail.Len() == len(sr.activity) {
			return cdcl.VerdictSat
		}

		lit := sr.decide()
		if lit == cdcl.LitUndef {
			return cdcl.VerdictSat
		}
		sr.st.Stats.NbDecisions++
		trail.NewDecisionLevel()
		trail.Enqueue(lit, cdcl.Reason{Kind: cdcl.ReasonDecision})
	}
}

func (sr *Searcher) timeExpired() bool {
	if sr.cfg().MaxTime < 0 {
		return false
	}
	sr.sinceLastTimeChk++
	if sr.sinceLastTimeChk < 4096 {
		return false
	}
	sr.sinceLastTimeChk = 0
	return time.Since(sr.start).Seconds() > sr.cfg().MaxTime
}

func (sr *Searcher) shouldRestart() bool {
	switch sr.cfg().RestartType {
	case cdcl.RestartLuby:
		threshold := int64(luby(sr.lubyIndex)) * int64(sr.cfg().RestartFirst)
		if sr.conflictsSinceRestart < threshold {
			return false
		}
		sr.lubyIndex++
	case cdcl.RestartGeometric:
		if sr.conflictsSinceRestart < sr.restartConf {
			return false
		}
		sr.restartConf = int64(float64(sr.restartConf) * sr.cfg().ConflGrowthRate)
	default: // RestartGlue
		if !sr.glue.mustRestart() {
			return false
		}
	}
	sr.glue.clear()
	sr.conflictsSinceRestart = 0
	sr.st.Stats.NbRestarts++
	return true
}

// decide picks the next unassigned variable off the activity heap and
// applies the configured polarity policy.
func (sr *Searcher) decide() cdcl.Lit {
	for !sr.heap.empty() {
		v := cdcl.Var(sr.heap.removeMin())
		if sr.st.Trail.Value(v) != cdcl.Undef {
			continue
		}
		return v.SignedLit(sr.pickSign(v))
	}
	return cdcl.LitUndef
}

func (sr *Searcher) pickSign(v cdcl.Var) bool {
	switch sr.cfg().PolarityMode {
	case cdcl.PolarityTrue:
		return false
	case cdcl.PolarityFalse:
		return true
	case cdcl.PolarityRandom:
		return sr.rng.Intn(2) == 0
	default:
		return sr.polarity[v]
	}
}

// backtrackTo undoes trail assignments back to decLevel, reinserting the
// unassigned variables into the decision heap and caching their last
// polarity (PolarityCache mode).
func (sr *Searcher) backtrackTo(decLevel int) {
	popped := sr.st.Trail.CancelUntil(decLevel)
	for i := len(popped) - 1; i >= 0; i-- {
		l := popped[i]
		v := l.Var()
		sr.polarity[v] = !l.IsPositive()
		if !sr.heap.contains(int32(v)) {
			sr.heap.insert(int32(v))
		}
	}
}

func (sr *Searcher) bumpVarActivity(v cdcl.Var) {
	sr.activity[v] += sr.varInc
	if sr.activity[v] > 1e100 {
		for i := range sr.activity {
			sr.activity[i] *= 1e-100
		}
		sr.varInc *= 1e-100
	}
	if sr.heap.contains(int32(v)) {
		sr.heap.update(int32(v))
	}
}

func (sr *Searcher) bumpClauseActivity(c *cdcl.Clause) {
	c.BumpActivity(sr.clauseInc)
	if c.Activity() > 1e20 {
		sr.st.Arena.Each(func(_ cdcl.Handle, other *cdcl.Clause) {
			if other.Redundant() {
				other.RescaleActivity(1e-20)
			}
		})
		sr.clauseInc *= 1e-20
	}
}

// conflictLits returns the literals of the falsified clause a Conflict
// reports, dereferencing the arena for long clauses.
func conflictLits(c *cdcl.Conflict, arena *cdcl.Arena) []cdcl.Lit {
	if c.IsBinary {
		return c.Lits[:]
	}
	return arena.Deref(c.Handle).Lits()
}

// reasonLits returns the antecedent literals that justify why v (whose
// current trail literal was propagated for reason) is true, excluding v's
// own literal: for a binary reason this is the clause's other literal;
// for a long-clause reason this is every literal but the watched,
// asserting one at index 0 (propagate.go always places it there).
func reasonLits(reason cdcl.Reason, arena *cdcl.Arena) []cdcl.Lit {
	switch reason.Kind {
	case cdcl.ReasonPropBinary:
		return []cdcl.Lit{reason.Other}
	case cdcl.ReasonPropLong:
		lits := arena.Deref(reason.Clause).Lits()
		return lits[1:]
	default:
		return nil
	}
}

// analyze runs first-UIP conflict analysis, returning the learned clause
// (asserting literal first), the level to backtrack to, and the clause's
// glue score.
func (sr *Searcher) analyze(conflict *cdcl.Conflict) (learnt []cdcl.Lit, backtrackLevel int, glue int) {
	trail := sr.st.Trail
	level := trail.DecisionLevel()
	seen := make([]bool, len(sr.activity))

	learnt = make([]cdcl.Lit, 1) // learnt[0] filled in once the UIP is found
	pathC := 0
	idx := trail.Len() - 1
	var p cdcl.Lit = cdcl.LitUndef

	if !conflict.IsBinary {
		sr.bumpClauseActivity(sr.st.Arena.Deref(conflict.Handle))
	}
	lits := conflictLits(conflict, sr.st.Arena)
	for {
		for _, l := range lits {
			v := l.Var()
			if seen[v] || trail.LevelOf(v) == 0 {
				continue
			}
			seen[v] = true
			sr.bumpVarActivity(v)
			if trail.LevelOf(v) >= level {
				pathC++
			} else {
				learnt = append(learnt, l)
			}
		}
		for !seen[trail.At(idx).Lit.Var()] {
			idx--
		}
		p = trail.At(idx).Lit
		v := p.Var()
		seen[v] = false
		pathC--
		idx--
		if pathC <= 0 {
			break
		}
		reason := trail.ReasonOf(v)
		if reason.Kind == cdcl.ReasonPropLong {
			sr.bumpClauseActivity(sr.st.Arena.Deref(reason.Clause))
		}
		lits = reasonLits(reason, sr.st.Arena)
	}
	learnt[0] = p.Negation()

	backtrackLevel = 0
	levels := map[int]bool{level: true}
	for _, l := range learnt[1:] {
		lv := trail.LevelOf(l.Var())
		levels[lv] = true
		if lv > backtrackLevel {
			backtrackLevel = lv
		}
	}
	glue = len(levels)

	if len(learnt) > 1 {
		best := 1
		for i := 2; i < len(learnt); i++ {
			if trail.LevelOf(learnt[i].Var()) > trail.LevelOf(learnt[best].Var()) {
				best = i
			}
		}
		learnt[1], learnt[best] = learnt[best], learnt[1]
	}
	return learnt, backtrackLevel, glue
}

// attachLearnt installs the learned clause: a unit is asserted directly
// at level 0, a pair becomes a binary watch, anything longer is
// allocated in the arena with a computed retention tier. Every case is
// mirrored to the DRAT stream.
func (sr *Searcher) attachLearnt(learnt []cdcl.Lit, glue int) {
	st := sr.st
	st.Drat.AddClause(learnt)
	switch len(learnt) {
	case 1:
		st.Trail.Enqueue(learnt[0], cdcl.Reason{Kind: cdcl.ReasonLearnedUnit})
		st.Stats.NbUnitLearned++
	case 2:
		st.Watch.AttachBinary(learnt[0], learnt[1], true)
		st.Stats.NbBinaryLearned++
	default:
		c := cdcl.NewLearnedClause(learnt, glue, st.Stats.NbConflicts, sr.cfg())
		h := st.Arena.Alloc(c)
		st.Watch.AttachLong(h, learnt[0], learnt[1])
	}
	st.Stats.NbLearned++
	sr.reduceDB()
}

// reduceDB periodically evicts the least-active TierLocal learned
// clauses once their count exceeds Config.RedundantCap: only the
// aggressively-reclaimed local tier is ever evicted here, never core or
// mid, matching CryptoMiniSat's tiered-retention rationale.
func (sr *Searcher) reduceDB() {
	if sr.st.Stats.NbLearned%1000 != 0 {
		return
	}
	var locals []*cdcl.Clause
	var handles []cdcl.Handle
	sr.st.Arena.Each(func(h cdcl.Handle, c *cdcl.Clause) {
		if c.Redundant() && c.Tier() == cdcl.TierLocal && !c.Removed() {
			locals = append(locals, c)
			handles = append(handles, h)
		}
	})
	if len(locals) <= sr.cfg().RedundantCap {
		return
	}
	order := make([]int, len(locals))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return locals[order[a]].Activity() < locals[order[b]].Activity() })

	toRemove := len(locals) - sr.cfg().RedundantCap
	for _, i := range order[:toRemove] {
		c, h := locals[i], handles[i]
		if sr.clauseInUse(c) {
			continue
		}
		sr.st.Drat.DeleteClause(c.Lits())
		sr.st.Watch.DetachLong(h, c.Get(0), c.Get(1))
		c.MarkRemoved()
		sr.st.Arena.Free(h)
		sr.st.Stats.NbDeleted++
	}
}

// clauseInUse reports whether c is currently some variable's reason,
// which would leave a dangling Reason.Clause handle if freed.
func (sr *Searcher) clauseInUse(c *cdcl.Clause) bool {
	for _, l := range c.Lits() {
		v := l.Var()
		if sr.st.Trail.Value(v) == cdcl.Undef {
			continue
		}
		r := sr.st.Trail.ReasonOf(v)
		if r.Kind == cdcl.ReasonPropLong && sr.st.Arena.Deref(r.Clause) == c {
			return true
		}
	}
	return false
}

// ClearGaussianMatrices implements cdcl.Searcher. The default searcher
// does not cache Gaussian-elimination matrices during search itself
// (that reasoning lives entirely in the GaussianEngine inprocessing
// collaborator, consulted between search iterations); this is a no-op
// kept to satisfy the interface and to document the boundary.
func (sr *Searcher) ClearGaussianMatrices() {}

// FoldStats implements cdcl.Searcher: it resets the per-iteration glue
// trend window, since a fresh SearchBudget begins a new episode and a
// stale recent-glue average from the previous iteration would bias the
// RestartGlue trigger.
func (sr *Searcher) FoldStats() {
	sr.glue.clear()
}

// LowerLevel0GlueThreshold implements cdcl.Searcher: it tightens the
// tier-0 retention cutoff through the shared Config pointer every
// collaborator observes, in response to a glues-too-low heuristic.
func (sr *Searcher) LowerLevel0GlueThreshold() {
	if sr.cfg().GluePutLev0IfBelowOrEq > 1 {
		sr.cfg().GluePutLev0IfBelowOrEq--
	}
}

// RebuildOrderHeap implements cdcl.Searcher: it discards the current
// heap order and reinserts every currently unassigned variable, called
// by simplifyProblem before running the inprocessing schedule.
func (sr *Searcher) RebuildOrderHeap() {
	sr.sync()
	n := sr.st.Vars.NbInter()
	ns := make([]int32, 0, n)
	for v := int32(0); v < int32(n); v++ {
		if sr.st.Trail.Value(cdcl.Var(v)) == cdcl.Undef {
			ns = append(ns, v)
		}
	}
	sr.heap.rebuild(ns)
}

var _ cdcl.Searcher = (*Searcher)(nil)

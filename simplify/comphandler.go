package simplify

import (
	"github.com/crillab/cdclsat"
	"github.com/crillab/cdclsat/searcher"
)

// maxComponentVars bounds the free-variable count of a component this
// handler will detach and solve on a nested Solver; larger components are
// left in the live database rather than paying for a second, fully
// isolated search.
const maxComponentVars = 40

// componentRecord is one detached, independently solved component: its
// outer-numbered variables, the outer-numbered clauses removed from the
// live database, and (once solved) their model.
type componentRecord struct {
	vars    []cdcl.Var
	clauses [][]cdcl.Lit
	model   map[cdcl.Var]cdcl.TriVal
}

// ComponentHandlerImpl is the default ComponentHandler: it partitions the
// current clause database's co-occurrence graph into connected
// components via union-find, and genuinely solves any small enough
// component with a nested Solver + searcher.Searcher, rather than merely
// bookkeeping the split.
type ComponentHandlerImpl struct {
	st    *cdcl.State
	comps []componentRecord
}

// NewComponentHandler returns a ComponentHandlerImpl bound to st.
func NewComponentHandler(st *cdcl.State) *ComponentHandlerImpl {
	return &ComponentHandlerImpl{st: st}
}

// discover partitions the current clause database's co-occurrence graph
// into connected components via union-find, returning each component's
// active variables and the clauses that fall entirely within it, both
// keyed by union-find root.
func (ch *ComponentHandlerImpl) discover() (byRoot map[int][]cdcl.Var, clausesByRoot map[int][]occClause) {
	st := ch.st
	clauses, _ := buildOccurrences(st)

	n := st.Vars.NbInter()
	uf := newUnionFind(n)
	touched := make([]bool, n)
	for _, c := range clauses {
		if len(c.lits) == 0 {
			continue
		}
		first := c.lits[0].Var()
		touched[first] = true
		for _, l := range c.lits[1:] {
			touched[l.Var()] = true
			uf.union(int(first), int(l.Var()))
		}
	}

	byRoot = make(map[int][]cdcl.Var)
	for v := 0; v < n; v++ {
		if !touched[v] {
			continue
		}
		outer := st.Vars.InterToOuter(cdcl.Var(v))
		if !st.Vars.IsActive(outer) {
			continue
		}
		r := uf.find(v)
		byRoot[r] = append(byRoot[r], cdcl.Var(v))
	}

	clausesByRoot = make(map[int][]occClause)
	for _, c := range clauses {
		if len(c.lits) == 0 {
			continue
		}
		r := uf.find(int(c.lits[0].Var()))
		clausesByRoot[r] = append(clausesByRoot[r], c)
	}
	return byRoot, clausesByRoot
}

// FindAndHandle implements cdcl.ComponentHandler.
func (ch *ComponentHandlerImpl) FindAndHandle() bool {
	byRoot, clausesByRoot := ch.discover()

	// Only decompose when there is more than one component; a single
	// component spanning the whole active universe is not worth detaching.
	if len(byRoot) < 2 {
		return true
	}

	for r, vars := range byRoot {
		if len(vars) == 0 || len(vars) > maxComponentVars {
			continue
		}
		if !ch.solveComponent(vars, clausesByRoot[r]) {
			return false
		}
	}
	return true
}

// FindComponents implements cdcl.ComponentHandler: it runs the same
// discovery pass as FindAndHandle but never detaches or solves anything,
// only recording how many components the current database splits into.
func (ch *ComponentHandlerImpl) FindComponents() bool {
	byRoot, _ := ch.discover()
	ch.st.Stats.NbComponentsFound += int64(len(byRoot))
	return true
}

// solveComponent detaches vars/comp from the live database, solves them on
// a nested Solver, and records the result (or propagates UNSAT).
func (ch *ComponentHandlerImpl) solveComponent(vars []cdcl.Var, comp []occClause) bool {
	st := ch.st

	local := make(map[cdcl.Var]int32, len(vars))
	for i, v := range vars {
		local[v] = int32(i)
	}

	sub := cdcl.NewSolver(cdcl.DefaultConfig())
	sub.NewVars(len(vars))
	sub.SetSearcher(searcher.New(sub.State()))

	rec := componentRecord{}
	for _, v := range vars {
		rec.vars = append(rec.vars, st.Vars.InterToOuter(v))
	}
	subOk := true
	for _, c := range comp {
		rec.clauses = append(rec.clauses, toOuter(st, c.lits))
		ch.detach(c)

		if !subOk {
			continue
		}
		// Every literal here belongs to this component by construction: the
		// union-find above merges every variable of a clause into one root
		// before comp is built, so local[l.Var()] always has an entry.
		localLits := make([]int32, len(c.lits))
		for i, l := range c.lits {
			signed := local[l.Var()] + 1
			if !l.IsPositive() {
				signed = -signed
			}
			localLits[i] = signed
		}
		if ok, _ := sub.AddClause(localLits, false); !ok {
			subOk = false
		}
	}
	if !subOk {
		st.Drat.Empty()
		ch.finishComponent(rec, vars)
		return false
	}

	verdict, _ := sub.Solve()
	if verdict == cdcl.VerdictUnsat {
		st.Drat.Empty()
		ch.finishComponent(rec, vars)
		return false
	}

	// Read the nested solver's full assignment from its trail: GetModel's
	// minimized model can leave component variables Undef.
	subVars, subTrail := sub.State().Vars, sub.State().Trail
	rec.model = make(map[cdcl.Var]cdcl.TriVal, len(vars))
	for i, v := range vars {
		val := cdcl.Undef
		if inter, ok := subVars.OuterToInter(subVars.OutsideToOuter(cdcl.Var(i))); ok {
			val = subTrail.Value(inter)
		}
		outer := st.Vars.InterToOuter(v)
		rec.model[outer] = val
		st.Vars.MarkRemoved(outer, cdcl.RemovedDecomposed)
	}
	ch.comps = append(ch.comps, rec)
	return true
}

func (ch *ComponentHandlerImpl) finishComponent(rec componentRecord, vars []cdcl.Var) {
	for _, v := range vars {
		outer := ch.st.Vars.InterToOuter(v)
		ch.st.Vars.MarkRemoved(outer, cdcl.RemovedDecomposed)
	}
	ch.comps = append(ch.comps, rec)
}

func (ch *ComponentHandlerImpl) detach(c occClause) {
	st := ch.st
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

// ReaddRemovedClauses implements cdcl.ComponentHandler: reintroduces
// every clause from every previously removed component, since a single
// clause touching a decomposed variable invalidates the whole
// decomposition, not just the touched component.
func (ch *ComponentHandlerImpl) ReaddRemovedClauses() {
	st := ch.st
	pending := ch.comps
	ch.comps = nil
	for _, rec := range pending {
		for _, v := range rec.vars {
			st.Vars.Unremove(v)
			st.Vars.EnsureInterSlot(v)
		}
		for _, outerLits := range rec.clauses {
			lits := fromOuter(st, outerLits)
			admitInterClause(st, lits)
		}
	}
}

// ExtendModel implements cdcl.ComponentHandler: fills in the
// outer-numbered model with every component's stored solution.
func (ch *ComponentHandlerImpl) ExtendModel(model []cdcl.TriVal) []cdcl.TriVal {
	for _, rec := range ch.comps {
		for outer, val := range rec.model {
			if int(outer) >= len(model) {
				grown := make([]cdcl.TriVal, int(outer)+1)
				copy(grown, model)
				model = grown
			}
			model[outer] = val
		}
	}
	return model
}

// unionFind is a small disjoint-set structure used to partition the
// co-occurrence graph into connected components without the recursion
// depth a DFS over a large clause database could hit.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

var _ cdcl.ComponentHandler = (*ComponentHandlerImpl)(nil)

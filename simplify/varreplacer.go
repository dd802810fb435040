package simplify

import (
	"sort"

	"github.com/crillab/cdclsat"
)

// VarReplacerImpl is the default VarReplacer: it finds equivalent literals
// via strongly connected components of the binary implication graph and
// substitutes every occurrence of the replaced variable's literal with its
// representative throughout the live clause database, using Tarjan's
// algorithm over the directed implication graph.
type VarReplacerImpl struct {
	st *cdcl.State

	// replacedWith maps an outer variable that has been substituted away to
	// the outer literal that now stands in for it.
	replacedWith map[cdcl.Var]cdcl.Lit
	replacer     map[cdcl.Var]bool
}

// NewVarReplacer returns a VarReplacerImpl bound to st.
func NewVarReplacer(st *cdcl.State) *VarReplacerImpl {
	return &VarReplacerImpl{
		st:           st,
		replacedWith: make(map[cdcl.Var]cdcl.Lit),
		replacer:     make(map[cdcl.Var]bool),
	}
}

// FindAndReplace implements cdcl.VarReplacer: one SCC pass over the binary
// implication graph, substituting every non-representative literal's
// variable throughout the clause database.
func (vr *VarReplacerImpl) FindAndReplace() bool {
	st := vr.st
	n := st.Vars.NbInter()
	nl := n * 2

	// A binary clause (l1 v l2) is attached at watch.lists[!l1] and
	// watch.lists[!l2] (WatchIndex.AttachBinary), each entry naming the
	// clause's other literal. The list index is exactly the antecedent
	// literal Propagate checks when it becomes true (propagate.go: "list :=
	// watch.lists[lit]" where lit is the literal just enqueued), so each
	// entry directly encodes the implication lit -> e.Other.
	adj := make([][]int32, nl)
	for lit, list := range watchLists(st) {
		for _, e := range list {
			if !e.IsBinary {
				continue
			}
			adj[lit] = append(adj[lit], int32(e.Other))
		}
	}

	sccOf := tarjanSCC(adj)

	members := make(map[int32][]cdcl.Lit)
	for l := 0; l < nl; l++ {
		members[sccOf[l]] = append(members[sccOf[l]], cdcl.Lit(l))
	}

	subst := make(map[cdcl.Var]cdcl.Lit) // inter var -> replacement inter lit
	for _, lits := range members {
		if len(lits) < 2 {
			continue
		}
		byVar := make(map[cdcl.Var]cdcl.Lit, len(lits))
		for _, l := range lits {
			if other, ok := byVar[l.Var()]; ok && other == l.Negation() {
				st.Drat.Empty()
				return false
			}
			byVar[l.Var()] = l
		}

		rep := lits[0]
		for _, l := range lits[1:] {
			if l < rep {
				rep = l
			}
		}
		for v, l := range byVar {
			if v == rep.Var() {
				continue
			}
			target := rep
			if l != v.Lit() {
				target = rep.Negation()
			}
			subst[v] = target
		}
	}

	if len(subst) == 0 {
		return true
	}

	fn := func(l cdcl.Lit) cdcl.Lit {
		target, ok := subst[l.Var()]
		if !ok {
			return l
		}
		if l.IsPositive() {
			return target
		}
		return target.Negation()
	}

	st.Watch.Rewrite(n, fn)
	if !rewriteArena(st, fn) {
		return false
	}

	for v, target := range subst {
		outerV := st.Vars.InterToOuter(v)
		outerTarget := st.Vars.InterToOuter(target.Var()).SignedLit(!target.IsPositive())
		vr.replacedWith[outerV] = outerTarget
		vr.replacer[outerTarget.Var()] = true
		st.Vars.MarkRemoved(outerV, cdcl.RemovedReplaced)
	}
	return true
}

// GetLitReplacedWith implements cdcl.VarReplacer: it follows the
// replacement chain (possible across repeated FindAndReplace calls, each
// of which only resolves equivalences within its own pass) to a fixpoint.
func (vr *VarReplacerImpl) GetLitReplacedWith(l cdcl.Lit) cdcl.Lit {
	for i := 0; i < len(vr.replacedWith)+1; i++ {
		target, ok := vr.replacedWith[l.Var()]
		if !ok {
			return l
		}
		if !l.IsPositive() {
			target = target.Negation()
		}
		l = target
	}
	return l
}

// IsReplacer implements cdcl.VarReplacer.
func (vr *VarReplacerImpl) IsReplacer(v cdcl.Var) bool { return vr.replacer[v] }

// rewriteArena applies fn to every literal of every live long clause,
// re-sorting, deduplicating and dropping tautologies, and physically
// migrating any clause that shrinks below 3 literals into a binary clause
// or a level-0 unit. Returns false if a clause collapses to empty.
func rewriteArena(st *cdcl.State, fn func(cdcl.Lit) cdcl.Lit) bool {
	type liveClause struct {
		h    cdcl.Handle
		w0   cdcl.Lit
		w1   cdcl.Lit
		lits []cdcl.Lit
	}
	var changed []liveClause
	st.Arena.Each(func(h cdcl.Handle, c *cdcl.Clause) {
		if c.Removed() {
			return
		}
		anyChanged := false
		newLits := make([]cdcl.Lit, c.Len())
		for i := 0; i < c.Len(); i++ {
			nl := fn(c.Get(i))
			if nl != c.Get(i) {
				anyChanged = true
			}
			newLits[i] = nl
		}
		if !anyChanged {
			return
		}
		changed = append(changed, liveClause{h: h, w0: c.Get(0), w1: c.Get(1), lits: newLits})
	})

	for _, lc := range changed {
		c := st.Arena.Deref(lc.h)
		if c.Removed() {
			continue
		}
		sort.Slice(lc.lits, func(i, j int) bool { return lc.lits[i] < lc.lits[j] })
		dedup := lc.lits[:0]
		p := cdcl.LitUndef
		tautology := false
		for _, l := range lc.lits {
			if p != cdcl.LitUndef && l == p.Negation() {
				tautology = true
				break
			}
			if l == p {
				continue
			}
			dedup = append(dedup, l)
			p = l
		}

		st.Drat.DeleteClause(c.Lits())
		c.MarkRemoved()
		st.Watch.DetachLong(lc.h, lc.w0, lc.w1)
		st.Arena.Free(lc.h)

		if tautology {
			continue
		}
		if !admitInterClause(st, dedup) {
			return false
		}
	}
	return true
}

// tarjanSCC computes strongly connected components of the directed graph
// given by adj (adjacency by node index) using an explicit stack to avoid
// recursion-depth limits on large implication graphs. Returns, for each
// node, the id of the SCC it belongs to.
func tarjanSCC(adj [][]int32) []int32 {
	n := len(adj)
	index := make([]int32, n)
	low := make([]int32, n)
	onStack := make([]bool, n)
	sccOf := make([]int32, n)
	for i := range index {
		index[i] = -1
		sccOf[i] = -1
	}

	var counter, nextSCC int32
	var stack []int32

	type frame struct {
		v     int32
		child int
	}

	for start := 0; start < n; start++ {
		if index[start] != -1 {
			continue
		}
		callStack := []frame{{v: int32(start)}}
		index[start] = counter
		low[start] = counter
		counter++
		stack = append(stack, int32(start))
		onStack[start] = true

		for len(callStack) > 0 {
			top := &callStack[len(callStack)-1]
			v := top.v
			if top.child < len(adj[v]) {
				w := adj[v][top.child]
				top.child++
				if index[w] == -1 {
					index[w] = counter
					low[w] = counter
					counter++
					stack = append(stack, w)
					onStack[w] = true
					callStack = append(callStack, frame{v: w})
				} else if onStack[w] {
					if index[w] < low[v] {
						low[v] = index[w]
					}
				}
				continue
			}

			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := &callStack[len(callStack)-1]
				if low[v] < low[parent.v] {
					low[parent.v] = low[v]
				}
			}
			if low[v] == index[v] {
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					sccOf[w] = nextSCC
					if w == v {
						break
					}
				}
				nextSCC++
			}
		}
	}
	return sccOf
}

var _ cdcl.VarReplacer = (*VarReplacerImpl)(nil)

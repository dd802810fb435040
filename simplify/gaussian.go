package simplify

import "github.com/crillab/cdclsat"

// GaussianEngineImpl is the default GaussianEngine: GF(2) Gaussian
// elimination over the stored XOR constraints (State.XORs), run as a
// single one-shot reduction after an occ-gauss flush rather than a
// persistent per-decision matrix, since this module has no per-decision
// Gaussian propagation hook to feed. A fully reduced row that collapses
// to zero or one live variable
// yields an immediate refutation or unit; a row that collapses to exactly
// two is turned into the equivalent pair of binary clauses (v1 xor v2 = r
// is (v1 v v2) and (~v1 v ~v2) when r is true, or (v1 v ~v2) and
// (~v1 v v2) when r is false); wider irreducible rows are left as XOR constraints for the
// next pass to revisit once further unit propagation has simplified them.
type GaussianEngineImpl struct {
	st *cdcl.State
}

// NewGaussianEngine returns a GaussianEngineImpl bound to st.
func NewGaussianEngine(st *cdcl.State) *GaussianEngineImpl { return &GaussianEngineImpl{st: st} }

// row is one XOR constraint reduced to bitsets over inter variable index,
// small enough for this module's problem sizes without a packed bitset.
type row struct {
	vars map[cdcl.Var]bool
	rhs  bool
}

// Clear implements cdcl.GaussianEngine: this implementation caches no
// matrix state between calls (each FindMatrices rebuilds straight from
// State.XORs), so Clear is a no-op reachable after renumbering invalidates
// any variable indices a persistent-matrix implementation would have
// cached.
func (g *GaussianEngineImpl) Clear() {}

// FindMatrices implements cdcl.GaussianEngine: reduces State.XORs to
// row-echelon form over GF(2) and asserts whatever the reduction
// immediately yields.
func (g *GaussianEngineImpl) FindMatrices() bool {
	st := g.st
	if st.Trail.DecisionLevel() != 0 || len(st.XORs) == 0 {
		return true
	}

	rows := make([]row, 0, len(st.XORs))
	for _, xc := range st.XORs {
		r := row{vars: make(map[cdcl.Var]bool, len(xc.Vars)), rhs: xc.RHS}
		for _, v := range xc.Vars {
			if st.Trail.Value(v) != cdcl.Undef {
				if st.Trail.Value(v) == cdcl.True {
					r.rhs = !r.rhs
				}
				continue
			}
			if r.vars[v] {
				delete(r.vars, v) // v xor v cancels
			} else {
				r.vars[v] = true
			}
		}
		rows = append(rows, r)
	}

	// Forward elimination: for each pivot variable, cancel it out of every
	// later row that also contains it, the standard GF(2) row-reduction
	// step (addition and subtraction coincide mod 2).
	used := make(map[cdcl.Var]bool)
	for i := range rows {
		pivot := cdcl.VarUndef
		for v := range rows[i].vars {
			if !used[v] {
				pivot = v
				break
			}
		}
		if pivot == cdcl.VarUndef {
			continue
		}
		used[pivot] = true
		for j := range rows {
			if j == i || !rows[j].vars[pivot] {
				continue
			}
			xorRows(&rows[j], &rows[i])
		}
	}

	for _, r := range rows {
		if !g.admitRow(r) {
			return false
		}
	}
	return true
}

// xorRows adds src into dst in place (GF(2) row addition).
func xorRows(dst, src *row) {
	for v := range src.vars {
		if dst.vars[v] {
			delete(dst.vars, v)
		} else {
			dst.vars[v] = true
		}
	}
	dst.rhs = dst.rhs != src.rhs
}

// admitRow asserts whatever a fully reduced row of width 0, 1 or 2
// immediately implies; wider rows are left untouched.
func (g *GaussianEngineImpl) admitRow(r row) bool {
	st := g.st
	switch len(r.vars) {
	case 0:
		if r.rhs {
			st.Drat.Empty()
			return false
		}
		return true
	case 1:
		var v cdcl.Var
		for vv := range r.vars {
			v = vv
		}
		return admitInterClause(st, []cdcl.Lit{v.SignedLit(!r.rhs)})
	case 2:
		var vs [2]cdcl.Var
		i := 0
		for vv := range r.vars {
			vs[i] = vv
			i++
		}
		v1, v2 := vs[0], vs[1]
		// v1 xor v2 = rhs: when rhs is false the two must agree, when true
		// they must disagree, exactly xorToClauses's 2-variable case.
		var c1, c2 []cdcl.Lit
		if r.rhs {
			c1 = []cdcl.Lit{v1.SignedLit(false), v2.SignedLit(false)}
			c2 = []cdcl.Lit{v1.SignedLit(true), v2.SignedLit(true)}
		} else {
			c1 = []cdcl.Lit{v1.SignedLit(false), v2.SignedLit(true)}
			c2 = []cdcl.Lit{v1.SignedLit(true), v2.SignedLit(false)}
		}
		if !admitInterClause(st, c1) {
			return false
		}
		return admitInterClause(st, c2)
	default:
		return true
	}
}

var _ cdcl.GaussianEngine = (*GaussianEngineImpl)(nil)

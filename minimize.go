package cdcl

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// ModelMinimizer projects a satisfying model down to a small supporting
// subset, leaving every other variable a don't-care (Undef) unless it is
// the sole reason some clause is satisfied. The candidate set defaults to
// every variable the trail assigned above level 0 (minus the current
// assumptions); a caller-declared independent set, if any, only narrows
// that default rather than replacing it.
type ModelMinimizer struct {
	s *Solver
}

// NewModelMinimizer returns a ModelMinimizer bound to s.
func NewModelMinimizer(s *Solver) *ModelMinimizer { return &ModelMinimizer{s: s} }

type mmClause struct {
	lits []Lit
}

// gatherClauses collects every live clause in inter numbering: long
// clauses directly from the arena, binaries by scanning the watch index
// and deduplicating the two directions each binary is stored under.
func (m *ModelMinimizer) gatherClauses() []mmClause {
	s := m.s
	var clauses []mmClause
	s.state.Arena.Each(func(_ Handle, c *Clause) {
		if c.Removed() {
			return
		}
		clauses = append(clauses, mmClause{lits: append([]Lit(nil), c.Lits()...)})
	})

	seen := make(map[[2]Lit]bool)
	for litIdx, list := range s.state.Watch.lists {
		for _, e := range list {
			if !e.IsBinary {
				continue
			}
			a, b := Lit(litIdx).Negation(), e.Other
			if a > b {
				a, b = b, a
			}
			if seen[[2]Lit{a, b}] {
				continue
			}
			seen[[2]Lit{a, b}] = true
			clauses = append(clauses, mmClause{lits: []Lit{a, b}})
		}
	}
	return clauses
}

// Minimize takes a complete inter-namespace model and clears every
// candidate variable that is not the sole currently-true literal of some
// surviving clause, iterating to a fixpoint since clearing one variable
// can make a previously-critical neighbor droppable too. Candidates are
// visited in ascending variable order.
func (m *ModelMinimizer) Minimize(interModel []TriVal) []TriVal {
	s := m.s
	vars := s.state.Vars
	trail := s.state.Trail

	assumptionVars := mapset.NewThreadUnsafeSet[Var]()
	for _, l := range s.assumptions {
		assumptionVars.Add(l.Var())
	}

	base := mapset.NewThreadUnsafeSet[Var]()
	for v := 0; v < vars.NbInter(); v++ {
		vv := Var(v)
		if trail.Value(vv) == Undef || trail.LevelOf(vv) == 0 {
			continue
		}
		if assumptionVars.Contains(vv) {
			continue
		}
		base.Add(vv)
	}
	if vars.IndependentVars.Cardinality() > 0 {
		base = base.Intersect(vars.IndependentVars)
	}

	candidates := mapset.NewThreadUnsafeSet[Var]()
	for _, iv := range base.ToSlice() {
		outer := vars.InterToOuter(iv)
		if s.varReplacer != nil && s.varReplacer.IsReplacer(outer) {
			continue // standing in for an equivalence class, cannot be unset
		}
		candidates.Add(iv)
	}
	if candidates.Cardinality() == 0 {
		return interModel
	}

	clauses := m.gatherClauses()
	numTrue := make([]int, len(clauses))
	byVar := make(map[Var][]int)
	for ci, c := range clauses {
		for _, l := range c.lits {
			if litValue(interModel[l.Var()], l) == True {
				numTrue[ci]++
				byVar[l.Var()] = append(byVar[l.Var()], ci)
			}
		}
	}

	order := candidates.ToSlice()
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	minimized := append([]TriVal(nil), interModel...)
	for changed := true; changed; {
		changed = false
		for _, v := range order {
			if minimized[v] == Undef {
				continue
			}
			critical := false
			for _, ci := range byVar[v] {
				if numTrue[ci] <= 1 {
					critical = true
					break
				}
			}
			if critical {
				continue
			}
			for _, ci := range byVar[v] {
				numTrue[ci]--
			}
			minimized[v] = Undef
			changed = true
		}
	}
	return minimized
}

package cdcl

// Renumberer compacts the inter namespace so that active variables
// occupy a dense prefix, once the fraction of inactive variables grows
// large enough that the sparse inter space is wasting memory bandwidth
// across the watch lists and trail.
//
// Unlike the Searcher/OccurrenceSimplifier family, renumbering touches
// every structure State owns directly (VarRegistry, WatchIndex, Trail,
// Arena, XORs, IndependentVars) and has no search heuristics of its own,
// so it stays a Solver-owned core component rather than an external
// collaborator.
type Renumberer struct {
	s *Solver
}

// NewRenumberer returns a Renumberer bound to s.
func NewRenumberer(s *Solver) *Renumberer { return &Renumberer{s: s} }

// ShouldRenumber reports whether the inactive/total ratio has crossed
// Config.RenumberInactiveRatio.
func (rn *Renumberer) ShouldRenumber() bool {
	vars := rn.s.state.Vars
	total := vars.NbOuter()
	if total == 0 {
		return false
	}
	inactive := 0
	for v := 0; v < total; v++ {
		if !vars.IsActive(Var(v)) {
			inactive++
		}
	}
	return float64(inactive)/float64(total) > rn.s.cfg.RenumberInactiveRatio
}

// Run performs one renumbering pass unconditionally: active outer
// variables (in outer order) are assigned a dense inter prefix
// 0..numEffective-1; inactive variables lose their inter slot entirely,
// to be re-granted by EnsureInterSlot only if a later clause resurrects
// them. It is idempotent: renumbering an already dense mapping
// reproduces the identity.
func (rn *Renumberer) Run() bool {
	s := rn.s
	if s.state.Trail.DecisionLevel() != 0 {
		panic("cdcl: renumbering attempted above decision level 0")
	}
	vars := s.state.Vars

	outerToInter := make([]int32, vars.NbOuter())
	for i := range outerToInter {
		outerToInter[i] = -1
	}
	var interToOuter []int32
	for outer := 0; outer < vars.NbOuter(); outer++ {
		if vars.IsActive(Var(outer)) {
			newIdx := int32(len(interToOuter))
			outerToInter[outer] = newIdx
			interToOuter = append(interToOuter, int32(outer))
		}
	}
	numEffective := len(interToOuter)

	fn := func(oldLit Lit) Lit {
		oldOuter := vars.InterToOuter(oldLit.Var())
		newInter := outerToInter[oldOuter]
		if newInter < 0 {
			return LitUndef
		}
		return Var(newInter).SignedLit(!oldLit.IsPositive())
	}

	s.state.Watch.Rewrite(numEffective, fn)
	s.state.Trail.Rewrite(numEffective, fn)

	newUndef := make([]bool, numEffective)
	for oldInter, flagged := range s.state.UndefMustSetVars {
		if !flagged || oldInter >= vars.NbInter() {
			continue
		}
		newLit := fn(Var(oldInter).Lit())
		if newLit != LitUndef {
			newUndef[newLit.Var()] = true
		}
	}
	s.state.UndefMustSetVars = newUndef

	s.state.Arena.Each(func(_ Handle, c *Clause) {
		rewritten := make([]Lit, 0, c.Len())
		for _, l := range c.Lits() {
			nl := fn(l)
			if nl == LitUndef {
				panic("cdcl: renumbering dropped a variable still referenced by an attached clause")
			}
			rewritten = append(rewritten, nl)
		}
		c.lits = rewritten
		c.MarkStrengthened()
	})

	for i := range s.state.XORs {
		xc := &s.state.XORs[i]
		newVars := make([]Var, len(xc.Vars))
		for j, v := range xc.Vars {
			newVars[j] = fn(v.Lit()).Var()
		}
		xc.Vars = newVars
	}

	old := vars.IndependentVars.ToSlice()
	remapped := make([]Var, 0, len(old))
	for _, v := range old {
		nl := fn(v.Lit())
		if nl != LitUndef {
			remapped = append(remapped, nl.Var())
		}
	}
	vars.IndependentVars.Clear()
	vars.IndependentVars.Append(remapped...)

	vars.applyRenumbering(outerToInter, interToOuter)
	if s.gauss != nil {
		s.gauss.Clear()
	}
	s.Stats.NbRenumber++
	return s.ok
}

package cdcl

// Reconstructor translates a satisfying inter-namespace assignment back
// out through outer numbering, filling in whatever the ComponentHandler
// and SolutionExtender collaborators know how to fill in, and stripping
// BVA helper variables before the result reaches the caller in outside
// numbering.
//
// A variable left Undef in the returned model is a genuine don't-care:
// either ModelMinimizer determined it unnecessary to the declared
// independent set, or it was never constrained by any surviving clause.
// The model returned to the caller is always this three-valued result,
// with no default-fill pass.
type Reconstructor struct {
	s *Solver
}

// NewReconstructor returns a Reconstructor bound to s.
func NewReconstructor(s *Solver) *Reconstructor { return &Reconstructor{s: s} }

// Reconstruct maps an inter-namespace model through outer numbering,
// component re-composition, elimination reversal, equivalence
// replacement (a replaced variable takes the value of the literal it was
// replaced with), and BVA stripping, returning an outside-numbered model.
func (r *Reconstructor) Reconstruct(interModel []TriVal) []TriVal {
	s := r.s
	vars := s.state.Vars

	outerModel := make([]TriVal, vars.NbOuter())
	for inter := 0; inter < len(interModel); inter++ {
		outer := vars.InterToOuter(Var(inter))
		outerModel[outer] = interModel[inter]
	}

	if s.comps != nil {
		outerModel = s.comps.ExtendModel(outerModel)
	}
	if s.extender != nil {
		outerModel = s.extender.Extend(outerModel)
	}
	if s.varReplacer != nil {
		for outer := 0; outer < vars.NbOuter(); outer++ {
			if vars.Removed(Var(outer)) != RemovedReplaced {
				continue
			}
			rep := s.varReplacer.GetLitReplacedWith(Var(outer).Lit())
			outerModel[outer] = litValue(outerModel[rep.Var()], rep)
		}
	}

	outsideModel := make([]TriVal, vars.NbOutside())
	for outer := 0; outer < vars.NbOuter(); outer++ {
		if vars.IsBVA(Var(outer)) {
			continue
		}
		if outside, ok := vars.OuterToOutside(Var(outer)); ok {
			outsideModel[outside] = outerModel[outer]
		}
	}
	return outsideModel
}

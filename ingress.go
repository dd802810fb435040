package cdcl

import (
	"sort"

	"github.com/pkg/errors"
)

// ClauseIngress is the cleaning-and-admission pipeline for incoming
// clauses, implemented as a set of Solver methods rather than a
// standalone type: every step needs the shared State plus the
// VarReplacer/ComponentHandler/OccurrenceSimplifier collaborators, which
// only Solver holds references to (see state.go's ownership note).

// AddClause admits a clause given in outside (1-based, signed, DIMACS
// style) literal numbering. It returns false without effect once the
// solver has been refuted; otherwise it returns the solver's
// post-admission ok flag, which may itself have just become false if the
// clause (after cleaning) turned out to be the empty clause, or drove
// level-0 propagation to a conflict.
func (s *Solver) AddClause(outsideLits []int32, redundant bool) (bool, error) {
	if err := s.errIfRefuted(); err != nil {
		return false, err
	}
	if len(outsideLits) >= 1<<28 {
		return false, errors.WithStack(&TooLongClauseError{Len: len(outsideLits)})
	}
	outerLits, err := s.outsideToOuterLits(outsideLits)
	if err != nil {
		return false, err
	}
	if !s.state.Trail.AtLevel0Fully() {
		panic("cdcl: AddClause called with pending level-0 propagation")
	}

	interLits := s.admitOuterLits(outerLits)
	cleaned, tautology := s.cleanClause(interLits, redundant)
	if tautology {
		return s.ok, nil
	}
	s.dispatchClause(cleaned, redundant, interLits)
	return s.ok, nil
}

// AddXorClause admits an N-ary XOR constraint (v1 xor ... xor vn = rhs)
// given in outside numbering; a negative entry negates that occurrence,
// folding into rhs, mirroring the signed-literal DIMACS XOR extension.
func (s *Solver) AddXorClause(outsideVars []int32, rhs bool) (bool, error) {
	if err := s.errIfRefuted(); err != nil {
		return false, err
	}
	outerLits, err := s.outsideToOuterLits(outsideVars)
	if err != nil {
		return false, err
	}
	if !s.state.Trail.AtLevel0Fully() {
		panic("cdcl: AddXorClause called with pending level-0 propagation")
	}
	interLits := s.admitOuterLits(outerLits)

	// Step 1: pull negations out into rhs; every literal is now a bare variable.
	vars := make([]Var, len(interLits))
	for i, l := range interLits {
		vars[i] = l.Var()
		if !l.IsPositive() {
			rhs = !rhs
		}
	}

	// Step 2: sort and cancel same-variable pairs (v xor v contributes
	// nothing; an odd run of repeats collapses to a single occurrence).
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	folded := vars[:0]
	for i := 0; i < len(vars); i++ {
		if i+1 < len(vars) && vars[i] == vars[i+1] {
			i++
			continue
		}
		folded = append(folded, vars[i])
	}
	vars = folded

	if len(vars) == 0 {
		if rhs {
			s.refute()
		}
		return s.ok, nil
	}

	segments := cutXOR(vars, rhs, s.cfg.XORCutSize, s.newBVAVar)
	for _, seg := range segments {
		if len(seg.Vars) >= 3 {
			s.state.XORs = append(s.state.XORs, XORConstraint{
				Vars: append([]Var(nil), seg.Vars...),
				RHS:  seg.RHS,
			})
		}
		for _, raw := range xorToClauses(seg.Vars, seg.RHS) {
			cleaned, tautology := s.cleanClause(raw, false)
			if tautology {
				continue
			}
			s.dispatchClause(cleaned, false, raw)
			if !s.ok {
				return false, nil
			}
		}
	}
	return s.ok, nil
}

// outsideToOuterLits translates a caller-provided, 1-based signed literal
// slice into the current outer namespace.
func (s *Solver) outsideToOuterLits(raw []int32) ([]Lit, error) {
	nOutside := s.state.Vars.NbOutside()
	out := make([]Lit, len(raw))
	for i, li := range raw {
		if li == 0 {
			return nil, errors.WithStack(ErrMalformedInput)
		}
		v := IntToVar(abs32(li))
		if int(v) >= nOutside {
			return nil, errors.WithStack(&TooManyVarsError{Var: v, NVars: nOutside})
		}
		outer := s.state.Vars.OutsideToOuter(v)
		out[i] = outer.SignedLit(li < 0)
	}
	return out, nil
}

// admitOuterLits runs outer-to-inter admission: equivalence substitution,
// inter-slot allocation for any literal that does not have one yet, and
// resurrection of decomposed or eliminated variables the clause mentions,
// in that order.
func (s *Solver) admitOuterLits(lits []Lit) []Lit {
	vars := s.state.Vars
	subst := make([]Lit, len(lits))
	needsReadd := false
	for i, l := range lits {
		if s.varReplacer != nil {
			l = s.varReplacer.GetLitReplacedWith(l)
		}
		vars.EnsureInterSlot(l.Var())
		if vars.Removed(l.Var()) == RemovedDecomposed {
			needsReadd = true
		}
		subst[i] = l
	}
	s.state.GrowTo(vars.NbInter())

	if needsReadd && s.comps != nil {
		s.comps.ReaddRemovedClauses()
	}
	for _, l := range subst {
		if vars.Removed(l.Var()) == RemovedEliminated && s.occ != nil {
			s.occ.Uneliminate(l.Var())
		}
	}

	inter := make([]Lit, len(subst))
	for i, l := range subst {
		iv, _ := vars.OuterToInter(l.Var())
		inter[i] = iv.SignedLit(!l.IsPositive())
	}
	return inter
}

// cleanClause runs the clause-cleaning pipeline over an already
// inter-namespace literal slice: sort by literal encoding, then a single
// pass that discards the whole clause if it is satisfied at level 0 or a
// tautology, drops duplicates, and elides literals falsified at level 0.
// p is the most recently retained literal. tautology is true iff the
// caller should discard the clause entirely (it contributes nothing, or
// nothing new).
//
// raw is sorted in place; since cleaned is built by walking raw in order
// and only ever skipping entries, len(cleaned) != len(raw) afterward iff
// something was actually dropped -- callers use this to decide whether a
// DRAT delete record is owed for the pre-cleaning clause.
func (s *Solver) cleanClause(raw []Lit, redundant bool) (cleaned []Lit, tautology bool) {
	sort.Slice(raw, func(i, j int) bool { return raw[i] < raw[j] })
	trail := s.state.Trail
	p := LitUndef
	for _, lit := range raw {
		v := lit.Var()
		atLevel0 := trail.Value(v) != Undef && trail.LevelOf(v) == 0

		if atLevel0 && trail.LitValue(lit) == True {
			return nil, true
		}
		if p != LitUndef && lit == p.Negation() {
			if !redundant {
				s.state.UndefMustSetVars[p.Var()] = true
			}
			return nil, true
		}
		if lit == p {
			continue
		}
		if atLevel0 && trail.LitValue(lit) == False {
			continue
		}
		cleaned = append(cleaned, lit)
		p = lit
	}
	return cleaned, false
}

// dispatchClause admits an already-cleaned inter-namespace literal slice
// into the clause database: the empty clause refutes the solver, a unit
// is enqueued and propagated, a binary is watched directly, and anything
// longer is arena-allocated.
//
// original is the pre-cleaning literal slice cleanClause was given. When
// cleaning actually dropped something (duplicates, level-0-satisfied
// literals, ...), the clause recorded in the DRAT proof is not the one
// the caller asked for, so the derived clause is added and the original
// is then deleted to keep the proof accurate.
func (s *Solver) dispatchClause(lits []Lit, redundant bool, original []Lit) {
	switch len(lits) {
	case 0:
		s.refute()
		return
	case 1:
		s.state.Trail.Enqueue(lits[0], Reason{Kind: ReasonIngressUnit})
		s.Stats.NbUnitLearned++
		if c := Propagate(s.state); c != nil {
			s.refute()
			return
		}
	case 2:
		s.state.Watch.AttachBinary(lits[0], lits[1], redundant)
		s.Stats.NbBinaryLearned++
		s.shareBinary(lits[0], lits[1])
	default:
		owned := append([]Lit(nil), lits...)
		var c *Clause
		if redundant {
			// Ingress-admitted redundant clauses (re-added via
			// un-elimination or pulled from DataSync) have no freshly
			// computed LBD; length is a conservative stand-in for tier
			// assignment until the clause participates in a conflict.
			c = NewLearnedClause(owned, len(owned), s.Stats.NbConflicts, &s.cfg)
		} else {
			c = NewClause(owned)
		}
		h := s.state.Arena.Alloc(c)
		s.state.Watch.AttachLong(h, owned[0], owned[1])
	}
	if s.ok {
		s.state.Drat.AddClause(lits)
		if len(lits) != len(original) {
			s.state.Drat.DeleteClause(original)
		}
	}
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

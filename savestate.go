package cdcl

import (
	"encoding/gob"
	"io"

	"github.com/pkg/errors"
)

// SavedState is the exported, gob-encodable snapshot a save/load pair
// round-trips, modeled on CryptoMiniSat's own binary save-state format
// but re-expressed with Go's standard encoding/gob rather than a
// hand-rolled byte layout. It captures everything needed to resume
// solving: the configuration, the full three-level variable mapping,
// every live clause, and the level-0 trail. Search-heuristic state
// living inside the Searcher collaborator (activities, the order heap,
// restart history) is out of scope; a freshly wired Searcher rebuilds it
// from the restored clause database on first use.
type SavedState struct {
	Config Config

	NOutside          int
	OuterBVA          []bool
	OuterRemoved      []RemovedKind
	OuterOutsideIndex []int32
	OuterToInter      []int32
	InterToOuter      []int32
	OutsideToOuter    []int32
	IndependentVars   []Var

	Level0Units []Lit
	Binaries    []SavedBinary
	LongIrred   [][]Lit
	LongRed     []SavedLongClause
	XORs        []XORConstraint
}

// SavedBinary is one direction-deduplicated binary clause.
type SavedBinary struct {
	L1, L2    Lit
	Redundant bool
}

// SavedLongClause is a redundant long clause plus the glue score needed
// to re-derive its retention tier on load.
type SavedLongClause struct {
	Lits []Lit
	Glue int
}

// SaveState snapshots the solver's current state. It requires the trail
// to be fully propagated at level 0, since only level-0 units are
// saved; it is only meaningful between solve calls.
func (s *Solver) SaveState() (*SavedState, error) {
	if err := s.errIfRefuted(); err != nil {
		return nil, err
	}
	if !s.state.Trail.AtLevel0Fully() || s.state.Trail.DecisionLevel() != 0 {
		return nil, errors.WithStack(ErrConfigPrecondition)
	}

	vars := s.state.Vars
	snap := &SavedState{
		Config:          s.cfg,
		NOutside:        vars.NbOutside(),
		IndependentVars: vars.IndependentVars.ToSlice(),
		XORs:            append([]XORConstraint(nil), s.state.XORs...),
	}

	for outer := 0; outer < vars.NbOuter(); outer++ {
		v := Var(outer)
		snap.OuterBVA = append(snap.OuterBVA, vars.IsBVA(v))
		snap.OuterRemoved = append(snap.OuterRemoved, vars.Removed(v))
		idx := int32(-1)
		if outside, ok := vars.OuterToOutside(v); ok {
			idx = int32(outside)
		}
		snap.OuterOutsideIndex = append(snap.OuterOutsideIndex, idx)
		inter := int32(-1)
		if iv, ok := vars.OuterToInter(v); ok {
			inter = int32(iv)
		}
		snap.OuterToInter = append(snap.OuterToInter, inter)
	}
	for inter := 0; inter < vars.NbInter(); inter++ {
		snap.InterToOuter = append(snap.InterToOuter, int32(vars.InterToOuter(Var(inter))))
	}
	for outside := 0; outside < vars.NbOutside(); outside++ {
		snap.OutsideToOuter = append(snap.OutsideToOuter, int32(vars.OutsideToOuter(Var(outside))))
	}

	for i := 0; i < s.state.Trail.Len(); i++ {
		snap.Level0Units = append(snap.Level0Units, s.state.Trail.At(i).Lit)
	}

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
			snap.Binaries = append(snap.Binaries, SavedBinary{L1: a, L2: b, Redundant: e.Redundant})
		}
	}

	s.state.Arena.Each(func(_ Handle, c *Clause) {
		if c.Removed() {
			return
		}
		if c.Redundant() {
			snap.LongRed = append(snap.LongRed, SavedLongClause{
				Lits: append([]Lit(nil), c.Lits()...),
				Glue: c.Glue(),
			})
		} else {
			snap.LongIrred = append(snap.LongIrred, append([]Lit(nil), c.Lits()...))
		}
	})

	return snap, nil
}

// EncodeSavedState gob-encodes snap to w.
func EncodeSavedState(w io.Writer, snap *SavedState) error {
	return errors.Wrap(gob.NewEncoder(w).Encode(snap), "cdcl: encode saved state")
}

// DecodeSavedState gob-decodes a SavedState from r.
func DecodeSavedState(r io.Reader) (*SavedState, error) {
	var snap SavedState
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "cdcl: decode saved state")
	}
	return &snap, nil
}

// LoadState replaces the solver's entire state with snap's, rebuilding
// the variable registry, watch index, trail and clause database from
// scratch. It is meant to be called on a freshly constructed Solver (via
// NewSolver) before any clause is added.
func (s *Solver) LoadState(snap *SavedState) error {
	s.cfg = snap.Config
	nOuter := len(snap.OuterBVA)

	vars := NewVarRegistry()
	for outer := 0; outer < nOuter; outer++ {
		isBVA := snap.OuterBVA[outer]
		v := vars.NewVar(isBVA)
		if snap.OuterRemoved[outer] != RemovedNone {
			vars.MarkRemoved(v, snap.OuterRemoved[outer])
		}
	}
	vars.applyRenumbering(append([]int32(nil), snap.OuterToInter...), append([]int32(nil), snap.InterToOuter...))
	for _, v := range snap.IndependentVars {
		vars.IndependentVars.Add(v)
	}

	// Fields are overwritten in place, not by replacing s.state itself:
	// every collaborator was wired against this *State pointer and
	// re-dereferences its fields on every call, so a fresh Arena/Watch/
	// Trail/Vars here is visible to them without re-wiring.
	st := s.state
	st.Vars = vars
	st.Arena = NewArena()
	st.Watch = NewWatchIndex(0)
	st.Trail = NewTrail(0)
	*st.Cfg = s.cfg
	st.GrowTo(len(snap.InterToOuter))
	st.XORs = append([]XORConstraint(nil), snap.XORs...)
	s.ok = true
	s.lastVerdict = VerdictUndef
	s.lastInterModel = nil
	s.lastOutsideModel = nil

	for _, lit := range snap.Level0Units {
		s.state.Trail.Enqueue(lit, Reason{Kind: ReasonIngressUnit})
	}
	if c := Propagate(s.state); c != nil {
		s.refute()
		return nil
	}

	for _, b := range snap.Binaries {
		s.state.Watch.AttachBinary(b.L1, b.L2, b.Redundant)
	}
	for _, lits := range snap.LongIrred {
		c := NewClause(append([]Lit(nil), lits...))
		h := s.state.Arena.Alloc(c)
		s.state.Watch.AttachLong(h, c.Get(0), c.Get(1))
	}
	for _, saved := range snap.LongRed {
		c := NewLearnedClause(append([]Lit(nil), saved.Lits...), saved.Glue, 0, &s.cfg)
		h := s.state.Arena.Alloc(c)
		s.state.Watch.AttachLong(h, c.Get(0), c.Get(1))
	}

	return nil
}

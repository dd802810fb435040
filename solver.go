// Package cdcl implements the orchestrator of a Conflict-Driven Clause
// Learning SAT solver with inprocessing: the state shared between search
// and simplification, and the transformations of the variable universe
// and clause database that must remain equisatisfiability-preserving
// across both. See doc.go for the full package overview.
package cdcl

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Stats are statistics about the resolution of the problem, provided for
// information purposes only.
type Stats struct {
	NbRestarts        int64
	NbConflicts       int64
	NbDecisions       int64
	NbUnitLearned     int64
	NbBinaryLearned   int64
	NbLearned         int64
	NbDeleted         int64
	NbSimplify        int64
	NbRenumber        int64
	NbComponentsFound int64
}

// Solver is the orchestrator: the single owner of every piece of shared
// state (VarRegistry, Arena, WatchIndex, Trail) and the driver of the
// search/simplify loop. It never holds an owning reference back from any
// collaborator; collaborators hold only the *State handle (see state.go).
type Solver struct {
	cfg   Config
	state *State
	log   *logrus.Entry

	ok bool // sticky refuted flag

	assumptions []Lit // inter-namespace, set by SetAssumptions

	searcher    Searcher
	occ         OccurrenceSimplifier
	extender    SolutionExtender
	varReplacer VarReplacer
	comps       ComponentHandler
	prober      Prober
	distiller   Distiller
	cache       ImplicationCache
	gauss       GaussianEngine
	stats       StatsSink

	scheduler     *InprocessScheduler
	driver        *SearchDriver
	reconfig      *Reconfigurator
	renumberer    *Renumberer
	reconstructor *Reconstructor
	minimizer     *ModelMinimizer

	Stats Stats

	lastVerdict      Verdict
	lastInterModel   []TriVal
	lastOutsideModel []TriVal
	finalConflict    []Lit

	globalTimeoutMultiplier float64
	interrupted             bool
}

// NewSolver constructs an empty orchestrator with the given configuration.
// Collaborators (Searcher, OccurrenceSimplifier, ...) must be installed
// via the Set* methods before Solve is called; see the internal/wiring
// package for the default wiring used by cmd/cdclsat.
func NewSolver(cfg Config) *Solver {
	st := NewState(cfg)
	s := &Solver{
		cfg:                     cfg,
		state:                   st,
		log:                     st.Log,
		ok:                      true,
		globalTimeoutMultiplier: 1.0,
	}
	st.Stats = &s.Stats
	s.scheduler = NewInprocessScheduler(s)
	s.driver = NewSearchDriver(s)
	s.reconfig = NewReconfigurator(s)
	s.renumberer = NewRenumberer(s)
	s.reconstructor = NewReconstructor(s)
	s.minimizer = NewModelMinimizer(s)
	return s
}

// Ok reports whether the solver has not yet been refuted.
func (s *Solver) Ok() bool { return s.ok }

// State returns the shared mutable handle, for wiring collaborators.
func (s *Solver) State() *State { return s.state }

// Config returns a copy of the solver's current configuration.
func (s *Solver) Config() Config { return s.cfg }

// SetConfig replaces the solver's configuration wholesale, used by the
// Reconfigurator and by callers applying a saved preset.
func (s *Solver) SetConfig(cfg Config) {
	s.cfg = cfg
	*s.state.Cfg = cfg
}

// SetSearcher installs the CDCL search-engine collaborator.
func (s *Solver) SetSearcher(searcher Searcher) { s.searcher = searcher }

// SetOccurrenceSimplifier installs the occurrence-based simplifier.
func (s *Solver) SetOccurrenceSimplifier(o OccurrenceSimplifier) { s.occ = o }

// SetSolutionExtender installs the elimination-reversing solution extender.
func (s *Solver) SetSolutionExtender(e SolutionExtender) { s.extender = e }

// SetVarReplacer installs the equivalence-substitution collaborator.
func (s *Solver) SetVarReplacer(v VarReplacer) { s.varReplacer = v }

// SetComponentHandler installs the component-decomposition collaborator.
func (s *Solver) SetComponentHandler(c ComponentHandler) { s.comps = c }

// SetProber installs the failed-literal/in-tree probing collaborator.
func (s *Solver) SetProber(p Prober) { s.prober = p }

// SetDistiller installs the clause-distillation collaborator.
func (s *Solver) SetDistiller(d Distiller) { s.distiller = d }

// SetImplicationCache installs the implication-cache collaborator.
func (s *Solver) SetImplicationCache(c ImplicationCache) { s.cache = c }

// SetGaussianEngine installs the XOR/Gaussian-elimination collaborator.
func (s *Solver) SetGaussianEngine(g GaussianEngine) { s.gauss = g }

// SetSharedData installs the shared-clause gossip channel.
func (s *Solver) SetSharedData(sync DataSync) {
	s.state.Sync = sync
}

// SetStatsSink installs the SQL-statistics collaborator.
func (s *Solver) SetStatsSink(sink StatsSink) { s.stats = sink }

// SetDRATWriter installs the DRAT proof-stream collaborator.
func (s *Solver) SetDRATWriter(w DRATWriter) { s.state.Drat = w }

// SetIndependentVars declares the independent variable set consulted by
// ModelMinimizer. Outside numbering. Sticky across repeated
// SimplifyProblemOutside calls.
func (s *Solver) SetIndependentVars(outsideVars []Var) {
	s.state.Vars.IndependentVars.Clear()
	for _, v := range outsideVars {
		outer := s.state.Vars.OutsideToOuter(v)
		if inter, ok := s.state.Vars.OuterToInter(outer); ok {
			s.state.Vars.IndependentVars.Add(inter)
		}
	}
}

// Interrupt asserts the cooperative interrupt flag, polled at every loop
// boundary.
func (s *Solver) Interrupt() { s.interrupted = true }

// ClearInterrupt de-asserts the interrupt flag so a subsequent Solve can proceed.
func (s *Solver) ClearInterrupt() { s.interrupted = false }

// NewVar allocates one fresh outside variable and returns it.
func (s *Solver) NewVar() Var {
	outer := s.state.Vars.NewVar(false)
	s.growTo(outer)
	return Var(s.mustOutside(outer))
}

// NewVars allocates n fresh outside variables and returns the first.
func (s *Solver) NewVars(n int) Var {
	first := Var(-1)
	for i := 0; i < n; i++ {
		v := s.NewVar()
		if i == 0 {
			first = v
		}
	}
	return first
}

// newBVAVar allocates a fresh internal (non-outside) variable, used by
// ClauseIngress's XOR cutting transformation.
func (s *Solver) newBVAVar() Var {
	outer := s.state.Vars.NewVar(true)
	s.growTo(outer)
	return outer
}

func (s *Solver) growTo(outer Var) {
	s.state.GrowTo(int(outer) + 1)
}

func (s *Solver) mustOutside(outer Var) Var {
	v, ok := s.state.Vars.OuterToOutside(outer)
	if !ok {
		panic("cdcl: freshly allocated non-bva variable has no outside index")
	}
	return v
}

// GetFinalConflict returns the subset of assumptions responsible for an
// UNSAT verdict under assumptions.
func (s *Solver) GetFinalConflict() []Lit { return s.finalConflict }

// recordSinkConflict forwards a conflict sample to the stats sink, if
// any is installed.
func (s *Solver) recordSinkConflict() {
	if s.stats == nil {
		return
	}
	s.stats.RecordConflict(s.Stats)
}

// refute transitions the solver to the terminal UNSAT state: ok becomes
// false, DRAT sees the empty clause, and the trail is flushed.
func (s *Solver) refute() {
	if !s.ok {
		return
	}
	s.ok = false
	s.state.Drat.Empty()
	s.state.Trail.FlushLevel0()
	s.lastVerdict = VerdictUnsat
}

// errIfRefuted is the guard every state-changing outer-API call performs
// first: every subsequent call after refutation returns false without
// effect.
func (s *Solver) errIfRefuted() error {
	if !s.ok {
		return errors.WithStack(ErrRefuted)
	}
	return nil
}

// SetAssumptions installs the literals (outside numbering) that the next
// Solve call must additionally satisfy. They persist across a single
// Solve call; a failed assumption set is retrievable afterward via
// GetFinalConflict.
func (s *Solver) SetAssumptions(outsideLits []int32) error {
	if err := s.errIfRefuted(); err != nil {
		return err
	}
	outer, err := s.outsideToOuterLits(outsideLits)
	if err != nil {
		return err
	}
	if !s.state.Trail.AtLevel0Fully() {
		panic("cdcl: SetAssumptions called with pending level-0 propagation")
	}
	s.assumptions = s.admitOuterLits(outer)
	return nil
}

// Solve runs the search/simplify loop to a verdict, or until interrupted
// or budget-exhausted. A Searcher must already be installed. On
// VerdictSat, the resulting model is minimized against the declared
// independent variables and reconstructed into outside numbering,
// retrievable via GetModel. A solver that is already refuted returns
// VerdictUnsat with no error.
func (s *Solver) Solve() (Verdict, error) {
	if !s.ok {
		return VerdictUnsat, nil
	}
	if s.searcher == nil {
		panic("cdcl: Solve called with no Searcher installed")
	}

	verdict := s.driver.Run()
	s.lastVerdict = verdict
	if verdict == VerdictSat {
		interModel := s.snapshotInterModel()
		interModel = s.minimizer.Minimize(interModel)
		s.lastInterModel = interModel
		s.lastOutsideModel = s.reconstructor.Reconstruct(interModel)
	}
	return verdict, nil
}

// snapshotInterModel reads the trail's current binding of every inter
// variable into a plain slice, valid only once search has reached a
// complete assignment (VerdictSat).
func (s *Solver) snapshotInterModel() []TriVal {
	n := s.state.Vars.NbInter()
	model := make([]TriVal, n)
	for v := 0; v < n; v++ {
		model[v] = s.state.Trail.Value(Var(v))
	}
	return model
}

// GetModel returns the outside-numbered model from the most recent
// VerdictSat result, or nil if the last Solve did not return SAT.
func (s *Solver) GetModel() []TriVal { return s.lastOutsideModel }

// SimplifyProblemOutside runs a single startup-schedule inprocessing
// pass without entering search, useful for preprocessing-only pipelines
// that hand the simplified CNF to another solver.
func (s *Solver) SimplifyProblemOutside() (bool, error) {
	if err := s.errIfRefuted(); err != nil {
		return false, err
	}
	ok := s.simplifyProblem(true)
	return ok, nil
}

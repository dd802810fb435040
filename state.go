package cdcl

import "github.com/sirupsen/logrus"

// State is the mutable handle shared between the orchestrator and every
// external collaborator (Searcher, OccurrenceSimplifier, VarReplacer,
// ComponentHandler, Prober, Distiller, ImplicationCache, GaussianEngine).
//
// The orchestrator owns the state; collaborators are plain modules of
// functions that take a mutable handle to it. State is exactly that
// handle -- a bag of pointers to shared structures, constructed once by
// the orchestrator and passed by reference into every collaborator's
// constructor. Collaborators must not hold a reference to the Solver
// itself, only to this State, so the module graph stays acyclic:
// Solver -> State <- {Searcher, OccSimplifier, ...}.
type State struct {
	Vars  *VarRegistry
	Arena *Arena
	Watch *WatchIndex
	Trail *Trail
	Cfg   *Config
	Drat  DRATWriter
	Sync  DataSync
	Log   *logrus.Entry

	// Stats is the same struct backing Solver.Stats, aliased here so the
	// Searcher collaborator -- which only ever sees a *State, never the
	// Solver itself -- can maintain the running conflict/decision/restart
	// counters, exposed for informational purposes. Wired in NewSolver,
	// after both the State and the Solver it belongs to exist.
	Stats *Stats

	// XORs holds every stored XOR constraint of size >= 3, consulted by
	// the GaussianEngine collaborator.
	XORs []XORConstraint

	// UndefMustSetVars marks inter variables ModelMinimizer must leave
	// bound to true to trivially satisfy a tautology elided at cleaning
	// time; a non-redundant clause that becomes a tautology by
	// resolution against a unit still needs the eliminated variable
	// pinned so no other clause can falsify it later.
	UndefMustSetVars []bool
}

// XORConstraint is an unordered set of (positive, post-normalization)
// variables plus a right-hand-side bit.
type XORConstraint struct {
	Vars []Var
	RHS  bool
}

// NewState allocates a fresh, empty State with no variables; callers size
// it with GrowTo.
func NewState(cfg Config) *State {
	log := logrus.WithField("component", "cdcl")
	return &State{
		Vars:  NewVarRegistry(),
		Arena: NewArena(),
		Watch: NewWatchIndex(0),
		Trail: NewTrail(0),
		Cfg:   &cfg,
		Drat:  NopDRATWriter{},
		Log:   log,
	}
}

// GrowTo extends every inter-variable-indexed structure in the state
// (WatchIndex, Trail, UndefMustSetVars) to cover at least n inter
// variables. Callers pass VarRegistry.NbInter() after allocating or
// resurrecting a variable; before the first renumbering, inter and outer
// counts coincide, so callers allocating a fresh outer variable may pass
// its outer index directly.
func (s *State) GrowTo(n int) {
	s.Watch.Grow(n)
	s.Trail.Grow(n)
	if len(s.UndefMustSetVars) < n {
		grown := make([]bool, n)
		copy(grown, s.UndefMustSetVars)
		s.UndefMustSetVars = grown
	}
}

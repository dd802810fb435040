package cdcl

// This file declares the narrow interfaces for the module's external
// collaborators: the CDCL search engine, the occurrence-based simplifier,
// the prober, the distiller, the SCC/equivalence finder, the component
// finder, the implication cache, the XOR/Gaussian engine, statistics, and
// the DRAT writer. Default implementations live in cdcl/searcher and
// cdcl/simplify; the orchestrator only ever talks to these interfaces,
// each a plain function set operating on a mutable handle to the shared
// state.

// SearchBudget bounds a single Searcher.Solve call.
type SearchBudget struct {
	MaxConflicts int64
	Iteration    int
}

// Verdict is the three-way outcome of a bounded search or simplification
// pass.
type Verdict int8

const (
	// VerdictUndef means the budget ran out or an interrupt fired before a verdict.
	VerdictUndef Verdict = iota
	// VerdictSat means a satisfying inter-assignment was found.
	VerdictSat
	// VerdictUnsat means the formula was refuted.
	VerdictUnsat
)

// Searcher is the CDCL search engine collaborator: decision heuristic,
// unit propagation, conflict analysis, clause learning and restarts.
// Deliberately out of this module's core scope; a default implementation
// ships in cdcl/searcher.
type Searcher interface {
	// Solve runs search for up to budget.MaxConflicts conflicts (or until
	// a verdict, an interrupt, or a restart boundary) and returns the
	// resulting verdict.
	Solve(budget SearchBudget) Verdict
	// ClearGaussianMatrices drops any Gaussian-elimination state cached
	// from the previous search iteration.
	ClearGaussianMatrices()
	// FoldStats merges per-iteration statistics into running totals and
	// resets the per-iteration counters.
	FoldStats()
	// LowerLevel0GlueThreshold reacts to the "glues-too-low" heuristic by
	// tightening the tier-0 retention threshold.
	LowerLevel0GlueThreshold()
	// RebuildOrderHeap is called by simplify_problem before running the
	// scheduler; it flushes the decision-variable order heap.
	RebuildOrderHeap()
}

// OccurrenceSimplifier performs occurrence-list based simplification:
// variable elimination (bounded variable elimination / BVE), blocked
// clause elimination, subsumption and self-subsuming resolution.
// Its internal algorithms are out of scope; the orchestrator only calls
// Uneliminate to resurrect a variable before admitting a clause that
// mentions it, and Run to execute one of the occ-* scheduler tokens.
type OccurrenceSimplifier interface {
	// Run executes the accumulated, comma-joined occ-* strategy string and
	// returns whether the solver remains consistent (ok).
	Run(strategy string) (ok bool)
	// Uneliminate reintroduces the clauses removed when v was eliminated,
	// restoring v to the active variable set.
	Uneliminate(v Var) (ok bool)
}

// SolutionExtender reverses the occurrence simplifier's elimination steps
// against a satisfying model, using stored reconstruction clauses.
type SolutionExtender interface {
	Extend(model []TriVal) []TriVal
}

// VarReplacer finds equivalent literals (via SCC on the binary implication
// graph) and substitutes them, removing the replaced variable from the
// active set.
type VarReplacer interface {
	// FindAndReplace runs one SCC pass and installs any new equivalences
	// found, returning ok.
	FindAndReplace() (ok bool)
	// GetLitReplacedWith returns the outer-namespace literal that
	// currently stands in for l, following the replacement chain to a
	// fixpoint.
	GetLitReplacedWith(l Lit) Lit
	// IsReplacer reports whether v currently stands in for another
	// variable's equivalence class; such variables cannot be unset by
	// ModelMinimizer.
	IsReplacer(v Var) bool
}

// ComponentHandler discovers and solves away connected components of the
// constraint (co-occurrence) graph independently.
type ComponentHandler interface {
	// FindAndHandle detaches components with fewer free variables than
	// the configured threshold, solves each independently, and stores its
	// model for later re-composition. Returns ok.
	FindAndHandle() (ok bool)
	// FindComponents discovers the connected components of the current
	// constraint graph without detaching or solving any of them, for
	// schedule tokens that only want the component count as a signal.
	FindComponents() (ok bool)
	// ReaddRemovedClauses reintroduces all clauses from every previously
	// removed component.
	ReaddRemovedClauses()
	// ExtendModel appends the stored per-component models onto model.
	ExtendModel(model []TriVal) []TriVal
}

// Prober performs failed-literal and in-tree probing.
type Prober interface {
	Probe(inTree bool) (ok bool)
}

// Distiller performs clause distillation: shrinking clauses via trial
// propagation.
type Distiller interface {
	Distill() (ok bool)
}

// ImplicationCache is the cache of derived binary implications consulted
// by the cache-clean/cache-tryboth/check-cache-size tokens.
type ImplicationCache interface {
	Clean()
	TryBoth() (ok bool)
	SizeBytes() int64
	Disable()
	Enabled() bool
}

// GaussianEngine performs XOR/Gaussian-elimination reasoning over the
// stored XOR constraints, run after an occ-gauss flush.
type GaussianEngine interface {
	FindMatrices() (ok bool)
	Clear()
}

// DataSync is the shared-clause gossip channel: newly derived binaries
// are published to it, and peer binaries may be pulled from it.
type DataSync interface {
	ShareBinary(l1, l2 Lit)
	PullBinaries() [][2]Lit
}

// StatsSink is the statistics-recording collaborator. A required sink
// that is unavailable is a fatal error at the call site; an optional
// sink that is unavailable is simply not consulted.
type StatsSink interface {
	RecordConflict(stats Stats)
	Close() error
}

// DRATWriter emits the DRAT proof stream: per-clause records, optional
// 'd' prefix for deletions, empty clause on UNSAT.
type DRATWriter interface {
	AddClause(lits []Lit)
	DeleteClause(lits []Lit)
	Empty()
	Close() error
}

package cdcl

// SearchDriver is the outer loop alternating bounded Searcher.Solve calls
// with inprocessing passes, growing the conflict budget geometrically
// between iterations and consulting the Reconfigurator at the
// configured simplification count.
type SearchDriver struct {
	s *Solver
}

// NewSearchDriver returns a SearchDriver bound to s.
func NewSearchDriver(s *Solver) *SearchDriver { return &SearchDriver{s: s} }

// Run drives the solver to a verdict (or VerdictUndef on interrupt or
// budget exhaustion), running the startup simplification pass first, then
// alternating bounded search iterations with non-startup simplification
// passes until a verdict is reached.
func (d *SearchDriver) Run() Verdict {
	s := d.s
	if !s.simplifyProblem(true) || !s.ok {
		if s.ok && s.interrupted {
			return VerdictUndef
		}
		s.refute()
		return VerdictUnsat
	}

	iteration := 0
	conflBudget := s.cfg.ConflBase
	for {
		if s.interrupted {
			return VerdictUndef
		}
		if s.cfg.MaxConfl >= 0 && s.Stats.NbConflicts >= s.cfg.MaxConfl {
			return VerdictUndef
		}

		s.searcher.ClearGaussianMatrices()
		verdict := s.searcher.Solve(SearchBudget{MaxConflicts: conflBudget, Iteration: iteration})
		s.searcher.FoldStats()
		s.recordSinkConflict()

		if verdict != VerdictUndef {
			if verdict == VerdictUnsat {
				s.refute()
			}
			return verdict
		}

		if !s.cfg.DoSimplifyProblem {
			conflBudget = growBudget(conflBudget, s.cfg)
			iteration++
			continue
		}

		if !s.simplifyProblem(false) || !s.ok {
			if s.ok && s.interrupted {
				return VerdictUndef
			}
			s.refute()
			return VerdictUnsat
		}

		s.Stats.NbSimplify++
		if s.cfg.ReconfigureAtSimplification > 0 && int(s.Stats.NbSimplify) == s.cfg.ReconfigureAtSimplification {
			s.reconfig.Apply(s.reconfig.Choose())
		}

		s.globalTimeoutMultiplier *= s.cfg.ConflGrowthRate
		if s.globalTimeoutMultiplier > s.cfg.TimeoutMultiplierCap {
			s.globalTimeoutMultiplier = s.cfg.TimeoutMultiplierCap
		}
		conflBudget = growBudget(conflBudget, s.cfg)
		iteration++
	}
}

func growBudget(cur int64, cfg Config) int64 {
	next := int64(float64(cur) * cfg.ConflGrowthRate)
	if next <= cur {
		next = cur + 1
	}
	return next
}

// simplifyProblem runs one inprocessing pass: rebuild the decision order
// heap, dispatch the startup or non-startup schedule string, and let the
// renumberer react if the inactive-variable ratio warrants it.
func (s *Solver) simplifyProblem(startup bool) bool {
	if s.searcher != nil {
		s.searcher.RebuildOrderHeap()
	}
	if !s.pullSharedBinaries() {
		return false
	}
	schedule := s.cfg.SimplifySchedNonStartup
	if startup {
		schedule = s.cfg.SimplifySchedStartup
	}
	if !s.scheduler.Run(schedule) {
		return false
	}
	if s.cfg.DoRenumberVars && s.renumberer.ShouldRenumber() {
		if !s.renumberer.Run() {
			return false
		}
	}
	return s.ok
}

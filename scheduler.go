package cdcl

import "strings"

// InprocessScheduler parses and dispatches the comma-separated
// inprocessing schedule strings (Config.SimplifySchedStartup,
// Config.SimplifySchedNonStartup). Consecutive "occ-*" tokens are
// accumulated into a single strategy string and flushed as one
// OccurrenceSimplifier.Run call, since the occurrence-based simplifier
// amortizes its occurrence-list build across everything asked of it in
// one pass; every other token dispatches immediately to its
// collaborator.
type InprocessScheduler struct {
	s *Solver
}

// NewInprocessScheduler returns a scheduler bound to s.
func NewInprocessScheduler(s *Solver) *InprocessScheduler { return &InprocessScheduler{s: s} }

// Run executes schedule token by token, stopping early (returning false)
// if the solver is refuted, interrupted, or a collaborator reports
// !ok. It always flushes any pending occ-* accumulation before
// returning, even on early exit, so a partial schedule never silently
// drops accumulated occurrence work.
func (sch *InprocessScheduler) Run(schedule string) bool {
	s := sch.s
	var occAccum []string

	flushOcc := func() bool {
		if len(occAccum) == 0 {
			return true
		}
		strategy := strings.Join(occAccum, ",")
		hadGauss := false
		for _, t := range occAccum {
			if t == "gauss" {
				hadGauss = true
			}
		}
		occAccum = occAccum[:0]
		if s.occ == nil {
			return true
		}
		if !s.occ.Run(strategy) {
			return false
		}
		if hadGauss && s.gauss != nil {
			return s.gauss.FindMatrices()
		}
		return true
	}

	for _, tok := range strings.Split(schedule, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if !s.ok || s.interrupted {
			flushOcc()
			return false
		}

		if rest, isOcc := strings.CutPrefix(tok, "occ-"); isOcc {
			occAccum = append(occAccum, rest)
			continue
		}

		if !flushOcc() {
			return false
		}

		if !sch.dispatch(tok) {
			return false
		}
	}
	return flushOcc() && s.ok
}

func (sch *InprocessScheduler) dispatch(tok string) bool {
	s := sch.s
	switch tok {
	case "handle-comps":
		if s.comps == nil {
			return true
		}
		return s.comps.FindAndHandle()
	case "find-comps":
		if s.comps == nil {
			return true
		}
		return s.comps.FindComponents()
	case "scc-vrepl":
		if s.varReplacer == nil {
			return true
		}
		return s.varReplacer.FindAndReplace()
	case "cache-clean":
		if s.cache != nil {
			s.cache.Clean()
		}
		return true
	case "sub-impl", "cache-tryboth":
		if s.cache == nil {
			return true
		}
		return s.cache.TryBoth()
	case "intree-probe":
		if s.prober == nil {
			return true
		}
		return s.prober.Probe(true)
	case "probe":
		if s.prober == nil {
			return true
		}
		return s.prober.Probe(false)
	case "distill-cls":
		if s.distiller == nil {
			return true
		}
		return s.distiller.Distill()
	case "check-cache-size":
		if s.cache == nil {
			return true
		}
		if s.cache.SizeBytes() > s.cfg.MaxCacheSizeMB*1024*1024 {
			s.cache.Disable()
		}
		return true
	case "renumber", "must-renumber":
		if !s.cfg.DoRenumberVars {
			return true
		}
		return s.renumberer.Run()
	default:
		s.log.WithField("token", tok).Error("cdcl: unrecognized inprocessing schedule token, aborting")
		return false
	}
}

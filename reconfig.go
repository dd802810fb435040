package cdcl

// Reconfigurator picks, after enough simplification rounds to have a
// read on the instance's shape, one of a fixed catalog of tuning presets
// and applies it wholesale, rather than tuning individual Config fields
// online. The preset catalog is modeled on CryptoMiniSat's reconfigure
// presets, reduced here to the subset of Config fields this module
// actually exposes.
type Reconfigurator struct {
	s *Solver
}

// NewReconfigurator returns a Reconfigurator bound to s.
func NewReconfigurator(s *Solver) *Reconfigurator { return &Reconfigurator{s: s} }

// reconfigPresets is the fixed catalog: preset number -> Config mutation.
// Choosing an unlisted number is a no-op.
var reconfigPresets = map[int]func(*Config){
	// 3: favor small, tightly-glued learned clauses -- crypto-shaped
	// instances with many short XORs and few long clauses.
	3: func(c *Config) {
		c.GluePutLev0IfBelowOrEq = 2
		c.GluePutLev1IfBelowOrEq = 4
		c.VarDecayStart = 0.7
		c.RestartType = RestartGlue
	},
	// 4: favor probing and equivalence finding over occurrence-based
	// elimination -- instances with heavy binary implication structure.
	4: func(c *Config) {
		c.DoIntreeProbe = true
		c.DoFindAndReplaceEqLits = true
		c.PerformOccurBasedSimp = false
	},
	// 6: favor aggressive variable elimination -- instances that are
	// mostly large industrial CNFs with many pure/near-pure literals.
	6: func(c *Config) {
		c.PerformOccurBasedSimp = true
		c.DoDistillClauses = false
		c.RestartType = RestartLuby
	},
	// 7: conservative default-adjacent preset, only softening the
	// restart cadence.
	7: func(c *Config) {
		c.RestartFirst = 500
	},
	// 12: favor component decomposition -- instances that split into many
	// independent subproblems.
	12: func(c *Config) {
		c.DoCompHandler = true
		c.RenumberInactiveRatio = 0.1
	},
	// 13: disable the implication cache -- large instances where its
	// memory cost outweighs the subsumption it buys.
	13: func(c *Config) {
		c.DoCache = false
	},
	// 14: favor distillation -- instances with many redundant long
	// learned clauses worth shrinking via trial propagation.
	14: func(c *Config) {
		c.DoDistillClauses = true
		c.RedundantCap = 4000
	},
	// 15: geometric restarts with a high growth rate -- instances where
	// glue-trend restarts thrash.
	15: func(c *Config) {
		c.RestartType = RestartGeometric
		c.ConflGrowthRate = 1.5
	},
}

// Choose computes a feature vector from the solver's running statistics
// and arena occupancy and picks the best-matching preset from the fixed
// catalog. It never returns a number outside that catalog.
func (r *Reconfigurator) Choose() int {
	s := r.s
	mem := s.state.Arena.Stats()
	totalLits := mem.IrredundantLongLits + mem.RedundantLongLits

	nXors := len(s.state.XORs)
	nVars := s.state.Vars.NbOuter()

	switch {
	case nXors > 0 && nVars > 0 && float64(nXors) > 0.05*float64(nVars):
		return 3 // XOR-heavy: cryptography-shaped
	case s.Stats.NbBinaryLearned > s.Stats.NbLearned*2:
		return 4 // implication-graph-heavy
	case totalLits > 0 && nVars > 0 && totalLits/int64(nVars) > 20:
		return 6 // long, dense clauses: industrial
	case s.Stats.NbRestarts > int64(s.Stats.NbConflicts/50+1)*4:
		return 15 // restarting far more than the conflict count would suggest
	default:
		return 7
	}
}

// Apply installs preset onto the solver's live configuration. Unknown
// preset numbers leave the configuration untouched.
func (r *Reconfigurator) Apply(preset int) {
	mutate, ok := reconfigPresets[preset]
	if !ok {
		return
	}
	mutate(&r.s.cfg)
	*r.s.state.Cfg = r.s.cfg
	r.s.log.WithField("preset", preset).Info("cdcl: reconfigured")
}

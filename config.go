package cdcl

// RestartType selects the restart cadence strategy.
type RestartType int8

const (
	// RestartLuby uses the Luby sequence, grounded on solver/luby.go.
	RestartLuby RestartType = iota
	// RestartGlue uses recent-glue trending, grounded on solver/lbd.go's mustRestart.
	RestartGlue
	// RestartGeometric uses a geometrically growing conflict budget per restart.
	RestartGeometric
)

// PolarityMode selects how a decision variable's initial sign is chosen.
type PolarityMode int8

const (
	// PolarityCache prefers the variable's last assigned sign.
	PolarityCache PolarityMode = iota
	// PolarityTrue always tries true first.
	PolarityTrue
	// PolarityFalse always tries false first.
	PolarityFalse
	// PolarityRandom picks randomly.
	PolarityRandom
)

// Config is the flat record of tunable fields. Every field the
// Reconfigurator can override is named here.
type Config struct {
	// Feature gates.
	DoProbe              bool
	DoIntreeProbe        bool
	DoCompHandler        bool
	DoStrSubImplicit     bool
	DoCache              bool
	DoStamp              bool
	PerformOccurBasedSimp bool
	DoDistillClauses     bool
	DoSimplifyProblem    bool
	DoRenumberVars       bool
	DoFindAndReplaceEqLits bool
	DoBVA                bool

	// Tier thresholds.
	GluePutLev0IfBelowOrEq int
	GluePutLev1IfBelowOrEq int

	// Search control.
	MaxConfl        int64
	MaxTime         float64 // seconds of CPU time
	RestartFirst    int
	RestartType     RestartType
	PolarityMode    PolarityMode
	VarDecayMax     float64
	VarDecayStart   float64
	ClauseDecay     float64
	RedundantCap    int
	ShortTermHistorySize int

	// Inprocessing schedule.
	SimplifySchedStartup    string
	SimplifySchedNonStartup string

	// Growth of the per-iteration conflict budget (SearchDriver).
	ConflGrowthRate float64
	ConflBase       int64

	// Renumbering trigger ratio: inactive/total exceeding this triggers a renumber.
	RenumberInactiveRatio float64

	// Cache memory budget in megabytes, consulted by the check-cache-size token.
	MaxCacheSizeMB int64

	// TimeoutMultiplierCap bounds the geometric growth SearchDriver applies
	// to the global timeout multiplier after each simplification pass.
	TimeoutMultiplierCap float64

	// ReconfigureAtSimplification, if >0, is the simplification count at
	// which SearchDriver invokes the Reconfigurator once.
	ReconfigureAtSimplification int

	// XORCutSize is the largest XOR arity ClauseIngress will encode
	// directly; longer XORs are cut into a chain of segments joined by
	// fresh BVA variables, each segment at most XORCutSize+1 literals
	// wide (a 4-variable XOR is cut into two size-3 segments joined by
	// one BVA variable).
	XORCutSize int
}

// DefaultConfig returns a reasonable starting configuration with every
// inprocessing technique enabled, generalized into named, overridable
// fields.
func DefaultConfig() Config {
	return Config{
		DoProbe:                true,
		DoIntreeProbe:          true,
		DoCompHandler:          true,
		DoStrSubImplicit:       true,
		DoCache:                true,
		DoStamp:                false,
		PerformOccurBasedSimp:  true,
		DoDistillClauses:       true,
		DoSimplifyProblem:      true,
		DoRenumberVars:         true,
		DoFindAndReplaceEqLits: true,
		DoBVA:                  true,

		GluePutLev0IfBelowOrEq: 2,
		GluePutLev1IfBelowOrEq: 6,

		MaxConfl:             -1, // unbounded
		MaxTime:              -1, // unbounded
		RestartFirst:         100,
		RestartType:          RestartGlue,
		PolarityMode:         PolarityCache,
		VarDecayMax:          0.95,
		VarDecayStart:        0.8,
		ClauseDecay:          0.999,
		RedundantCap:         2000,
		ShortTermHistorySize: 50,

		SimplifySchedStartup:    "handle-comps,scc-vrepl,cache-clean,sub-impl,intree-probe,probe,occ-backw-sub,occ-clean-implicit,occ-bve,occ-gauss,must-renumber",
		SimplifySchedNonStartup: "handle-comps,scc-vrepl,sub-impl,distill-cls,probe,occ-backw-sub,occ-bve,check-cache-size,renumber",

		ConflGrowthRate:       1.1,
		ConflBase:             100,
		RenumberInactiveRatio: 0.2,
		MaxCacheSizeMB:        2048,
		TimeoutMultiplierCap:  4.0,

		XORCutSize: 3,
	}
}

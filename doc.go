/*
Package cdcl implements a Conflict-Driven Clause Learning SAT solver with
inprocessing, in the style of CryptoMiniSat: a CDCL search loop is
periodically interrupted to run a battery of equisatisfiability-preserving
simplification passes (bounded variable elimination and subsumption,
equivalence substitution, connected-component splitting, failed-literal
probing, clause distillation, implication caching and GF(2) Gaussian
elimination over XOR constraints) directly on the live clause database,
rather than as a single pre-search pass.

The package is organized as an orchestrator (Solver) holding a State
shared with a set of external collaborators, each specified only at its
interface (see collaborators.go): a Searcher runs the two-watched-literal
propagation and conflict-driven learning loop; an OccurrenceSimplifier, a
VarReplacer, a ComponentHandler, a Prober, a Distiller, an
ImplicationCache and a GaussianEngine each own one inprocessing
technique. The default implementations live in the searcher and simplify
subpackages; internal/wiring assembles a Solver from them.

Three numbering namespaces track a variable through simplification (see
varreg.go): "outside" is the caller's numbering, exactly as passed to
NewVars and returned by GetModel; "outer" is stable across a single
Solver's renumberings and is the namespace shared-clause gossip (see
gossip.go) is expressed in; "inter" is the dense, live namespace that
Propagate, the watch lists and the trail operate on directly, and that a
Renumberer may compact at any time.

Building a problem

A CNF (optionally extended with CryptoMiniSat-style XOR constraints) is
usually loaded from a DIMACS file with the dimacs subpackage:

	cnf, err := dimacs.Parse(f)
	s := wiring.New(cdcl.DefaultConfig(), nil, nil)
	ok, err := dimacs.Load(cnf, s)

A problem can also be built directly against the Solver API with NewVars,
AddClause and AddXorClause. Solve runs SearchDriver's outer loop until a
verdict is reached or a resource bound (Config.MaxConfl) is hit; GetModel
returns the outside-numbered assignment once the verdict is
cdcl.VerdictSat.
*/
package cdcl

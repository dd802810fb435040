// Package wiring assembles a fully wired *cdcl.Solver from the default
// collaborator implementations shipped alongside the core (cdcl/searcher,
// cdcl/simplify, cdcl/sync, cdcl/stats): the orchestrator only ever talks
// to the collaborator interfaces, but something still has to construct a
// runnable instance end to end. cmd/ entry points call New instead of
// hand-assembling a Solver themselves.
package wiring

import (
	cdcl "github.com/crillab/cdclsat"
	"github.com/crillab/cdclsat/searcher"
	"github.com/crillab/cdclsat/simplify"
	"github.com/crillab/cdclsat/stats"
	syncbus "github.com/crillab/cdclsat/sync"
)

// New constructs a Solver with every default collaborator installed:
// searcher.Searcher for the CDCL loop, every simplify.* collaborator for
// inprocessing, stats.NopSink for statistics, and drat as the DRAT
// writer (a cdcl.NopDRATWriter{} if the caller has no proof obligation).
// bus, if non-nil, is installed as the shared-clause gossip channel;
// pass nil for a single, non-portfolio Solver.
func New(cfg cdcl.Config, drat cdcl.DRATWriter, bus *syncbus.Bus) *cdcl.Solver {
	s := cdcl.NewSolver(cfg)
	st := s.State()

	s.SetSearcher(searcher.New(st))
	occ := simplify.New(st)
	s.SetOccurrenceSimplifier(occ)
	s.SetSolutionExtender(occ)
	s.SetVarReplacer(simplify.NewVarReplacer(st))
	s.SetComponentHandler(simplify.NewComponentHandler(st))
	s.SetProber(simplify.NewProber(st))
	s.SetDistiller(simplify.NewDistiller(st))
	s.SetImplicationCache(simplify.NewImplicationCache(st))
	s.SetGaussianEngine(simplify.NewGaussianEngine(st))
	s.SetStatsSink(stats.New())

	if drat != nil {
		s.SetDRATWriter(drat)
	}
	if bus != nil {
		s.SetSharedData(bus)
	}
	return s
}

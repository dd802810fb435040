package cdcl

// gossip.go wires the DataSync collaborator into ingress and simplification:
// a shared-clause channel into which newly derived binaries are published
// and from which peer binaries may be pulled. Binaries cross the channel
// in outer numbering, the one namespace stable across independently
// renumbered Solver instances sharing the same original variable universe
// (inter indices are private to a single Solver's Renumberer).

// shareBinary publishes an inter-numbered binary clause to the installed
// DataSync, translating it to outer numbering first.
func (s *Solver) shareBinary(l1, l2 Lit) {
	if s.state.Sync == nil {
		return
	}
	vars := s.state.Vars
	o1 := vars.InterToOuter(l1.Var()).SignedLit(!l1.IsPositive())
	o2 := vars.InterToOuter(l2.Var()).SignedLit(!l2.IsPositive())
	s.state.Sync.ShareBinary(o1, o2)
}

// pullSharedBinaries drains every peer binary currently queued on the
// installed DataSync and admits each as an ingress-style redundant clause,
// resurrecting any eliminated/decomposed/replaced variable it names the
// same way a fresh AddClause call would: a pulled binary is exactly as
// entitled to resurrect a removed variable as one the caller adds
// directly.
func (s *Solver) pullSharedBinaries() bool {
	if s.state.Sync == nil {
		return true
	}
	for _, pair := range s.state.Sync.PullBinaries() {
		if !s.ok {
			return false
		}
		if !s.state.Trail.AtLevel0Fully() {
			break
		}
		interLits := s.admitOuterLits(pair[:])
		cleaned, tautology := s.cleanClause(interLits, true)
		if tautology {
			continue
		}
		s.dispatchClause(cleaned, true, interLits)
	}
	return s.ok
}

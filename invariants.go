package cdcl

// CheckInvariants checks a battery of structural invariants against the
// current state and returns the first violation found, or nil. It is a
// debug/test tool, not part of any hot path: every outer-API call is
// expected to leave the state satisfying these properties, so tests
// exercise a sequence of calls and then call this once per step.
func CheckInvariants(st *State) error {
	if err := checkVarRemovedConsistency(st); err != nil {
		return err
	}
	if err := checkLongClauseShape(st); err != nil {
		return err
	}
	if err := checkLongWatchReferenceCounts(st); err != nil {
		return err
	}
	if err := checkBinarySymmetry(st); err != nil {
		return err
	}
	if err := checkLiteralCounters(st); err != nil {
		return err
	}
	return nil
}

func checkVarRemovedConsistency(st *State) error {
	trail := st.Trail
	for v := 0; v < st.Vars.NbInter(); v++ {
		if trail.Value(Var(v)) != Undef && trail.LevelOf(Var(v)) == 0 {
			outer := st.Vars.InterToOuter(Var(v))
			if st.Vars.Removed(outer) != RemovedNone {
				return errInvariant("level-0-assigned variable is also marked removed")
			}
		}
	}
	return nil
}

func checkLongClauseShape(st *State) error {
	var bad error
	st.Arena.Each(func(h Handle, c *Clause) {
		if bad != nil || c.Removed() {
			return
		}
		if c.Len() < 3 {
			bad = errInvariant("attached long clause has fewer than 3 literals")
			return
		}
		if c.HasDuplicateOrComplement() {
			bad = errInvariant("attached long clause has a duplicate or complementary literal")
		}
	})
	return bad
}

func checkLongWatchReferenceCounts(st *State) error {
	var bad error
	st.Arena.Each(func(h Handle, c *Clause) {
		if bad != nil || c.Removed() {
			return
		}
		if n := st.Watch.CountLongReferences(h); n != 2 {
			bad = errInvariant("long clause is not watched at exactly two positions")
		}
	})
	return bad
}

func checkBinarySymmetry(st *State) error {
	for l := 0; l < st.Watch.NbLits(); l++ {
		for _, e := range st.Watch.List(Lit(l)) {
			if !e.IsBinary {
				continue
			}
			if !hasBinaryEntry(st.Watch.List(e.Other.Negation()), Lit(l).Negation()) {
				return errInvariant("binary watch entry is not mirrored on its partner literal")
			}
		}
	}
	return nil
}

func hasBinaryEntry(list []WatchEntry, other Lit) bool {
	for _, e := range list {
		if e.IsBinary && e.Other == other {
			return true
		}
	}
	return false
}

func checkLiteralCounters(st *State) error {
	var irred, red int64
	st.Arena.Each(func(h Handle, c *Clause) {
		if c.Removed() {
			return
		}
		if c.Redundant() {
			red += int64(c.Len())
		} else {
			irred += int64(c.Len())
		}
	})
	mem := st.Arena.Stats()
	if mem.IrredundantLongLits != irred || mem.RedundantLongLits != red {
		return errInvariant("arena literal accounting disagrees with a fresh scan of live clauses")
	}
	return nil
}

type invariantError string

func (e invariantError) Error() string { return "cdcl: invariant violation: " + string(e) }

func errInvariant(msg string) error { return invariantError(msg) }

package cdcl

// WatchEntry is a tagged-variant watch-list entry: either a binary clause
// (represented purely by its other literal, since attaching a *Clause for
// a 2-literal clause would waste an arena slot) or a long clause referred
// to by Handle plus a blocker literal used to skip a full dereference
// when the blocker is already satisfied.
type WatchEntry struct {
	IsBinary  bool
	Other     Lit    // binary: the clause's other literal
	Redundant bool   // binary: whether the clause is learned
	Clause    Handle // long: the watched clause
	Blocker   Lit    // long: a literal that, if true, lets the scan skip the clause
}

// WatchIndex maps each literal to the list of watch entries that must be
// examined when that literal becomes true during propagation: the list of
// l holds the clauses in which -l is watched.
type WatchIndex struct {
	lists [][]WatchEntry // indexed by Lit
}

// NewWatchIndex allocates a watch index sized for nVars variables.
func NewWatchIndex(nVars int) *WatchIndex {
	return &WatchIndex{lists: make([][]WatchEntry, nVars*2)}
}

// Grow extends the index to cover nVars variables, preserving existing
// lists. Used when new variables are appended (NewVar/NewVars, BVA).
func (w *WatchIndex) Grow(nVars int) {
	need := nVars * 2
	if need <= len(w.lists) {
		return
	}
	grown := make([][]WatchEntry, need)
	copy(grown, w.lists)
	w.lists = grown
}

// List returns the watch list for l. The returned slice must be treated
// as read-only unless the caller mutates it and writes it back; scans
// that both iterate and mutate the list operate through the accessor
// methods below instead.
func (w *WatchIndex) List(l Lit) []WatchEntry { return w.lists[l] }

// SetList overwrites the watch list for l wholesale, used by collaborators
// that filter or rebuild a list in place (e.g. duplicate-binary cleanup).
func (w *WatchIndex) SetList(l Lit, entries []WatchEntry) { w.lists[l] = entries }

// NbLits returns the number of literal slots the index currently covers
// (2 per variable), letting an external collaborator enumerate every list.
func (w *WatchIndex) NbLits() int { return len(w.lists) }

// AttachBinary appends the two directions of a binary clause's watch
// entries: {l2, red} into -l1's list and {l1, red} into -l2's list. Both
// calls must always happen together to keep the lists symmetric.
func (w *WatchIndex) AttachBinary(l1, l2 Lit, redundant bool) {
	neg1, neg2 := l1.Negation(), l2.Negation()
	w.lists[neg1] = append(w.lists[neg1], WatchEntry{IsBinary: true, Other: l2, Redundant: redundant})
	w.lists[neg2] = append(w.lists[neg2], WatchEntry{IsBinary: true, Other: l1, Redundant: redundant})
}

// DetachBinary removes the two directions of a binary clause's watch
// entries. Both l1 and l2 are the clause's original literals (not their
// negations); the negations are watched, mirroring AttachBinary.
func (w *WatchIndex) DetachBinary(l1, l2 Lit) {
	neg1, neg2 := l1.Negation(), l2.Negation()
	w.lists[neg1] = removeBinary(w.lists[neg1], l2)
	w.lists[neg2] = removeBinary(w.lists[neg2], l1)
}

func removeBinary(list []WatchEntry, other Lit) []WatchEntry {
	for i, e := range list {
		if e.IsBinary && e.Other == other {
			last := len(list) - 1
			list[i] = list[last]
			return list[:last]
		}
	}
	return list
}

// AttachLong appends a long-clause watch entry to the watch lists of the
// negations of the two watched literals w1, w2 (chosen by the caller --
// the search engine picks the watched positions). Each entry's initial
// blocker is the other watched literal.
func (w *WatchIndex) AttachLong(h Handle, w1, w2 Lit) {
	neg1, neg2 := w1.Negation(), w2.Negation()
	w.lists[neg1] = append(w.lists[neg1], WatchEntry{Clause: h, Blocker: w2})
	w.lists[neg2] = append(w.lists[neg2], WatchEntry{Clause: h, Blocker: w1})
}

// DetachLong removes both of a long clause's watch entries, given the two
// literals it is currently watched on.
func (w *WatchIndex) DetachLong(h Handle, w1, w2 Lit) {
	neg1, neg2 := w1.Negation(), w2.Negation()
	w.lists[neg1] = removeLong(w.lists[neg1], h)
	w.lists[neg2] = removeLong(w.lists[neg2], h)
}

func removeLong(list []WatchEntry, h Handle) []WatchEntry {
	for i, e := range list {
		if !e.IsBinary && e.Clause == h {
			last := len(list) - 1
			list[i] = list[last]
			return list[:last]
		}
	}
	return list
}

// ReplaceLongWatch swaps the watched literal old for neu on the given
// clause, moving its entry from old.Negation()'s list to neu.Negation()'s
// list. Used mid-scan when propagate finds a new watchable literal.
func (w *WatchIndex) ReplaceLongWatch(h Handle, old, neu, blocker Lit) {
	negOld := old.Negation()
	w.lists[negOld] = removeLong(w.lists[negOld], h)
	negNeu := neu.Negation()
	w.lists[negNeu] = append(w.lists[negNeu], WatchEntry{Clause: h, Blocker: blocker})
}

// CountLongReferences returns how many watch entries across every list
// refer to clause h. Must equal exactly 2 for every attached long clause.
func (w *WatchIndex) CountLongReferences(h Handle) int {
	n := 0
	for _, list := range w.lists {
		for _, e := range list {
			if !e.IsBinary && e.Clause == h {
				n++
			}
		}
	}
	return n
}

// Rewrite applies fn to every literal stored in every watch entry (Other
// for binaries, Blocker for long entries) and repositions entries whose
// owning literal (the list index) changed, as required after a
// renumbering. newNVars sizes the rebuilt index.
func (w *WatchIndex) Rewrite(newNVars int, fn func(Lit) Lit) {
	rebuilt := make([][]WatchEntry, newNVars*2)
	for oldLit, list := range w.lists {
		newLit := fn(Lit(oldLit))
		if newLit == LitUndef {
			continue // literal belongs to a variable that left the active universe
		}
		for _, e := range list {
			if e.IsBinary {
				e.Other = fn(e.Other)
			} else {
				e.Blocker = fn(e.Blocker)
			}
			rebuilt[newLit] = append(rebuilt[newLit], e)
		}
	}
	w.lists = rebuilt
}

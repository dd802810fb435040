package cdcl

// Conflict names the clause responsible for a propagation conflict, in
// enough detail for conflict analysis (an external Searcher concern) to
// proceed.
type Conflict struct {
	IsBinary bool
	Lits     [2]Lit // valid iff IsBinary: the two literals of the falsified binary clause
	Handle   Handle // valid iff !IsBinary
}

// Propagate runs unit propagation to a fixpoint starting at the trail's
// current queue head, using the two-watched-literal scheme. It is a
// shared primitive, not a Searcher method: binary clause propagation and
// long clause propagation are mechanical watch-list bookkeeping, not a
// decision heuristic or conflict-analysis concern. ClauseIngress calls
// it to fold level-0 units; the default Searcher (cdcl/searcher) calls
// it at every decision level during search.
func Propagate(st *State) *Conflict {
	trail := st.Trail
	watch := st.Watch

	for trail.QHead() < trail.Len() {
		lit := trail.At(trail.QHead()).Lit
		trail.SetQHead(trail.QHead() + 1)

		list := watch.lists[lit]
		keep := list[:0]
		for i := 0; i < len(list); i++ {
			e := list[i]
			if e.IsBinary {
				switch trail.LitValue(e.Other) {
				case True:
					keep = append(keep, e)
				case False:
					watch.lists[lit] = append(keep, list[i:]...)
					return &Conflict{IsBinary: true, Lits: [2]Lit{lit.Negation(), e.Other}}
				default:
					trail.Enqueue(e.Other, Reason{Kind: ReasonPropBinary, Other: lit.Negation()})
					keep = append(keep, e)
				}
				continue
			}

			if trail.LitValue(e.Blocker) == True {
				keep = append(keep, e)
				continue
			}

			c := st.Arena.Deref(e.Clause)
			falseLit := lit.Negation()
			if c.lits[0] == falseLit {
				c.lits[0], c.lits[1] = c.lits[1], c.lits[0]
			}
			if trail.LitValue(c.lits[0]) == True {
				keep = append(keep, WatchEntry{Clause: e.Clause, Blocker: c.lits[0]})
				continue
			}

			relocated := false
			for k := 2; k < len(c.lits); k++ {
				if trail.LitValue(c.lits[k]) != False {
					c.lits[1], c.lits[k] = c.lits[k], c.lits[1]
					negNew := c.lits[1].Negation()
					watch.lists[negNew] = append(watch.lists[negNew], WatchEntry{Clause: e.Clause, Blocker: c.lits[0]})
					relocated = true
					break
				}
			}
			if relocated {
				continue
			}

			keep = append(keep, WatchEntry{Clause: e.Clause, Blocker: c.lits[0]})
			switch trail.LitValue(c.lits[0]) {
			case False:
				watch.lists[lit] = append(keep, list[i+1:]...)
				return &Conflict{Handle: e.Clause}
			case Undef:
				trail.Enqueue(c.lits[0], Reason{Kind: ReasonPropLong, Clause: e.Clause})
			}
		}
		watch.lists[lit] = keep
	}
	return nil
}

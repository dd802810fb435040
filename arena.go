package cdcl

// Arena is a bump allocator for long clauses. It hands out stable Handles
// (an index into an internal slot table) so that other structures
// (WatchIndex entries, the XOR store, save/load state) can refer to a
// clause without holding a live *Clause pointer across a consolidation.
//
// Binary and unit clauses never pass through the arena; it is dedicated
// to the >=3-literal long clauses only.
type Arena struct {
	slots []*Clause // slots[h] is the clause at Handle(h), or nil if freed
	free  []Handle  // reclaimed slots available for reuse before growing slots

	memIrredLong int64 // literals of live irredundant clauses
	memRedLong   int64 // literals of live redundant clauses
}

// NewArena returns an empty clause arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc stores c and returns a stable handle to it.
func (a *Arena) Alloc(c *Clause) Handle {
	var h Handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = c
	} else {
		h = Handle(len(a.slots))
		a.slots = append(a.slots, c)
	}
	a.accountAdd(c)
	return h
}

// Deref returns the clause stored at h. It panics on a freed handle,
// since dereferencing after Free is an invariant violation.
func (a *Arena) Deref(h Handle) *Clause {
	c := a.slots[h]
	if c == nil {
		panic("cdcl: dereference of freed clause handle")
	}
	return c
}

// Free physically reclaims the clause at h. The caller must already have
// unwatched it and emitted any DRAT delete record; Free itself only
// updates the arena's own bookkeeping.
func (a *Arena) Free(h Handle) {
	c := a.slots[h]
	if c == nil {
		return
	}
	a.accountRemove(c)
	c.freed = true
	a.slots[h] = nil
	a.free = append(a.free, h)
}

// Each calls fn for every live (non-freed) clause and its handle. Order is
// unspecified.
func (a *Arena) Each(fn func(Handle, *Clause)) {
	for i, c := range a.slots {
		if c != nil {
			fn(Handle(i), c)
		}
	}
}

// MemStats reports literal counts per category.
type MemStats struct {
	IrredundantLongLits int64
	RedundantLongLits   int64
}

// Stats returns the arena's current memory accounting.
func (a *Arena) Stats() MemStats {
	return MemStats{IrredundantLongLits: a.memIrredLong, RedundantLongLits: a.memRedLong}
}

func (a *Arena) accountAdd(c *Clause) {
	if c.redundant {
		a.memRedLong += int64(len(c.lits))
	} else {
		a.memIrredLong += int64(len(c.lits))
	}
}

func (a *Arena) accountRemove(c *Clause) {
	if c.redundant {
		a.memRedLong -= int64(len(c.lits))
	} else {
		a.memIrredLong -= int64(len(c.lits))
	}
}

// RelocationMap records, for a Consolidate pass, the new Handle each live
// old Handle was moved to. Handles only survive compaction if every
// holder applies this map.
type RelocationMap map[Handle]Handle

// Consolidate compacts the arena, dropping freed slots, and returns the
// relocation map every client holding Handles into this arena must apply
// (WatchIndex entries, the XOR chain store, save/load state).
func (a *Arena) Consolidate() RelocationMap {
	reloc := make(RelocationMap, len(a.slots))
	newSlots := make([]*Clause, 0, len(a.slots))
	for i, c := range a.slots {
		if c == nil {
			continue
		}
		newHandle := Handle(len(newSlots))
		newSlots = append(newSlots, c)
		reloc[Handle(i)] = newHandle
	}
	a.slots = newSlots
	a.free = nil
	return reloc
}

// Package sync provides the default DataSync implementation: an in-process
// shared-clause gossip channel that several Solver instances working the
// same outer variable universe can publish newly derived binaries to and
// pull peer binaries from.
//
// No third-party pub/sub or queue library fits this concern, so this
// collaborator is built directly on stdlib sync.Mutex, the same way bare
// channels and mutexes cover the rest of this module's own concurrency
// surface rather than reaching for an import.
package sync

import (
	stdsync "sync"

	cdcl "github.com/crillab/cdclsat"
)

// Bus is a DataSync backed by a deduplicating, mutex-protected queue.
// Binaries are addressed by outer-numbered Lit pairs, since inter numbering
// is private to each Solver's own Renumberer (gossip.go's doc comment).
type Bus struct {
	mu      stdsync.Mutex
	seen    map[[2]cdcl.Lit]bool
	pending [][2]cdcl.Lit
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{seen: make(map[[2]cdcl.Lit]bool)}
}

// ShareBinary implements cdcl.DataSync: publishes (l1, l2), deduplicated
// against every pair (in either literal order) shared so far.
func (b *Bus) ShareBinary(l1, l2 cdcl.Lit) {
	key := normalize(l1, l2)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.pending = append(b.pending, key)
}

// PullBinaries implements cdcl.DataSync: drains and returns every binary
// published since the last pull. The Bus keeps one shared queue, not one
// per caller: each binary is returned to exactly one pull, whichever
// caller makes it (including the solver that published it), and a later
// pull by another caller does not see it.
func (b *Bus) PullBinaries() [][2]cdcl.Lit {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.pending) == 0 {
		return nil
	}
	out := b.pending
	b.pending = nil
	return out
}

func normalize(l1, l2 cdcl.Lit) [2]cdcl.Lit {
	if l1 > l2 {
		l1, l2 = l2, l1
	}
	return [2]cdcl.Lit{l1, l2}
}

var _ cdcl.DataSync = (*Bus)(nil)

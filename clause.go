package cdcl

// Handle is a stable reference to a long clause stored in a ClauseArena.
// It survives as long as the clause is attached; it is only invalidated
// by arena consolidation, which is always accompanied by a relocation map
// (see Arena.Consolidate).
type Handle uint32

// Tier is the which-red-array index used to bucket redundant (learned)
// clauses for tiered retention.
type Tier uint8

const (
	// TierCore holds the lowest-glue, longest-retained learned clauses.
	TierCore Tier = iota
	// TierMid holds mid-glue learned clauses.
	TierMid
	// TierLocal holds high-glue, aggressively reclaimed learned clauses.
	TierLocal
)

// Clause is a long (>=3 literal) clause stored in the ClauseArena.
// Binary clauses never allocate a Clause; they live purely in the
// WatchIndex.
type Clause struct {
	lits []Lit

	redundant    bool
	removed      bool // logically detached, pending physical reclaim
	freed        bool // physically reclaimed; handle must not be dereferenced again
	strengthened bool // literal(s) dropped since attachment, or literals rewritten by renumbering

	glue     int32
	tier     Tier
	activity float32

	// bornAtConflict is the Stats.NbConflicts value when this clause was
	// learned; used by retention heuristics that prefer younger clauses
	// among equal-glue candidates.
	bornAtConflict int64
}

// NewClause returns a new irredundant (given) long clause. lits must
// already satisfy the clause invariants (size>=3, no duplicate, no
// complementary pair) -- ClauseIngress is responsible for establishing
// them before a Clause is constructed.
func NewClause(lits []Lit) *Clause {
	if len(lits) < 3 {
		panic("cdcl: NewClause requires at least 3 literals; binaries use the watch index directly")
	}
	return &Clause{lits: lits}
}

// NewLearnedClause returns a new redundant (learned) long clause with the
// given glue value, and assigns its retention tier accordingly.
func NewLearnedClause(lits []Lit, glue int, conflictStamp int64, cfg *Config) *Clause {
	c := &Clause{
		lits:           lits,
		redundant:      true,
		glue:           int32(glue),
		bornAtConflict: conflictStamp,
	}
	c.tier = tierForGlue(glue, cfg)
	return c
}

// tierForGlue assigns a retention tier from a clause's glue score:
// glue <= T0 -> tier 0, glue <= T1 -> tier 1, else tier 2.
func tierForGlue(glue int, cfg *Config) Tier {
	switch {
	case glue <= cfg.GluePutLev0IfBelowOrEq:
		return TierCore
	case glue <= cfg.GluePutLev1IfBelowOrEq:
		return TierMid
	default:
		return TierLocal
	}
}

// Len returns the number of literals currently in the clause.
func (c *Clause) Len() int { return len(c.lits) }

// Get returns the ith literal.
func (c *Clause) Get(i int) Lit { return c.lits[i] }

// Set overwrites the ith literal.
func (c *Clause) Set(i int, l Lit) { c.lits[i] = l }

// Lits returns the clause's literals. Callers must not retain slices
// across a renumbering or arena consolidation.
func (c *Clause) Lits() []Lit { return c.lits }

// Swap exchanges the ith and jth literals, used by watch-swapping during
// propagation and by literal-sort passes.
func (c *Clause) Swap(i, j int) { c.lits[i], c.lits[j] = c.lits[j], c.lits[i] }

// Shrink truncates the clause to newLen literals and marks it strengthened.
func (c *Clause) Shrink(newLen int) {
	if newLen < len(c.lits) {
		c.lits = c.lits[:newLen]
		c.strengthened = true
	}
}

// Redundant is true iff the clause was learned rather than given.
func (c *Clause) Redundant() bool { return c.redundant }

// Removed is true iff the clause has been logically detached.
func (c *Clause) Removed() bool { return c.removed }

// MarkRemoved logically detaches the clause; the caller (ClauseArena or a
// simplifier) is responsible for emitting the accompanying DRAT delete
// record and for unwatching it.
func (c *Clause) MarkRemoved() { c.removed = true }

// Freed is true iff the clause's storage has been physically reclaimed.
func (c *Clause) Freed() bool { return c.freed }

// Glue returns the clause's LBD/glue score.
func (c *Clause) Glue() int { return int(c.glue) }

// SetGlue updates the clause's LBD/glue score, e.g. after recomputation
// on a resurrected clause.
func (c *Clause) SetGlue(g int) { c.glue = int32(g) }

// Tier returns the clause's retention tier.
func (c *Clause) Tier() Tier { return c.tier }

// Activity returns the clause's bump-decay activity score.
func (c *Clause) Activity() float32 { return c.activity }

// BumpActivity adds inc to the clause's activity.
func (c *Clause) BumpActivity(inc float32) { c.activity += inc }

// RescaleActivity multiplies the clause's activity by factor, used to
// avoid float overflow during repeated bumping.
func (c *Clause) RescaleActivity(factor float32) { c.activity *= factor }

// Strengthened is true iff a literal was dropped from the clause since
// attachment or the renumberer rewrote its literals in place.
func (c *Clause) Strengthened() bool { return c.strengthened }

// MarkStrengthened flags the clause as strengthened without shrinking it,
// used by the renumberer when literals are rewritten in place.
func (c *Clause) MarkStrengthened() { c.strengthened = true }

// HasDuplicateOrComplement reports whether the (assumed already sorted by
// literal encoding) clause violates either the no-duplicate or
// no-complementary-pair invariant. It is used by the invariant checker,
// CheckInvariants (invariants.go), not by the hot ingestion path.
func (c *Clause) HasDuplicateOrComplement() bool {
	for i := 1; i < len(c.lits); i++ {
		if c.lits[i] == c.lits[i-1] {
			return true
		}
		if c.lits[i] == c.lits[i-1].Negation() {
			return true
		}
	}
	return false
}

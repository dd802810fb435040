package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAllocDerefFree(t *testing.T) {
	a := NewArena()
	c := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	h := a.Alloc(c)
	assert.Same(t, c, a.Deref(h))
	assert.Equal(t, int64(3), a.Stats().IrredundantLongLits)

	a.Free(h)
	assert.Equal(t, int64(0), a.Stats().IrredundantLongLits)
	assert.Panics(t, func() { a.Deref(h) })
}

func TestArenaReusesFreedSlots(t *testing.T) {
	a := NewArena()
	c1 := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	h1 := a.Alloc(c1)
	a.Free(h1)

	c2 := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	h2 := a.Alloc(c2)
	assert.Equal(t, h1, h2, "a freed slot must be reused before growing")
}

func TestArenaEachSkipsFreedClauses(t *testing.T) {
	a := NewArena()
	c1 := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	h1 := a.Alloc(c1)
	c2 := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	a.Alloc(c2)
	a.Free(h1)

	var seen []*Clause
	a.Each(func(_ Handle, c *Clause) { seen = append(seen, c) })
	require.Len(t, seen, 1)
	assert.Same(t, c2, seen[0])
}

func TestArenaConsolidateCompactsAndRemaps(t *testing.T) {
	a := NewArena()
	c1 := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	h1 := a.Alloc(c1)
	c2 := NewClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()})
	h2 := a.Alloc(c2)
	a.Free(h1)

	reloc := a.Consolidate()
	newH2, ok := reloc[h2]
	require.True(t, ok)
	assert.Same(t, c2, a.Deref(newH2))
	_, freedStillMapped := reloc[h1]
	assert.False(t, freedStillMapped)
}

func TestArenaAccountsRedundantSeparately(t *testing.T) {
	a := NewArena()
	c := NewLearnedClause([]Lit{Var(0).Lit(), Var(1).Lit(), Var(2).Lit()}, 2, 0, &Config{})
	a.Alloc(c)
	assert.Equal(t, int64(3), a.Stats().RedundantLongLits)
	assert.Equal(t, int64(0), a.Stats().IrredundantLongLits)
}

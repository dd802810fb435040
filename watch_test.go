package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchIndexAttachDetachBinary(t *testing.T) {
	w := NewWatchIndex(2)
	l1, l2 := Var(0).Lit(), Var(1).Lit()

	w.AttachBinary(l1, l2, false)
	require.Len(t, w.List(l1.Negation()), 1)
	require.Len(t, w.List(l2.Negation()), 1)
	assert.Equal(t, l2, w.List(l1.Negation())[0].Other)

	w.DetachBinary(l1, l2)
	assert.Len(t, w.List(l1.Negation()), 0)
	assert.Len(t, w.List(l2.Negation()), 0)
}

func TestWatchIndexLongClauseReferenceCount(t *testing.T) {
	w := NewWatchIndex(3)
	l1, l2 := Var(0).Lit(), Var(1).Lit()
	h := Handle(7)

	w.AttachLong(h, l1, l2)
	assert.Equal(t, 2, w.CountLongReferences(h))

	w.DetachLong(h, l1, l2)
	assert.Equal(t, 0, w.CountLongReferences(h))
}

func TestWatchIndexReplaceLongWatch(t *testing.T) {
	w := NewWatchIndex(3)
	l1, l2, l3 := Var(0).Lit(), Var(1).Lit(), Var(2).Lit()
	h := Handle(1)

	w.AttachLong(h, l1, l2)
	w.ReplaceLongWatch(h, l1, l3, l2)

	assert.Len(t, w.List(l1.Negation()), 0)
	require.Len(t, w.List(l3.Negation()), 1)
	assert.Equal(t, 2, w.CountLongReferences(h))
}

func TestWatchIndexRewriteDropsRemovedLiterals(t *testing.T) {
	w := NewWatchIndex(2)
	l0, l1 := Var(0).Lit(), Var(1).Lit()
	w.AttachBinary(l0, l1, false)

	// drop Var(1) entirely; remap Var(0) to itself.
	w.Rewrite(1, func(l Lit) Lit {
		if l.Var() == Var(1) {
			return LitUndef
		}
		return l
	})

	assert.Equal(t, 1, w.NbLits()/2)
}

package cdcl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextDRATWriterEmitsAddAndDeleteRecords(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextDRATWriter(&buf)
	v1, v2 := Var(0), Var(1)

	w.AddClause([]Lit{v1.Lit(), v2.Lit().Negation()})
	w.DeleteClause([]Lit{v1.Lit()})
	w.Empty()
	require.NoError(t, w.Close())

	assert.Equal(t, "1 -2 0\nd 1 0\n0\n", buf.String())
}

func TestChanDRATWriterPublishesRecordsAndClosesChannel(t *testing.T) {
	ch := make(chan string, 4)
	w := NewChanDRATWriter(ch)
	v1 := Var(0)

	w.AddClause([]Lit{v1.Lit()})
	w.DeleteClause([]Lit{v1.Lit()})
	w.Empty()
	require.NoError(t, w.Close())

	assert.Equal(t, "1 0", <-ch)
	assert.Equal(t, "d 1 0", <-ch)
	assert.Equal(t, "0", <-ch)
	_, open := <-ch
	assert.False(t, open, "Close must close the channel")
}

func TestNopDRATWriterIsInert(t *testing.T) {
	var w NopDRATWriter
	assert.NotPanics(t, func() {
		w.AddClause([]Lit{Var(0).Lit()})
		w.DeleteClause([]Lit{Var(0).Lit()})
		w.Empty()
	})
	assert.NoError(t, w.Close())
}

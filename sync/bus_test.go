package sync

import (
	"testing"

	cdcl "github.com/crillab/cdclsat"
	"github.com/stretchr/testify/assert"
)

func TestBusPullDrainsPendingBinaries(t *testing.T) {
	b := New()
	v1, v2 := cdcl.Var(0).Lit(), cdcl.Var(1).Lit()
	b.ShareBinary(v1, v2)

	pulled := b.PullBinaries()
	assert.Equal(t, [][2]cdcl.Lit{normalize(v1, v2)}, pulled)
	assert.Nil(t, b.PullBinaries(), "a second pull with nothing new must be empty")
}

func TestBusDeduplicatesRegardlessOfOrder(t *testing.T) {
	b := New()
	v1, v2 := cdcl.Var(0).Lit(), cdcl.Var(1).Lit()
	b.ShareBinary(v1, v2)
	b.ShareBinary(v2, v1)

	pulled := b.PullBinaries()
	assert.Len(t, pulled, 1)
}

func TestBusPullBeforeAnyShareIsNil(t *testing.T) {
	b := New()
	assert.Nil(t, b.PullBinaries())
}

var _ cdcl.DataSync = (*Bus)(nil)

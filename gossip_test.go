package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSync struct {
	shared  [][2]Lit
	pending [][2]Lit
}

func (f *fakeSync) ShareBinary(l1, l2 Lit) { f.shared = append(f.shared, [2]Lit{l1, l2}) }
func (f *fakeSync) PullBinaries() [][2]Lit {
	out := f.pending
	f.pending = nil
	return out
}

func TestShareBinaryTranslatesToOuterNumbering(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(2)
	sync := &fakeSync{}
	s.SetSharedData(sync)

	v1, v2 := Var(0), Var(1)
	s.shareBinary(v1.Lit(), v2.Lit().Negation())

	require.Len(t, sync.shared, 1)
	assert.Equal(t, v1.Lit(), sync.shared[0][0])
	assert.Equal(t, v2.Lit().Negation(), sync.shared[0][1])
}

func TestShareBinaryNoopWithoutSync(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(2)
	assert.NotPanics(t, func() { s.shareBinary(Var(0).Lit(), Var(1).Lit()) })
}

func TestPullSharedBinariesAdmitsPeerClause(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(2)
	v1, v2 := Var(0), Var(1)
	sync := &fakeSync{pending: [][2]Lit{{v1.Lit(), v2.Lit()}}}
	s.SetSharedData(sync)

	ok := s.pullSharedBinaries()
	require.True(t, ok)

	s.state.Trail.Enqueue(v1.Lit().Negation(), Reason{Kind: ReasonDecision})
	require.Nil(t, Propagate(s.state))
	assert.Equal(t, True, s.state.Trail.Value(v2))
}

func TestPullSharedBinariesNoopWithoutSync(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(1)
	assert.True(t, s.pullSharedBinaries())
}

package cdcl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowBudgetAlwaysAdvances(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConflGrowthRate = 1.0
	assert.Equal(t, int64(101), growBudget(100, cfg), "a growth rate of 1.0 must still advance by at least one")

	cfg.ConflGrowthRate = 2.0
	assert.Equal(t, int64(200), growBudget(100, cfg))
}

// fakeSearcher lets driver_test drive SearchDriver.Run without depending
// on the searcher package, isolating the budget/interrupt bookkeeping
// under test from actual CDCL search behavior.
type fakeSearcher struct {
	calls   int
	verdict Verdict
}

func (f *fakeSearcher) Solve(SearchBudget) Verdict {
	f.calls++
	return f.verdict
}
func (f *fakeSearcher) ClearGaussianMatrices()   {}
func (f *fakeSearcher) RebuildOrderHeap()        {}
func (f *fakeSearcher) FoldStats()               {}
func (f *fakeSearcher) LowerLevel0GlueThreshold() {}

func TestSearchDriverRunReturnsUndefWhenInterrupted(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(1)
	fs := &fakeSearcher{verdict: VerdictUndef}
	s.SetSearcher(fs)
	s.Interrupt()

	d := NewSearchDriver(s)
	assert.Equal(t, VerdictUndef, d.Run())
	assert.Equal(t, 0, fs.calls, "an interrupt before the first iteration must skip search entirely")
}

func TestSearchDriverRunStopsAtMaxConflicts(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(1)
	s.cfg.MaxConfl = 0
	s.Stats.NbConflicts = 0
	fs := &fakeSearcher{verdict: VerdictUndef}
	s.SetSearcher(fs)

	d := NewSearchDriver(s)
	assert.Equal(t, VerdictUndef, d.Run())
	assert.Equal(t, 0, fs.calls, "a zero conflict budget must stop before searching")
}

func TestSearchDriverRunPropagatesSatVerdict(t *testing.T) {
	s := NewSolver(DefaultConfig())
	s.NewVars(1)
	fs := &fakeSearcher{verdict: VerdictSat}
	s.SetSearcher(fs)

	d := NewSearchDriver(s)
	assert.Equal(t, VerdictSat, d.Run())
	assert.Equal(t, 1, fs.calls)
}

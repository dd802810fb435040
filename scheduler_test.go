package cdcl_test

import (
	"testing"

	cdcl "github.com/crillab/cdclsat"
	"github.com/crillab/cdclsat/internal/wiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInprocessSchedulerRunsFullDefaultSchedule(t *testing.T) {
	s := wiring.New(cdcl.DefaultConfig(), nil, nil)
	s.NewVars(3)
	ok, err := s.AddClause([]int32{1, 2}, false)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.AddClause([]int32{-2, 3}, false)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.SimplifyProblemOutside()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInprocessSchedulerUnrecognizedTokenIsFatal(t *testing.T) {
	cfg := cdcl.DefaultConfig()
	cfg.SimplifySchedStartup = "not-a-real-token"
	s := wiring.New(cfg, nil, nil)
	s.NewVars(1)

	sch := cdcl.NewInprocessScheduler(s)
	assert.False(t, sch.Run(cfg.SimplifySchedStartup))
}

func TestInprocessSchedulerFindCompsRunsDiscoveryOnly(t *testing.T) {
	s := wiring.New(cdcl.DefaultConfig(), nil, nil)
	s.NewVars(4)
	ok, err := s.AddClause([]int32{1, 2}, false)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.AddClause([]int32{3, 4}, false)
	require.NoError(t, err)
	require.True(t, ok)

	sch := cdcl.NewInprocessScheduler(s)
	assert.True(t, sch.Run("find-comps"))
	// Discovery alone must not detach or solve anything: every variable
	// added above is still directly reachable through AddClause.
	ok, err = s.AddClause([]int32{-1, -3}, false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInprocessSchedulerStopsOnRefutation(t *testing.T) {
	s := wiring.New(cdcl.DefaultConfig(), nil, nil)
	s.NewVars(1)
	ok, err := s.AddClause([]int32{1}, false)
	require.NoError(t, err)
	require.True(t, ok)
	ok, _ = s.AddClause([]int32{-1}, false)
	assert.False(t, ok)

	sch := cdcl.NewInprocessScheduler(s)
	assert.False(t, sch.Run("probe,occ-bve"))
}

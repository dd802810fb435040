package dimacs

import (
	"bytes"
	"strings"
	"testing"

	cdcl "github.com/crillab/cdclsat"
	"github.com/crillab/cdclsat/internal/wiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrdinaryClauses(t *testing.T) {
	src := "c a comment\np cnf 3 2\n1 -2 0\n2 3 0\n"
	cnf, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, cnf.NbVars)
	require.Len(t, cnf.Clauses, 2)
	assert.Equal(t, []int32{1, -2}, cnf.Clauses[0])
	assert.Equal(t, []int32{2, 3}, cnf.Clauses[1])
	assert.Empty(t, cnf.Xors)
}

func TestParseXorLine(t *testing.T) {
	src := "p cnf 2 1\nx1 2 0\n"
	cnf, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cnf.Xors, 1)
	assert.Equal(t, []int32{1, 2}, cnf.Xors[0])
}

func TestParseRejectsLiteralExceedingDeclaredVars(t *testing.T) {
	src := "p cnf 1 1\n1 2 0\n"
	_, err := Parse(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParseRejectsUnfinishedClauseAtEOF(t *testing.T) {
	src := "p cnf 2 1\n1 2"
	_, err := Parse(strings.NewReader(src))
	assert.Error(t, err)
}

func TestLoadPopulatesSolver(t *testing.T) {
	cnf := &CNF{NbVars: 2, Clauses: [][]int32{{1, 2}, {-1, -2}}}
	s := wiring.New(cdcl.DefaultConfig(), nil, nil)
	ok, err := Load(cnf, s)
	require.NoError(t, err)
	require.True(t, ok)

	verdict, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, cdcl.VerdictSat, verdict)
}

func TestLoadDetectsUnsatFromContradictoryUnits(t *testing.T) {
	cnf := &CNF{NbVars: 1, Clauses: [][]int32{{1}, {-1}}}
	s := wiring.New(cdcl.DefaultConfig(), nil, nil)
	ok, err := Load(cnf, s)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteSolutionSat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSolution(&buf, cdcl.VerdictSat, []cdcl.TriVal{cdcl.True, cdcl.False})
	require.NoError(t, err)
	assert.Equal(t, "s SATISFIABLE\nv 1 -2 0\n", buf.String())
}

func TestWriteSolutionUnsat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, cdcl.VerdictUnsat, nil))
	assert.Equal(t, "s UNSATISFIABLE\n", buf.String())
}

func TestParseSolutionRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSolution(&buf, cdcl.VerdictSat, []cdcl.TriVal{cdcl.True, cdcl.False, cdcl.True}))

	sol, err := ParseSolution(&buf)
	require.NoError(t, err)
	assert.Equal(t, cdcl.VerdictSat, sol.Verdict)
	require.Len(t, sol.Model, 3)
	assert.Equal(t, cdcl.True, sol.Model[0])
	assert.Equal(t, cdcl.False, sol.Model[1])
	assert.Equal(t, cdcl.True, sol.Model[2])
}

func TestParseSolutionUnsat(t *testing.T) {
	sol, err := ParseSolution(strings.NewReader("s UNSATISFIABLE\n"))
	require.NoError(t, err)
	assert.Equal(t, cdcl.VerdictUnsat, sol.Verdict)
	assert.Empty(t, sol.Model)
}

func TestParseSolutionRejectsMalformedLine(t *testing.T) {
	_, err := ParseSolution(strings.NewReader("garbage line\n"))
	assert.Error(t, err)
}

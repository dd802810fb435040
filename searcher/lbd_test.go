package searcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlueTrendDoesNotRestartBeforeWindowFills(t *testing.T) {
	g := &glueTrend{}
	for i := 0; i < nbMaxRecent-1; i++ {
		g.add(10)
	}
	assert.False(t, g.mustRestart())
}

func TestGlueTrendRestartsWhenRecentGlueRisesSharply(t *testing.T) {
	g := &glueTrend{}
	for i := 0; i < nbMaxRecent; i++ {
		g.add(1)
	}
	for i := 0; i < nbMaxRecent; i++ {
		g.add(10)
	}
	assert.True(t, g.mustRestart())
}

func TestGlueTrendClearResetsWindow(t *testing.T) {
	g := &glueTrend{}
	for i := 0; i < nbMaxRecent; i++ {
		g.add(1)
	}
	g.clear()
	assert.Equal(t, 0, g.nbRecent)
	assert.False(t, g.mustRestart())
}

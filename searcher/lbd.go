package searcher

const (
	nbMaxRecent     = 50
	triggerRestartK = 0.8
)

// glueTrend tracks the recent-vs-lifetime average of learned clauses'
// glue scores. It backs RestartGlue: search restarts once recent glues
// run well above the lifetime average, the MiniSat-2.2/Glucose signal
// that the search is thrashing on a hard region.
type glueTrend struct {
	totalNb    int
	totalSum   int
	nbRecent   int
	recentVals [nbMaxRecent]int
	ptr        int
	recentAvg  float64
}

func (g *glueTrend) mustRestart() bool {
	if g.nbRecent < nbMaxRecent {
		return false
	}
	return g.recentAvg*triggerRestartK > float64(g.totalSum)/float64(g.totalNb)
}

func (g *glueTrend) add(glue int) {
	g.totalNb++
	g.totalSum += glue
	if g.nbRecent < nbMaxRecent {
		g.recentVals[g.nbRecent] = glue
		oldN, newN := float64(g.nbRecent), float64(g.nbRecent+1)
		g.recentAvg = (g.recentAvg*oldN)/newN + float64(glue)/newN
		g.nbRecent++
		return
	}
	old := g.recentVals[g.ptr]
	g.recentVals[g.ptr] = glue
	g.ptr++
	if g.ptr == nbMaxRecent {
		g.ptr = 0
	}
	g.recentAvg = g.recentAvg - float64(old)/nbMaxRecent + float64(glue)/nbMaxRecent
}

func (g *glueTrend) clear() {
	g.ptr, g.nbRecent = 0, 0
	g.recentAvg = 0
}

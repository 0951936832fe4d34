// Package discharging drives the discharging argument: it filters graphs
// against the reducible-configuration catalog, accounts the charge flowing
// along rules, and enumerates the cartwheels a counterexample hub could sit
// in.
package discharging

import (
	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/edge-coloring/projective-discharging/pkg/embedding"
)

// ChargeInitial is the charge 10*(6-d) a degree-d vertex starts with.
func ChargeInitial(degree int) int {
	return 10 * (6 - degree)
}

// ContainsConfiguration reports whether conf embeds in host. Ring vertices of
// a configuration that kept its ring are excluded from the degree check.
func ContainsConfiguration(host *datastructure.NearTriangulation, conf *catalog.Configuration) bool {
	var ringVertices map[int]bool
	if conf.HasCutVertex() {
		ringVertices = make(map[int]bool, conf.RingSize())
		for v := 0; v < conf.RingSize(); v++ {
			ringVertices[v] = true
		}
	}
	confEdgeID := conf.InsideEdgeID()
	for hostEdgeID := range host.Edges() {
		if embedding.NumEmbeddings(host, conf.NearTriangulation(), hostEdgeID, confEdgeID, ringVertices) > 0 {
			return true
		}
	}
	return false
}

// ContainsAnyConfiguration reports whether any catalog configuration embeds
// in g.
func ContainsAnyConfiguration(g embedding.Graph, confs []*catalog.Configuration) bool {
	for _, conf := range confs {
		if ContainsConfiguration(g.NearTriangulation(), conf) {
			return true
		}
	}
	return false
}

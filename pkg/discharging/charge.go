package discharging

import (
	"fmt"

	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/embedding"
)

// isSymmetric reports whether the two results of a pin are mirror images
// occupying the same host vertices. The two verdicts then coincide, so one
// result can be dropped without changing the bounds.
func isSymmetric(results []embedding.Result) bool {
	if len(results) != 2 || results[0].Contain == embedding.ContainNo || results[1].Contain == embedding.ContainNo {
		return false
	}
	for v := range results[0].Occupied {
		if (results[0].Occupied[v] != -1) != (results[1].Occupied[v] != -1) {
			return false
		}
	}
	if results[0].Contain != results[1].Contain {
		panic(fmt.Sprintf("mirror results disagree: %s vs %s", results[0].Contain, results[1].Contain))
	}
	return true
}

// AmountChargeToSend bounds the charge rule moves from wheel vertex from to
// wheel vertex to: the lower bound counts embeddings that fire for certain,
// the upper bound also counts the still-possible ones. related[v] is true
// when some Yes embedding occupies v; Possible embeddings mark no vertices.
func AmountChargeToSend(wheel embedding.Graph, from, to int, rule *catalog.Rule) (lower, upper int, related []bool) {
	nt := wheel.NearTriangulation()
	edgeID, ok := nt.EdgeID(from, to)
	if !ok {
		panic(fmt.Sprintf("no edge between %d and %d", from, to))
	}
	results := embedding.Match(nt, rule.NearTriangulation(), edgeID, rule.SendEdgeID(), nil, true)
	related = make([]bool, nt.VertexSize())
	if isSymmetric(results) {
		results = results[:1]
	}
	for _, res := range results {
		switch res.Contain {
		case embedding.ContainYes:
			lower++
			upper++
			for v := range related {
				related[v] = related[v] || res.Occupied[v] != -1
			}
		case embedding.ContainPossible:
			upper++
		}
	}
	return lower * rule.Amount(), upper * rule.Amount(), related
}

package discharging

import (
	"fmt"

	"github.com/edge-coloring/projective-discharging/pkg"
	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/edge-coloring/projective-discharging/pkg/embedding"
	"github.com/edge-coloring/projective-discharging/pkg/util"
	"go.uber.org/zap"
)

// WheelLike is a wheel or cartwheel as the enumerator sees it: a
// near-triangulation with a hub whose rim degrees can still be refined.
type WheelLike[W any] interface {
	embedding.Graph
	NumNeighbor() int
	SetDegree(v int, degree *datastructure.Degree)
	Clone() W
	String() string
}

// CandidateDegrees returns the degrees a branching step chooses from:
// 5, 6, ..., maxDegree-1 and the open tail maxDegree+.
func CandidateDegrees(maxDegree int) []datastructure.Degree {
	var degrees []datastructure.Degree
	for deg := pkg.MIN_DEGREE; deg < maxDegree; deg++ {
		degrees = append(degrees, datastructure.NewFixedDegree(deg))
	}
	return append(degrees, datastructure.NewDegree(maxDegree, pkg.MAX_DEGREE))
}

// SearchNoConfGraphs assigns every vertex from index on a degree drawn from
// possibleDegrees and returns the fully assigned graphs containing no catalog
// configuration. Containment is re-checked every fifth vertex so doomed
// prefixes die early.
func SearchNoConfGraphs[W WheelLike[W]](wheelgraph W, index int, possibleDegrees []datastructure.Degree,
	confs []*catalog.Configuration) []W {
	if ContainsAnyConfiguration(wheelgraph, confs) {
		return nil
	}
	base := wheelgraph.Clone()
	vertexSize := base.NearTriangulation().VertexSize()
	var graphs []W

	var setDegreeRecursive func(v int)
	setDegreeRecursive = func(v int) {
		if v%5 == 0 && ContainsAnyConfiguration(base, confs) {
			return
		}
		if v == vertexSize {
			if !ContainsAnyConfiguration(base, confs) {
				graphs = append(graphs, base.Clone())
			}
			return
		}
		for i := range possibleDegrees {
			base.SetDegree(v, &possibleDegrees[i])
			setDegreeRecursive(v + 1)
		}
		base.SetDegree(v, nil)
	}
	setDegreeRecursive(index)
	return graphs
}

// sendCaseContext owns the accumulators of one DecideDegreeBySendCases run.
type sendCaseContext[W WheelLike[W]] struct {
	rules       []*catalog.Rule
	confs       []*catalog.Configuration
	maxDegree   int
	threshold   int
	chargeBound bool
	hubDegree   int
	// edgeIDs lists the hub-incident directed edges in visiting order: the
	// hubDegree receiving edges neighbor->hub, then the hubDegree sending
	// edges hub->neighbor.
	edgeIDs        []int
	edges          []datastructure.Edge
	decidedCharges []int
	res            []W
	log            *zap.SugaredLogger
}

// DecideDegreeBySendCases refines wheelgraph by every way the rules can move
// charge over the hub-incident edges, and returns the refined graphs that
// contain no catalog configuration and whose optimistic net charge received by
// the hub (receive minus send, initial charge not included) still exceeds
// threshold. Candidate degrees are 5, 6, ..., maxDegree+.
func DecideDegreeBySendCases[W WheelLike[W]](wheelgraph W, rules []*catalog.Rule, confs []*catalog.Configuration,
	maxDegree, threshold int, chargeBound bool, logger *zap.Logger) []W {
	const hub = 0
	hubDegree := wheelgraph.NumNeighbor()
	nt := wheelgraph.NearTriangulation()

	ctx := &sendCaseContext[W]{
		rules:       rules,
		confs:       confs,
		maxDegree:   maxDegree,
		threshold:   threshold,
		chargeBound: chargeBound,
		hubDegree:   hubDegree,
		edges:       nt.Edges(),
		log:         logger.Sugar(),
	}
	for v := 1; v <= hubDegree; v++ {
		id, ok := nt.EdgeID(v, hub)
		if !ok {
			panic(fmt.Sprintf("no edge between rim vertex %d and the hub", v))
		}
		ctx.edgeIDs = append(ctx.edgeIDs, id)
	}
	for v := 1; v <= hubDegree; v++ {
		id, ok := nt.EdgeID(hub, v)
		if !ok {
			panic(fmt.Sprintf("no edge between the hub and rim vertex %d", v))
		}
		ctx.edgeIDs = append(ctx.edgeIDs, id)
	}

	ctx.decideDegree(wheelgraph, 0)
	return ctx.res
}

// decideDegreeByRules branches wheel along edge edgeIDs[idx]: for every rule
// embedding that is not ruled out, every occupied vertex of still-undecided
// degree takes each piece of the rule's degree range in turn. The charge
// associated with a candidate is the amount the branching rule would move
// over the edge; the unbranched wheel stays as the "no rule fires" candidate
// with charge 0.
func (c *sendCaseContext[W]) decideDegreeByRules(wheel W, idx int) ([]W, []int) {
	wheelDegrees := wheel.NearTriangulation().Degrees()
	nextWheels := []W{wheel}
	nextCharges := []int{0}
	edgeID := c.edgeIDs[idx]
	for _, rule := range c.rules {
		results := embedding.Match(wheel.NearTriangulation(), rule.NearTriangulation(), edgeID, rule.SendEdgeID(), nil, true)
		ruleDegrees := rule.NearTriangulation().Degrees()
		for _, result := range results {
			if result.Contain == embedding.ContainNo {
				continue
			}
			wheels := []W{wheel.Clone()}
			for v := 0; v < wheel.NearTriangulation().VertexSize(); v++ {
				if result.Occupied[v] == -1 || wheelDegrees[v] != nil {
					continue
				}
				degrees := datastructure.DivideDegree(*ruleDegrees[result.Occupied[v]], c.maxDegree)
				for _, w := range wheels {
					w.SetDegree(v, &degrees[0])
				}
				wheelSize := len(wheels)
				for di := 1; di < len(degrees); di++ {
					for wi := 0; wi < wheelSize; wi++ {
						w := wheels[wi].Clone()
						w.SetDegree(v, &degrees[di])
						wheels = append(wheels, w)
					}
				}
			}
			nextWheels = append(nextWheels, wheels...)
			for range wheels {
				nextCharges = append(nextCharges, rule.Amount())
			}
		}
	}
	return nextWheels, nextCharges
}

// prune drops candidates that already contain a configuration, candidates
// whose optimistic net charge received by the hub (receive minus send)
// cannot exceed the threshold, and
// candidates committing less charge on a receiving edge than some rule is
// already forced to send (a sibling branch with the larger committed amount
// covers those).
func (c *sendCaseContext[W]) prune(nextWheels []W, nextCharges []int, idx int) ([]W, []int) {
	var prunedWheels []W
	var prunedCharges []int
	for i, w := range nextWheels {
		if c.chargeBound {
			sendLower, receiveUpper := 0, 0
			expectedCharge := make([]int, len(c.edgeIDs))
			stopSearch := false
			for ei := range c.edgeIDs {
				maxSendL, maxSendU := 0, 0
				s := c.edges[c.edgeIDs[ei]].From
				t := c.edges[c.edgeIDs[ei]].To
				for _, rule := range c.rules {
					sendL, sendU, _ := AmountChargeToSend(w, s, t, rule)
					// A doubly-applicable rule still counts once; the double
					// application is covered by taking the max over rules.
					if sendL > 0 {
						maxSendL = util.Max(maxSendL, rule.Amount())
					}
					if sendU > 0 {
						maxSendU = util.Max(maxSendU, rule.Amount())
					}
				}
				if ei < c.hubDegree {
					// neighbor -> hub
					switch {
					case ei == idx:
						if maxSendL > nextCharges[i] {
							stopSearch = true
						}
						expectedCharge[ei] = nextCharges[i]
					case ei < idx:
						if maxSendL > c.decidedCharges[ei] {
							stopSearch = true
						}
						expectedCharge[ei] = c.decidedCharges[ei]
					default:
						expectedCharge[ei] = maxSendU
					}
					if stopSearch {
						break
					}
					receiveUpper += expectedCharge[ei]
				} else {
					// hub -> neighbor: no sibling-branch pruning here.
					expectedCharge[ei] = maxSendL
					sendLower += expectedCharge[ei]
				}
			}
			if stopSearch {
				continue
			}
			if receiveUpper-sendLower <= c.threshold {
				continue
			}
		}
		if ContainsAnyConfiguration(w, c.confs) {
			continue
		}
		prunedWheels = append(prunedWheels, w)
		prunedCharges = append(prunedCharges, nextCharges[i])
	}
	return prunedWheels, prunedCharges
}

func (c *sendCaseContext[W]) decideDegree(wheel W, idx int) {
	if idx == len(c.edgeIDs) {
		c.res = append(c.res, wheel)
		return
	}
	nextWheels, nextCharges := c.decideDegreeByRules(wheel, idx)
	uniqueWheels, uniqueCharges := embedding.UniqueWithCharge(nextWheels, nextCharges)
	prunedWheels, prunedCharges := c.prune(uniqueWheels, uniqueCharges, idx)
	c.log.Debugf("edge %d/%d: %d candidates", idx, len(c.edgeIDs), len(prunedWheels))

	for i, w := range prunedWheels {
		if idx < c.hubDegree {
			c.decidedCharges = append(c.decidedCharges, prunedCharges[i])
		}
		c.decideDegree(w, idx+1)
		if idx < c.hubDegree {
			c.decidedCharges = c.decidedCharges[:len(c.decidedCharges)-1]
		}
	}
}

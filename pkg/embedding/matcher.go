// Package embedding implements the oriented subgraph containment test on
// near-triangulations: pin one directed edge of a pattern onto one directed
// edge of a host, then extend the correspondence deterministically through
// triangle diagonals.
package embedding

import (
	"fmt"

	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
)

// Contain is the three-valued outcome of a pin attempt.
type Contain int

const (
	// ContainYes: the pattern embeds and every degree fits.
	ContainYes Contain = iota
	// ContainPossible: no degree conflict yet, but undecided host degrees or
	// unembedded pattern vertices remain; later degree choices may still
	// produce an embedding.
	ContainPossible
	// ContainNo: some degree does not fit, or (without detectPossible) the
	// embedding is incomplete.
	ContainNo
)

func (c Contain) String() string {
	switch c {
	case ContainYes:
		return "Yes"
	case ContainPossible:
		return "Possible"
	case ContainNo:
		return "No"
	}
	return fmt.Sprintf("Contain(%d)", int(c))
}

// Result is one correspondence produced by Match. Occupied[w] is the pattern
// vertex mapped onto host vertex w, or -1. It is nil when Contain is
// ContainNo.
type Result struct {
	Contain  Contain
	Occupied []int
}

// matchContext owns the mutable state of one pin attempt.
type matchContext struct {
	host           *datastructure.NearTriangulation
	pattern        *datastructure.NearTriangulation
	except         map[int]bool
	detectPossible bool
	// occupied[w] is the pattern vertex corresponding to host vertex w,
	// located[s] the host vertex corresponding to pattern vertex s; -1 when
	// unassigned. Vertices in except never get written.
	occupied []int
	located  []int
	results  []Result
}

// Match pins the directed host edge hostEdgeID onto the directed pattern edge
// patternEdgeID and extends the correspondence through triangle diagonals.
// Pattern vertices in except are not required to embed and their degrees are
// not checked. Counting mirror images of the pinned edge, there are 0 to 2
// correspondences; one Result per attempted correspondence is returned.
//
// With detectPossible, a correspondence whose decided degrees all fit but
// which leaves undecided host degrees (or unembedded pattern vertices) is
// reported as ContainPossible instead of ContainNo.
func Match(host, pattern *datastructure.NearTriangulation, hostEdgeID, patternEdgeID int,
	except map[int]bool, detectPossible bool) []Result {
	mc := &matchContext{
		host:           host,
		pattern:        pattern,
		except:         except,
		detectPossible: detectPossible,
		occupied:       newUnassigned(host.VertexSize()),
		located:        newUnassigned(pattern.VertexSize()),
	}

	edgeHost := host.Edges()[hostEdgeID]
	edgePattern := pattern.Edges()[patternEdgeID]
	// A degree clash on the pinned edge itself means no attempt at all.
	if !mc.matchDegree(edgePattern.From, edgeHost.From, detectPossible) ||
		!mc.matchDegree(edgePattern.To, edgeHost.To, detectPossible) {
		return nil
	}
	mc.correspond(edgePattern.From, edgeHost.From)
	mc.correspond(edgePattern.To, edgeHost.To)

	diagHost := host.DiagonalVertices(edgeHost)
	diagPattern := pattern.DiagonalVertices(edgePattern)

	switch {
	case len(diagPattern) == 1 && len(diagHost) == 2:
		// The single pattern diagonal can sit on either host diagonal; each
		// choice fixes two more edges.
		vs := diagPattern[0]
		saved := mc.save()
		for _, vw := range diagHost {
			if !mc.matchDegree(vs, vw, detectPossible) {
				continue
			}
			mc.correspond(vs, vw)
			visited := make(map[int64]bool)
			matchDeg := mc.setEdgeRecursive(datastructure.Edge{From: edgeHost.From, To: vw}, datastructure.Edge{From: edgePattern.From, To: vs}, visited)
			if matchDeg {
				matchDeg = mc.setEdgeRecursive(datastructure.Edge{From: edgeHost.To, To: vw}, datastructure.Edge{From: edgePattern.To, To: vs}, visited)
			}
			mc.updateResults(matchDeg)
			mc.restore(saved)
		}
	case len(diagPattern) == 2 && len(diagHost) == 1:
		// Symmetric to the previous case.
		vw := diagHost[0]
		saved := mc.save()
		for _, vs := range diagPattern {
			if !mc.matchDegree(vs, vw, detectPossible) {
				continue
			}
			mc.correspond(vs, vw)
			visited := make(map[int64]bool)
			matchDeg := mc.setEdgeRecursive(datastructure.Edge{From: edgeHost.From, To: vw}, datastructure.Edge{From: edgePattern.From, To: vs}, visited)
			if matchDeg {
				matchDeg = mc.setEdgeRecursive(datastructure.Edge{From: edgeHost.To, To: vw}, datastructure.Edge{From: edgePattern.To, To: vs}, visited)
			}
			mc.updateResults(matchDeg)
			mc.restore(saved)
		}
	case len(diagPattern) == 2 && len(diagHost) == 2:
		// Two pairings; picking one side fixes the other, and each pairing
		// fixes four more edges.
		saved := mc.save()
		for i := 0; i < 2; i++ {
			vs0, vs1 := diagPattern[i], diagPattern[1-i]
			vw0, vw1 := diagHost[0], diagHost[1]
			if !mc.matchDegree(vs0, vw0, detectPossible) || !mc.matchDegree(vs1, vw1, detectPossible) {
				continue
			}
			mc.correspond(vs0, vw0)
			mc.correspond(vs1, vw1)
			visited := make(map[int64]bool)
			matchDeg := true
			for _, step := range []struct {
				edgeW datastructure.Edge
				edgeS datastructure.Edge
			}{
				{datastructure.Edge{From: edgeHost.From, To: vw0}, datastructure.Edge{From: edgePattern.From, To: vs0}},
				{datastructure.Edge{From: edgeHost.To, To: vw0}, datastructure.Edge{From: edgePattern.To, To: vs0}},
				{datastructure.Edge{From: edgeHost.From, To: vw1}, datastructure.Edge{From: edgePattern.From, To: vs1}},
				{datastructure.Edge{From: edgeHost.To, To: vw1}, datastructure.Edge{From: edgePattern.To, To: vs1}},
			} {
				if !matchDeg {
					break
				}
				matchDeg = mc.setEdgeRecursive(step.edgeW, step.edgeS, visited)
			}
			mc.updateResults(matchDeg)
			mc.restore(saved)
		}
	default:
		// (0, 0), (0, 1), (0, 2), (1, 0), (1, 1), (2, 0): fixing the pinned
		// edge determines the whole correspondence.
		visited := make(map[int64]bool)
		mc.updateResults(mc.setEdgeRecursive(edgeHost, edgePattern, visited))
	}
	return mc.results
}

// NumEmbeddings counts the full embeddings (ContainYes under strict degree
// checking) obtained by pinning the given edges.
func NumEmbeddings(host, pattern *datastructure.NearTriangulation, hostEdgeID, patternEdgeID int,
	except map[int]bool) int {
	n := 0
	for _, res := range Match(host, pattern, hostEdgeID, patternEdgeID, except, false) {
		if res.Contain == ContainYes {
			n++
		}
	}
	return n
}

// matchDegree reports whether pattern vertex vs may sit on host vertex vw as
// far as degrees are concerned. Vertices in except always pass. An undecided
// pattern degree always passes; an undecided host degree passes only under
// detectPossible.
func (mc *matchContext) matchDegree(vs, vw int, detectPossible bool) bool {
	if mc.except[vs] {
		return true
	}
	degS := mc.pattern.Degrees()[vs]
	degW := mc.host.Degrees()[vw]
	if degS == nil {
		return true
	}
	if degW == nil {
		return detectPossible
	}
	return degS.Include(*degW)
}

func (mc *matchContext) correspond(vs, vw int) {
	mc.occupied[vw] = vs
	mc.located[vs] = vw
}

// setEdgeRecursive aligns the diagonals of the already-aligned edge pair
// (edgeW, edgeS) and recurses over the newly fixed edges. It returns false as
// soon as some degree stops fitting. Visited host edges terminate the
// recursion.
func (mc *matchContext) setEdgeRecursive(edgeW, edgeS datastructure.Edge, visitedW map[int64]bool) bool {
	key := int64(edgeW.From)<<32 | int64(edgeW.To)
	if visitedW[key] {
		return true
	}
	visitedW[key] = true

	diagW := mc.host.DiagonalVertices(edgeW)
	diagS := mc.pattern.DiagonalVertices(edgeS)
	matchDeg := true
	newMatchCase := 0
	for _, vs := range diagS {
		vsMatchCase := 0
		for _, vw := range diagW {
			// Skip pairs where either side is already matched elsewhere.
			if !(mc.located[vs] == -1 && mc.occupied[vw] == -1) &&
				!(mc.located[vs] == vw && mc.occupied[vw] == vs) {
				continue
			}
			if mc.located[vs] == -1 && mc.occupied[vw] == -1 {
				newMatchCase++
			}
			vsMatchCase++
			if !mc.matchDegree(vs, vw, mc.detectPossible) {
				matchDeg = false
				continue
			}
			mc.correspond(vs, vw)
			if matchDeg {
				matchDeg = mc.setEdgeRecursive(datastructure.Edge{From: edgeW.From, To: vw}, datastructure.Edge{From: edgeS.From, To: vs}, visitedW)
			}
			if matchDeg {
				matchDeg = mc.setEdgeRecursive(datastructure.Edge{From: edgeW.To, To: vw}, datastructure.Edge{From: edgeS.To, To: vs}, visitedW)
			}
		}
		// One diagonal of the pair is always fixed by an earlier step, so a
		// pattern diagonal can pair with at most one host diagonal here
		// (minimal counterexamples have no 4-cut).
		if vsMatchCase > 1 {
			panic(fmt.Sprintf("pattern diagonal %d pairs with %d host diagonals", vs, vsMatchCase))
		}
	}
	if newMatchCase > 1 {
		panic(fmt.Sprintf("edge (%d, %d) fixes %d new diagonal pairs", edgeW.From, edgeW.To, newMatchCase))
	}
	return matchDeg
}

// updateResults appends the verdict of the current correspondence.
func (mc *matchContext) updateResults(matchDeg bool) {
	if !matchDeg {
		mc.results = append(mc.results, Result{Contain: ContainNo})
		return
	}
	isPossible := false
	for v := 0; v < mc.pattern.VertexSize(); v++ {
		if mc.except[v] {
			continue
		}
		// Possible when v has no host counterpart (the pattern sticks out of
		// the host) or its counterpart's degree is not decided tightly yet.
		if mc.located[v] == -1 || !mc.matchDegree(v, mc.located[v], false) {
			isPossible = true
			break
		}
	}
	switch {
	case !isPossible:
		mc.results = append(mc.results, Result{Contain: ContainYes, Occupied: append([]int(nil), mc.occupied...)})
	case mc.detectPossible:
		mc.results = append(mc.results, Result{Contain: ContainPossible, Occupied: append([]int(nil), mc.occupied...)})
	default:
		mc.results = append(mc.results, Result{Contain: ContainNo})
	}
}

// matchState snapshots the correspondence so diagonal-pairing alternatives
// can be tried independently.
type matchState struct {
	occupied []int
	located  []int
}

func (mc *matchContext) save() matchState {
	return matchState{
		occupied: append([]int(nil), mc.occupied...),
		located:  append([]int(nil), mc.located...),
	}
}

func (mc *matchContext) restore(s matchState) {
	copy(mc.occupied, s.occupied)
	copy(mc.located, s.located)
}

func newUnassigned(n int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = -1
	}
	return a
}

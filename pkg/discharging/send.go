package discharging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/edge-coloring/projective-discharging/pkg/embedding"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SendEnumerator enumerates the neighborhood cases in which a vertex of one
// degree sends charge to a vertex of another, and can emit each case as a new
// rule file.
type SendEnumerator struct {
	confs []*catalog.Configuration
	rules []*catalog.Rule
	// With bidirectional set, cases where charge moves both ways across the
	// send edge are enumerated; otherwise only sender-to-receiver cases.
	maxDegree     int
	bidirectional bool
	outDir        string
	log           *zap.Logger
}

func NewSendEnumerator(confs []*catalog.Configuration, rules []*catalog.Rule, maxDegree int,
	bidirectional bool, outDir string, logger *zap.Logger) *SendEnumerator {
	return &SendEnumerator{
		confs:         confs,
		rules:         rules,
		maxDegree:     maxDegree,
		bidirectional: bidirectional,
		outDir:        outDir,
		log:           logger,
	}
}

// refineDegreesByRules turns Possible rule embeddings along the pinned edges
// into Yes ones by deciding the degrees they depend on. Embeddings that
// decide nothing (they would need vertices the cartwheel does not have yet)
// do not spawn candidates.
func (s *SendEnumerator) refineDegreesByRules(wheel *datastructure.CartWheel, edgeIDs []int) []*datastructure.CartWheel {
	wheelDegrees := wheel.NearTriangulation().Degrees()
	var nextWheels []*datastructure.CartWheel
	for _, rule := range s.rules {
		for _, edgeID := range edgeIDs {
			results := embedding.Match(wheel.NearTriangulation(), rule.NearTriangulation(), edgeID, rule.SendEdgeID(), nil, true)
			ruleDegrees := rule.NearTriangulation().Degrees()
			for _, result := range results {
				if result.Contain != embedding.ContainPossible {
					continue
				}
				decidedAny := false
				wheels := []*datastructure.CartWheel{wheel.Clone()}
				for v := 0; v < wheel.NearTriangulation().VertexSize(); v++ {
					if result.Occupied[v] == -1 || wheelDegrees[v] != nil {
						continue
					}
					decidedAny = true
					degrees := datastructure.DivideDegree(*ruleDegrees[result.Occupied[v]], s.maxDegree)
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
				if !decidedAny {
					continue
				}
				nextWheels = append(nextWheels, wheels...)
			}
		}
	}
	return nextWheels
}

// enumerateDegrees collects cartwheel, every refinement of it the rules force
// along the send edge (both orientations when bidirectional), and so on
// recursively, skipping refinements that contain a configuration.
func (s *SendEnumerator) enumerateDegrees(cartwheel *datastructure.CartWheel, sendVertex, receiveVertex int) []*datastructure.CartWheel {
	nt := cartwheel.NearTriangulation()
	edgeID, ok := nt.EdgeID(sendVertex, receiveVertex)
	if !ok {
		panic(fmt.Sprintf("no edge between %d and %d", sendVertex, receiveVertex))
	}
	edgeIDs := []int{edgeID}
	if s.bidirectional {
		revEdgeID, ok := nt.EdgeID(receiveVertex, sendVertex)
		if !ok {
			panic(fmt.Sprintf("no edge between %d and %d", receiveVertex, sendVertex))
		}
		edgeIDs = append(edgeIDs, revEdgeID)
	}

	var res []*datastructure.CartWheel
	seen := make(map[string]bool)
	var decideDegree func(wheel *datastructure.CartWheel)
	decideDegree = func(wheel *datastructure.CartWheel) {
		key := wheel.String()
		if seen[key] {
			return
		}
		seen[key] = true
		res = append(res, wheel)

		nextWheels := s.refineDegreesByRules(wheel, edgeIDs)
		nextWheels = embedding.MakeUniquePinned(nextWheels, edgeIDs[0])
		var surviving []*datastructure.CartWheel
		for _, w := range nextWheels {
			if !ContainsAnyConfiguration(w, s.confs) {
				surviving = append(surviving, w)
			}
		}
		s.log.Sugar().Debugf("next_wheel.size : %d", len(surviving))
		for _, next := range surviving {
			decideDegree(next)
		}
	}
	decideDegree(cartwheel)
	return res
}

// relatedVertices sums the charge certainly flowing from sendVertex to
// receiveVertex (and back, when bidirectional) and flags every vertex some
// rule embedding touches.
func (s *SendEnumerator) relatedVertices(cw *datastructure.CartWheel, sendVertex, receiveVertex int) (sendCharge, receiveCharge int, isRelated []bool) {
	isRelated = make([]bool, cw.NearTriangulation().VertexSize())
	for _, rule := range s.rules {
		sendL, _, sendRelated := AmountChargeToSend(cw, sendVertex, receiveVertex, rule)
		sendCharge += sendL
		for v := range isRelated {
			isRelated[v] = isRelated[v] || sendRelated[v]
		}
		if s.bidirectional {
			receiveL, _, receiveRelated := AmountChargeToSend(cw, receiveVertex, sendVertex, rule)
			receiveCharge += receiveL
			for v := range isRelated {
				isRelated[v] = isRelated[v] || receiveRelated[v]
			}
		}
	}
	return sendCharge, receiveCharge, isRelated
}

// projectRelated restricts cw to its rule-related vertices, renumbering them
// densely. The send edge keeps the ids 0 and 1.
func projectRelated(cw *datastructure.CartWheel, sendVertex, receiveVertex int, isRelated []bool) *datastructure.NearTriangulation {
	originalDegrees := cw.NearTriangulation().Degrees()
	vertexSize := cw.NearTriangulation().VertexSize()

	newVid := make([]int, vertexSize)
	for i := range newVid {
		newVid[i] = -1
	}
	count := 0
	var degrees []*datastructure.Degree
	for v := 0; v < vertexSize; v++ {
		if isRelated[v] {
			newVid[v] = count
			count++
			degrees = append(degrees, originalDegrees[v])
		}
	}
	if sendVertex != 0 || newVid[sendVertex] != 0 || receiveVertex != 1 || newVid[receiveVertex] != 1 {
		panic("send edge vertices must keep ids 0 and 1 under projection")
	}

	adj := datastructure.NewAdjacency(count)
	for _, edge := range cw.NearTriangulation().Edges() {
		if newVid[edge.From] != -1 && newVid[edge.To] != -1 {
			adj.AddEdge(newVid[edge.From], newVid[edge.To])
		}
	}
	return datastructure.NewNearTriangulation(adj, degrees)
}

// emit logs one send case and, when an output directory is configured and the
// case is unidirectional, writes it out as a .rule file.
func (s *SendEnumerator) emit(nt *datastructure.NearTriangulation, sendVertex, receiveVertex int,
	sendDegree, receiveDegree datastructure.Degree, sendCharge, receiveCharge int, count *int) error {
	if s.bidirectional {
		if sendCharge > 0 && receiveCharge > 0 {
			s.log.Sugar().Infof("send_charge : %d, receive_charge : %d", sendCharge, receiveCharge)
			s.log.Sugar().Infof("rule (for machine) :\n%s", nt.Debug())
		}
		return nil
	}
	if sendCharge <= 0 {
		return nil
	}
	s.log.Sugar().Infof("charge : %d", sendCharge)
	s.log.Sugar().Infof("rule (for machine) :\n%s", nt.Debug())

	if s.outDir != "" {
		vertexSize := nt.VertexSize()
		adj := nt.Adjacency()
		degrees := nt.Degrees()

		var buf strings.Builder
		fmt.Fprintf(&buf, "from %s to %s amount %d\n", sendDegree, receiveDegree, sendCharge)
		fmt.Fprintf(&buf, "%d %d %d %d\n", vertexSize, sendVertex+1, receiveVertex+1, sendCharge)
		for v := 0; v < vertexSize; v++ {
			fmt.Fprintf(&buf, "%d %s", v+1, degrees[v])
			for _, u := range adj.Neighbors(v) {
				fmt.Fprintf(&buf, " %d", u+1)
			}
			buf.WriteByte('\n')
		}
		filename := filepath.Join(s.outDir, fmt.Sprintf("from%sto%s_%05d.rule", sendDegree, receiveDegree, *count))
		if err := os.WriteFile(filename, []byte(buf.String()), 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", filename)
		}
	}
	*count++
	return nil
}

// Enumerate runs the full send-case enumeration for charge flowing from a
// vertex of sendDegree to an adjacent vertex of receiveDegree, and returns
// how many unidirectional cases were emitted. In bidirectional mode cases are
// only logged and the returned count is 0.
func (s *SendEnumerator) Enumerate(sendDegree, receiveDegree datastructure.Degree) (int, error) {
	if !sendDegree.Fixed() {
		return 0, errors.New("degree of vertex that sends charge must be a fixed value")
	}
	possibleDegrees := CandidateDegrees(s.maxDegree)

	const sendVertex, receiveVertex = 0, 1
	wheel := datastructure.NewWheelFromHubDegree(sendDegree.Lower())
	wheel.SetDegree(receiveVertex, &receiveDegree)
	s.log.Info("calculating wheel which does not contain conf...")
	wheels := SearchNoConfGraphs(wheel, 2, possibleDegrees, s.confs)

	s.log.Info("take only unique wheel")
	edgeID, ok := wheel.NearTriangulation().EdgeID(sendVertex, receiveVertex)
	if !ok {
		panic("wheel is missing its hub-to-first-neighbor edge")
	}
	uniqueWheels := embedding.MakeUniquePinned(wheels, edgeID)

	s.log.Info("deciding degree...")
	var cartwheels []*datastructure.CartWheel
	for _, w := range uniqueWheels {
		fromW := s.enumerateDegrees(datastructure.NewCartWheelFromWheel(w), sendVertex, receiveVertex)
		cartwheels = append(cartwheels, fromW...)
	}

	s.log.Info("extending third neighbor...")
	for _, cartwheel := range cartwheels {
		capUndecidedDegrees(cartwheel, s.maxDegree)
		cartwheel.ExtendThirdNeighbor()
	}

	s.log.Info("deciding degree of third neighbor...")
	var thirdNeighborCartwheels []*datastructure.CartWheel
	for _, cartwheel := range cartwheels {
		fromCW := s.enumerateDegrees(cartwheel, sendVertex, receiveVertex)
		thirdNeighborCartwheels = append(thirdNeighborCartwheels, fromCW...)
	}

	var uniqueCases []*datastructure.NearTriangulation
	var uniqueEdgeIDs []int
	count := 0
	for _, cw := range thirdNeighborCartwheels {
		sendCharge, receiveCharge, isRelated := s.relatedVertices(cw, sendVertex, receiveVertex)
		if sendCharge == 0 && receiveCharge == 0 {
			continue
		}
		projected := projectRelated(cw, sendVertex, receiveVertex, isRelated)

		projectedEdgeID, ok := projected.EdgeID(sendVertex, receiveVertex)
		if !ok {
			panic("projection lost the send edge")
		}
		unique := true
		for i, seenCase := range uniqueCases {
			if embedding.NumEmbeddings(seenCase, projected, uniqueEdgeIDs[i], projectedEdgeID, nil) > 0 &&
				embedding.NumEmbeddings(projected, seenCase, projectedEdgeID, uniqueEdgeIDs[i], nil) > 0 {
				unique = false
				break
			}
		}
		if !unique {
			continue
		}
		uniqueCases = append(uniqueCases, projected)
		uniqueEdgeIDs = append(uniqueEdgeIDs, projectedEdgeID)

		if err := s.emit(projected, sendVertex, receiveVertex, sendDegree, receiveDegree, sendCharge, receiveCharge, &count); err != nil {
			return count, err
		}
	}
	s.log.Sugar().Infof("There are %d case that degree %s sends charge to degree %s",
		count, sendDegree, receiveDegree)
	return count, nil
}

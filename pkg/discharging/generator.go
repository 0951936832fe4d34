package discharging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/edge-coloring/projective-discharging/pkg/util"
	"go.uber.org/zap"
)

// Generator produces the wheel files a verification run starts from.
type Generator struct {
	confs     []*catalog.Configuration
	sendCases []*catalog.Rule
	maxDegree int
	log       *zap.Logger
}

func NewGenerator(confs []*catalog.Configuration, sendCases []*catalog.Rule, maxDegree int, logger *zap.Logger) *Generator {
	return &Generator{confs: confs, sendCases: sendCases, maxDegree: maxDegree, log: logger}
}

// rotatedLess reports whether the rotation of indices starting at shift is
// lexicographically smaller than indices itself.
func rotatedLess(indices []int, shift int) bool {
	n := len(indices)
	for i := 0; i < n; i++ {
		r := indices[(i+shift)%n]
		if r != indices[i] {
			return r < indices[i]
		}
	}
	return false
}

// searchPossibleOverChargedWheels enumerates the wheels of the given hub
// degree, unique up to rotation, that avoid every configuration and whose hub
// could possibly end up overcharged.
func (g *Generator) searchPossibleOverChargedWheels(hubDegree int, possibleDegrees []datastructure.Degree,
	confs []*catalog.Configuration) []*datastructure.Wheel {
	baseWheel := datastructure.NewWheelFromHubDegree(hubDegree)
	var res []*datastructure.Wheel
	tempDegreeIdx := make([]int, hubDegree)
	for i := range tempDegreeIdx {
		tempDegreeIdx[i] = -1
	}

	var decideDegree func(v, lowestDegIdx int)
	decideDegree = func(v, lowestDegIdx int) {
		if v == hubDegree {
			// Keep only the lexicographically smallest rotation of the rim.
			for shift := 1; shift < hubDegree; shift++ {
				if rotatedLess(tempDegreeIdx, shift) {
					return
				}
			}
			for i := 0; i < hubDegree; i++ {
				baseWheel.SetDegree(i+1, &possibleDegrees[tempDegreeIdx[i]])
			}
			if ContainsAnyConfiguration(baseWheel, confs) {
				return
			}
			// Drop wheels that cannot be overcharged even if every send case
			// fires toward the hub.
			recv := 0
			for neighbor := 1; neighbor <= hubDegree; neighbor++ {
				maxRecvU := 0
				for _, sendCase := range g.sendCases {
					_, recvU, _ := AmountChargeToSend(baseWheel, neighbor, 0, sendCase)
					// A doubly-applicable send case still counts once; the
					// max over cases covers the double application.
					if recvU > 0 {
						maxRecvU = util.Max(maxRecvU, sendCase.Amount())
					}
				}
				recv += maxRecvU
			}
			if ChargeInitial(hubDegree)+recv <= 0 {
				return
			}
			res = append(res, baseWheel.Clone())
			return
		}
		for i := lowestDegIdx; i < len(possibleDegrees); i++ {
			tempDegreeIdx[v] = i
			decideDegree(v+1, lowestDegIdx)
			tempDegreeIdx[v] = -1
		}
	}

	for degIdx := range possibleDegrees {
		tempDegreeIdx[0] = degIdx
		decideDegree(1, degIdx)
		tempDegreeIdx[0] = -1
	}
	return res
}

// Generate writes the wheel files for the given hub degree into outputDir,
// named <hubDegree>_<n>.wheel, and returns how many were written. Only
// configurations of diameter at most 2 can embed at the wheel stage, so the
// filter runs against that subset.
func (g *Generator) Generate(hubDegree int, outputDir string) (int, error) {
	possibleDegrees := CandidateDegrees(g.maxDegree)

	var smallConfs []*catalog.Configuration
	for _, conf := range g.confs {
		if conf.Diameter() <= 2 {
			smallConfs = append(smallConfs, conf)
		}
	}

	g.log.Info("calculating wheel which does not contain conf...")
	wheels := g.searchPossibleOverChargedWheels(hubDegree, possibleDegrees, smallConfs)

	g.log.Info("output wheel file into wheel directory")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, err
	}
	for count, wheel := range wheels {
		filename := filepath.Join(outputDir, fmt.Sprintf("%d_%d.wheel", hubDegree, count))
		if err := wheel.WriteWheelFile(filename); err != nil {
			return count, err
		}
	}
	return len(wheels), nil
}

package discharging

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/edge-coloring/projective-discharging/pkg"
	"github.com/edge-coloring/projective-discharging/pkg/catalog"
	"github.com/edge-coloring/projective-discharging/pkg/concurrent"
	"github.com/edge-coloring/projective-discharging/pkg/datastructure"
	"github.com/edge-coloring/projective-discharging/pkg/embedding"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// IsOvercharged reports whether the hub of cw ends with positive charge after
// every rule fired, together with the per-vertex flags marking rule-related
// vertices. The cartwheel must be refined far enough that every exchange with
// the hub is tight (lower bound equal to upper bound).
func IsOvercharged(cw *datastructure.CartWheel, rules []*catalog.Rule, logger *zap.Logger) (bool, []bool) {
	const hub = 0
	hubDegree := cw.NumNeighbor()
	vertexSize := cw.NearTriangulation().VertexSize()
	chargeReceive, chargeSend := 0, 0
	isRuleRelated := make([]bool, vertexSize)
	for hubNeighbor := 1; hubNeighbor <= hubDegree; hubNeighbor++ {
		for _, rule := range rules {
			receiveLower, receiveUpper, receiveRelated := AmountChargeToSend(cw, hubNeighbor, hub, rule)
			sendLower, sendUpper, sendRelated := AmountChargeToSend(cw, hub, hubNeighbor, rule)
			if receiveLower != receiveUpper || sendLower != sendUpper {
				panic("charge exchange with the hub is not tight; the cartwheel is underrefined")
			}
			chargeReceive += receiveLower
			chargeSend += sendLower
			for v := 0; v < vertexSize; v++ {
				isRuleRelated[v] = isRuleRelated[v] || receiveRelated[v] || sendRelated[v]
			}
		}
	}
	chargeInitial := ChargeInitial(hubDegree)
	charge := chargeInitial + chargeReceive - chargeSend
	logger.Sugar().Debugf("charge (initial, receive, send, result) : %d, %d, %d, %d",
		chargeInitial, chargeReceive, chargeSend, charge)
	return charge > 0, isRuleRelated
}

// Evaluator checks wheel files for overcharged cartwheels.
type Evaluator struct {
	rules     []*catalog.Rule
	sendCases []*catalog.Rule
	confs     []*catalog.Configuration
	maxDegree int
	log       *zap.Logger
}

func NewEvaluator(rules, sendCases []*catalog.Rule, confs []*catalog.Configuration, maxDegree int, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		rules:     rules,
		sendCases: sendCases,
		confs:     confs,
		maxDegree: maxDegree,
		log:       logger,
	}
}

// capUndecidedDegrees assigns maxDegree+ to every vertex the refinement left
// undecided.
func capUndecidedDegrees(cw *datastructure.CartWheel, maxDegree int) {
	capped := datastructure.NewDegree(maxDegree, pkg.MAX_DEGREE)
	degrees := cw.NearTriangulation().Degrees()
	for v := 0; v < cw.NearTriangulation().VertexSize(); v++ {
		if degrees[v] == nil {
			cw.SetDegree(v, &capped)
		}
	}
}

// SearchOverCharged enumerates the cartwheels around wheel that avoid every
// configuration and could be overcharged, then counts the ones that actually
// are. Witnesses are logged in the machine-readable line format with the
// rule-unrelated degrees masked.
func (e *Evaluator) SearchOverCharged(wheel *datastructure.Wheel) (overcharged, total int) {
	baseCartwheel := datastructure.NewCartWheelFromWheel(wheel)
	threshold := -ChargeInitial(baseCartwheel.NumNeighbor())

	withinSecondNeighbor := DecideDegreeBySendCases(baseCartwheel, e.sendCases, e.confs, e.maxDegree, threshold, true, e.log)
	e.log.Info("extending third neighbors...")
	for _, cartwheel := range withinSecondNeighbor {
		capUndecidedDegrees(cartwheel, e.maxDegree)
		cartwheel.ExtendThirdNeighbor()
	}

	// Only degrees of third-neighbors that can influence a rule need
	// deciding, which is exactly what the send-case refinement explores.
	var possibleCartwheels []*datastructure.CartWheel
	for _, cartwheel := range withinSecondNeighbor {
		cartwheels := DecideDegreeBySendCases(cartwheel, e.sendCases, e.confs, e.maxDegree, threshold, true, e.log)
		possibleCartwheels = append(possibleCartwheels, cartwheels...)
	}
	for _, cartwheel := range possibleCartwheels {
		capUndecidedDegrees(cartwheel, e.maxDegree)
	}
	possibleCartwheels = embedding.MakeUnique(possibleCartwheels)
	e.log.Sugar().Infof("number of cartwheel to check : %d", len(possibleCartwheels))

	for i, cartwheel := range possibleCartwheels {
		e.log.Sugar().Debugf("checking cartwheel [%d/%d]", i, len(possibleCartwheels))
		isOvercharged, isRelated := IsOvercharged(cartwheel, e.rules, e.log)
		if isOvercharged {
			e.log.Sugar().Infof("overcharged cartwheel (for machine) : %s", cartwheel.StringMasked(isRelated))
			overcharged++
		}
	}
	return overcharged, len(possibleCartwheels)
}

// EvaluateDir evaluates every .wheel file under dirname, one file per worker
// at a time. Evaluations of distinct files share nothing mutable.
func (e *Evaluator) EvaluateDir(dirname string, numWorkers int) error {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return errors.Wrapf(err, "failed to read directory %s", dirname)
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && filepath.Ext(entry.Name()) == pkg.WHEEL_EXTENSION {
			files = append(files, filepath.Join(dirname, entry.Name()))
		}
	}
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	pool := concurrent.NewWorkerPool(numWorkers, len(files))
	pool.Start(func(job concurrent.EvalJob) concurrent.EvalResult {
		overcharged, total, err := e.EvaluateFile(job.WheelFile)
		return concurrent.EvalResult{WheelFile: job.WheelFile, Overcharged: overcharged, Total: total, Err: err}
	})
	for _, file := range files {
		pool.AddJob(concurrent.EvalJob{WheelFile: file})
	}
	pool.Close()
	pool.Wait()

	var firstErr error
	overcharged, total := 0, 0
	for result := range pool.Results() {
		if result.Err != nil {
			if firstErr == nil {
				firstErr = result.Err
			}
			continue
		}
		overcharged += result.Overcharged
		total += result.Total
	}
	e.log.Sugar().Infof("evaluated %d wheel files: %d/%d cartwheels overcharged", len(files), overcharged, total)
	return firstErr
}

// EvaluateFile reads one wheel file and searches it for overcharged
// cartwheels.
func (e *Evaluator) EvaluateFile(wheelFile string) (overcharged, total int, err error) {
	e.log.Sugar().Debugf("reading %s", wheelFile)
	wheel, err := datastructure.ReadWheelFile(wheelFile)
	if err != nil {
		return 0, 0, err
	}
	e.log.Sugar().Infof("start evaluating %s", wheelFile)
	overcharged, total = e.SearchOverCharged(wheel)
	e.log.Sugar().Infof("the ratio of overcharged cartwheel %d/%d", overcharged, total)
	return overcharged, total, nil
}

package advisor

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"oak/internal/analysis"
	"oak/internal/kb"
)

// Advisor scores optimization strategies for a model/hardware pair. It is
// stateless apart from its calibration and safe for concurrent use.
type Advisor struct {
	cal Calibration
}

func NewAdvisor(cal Calibration) *Advisor {
	return &Advisor{cal: cal}
}

// Advise evaluates every applicable strategy against the hardware profile
// and returns the ranked report. The computation is a single deterministic
// pass: identical inputs always produce identical reports.
func (a *Advisor) Advise(model *analysis.ModelProfile, hw *kb.HardwareProfile, priority Priority) (*AdvisorReport, error) {
	if _, err := ParsePriority(string(priority)); err != nil {
		return nil, err
	}

	// 1-3. Candidate generation, cost estimation, base scoring.
	recs := make([]OptimizationRecommendation, 0, len(strategyTable))
	feasibleKinds := make(map[Strategy]bool)
	for _, def := range strategyTable {
		if !def.applicable(hw) {
			continue
		}

		rom, ram := def.cost(model.FileSizeKB, a.cal)
		feasible := ram < float64(hw.RAMTotalKB)

		score := def.baseInfeasible
		notes := []string{def.description, feasibilitySentence(feasible, ram, hw.RAMTotalKB)}
		if feasible {
			feasibleKinds[def.kind] = true
			score = def.baseFeasible
			if def.bonus != nil {
				if delta, note := def.bonus(hw); delta > 0 {
					score = math.Min(score+delta, 1.0)
					notes = append(notes, note)
				}
			}
		}

		recs = append(recs, OptimizationRecommendation{
			Strategy:       def.kind,
			StrategyName:   def.displayName,
			EstimatedROMKB: rom,
			EstimatedRAMKB: ram,
			Feasible:       feasible,
			PriorityScore:  score,
			Summary:        strings.Join(notes, " "),
		})
	}

	// 4. Priority adjustment, only when something is feasible and never for
	// infeasible candidates.
	if len(feasibleKinds) > 0 {
		for i := range recs {
			if !recs[i].Feasible {
				continue
			}
			adj, ok := strategyAdjustment(recs[i].Strategy, priority)
			if !ok {
				continue
			}
			if len(adj.requires) > 0 && !anyFeasible(adj.requires, feasibleKinds) {
				continue
			}
			recs[i].PriorityScore += adj.delta
		}
	}

	// 5. Clamp and round, applied on every path.
	for i := range recs {
		recs[i].PriorityScore = clampRound(recs[i].PriorityScore)
	}

	// 6. Stable sort keeps generation order on ties.
	stableSortByScore(recs)

	return &AdvisorReport{
		ModelSHA256:     model.ModelSHA256,
		TargetHardware:  hw.Identifier,
		Priority:        priority,
		Recommendations: recs,
	}, nil
}

func strategyAdjustment(kind Strategy, p Priority) (adjustment, bool) {
	for _, def := range strategyTable {
		if def.kind == kind {
			adj, ok := def.adjustments[p]
			return adj, ok
		}
	}
	return adjustment{}, false
}

func anyFeasible(kinds []Strategy, feasible map[Strategy]bool) bool {
	for _, k := range kinds {
		if feasible[k] {
			return true
		}
	}
	return false
}

func clampRound(score float64) float64 {
	score = math.Min(math.Max(score, 0.0), 1.0)
	return math.Round(score*100) / 100
}

func stableSortByScore(recs []OptimizationRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].PriorityScore > recs[j].PriorityScore
	})
}

func feasibilitySentence(feasible bool, ramKB float64, ramTotalKB int64) string {
	verdict, fit := "Feasible", "fits"
	if !feasible {
		verdict, fit = "Unfeasible", "does not fit"
	}
	return fmt.Sprintf("%s, as the estimated RAM usage (%.0f KB) %s within the available RAM (%d KB).",
		verdict, ramKB, fit, ramTotalKB)
}

package event

import "github.com/volatiletech/null/v8"

// GradeSummary is the output of AggregateGrades. Average is invalid (null)
// when no event carries a grade. WeightSoFar is the summed weight of graded
// events only — the share of the course already counted.
type GradeSummary struct {
	Average     null.Float64
	WeightSoFar float64
}

// AggregateGrades reduces a set of events to a weight-weighted average grade.
// Only events with a non-null grade participate. The reduction is commutative
// and associative; input order is irrelevant.
func AggregateGrades(events []Event) GradeSummary {
	var weightedSum, totalWeight float64
	for _, ev := range events {
		if !ev.Graded() {
			continue
		}
		weightedSum += ev.Grade.Float64 * ev.Weight
		totalWeight += ev.Weight
	}

	var avg null.Float64
	if totalWeight > 0 {
		avg = null.Float64From(weightedSum / totalWeight)
	}
	return GradeSummary{Average: avg, WeightSoFar: totalWeight}
}

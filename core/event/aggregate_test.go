package event

import (
	"math"
	"testing"

	"github.com/volatiletech/null/v8"
)

func graded(grade, weight float64) Event {
	return Event{Grade: null.Float64From(grade), Weight: weight}
}

func ungraded(weight float64) Event {
	return Event{Weight: weight}
}

func TestAggregateGrades(t *testing.T) {
	tests := []struct {
		name       string
		events     []Event
		wantAvg    null.Float64
		wantWeight float64
	}{
		{
			name:       "weighted average over graded events only",
			events:     []Event{graded(70, 10), graded(90, 30), ungraded(60)},
			wantAvg:    null.Float64From(85),
			wantWeight: 40,
		},
		{
			name:       "empty set yields null average",
			events:     nil,
			wantAvg:    null.Float64{},
			wantWeight: 0,
		},
		{
			name:       "all-null grades yield null average",
			events:     []Event{ungraded(40), ungraded(60)},
			wantAvg:    null.Float64{},
			wantWeight: 0,
		},
		{
			name:       "single graded event",
			events:     []Event{graded(88, 25)},
			wantAvg:    null.Float64From(88),
			wantWeight: 25,
		},
		{
			name:       "zero grade still participates",
			events:     []Event{graded(0, 50)},
			wantAvg:    null.Float64From(0),
			wantWeight: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateGrades(tt.events)
			if got.Average != tt.wantAvg {
				t.Errorf("Average = %+v; want %+v", got.Average, tt.wantAvg)
			}
			if got.WeightSoFar != tt.wantWeight {
				t.Errorf("WeightSoFar = %v; want %v", got.WeightSoFar, tt.wantWeight)
			}
		})
	}
}

func TestAggregateGradesEqualWeightsIsArithmeticMean(t *testing.T) {
	events := []Event{graded(60, 20), graded(75, 20), graded(93, 20)}

	got := AggregateGrades(events)
	if !got.Average.Valid {
		t.Fatal("Average is null; want valid")
	}
	want := (60.0 + 75.0 + 93.0) / 3
	if math.Abs(got.Average.Float64-want) > 1e-9 {
		t.Errorf("Average = %v; want arithmetic mean %v", got.Average.Float64, want)
	}
}

func TestAggregateGradesOrderIndependent(t *testing.T) {
	a := []Event{graded(70, 10), graded(40, 30), ungraded(20)}
	b := []Event{ungraded(20), graded(40, 30), graded(70, 10)}

	if AggregateGrades(a) != AggregateGrades(b) {
		t.Error("AggregateGrades() depends on input order")
	}
}

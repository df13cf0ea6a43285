package goal

import (
	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
)

// Recommendations
const (
	RecommendationOnTrack    = "ON_TRACK"
	RecommendationAdjustGoal = "CONSIDER_ADJUSTING_GOAL"
)

// Importance buckets for upcoming tasks, by declared weight.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// Contribution of a graded task relative to the target grade.
const (
	ContributionPositive = "positive"
	ContributionNegative = "negative"
)

// Projection is the feasibility core of a goal report.
// RequiredAvgForRemaining is null when all 100% of the course weight is
// already graded or accounted for.
type Projection struct {
	CurrentGrade            null.Float64 `json:"currentGrade"`
	RequiredAvgForRemaining null.Float64 `json:"requiredAvgForRemaining"`
	Achievable              bool         `json:"achievable"`
	Recommendation          string       `json:"recommendation"`
}

// Project computes whether targetGrade is still reachable given the graded
// past and the known ungraded future of a course.
//
// Weight not yet entered into the system (total accounted < 100) is presumed
// to exist and counts toward the remaining pool, keeping the projection
// conservative. Weight sums above 100 are clamped rather than rejected here;
// writes enforce the invariant.
func Project(targetGrade float64, past, future []event.Event) Projection {
	summary := event.AggregateGrades(past)

	current := 0.0 // null average reads as 0 for arithmetic
	if summary.Average.Valid {
		current = summary.Average.Float64
	}

	var remainingKnown float64
	for _, ev := range future {
		remainingKnown += ev.Weight
	}

	missing := 100 - (summary.WeightSoFar + remainingKnown)
	if missing < 0 {
		missing = 0
	}
	remaining := remainingKnown + missing

	proj := Projection{CurrentGrade: summary.Average}
	if remaining > 0 {
		required := (targetGrade*100 - current*summary.WeightSoFar) / remaining
		proj.RequiredAvgForRemaining = null.Float64From(required)
		proj.Achievable = required <= 100
	} else {
		proj.Achievable = current >= targetGrade
	}

	if proj.Achievable {
		proj.Recommendation = RecommendationOnTrack
	} else {
		proj.Recommendation = RecommendationAdjustGoal
	}
	return proj
}

type (
	// CourseInfo is the course slice embedded in a report.
	CourseInfo struct {
		ID    string `json:"id"`
		Code  string `json:"code"`
		Title string `json:"title"`
	}

	// GradedEvent is a past (graded) task annotated with whether it pulls the
	// course average toward or away from the target.
	GradedEvent struct {
		event.Event
		Contribution string `json:"contribution"`
	}

	// UpcomingTask is a future (ungraded) task bucketed by declared weight.
	UpcomingTask struct {
		event.Event
		Importance string `json:"importance"`
	}

	// Report is the full goal feasibility report served to the API layer.
	// Recomputed on every request, never persisted.
	Report struct {
		GoalID        string         `json:"goalId"`
		Course        CourseInfo     `json:"course"`
		TargetGrade   float64        `json:"targetGrade"`
		PastEvents    []GradedEvent  `json:"pastEvents"`
		UpcomingTasks []UpcomingTask `json:"upcomingTasks"`
		Projection
	}
)

// BuildReport assembles the report for a goal from a single consistent
// snapshot of the course's events: graded events form the past, ungraded
// ones the known future.
func BuildReport(g Goal, crs course.Course, events []event.Event) Report {
	var past, future []event.Event
	for _, ev := range events {
		if ev.Graded() {
			past = append(past, ev)
		} else {
			future = append(future, ev)
		}
	}

	report := Report{
		GoalID:      g.ID,
		Course:      CourseInfo{ID: crs.ID, Code: crs.Code, Title: crs.Title},
		TargetGrade: g.TargetGrade,
		Projection:  Project(g.TargetGrade, past, future),
	}

	report.PastEvents = make([]GradedEvent, 0, len(past))
	for _, ev := range past {
		report.PastEvents = append(report.PastEvents, GradedEvent{
			Event:        ev,
			Contribution: contribution(ev.Grade.Float64, g.TargetGrade),
		})
	}

	report.UpcomingTasks = make([]UpcomingTask, 0, len(future))
	for _, ev := range future {
		report.UpcomingTasks = append(report.UpcomingTasks, UpcomingTask{
			Event:      ev,
			Importance: importance(ev.Weight),
		})
	}
	return report
}

func contribution(grade, target float64) string {
	if grade >= target {
		return ContributionPositive
	}
	return ContributionNegative
}

func importance(weight float64) string {
	switch {
	case weight >= 20:
		return ImportanceHigh
	case weight >= 10:
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

package event

import (
	"math"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
)

// Importance score factor caps.
const (
	urgencyCap    = 50.0
	weightCap     = 30.0
	gradeCap      = 10.0
	goalGapCap    = 10.0
	noGradeBonus  = 10.0
	urgencyWindow = 10.0 // days; deadlines further out score 0 urgency
)

// ScoredEvent is an Event annotated with its computed importance score.
// Derived per request, never persisted.
type ScoredEvent struct {
	Event
	Course          *course.Course `json:"course,omitempty"`
	ImportanceScore float64        `json:"importanceScore"`
}

// ImportanceScore computes a composite urgency score for a pending event:
//
//   - urgency (0-50): grows linearly as the deadline nears, saturating at 50
//     when due or overdue and at 0 once 10+ days remain;
//   - weight (0-30): proportional to the event's declared weight;
//   - grade urgency (0-10) and goal gap (0-10): applied when grade context is
//     known (the event's own grade, or courseGrade as the course's current
//     average); a flat +10 keeps scores comparable when it is not.
//
// courseGrade null means no course context. The result is rounded to 2 decimals.
func ImportanceScore(ev Event, now time.Time, courseGrade null.Float64) float64 {
	daysLeft := ev.DueAt.Sub(now).Hours() / 24
	if daysLeft < 0 {
		daysLeft = 0 // overdue scores like due-now
	}
	score := math.Max(0, urgencyCap-math.Min(daysLeft, urgencyWindow)*5)

	score += (ev.Weight / 100) * weightCap

	grade := ev.Grade
	if !grade.Valid {
		grade = courseGrade
	}
	if grade.Valid {
		score += math.Max(0, gradeCap-grade.Float64/10)
		score += ((100 - grade.Float64) / 100) * (ev.Weight / 100) * goalGapCap
	} else {
		score += noGradeBonus
	}

	return math.Round(score*100) / 100
}

// RankByImportance sorts scored events by descending score. The sort is
// stable: equal scores keep their relative input order.
func RankByImportance(events []ScoredEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ImportanceScore > events[j].ImportanceScore
	})
}

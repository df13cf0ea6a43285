package course

import "time"

const daySeconds = 24 * 60 * 60

// MaterializeSchedule expands a weekly recurrence template into dated class
// occurrences over [start, end] inclusive, at day granularity.
//
// Weekday matching uses UTC throughout so the output never depends on the
// server timezone. Occurrences are emitted in (day, template order) sequence;
// identical inputs always yield an identical, identically-ordered list.
//
// Offsets are assumed pre-validated (0..86399, end > start); sessions crossing
// midnight are not representable.
func MaterializeSchedule(sessions []WeeklySession, start, end time.Time) []ClassOccurrence {
	occurrences := make([]ClassOccurrence, 0, len(sessions))

	day := dayMidnight(start)
	last := dayMidnight(end)

	for !day.After(last) {
		weekday := int(day.Weekday())
		for _, session := range sessions {
			if session.Weekday != weekday {
				continue
			}
			startTime := day.Add(time.Duration(session.StartSec) * time.Second)
			endTime := startTime.Add(time.Duration(session.EndSec-session.StartSec) * time.Second)
			occurrences = append(occurrences, ClassOccurrence{
				ClassType: session.ClassType,
				StartTime: startTime,
				EndTime:   endTime,
			})
		}
		day = day.Add(daySeconds * time.Second)
	}
	return occurrences
}

// dayMidnight truncates t to midnight UTC.
func dayMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

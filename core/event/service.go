package event

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
)

var (
	// errors
	ErrNotFound       = errors.New("event not found")
	errWeightExceeded = errors.New("total weight exceeds 100%")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, ev Event) (Event, error)
		GetEventByID(ctx context.Context, userID, id string) (Event, error)
		// QueryEvents returns the user's events by completion status, soonest due first.
		QueryEvents(ctx context.Context, userID string, isCompleted bool) ([]Event, error)
		// QueryEventsByCourse returns all of a course's events in one consistent read,
		// so a grade snapshot cannot double-count a task regraded mid-fetch.
		QueryEventsByCourse(ctx context.Context, userID, courseID string) ([]Event, error)
		// QueryPendingEvents returns incomplete events due at or after the given time,
		// soonest due first.
		QueryPendingEvents(ctx context.Context, userID string, dueFrom time.Time) ([]Event, error)
		QueryEventsDueBetween(ctx context.Context, userID string, from, to time.Time) ([]Event, error)
		// GetNextEventDue returns the event closest after the given time, or ErrNotFound.
		GetNextEventDue(ctx context.Context, userID string, after time.Time) (Event, error)
		SumEventWeights(ctx context.Context, userID, courseID string) (float64, error)
		UpdateEvent(ctx context.Context, ev Event) (Event, error)
		DeleteEvent(ctx context.Context, userID, id string) error
	}

	// CourseDirectory is the slice of the course repository the event service needs.
	CourseDirectory interface {
		GetCourseByID(ctx context.Context, userID, id string) (course.Course, error)
	}

	Service struct {
		repo    Repository
		courses CourseDirectory
	}
)

func NewService(repo Repository, courses CourseDirectory) *Service {
	return &Service{repo: repo, courses: courses}
}

func (svc *Service) Create(ctx context.Context, userID string, ne NewEvent) (Event, error) {
	// the course must exist and belong to the user
	if _, err := svc.courses.GetCourseByID(ctx, userID, ne.CourseID); err != nil {
		return Event{}, err
	}
	if err := svc.checkCourseWeight(ctx, userID, ne.CourseID, ne.Weight); err != nil {
		return Event{}, err
	}

	now := NowFunc().UTC()
	ev := Event{
		UserID:      userID,
		CourseID:    ne.CourseID,
		Title:       ne.Title,
		Type:        ne.Type,
		Description: ne.Description,
		Weight:      ne.Weight,
		Grade:       ne.Grade,
		DueAt:       ne.DueAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateEvent(ctx, ev)
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, userID, id)
}

func (svc *Service) Query(ctx context.Context, userID string, filter QueryFilter) ([]Event, error) {
	return svc.repo.QueryEvents(ctx, userID, filter.IsCompleted)
}

func (svc *Service) Update(ctx context.Context, orig Event, ue UpdateEvent) (Event, error) {
	updated := orig
	if ue.IsCompleted != nil {
		updated.IsCompleted = *ue.IsCompleted
	}
	if ue.Grade.Valid {
		updated.Grade = ue.Grade
	}
	updated.UpdatedAt = NowFunc().UTC()
	return svc.repo.UpdateEvent(ctx, updated)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteEvent(ctx, userID, id)
}

// checkCourseWeight enforces the per-course weight-sum invariant at write time:
// the declared weights of a course's events must not exceed 100%.
func (svc *Service) checkCourseWeight(ctx context.Context, userID, courseID string, addedWeight float64) error {
	total, err := svc.repo.SumEventWeights(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if total+addedWeight > 100 {
		return core.NewValidationError(errWeightExceeded, core.FieldError{Field: "weight", Error: errWeightExceeded.Error()})
	}
	return nil
}

// SmartTodo returns the user's pending events ranked by importance, each
// annotated with its owning course and the composite score. The owning
// course's current grade (weight-weighted average of its graded events) feeds
// the scorer as plain input.
func (svc *Service) SmartTodo(ctx context.Context, userID string) ([]ScoredEvent, error) {
	now := NowFunc().UTC()
	events, err := svc.repo.QueryPendingEvents(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	courseCache := make(map[string]*course.Course)
	gradeCache := make(map[string]null.Float64)

	scored := make([]ScoredEvent, 0, len(events))
	for _, ev := range events {
		crs, ok := courseCache[ev.CourseID]
		if !ok {
			if found, err := svc.courses.GetCourseByID(ctx, userID, ev.CourseID); err == nil {
				crs = &found
			} else if err != course.ErrNotFound {
				return nil, err
			}
			courseCache[ev.CourseID] = crs
		}

		var courseGrade null.Float64
		if crs != nil {
			courseGrade, ok = gradeCache[ev.CourseID]
			if !ok {
				courseEvents, err := svc.repo.QueryEventsByCourse(ctx, userID, ev.CourseID)
				if err != nil {
					return nil, err
				}
				courseGrade = AggregateGrades(courseEvents).Average
				gradeCache[ev.CourseID] = courseGrade
			}
		}

		scored = append(scored, ScoredEvent{
			Event:           ev,
			Course:          crs,
			ImportanceScore: ImportanceScore(ev, now, courseGrade),
		})
	}

	RankByImportance(scored)
	return scored, nil
}

type (
	// UpcomingEvent is an event expanded with its owning course for display.
	UpcomingEvent struct {
		Event
		Course *course.Course `json:"course,omitempty"`
	}

	// ProfileData summarizes the user's current semester: how much of the
	// semester's work is done and what is due next. Derived, never persisted.
	ProfileData struct {
		UpcomingEvent        *UpcomingEvent `json:"upcomingEvent"`
		CompletionPercentage int            `json:"completionPercentage"`
		HasEvents            bool           `json:"hasEvents"`
	}
)

// Profile computes the semester completion percentage and the closest
// upcoming event (with course attached).
func (svc *Service) Profile(ctx context.Context, userID string) (ProfileData, error) {
	now := NowFunc().UTC()
	semStart, semEnd := semesterBounds(now)

	semesterEvents, err := svc.repo.QueryEventsDueBetween(ctx, userID, semStart, semEnd)
	if err != nil {
		return ProfileData{}, err
	}

	var completed int
	for _, ev := range semesterEvents {
		if ev.IsCompleted {
			completed++
		}
	}
	data := ProfileData{HasEvents: len(semesterEvents) > 0}
	if data.HasEvents {
		data.CompletionPercentage = int(float64(completed)/float64(len(semesterEvents))*100 + 0.5)
	}

	next, err := svc.repo.GetNextEventDue(ctx, userID, now)
	if err != nil {
		if err == ErrNotFound {
			return data, nil
		}
		return ProfileData{}, err
	}

	upcoming := &UpcomingEvent{Event: next}
	if crs, err := svc.courses.GetCourseByID(ctx, userID, next.CourseID); err == nil {
		upcoming.Course = &crs
	} else if err != course.ErrNotFound {
		return ProfileData{}, err
	}
	data.UpcomingEvent = upcoming
	return data, nil
}

// semesterBounds approximates the current semester window:
// Winter Jan-Apr, Summer May-Aug, Fall Sep-Dec.
func semesterBounds(now time.Time) (time.Time, time.Time) {
	year := now.Year()
	switch {
	case now.Month() <= time.April:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.April, 30, 23, 59, 59, 0, time.UTC)
	case now.Month() <= time.August:
		return time.Date(year, time.May, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.August, 31, 23, 59, 59, 0, time.UTC)
	default:
		return time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC),
			time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	}
}

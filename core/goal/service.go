package goal

import (
	"context"
	"errors"
	"time"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
)

var (
	// errors
	ErrNotFound   = errors.New("goal not found")
	ErrGoalExists = errors.New("a goal for this course already exists")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		// CreateGoal fails with ErrGoalExists when the user already has a goal
		// for the course.
		CreateGoal(ctx context.Context, g Goal) (Goal, error)
		GetGoalByID(ctx context.Context, userID, id string) (Goal, error)
		QueryGoals(ctx context.Context, userID string) ([]Goal, error)
		UpdateGoal(ctx context.Context, g Goal) (Goal, error)
		DeleteGoal(ctx context.Context, userID, id string) error
	}

	// CourseDirectory is the slice of the course repository the goal service needs.
	CourseDirectory interface {
		GetCourseByID(ctx context.Context, userID, id string) (course.Course, error)
	}

	// EventSource provides the consistent event snapshot a report is built from.
	EventSource interface {
		QueryEventsByCourse(ctx context.Context, userID, courseID string) ([]event.Event, error)
	}

	Service struct {
		repo    Repository
		courses CourseDirectory
		events  EventSource
	}
)

func NewService(repo Repository, courses CourseDirectory, events EventSource) *Service {
	return &Service{repo: repo, courses: courses, events: events}
}

func (svc *Service) Create(ctx context.Context, userID string, ng NewGoal) (Goal, error) {
	// the course must exist and belong to the user
	if _, err := svc.courses.GetCourseByID(ctx, userID, ng.CourseID); err != nil {
		return Goal{}, err
	}

	g := Goal{
		UserID:      userID,
		CourseID:    ng.CourseID,
		TargetGrade: ng.TargetGrade,
		CreatedAt:   NowFunc().UTC(),
	}
	g, err := svc.repo.CreateGoal(ctx, g)
	if err != nil {
		if err == ErrGoalExists {
			return Goal{}, core.NewValidationError(err, core.FieldError{Field: "courseId", Error: err.Error()})
		}
		return Goal{}, err
	}
	return g, nil
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Goal, error) {
	return svc.repo.GetGoalByID(ctx, userID, id)
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Goal, error) {
	return svc.repo.QueryGoals(ctx, userID)
}

func (svc *Service) Update(ctx context.Context, orig Goal, ug UpdateGoal) (Goal, error) {
	orig.TargetGrade = ug.TargetGrade
	return svc.repo.UpdateGoal(ctx, orig)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteGoal(ctx, userID, id)
}

// Report recomputes the goal's feasibility report from the course's current
// events. The course's events are fetched in one read so the graded/ungraded
// split cannot drop or double-count a task regraded mid-request.
func (svc *Service) Report(ctx context.Context, userID, goalID string) (Report, error) {
	g, err := svc.repo.GetGoalByID(ctx, userID, goalID)
	if err != nil {
		return Report{}, err
	}

	crs, err := svc.courses.GetCourseByID(ctx, userID, g.CourseID)
	if err != nil {
		return Report{}, err
	}

	events, err := svc.events.QueryEventsByCourse(ctx, userID, g.CourseID)
	if err != nil {
		return Report{}, err
	}

	return BuildReport(g, crs, events), nil
}

package course

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		GetCourseByID(ctx context.Context, userID, id string) (Course, error)
		// QueryCourses returns the user's courses with the given status, oldest first.
		QueryCourses(ctx context.Context, userID, status string) ([]Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		DeactivateCourses(ctx context.Context, ids ...string) error
		// DeleteCourse removes the course and cascades to its class occurrences and
		// gradable events; it reports how many of each were removed.
		DeleteCourse(ctx context.Context, userID, id string) (classes, events int64, err error)

		InsertClassOccurrences(ctx context.Context, occs []ClassOccurrence) error
		// ReplaceClassOccurrences atomically deletes the course's previous occurrence
		// generation and inserts the new one. Occurrences have no natural identity
		// beyond (course, startTime, classType), so this is never an upsert.
		ReplaceClassOccurrences(ctx context.Context, courseID string, occs []ClassOccurrence) error
		QueryClassOccurrences(ctx context.Context, userID string, from, to time.Time) ([]ClassOccurrence, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nc NewCourse) (Course, error) {
	now := NowFunc().UTC()
	crs := Course{
		UserID:     userID,
		Title:      nc.Title,
		Code:       nc.Code,
		Section:    nc.Section,
		Status:     StatusActive,
		StartDate:  nc.StartDate.UTC(),
		EndDate:    nc.EndDate.UTC(),
		Instructor: nc.Instructor,
		Schedule:   nc.Schedule,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	crs, err := svc.repo.CreateCourse(ctx, crs)
	if err != nil {
		return Course{}, err
	}

	occs := svc.stampOccurrences(crs, MaterializeSchedule(crs.Schedule, crs.StartDate, crs.EndDate))
	if err = svc.repo.InsertClassOccurrences(ctx, occs); err != nil {
		return Course{}, err
	}
	return crs, nil
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, userID, id)
}

// Query lists the user's courses by status. Active courses whose end date has
// passed are flipped to inactive and dropped from the result.
func (svc *Service) Query(ctx context.Context, userID string, filter QueryFilter) ([]Course, error) {
	filter.Clean()
	courses, err := svc.repo.QueryCourses(ctx, userID, filter.Status)
	if err != nil {
		return nil, err
	}
	if filter.Status != StatusActive {
		return courses, nil
	}

	today := NowFunc().UTC()
	current := make([]Course, 0, len(courses))
	var expiredIDs []string
	for _, crs := range courses {
		if crs.EndDate.Before(today) {
			expiredIDs = append(expiredIDs, crs.ID)
			continue
		}
		current = append(current, crs)
	}
	if len(expiredIDs) > 0 {
		if err = svc.repo.DeactivateCourses(ctx, expiredIDs...); err != nil {
			return nil, err
		}
	}
	return current, nil
}

func (svc *Service) Update(ctx context.Context, orig Course, uc UpdateCourse) (Course, error) {
	updated, reschedule := uc.Apply(orig)
	updated.UpdatedAt = NowFunc().UTC()

	updated, err := svc.repo.UpdateCourse(ctx, updated)
	if err != nil {
		return Course{}, err
	}

	if reschedule {
		occs := svc.stampOccurrences(updated, MaterializeSchedule(updated.Schedule, updated.StartDate, updated.EndDate))
		if err = svc.repo.ReplaceClassOccurrences(ctx, updated.ID, occs); err != nil {
			return Course{}, err
		}
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, userID, id string) (classes, events int64, err error) {
	return svc.repo.DeleteCourse(ctx, userID, id)
}

// QueryUpcomingClasses returns the user's class occurrences for the next 7 days.
func (svc *Service) QueryUpcomingClasses(ctx context.Context, userID string) ([]ClassOccurrence, error) {
	now := NowFunc().UTC()
	return svc.repo.QueryClassOccurrences(ctx, userID, now, now.AddDate(0, 0, 7))
}

func (svc *Service) stampOccurrences(crs Course, occs []ClassOccurrence) []ClassOccurrence {
	for i := range occs {
		occs[i].UserID = crs.UserID
		occs[i].CourseID = crs.ID
	}
	return occs
}

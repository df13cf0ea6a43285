package course

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
)

// Class types
const (
	ClassTypeLecture  = "lecture"
	ClassTypeLab      = "lab"
	ClassTypeTutorial = "tutorial"
)

// Course statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var ClassTypes = []string{ClassTypeLecture, ClassTypeLab, ClassTypeTutorial}

// WeeklySession is a recurring weekly time slot used as a template to generate
// concrete dated class occurrences. Offsets are seconds from midnight UTC.
type WeeklySession struct {
	ClassType string      `json:"classType" validate:"required,classtype"`
	Weekday   int         `json:"weekday" validate:"min=0,max=6"` // 0 = Sunday
	StartSec  int         `json:"startTime" validate:"min=0,max=86399"`
	EndSec    int         `json:"endTime" validate:"min=0,max=86399,gtfield=StartSec"`
	Location  null.String `json:"location,omitempty" validate:"omitempty,max=50"`
}

type Instructor struct {
	Name  string `json:"name" validate:"required,max=30"`
	Email string `json:"email" validate:"required,email,max=50"`
}

type Course struct {
	ID         string          `json:"id"`
	UserID     string          `json:"-"`
	Title      string          `json:"title"`
	Code       string          `json:"code"`
	Section    null.String     `json:"section,omitempty"`
	Status     string          `json:"status"`
	StartDate  time.Time       `json:"startDate"` // UTC, day granularity
	EndDate    time.Time       `json:"endDate"`   // UTC, day granularity, inclusive
	Instructor Instructor      `json:"instructor"`
	Schedule   []WeeklySession `json:"schedule"`
	CreatedAt  time.Time       `json:"created_at"` // UTC
	UpdatedAt  time.Time       `json:"updated_at"` // UTC
}

// ClassOccurrence is a single dated instance expanded from a WeeklySession.
// Derived and disposable; always reproducible from the owning course's schedule.
type ClassOccurrence struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"-"`
	CourseID  string    `json:"courseId"`
	ClassType string    `json:"classType"`
	StartTime time.Time `json:"startTime"` // UTC
	EndTime   time.Time `json:"endTime"`   // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title      string          `json:"title" validate:"required,max=30"`
	Code       string          `json:"code" validate:"required,max=10"`
	Section    null.String     `json:"section,omitempty" validate:"omitempty,max=10"`
	StartDate  time.Time       `json:"startDate" validate:"required"`
	EndDate    time.Time       `json:"endDate" validate:"required"`
	Instructor Instructor      `json:"instructor"`
	Schedule   []WeeklySession `json:"schedule" validate:"required,min=1,dive"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Code = core.CleanString(nc.Code)
	nc.Instructor.Name = core.CleanString(nc.Instructor.Name)
	nc.Instructor.Email = core.CleanString(nc.Instructor.Email, true /* lower */)

	if err := validate.Struct(nc); err != nil {
		return err
	}
	if nc.EndDate.Before(nc.StartDate) {
		return core.NewValidationError(nil, core.FieldError{Field: "endDate", Error: "end date must not precede start date"})
	}
	return nil
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Zero values mean "keep the current value"; changing Schedule, StartDate or EndDate
// discards and regenerates the course's class occurrences.
type UpdateCourse struct {
	Title      string          `json:"title" validate:"omitempty,max=30"`
	Code       string          `json:"code" validate:"omitempty,max=10"`
	Section    null.String     `json:"section,omitempty" validate:"omitempty,max=10"`
	Status     string          `json:"status" validate:"omitempty,oneof=active inactive"`
	StartDate  *time.Time      `json:"startDate"`
	EndDate    *time.Time      `json:"endDate"`
	Instructor *Instructor     `json:"instructor"`
	Schedule   []WeeklySession `json:"schedule" validate:"omitempty,min=1,dive"`
}

func (uc *UpdateCourse) Validate(orig Course, validate *validator.Validate) error {
	uc.Title = core.CleanString(uc.Title)
	uc.Code = core.CleanString(uc.Code)
	if uc.Instructor != nil {
		uc.Instructor.Name = core.CleanString(uc.Instructor.Name)
		uc.Instructor.Email = core.CleanString(uc.Instructor.Email, true /* lower */)
		if err := validate.Struct(uc.Instructor); err != nil {
			return err
		}
	}

	if err := validate.Struct(uc); err != nil {
		return err
	}

	start, end := orig.StartDate, orig.EndDate
	if uc.StartDate != nil {
		start = *uc.StartDate
	}
	if uc.EndDate != nil {
		end = *uc.EndDate
	}
	if end.Before(start) {
		return core.NewValidationError(nil, core.FieldError{Field: "endDate", Error: "end date must not precede start date"})
	}
	return nil
}

// Apply merges the update into orig and reports whether the schedule or the
// calendar bounds changed (i.e. whether occurrences must be regenerated).
func (uc *UpdateCourse) Apply(orig Course) (Course, bool) {
	updated := orig
	if uc.Title != "" {
		updated.Title = uc.Title
	}
	if uc.Code != "" {
		updated.Code = uc.Code
	}
	if uc.Section.Valid {
		updated.Section = uc.Section
	}
	if uc.Status != "" {
		updated.Status = uc.Status
	}
	if uc.Instructor != nil {
		updated.Instructor = *uc.Instructor
	}

	var reschedule bool
	if uc.StartDate != nil && !uc.StartDate.Equal(orig.StartDate) {
		updated.StartDate = *uc.StartDate
		reschedule = true
	}
	if uc.EndDate != nil && !uc.EndDate.Equal(orig.EndDate) {
		updated.EndDate = *uc.EndDate
		reschedule = true
	}
	if uc.Schedule != nil {
		updated.Schedule = uc.Schedule
		reschedule = true
	}
	return updated, reschedule
}

type QueryFilter struct {
	Status string `query:"status"`
}

func (qf *QueryFilter) Clean() {
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	if qf.Status == "" {
		qf.Status = StatusActive
	}
}

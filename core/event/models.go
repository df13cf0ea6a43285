package event

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
)

// Event types
const (
	TypeAssignment = "assignment"
	TypeExam       = "exam"
	TypeProject    = "project"
	TypeQuiz       = "quiz"
	TypeTest       = "test"
	TypeHomework   = "homework"
)

var Types = []string{TypeAssignment, TypeExam, TypeProject, TypeQuiz, TypeTest, TypeHomework}

// Event is a gradable, time-bounded academic task (assignment, exam, ...).
// A null Grade means "not yet graded", independent of IsCompleted.
type Event struct {
	ID          string       `json:"id"`
	UserID      string       `json:"-"`
	CourseID    string       `json:"courseId"`
	Title       string       `json:"title"`
	Type        string       `json:"type"`
	Description null.String  `json:"description,omitempty"`
	Weight      float64      `json:"weight"` // percent of the course total, 0..100
	Grade       null.Float64 `json:"grade"`  // 0..100
	IsCompleted bool         `json:"isCompleted"`
	DueAt       time.Time    `json:"end"` // UTC
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Graded reports whether the event participates in grade aggregation.
func (ev Event) Graded() bool { return ev.Grade.Valid }

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Title       string       `json:"title" validate:"required,max=100"`
	CourseID    string       `json:"courseId" validate:"required"`
	Type        string       `json:"type" validate:"required,eventtype"`
	Description null.String  `json:"description,omitempty" validate:"omitempty,max=500"`
	Weight      float64      `json:"weight" validate:"min=0,max=100"`
	Grade       null.Float64 `json:"grade" validate:"omitempty,min=0,max=100"`
	DueAt       time.Time    `json:"end" validate:"required"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Type = core.CleanString(ne.Type, true /* lower */)
	return validate.Struct(ne)
}

// UpdateEvent defines the mutable bits of an existing Event: its completion
// status and its grade.
type UpdateEvent struct {
	IsCompleted *bool        `json:"isCompleted"`
	Grade       null.Float64 `json:"grade" validate:"omitempty,min=0,max=100"`
}

func (ue *UpdateEvent) Validate(validate *validator.Validate) error {
	return validate.Struct(ue)
}

type QueryFilter struct {
	IsCompleted bool `query:"completed"`
}

package goal

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
)

// Goal is a numeric grade target for one course. At most one goal exists per
// (user, course) pair; the storage layer enforces the uniqueness.
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	CourseID    string    `json:"courseId"`
	TargetGrade float64   `json:"targetGrade"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// NewGoal contains information needed to create a new Goal.
type NewGoal struct {
	CourseID    string  `json:"courseId" validate:"required"`
	TargetGrade float64 `json:"targetGrade" validate:"min=0,max=100"`
}

func (ng *NewGoal) Validate(validate *validator.Validate) error {
	ng.CourseID = core.CleanString(ng.CourseID)
	return validate.Struct(ng)
}

// UpdateGoal defines what may be modified on an existing Goal.
type UpdateGoal struct {
	TargetGrade float64 `json:"targetGrade" validate:"min=0,max=100"`
}

func (ug *UpdateGoal) Validate(validate *validator.Validate) error {
	return validate.Struct(ug)
}

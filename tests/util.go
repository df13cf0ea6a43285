package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/goal"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/user"
)

// NewConfig sets core.Conf to a self-contained test configuration and returns it.
func NewConfig() *core.Config {
	core.Conf = &core.Config{
		Debug:           false,
		TestMode:        true,
		Env:             "TEST",
		AppName:         "StudyPlanner",
		SecretKey:       []byte("secret"),
		WorkDir:         core.Getwd(),
		FrontendBaseURL: "http://localhost:3000",

		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,

		Server: core.ServerConfig{
			JWTExpirationDelta:        4 * time.Hour,
			JWTRefreshExpirationDelta: 7 * 24 * time.Hour,
		},
	}
	return core.Conf
}

// NewValidator returns a fully initialized validator and its "en" translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	lang := en.New()
	uni := ut.New(lang, lang)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	event.InitValidators(validate, translator)
	return validate, translator
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	userID, title, code string,
	start, end time.Time,
	schedule []course.WeeklySession,
) course.Course {
	t.Helper()

	now := time.Now().UTC()
	crs := course.Course{
		UserID:    userID,
		Title:     title,
		Code:      code,
		Status:    course.StatusActive,
		StartDate: start.UTC(),
		EndDate:   end.UTC(),
		Instructor: course.Instructor{
			Name:  "Prof. Test",
			Email: "prof@test.cd",
		},
		Schedule:  schedule,
		CreatedAt: now,
		UpdatedAt: now,
	}
	crs, err := repo.CreateCourse(context.Background(), crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateEvent(
	t *testing.T,
	repo event.Repository,
	userID, courseID, title, typ string,
	weight float64,
	grade null.Float64,
	dueAt time.Time,
) event.Event {
	t.Helper()

	now := time.Now().UTC()
	ev := event.Event{
		UserID:      userID,
		CourseID:    courseID,
		Title:       title,
		Type:        typ,
		Weight:      weight,
		Grade:       grade,
		IsCompleted: grade.Valid,
		DueAt:       dueAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ev, err := repo.CreateEvent(context.Background(), ev)
	if err != nil {
		t.Fatalf("CreateEvent() failed: %v", err)
	}
	return ev
}

func CreateGoal(
	t *testing.T,
	repo goal.Repository,
	userID, courseID string,
	targetGrade float64,
) goal.Goal {
	t.Helper()

	g := goal.Goal{
		UserID:      userID,
		CourseID:    courseID,
		TargetGrade: targetGrade,
		CreatedAt:   time.Now().UTC(),
	}
	g, err := repo.CreateGoal(context.Background(), g)
	if err != nil {
		t.Fatalf("CreateGoal() failed: %v", err)
	}
	return g
}

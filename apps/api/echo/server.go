package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/goal"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/user"
)

type (
	// ServerDeps regroups the Server's dependencies.
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		UserSvc    *user.Service
		CourseSvc  *course.Service
		EventSvc   *event.Service
		GoalSvc    *goal.Service
		Validate   *validator.Validate
		Translator ut.Translator

		DisableReqLogs bool
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *server {
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.SignalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig())

	registerUserAPI(v1, jwt, s.deps.UserSvc, s.deps.Validate)
	registerCourseAPI(v1, jwt, s.deps.CourseSvc, s.deps.Validate)
	registerClassAPI(v1, jwt, s.deps.CourseSvc)
	registerEventAPI(v1, jwt, s.deps.EventSvc, s.deps.Validate)
	registerGoalAPI(v1, jwt, s.deps.GoalSvc, s.deps.Validate)
	registerTodoAPI(v1, jwt, s.deps.EventSvc)
	registerProfileAPI(v1, jwt, s.deps.EventSvc, s.deps.UserSvc)
}

func (s *server) Start() {
	s.errs <- s.app.Start(s.deps.Conf.Server.Address())
}

// Errors receives any error that takes the server down.
func (s *server) Errors() <-chan error {
	return s.errs
}

// ShutdownSignal receives OS signals and in-app shutdown requests.
func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown requests a graceful shutdown from within the app.
func (s *server) SignalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the PRJ-666 Academic Planner API!")
}

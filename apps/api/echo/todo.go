package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/event"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/user"
)

type todoApi struct {
	svc *event.Service
}

func registerTodoAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *event.Service) {
	api := todoApi{svc: svc}

	tg := g.Group("/todo", jwt)
	tg.GET("", api.smartTodo)
}

// smartTodo lists the user's pending tasks, most important first.
func (api *todoApi) smartTodo(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	scored, err := api.svc.SmartTodo(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "building smart todo")
	}
	if scored == nil {
		scored = []event.ScoredEvent{}
	}
	return ctx.JSON(http.StatusOK, scored)
}

type profileApi struct {
	svc     *event.Service
	userSvc *user.Service
}

func registerProfileAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *event.Service, userSvc *user.Service) {
	api := profileApi{svc: svc, userSvc: userSvc}

	pg := g.Group("/profile", jwt)
	pg.GET("", api.profile)
}

// ProfileResponse joins the account with its semester progress summary.
type ProfileResponse struct {
	User user.User `json:"user"`
	event.ProfileData
}

func (api *profileApi) profile(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	data, err := api.svc.Profile(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "building profile")
	}
	return ctx.JSON(http.StatusOK, ProfileResponse{User: usr, ProfileData: data})
}

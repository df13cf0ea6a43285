package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
)

type classApi struct {
	svc *course.Service
}

func registerClassAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *course.Service) {
	api := classApi{svc: svc}

	cg := g.Group("/classes", jwt)
	cg.GET("", api.queryUpcoming)
}

// queryUpcoming lists the user's class occurrences for the coming week.
func (api *classApi) queryUpcoming(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	occs, err := api.svc.QueryUpcomingClasses(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "querying upcoming classes")
	}
	if occs == nil {
		occs = []course.ClassOccurrence{}
	}
	return ctx.JSON(http.StatusOK, occs)
}

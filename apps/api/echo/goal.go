package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/course"
	"github.com/kogun86/PRJ-666-GROUP-1-BACKEND/core/goal"
)

type goalApi struct {
	svc      *goal.Service
	validate *validator.Validate
}

func registerGoalAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *goal.Service, validate *validator.Validate) {
	api := goalApi{svc: svc, validate: validate}

	gg := g.Group("/goals", jwt)
	gg.POST("", api.create)
	gg.GET("", api.query)
	gg.PATCH("/:id", api.update)
	gg.DELETE("/:id", api.destroy)
	gg.GET("/:id/report", api.report)
}

// Handlers

func (api *goalApi) create(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	var data goal.NewGoal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGoal")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Create(ctx.Request().Context(), userID, data)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "creating goal")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *goalApi) query(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	goals, err := api.svc.Query(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "querying goals")
	}
	if goals == nil {
		goals = []goal.Goal{}
	}
	return ctx.JSON(http.StatusOK, goals)
}

func (api *goalApi) update(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	orig, err := api.svc.GetByID(ctx.Request().Context(), userID, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == goal.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting goal")
	}

	var data goal.UpdateGoal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGoal")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Update(ctx.Request().Context(), orig, data)
	if err != nil {
		return errors.Wrap(err, "updating goal")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *goalApi) destroy(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), userID, ctx.Param("id")); err != nil {
		if errors.Cause(err) == goal.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting goal")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// report recomputes the goal's feasibility report on demand.
func (api *goalApi) report(ctx echo.Context) error {
	userID, err := getContextUserID(ctx)
	if err != nil {
		return err
	}

	rpt, err := api.svc.Report(ctx.Request().Context(), userID, ctx.Param("id"))
	if err != nil {
		cause := errors.Cause(err)
		if cause == goal.ErrNotFound || cause == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "building goal report")
	}
	return ctx.JSON(http.StatusOK, rpt)
}

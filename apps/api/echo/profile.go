package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core/profile"
)

type profileApi struct {
	store   *profile.Store
	schemas *profile.Schemas
}

func registerProfileAPI(g *echo.Group, store *profile.Store, schemas *profile.Schemas) {
	api := profileApi{store: store, schemas: schemas}

	pg := g.Group("/profile")
	pg.GET("", api.retrieve)
	pg.GET("/summary", api.summary)

	pg.POST("/activities", api.addActivity)
	pg.PATCH("/activities/:id", api.updateActivity)
	pg.DELETE("/activities/:id", api.removeActivity)

	pg.POST("/honors", api.addHonor)
	pg.PATCH("/honors/:id", api.updateHonor)
	pg.DELETE("/honors/:id", api.removeHonor)

	pg.PUT("/:section", api.updateSection)
}

// Handlers

func (api *profileApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Data())
}

func (api *profileApi) summary(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, profile.Summarize(api.store.Data()))
}

func (api *profileApi) updateSection(ctx echo.Context) error {
	upd, ok := profile.NewSectionUpdate(ctx.Param("section"))
	if !ok {
		return errHttpNotFound
	}
	if err := ctx.Bind(upd); err != nil {
		return errors.Wrap(err, "binding to section update")
	}
	if err := api.store.UpdateSectionChecked(ctx.Request().Context(), upd, api.schemas.Check); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.Data())
}

func (api *profileApi) addActivity(ctx echo.Context) error {
	var data profile.NewActivity
	if err := bind(ctx, &data, "NewActivity"); err != nil {
		return err
	}
	act := api.store.AddActivity(ctx.Request().Context(), data)
	return ctx.JSON(http.StatusCreated, act)
}

func (api *profileApi) updateActivity(ctx echo.Context) error {
	var data profile.ActivityUpdate
	if err := bind(ctx, &data, "ActivityUpdate"); err != nil {
		return err
	}
	api.store.UpdateActivity(ctx.Request().Context(), ctx.Param("id"), data)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *profileApi) removeActivity(ctx echo.Context) error {
	api.store.RemoveActivity(ctx.Request().Context(), ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}

func (api *profileApi) addHonor(ctx echo.Context) error {
	var data profile.NewHonor
	if err := bind(ctx, &data, "NewHonor"); err != nil {
		return err
	}
	hon := api.store.AddHonor(ctx.Request().Context(), data)
	return ctx.JSON(http.StatusCreated, hon)
}

func (api *profileApi) updateHonor(ctx echo.Context) error {
	var data profile.HonorUpdate
	if err := bind(ctx, &data, "HonorUpdate"); err != nil {
		return err
	}
	api.store.UpdateHonor(ctx.Request().Context(), ctx.Param("id"), data)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *profileApi) removeHonor(ctx echo.Context) error {
	api.store.RemoveHonor(ctx.Request().Context(), ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}

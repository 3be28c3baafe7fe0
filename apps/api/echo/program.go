package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-apply/core/catalog"
	"github.com/trezcool/masomo-apply/core/program"
)

const defaultSearchLimit = 20

type programApi struct {
	store *program.Store
}

func registerProgramAPI(g *echo.Group, store *program.Store) {
	api := programApi{store: store}

	pg := g.Group("/programs")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.DELETE("/:id", api.destroy)
}

func (api *programApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.List())
}

func (api *programApi) create(ctx echo.Context) error {
	var data program.NewProgram
	if err := bind(ctx, &data, "NewProgram"); err != nil {
		return err
	}
	prog := api.store.AddProgram(ctx.Request().Context(), data)
	return ctx.JSON(http.StatusCreated, prog)
}

func (api *programApi) destroy(ctx echo.Context) error {
	api.store.RemoveProgram(ctx.Request().Context(), ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}

type catalogApi struct {
	catalog *catalog.Catalog
}

func registerCatalogAPI(g *echo.Group, cat *catalog.Catalog) {
	api := catalogApi{catalog: cat}

	ug := g.Group("/universities")
	ug.GET("", api.query)
	ug.GET("/:id", api.retrieve)
}

func (api *catalogApi) query(ctx echo.Context) error {
	found := api.catalog.Search(ctx.QueryParam("search"), queryInt(ctx, "limit", defaultSearchLimit))
	return ctx.JSON(http.StatusOK, found)
}

func (api *catalogApi) retrieve(ctx echo.Context) error {
	uni, err := api.catalog.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, uni)
}

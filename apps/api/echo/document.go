package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-apply/core/application"
	"github.com/trezcool/masomo-apply/core/booking"
	"github.com/trezcool/masomo-apply/core/document"
)

type documentApi struct {
	library      *document.Library
	applications *application.Store
}

func registerDocumentAPI(g *echo.Group, library *document.Library, apps *application.Store) {
	api := documentApi{library: library, applications: apps}

	dg := g.Group("/documents")
	dg.GET("", api.query)
	dg.POST("", api.create)
	dg.GET("/:id", api.retrieve)
	dg.DELETE("/:id", api.destroy)
}

func (api *documentApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.library.List())
}

func (api *documentApi) retrieve(ctx echo.Context) error {
	doc, err := api.library.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, doc)
}

func (api *documentApi) create(ctx echo.Context) error {
	var data document.NewDocument
	if err := bind(ctx, &data, "NewDocument"); err != nil {
		return err
	}
	doc := api.library.Add(ctx.Request().Context(), data)
	return ctx.JSON(http.StatusCreated, doc)
}

// destroy removes the document and clears the supplement links pointing at it.
// The two stores are updated one after the other, not atomically.
func (api *documentApi) destroy(ctx echo.Context) error {
	id := ctx.Param("id")
	if api.library.Remove(ctx.Request().Context(), id) {
		api.applications.UnlinkDocument(ctx.Request().Context(), id)
	}
	return ctx.NoContent(http.StatusNoContent)
}

type sessionApi struct {
	calendar *booking.Calendar
}

func registerSessionAPI(g *echo.Group, cal *booking.Calendar) {
	api := sessionApi{calendar: cal}

	sg := g.Group("/sessions")
	sg.GET("", api.query)
	sg.POST("/:id/book", api.book)
}

func (api *sessionApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.calendar.Slots())
}

func (api *sessionApi) book(ctx echo.Context) error {
	slot, err := api.calendar.Book(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, slot)
}

package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/core/application"
	"github.com/trezcool/masomo-apply/core/catalog"
	"github.com/trezcool/masomo-apply/core/document"
	"github.com/trezcool/masomo-apply/core/export"
	"github.com/trezcool/masomo-apply/core/profile"
	"github.com/trezcool/masomo-apply/core/program"
)

var (
	errUnknownUniversity = "unknown university"
	errUnknownProgram    = "unknown program"
	errUnknownDocument   = "unknown document"
)

type applicationApi struct {
	store     *application.Store
	programs  *program.Store
	documents document.Source
	catalog   *catalog.Catalog
}

// applicationView is an application with its target resolved at read time.
// University stays null for program applications.
type applicationView struct {
	application.Application
	University *catalog.University `json:"university"`
	Program    *program.Program    `json:"program,omitempty"`
}

type notesUpdate struct {
	Notes string `json:"notes" validate:"max=2000"`
}

func registerApplicationAPI(
	g *echo.Group,
	store *application.Store,
	programs *program.Store,
	documents document.Source,
	cat *catalog.Catalog,
) {
	api := applicationApi{store: store, programs: programs, documents: documents, catalog: cat}

	ag := g.Group("/applications")
	ag.GET("", api.query)
	ag.POST("", api.create)

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy)
	dg.PUT("/status", api.updateStatus)
	dg.PUT("/majors", api.updateMajors)
	dg.PUT("/notes", api.updateNotes)
	dg.POST("/supplements", api.addSupplement)
	dg.DELETE("/supplements/:sid", api.removeSupplement)
	dg.PUT("/supplements/:sid/link", api.linkSupplement)
}

func (api *applicationApi) view(app application.Application) applicationView {
	src := export.ResolveApplication(app, api.catalog, api.programs, profile.Personal{})
	return applicationView{Application: app, University: src.University, Program: src.Program}
}

// Handlers

func (api *applicationApi) query(ctx echo.Context) error {
	apps := api.store.List()
	views := make([]applicationView, len(apps))
	for i, app := range apps {
		views[i] = api.view(app)
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *applicationApi) retrieve(ctx echo.Context) error {
	app, err := api.store.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.view(app))
}

func (api *applicationApi) create(ctx echo.Context) error {
	var data application.NewApplication
	if err := bind(ctx, &data, "NewApplication"); err != nil {
		return err
	}
	if err := api.checkEntity(data); err != nil {
		return err
	}
	app := api.store.AddApplication(ctx.Request().Context(), data)
	return ctx.JSON(http.StatusCreated, api.view(app))
}

// checkEntity makes sure the new application points at something that exists, at creation time only.
func (api *applicationApi) checkEntity(data application.NewApplication) error {
	id := core.CleanString(data.UniversityID)
	if data.EntityType == application.EntityProgram {
		if api.programs.Lookup(id) != nil {
			return nil
		}
		return core.NewValidationError(nil, core.FieldError{Field: "universityId", Error: errUnknownProgram})
	}
	if _, err := api.catalog.Get(id); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "universityId", Error: errUnknownUniversity})
	}
	return nil
}

func (api *applicationApi) destroy(ctx echo.Context) error {
	api.store.RemoveApplication(ctx.Request().Context(), ctx.Param("id"))
	return ctx.NoContent(http.StatusNoContent)
}

func (api *applicationApi) updateStatus(ctx echo.Context) error {
	var data application.StatusUpdate
	if err := bind(ctx, &data, "StatusUpdate"); err != nil {
		return err
	}
	api.store.UpdateStatus(ctx.Request().Context(), ctx.Param("id"), data.Status)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *applicationApi) updateMajors(ctx echo.Context) error {
	var data application.Majors
	if err := bind(ctx, &data, "Majors"); err != nil {
		return err
	}
	api.store.UpdateMajors(ctx.Request().Context(), ctx.Param("id"), data)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *applicationApi) updateNotes(ctx echo.Context) error {
	var data notesUpdate
	if err := bind(ctx, &data, "notesUpdate"); err != nil {
		return err
	}
	api.store.UpdateNotes(ctx.Request().Context(), ctx.Param("id"), data.Notes)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *applicationApi) addSupplement(ctx echo.Context) error {
	var data application.NewSupplement
	if err := bind(ctx, &data, "NewSupplement"); err != nil {
		return err
	}
	sup, ok := api.store.AddSupplement(ctx.Request().Context(), ctx.Param("id"), data.Title)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusCreated, sup)
}

func (api *applicationApi) removeSupplement(ctx echo.Context) error {
	api.store.RemoveSupplement(ctx.Request().Context(), ctx.Param("id"), ctx.Param("sid"))
	return ctx.NoContent(http.StatusNoContent)
}

func (api *applicationApi) linkSupplement(ctx echo.Context) error {
	var data application.LinkUpdate
	if err := bind(ctx, &data, "LinkUpdate"); err != nil {
		return err
	}
	if data.DocumentID != nil {
		if _, err := api.documents.Get(*data.DocumentID); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "documentId", Error: errUnknownDocument})
		}
	}
	api.store.LinkSupplement(ctx.Request().Context(), ctx.Param("id"), ctx.Param("sid"), data.DocumentID)
	return ctx.NoContent(http.StatusNoContent)
}

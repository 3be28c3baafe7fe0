package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core/application"
	"github.com/trezcool/masomo-apply/core/catalog"
	"github.com/trezcool/masomo-apply/core/document"
	"github.com/trezcool/masomo-apply/core/export"
	"github.com/trezcool/masomo-apply/core/profile"
	"github.com/trezcool/masomo-apply/core/program"
	metricsvc "github.com/trezcool/masomo-apply/services/metrics"
)

const mimePDF = "application/pdf"

type exportApi struct {
	profile      *profile.Store
	applications *application.Store
	programs     *program.Store
	documents    document.Source
	catalog      *catalog.Catalog
	metrics      *metricsvc.Metrics
}

func registerExportAPI(g *echo.Group, api exportApi) {
	eg := g.Group("/export", noStoreMiddleware)
	eg.GET("/profile", api.profilePDF)
	eg.GET("/profile/description", api.profileDescription)
	eg.GET("/applications/:id", api.applicationPDF)
	eg.GET("/applications/:id/description", api.applicationDescription)
}

// Handlers

func (api *exportApi) profilePDF(ctx echo.Context) error {
	data := api.profile.Data()
	desc := export.RenderProfile(data, api.documents.List())
	name := export.ProfileFilename(data.Personal.FirstName, data.Personal.LastName)
	return api.sendPDF(ctx, "profile", desc, name)
}

func (api *exportApi) profileDescription(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, export.RenderProfile(api.profile.Data(), api.documents.List()))
}

func (api *exportApi) applicationPDF(ctx echo.Context) error {
	src, err := api.applicationSource(ctx.Param("id"))
	if err != nil {
		return err
	}
	desc := export.RenderApplication(src, api.linkedDocuments(src.Application))
	name := export.ApplicationFilename(src.TargetName(), src.Student.LastName)
	return api.sendPDF(ctx, "application", desc, name)
}

func (api *exportApi) applicationDescription(ctx echo.Context) error {
	src, err := api.applicationSource(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, export.RenderApplication(src, api.linkedDocuments(src.Application)))
}

func (api *exportApi) applicationSource(id string) (export.ApplicationSource, error) {
	app, err := api.applications.Get(id)
	if err != nil {
		return export.ApplicationSource{}, err
	}
	return export.ResolveApplication(app, api.catalog, api.programs, api.profile.Data().Personal), nil
}

func (api *exportApi) linkedDocuments(app application.Application) []document.Document {
	var ids []string
	for _, s := range app.Supplements {
		if s.LinkedDocumentID != nil {
			ids = append(ids, *s.LinkedDocumentID)
		}
	}
	return document.Linked(api.documents, ids)
}

// sendPDF serializes desc fully before writing anything: a failed export never sends a partial file.
func (api *exportApi) sendPDF(ctx echo.Context, kind string, desc export.Description, filename string) error {
	data, err := export.SerializePDF(desc)
	api.metrics.Exported(kind, err)
	if err != nil {
		return errors.Wrapf(err, "exporting %s", kind)
	}

	disposition := "attachment"
	if queryBool(ctx, "inline") {
		disposition = "inline"
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("%s; filename=%q", disposition, filename))
	return ctx.Blob(http.StatusOK, mimePDF, data)
}

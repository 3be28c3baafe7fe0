package shared

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/core/application"
	"github.com/trezcool/masomo-apply/core/booking"
	"github.com/trezcool/masomo-apply/core/catalog"
	"github.com/trezcool/masomo-apply/core/document"
	"github.com/trezcool/masomo-apply/core/profile"
	"github.com/trezcool/masomo-apply/core/program"
	metricsvc "github.com/trezcool/masomo-apply/services/metrics"
	"github.com/trezcool/masomo-apply/storage"
)

// App holds the stores and services shared by the API and the admin CLI.
type App struct {
	Conf      *core.Config
	Logger    core.Logger
	Storage   core.Storage
	Validator *core.Validator
	Schemas   *profile.Schemas
	Metrics   *metricsvc.Metrics

	Profile      *profile.Store
	Applications *application.Store
	Programs     *program.Store
	Documents    *document.Library
	Catalog      *catalog.Catalog
	Calendar     *booking.Calendar
}

// Open opens the configured storage and hydrates every store from it.
func Open(ctx context.Context, conf *core.Config, logger core.Logger) (*App, error) {
	st, err := storage.Open(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening storage")
	}
	app, err := New(ctx, conf, logger, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return app, nil
}

// New hydrates every store from st.
func New(ctx context.Context, conf *core.Config, logger core.Logger, st core.Storage) (*App, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, errors.Wrap(err, "loading catalog")
	}

	metrics := metricsvc.New()
	validator := core.NewValidator()

	return &App{
		Conf:      conf,
		Logger:    logger,
		Storage:   st,
		Validator: validator,
		Schemas:   profile.NewSchemas(validator),
		Metrics:   metrics,

		Profile:      profile.NewStore(ctx, st, logger, metrics),
		Applications: application.NewStore(ctx, st, logger, metrics),
		Programs:     program.NewStore(ctx, st, logger, metrics),
		Documents:    document.NewLibrary(ctx, st, logger, metrics),
		Catalog:      cat,
		Calendar:     booking.NewCalendar(core.NowFunc().Add(24*time.Hour), conf.Booking.Days, conf.Booking.Delay),
	}, nil
}

func (app *App) Close() error {
	return app.Storage.Close()
}

package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/core/application"
	"github.com/trezcool/masomo-apply/core/booking"
	"github.com/trezcool/masomo-apply/core/catalog"
	"github.com/trezcool/masomo-apply/core/document"
	"github.com/trezcool/masomo-apply/core/profile"
	"github.com/trezcool/masomo-apply/core/program"
	metricsvc "github.com/trezcool/masomo-apply/services/metrics"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		Validator      *core.Validator
		Schemas        *profile.Schemas
		Profile        *profile.Store
		Applications   *application.Store
		Programs       *program.Store
		Documents      *document.Library
		Catalog        *catalog.Catalog
		Calendar       *booking.Calendar
		Metrics        *metricsvc.Metrics
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	if deps.Metrics == nil {
		deps.Metrics = metricsvc.New()
	}
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Validator = requestValidator{v: s.deps.Validator}
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", s.home)
	s.app.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.deps.Metrics.Registry, promhttp.HandlerOpts{})))

	v1 := s.app.Group("/v1")
	v1.GET("/status", s.status)

	registerProfileAPI(v1, s.deps.Profile, s.deps.Schemas)
	registerApplicationAPI(v1, s.deps.Applications, s.deps.Programs, s.deps.Documents, s.deps.Catalog)
	registerProgramAPI(v1, s.deps.Programs)
	registerCatalogAPI(v1, s.deps.Catalog)
	registerDocumentAPI(v1, s.deps.Documents, s.deps.Applications)
	registerSessionAPI(v1, s.deps.Calendar)
	registerExportAPI(v1, exportApi{
		profile:      s.deps.Profile,
		applications: s.deps.Applications,
		programs:     s.deps.Programs,
		documents:    s.deps.Documents,
		catalog:      s.deps.Catalog,
		metrics:      s.deps.Metrics,
	})
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error { return s.errors }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+"!")
}

// status reports each store's last persistence outcome.
func (s *server) status(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, []core.PersistStatus{
		s.deps.Profile.PersistStatus(),
		s.deps.Applications.PersistStatus(),
		s.deps.Programs.PersistStatus(),
		s.deps.Documents.PersistStatus(),
	})
}

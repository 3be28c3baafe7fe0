package main

import (
	"context"
	"fmt"

	"github.com/trezcool/masomo-apply/apps/api/echo"
	"github.com/trezcool/masomo-apply/apps/shared"
	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/services/logger"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zapLogger := logsvc.NewZapLogger(conf.Log.Level, conf.Log.Format)
	logger := logsvc.NewRollbarLogger(zapLogger, conf)
	defer logger.Close()

	// set up stores
	app, err := shared.Open(context.Background(), conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up stores: %v", err), err)
	}
	defer func() {
		if err = app.Close(); err != nil {
			logger.Error("failed to close storage", err)
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build), map[string]interface{}{
		"env":     conf.Env,
		"storage": conf.Storage.Driver,
	})
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:         conf,
		Logger:       logger,
		Validator:    app.Validator,
		Schemas:      app.Schemas,
		Profile:      app.Profile,
		Applications: app.Applications,
		Programs:     app.Programs,
		Documents:    app.Documents,
		Catalog:      app.Catalog,
		Calendar:     app.Calendar,
		Metrics:      app.Metrics,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

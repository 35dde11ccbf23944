package app

import (
	"context"
	"io"
	"net/http"

	"gorm.io/gorm"

	"github.com/olusolaa/cloud-resource-api/internal/adapters/store/rdb"
	"github.com/olusolaa/cloud-resource-api/internal/config"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
	jsonreport "github.com/olusolaa/cloud-resource-api/internal/reporting/json"
	"github.com/olusolaa/cloud-resource-api/internal/reporting/text"
	"github.com/olusolaa/cloud-resource-api/internal/server"
)

// Application is the wired service.
type Application struct {
	Config  *config.Config
	Logger  ports.Logger
	Router  *router.Router
	Handler http.Handler

	db *gorm.DB
}

// Serve runs the HTTP server until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	s := server.New(a.Handler, server.Options{
		Address:         a.Config.Server.Address,
		ReadTimeout:     a.Config.Server.ReadTimeout,
		WriteTimeout:    a.Config.Server.WriteTimeout,
		ShutdownTimeout: a.Config.Server.ShutdownTimeout,
	}, a.Logger.WithFields(map[string]any{"component": "server"}))
	return s.Run(ctx)
}

// ReportRoutes prints the generated route table in format ("text" or
// "json").
func (a *Application) ReportRoutes(ctx context.Context, format string, noColor bool, w io.Writer) error {
	routes := a.Router.AllRoutes()
	base := a.Config.Server.BasePath
	switch format {
	case text.ReporterTypeText, "":
		return text.NewReporter(text.Config{NoColor: noColor, BasePath: base}, w, a.Logger).Report(ctx, routes)
	case jsonreport.ReporterTypeJSON:
		return jsonreport.NewReporter(jsonreport.Config{BasePath: base}, w, a.Logger).Report(ctx, routes)
	default:
		return errors.NewUserFacing(errors.CodeInvalidInput, "unsupported output format: "+format, "Supported: text, json")
	}
}

// Migrate applies the database schema. It needs database.url to be set.
func (a *Application) Migrate(ctx context.Context) error {
	if a.db == nil {
		return errors.NewUserFacing(errors.CodeConfigValidation, "no database configured", "Set database.url (e.g. sqlite:./cloud-api.db).")
	}
	if err := rdb.AutoMigrate(a.db.WithContext(ctx)); err != nil {
		return err
	}
	a.Logger.Infof(ctx, "Database schema is up to date")
	return nil
}

// Close releases the database connection, if any.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return errors.Wrap(err, errors.CodeStoreError, "failed to access database handle")
	}
	return sqlDB.Close()
}

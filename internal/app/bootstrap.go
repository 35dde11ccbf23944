package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/aws"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/platform/memory"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/store/inmem"
	"github.com/olusolaa/cloud-resource-api/internal/adapters/store/rdb"
	"github.com/olusolaa/cloud-resource-api/internal/api"
	"github.com/olusolaa/cloud-resource-api/internal/config"
	"github.com/olusolaa/cloud-resource-api/internal/core/accessor"
	"github.com/olusolaa/cloud-resource-api/internal/core/ports"
	"github.com/olusolaa/cloud-resource-api/internal/core/resource"
	"github.com/olusolaa/cloud-resource-api/internal/core/router"
	"github.com/olusolaa/cloud-resource-api/internal/core/service"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
	"github.com/olusolaa/cloud-resource-api/internal/log"
	"github.com/olusolaa/cloud-resource-api/internal/metrics"
	"github.com/olusolaa/cloud-resource-api/internal/server"
)

// LoadConfig decodes v on top of the defaults, applies command line
// overrides and validates the result.
func LoadConfig(ctx context.Context, v *viper.Viper) (*config.Config, error) {
	cfg := config.DefaultConfig()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}
	if err := applyOverrides(cfg, v); err != nil {
		return nil, err
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildApplicationFromViper wires every component from configuration.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg, err := LoadConfig(ctx, v)
	if err != nil {
		return nil, err
	}

	logger, err := log.NewLogger(log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat, Service: log.DefaultConfig().Service})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	return Build(ctx, cfg, logger)
}

// Build wires the application from an already validated configuration.
func Build(ctx context.Context, cfg *config.Config, logger ports.Logger) (*Application, error) {
	registry, err := newPlatformRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}
	factory, err := registry.Get(cfg.Platform.Type)
	if err != nil {
		return nil, err
	}
	logger.Infof(ctx, "Using %s platform provider", cfg.Platform.Type)

	repo, db, err := openApplicationRepository(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	apiRouter, err := api.NewRouter(api.Deps{
		Applications: repo,
		Permission:   permissionFor(cfg.Permissions),
	}, router.WithTrailingSlash(cfg.Server.TrailingSlash))
	if err != nil {
		closeDB(db)
		return nil, err
	}

	recorder, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		closeDB(db)
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to register metrics")
	}

	handler, err := newHandler(cfg, apiRouter, router.Dependencies{
		Factory:     factory,
		Credentials: defaultCredentials(cfg.Platform),
		Logger:      logger.WithFields(map[string]any{"component": "api"}),
	}, recorder, logger)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Router:  apiRouter,
		Handler: handler,
		db:      db,
	}, nil
}

func newPlatformRegistry(cfg *config.Config, logger ports.Logger) (*service.PlatformRegistry, error) {
	registry := service.NewPlatformRegistry()

	awsLog := logger.WithFields(map[string]any{"provider": aws.ProviderTypeAWS})
	awsFactory := aws.NewFactory(aws.Settings{
		Region:   cfg.Platform.AWS.Region,
		Endpoint: cfg.Platform.AWS.Endpoint,
		RPS:      cfg.Platform.AWS.RPS,
	}, awsLog)
	if err := registry.Register(config.PlatformAWS, awsFactory); err != nil {
		return nil, err
	}

	var opts []memory.FactoryOption
	if keys := accessKeyPairs(cfg.Platform.Memory.AccessKeys); len(keys) > 0 {
		opts = append(opts, memory.WithAccessKeys(keys))
	}
	memLog := logger.WithFields(map[string]any{"provider": memory.ProviderTypeMemory})
	memFactory := memory.NewFactory(memory.NewSeededCloud(), cfg.Platform.Memory.DefaultRegion, memLog, opts...)
	if err := registry.Register(config.PlatformMemory, memFactory); err != nil {
		return nil, err
	}
	return registry, nil
}

func accessKeyPairs(entries []string) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if key, secret, ok := strings.Cut(e, ":"); ok {
			out[key] = secret
		}
	}
	return out
}

func defaultCredentials(p config.PlatformConfig) accessor.Credentials {
	creds := accessor.Credentials{Provider: p.Type}
	switch p.Type {
	case config.PlatformAWS:
		creds.Region = p.AWS.Region
	case config.PlatformMemory:
		creds.Region = p.Memory.DefaultRegion
	}
	return creds
}

func permissionFor(p config.PermissionsConfig) resource.ObjectPermission {
	if p.ProtectedTagKey == "" {
		return resource.AllowAny{}
	}
	return resource.TagGuard{Key: p.ProtectedTagKey, Value: p.ProtectedTagValue}
}

// openApplicationRepository returns the gorm store when a database URL is
// configured and the in-memory store otherwise. db is nil for the latter.
func openApplicationRepository(ctx context.Context, cfg config.DatabaseConfig, logger ports.Logger) (ports.ApplicationRepository, *gorm.DB, error) {
	if cfg.URL == "" {
		logger.Warnf(ctx, "No database configured; applications are kept in memory and lost on restart")
		return inmem.NewApplicationRepository(), nil, nil
	}
	db, err := rdb.OpenFromURL(cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := rdb.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, nil, err
	}
	logger.Infof(ctx, "Using database %s for applications", cfg.URL)
	return rdb.NewApplicationRepository(db), db, nil
}

func closeDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newHandler(cfg *config.Config, apiRouter *router.Router, deps router.Dependencies, recorder *metrics.Recorder, logger ports.Logger) (http.Handler, error) {
	// Object keys may contain "//" or "/./", so paths are matched as sent.
	root := mux.NewRouter().SkipClean(true)
	observe := server.Observe(logger.WithFields(map[string]any{"component": "http"}), recorder)
	root.Use(observe)
	// mux does not run middleware for unmatched requests.
	root.NotFoundHandler = observe(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resource.WriteError(w, errors.NewUserFacing(errors.CodeResourceNotFound, fmt.Sprintf("no route matches %s", r.URL.Path), ""))
	}))
	if cfg.Server.MetricsPath != "" {
		root.Handle(cfg.Server.MetricsPath, recorder.Handler()).Methods(http.MethodGet).Name("metrics")
	}

	mountOn := root
	if cfg.Server.BasePath != "" && cfg.Server.BasePath != "/" {
		mountOn = root.PathPrefix(cfg.Server.BasePath).Subrouter()
	}
	if err := apiRouter.Mount(mountOn, deps); err != nil {
		return nil, err
	}
	return root, nil
}

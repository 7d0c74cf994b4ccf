// Command httpd runs the brand query classification service: it loads
// the rule catalog, accepts ad-hoc classify requests and kwatch webhooks,
// and drains the ingestion queue into the durable document store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/brandquery/internal/api"
	"github.com/jonesrussell/brandquery/internal/classifier"
	"github.com/jonesrussell/brandquery/internal/config"
	"github.com/jonesrussell/brandquery/internal/httpserver"
	"github.com/jonesrussell/brandquery/internal/ingest"
	"github.com/jonesrussell/brandquery/internal/logger"
	"github.com/jonesrussell/brandquery/internal/store"
	"github.com/jonesrussell/brandquery/internal/telemetry"
)

func main() {
	cfg, err := config.LoadDefault(config.GetConfigPath("config.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	defer log.Sync()

	log.Info("starting brandquery",
		logger.String("service", cfg.Service.Name),
		logger.Int("port", cfg.Service.Port),
	)

	cls := classifier.New(log)
	if err := cls.Load(cfg.Query.CatalogPath); err != nil {
		log.Error("initial catalog load failed; starting uninitialized", logger.Error(err))
	} else {
		log.Info("rule catalog ready", logger.Int("rules", cls.QueryCount()))
	}

	st, err := openStore(cfg.Store)
	if err != nil {
		log.Error("open document store", logger.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	var mirror *store.ESMirror
	if cfg.Store.ElasticsearchURL != "" {
		mirror, err = store.NewESMirror(cfg.Store.ElasticsearchURL, cfg.Store.ElasticsearchIdx, log)
		if err != nil {
			log.Warn("elasticsearch mirror disabled", logger.Error(err))
			mirror = nil
		}
	}

	tel := telemetry.NewProvider()

	queue := ingest.NewQueue(cfg.Ingest.QueueCapacity)
	pipeline := ingest.NewPipeline(queue, cls, st, mirror, tel, log, ingest.Config{
		BatchSize:     cfg.Ingest.BatchSize,
		BatchInterval: cfg.Ingest.BatchInterval,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := pipeline.Start(ctx); err != nil {
		log.Error("start ingestion pipeline", logger.Error(err))
		os.Exit(1)
	}
	defer pipeline.Stop()

	handler := api.NewHandler(cls, queue, cfg.Query.CatalogPath, tel, log)

	serverCfg := httpserver.NewConfig(cfg.Service.Name, cfg.Service.Port)
	serverCfg.Debug = cfg.Service.Debug
	serverCfg.ServiceVersion = cfg.Service.Version

	srv := httpserver.NewServer(serverCfg, log, func(router *gin.Engine) {
		api.SetupRoutes(router, handler, tel.Handler())
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Error("server error", logger.Error(err))
		os.Exit(1)
	case sig := <-shutdown:
		log.Info("shutdown signal received", logger.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer shutdownCancel()

		pipeline.Stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", logger.Error(err))
			os.Exit(1)
		}
		log.Info("server stopped gracefully")
	}
}

func openStore(cfg config.Store) (store.Store, error) {
	switch cfg.Driver {
	case "postgres":
		return store.NewPostgresStore(store.PostgresConfig{
			Host:            cfg.Host,
			Port:            cfg.Port,
			User:            cfg.User,
			Password:        cfg.Password,
			Database:        cfg.Database,
			SSLMode:         cfg.SSLMode,
			MaxOpenConns:    cfg.MaxConnections,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
	default:
		return store.NewSQLiteStore(cfg.SQLitePath)
	}
}

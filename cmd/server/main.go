package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignite/mailroom/internal/api"
	"github.com/ignite/mailroom/internal/config"
	"github.com/ignite/mailroom/internal/database"
	"github.com/ignite/mailroom/internal/pkg/logger"
	"github.com/ignite/mailroom/internal/repository/postgres"
	"github.com/ignite/mailroom/internal/service/campaign"
	"github.com/ignite/mailroom/internal/service/template"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog, closeLog, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	appLog.Info("database ready", "migrations_dir", cfg.Database.MigrationsDir)

	campaignSvc := campaign.NewService(postgres.NewCampaignRepo(db), appLog)
	templateSvc := template.NewService(postgres.NewTemplateRepo(db), appLog)

	handlers := api.NewHandlers(campaignSvc, templateSvc, appLog, cfg.Mailbox.FetchLimit)
	router := api.SetupRoutes(handlers, cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := api.NewServer(addr, router, appLog)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-done:
		appLog.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("shutdown failed", "error", err.Error())
	}
}

// buildLogger wires the configured level, optional log file, and PII
// redaction. The returned func closes the log file, if any.
func buildLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	sink := io.Writer(os.Stdout)
	closeLog := func() {}

	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		sink = io.MultiWriter(os.Stdout, f)
		closeLog = func() { f.Close() }
	}

	return logger.New(logger.Options{
		Level:     logger.ParseLevel(cfg.Logging.Level),
		Sink:      sink,
		RedactPII: cfg.Logging.RedactPII,
	}), closeLog, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"comrent-backend/config"
	"comrent-backend/internal/api"
	"comrent-backend/internal/history"
	"comrent-backend/internal/invoice"
	"comrent-backend/internal/model"
	"comrent-backend/internal/notify"
	"comrent-backend/internal/poll"
	"comrent-backend/internal/session"
	"comrent-backend/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := loadConfig()

	// All state is in-process and is rebuilt from the seed on every boot.
	registry := store.NewRegistry(cfg.UnitNames()...)
	machine := session.NewMachine(registry)
	conversations := store.NewConversationStore()
	pricing := store.NewPricingStore(cfg.Seed.Pricing)
	audit := store.NewAuditLog()
	templates := store.NewTemplateStore(model.EmailTemplate{
		Subject: cfg.Invoice.Subject,
		Body:    cfg.Invoice.Body,
	})

	archive, err := history.Open(cfg.History.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session archive")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	archiver := history.NewWorker(cfg.WorkerPool.Size, archive)
	archiver.Start(ctx)

	var mailer invoice.Mailer = invoice.LogMailer{}
	if cfg.Mailer.Enabled {
		mailer = invoice.NewSMTPMailer(invoice.SMTPConfig{
			Host:     cfg.Mailer.Host,
			Port:     cfg.Mailer.Port,
			Username: cfg.Mailer.Username,
			Password: cfg.Mailer.Password,
			From:     cfg.Mailer.From,
		})
		log.Info().Str("host", cfg.Mailer.Host).Msg("SMTP mailer enabled")
	}
	invoices := invoice.NewService(pricing, templates, audit, mailer, cfg.Invoice.CompanyName)

	// The admin-side watcher: poll the registry and diff snapshots into
	// notifications and audit entries.
	detector := notify.NewDetector(audit)
	watcher := &poll.Poller{
		Source: poll.SourceFunc(func(ctx context.Context) ([]model.Unit, error) {
			return registry.List(), nil
		}),
		Interval: cfg.Watch.Interval,
		OnSnapshot: func(units []model.Unit, changed bool) {
			if changed {
				detector.Observe(units)
			}
		},
	}
	go watcher.Run(ctx)

	handler := &api.Handler{
		Registry:      registry,
		Machine:       machine,
		Conversations: conversations,
		Pricing:       pricing,
		Audit:         audit,
		Templates:     templates,
		Detector:      detector,
		History:       archive,
		Archiver:      archiver,
		Invoices:      invoices,
	}
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Int("units", cfg.Seed.UnitCount).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown failed")
	}
	log.Info().Msg("server gracefully stopped")
}

func loadConfig() *config.Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		if os.IsNotExist(err) && os.Getenv("CONFIG_PATH") == "" {
			log.Info().Msg("no config file found, using defaults")
			return config.Default()
		}
		log.Fatal().Err(err).Str("path", path).Msg("failed to load configuration")
	}
	log.Info().Str("path", path).Msg("configuration loaded")
	return cfg
}

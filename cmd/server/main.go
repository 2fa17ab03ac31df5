package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/srrview/backend/internal/auth"
	"github.com/srrview/backend/internal/config"
	httpapi "github.com/srrview/backend/internal/http"
	"github.com/srrview/backend/internal/service"
	"github.com/srrview/backend/internal/sheet"
	"github.com/srrview/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "srrview-backend").Logger()

	if cfg.SheetURL == "" {
		logger.Fatal().Msg("SHEET_URL is required")
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid business time zone")
	}

	client := &sheet.Client{URL: cfg.SheetURL}
	normalizer := service.NewNormalizer(location, cfg.WorkdayStartHour, cfg.WorkdayEndHour)
	snapshots := store.New(client, normalizer, cfg.CacheTTL, logger)

	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	snapshots.StartRefresher(refreshCtx, cfg.RefreshInterval)

	sessions := auth.NewManager(auth.ParseCredentials(cfg.AuthCredentials))
	dashboard := &service.DashboardService{
		Snapshots:       snapshots,
		Logger:          logger,
		MissingBaseline: service.MissingBaselinePolicy(cfg.DeltaMissingBaseline),
	}

	router := httpapi.Router(cfg, snapshots, dashboard, sessions, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopRefresh()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}

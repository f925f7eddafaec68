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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"medigrid/internal/api"
	"medigrid/internal/config"
	"medigrid/internal/events"
	"medigrid/internal/hours"
	"medigrid/internal/metrics"
	"medigrid/internal/model"
	"medigrid/internal/schedule"
	"medigrid/internal/selection"
	"medigrid/internal/store"
	"medigrid/internal/timegrid"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("MEDIGRID_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var persistence schedule.Store = db
	if cfg.Redis.Address != "" && cfg.Redis.CacheTTLSeconds > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		persistence = store.NewCachedStore(db, rdb, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second)
		logger.Info().Str("address", cfg.Redis.Address).Msg("redis cache enabled")
	}

	// Initial load + hot reload of the business-hours table.
	table := hours.Default()
	if err := config.WatchHours(ctx, cfg.HoursPath, 30*time.Second, func(updated *config.HoursConfig) {
		if updated == nil {
			return
		}
		table.Replace(updated.Weekdays)
		logger.Info().Time("reloaded_at", time.Now()).Msg("business hours reloaded")
	}); err != nil {
		logger.Warn().Err(err).Msg("hours config unavailable, using default table")
	}

	slots, err := timegrid.ExtendSlots(cfg.Grid.BaseSlots, cfg.Grid.ExtendCount)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid base slot configuration")
	}

	staff := make(model.StaffList, 0, len(cfg.Staff))
	for _, s := range cfg.Staff {
		staff = append(staff, model.Staff{ID: s.ID, Name: s.Name, Color: s.Color})
	}

	axes := selection.Axes{
		Dates: visibleDates(time.Now(), cfg.Grid.Days),
		Staff: staff,
		Slots: slots,
	}

	bus := events.NewBus()
	bus.Subscribe(events.AppointmentCreated, logEvent(&logger, "appointment created"))
	bus.Subscribe(events.AppointmentDeleted, logEvent(&logger, "appointment deleted"))

	scheduler := schedule.New(persistence, staff, schedule.Config{
		UndoDepth:     cfg.Grid.UndoDepth,
		RejectOverlap: cfg.Grid.RejectOverlap,
	}, bus, &logger)
	if err := scheduler.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("initial appointment load failed")
	}

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewHTTPServer(scheduler, axes, table, cfg.Server.WriteRatePerSec, cfg.Server.WriteBurst, &logger),
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("api server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("api server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("api server shutdown error")
	}
}

// visibleDates builds the date axis: n consecutive days starting today.
func visibleDates(from time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, from.AddDate(0, 0, i).Format(model.DateFormat))
	}
	return dates
}

func logEvent(logger *zerolog.Logger, msg string) events.Handler {
	return func(e events.Event) error {
		logger.Debug().Str("type", e.Type).RawJSON("payload", e.Payload).Msg(msg)
		return nil
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	if port == 0 {
		port = 9091
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		logger.Info().Int("port", port).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

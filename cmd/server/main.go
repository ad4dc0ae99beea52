package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"congreso/internal/adapters/discord"
	"congreso/internal/adapters/rest"
	"congreso/internal/application"
	"congreso/internal/config"
	"congreso/internal/domain"
	"congreso/internal/infrastructure/database"
	"congreso/internal/infrastructure/i18n"
	"congreso/internal/infrastructure/memory"
	"congreso/internal/infrastructure/metrics"
	"congreso/internal/ports/output"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("❌ logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}
	defer closeStore()

	if missing := cfg.MissingWindows(); len(missing) > 0 {
		logger.Warn("windows not configured, actions they guard stay closed", zap.Strings("windows", missing))
	}

	tr := i18n.NewTranslator(cfg.DefaultLocale, logger.Named("i18n"))
	m := metrics.New(logger.Named("metrics"))
	windows := domain.NewWindows(cfg.Windows, cfg.AttendanceBefore, cfg.AttendanceAfter, nil)

	deps := application.Deps{
		Store:   store,
		Windows: windows,
		Logger:  logger,
		Metrics: m,
	}
	if cfg.DiscordEnabled() {
		notifier, err := discord.NewNotifier(cfg.DiscordToken, cfg.DiscordChannelID, tr, cfg.DefaultLocale, cfg.Location)
		if err != nil {
			logger.Fatal("discord notifier", zap.Error(err))
		}
		deps.Notifier = notifier
		logger.Info("✅ waitlist promotions announced on Discord", zap.String("channel_id", cfg.DiscordChannelID))
	}

	enrollments := application.NewEnrollmentService(deps)
	handler := rest.NewHandler(rest.Services{
		Participants: application.NewParticipantService(deps),
		Activities:   application.NewActivityService(deps),
		Enrollments:  enrollments,
		Attendance:   application.NewAttendanceService(deps),
		Teams:        application.NewTeamService(deps),
	}, windows, tr, cfg.Location, logger.Named("http"))

	if cfg.DiscordEnabled() {
		discordLogger := logger.Named("discord")
		bot, err := discord.NewBot(cfg.DiscordToken,
			discord.NewHandler(enrollments, tr, cfg.DefaultLocale, cfg.Location, discordLogger),
			discordLogger)
		if err != nil {
			logger.Fatal("discord bot", zap.Error(err))
		}
		go func() {
			if err := bot.Start(ctx); err != nil {
				discordLogger.Error("discord bot stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: rest.NewRouter(handler, rest.RouterOptions{
			Recorder:       m,
			MetricsHandler: promhttp.Handler(),
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("🚀 server listening", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := enrollments.Shutdown(shutdownCtx); err != nil {
		logger.Warn("pending promotion notifications dropped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.LogDevelopment {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(cfg.Level)
	return zcfg.Build()
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (output.UnitOfWork, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("using the in-memory store, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	pool, err := database.NewPool(ctx, database.PoolConfig{
		DSN:             cfg.DatabaseURL,
		MaxConns:        cfg.DBMaxConns,
		ConnectAttempts: cfg.DBConnectAttempts,
	}, logger.Named("db"))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("✅ connected to PostgreSQL")

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL, logger.Named("migrate")); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return database.NewStore(pool), pool.Close, nil
}

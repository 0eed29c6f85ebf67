package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"wayfinder.transitapp.org/internal/app"
	"wayfinder.transitapp.org/internal/appconf"
	"wayfinder.transitapp.org/internal/config"
	"wayfinder.transitapp.org/internal/logging"
	"wayfinder.transitapp.org/internal/metrics"
	"wayfinder.transitapp.org/internal/planner"
	"wayfinder.transitapp.org/internal/schedule"
	"wayfinder.transitapp.org/scheduledb"
)

func main() {
	var (
		configPath  string
		port        int
		envFlag     string
		apiKeysFlag string
		providerURL string
		gtfsSource  string
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.IntVar(&port, "port", 0, "API server port (overrides config)")
	flag.StringVar(&envFlag, "env", "", "Environment (test|development|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "", "Comma Separated API Keys (test, etc)")
	flag.StringVar(&providerURL, "provider-url", "", "Base URL of the bulk schedule provider")
	flag.StringVar(&gtfsSource, "gtfs-source", "", "URL or path of a static GTFS zip file")
	flag.Parse()

	// Flags flow through the same override path as real environment
	// variables, so precedence stays flag > env > file > default.
	setEnvFromFlag("PORT", portValue(port))
	setEnvFromFlag("ENV", envFlag)
	setEnvFromFlag("PROVIDER_URL", providerURL)
	setEnvFromFlag("GTFS_SOURCE", gtfsSource)

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if apiKeysFlag != "" {
		cfg.APIKeys = splitAndTrim(apiKeysFlag)
	}

	env := appconf.EnvFlagToEnvironment(cfg.Server.Env)
	level := slog.LevelDebug
	if env == appconf.Production {
		level = slog.LevelInfo
	}
	logger := logging.NewStructuredLogger(os.Stdout, level)

	collector := metrics.NewCollector()

	var cache schedule.SnapshotCache
	if cfg.Schedule.CachePath != "" {
		dbClient, err := scheduledb.NewClient(cfg.Schedule.CachePath, logger)
		if err != nil {
			logging.LogError(logger, "failed to open snapshot cache", err,
				slog.String("path", cfg.Schedule.CachePath))
			os.Exit(1)
		}
		defer logging.SafeCloseWithLogging(dbClient, logger, "close_snapshot_cache")
		cache = dbClient
	}

	var source schedule.Source
	if cfg.Schedule.ProviderURL != "" {
		source = schedule.NewClient(cfg.Schedule.ProviderURL, cfg.Schedule.FetchTimeout.Std())
	} else {
		source = schedule.NewStaticSource(cfg.Schedule.GtfsSource)
	}
	source = newMeteredSource(source, collector)

	manager, err := schedule.InitManager(source, cache, schedule.ManagerConfig{
		RefreshInterval: cfg.Schedule.RefreshInterval.Std(),
		WarmStart:       cfg.Schedule.WarmStart,
	}, logger)
	if err != nil {
		logging.LogError(logger, "failed to load schedule", err,
			slog.String("source", source.Source()))
		os.Exit(1)
	}
	defer manager.Shutdown()

	api := &restAPI{
		app: &app.Application{
			Config:          cfg,
			Logger:          logger,
			ScheduleManager: manager,
			Planner:         planner.New(tunablesFromConfig(cfg.Planner)),
			Metrics:         collector,
		},
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit

		logger.Info("shutting down server", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", env.String())
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logging.LogError(logger, "server failed", err)
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logging.LogError(logger, "shutdown failed", err)
	}
	logger.Info("server stopped")
}

// tunablesFromConfig applies the configured planner overrides on top of the
// engine defaults. Zero means "keep the default".
func tunablesFromConfig(pc config.PlannerConfig) planner.Tunables {
	tun := planner.DefaultTunables()
	if pc.MaxCandidatesPerSide > 0 {
		tun.MaxCandidatesPerSide = pc.MaxCandidatesPerSide
	}
	if pc.MaxResults > 0 {
		tun.MaxResults = pc.MaxResults
	}
	if pc.TransferPenaltyMinutes > 0 {
		tun.TransferPenaltyMinutes = pc.TransferPenaltyMinutes
	}
	if pc.WalkingWeight > 0 {
		tun.WalkingWeight = pc.WalkingWeight
	}
	return tun
}

func setEnvFromFlag(name, value string) {
	if value != "" {
		os.Setenv(name, value) // nolint:errcheck
	}
}

func portValue(port int) string {
	if port <= 0 {
		return ""
	}
	return strconv.Itoa(port)
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

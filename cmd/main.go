package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dartcorner/liveboard/config"
	"github.com/dartcorner/liveboard/db"
	"github.com/dartcorner/liveboard/handlers"
	"github.com/dartcorner/liveboard/live"
	"github.com/dartcorner/liveboard/repositories"
	api "github.com/dartcorner/liveboard/routes"
	"github.com/dartcorner/liveboard/scraper"
	"github.com/dartcorner/liveboard/services"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Duration("scrape_interval", cfg.ScrapeInterval))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	browser, err := scraper.NewBrowser(cfg.Headless)
	if err != nil {
		logger.Error("failed to start headless browser", slog.Any("error", err))
		os.Exit(1)
	}
	defer browser.Close()
	logger.Info("headless browser started", slog.Bool("headless", cfg.Headless))

	fetcher := scraper.NewFetcher(browser, cfg.SettleDelay, cfg.NavigationTimeout, logger)

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("websocket hub started")

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	groupMatchRepo := repositories.NewPostgresGroupMatchRepository(dbConn)
	statRepo := repositories.NewPostgresStatRepository(dbConn)
	logger.Info("repositories initialized")

	tournamentService := services.NewTournamentService(tournamentRepo)
	scrapeService := services.NewScrapeService(
		fetcher,
		matchRepo,
		groupRepo,
		groupMatchRepo,
		hub,
		cfg.DefaultLegsToWin,
		logger,
	)
	statsService := services.NewStatsService(fetcher, statRepo, hub, logger)

	runStats := services.NewRunStats()
	poller := services.NewPoller(
		services.PollerConfig{
			Interval:            cfg.ScrapeInterval,
			TournamentPause:     cfg.TournamentPause,
			StatsReportInterval: cfg.StatsReportInterval,
			StatsEveryCycles:    cfg.StatsEveryCycles,
		},
		tournamentRepo,
		scrapeService,
		statsService,
		runStats,
		logger,
	)
	logger.Info("services initialized")

	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(matchRepo)
	groupHandler := handlers.NewGroupHandler(groupRepo, groupMatchRepo)
	statHandler := handlers.NewStatHandler(statsService, tournamentService)
	statusHandler := handlers.NewStatusHandler(poller)
	webSocketHandler := handlers.NewWebSocketHandler(hub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		tournamentHandler,
		matchHandler,
		groupHandler,
		statHandler,
		statusHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", slog.String("address", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := poller.Run(gCtx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

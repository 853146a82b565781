package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"streak-pickem-go/config"
	"streak-pickem-go/database"
	"streak-pickem-go/events"
	"streak-pickem-go/handlers"
	"streak-pickem-go/logging"
	"streak-pickem-go/middleware"
	"streak-pickem-go/models"
	"streak-pickem-go/services"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(cfg.ToLoggingConfig())
	cfg.LogConfiguration()

	db, err := database.NewMongoConnection(cfg.ToDatabaseConfig())
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.TestConnection(); err != nil {
		logging.Warnf("Database test failed: %v", err)
	}

	// Repositories
	stateRepo := database.NewMongoStateRepository(db)
	leaderboardRepo := database.NewMongoLeaderboardRepository(db)
	checkRepo := database.NewMongoCheckRepository(db)

	// Cross-session broadcast channel
	broadcaster := events.NewBroadcaster()
	defer broadcaster.Close()

	// Services
	espnService := services.NewESPNService()

	var live services.UpcomingFetcher
	if !cfg.App.SimulationOnly {
		live = espnService
	} else {
		logging.Info("Simulation-only mode, live data disabled")
	}
	matchupService := services.NewMatchupService(live)
	if cfg.App.SportOverride != "" {
		matchupService.SetSportOverride(models.Sport(cfg.App.SportOverride))
	}

	leaderboardService := services.NewLeaderboardService(leaderboardRepo, broadcaster)
	sseHandler := handlers.NewSSEHandler()
	defer sseHandler.Stop()

	resultChecker := services.NewResultChecker(espnService, stateRepo, checkRepo, sseHandler, leaderboardService)
	defer resultChecker.Stop()

	pickService := services.NewPickService(stateRepo, matchupService, resultChecker, sseHandler, leaderboardService)
	sessionService := services.NewSessionService(cfg.Auth.JWTSecret)

	// Picks made before the last shutdown still resolve
	if cfg.App.ResumeChecks {
		resultChecker.ResumePending(context.Background())
	}

	relayCtx, cancelRelay := context.WithCancel(context.Background())
	defer cancelRelay()
	go sseHandler.RunLeaderboardRelay(relayCtx, broadcaster)

	// Handlers
	gameHandler := handlers.NewGameHandler(pickService, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService, pickService)
	authMiddleware := middleware.NewAuthMiddleware(sessionService)

	// Routes
	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)
	r.Use(authMiddleware.OptionalAuth)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/matchup", gameHandler.GetMatchup).Methods("GET")
	api.HandleFunc("/pick", gameHandler.MakePick).Methods("POST")
	api.HandleFunc("/state", gameHandler.GetState).Methods("GET")
	api.HandleFunc("/results", gameHandler.GetResults).Methods("GET")
	api.HandleFunc("/share", gameHandler.GetShareText).Methods("GET")
	api.HandleFunc("/preferences", gameHandler.UpdatePreferences).Methods("PUT")
	api.HandleFunc("/leaderboard", leaderboardHandler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/leaderboard/refresh", leaderboardHandler.RefreshLeaderboard).Methods("POST")

	r.HandleFunc("/events", sseHandler.Handle).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Infof("Server starting on %s", cfg.GetServerAddress())
		var err error
		if cfg.Server.UseTLS && !cfg.Server.BehindProxy {
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("Server shutdown error: %v", err)
	}
	logging.Info("Server stopped")
}

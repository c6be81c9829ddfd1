package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/civiclens/civitas-backend/internal/clients/ai"
	"github.com/civiclens/civitas-backend/internal/clients/rediscache"
	"github.com/civiclens/civitas-backend/internal/clients/search"
	"github.com/civiclens/civitas-backend/internal/db"
	"github.com/civiclens/civitas-backend/internal/handlers"
	"github.com/civiclens/civitas-backend/internal/logger"
	"github.com/civiclens/civitas-backend/internal/middleware"
	"github.com/civiclens/civitas-backend/internal/repos"
	"github.com/civiclens/civitas-backend/internal/scheduler"
	"github.com/civiclens/civitas-backend/internal/server"
	"github.com/civiclens/civitas-backend/internal/services"
	"github.com/civiclens/civitas-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	politicianRepo := repos.NewPoliticianRepo(thePG, log)
	officeRepo := repos.NewOfficeRepo(thePG, log)
	metricRepo := repos.NewMetricRepo(thePG, log)
	scoreRepo := repos.NewScoreRepo(thePG, log)
	rankingRepo := repos.NewRankingRepo(thePG, log)
	promiseRepo := repos.NewPromiseRepo(thePG, log)
	projectRepo := repos.NewProjectRepo(thePG, log)
	controversyRepo := repos.NewControversyRepo(thePG, log)
	voteRepo := repos.NewVoteRepo(thePG, log)
	userRepo := repos.NewUserRepo(thePG, log)
	verificationLogRepo := repos.NewVerificationLogRepo(thePG, log)

	// Clients; each of these is optional and the services degrade to
	// neutral behavior when one is missing.
	log.Info("Setting up Clients from main...")
	aiClient, err := ai.NewClient(log)
	if err != nil {
		log.Warn("Could not init AI client, verification and sentiment run degraded", "error", err)
		aiClient = nil
	}
	searchClient, err := search.NewClient(log)
	if err != nil {
		log.Warn("Could not init search client, media scoring will estimate", "error", err)
		searchClient = nil
	}
	signalCache, err := rediscache.NewCache(log)
	if err != nil {
		log.Warn("Could not init redis cache, external signals are uncached", "error", err)
		signalCache = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	sentimentService := services.NewSentimentService(log, aiClient, signalCache)
	mediaService := services.NewMediaService(log, aiClient, searchClient, signalCache)
	scoringService := services.NewScoringService(thePG, log, politicianRepo, officeRepo, metricRepo, scoreRepo, rankingRepo, sentimentService, mediaService)
	verificationService := services.NewVerificationService(thePG, log, aiClient, projectRepo, promiseRepo, controversyRepo, verificationLogRepo)
	submissionService := services.NewSubmissionService(thePG, log, politicianRepo, userRepo, projectRepo, promiseRepo, controversyRepo, verificationService)
	voteService := services.NewVoteService(thePG, log, voteRepo, projectRepo, promiseRepo, controversyRepo)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	submissionService.StartWorker(workerCtx)

	// Scheduler
	log.Info("Setting up Scheduler from main...")
	scoreInterval := utils.GetEnvAsDuration("SCORE_UPDATE_INTERVAL", 6*time.Hour, log)
	rankingInterval := utils.GetEnvAsDuration("RANKING_UPDATE_INTERVAL", 12*time.Hour, log)
	sched := scheduler.New(log)
	if err := sched.Register(handlers.JobScoreUpdate, scoreInterval, scoringService.UpdateAllScores); err != nil {
		log.Fatal("Could not register score_update job", "error", err)
	}
	if err := sched.Register(handlers.JobRankingUpdate, rankingInterval, scoringService.UpdateRankings); err != nil {
		log.Fatal("Could not register ranking_update job", "error", err)
	}
	if err := sched.Start(workerCtx); err != nil {
		log.Fatal("Could not start scheduler", "error", err)
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	politicianHandler := handlers.NewPoliticianHandler(log, politicianRepo, rankingRepo, officeRepo)
	scoringHandler := handlers.NewScoringHandler(log, scoringService, sched)
	schedulerHandler := handlers.NewSchedulerHandler(log, sched)
	submissionHandler := handlers.NewSubmissionHandler(log, submissionService)
	voteHandler := handlers.NewVoteHandler(log, voteService)

	// Middleware
	log.Info("Setting up Middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log)

	// Router
	log.Info("Setting up Router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:    authMiddleware,
		PoliticianHandler: politicianHandler,
		ScoringHandler:    scoringHandler,
		SchedulerHandler:  schedulerHandler,
		SubmissionHandler: submissionHandler,
		VoteHandler:       voteHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown failed", "error", err)
	}

	// Drain any queued submissions before the worker stops so nothing
	// stays pending longer than it has to.
	for submissionService.ProcessNext(shutdownCtx) {
	}
	cancelWorkers()

	if signalCache != nil {
		if err := signalCache.Close(); err != nil {
			log.Warn("Redis close failed", "error", err)
		}
	}
	log.Info("Shutdown complete")
}

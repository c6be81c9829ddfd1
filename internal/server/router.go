package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/civiclens/civitas-backend/internal/handlers"
	"github.com/civiclens/civitas-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware    *middleware.AuthMiddleware
	PoliticianHandler *handlers.PoliticianHandler
	ScoringHandler    *handlers.ScoringHandler
	SchedulerHandler  *handlers.SchedulerHandler
	SubmissionHandler *handlers.SubmissionHandler
	VoteHandler       *handlers.VoteHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/politicians", cfg.PoliticianHandler.List)
		api.GET("/politicians/:id", cfg.PoliticianHandler.Get)
		api.GET("/offices/:id/rankings", cfg.PoliticianHandler.OfficeRankings)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Scoring
	protected.POST("/politicians/:id/recalculate", cfg.ScoringHandler.Recalculate)
	protected.POST("/scores/update-all", cfg.ScoringHandler.UpdateAll)
	// Scheduler
	protected.GET("/scheduler/status", cfg.SchedulerHandler.Status)
	protected.POST("/scheduler/jobs/:name/run", cfg.SchedulerHandler.RunJob)
	// Submissions and votes
	protected.POST("/politicians/:id/submissions", cfg.SubmissionHandler.Submit)
	protected.POST("/votes", cfg.VoteHandler.Cast)

	return router
}

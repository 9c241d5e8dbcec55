// Package app assembles the services and HTTP router shared by the API
// binary and the integration tests.
package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"jainvest/internal/clients/reportapi"
	"jainvest/internal/config"
	"jainvest/internal/handlers"
	"jainvest/internal/market"
	"jainvest/internal/metrics"
	"jainvest/internal/middleware"
	"jainvest/internal/models"
	"jainvest/internal/observability"
	"jainvest/internal/services"
	"jainvest/internal/store"

	_ "jainvest/internal/docs" // Import swagger docs
)

// Services holds every service the router needs.
type Services struct {
	Users       services.UserServicer
	Portfolio   services.PortfolioServicer
	Quizzes     services.QuizServicer
	Leaderboard services.LeaderboardServicer
	Backtests   services.BacktestServicer
	Market      services.MarketServicer
	Content     services.ContentServicer
	Analysis    services.AnalysisServicer
	Reports     services.ReportServicer
}

// NewServices builds the service graph over db (identity) and st (every
// other aggregate) and restores previously pushed quotes.
func NewServices(ctx context.Context, cfg *config.Config, db *gorm.DB, st store.Store) (*Services, error) {
	seed := uint64(time.Now().UnixNano())
	board := market.NewBoard(st, market.NewPseudoProvider(rand.New(rand.NewPCG(seed, 1))))
	if err := board.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load market quotes: %w", err)
	}

	leaderboard := services.NewLeaderboardService(st)
	marketService := services.NewMarketService(board, rand.New(rand.NewPCG(seed, 2)))

	return &Services{
		Users:       services.NewUserService(db, leaderboard),
		Portfolio:   services.NewPortfolioService(st, marketService),
		Quizzes:     services.NewQuizService(st, leaderboard),
		Leaderboard: leaderboard,
		Backtests:   services.NewBacktestService(cfg.SimulatedDelay),
		Market:      marketService,
		Content:     services.NewContentService(st, services.NewAuditService(st)),
		Analysis:    services.NewAnalysisService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel),
		Reports:     services.NewReportService(reportapi.New(cfg.ReportAPIURL, nil)),
	}, nil
}

// NewRouter wires middleware, handlers, and routes.
func NewRouter(cfg *config.Config, svcs *Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svcs.Users)
	portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio, svcs.Market)
	quizHandler := handlers.NewQuizHandler(svcs.Quizzes)
	leaderboardHandler := handlers.NewLeaderboardHandler(svcs.Leaderboard)
	backtestHandler := handlers.NewBacktestHandler(svcs.Backtests)
	marketHandler := handlers.NewMarketHandler(svcs.Market)
	analysisHandler := handlers.NewAnalysisHandler(svcs.Analysis)
	reportHandler := handlers.NewReportHandler(svcs.Reports)
	adminHandler := handlers.NewAdminHandler(svcs.Content)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(observability.Middleware("jainvest-api"))
	router.Use(metrics.Middleware())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)

	// Price oracle
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/prices", marketHandler.PushPrices)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleLearner))

	protected.GET("/profile", authHandler.GetProfile)

	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.GetPortfolio)
	portfolio.POST("/buy", portfolioHandler.Buy)
	portfolio.POST("/sell", portfolioHandler.Sell)
	portfolio.POST("/refresh", portfolioHandler.Refresh)
	portfolio.POST("/reset", portfolioHandler.Reset)
	portfolio.GET("/transactions", portfolioHandler.ListTransactions)
	portfolio.GET("/transactions/export", portfolioHandler.ExportTransactions)

	quizzes := protected.Group("/quizzes")
	quizzes.GET("", quizHandler.ListQuizzes)
	quizzes.GET("/attempts", quizHandler.ListAttempts)
	quizzes.GET("/:id", quizHandler.GetQuiz)
	quizzes.POST("/:id/attempts", quizHandler.SubmitAttempt)

	protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
	protected.POST("/backtests", backtestHandler.Run)

	marketRoutes := protected.Group("/market")
	marketRoutes.GET("", marketHandler.GetSnapshot)
	marketRoutes.GET("/:symbol/ohlc", marketHandler.GetOHLC)
	marketRoutes.GET("/:symbol/quote", marketHandler.GetQuote)

	protected.POST("/analysis", analysisHandler.Analyze)
	protected.POST("/reports", reportHandler.GenerateReport)
	protected.POST("/sebi-content", reportHandler.SEBIContent)
	protected.GET("/sebi-content/languages", reportHandler.SupportedLanguages)
	protected.GET("/risk/questions", reportHandler.RiskQuestions)
	protected.POST("/risk/profile", reportHandler.RiskProfile)

	// Moderation
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleReviewer))
	admin.GET("/content", adminHandler.ListContent)
	admin.POST("/content", adminHandler.AddContent)
	admin.PUT("/content/:id/status", adminHandler.UpdateContentStatus)
	admin.GET("/audit", adminHandler.GetAuditLog)

	return router
}

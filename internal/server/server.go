// Package server wires services, handlers and middleware into the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"ledgerly/internal/config"
	"ledgerly/internal/events"
	"ledgerly/internal/handlers"
	"ledgerly/internal/metrics"
	"ledgerly/internal/middleware"
	"ledgerly/internal/services"

	_ "ledgerly/internal/docs" // swagger spec
)

// Options holds what the router needs from main.
type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	Publisher events.Publisher
	// Metrics is optional; nil disables /metrics and request instrumentation.
	Metrics *metrics.Metrics
}

// New builds the full application router.
func New(opts Options) *gin.Engine {
	cfg := opts.Config
	db := opts.DB

	var recorder services.WarningRecorder
	if opts.Metrics != nil {
		recorder = opts.Metrics
	}

	// Services
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db, opts.Publisher)
	budgetService := services.NewBudgetService(db, transactionService)
	billService := services.NewBillService(db, opts.Publisher)
	goalService := services.NewGoalService(db, opts.Publisher)
	auditService := services.NewAuditService(db)
	dashboardService := services.NewDashboardService(userService, transactionService, budgetService, billService, cfg.UpcomingBillsDays, recorder)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	categoryHandler := handlers.NewCategoryHandler()
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	billHandler := handlers.NewBillHandler(billService, auditService, cfg.UpcomingBillsDays)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.Metrics != nil && cfg.MetricsEnabled {
		router.GET("/metrics", middleware.APIKeyMiddleware(cfg.MetricsAPIKey), gin.WrapH(opts.Metrics.Handler()))
	}

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/suggest", categoryHandler.SuggestCategory)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/progress", budgetHandler.GetBudgetProgress)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	bills := protected.Group("/bills")
	bills.POST("", billHandler.CreateBill)
	bills.GET("", billHandler.ListBills)
	bills.GET("/upcoming", billHandler.GetUpcomingBills)
	bills.GET("/:id", billHandler.GetBill)
	bills.POST("/:id/pay", billHandler.MarkPaid)
	bills.DELETE("/:id", billHandler.DeleteBill)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.ListGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.POST("/:id/contributions", goalHandler.Contribute)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	return router
}

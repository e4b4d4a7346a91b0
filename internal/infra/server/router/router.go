// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/validator"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	budgetController      *controller.BudgetController
	savingsGoalController *controller.SavingsGoalController
	dashboardController   *controller.DashboardController
	authMiddleware        *middleware.AuthMiddleware
	writeLimiter          *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	budgetController *controller.BudgetController,
	savingsGoalController *controller.SavingsGoalController,
	dashboardController *controller.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
	writeLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		categoryController:    categoryController,
		transactionController: transactionController,
		budgetController:      budgetController,
		savingsGoalController: savingsGoalController,
		dashboardController:   dashboardController,
		authMiddleware:        authMiddleware,
		writeLimiter:          writeLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	validator.Register()

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every route requires a bearer token.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	categories := v1.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.POST("/defaults", r.categoryController.SeedDefaults)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.recordHandlers(r.transactionController.Create)...)
		transactions.GET("/:id", r.transactionController.Get)
		transactions.PATCH("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}

	budgets := v1.Group("/budgets")
	{
		budgets.GET("", r.budgetController.List)
		budgets.POST("", r.budgetController.Create)
		budgets.GET("/:id", r.budgetController.Get)
		budgets.PATCH("/:id", r.budgetController.Update)
		budgets.DELETE("/:id", r.budgetController.Delete)
	}

	goals := v1.Group("/savings-goals")
	{
		goals.GET("", r.savingsGoalController.List)
		goals.POST("", r.savingsGoalController.Create)
		goals.GET("/:id", r.savingsGoalController.Get)
		goals.PATCH("/:id", r.savingsGoalController.Update)
		goals.DELETE("/:id", r.savingsGoalController.Delete)
		goals.POST("/:id/contributions", r.savingsGoalController.Contribute)
	}

	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/summary", r.dashboardController.GetSummary)
		dashboard.GET("/category-breakdown", r.dashboardController.GetCategoryBreakdown)
	}
}

// recordHandlers prepends the write limiter, when configured, to a handler that
// records ledger entries.
func (r *Router) recordHandlers(handler gin.HandlerFunc) []gin.HandlerFunc {
	if r.writeLimiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{r.writeLimiter.Middleware(), handler}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

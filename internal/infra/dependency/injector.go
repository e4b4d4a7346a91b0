// Package dependency provides dependency injection for the application.
package dependency

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/application/usecase/budget"
	"github.com/budget-tracker/backend/internal/application/usecase/category"
	"github.com/budget-tracker/backend/internal/application/usecase/dashboard"
	"github.com/budget-tracker/backend/internal/application/usecase/savings_goal"
	"github.com/budget-tracker/backend/internal/application/usecase/transaction"
	"github.com/budget-tracker/backend/internal/infra/db"
	"github.com/budget-tracker/backend/internal/infra/server/router"
	"github.com/budget-tracker/backend/internal/integration/adapters"
	"github.com/budget-tracker/backend/internal/integration/email"
	"github.com/budget-tracker/backend/internal/integration/email/templates"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/backend/internal/integration/notification"
	"github.com/budget-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	Database    *db.Database
	Router      *router.Router
	Dispatcher  *notification.AsyncDispatcher
	EmailWorker *email.Worker // nil when the worker is disabled

	closers []func() error
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, clock adapter.Clock) (*Injector, error) {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	inj := &Injector{
		Config:   cfg,
		Database: database,
	}
	gormDB := database.DB()

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	budgetRepo := persistence.NewBudgetRepository(gormDB)
	savingsGoalRepo := persistence.NewSavingsGoalRepository(gormDB)
	dashboardRepo := persistence.NewDashboardRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	// Create alert delivery
	dispatcher, err := inj.buildDispatcher(cfg, emailQueueRepo, clock)
	if err != nil {
		_ = inj.Close()
		return nil, err
	}
	inj.Dispatcher = dispatcher

	if cfg.Email.WorkerEnabled {
		worker, err := newEmailWorker(cfg, emailQueueRepo, clock)
		if err != nil {
			_ = inj.Close()
			return nil, err
		}
		inj.EmailWorker = worker
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Create budget engine
	spend := budget.NewSpendAggregator(transactionRepo, categoryRepo)
	evaluator := budget.NewThresholdEvaluator(budgetRepo, categoryRepo, spend, clock)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, clock)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, clock)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)
	seedCategoriesUseCase := category.NewSeedDefaultCategoriesUseCase(categoryRepo, clock)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(
		transactionRepo, categoryRepo, evaluator, dispatcher, clock, cfg.Alerts.EvaluationTimeout,
	)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, clock)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo, spend, clock)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo, spend, clock, cfg.Alerts.DefaultThreshold)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, categoryRepo, spend)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, categoryRepo, spend, clock)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Create savings goal use cases
	listGoalsUseCase := savings_goal.NewListSavingsGoalsUseCase(savingsGoalRepo)
	createGoalUseCase := savings_goal.NewCreateSavingsGoalUseCase(savingsGoalRepo, clock)
	getGoalUseCase := savings_goal.NewGetSavingsGoalUseCase(savingsGoalRepo)
	updateGoalUseCase := savings_goal.NewUpdateSavingsGoalUseCase(savingsGoalRepo, clock)
	contributeUseCase := savings_goal.NewContributeUseCase(savingsGoalRepo, clock)
	deleteGoalUseCase := savings_goal.NewDeleteSavingsGoalUseCase(savingsGoalRepo)

	// Create dashboard use cases
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(dashboardRepo, clock)
	getBreakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(dashboardRepo, clock)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck, clock)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
		seedCategoriesUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		getTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		createBudgetUseCase,
		getBudgetUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)

	savingsGoalController := controller.NewSavingsGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		contributeUseCase,
		deleteGoalUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getSummaryUseCase,
		getBreakdownUseCase,
	)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	var writeLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		writeLimiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, clock)
	}

	// Create router
	inj.Router = router.NewRouter(
		healthController,
		categoryController,
		transactionController,
		budgetController,
		savingsGoalController,
		dashboardController,
		authMiddleware,
		writeLimiter,
	)

	return inj, nil
}

// buildDispatcher assembles the alert fan-out for the configured transport and
// wraps it for background delivery.
func (inj *Injector) buildDispatcher(cfg *config.Config, queue adapter.EmailQueueRepository, clock adapter.Clock) (*notification.AsyncDispatcher, error) {
	fanOut := notification.FanOut{notification.LogDispatcher{}}

	switch cfg.Alerts.Transport {
	case config.AlertTransportRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		if cfg.Redis.DB != 0 {
			opts.DB = cfg.Redis.DB
		}
		client := redis.NewClient(opts)
		inj.closers = append(inj.closers, client.Close)
		fanOut = append(fanOut, notification.NewRedisPublisher(client, cfg.Redis.AlertStream, clock))

	case config.AlertTransportAMQP:
		publisher, err := notification.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, clock)
		if err != nil {
			return nil, fmt.Errorf("failed to connect alert broker: %w", err)
		}
		inj.closers = append(inj.closers, publisher.Close)
		fanOut = append(fanOut, publisher)
	}

	if cfg.Alerts.EmailEnabled {
		fanOut = append(fanOut, notification.NewEmailDispatcher(queue, clock))
	}

	slog.Info("Budget alert delivery configured",
		"transport", cfg.Alerts.Transport,
		"email", cfg.Alerts.EmailEnabled,
	)

	return notification.NewAsyncDispatcher(fanOut, notification.AsyncConfig{
		Timeout:  cfg.Alerts.DispatchTimeout,
		Attempts: uint(cfg.Alerts.DispatchAttempts),
		Delay:    cfg.Alerts.DispatchDelay,
	}), nil
}

func newEmailWorker(cfg *config.Config, queue adapter.EmailQueueRepository, clock adapter.Clock) (*email.Worker, error) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(email.ResendConfig{
			APIKey:    cfg.Email.ResendAPIKey,
			FromName:  cfg.Email.FromName,
			FromEmail: cfg.Email.FromEmail,
			ReplyTo:   cfg.Email.ReplyTo,
		})
	} else {
		slog.Warn("RESEND_API_KEY not set, queued emails will only be logged")
		sender = email.NewLogSender()
	}

	return email.NewWorker(queue, sender, renderer, clock, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
		Retention:    cfg.Email.Retention,
	}), nil
}

// Close waits for in-flight alert deliveries, then releases transport connections.
func (inj *Injector) Close() error {
	if inj.Dispatcher != nil {
		inj.Dispatcher.Wait()
	}

	var errs []error
	for i := len(inj.closers) - 1; i >= 0; i-- {
		if err := inj.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	inj.closers = nil
	return errors.Join(errs...)
}

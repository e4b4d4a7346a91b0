// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/infra/dependency"
	"github.com/budget-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	testAlertStream = "budget-alerts-test"
)

// suite holds resources shared by every scenario.
type suite struct {
	db       *mock.Db
	redis    *mock.Redis
	clock    *mock.Time
	injector *dependency.Injector
	server   *httptest.Server
}

var shared *suite

// TestContext holds the test state for each scenario.
type TestContext struct {
	*suite

	client   *http.Client
	headers  map[string]string
	response *response

	// Auth
	accessToken string
	userID      uuid.UUID
	userEmail   string

	// Named fixtures, resolved by {{category:Name}} and {{budget:Name}} placeholders
	categories map[string]uuid.UUID
	budgets    map[string]uuid.UUID
	lastID     uuid.UUID
}

type response struct {
	status int
	body   any
	raw    []byte
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			db:    mock.NewDb(),
			redis: mock.NewRedis(),
			clock: mock.NewTime(),
		}

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.Issuer = ""
		cfg.Redis.URL = s.redis.URL()
		cfg.Redis.AlertStream = testAlertStream
		cfg.Alerts.Transport = config.AlertTransportRedis
		cfg.Alerts.EmailEnabled = true
		cfg.Alerts.DispatchDelay = 10 * time.Millisecond
		cfg.Email.WorkerEnabled = false
		cfg.RateLimit.Enabled = false

		inj, err := dependency.NewInjector(cfg, s.db.Database, s.clock)
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %v", err))
		}
		s.injector = inj
		s.server = httptest.NewServer(inj.Router.Setup(cfg.Server.Environment))

		shared = s
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		_ = shared.injector.Close()
		_ = shared.db.Close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &TestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		// Deliveries from this scenario must not leak into the next one
		test.injector.Dispatcher.Wait()
		return ctx, nil
	})

	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerLedgerSteps(ctx, test)
	registerAlertSteps(ctx, test)
}

func (t *TestContext) before() error {
	t.suite = shared
	t.client = &http.Client{Timeout: 10 * time.Second}
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.userID = uuid.Nil
	t.userEmail = ""
	t.categories = make(map[string]uuid.UUID)
	t.budgets = make(map[string]uuid.UUID)
	t.lastID = uuid.Nil

	t.clock.SetCurrentTime(time.Now())

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return t.redis.Clear()
}

package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// DefaultEvaluationTimeout bounds budget evaluation when no timeout is configured.
const DefaultEvaluationTimeout = 2 * time.Second

// AlertEvaluator decides which budget alerts a not yet stored transaction triggers.
type AlertEvaluator interface {
	Evaluate(ctx context.Context, candidate *entity.Transaction) ([]*entity.BudgetAlert, error)
}

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID             uuid.UUID
	UserEmail          string // Recipient for email alerts, optional
	CategoryID         uuid.UUID
	Amount             decimal.Decimal
	Description        string
	Date               time.Time
	Type               entity.TransactionType
	PaymentMethod      string
	IsRecurring        bool
	RecurringFrequency *entity.RecurringFrequency
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
	Alerts      []*entity.BudgetAlert
}

// CreateTransactionUseCase records a transaction after evaluating budget thresholds against it.
type CreateTransactionUseCase struct {
	transactionRepo   adapter.TransactionRepository
	categoryRepo      adapter.CategoryRepository
	evaluator         AlertEvaluator
	dispatcher        adapter.AlertDispatcher
	clock             adapter.Clock
	evaluationTimeout time.Duration
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	evaluator AlertEvaluator,
	dispatcher adapter.AlertDispatcher,
	clock adapter.Clock,
	evaluationTimeout time.Duration,
) *CreateTransactionUseCase {
	if evaluationTimeout <= 0 {
		evaluationTimeout = DefaultEvaluationTimeout
	}
	return &CreateTransactionUseCase{
		transactionRepo:   transactionRepo,
		categoryRepo:      categoryRepo,
		evaluator:         evaluator,
		dispatcher:        dispatcher,
		clock:             clock,
		evaluationTimeout: evaluationTimeout,
	}
}

// Execute validates the transaction, evaluates and dispatches budget alerts, then stores it.
// Evaluation runs against the ledger without the new entry. Evaluation and dispatch
// failures are logged and never prevent the transaction from being recorded.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateFrequency(input.RecurringFrequency); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	category, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.CategoryID,
		input.Amount,
		input.Description,
		input.Date,
		input.Type,
		uc.clock.Now(),
	)
	transaction.PaymentMethod = input.PaymentMethod
	transaction.IsRecurring = input.IsRecurring
	if input.IsRecurring {
		transaction.RecurringFrequency = input.RecurringFrequency
	}

	alerts := uc.evaluate(ctx, transaction)
	for _, alert := range alerts {
		alert.UserEmail = input.UserEmail
		uc.dispatch(ctx, alert)
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if alerts == nil {
		alerts = []*entity.BudgetAlert{}
	}

	return &CreateTransactionOutput{
		Transaction: toOutput(transaction, category),
		Alerts:      alerts,
	}, nil
}

// evaluate runs the threshold evaluation under a deadline and fails open.
func (uc *CreateTransactionUseCase) evaluate(ctx context.Context, transaction *entity.Transaction) []*entity.BudgetAlert {
	if uc.evaluator == nil {
		return nil
	}

	evalCtx, cancel := context.WithTimeout(ctx, uc.evaluationTimeout)
	defer cancel()

	alerts, err := uc.evaluator.Evaluate(evalCtx, transaction)
	if err != nil {
		slog.Warn("Budget evaluation failed, recording transaction without alerts",
			"transaction_id", transaction.ID,
			"user_id", transaction.UserID,
			"error", err,
		)
		return nil
	}
	return alerts
}

func (uc *CreateTransactionUseCase) dispatch(ctx context.Context, alert *entity.BudgetAlert) {
	if uc.dispatcher == nil {
		return
	}

	if err := uc.dispatcher.Present(ctx, alert); err != nil {
		slog.Warn("Failed to dispatch budget alert",
			"budget_id", alert.BudgetID,
			"kind", alert.Kind,
			"error", err,
		)
	}
}

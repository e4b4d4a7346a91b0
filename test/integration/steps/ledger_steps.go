package steps

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-tracker/backend/internal/domain/entity"
	"github.com/budget-tracker/backend/internal/domain/valueobject"
	"github.com/budget-tracker/backend/internal/integration/persistence/model"
)

func registerLedgerSteps(ctx *godog.ScenarioContext, t *TestContext) {
	// Clock steps
	ctx.Given(`^the current time is "([^"]*)"$`, t.theCurrentTimeIs)

	// Fixture steps
	ctx.Given(`^a category "([^"]*)" of type "([^"]*)" exists$`, t.aCategoryOfTypeExists)
	ctx.Given(`^a budget "([^"]*)" exists with:$`, t.aBudgetExistsWith)
	ctx.Given(`^an? "(expense|income)" of "([^"]*)" in category "([^"]*)" dated "([^"]*)" was recorded at "([^"]*)"$`, t.aTransactionWasRecordedAt)

	// API shortcuts
	ctx.When(`^I record an? "(expense|income)" of "([^"]*)" in category "([^"]*)" dated "([^"]*)"$`, t.iRecordATransaction)
	ctx.When(`^I create a budget "([^"]*)" with body:$`, t.iCreateABudgetWithBody)
}

func (t *TestContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.clock.SetCurrentTime(now)
	return nil
}

func (t *TestContext) aCategoryOfTypeExists(name, categoryType string) error {
	if t.userID == uuid.Nil {
		return fmt.Errorf("authenticate before creating category %q", name)
	}

	now := t.clock.Now()
	category := &model.CategoryModel{
		ID:        uuid.New(),
		UserID:    t.userID,
		Name:      name,
		Color:     "#6366F1",
		Icon:      "tag",
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := t.db.DbConn.Create(category).Error; err != nil {
		return err
	}
	t.categories[name] = category.ID
	return nil
}

// aBudgetExistsWith stores a budget directly so its window and creation instant
// can be placed in the past. Recognised keys: category (a category name or
// "all"), amount, period, threshold, start_date, end_date, created_at.
func (t *TestContext) aBudgetExistsWith(name string, table *godog.Table) error {
	values := make(map[string]string, len(table.Rows))
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("budget table rows need a key and a value")
		}
		values[strings.TrimSpace(row.Cells[0].Value)] = strings.TrimSpace(row.Cells[1].Value)
	}

	now := t.clock.Now()
	budget := &model.BudgetModel{
		ID:             uuid.New(),
		UserID:         t.userID,
		Period:         string(entity.BudgetPeriodMonthly),
		AlertThreshold: entity.DefaultAlertThreshold,
		StartDate:      valueobject.CalendarDay(now),
		EndDate:        valueobject.CalendarDay(now).AddDate(0, 1, -1),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var err error
	for key, value := range values {
		switch key {
		case "category":
			if value == "all" || value == "" {
				continue
			}
			id, ok := t.categories[value]
			if !ok {
				return fmt.Errorf("unknown category %q", value)
			}
			budget.CategoryID = &id
		case "amount":
			budget.Amount, err = decimal.NewFromString(value)
		case "period":
			budget.Period = value
		case "threshold":
			budget.AlertThreshold, err = strconv.Atoi(value)
		case "start_date":
			budget.StartDate, err = valueobject.ParseDate(value)
		case "end_date":
			budget.EndDate, err = valueobject.ParseDate(value)
		case "created_at":
			budget.CreatedAt, err = time.Parse(time.RFC3339, value)
			budget.UpdatedAt = budget.CreatedAt
		default:
			return fmt.Errorf("unknown budget field %q", key)
		}
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
	}

	if err := t.db.DbConn.Create(budget).Error; err != nil {
		return err
	}
	t.budgets[name] = budget.ID
	return nil
}

func (t *TestContext) aTransactionWasRecordedAt(transactionType, amount, categoryName, date, recordedAt string) error {
	categoryID, ok := t.categories[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	day, err := valueobject.ParseDate(date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	createdAt, err := time.Parse(time.RFC3339, recordedAt)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", recordedAt, err)
	}

	transaction := &model.TransactionModel{
		ID:          uuid.New(),
		UserID:      t.userID,
		CategoryID:  categoryID,
		Date:        day,
		Description: "seeded " + transactionType,
		Amount:      value,
		Type:        transactionType,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	return t.db.DbConn.Create(transaction).Error
}

func (t *TestContext) iRecordATransaction(transactionType, amount, categoryName, date string) error {
	categoryID, ok := t.categories[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}

	body := fmt.Sprintf(`{"category_id":%q,"amount":%s,"description":"%s in %s","date":%q,"type":%q}`,
		categoryID.String(), amount, transactionType, categoryName, date, transactionType)
	return t.executeRequest("POST", "/api/v1/transactions", []byte(body))
}

func (t *TestContext) iCreateABudgetWithBody(name string, body *godog.DocString) error {
	if err := t.iSendARequestToWithBody("POST", "/api/v1/budgets", body); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(201); err != nil {
		return err
	}
	t.budgets[name] = t.lastID
	return nil
}

package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/budget-tracker/backend/internal/integration/notification"
)

func registerAlertSteps(ctx *godog.ScenarioContext, t *TestContext) {
	ctx.Then(`^the response should contain (\d+) alerts?$`, t.theResponseShouldContainAlerts)
	ctx.Then(`^response alert (\d+) should be "([^"]*)" for budget "([^"]*)"$`, t.responseAlertShouldBeForBudget)
	ctx.Then(`^the alert stream should contain (\d+) entr(?:y|ies)$`, t.theAlertStreamShouldContainEntries)
	ctx.Then(`^alert stream entry (\d+) should be "([^"]*)" for budget "([^"]*)"$`, t.alertStreamEntryShouldBeForBudget)
	ctx.Then(`^alert stream entry (\d+) should report spent "([^"]*)" of "([^"]*)"$`, t.alertStreamEntryShouldReportSpent)
}

func (t *TestContext) theResponseShouldContainAlerts(quantity int) error {
	return t.theResponseFieldShouldHaveItems("alerts", quantity)
}

func (t *TestContext) responseAlertShouldBeForBudget(index int, kind, budgetName string) error {
	budgetID, ok := t.budgets[budgetName]
	if !ok {
		return fmt.Errorf("unknown budget %q", budgetName)
	}

	prefix := fmt.Sprintf("alerts.%d.", index)
	if err := t.theResponseFieldShouldBe(prefix+"kind", kind); err != nil {
		return err
	}
	return t.theResponseFieldShouldBe(prefix+"budget_id", budgetID.String())
}

func (t *TestContext) theAlertStreamShouldContainEntries(quantity int) error {
	messages, err := t.alertStream()
	if err != nil {
		return err
	}
	if len(messages) != quantity {
		return fmt.Errorf("expected %d alert stream entries, got %d: %+v", quantity, len(messages), messages)
	}
	return nil
}

func (t *TestContext) alertStreamEntryShouldBeForBudget(index int, kind, budgetName string) error {
	message, err := t.alertStreamEntry(index)
	if err != nil {
		return err
	}

	budgetID, ok := t.budgets[budgetName]
	if !ok {
		return fmt.Errorf("unknown budget %q", budgetName)
	}
	if message.Kind != kind || message.BudgetID != budgetID.String() {
		return fmt.Errorf("entry %d is %s for budget %s, want %s for budget %s",
			index, message.Kind, message.BudgetID, kind, budgetID)
	}
	if message.UserID != t.userID.String() {
		return fmt.Errorf("entry %d belongs to user %s, want %s", index, message.UserID, t.userID)
	}
	return nil
}

func (t *TestContext) alertStreamEntryShouldReportSpent(index int, spent, total string) error {
	message, err := t.alertStreamEntry(index)
	if err != nil {
		return err
	}
	if message.Spent != spent || message.Total != total {
		return fmt.Errorf("entry %d reports %s of %s, want %s of %s", index, message.Spent, message.Total, spent, total)
	}
	return nil
}

func (t *TestContext) alertStreamEntry(index int) (notification.AlertMessage, error) {
	messages, err := t.alertStream()
	if err != nil {
		return notification.AlertMessage{}, err
	}
	if index >= len(messages) {
		return notification.AlertMessage{}, fmt.Errorf("alert stream has %d entries, no entry %d", len(messages), index)
	}
	return messages[index], nil
}

// alertStream drains pending deliveries, then reads the stream in insertion order.
func (t *TestContext) alertStream() ([]notification.AlertMessage, error) {
	t.injector.Dispatcher.Wait()

	entries, err := t.redis.Client.XRange(context.Background(), testAlertStream, "-", "+").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read alert stream: %w", err)
	}

	messages := make([]notification.AlertMessage, 0, len(entries))
	for _, entry := range entries {
		payload, ok := entry.Values["payload"].(string)
		if !ok {
			return nil, fmt.Errorf("stream entry %s has no payload", entry.ID)
		}
		message, err := notification.AlertMessageFromJSON([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("stream entry %s: %w", entry.ID, err)
		}
		messages = append(messages, message)
	}
	return messages, nil
}

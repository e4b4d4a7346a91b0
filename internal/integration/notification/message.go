// Package notification implements the transports budget alerts are presented through.
package notification

import (
	"encoding/json"
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// AlertMessage is the wire form of a budget alert on push transports.
type AlertMessage struct {
	BudgetID     string            `json:"budget_id"`
	UserID       string            `json:"user_id"`
	Kind         string            `json:"kind"`
	CategoryName string            `json:"category_name"`
	Spent        string            `json:"spent"`
	Total        string            `json:"total"`
	Remaining    string            `json:"remaining"`
	Percentage   string            `json:"percentage"`
	Threshold    int               `json:"threshold"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Metadata     map[string]string `json:"metadata"`
	SentAt       time.Time         `json:"sent_at"`
}

// NewAlertMessage converts an alert to its wire form.
func NewAlertMessage(alert *entity.BudgetAlert, sentAt time.Time) AlertMessage {
	return AlertMessage{
		BudgetID:     alert.BudgetID.String(),
		UserID:       alert.UserID.String(),
		Kind:         string(alert.Kind),
		CategoryName: alert.CategoryName,
		Spent:        alert.Spent.StringFixed(2),
		Total:        alert.Total.StringFixed(2),
		Remaining:    alert.Remaining.StringFixed(2),
		Percentage:   alert.Percentage.StringFixed(2),
		Threshold:    alert.Threshold,
		Title:        alert.Title,
		Body:         alert.Body,
		Metadata:     alert.Metadata,
		SentAt:       sentAt,
	}
}

// ToJSON encodes the message.
func (m AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AlertMessageFromJSON decodes a message produced by ToJSON.
func AlertMessageFromJSON(data []byte) (AlertMessage, error) {
	var m AlertMessage
	err := json.Unmarshal(data, &m)
	return m, err
}

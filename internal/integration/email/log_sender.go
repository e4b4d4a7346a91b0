package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/budget-tracker/backend/internal/application/adapter"
)

// LogSender stands in for Resend when no API key is configured. Messages are
// logged and marked sent.
type LogSender struct {
	sent atomic.Int64
}

// NewLogSender creates a LogSender.
func NewLogSender() *LogSender {
	return &LogSender{}
}

// Send logs the message instead of delivering it.
func (s *LogSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	n := s.sent.Add(1)
	slog.Info("Email delivery disabled, message logged only",
		"to", input.To,
		"subject", input.Subject,
		"tags", input.Tags,
	)
	return &adapter.SendEmailResult{ResendID: fmt.Sprintf("log-%d", n)}, nil
}

// Sent reports how many messages were logged.
func (s *LogSender) Sent() int64 {
	return s.sent.Load()
}

var _ adapter.EmailSender = (*LogSender)(nil)

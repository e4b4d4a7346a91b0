// Package email delivers queued budget alert emails.
package email

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/budget-tracker/backend/internal/application/adapter"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
)

// ResendConfig holds the sender identity used for every message.
type ResendConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
	ReplyTo   string
}

// ResendClient sends emails through the Resend API.
type ResendClient struct {
	client  *resend.Client
	from    string
	replyTo string
}

// NewResendClient creates a new Resend client.
func NewResendClient(cfg ResendConfig) *ResendClient {
	return &ResendClient{
		client:  resend.NewClient(cfg.APIKey),
		from:    formatAddress(cfg.FromName, cfg.FromEmail),
		replyTo: cfg.ReplyTo,
	}
}

// Send delivers one message. Failures come back as EmailError with a permanent
// or temporary code so the worker can decide whether to retry.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{formatAddress(input.Name, input.To)},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
		ReplyTo: c.replyTo,
		Tags:    resendTags(input.Tags),
	}
	if input.ReplyTo != "" {
		params.ReplyTo = input.ReplyTo
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

func formatAddress(name, email string) string {
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}

// resendTags converts tags in key order. Resend only accepts ASCII letters,
// digits, underscores and dashes, so anything else is replaced.
func resendTags(tags map[string]string) []resend.Tag {
	if len(tags) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]resend.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, resend.Tag{Name: sanitizeTag(k), Value: sanitizeTag(tags[k])})
	}
	return out
}

func sanitizeTag(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, value)
}

// Markers of rejections that fail the same way on every retry.
var permanentSendFailures = []string{
	"400", "401", "403", "404", "422",
	"unauthorized", "forbidden", "validation", "invalid", "bad request",
}

func classifySendError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range permanentSendFailures {
		if strings.Contains(msg, marker) {
			return domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				fmt.Sprintf("resend rejected the message (%s)", marker),
				err,
			)
		}
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"resend delivery failed",
		err,
	)
}

var _ adapter.EmailSender = (*ResendClient)(nil)

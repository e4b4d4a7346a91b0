package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/budget-tracker/backend/internal/application/adapter"
	"github.com/budget-tracker/backend/internal/domain/entity"
	domainerror "github.com/budget-tracker/backend/internal/domain/error"
	"github.com/budget-tracker/backend/internal/integration/email/templates"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type memoryQueue struct {
	jobs map[uuid.UUID]*entity.EmailJob
}

func newMemoryQueue(jobs ...*entity.EmailJob) *memoryQueue {
	q := &memoryQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
	for _, j := range jobs {
		q.jobs[j.ID] = j
	}
	return q
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.IsReadyToProcess(now) && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *memoryQueue) Claim(_ context.Context, job *entity.EmailJob) (bool, error) {
	if q.jobs[job.ID].Status != entity.EmailStatusPending {
		return false, nil
	}
	job.MarkProcessing()
	q.jobs[job.ID] = job
	return true, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) DeleteSentBefore(context.Context, time.Time) (int64, error) { return 0, nil }

type fakeSender struct {
	sent []adapter.SendEmailInput
	err  error
}

func (s *fakeSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ResendID: fmt.Sprintf("re_%d", len(s.sent))}, nil
}

var workerNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func budgetAlertJob() *entity.EmailJob {
	return entity.NewEmailJob(entity.TemplateBudgetAlert, "user@example.com", "", "📊 Budget Alert", map[string]interface{}{
		"title":         "📊 Budget Alert",
		"body":          "You've used 85% of your Food budget. 15.00 remaining.",
		"kind":          "warning",
		"category_name": "Food",
		"spent":         "85.00",
		"total":         "100.00",
		"remaining":     "15.00",
		"percentage":    "85",
	}, workerNow)
}

func newTestWorker(t *testing.T, queue *memoryQueue, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, fixedClock{now: workerNow}, DefaultWorkerConfig())
}

func TestWorker_SendsBudgetAlert(t *testing.T) {
	job := budgetAlertJob()
	queue := newMemoryQueue(job)
	sender := &fakeSender{}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.sent))
	}
	sent := sender.sent[0]
	if sent.To != "user@example.com" || !strings.Contains(sent.Text, "Food") || !strings.Contains(sent.HTML, "85.00 of 100.00") {
		t.Errorf("unexpected rendered email: %+v", sent)
	}
	if sent.Tags["template"] != string(entity.TemplateBudgetAlert) || sent.Tags["alert_kind"] != "warning" || sent.Tags["job_id"] != job.ID.String() {
		t.Errorf("unexpected tags: %v", sent.Tags)
	}
	if queue.jobs[job.ID].Status != entity.EmailStatusSent || queue.jobs[job.ID].ResendID != "re_1" {
		t.Errorf("expected job marked sent, got %s", queue.jobs[job.ID].Status)
	}
}

func TestWorker_TemporaryFailureIsRescheduled(t *testing.T) {
	job := budgetAlertJob()
	queue := newMemoryQueue(job)
	sender := &fakeSender{err: domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "resend delivery failed", errors.New("503"))}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	got := queue.jobs[job.ID]
	if got.Status != entity.EmailStatusPending || got.Attempts != 1 {
		t.Fatalf("expected pending retry after one attempt, got %s/%d", got.Status, got.Attempts)
	}
	if !got.ScheduledAt.Equal(workerNow.Add(time.Minute)) {
		t.Errorf("expected retry in one minute, got %s", got.ScheduledAt)
	}
}

func TestWorker_PermanentFailureStops(t *testing.T) {
	job := budgetAlertJob()
	queue := newMemoryQueue(job)
	sender := &fakeSender{err: domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "resend rejected the message", errors.New("422"))}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	if got := queue.jobs[job.ID]; got.Status != entity.EmailStatusFailed {
		t.Errorf("expected failed job, got %s", got.Status)
	}
}

func TestWorker_SkipsJobClaimedElsewhere(t *testing.T) {
	job := budgetAlertJob()
	queue := newMemoryQueue(job)
	sender := &fakeSender{}
	worker := newTestWorker(t, queue, sender)

	claimed := *job
	claimed.Status = entity.EmailStatusProcessing
	queue.jobs[job.ID] = &claimed

	worker.processJob(context.Background(), job)

	if len(sender.sent) != 0 {
		t.Errorf("expected no email for a job claimed by another worker, got %d", len(sender.sent))
	}
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	job := budgetAlertJob()
	job.TemplateType = "newsletter"
	queue := newMemoryQueue(job)
	sender := &fakeSender{}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	if got := queue.jobs[job.ID]; got.Status != entity.EmailStatusFailed || len(sender.sent) != 0 {
		t.Errorf("expected failed job without sending, got %s", got.Status)
	}
}

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domainerror.EmailErrorCode
	}{
		{"validation rejection", errors.New("[ERROR]: 422 invalid `to` field"), domainerror.ErrCodePermanentEmailFailure},
		{"bad api key", errors.New("401 Unauthorized"), domainerror.ErrCodePermanentEmailFailure},
		{"rate limited", errors.New("429 too many requests"), domainerror.ErrCodeTemporaryEmailFailure},
		{"server error", errors.New("502 gateway"), domainerror.ErrCodeTemporaryEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var emailErr *domainerror.EmailError
			if !errors.As(classifySendError(tt.err), &emailErr) || emailErr.Code != tt.want {
				t.Errorf("expected %s, got %v", tt.want, emailErr)
			}
		})
	}
}

func TestResendTags(t *testing.T) {
	tags := resendTags(map[string]string{"template": "budget_alert", "job_id": "a1b2", "note": "85% used"})

	want := []string{"job_id=a1b2", "note=85__used", "template=budget_alert"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %d", len(want), len(tags))
	}
	for i, tag := range tags {
		if got := tag.Name + "=" + tag.Value; got != want[i] {
			t.Errorf("tag %d = %s, want %s", i, got, want[i])
		}
	}
	if resendTags(nil) != nil {
		t.Error("expected no tags for an empty map")
	}
}

func TestFormatAddress(t *testing.T) {
	if got := formatAddress("", "ana@example.com"); got != "ana@example.com" {
		t.Errorf("bare address = %s", got)
	}
	if got := formatAddress("Budget Tracker Alerts", "alerts@budget-tracker.app"); got != `"Budget Tracker Alerts" <alerts@budget-tracker.app>` {
		t.Errorf("named address = %s", got)
	}
}

func TestLogSender(t *testing.T) {
	sender := NewLogSender()
	result, err := sender.Send(context.Background(), adapter.SendEmailInput{To: "ana@example.com", Subject: "Budget Alert"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ResendID != "log-1" || sender.Sent() != 1 {
		t.Errorf("unexpected result %+v after %d sends", result, sender.Sent())
	}
}

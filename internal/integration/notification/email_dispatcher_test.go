package notification

import (
	"context"
	"testing"
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

type memoryQueue struct {
	jobs []*entity.EmailJob
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *memoryQueue) GetPendingJobs(context.Context, time.Time, int) ([]*entity.EmailJob, error) {
	return q.jobs, nil
}

func (q *memoryQueue) Claim(context.Context, *entity.EmailJob) (bool, error) { return true, nil }

func (q *memoryQueue) Update(context.Context, *entity.EmailJob) error { return nil }

func (q *memoryQueue) DeleteSentBefore(context.Context, time.Time) (int64, error) { return 0, nil }

func TestEmailDispatcher_QueuesBudgetAlert(t *testing.T) {
	queue := &memoryQueue{}
	dispatcher := NewEmailDispatcher(queue, fixedClock{now: testNow})
	alert := testAlert(entity.AlertKindExceeded)

	if err := dispatcher.Present(context.Background(), alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.jobs) != 1 {
		t.Fatalf("expected 1 queued job, got %d", len(queue.jobs))
	}

	job := queue.jobs[0]
	if job.TemplateType != entity.TemplateBudgetAlert || job.RecipientEmail != "user@example.com" {
		t.Errorf("unexpected job: %+v", job)
	}
	if job.Subject != "⚠️ Budget Exceeded!" || job.TemplateData["category_name"] != "Food" {
		t.Errorf("unexpected subject or data: %s %v", job.Subject, job.TemplateData)
	}
	if job.BudgetID == nil || *job.BudgetID != alert.BudgetID || job.UserID == nil || *job.UserID != alert.UserID {
		t.Errorf("expected the job to reference budget %s of user %s", alert.BudgetID, alert.UserID)
	}
	if !job.ScheduledAt.Equal(testNow) || job.Status != entity.EmailStatusPending {
		t.Errorf("expected a pending job due now, got %s %s", job.Status, job.ScheduledAt)
	}
}

func TestEmailDispatcher_SkipsWithoutRecipient(t *testing.T) {
	queue := &memoryQueue{}
	alert := testAlert(entity.AlertKindWarning)
	alert.UserEmail = ""

	if err := NewEmailDispatcher(queue, fixedClock{now: testNow}).Present(context.Background(), alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue.jobs) != 0 {
		t.Errorf("expected no queued job, got %d", len(queue.jobs))
	}
}

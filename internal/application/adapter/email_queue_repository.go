// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/budget-tracker/backend/internal/domain/entity"
)

// EmailQueueRepository stores outgoing emails until the worker delivers them.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns pending jobs due at now, oldest schedule first.
	GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Claim moves a pending job to processing. It reports false when the job
	// was no longer pending, e.g. another worker claimed it first.
	Claim(ctx context.Context, job *entity.EmailJob) (bool, error)

	Update(ctx context.Context, job *entity.EmailJob) error

	// DeleteSentBefore removes sent jobs processed before cutoff.
	DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

package ports

import (
	"context"
	"time"

	"github.com/G381N/bug-besty/internal/domain"
)

// TaskUpdate carries the mutable fields of a task record. Nil fields are
// left untouched; the store applies the update as a full-record
// read-modify-write replace so the persisted JSON stays internally
// consistent.
type TaskUpdate struct {
	Status   domain.TaskStatus
	Progress *int
	Result   *domain.EnumerationResult
	Error    *string
}

type TaskStore interface {
	// Create persists a new pending task and pushes its id onto the
	// pending FIFO queue.
	Create(ctx context.Context, taskType string, data domain.TaskData) (*domain.Task, error)

	// Get returns the task or ErrTaskNotFound.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// Update replaces the record with the previous state plus the given
	// changes. Returns ErrTaskNotFound for unknown ids.
	Update(ctx context.Context, id string, update TaskUpdate) (*domain.Task, error)

	// UpdateProgress persists partial progress, forcing status to
	// processing.
	UpdateProgress(ctx context.Context, id string, progress int, result *domain.EnumerationResult) (*domain.Task, error)

	// AcquireLease takes a best-effort per-task lease so overlapping
	// trigger invocations do not interleave their read-modify-write
	// cycles. Returns false when another invocation holds the lease.
	AcquireLease(ctx context.Context, id string, ttl time.Duration) (bool, error)
	ReleaseLease(ctx context.Context, id string) error
}

// SessionStore resolves bearer session tokens to user ids.
type SessionStore interface {
	Put(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (uint, error)
	Delete(ctx context.Context, token string) error
}

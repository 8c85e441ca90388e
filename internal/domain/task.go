package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Terminal reports whether the status permits no further processing.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

const TaskTypeSubdomainEnumeration = "subdomain_enumeration"

// Task is the durable record of one resumable unit of background work.
// It lives in the task store under key "task:<id>" for its whole lifetime;
// Data is immutable after creation, Result only ever grows.
type Task struct {
	ID        string             `json:"id"`
	Type      string             `json:"type"`
	Status    TaskStatus         `json:"status"`
	Data      TaskData           `json:"data"`
	Progress  int                `json:"progress"` // 0-100, monotonically non-decreasing
	Result    *EnumerationResult `json:"result,omitempty"`
	Error     string             `json:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type TaskData struct {
	TargetDomain string `json:"target_domain"`
	ProjectID    uint   `json:"project_id"`
}

// EnumerationResult accumulates discovered hostnames across invocations.
// Hostnames behaves as a set: entries are only ever added, never removed.
type EnumerationResult struct {
	Hostnames        []string `json:"hostnames"`
	SourcesCompleted int      `json:"sources_completed"`
}

// Merge unions the given hostnames into the result. Re-merging a hostname
// that is already present is a no-op, which keeps task re-invocation
// idempotent.
func (r *EnumerationResult) Merge(hostnames []string) {
	seen := make(map[string]struct{}, len(r.Hostnames))
	for _, h := range r.Hostnames {
		seen[h] = struct{}{}
	}
	for _, h := range hostnames {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		r.Hostnames = append(r.Hostnames, h)
	}
}

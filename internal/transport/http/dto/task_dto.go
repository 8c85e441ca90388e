package dto

import (
	"strings"
	"time"

	"github.com/G381N/bug-besty/internal/domain"
)

type ProcessTaskRequest struct {
	TaskID string `json:"task_id" validate:"required"`
}

func (r *ProcessTaskRequest) Validate() []string {
	if strings.TrimSpace(r.TaskID) == "" {
		return []string{"task_id is required"}
	}
	return nil
}

type TaskResponse struct {
	ID        string                    `json:"id"`
	Type      string                    `json:"type"`
	Status    domain.TaskStatus         `json:"status"`
	Progress  int                       `json:"progress"`
	Result    *domain.EnumerationResult `json:"result,omitempty"`
	Error     string                    `json:"error,omitempty"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

func TaskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Type:      task.Type,
		Status:    task.Status,
		Progress:  task.Progress,
		Result:    task.Result,
		Error:     task.Error,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

type UpdateVulnerabilityRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateVulnerabilityRequest) Validate() []string {
	switch r.Status {
	case string(domain.VulnStatusNotYetDone), string(domain.VulnStatusFound), string(domain.VulnStatusNotFound):
		return nil
	default:
		return []string{"status must be one of: Not Yet Done, Found, Not Found"}
	}
}

package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/gofiber/contrib/websocket"
)

// taskStreamInterval is how often the stream re-reads the task store.
const taskStreamInterval = 2 * time.Second

type TaskStreamHandler struct {
	runner ports.TaskRunner
	logger *logger.Logger
}

func NewTaskStreamHandler(runner ports.TaskRunner, logger *logger.Logger) *TaskStreamHandler {
	return &TaskStreamHandler{runner: runner, logger: logger}
}

type taskStreamFrame struct {
	Status          string `json:"status"`
	Progress        int    `json:"progress"`
	SubdomainsCount int    `json:"subdomains_count"`
	Error           string `json:"error,omitempty"`
}

// Handle pushes task progress frames until the task reaches a terminal
// status or the client disconnects. The driver itself is advanced by the
// external trigger; this stream only observes.
func (h *TaskStreamHandler) Handle(c *websocket.Conn) {
	taskID := c.Params("id")
	defer c.Close()

	// Reader goroutine: we never expect client messages, but reading is
	// how the websocket layer surfaces a disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(taskStreamInterval)
	defer ticker.Stop()

	for {
		task, err := h.runner.GetTask(context.Background(), taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				c.WriteJSON(taskStreamFrame{Status: "not_found"})
			} else {
				h.logger.Warnw("task_stream_lookup_failed", "task_id", taskID, "error", err)
			}
			return
		}

		frame := taskStreamFrame{
			Status:   string(task.Status),
			Progress: task.Progress,
			Error:    task.Error,
		}
		if task.Result != nil {
			frame.SubdomainsCount = len(task.Result.Hostnames)
		}
		if err := c.WriteJSON(frame); err != nil {
			return
		}

		if task.Status.Terminal() {
			h.logger.Infow("task_stream_finished", "task_id", taskID, "status", task.Status)
			return
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

package handlers

import (
	"errors"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/G381N/bug-besty/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	runner   ports.TaskRunner
	projects ports.ProjectService
	logger   *logger.Logger
}

func NewTaskHandler(runner ports.TaskRunner, projects ports.ProjectService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{runner: runner, projects: projects, logger: logger}
}

// ProcessTask is the trigger entry point: each call advances the named
// task by one chunk. The caller is an external scheduler, so responses
// distinguish "bad request" conditions from task-level failures.
func (h *TaskHandler) ProcessTask(c *fiber.Ctx) error {
	var req dto.ProcessTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}
	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	outcome, err := h.runner.Process(c.Context(), req.TaskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Task not found",
			})
		}
		var stateErr *services.TaskStateError
		if errors.As(err, &stateErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: stateErr.Error(),
			})
		}
		if errors.Is(err, services.ErrTaskLocked) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: "task is already being processed",
			})
		}
		h.logger.Errorw("task_process_request_failed", "task_id", req.TaskID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   "task processing failed",
			Details: []string{err.Error()},
		})
	}

	return c.JSON(outcome)
}

// GetTask reports the current status of a task to its project's owner.
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	taskID := c.Params("id")

	task, err := h.runner.GetTask(c.Context(), taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Task not found",
			})
		}
		h.logger.Errorw("task_lookup_failed", "task_id", taskID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to fetch task",
		})
	}

	project, err := h.projects.GetProjectByID(c.Context(), task.Data.ProjectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "project not found",
		})
	}
	user := currentUser(c)
	if user == nil || project.OwnerID != user.ID {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "unauthorized",
		})
	}

	return c.JSON(dto.TaskToResponse(task))
}

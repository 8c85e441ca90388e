package handlers

import (
	"errors"
	"strconv"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/G381N/bug-besty/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	projects   ports.ProjectService
	subdomains ports.SubdomainService
	logger     *logger.Logger
}

func NewProjectHandler(projects ports.ProjectService, subdomains ports.SubdomainService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, subdomains: subdomains, logger: logger}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// ownedProject loads the project and enforces that the session user owns
// it. On failure it writes the error response and reports ok=false; the
// caller just returns nil. Ownership failures are 401, matching the task
// status query contract.
func (h *ProjectHandler) ownedProject(c *fiber.Ctx, id uint) (*domain.Project, bool) {
	project, err := h.projects.GetProjectByID(c.Context(), id)
	if err != nil {
		_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "project not found",
		})
		return nil, false
	}
	user := currentUser(c)
	if user == nil || project.OwnerID != user.ID {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: "unauthorized",
		})
		return nil, false
	}
	return project, true
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
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

	user := currentUser(c)
	project, task, err := h.projects.CreateProject(c.Context(), ports.CreateProjectInput{
		Name:              req.Name,
		TargetDomain:      req.TargetDomain,
		EnumerationMethod: req.EnumerationMethod,
		Subdomains:        req.Subdomains,
		OwnerID:           user.ID,
	})
	if err != nil {
		if errors.Is(err, services.ErrProjectAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: "an active project with this name already exists",
			})
		}
		if errors.Is(err, services.ErrProjectInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("project_create_failed", "name", req.Name, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to create project",
		})
	}

	resp := fiber.Map{"project": project}
	if task != nil {
		resp["task_id"] = task.ID
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ProjectHandler) GetProjects(c *fiber.Ctx) error {
	user := currentUser(c)
	projects, err := h.projects.GetProjects(c.Context(), user.ID)
	if err != nil {
		h.logger.Errorw("projects_list_failed", "owner_id", user.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to fetch projects",
		})
	}
	return c.JSON(projects)
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid project id",
		})
	}
	project, ok := h.ownedProject(c, id)
	if !ok {
		return nil
	}
	return c.JSON(project)
}

func (h *ProjectHandler) GetProjectStats(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid project id",
		})
	}
	if _, ok := h.ownedProject(c, id); !ok {
		return nil
	}

	stats, err := h.projects.GetProjectStats(c.Context(), id)
	if err != nil {
		h.logger.Errorw("project_stats_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to fetch project stats",
		})
	}
	return c.JSON(stats)
}

func (h *ProjectHandler) GetTimeline(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid project id",
		})
	}
	if _, ok := h.ownedProject(c, id); !ok {
		return nil
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	events, err := h.projects.GetTimeline(c.Context(), id, limit)
	if err != nil {
		h.logger.Errorw("project_timeline_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to fetch timeline",
		})
	}
	return c.JSON(events)
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid project id",
		})
	}
	if _, ok := h.ownedProject(c, id); !ok {
		return nil
	}

	if err := h.projects.DeleteProject(c.Context(), id); err != nil {
		h.logger.Errorw("project_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to delete project",
		})
	}
	return c.JSON(dto.SuccessResponse{Message: "project deleted"})
}

func (h *ProjectHandler) GetSubdomains(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid project id",
		})
	}
	if _, ok := h.ownedProject(c, id); !ok {
		return nil
	}

	subdomains, err := h.subdomains.GetSubdomains(c.Context(), id)
	if err != nil {
		h.logger.Errorw("project_subdomains_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to fetch subdomains",
		})
	}
	return c.JSON(subdomains)
}

func (h *ProjectHandler) AddSubdomain(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid project id",
		})
	}
	if _, ok := h.ownedProject(c, id); !ok {
		return nil
	}

	var req dto.AddSubdomainRequest
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

	subdomain, err := h.subdomains.AddSubdomain(c.Context(), id, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrSubdomainInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("subdomain_add_failed", "project_id", id, "name", req.Name, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to add subdomain",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(subdomain)
}

package handlers

import (
	"errors"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/G381N/bug-besty/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type SubdomainHandler struct {
	subdomains      ports.SubdomainService
	vulnerabilities ports.VulnerabilityService
	projects        ports.ProjectService
	logger          *logger.Logger
}

func NewSubdomainHandler(subdomains ports.SubdomainService, vulnerabilities ports.VulnerabilityService, projects ports.ProjectService, logger *logger.Logger) *SubdomainHandler {
	return &SubdomainHandler{
		subdomains:      subdomains,
		vulnerabilities: vulnerabilities,
		projects:        projects,
		logger:          logger,
	}
}

// ownedSubdomain resolves the subdomain and walks up to its project to
// enforce ownership. On failure it writes the response and reports
// ok=false.
func (h *SubdomainHandler) ownedSubdomain(c *fiber.Ctx, id uint) (*domain.Subdomain, bool) {
	subdomain, err := h.subdomains.GetSubdomainByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrSubdomainNotFound) {
			_ = c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "subdomain not found",
			})
			return nil, false
		}
		h.logger.Errorw("subdomain_lookup_failed", "id", id, "error", err)
		_ = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to fetch subdomain",
		})
		return nil, false
	}

	project, err := h.projects.GetProjectByID(c.Context(), subdomain.ProjectID)
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
	return subdomain, true
}

func (h *SubdomainHandler) GetVulnerabilities(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid subdomain id",
		})
	}
	if _, ok := h.ownedSubdomain(c, id); !ok {
		return nil
	}

	checklist, err := h.vulnerabilities.GetChecklist(c.Context(), id)
	if err != nil {
		h.logger.Errorw("subdomain_checklist_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to fetch vulnerability checklist",
		})
	}
	return c.JSON(checklist)
}

func (h *SubdomainHandler) DeleteSubdomain(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid subdomain id",
		})
	}
	if _, ok := h.ownedSubdomain(c, id); !ok {
		return nil
	}

	if err := h.subdomains.DeleteSubdomain(c.Context(), id); err != nil {
		h.logger.Errorw("subdomain_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to delete subdomain",
		})
	}
	return c.JSON(dto.SuccessResponse{Message: "subdomain deleted"})
}

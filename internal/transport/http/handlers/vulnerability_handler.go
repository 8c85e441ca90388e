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

type VulnerabilityHandler struct {
	service ports.VulnerabilityService
	logger  *logger.Logger
}

func NewVulnerabilityHandler(service ports.VulnerabilityService, logger *logger.Logger) *VulnerabilityHandler {
	return &VulnerabilityHandler{service: service, logger: logger}
}

func (h *VulnerabilityHandler) UpdateVulnerability(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid vulnerability id",
		})
	}

	var req dto.UpdateVulnerabilityRequest
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

	entry, err := h.service.UpdateEntry(c.Context(), id, domain.VulnerabilityStatus(req.Status), req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrVulnerabilityNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "vulnerability not found",
			})
		}
		h.logger.Errorw("vulnerability_update_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to update vulnerability",
		})
	}
	return c.JSON(entry)
}

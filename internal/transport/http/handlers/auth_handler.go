package handlers

import (
	"errors"

	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/G381N/bug-besty/internal/transport/http/dto"
	"github.com/G381N/bug-besty/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service ports.AuthService
	logger  *logger.Logger
}

func NewAuthHandler(service ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// currentUser returns the session user stored by the auth middleware.
func currentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(middleware.UserLocalKey).(*domain.User)
	return user
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
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

	user, err := h.service.Signup(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: "email already registered",
			})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Errorw("signup_failed", "email", req.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to create account",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UserToResponse(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	token, user, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "invalid email or password",
			})
		}
		h.logger.Errorw("login_failed", "email", req.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "login failed",
		})
	}

	return c.JSON(dto.AuthResponse{
		Token: token,
		User:  dto.UserToResponse(user),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		if err := h.service.Logout(c.Context(), auth[len(prefix):]); err != nil {
			h.logger.Warnw("logout_failed", "error", err)
		}
	}
	return c.JSON(dto.SuccessResponse{Message: "logged out"})
}

package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/G381N/bug-besty/internal/domain"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
)

type stubAuthService struct {
	users map[string]*domain.User
}

func (s *stubAuthService) Signup(ctx context.Context, email, password, name string) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return "", nil, nil
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error { return nil }

func (s *stubAuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	user, ok := s.users[token]
	if !ok {
		return nil, services.ErrSessionInvalid
	}
	return user, nil
}

func TestSessionAuth(t *testing.T) {
	auth := &stubAuthService{users: map[string]*domain.User{
		"valid-token": {ID: 7, Email: "alice@example.com"},
	}}

	app := fiber.New()
	app.Get("/protected", SessionAuth(auth, logger.NewNop()), func(c *fiber.Ctx) error {
		user := c.Locals(UserLocalKey).(*domain.User)
		return c.JSON(fiber.Map{"user_id": user.ID})
	})

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestTriggerAuth(t *testing.T) {
	app := fiber.New()
	app.Post("/trigger", TriggerAuth("hunter2", logger.NewNop()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("wrong secret", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/trigger", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("correct secret", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/trigger", nil)
		req.Header.Set("Authorization", "Bearer hunter2")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestTriggerAuthRejectsWhenUnconfigured(t *testing.T) {
	app := fiber.New()
	app.Post("/trigger", TriggerAuth("", logger.NewNop()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/trigger", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/G381N/bug-besty/internal/config"
	"github.com/G381N/bug-besty/internal/core/services"
	"github.com/G381N/bug-besty/internal/infrastructure/db"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/G381N/bug-besty/internal/infrastructure/taskstore"
	"github.com/G381N/bug-besty/internal/sources"
	"github.com/G381N/bug-besty/internal/transport/http/handlers"
	httpmw "github.com/G381N/bug-besty/internal/transport/http/middleware"
)

type RouterConfig struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *logger.Logger
	Config *config.Config
}

func SetupRoutes(app *fiber.App, cfg RouterConfig) {
	// Initialize repositories
	userRepo := db.NewUserRepository(cfg.DB, cfg.Logger)
	projectRepo := db.NewProjectRepository(cfg.DB, cfg.Logger)
	subdomainRepo := db.NewSubdomainRepository(cfg.DB, cfg.Logger)
	vulnRepo := db.NewVulnerabilityRepository(cfg.DB, cfg.Logger)
	activityRepo := db.NewActivityRepository(cfg.DB, cfg.Logger)

	taskStore := taskstore.NewRedisTaskStore(cfg.Redis, cfg.Logger)
	sessionStore := taskstore.NewRedisSessionStore(cfg.Redis)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionStore, cfg.Config.Auth.SessionTTL, cfg.Logger)

	projectService := services.NewProjectService(services.ProjectServiceConfig{
		ProjectRepo:   projectRepo,
		SubdomainRepo: subdomainRepo,
		VulnRepo:      vulnRepo,
		ActivityRepo:  activityRepo,
		TaskStore:     taskStore,
		Logger:        cfg.Logger,
	})

	subdomainService := services.NewSubdomainService(subdomainRepo, vulnRepo, projectRepo, cfg.Logger)
	vulnService := services.NewVulnerabilityService(vulnRepo, subdomainRepo, cfg.Logger)

	enumerator := services.NewEnumerationService(sources.NewRegistry(cfg.Config.Enumeration), cfg.Logger)

	taskRunner := services.NewTaskRunnerService(services.TaskRunnerConfig{
		TaskStore:     taskStore,
		Enumerator:    enumerator,
		ProjectRepo:   projectRepo,
		SubdomainRepo: subdomainRepo,
		VulnRepo:      vulnRepo,
		ActivityRepo:  activityRepo,
		ChunkSize:     cfg.Config.Enumeration.ChunkSize,
		Logger:        cfg.Logger,
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Logger)
	projectHandler := handlers.NewProjectHandler(projectService, subdomainService, cfg.Logger)
	subdomainHandler := handlers.NewSubdomainHandler(subdomainService, vulnService, projectService, cfg.Logger)
	vulnHandler := handlers.NewVulnerabilityHandler(vulnService, cfg.Logger)
	taskHandler := handlers.NewTaskHandler(taskRunner, projectService, cfg.Logger)
	taskStreamHandler := handlers.NewTaskStreamHandler(taskRunner, cfg.Logger)

	sessionAuth := httpmw.SessionAuth(authService, cfg.Logger)
	triggerAuth := httpmw.TriggerAuth(cfg.Config.Auth.TriggerSecret, cfg.Logger)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Task progress stream
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws/tasks/:id", websocket.New(taskStreamHandler.Handle))

	// API v1 routes
	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	// Task trigger route; authenticated by the shared trigger secret, not
	// a user session, because the caller is an external scheduler.
	api.Post("/tasks/process", triggerAuth, taskHandler.ProcessTask)

	// Task status routes
	tasks := api.Group("/tasks", sessionAuth)
	tasks.Get("/:id", taskHandler.GetTask)

	// Project routes
	projects := api.Group("/projects", sessionAuth)
	projects.Post("/", projectHandler.CreateProject)
	projects.Get("/", projectHandler.GetProjects)
	projects.Get("/:id", projectHandler.GetProject)
	projects.Get("/:id/stats", projectHandler.GetProjectStats)
	projects.Get("/:id/timeline", projectHandler.GetTimeline)
	projects.Delete("/:id", projectHandler.DeleteProject)
	projects.Get("/:id/subdomains", projectHandler.GetSubdomains)
	projects.Post("/:id/subdomains", projectHandler.AddSubdomain)

	// Subdomain routes
	subdomains := api.Group("/subdomains", sessionAuth)
	subdomains.Get("/:id/vulnerabilities", subdomainHandler.GetVulnerabilities)
	subdomains.Delete("/:id", subdomainHandler.DeleteSubdomain)

	// Vulnerability routes
	vulnerabilities := api.Group("/vulnerabilities", sessionAuth)
	vulnerabilities.Patch("/:id", vulnHandler.UpdateVulnerability)
}

package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database/migration"
	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/delivery/http/middleware"
	"portfolio-api/internal/delivery/http/routes"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/resource"
	"portfolio-api/internal/usecase"
	"portfolio-api/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	container *Container
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	migCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := (migration.Runner{Migrations: migration.Default}).Run(migCtx, c.DB); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	if cfg.Database.SeedOnStart {
		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(migCtx, c.DB); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}

	go c.Hub.Run()
	ws.SetDefaultHub(c.Hub)

	app := &App{Fiber: New(c), container: c}
	return app, c.Close, nil
}

// New assembles the fiber app from an already-built container. Split out of
// Bootstrap so tests can run the full route surface against fakes.
func New(c *Container) *fiber.App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
		// Room for a max-size upload plus multipart framing. Oversized files
		// still get a 400 from the upload usecase, not a transport 413.
		BodyLimit: usecase.MaxUploadSize + 1<<20,
	})

	registerGlobalMiddleware(f, c.Config)
	registerRoutes(f, c)

	return f
}

func registerGlobalMiddleware(f *fiber.App, cfg config.Config) {
	if f == nil {
		return
	}

	f.Use(middleware.NewErrorMiddleware(log.Default()).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(log.Default()).Middleware())

	if origin := strings.TrimSpace(cfg.App.CORSOrigin); origin != "" {
		f.Use(cors.New(cors.Config{
			AllowOrigins: []string{origin},
			AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		}))
	}
}

func registerRoutes(f *fiber.App, c *Container) {
	if f == nil || c == nil {
		return
	}

	logger := log.Default()

	repo := repository.NewPostgresDocumentRepository(c.DB)
	resourceUC := usecase.NewResourceUsecase(repo, c.Storage, logger)
	uploadUC := usecase.NewUploadUsecase(c.Storage, logger)
	authUC := usecase.NewAuthUsecase(c.Config.Auth, c.JWT)

	resourceHandlers := make([]*handler.ResourceHandler, 0, len(resource.All))
	for _, def := range resource.All {
		resourceHandlers = append(resourceHandlers, handler.NewResourceHandler(def, resourceUC, ws.NotifyResourceUpdated))
	}

	guard := middleware.NewAuthMiddleware(c.JWT).Middleware()

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewAuthHandler(authUC),
		handler.NewUploadHandler(uploadUC),
		resourceHandlers,
		ws.NewHandler(c.Hub, logger),
		guard,
	)
	registry.Register(f)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

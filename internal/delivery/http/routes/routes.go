package routes

import (
	"portfolio-api/internal/delivery/http/handler"
	"portfolio-api/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry wires every handler under /api. Public list routes are ungated;
// the guard protects everything mutating plus the whole file proxy.
type Registry struct {
	health    *handler.HealthHandler
	auth      *handler.AuthHandler
	upload    *handler.UploadHandler
	resources []*handler.ResourceHandler
	invalid   *ws.Handler
	guard     fiber.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	upload *handler.UploadHandler,
	resources []*handler.ResourceHandler,
	invalid *ws.Handler,
	guard fiber.Handler,
) *Registry {
	return &Registry{
		health:    health,
		auth:      auth,
		upload:    upload,
		resources: resources,
		invalid:   invalid,
		guard:     guard,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	api := app.Group("/api")

	r.health.RegisterRoutes(api)
	r.auth.RegisterRoutes(api)

	for _, h := range r.resources {
		h.RegisterRoutes(api, r.guard)
	}
	r.upload.RegisterRoutes(api, r.guard)

	if r.invalid != nil {
		api.Get("/ws", r.invalid.HandleInvalidations)
	}
}

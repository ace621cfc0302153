package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Dinesh1441/carstreet-sub002/internal/config"
	"github.com/Dinesh1441/carstreet-sub002/internal/handler"
	"github.com/Dinesh1441/carstreet-sub002/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	LeadHandler        *handler.LeadHandler
	CarHandler         *handler.CarHandler
	DocumentHandler    *handler.DocumentHandler
	OpportunityHandler *handler.OpportunityHandler
	TimelineHandler    *handler.TimelineHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.LeadHandler != nil {
		leads := api.Group("/leads", jwtMiddleware)
		deps.LeadHandler.Register(leads)

		// The timeline read surface lives under the lead it is scoped to.
		if deps.TimelineHandler != nil {
			deps.TimelineHandler.Register(leads)
		}
	}

	if deps.CarHandler != nil {
		deps.CarHandler.Register(api.Group("/cars", jwtMiddleware))
	}

	if deps.DocumentHandler != nil {
		deps.DocumentHandler.Register(api.Group("/documents", jwtMiddleware))
	}

	if deps.OpportunityHandler != nil {
		deps.OpportunityHandler.Register(api.Group("/opportunities", jwtMiddleware))
	}
}

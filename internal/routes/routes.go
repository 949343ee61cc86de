// Package routes defines the API routing configuration.
package routes

import (
	"payments/internal/handlers"
	"payments/internal/repositories"
	"payments/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Accounts     repositories.AccountRepository
	Transfers    transfer.Service
	Gatherer     prometheus.Gatherer
	HealthChecks map[string]handlers.HealthCheckFunc
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	health := handlers.NewHealthHandler(deps.HealthChecks)
	app.Get("/health", health.HealthCheck)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("Welcome to the payments API!") })

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/v1")

	transferHandler := handlers.NewTransferHandler(deps.Transfers)
	v1.Post("/payments", transferHandler.Transfer)

	accountHandler := handlers.NewAccountHandler(deps.Accounts)
	accounts := v1.Group("/accounts")
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.Get)
	accounts.Delete("/:id", accountHandler.Delete)
}

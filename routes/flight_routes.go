package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sendbyop/sendbyop-backend/handlers"
	"github.com/sendbyop/sendbyop-backend/middleware"
)

func FlightRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/flights", handlers.ListFlights)
	api.Get("/flights/:id", handlers.GetFlight)

	flight := api.Group("/flights", middleware.Protected())
	flight.Post("", handlers.PublishFlight)
	flight.Post("/:id/cancel", handlers.CancelFlight)
}

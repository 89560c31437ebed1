package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sendbyop/sendbyop-backend/handlers"
	"github.com/sendbyop/sendbyop-backend/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/settings", handlers.GetPlatformSettings)
	admin.Put("/settings", handlers.UpdatePlatformSettings)
	admin.Get("/refundable-bookings", handlers.ListRefundableBookings)
	admin.Post("/refundable-bookings/:id/process", handlers.ProcessRefundableBooking)
}

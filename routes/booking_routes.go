package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sendbyop/sendbyop-backend/handlers"
	"github.com/sendbyop/sendbyop-backend/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Post("", handlers.CreateBooking)
	booking.Get("/me", handlers.GetMyBookings)
	booking.Get("/traveler", handlers.GetTravelerBookings)
	booking.Get("/:id", handlers.GetBooking)
	booking.Get("/:id/refund-preview", handlers.GetRefundPreview)
	booking.Post("/:id/confirm", handlers.ConfirmBooking)
	booking.Post("/:id/reject", handlers.RejectBooking)
	booking.Post("/:id/pay", handlers.PayBooking)
	booking.Post("/:id/cancel", handlers.CancelBooking)
	booking.Post("/:id/handover", handlers.HandOverParcel())
	booking.Post("/:id/receive", handlers.ReceiveParcel())
	booking.Post("/:id/in-transit", handlers.MarkInTransit())
	booking.Post("/:id/deliver", handlers.DeliverParcel())
	booking.Post("/:id/delivered", handlers.MarkDelivered())
	booking.Post("/:id/pickup", handlers.PickUpParcel())

	// Receiver-facing, reached via the delivery notification link.
	api.Post("/bookings/:id/confirm-reception", handlers.ConfirmReception)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sendbyop/sendbyop-backend/handlers"
	"github.com/sendbyop/sendbyop-backend/middleware"
)

func FraudRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	fraud := api.Group("/fraud", middleware.Protected())
	fraud.Get("/status", handlers.GetFraudStatus)
	fraud.Get("/limits", handlers.GetFraudLimits)
}

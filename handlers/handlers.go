package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/sendbyop/sendbyop-backend/notifications"
	"github.com/sendbyop/sendbyop-backend/services"
)

var validate = validator.New()

var (
	bookingService  *services.BookingService
	flightService   *services.FlightService
	settingsService *services.SettingsService
	fraudService    *services.FraudService
	emailService    *notifications.BrevoService
)

// Init wires the service layer into the handler package. Called once from
// main before the routes are mounted.
func Init(
	bookings *services.BookingService,
	flights *services.FlightService,
	settings *services.SettingsService,
	fraud *services.FraudService,
	email *notifications.BrevoService,
) {
	bookingService = bookings
	flightService = flights
	settingsService = settings
	fraudService = fraud
	emailService = email
}

// actorID extracts the authenticated customer id from the JWT claims set
// by the auth middleware.
func actorID(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	return uuid.Parse(claims["user_id"].(string))
}

func actorEmail(c *fiber.Ctx) string {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	if email, ok := claims["email"].(string); ok {
		return email
	}
	return ""
}

// serviceError maps a typed service error onto the HTTP surface.
func serviceError(c *fiber.Ctx, err error) error {
	se := services.AsServiceError(err)
	status := fiber.StatusInternalServerError
	switch se.Code {
	case services.CodeNotFound:
		status = fiber.StatusNotFound
	case services.CodeUnauthorized:
		status = fiber.StatusForbidden
	case services.CodeInvalidStatus:
		status = fiber.StatusConflict
	case services.CodeInvalidData:
		status = fiber.StatusBadRequest
	case services.CodeFraudLimitReached:
		status = fiber.StatusTooManyRequests
	case services.CodePaymentFailed:
		status = fiber.StatusPaymentRequired
	}
	return c.Status(status).JSON(fiber.Map{"error": se.Message})
}

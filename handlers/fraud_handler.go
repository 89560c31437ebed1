package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetFraudStatus reports the caller's remaining weekly quotas.
func GetFraudStatus(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	status, err := fraudService.UserStatus(&customerID, actorEmail(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(status)
}

// GetFraudLimits exposes the configured quotas.
func GetFraudLimits(c *fiber.Ctx) error {
	maxBookings, maxFlights, enabled, err := fraudService.CurrentLimits()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"max_bookings_per_week":    maxBookings,
		"max_flights_per_week":     maxFlights,
		"fraud_protection_enabled": enabled,
	})
}

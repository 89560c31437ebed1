package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sendbyop/sendbyop-backend/services"
)

type PublishFlightRequest struct {
	DepartureAirport string    `json:"departure_airport" validate:"required,min=3,max=5"`
	ArrivalAirport   string    `json:"arrival_airport" validate:"required,min=3,max=5"`
	DepartureTime    time.Time `json:"departure_time" validate:"required"`
	ArrivalTime      time.Time `json:"arrival_time" validate:"required"`
	AmountPerKg      string    `json:"amount_per_kg" validate:"required"`
	KgCount          string    `json:"kg_count" validate:"required"`
}

func PublishFlight(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	var req PublishFlightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	amountPerKg, err := decimal.NewFromString(req.AmountPerKg)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid amount_per_kg"})
	}
	kgCount, err := decimal.NewFromString(req.KgCount)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid kg_count"})
	}

	flight, err := flightService.PublishFlight(customerID, services.PublishFlightInput{
		DepartureAirport: req.DepartureAirport,
		ArrivalAirport:   req.ArrivalAirport,
		DepartureTime:    req.DepartureTime,
		ArrivalTime:      req.ArrivalTime,
		AmountPerKg:      amountPerKg,
		KgCount:          kgCount,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(flight)
}

func ListFlights(c *fiber.Ctx) error {
	flights, err := flightService.ListActiveFlights()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(flights)
}

func GetFlight(c *fiber.Ctx) error {
	flightID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid flight id"})
	}
	flight, err := flightService.GetFlight(flightID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(flight)
}

type CancelFlightRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func CancelFlight(c *fiber.Ctx) error {
	customerID, err := actorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	flightID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid flight id"})
	}
	var req CancelFlightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	flight, err := flightService.CancelFlight(flightID, customerID, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(flight)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sendbyop/sendbyop-backend/models"
)

func GetPlatformSettings(c *fiber.Ctx) error {
	settings, err := settingsService.GetSettings()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

type UpdateSettingsRequest struct {
	MinPricePerKg              decimal.Decimal `json:"min_price_per_kg" validate:"required"`
	MaxPricePerKg              decimal.Decimal `json:"max_price_per_kg" validate:"required"`
	TravelerSharePercentage    decimal.Decimal `json:"traveler_share_percentage" validate:"required"`
	PlatformSharePercentage    decimal.Decimal `json:"platform_share_percentage" validate:"required"`
	VATPercentage              decimal.Decimal `json:"vat_percentage"`
	PaymentTimeoutHours        int             `json:"payment_timeout_hours" validate:"required"`
	AutoPayoutDelayHours       int             `json:"auto_payout_delay_hours" validate:"required"`
	CancellationDeadlineHours  int             `json:"cancellation_deadline_hours" validate:"required"`
	CriticalCancellationHours  int             `json:"critical_cancellation_hours" validate:"required"`
	RefundRateBeforeDeadline   decimal.Decimal `json:"refund_rate_before_deadline" validate:"required"`
	InsuranceAmount            decimal.Decimal `json:"insurance_amount"`
	CommissionPercentage       decimal.Decimal `json:"commission_percentage"`
	LateCancellationPenalty    decimal.Decimal `json:"late_cancellation_penalty"`
	MaxBookingsPerWeek         int             `json:"max_bookings_per_week" validate:"required,min=1"`
	MaxFlightsPerWeek          int             `json:"max_flights_per_week" validate:"required,min=1"`
	FraudProtectionEnabled     bool            `json:"fraud_protection_enabled"`
	ReceptionConfirmationHours int             `json:"reception_confirmation_hours" validate:"required"`
	ReviewDeadlineDays         int             `json:"review_deadline_days" validate:"required"`
}

func UpdatePlatformSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated := models.PlatformSettings{
		MinPricePerKg:              req.MinPricePerKg,
		MaxPricePerKg:              req.MaxPricePerKg,
		TravelerSharePercentage:    req.TravelerSharePercentage,
		PlatformSharePercentage:    req.PlatformSharePercentage,
		VATPercentage:              req.VATPercentage,
		PaymentTimeoutHours:        req.PaymentTimeoutHours,
		AutoPayoutDelayHours:       req.AutoPayoutDelayHours,
		CancellationDeadlineHours:  req.CancellationDeadlineHours,
		CriticalCancellationHours:  req.CriticalCancellationHours,
		RefundRateBeforeDeadline:   req.RefundRateBeforeDeadline,
		InsuranceAmount:            req.InsuranceAmount,
		CommissionPercentage:       req.CommissionPercentage,
		LateCancellationPenalty:    req.LateCancellationPenalty,
		MaxBookingsPerWeek:         req.MaxBookingsPerWeek,
		MaxFlightsPerWeek:          req.MaxFlightsPerWeek,
		FraudProtectionEnabled:     req.FraudProtectionEnabled,
		ReceptionConfirmationHours: req.ReceptionConfirmationHours,
		ReviewDeadlineDays:         req.ReviewDeadlineDays,
	}

	settings, err := settingsService.UpdateSettings(&updated, actorEmail(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

func ListRefundableBookings(c *fiber.Ctx) error {
	entries, err := flightService.ListRefundableBookings()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entries)
}

type ProcessRefundRequest struct {
	Approve bool `json:"approve"`
}

func ProcessRefundableBooking(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid refundable booking id"})
	}
	var req ProcessRefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	entry, err := flightService.ProcessRefundableBooking(entryID, req.Approve)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(entry)
}

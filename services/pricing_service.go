package services

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/sendbyop/sendbyop-backend/models"
)

var hundred = decimal.NewFromInt(100)

// PricingService holds the money arithmetic of the platform: booking price,
// cancellation refunds, traveler payouts and the settings bounds they all
// depend on. Every function is pure over its inputs.
type PricingService struct{}

func NewPricingService() *PricingService {
	return &PricingService{}
}

// CalculatePrice returns the booking total. The floor is the flight rate
// times the parcel weight; a proposed price at or above the floor wins, a
// proposal below the floor is silently raised to the floor.
func (s *PricingService) CalculatePrice(weightKg, amountPerKg decimal.Decimal, proposedPrice *decimal.Decimal) decimal.Decimal {
	floorPrice := amountPerKg.Mul(weightKg)
	if proposedPrice == nil {
		return floorPrice
	}
	if proposedPrice.GreaterThanOrEqual(floorPrice) {
		return *proposedPrice
	}
	log.Printf("Proposed price %s below flight price %s, using flight price", proposedPrice.String(), floorPrice.String())
	return floorPrice
}

// RefundCalculation is the outcome of a cancellation attempt on a booking.
type RefundCalculation struct {
	CanCancel    bool            `json:"can_cancel"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	Reason       string          `json:"reason"`
}

// CalculateRefund applies the tiered cancellation policy. Unpaid bookings
// cancel free with no refund. Paid bookings refund
// amountPaid * refundRateBeforeDeadline% + insuranceAmount, unless the
// flight departs within criticalCancellationHours, in which case the
// cancellation is blocked.
func (s *PricingService) CalculateRefund(isPaid bool, amountPaid decimal.Decimal, hoursUntilFlight float64, settings *models.PlatformSettings) RefundCalculation {
	if !isPaid {
		return RefundCalculation{
			CanCancel:    true,
			RefundAmount: decimal.Zero,
			Reason:       "booking not paid, cancellation is free",
		}
	}
	if hoursUntilFlight < float64(settings.CriticalCancellationHours) {
		return RefundCalculation{
			CanCancel:    false,
			RefundAmount: decimal.Zero,
			Reason:       fmt.Sprintf("cancellation blocked within %d hours of departure", settings.CriticalCancellationHours),
		}
	}
	refund := amountPaid.
		Mul(settings.RefundRateBeforeDeadline).
		Div(hundred).
		Add(settings.InsuranceAmount)
	return RefundCalculation{
		CanCancel:    true,
		RefundAmount: refund,
		Reason:       "refund per cancellation policy",
	}
}

// CalculateTravelerEarnings returns the traveler's net payout:
// total minus the platform commission minus the insurance amount.
func (s *PricingService) CalculateTravelerEarnings(totalAmount decimal.Decimal, settings *models.PlatformSettings) decimal.Decimal {
	commission := totalAmount.Mul(settings.CommissionPercentage).Div(hundred)
	return totalAmount.Sub(commission).Sub(settings.InsuranceAmount)
}

// ValidateSettings checks a settings update before it is written. Any
// violation rejects the whole update with a field-specific message.
func (s *PricingService) ValidateSettings(settings *models.PlatformSettings) error {
	percentageSum := settings.TravelerSharePercentage.
		Add(settings.PlatformSharePercentage).
		Add(settings.VATPercentage)
	if !percentageSum.Equal(hundred) {
		return NewInvalidDataError(fmt.Sprintf("traveler, platform and VAT percentages must sum to 100, got %s", percentageSum.String()))
	}
	if !settings.MinPricePerKg.LessThan(settings.MaxPricePerKg) {
		return NewInvalidDataError("minPricePerKg must be lower than maxPricePerKg")
	}
	if settings.PaymentTimeoutHours < 2 || settings.PaymentTimeoutHours > 24 {
		return NewInvalidDataError("paymentTimeoutHours must be between 2 and 24")
	}
	if settings.AutoPayoutDelayHours < 12 || settings.AutoPayoutDelayHours > 72 {
		return NewInvalidDataError("autoPayoutDelayHours must be between 12 and 72")
	}
	if settings.CancellationDeadlineHours < 12 || settings.CancellationDeadlineHours > 72 {
		return NewInvalidDataError("cancellationDeadlineHours must be between 12 and 72")
	}
	if settings.LateCancellationPenalty.IsNegative() || settings.LateCancellationPenalty.GreaterThan(decimal.NewFromInt(1)) {
		return NewInvalidDataError("lateCancellationPenalty must be between 0 and 1")
	}
	return nil
}

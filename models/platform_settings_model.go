package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlatformSettings is a single-row table holding every tunable of the
// marketplace. Reads go through the settings service, which creates the
// default row on first access.
type PlatformSettings struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`

	MinPricePerKg decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"min_price_per_kg"`
	MaxPricePerKg decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"max_price_per_kg"`

	TravelerSharePercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"traveler_share_percentage"`
	PlatformSharePercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"platform_share_percentage"`
	VATPercentage           decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vat_percentage"`

	PaymentTimeoutHours       int `gorm:"not null" json:"payment_timeout_hours"`
	AutoPayoutDelayHours      int `gorm:"not null" json:"auto_payout_delay_hours"`
	CancellationDeadlineHours int `gorm:"not null" json:"cancellation_deadline_hours"`
	CriticalCancellationHours int `gorm:"not null" json:"critical_cancellation_hours"`

	RefundRateBeforeDeadline decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"refund_rate_before_deadline"`
	InsuranceAmount          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"insurance_amount"`
	CommissionPercentage     decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"commission_percentage"`
	LateCancellationPenalty  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"late_cancellation_penalty"`

	MaxBookingsPerWeek     int  `gorm:"not null" json:"max_bookings_per_week"`
	MaxFlightsPerWeek      int  `gorm:"not null" json:"max_flights_per_week"`
	FraudProtectionEnabled bool `gorm:"not null;default:true" json:"fraud_protection_enabled"`

	ReceptionConfirmationHours int `gorm:"not null" json:"reception_confirmation_hours"`
	ReviewDeadlineDays         int `gorm:"not null" json:"review_deadline_days"`

	UpdatedBy string `gorm:"size:255" json:"updated_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPlatformSettings returns the settings row the platform boots with.
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		MinPricePerKg:              decimal.NewFromFloat(5.00),
		MaxPricePerKg:              decimal.NewFromFloat(50.00),
		TravelerSharePercentage:    decimal.NewFromInt(70),
		PlatformSharePercentage:    decimal.NewFromInt(25),
		VATPercentage:              decimal.NewFromInt(5),
		PaymentTimeoutHours:        12,
		AutoPayoutDelayHours:       24,
		CancellationDeadlineHours:  24,
		CriticalCancellationHours:  4,
		RefundRateBeforeDeadline:   decimal.NewFromInt(90),
		InsuranceAmount:            decimal.NewFromFloat(5.00),
		CommissionPercentage:       decimal.NewFromInt(15),
		LateCancellationPenalty:    decimal.NewFromFloat(0.50),
		MaxBookingsPerWeek:         2,
		MaxFlightsPerWeek:          2,
		FraudProtectionEnabled:     true,
		ReceptionConfirmationHours: 72,
		ReviewDeadlineDays:         90,
	}
}

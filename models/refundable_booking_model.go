package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundableBooking is a work-queue entry created when a traveler cancels a
// flight. Each row is one booking whose sender must be made whole; support
// processes the queue manually.
type RefundableBooking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`
	FlightID  uuid.UUID `gorm:"type:uuid;not null;index" json:"flight_id"`

	AmountPaid decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount_paid"`
	Reason     string          `gorm:"type:text" json:"reason"`

	// 0 = pending review, 1 = refund approved, 2 = rejected.
	Validated int `gorm:"not null;default:0" json:"validated"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"booking"`

	CreatedAt   time.Time  `json:"created_at"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

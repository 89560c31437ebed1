package models

import (
	"time"

	"github.com/google/uuid"
)

// FlightCancellation is the audit record written when a traveler cancels a
// flight, alongside the refundable-booking queue entries.
type FlightCancellation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FlightID   uuid.UUID `gorm:"type:uuid;not null;index" json:"flight_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null" json:"customer_id"`

	Reason           string `gorm:"type:text" json:"reason"`
	AffectedBookings int    `gorm:"not null" json:"affected_bookings"`
	Viewed           bool   `gorm:"not null;default:false" json:"viewed"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Booking struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	FlightID   uuid.UUID `gorm:"type:uuid;not null;index" json:"flight_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null" json:"receiver_id"`

	Status     BookingStatus   `gorm:"size:40;not null;default:'PENDING_CONFIRMATION'" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`

	BookingDate     time.Time  `gorm:"not null" json:"booking_date"`
	ConfirmedAt     *time.Time `json:"confirmed_at,omitempty"`
	PaymentDeadline *time.Time `json:"payment_deadline,omitempty"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty"`
	PickedUpAt      *time.Time `json:"picked_up_at,omitempty"`

	CancellationReason *string `gorm:"type:text" json:"cancellation_reason,omitempty"`

	// Legacy flag carried over from the first generation of the product.
	// Must always agree with Status; only the booking service writes it.
	Cancelled bool `gorm:"not null;default:false" json:"cancelled"`

	// Set by the review-window sweep once the review period has elapsed.
	ReviewClosed bool `gorm:"not null;default:false" json:"review_closed"`

	PayoutAmount   *decimal.Decimal `gorm:"type:numeric(10,2)" json:"payout_amount,omitempty"`
	PayoutRecorded bool             `gorm:"not null;default:false" json:"payout_recorded"`

	Customer     Customer      `gorm:"foreignkey:CustomerID" json:"customer"`
	Flight       Flight        `gorm:"foreignkey:FlightID" json:"flight"`
	Receiver     Receiver      `gorm:"foreignkey:ReceiverID" json:"receiver"`
	Parcels      []Parcel      `gorm:"foreignkey:BookingID" json:"parcels"`
	ParcelPhotos []ParcelPhoto `gorm:"foreignkey:BookingID" json:"parcel_photos"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

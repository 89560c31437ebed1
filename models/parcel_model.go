package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Parcel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"booking_id"`
	Description string          `gorm:"type:text" json:"description"`
	WeightKg    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"weight_kg"`
	ParcelType  string          `gorm:"size:50" json:"parcel_type"`

	CreatedAt time.Time `json:"created_at"`
}

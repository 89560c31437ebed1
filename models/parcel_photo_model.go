package models

import (
	"time"

	"github.com/google/uuid"
)

type ParcelPhoto struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID    uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`
	PhotoURL     string    `gorm:"size:500;not null" json:"photo_url"`
	DisplayOrder int       `gorm:"not null" json:"display_order"`
	IsPrimary    bool      `gorm:"not null;default:false" json:"is_primary"`

	CreatedAt time.Time `json:"created_at"`
}

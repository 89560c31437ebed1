package models

import (
	"time"

	"github.com/google/uuid"
)

// Receiver is the final addressee of a parcel. Receivers are not platform
// users; they are resolved or created from the booking request.
type Receiver struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName   string    `gorm:"size:100" json:"first_name"`
	LastName    string    `gorm:"size:100" json:"last_name"`
	Email       string    `gorm:"size:255;index" json:"email"`
	PhoneNumber string    `gorm:"size:30;index" json:"phone_number"`
	Address     string    `gorm:"type:text" json:"address"`
	City        string    `gorm:"size:100" json:"city"`
	Country     string    `gorm:"size:100" json:"country"`
	Status      string    `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type FlightStatus string

const (
	FlightStatusActive    FlightStatus = "ACTIVE"
	FlightStatusCancelled FlightStatus = "CANCELLED"
	FlightStatusExpired   FlightStatus = "EXPIRED"
)

type Flight struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   Customer  `gorm:"foreignkey:CustomerID" json:"customer"`

	DepartureAirport string    `gorm:"size:10;not null" json:"departure_airport"`
	ArrivalAirport   string    `gorm:"size:10;not null" json:"arrival_airport"`
	DepartureTime    time.Time `gorm:"not null" json:"departure_time"`
	ArrivalTime      time.Time `gorm:"not null" json:"arrival_time"`

	AmountPerKg decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount_per_kg"`
	KgCount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"kg_count"`

	Status             FlightStatus `gorm:"size:20;not null;default:'ACTIVE'" json:"status"`
	CancellationReason *string      `gorm:"type:text" json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

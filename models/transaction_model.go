package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypePayment TransactionType = "PAYMENT"
	TransactionTypeRefund  TransactionType = "REFUND"
	TransactionTypePayout  TransactionType = "PAYOUT"
)

type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;index" json:"booking_id"`

	Type          TransactionType `gorm:"size:20;not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	Status        string          `gorm:"size:20;not null;default:'COMPLETED'" json:"status"`

	Reference string `gorm:"size:100" json:"reference"`

	CreatedAt time.Time `json:"created_at"`
}

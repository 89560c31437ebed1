package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
)

type TransactionRepository interface {
	Create(txn *models.Transaction) error
	ListByBooking(bookingID uuid.UUID) ([]models.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(txn *models.Transaction) error {
	return r.db.Create(txn).Error
}

func (r *transactionRepository) ListByBooking(bookingID uuid.UUID) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.Where("booking_id = ?", bookingID).Order("created_at ASC").Find(&txns).Error
	return txns, err
}

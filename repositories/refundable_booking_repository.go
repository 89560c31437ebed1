package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
)

type RefundableBookingRepository interface {
	Create(entry *models.RefundableBooking) error
	FindByID(id uuid.UUID) (*models.RefundableBooking, error)
	ListPending() ([]models.RefundableBooking, error)
	Save(entry *models.RefundableBooking) error
}

type refundableBookingRepository struct {
	db *gorm.DB
}

func NewRefundableBookingRepository(db *gorm.DB) RefundableBookingRepository {
	return &refundableBookingRepository{db: db}
}

func (r *refundableBookingRepository) Create(entry *models.RefundableBooking) error {
	return r.db.Create(entry).Error
}

func (r *refundableBookingRepository) FindByID(id uuid.UUID) (*models.RefundableBooking, error) {
	var entry models.RefundableBooking
	if err := r.db.Preload("Booking").Preload("Booking.Customer").
		First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *refundableBookingRepository) ListPending() ([]models.RefundableBooking, error) {
	var entries []models.RefundableBooking
	err := r.db.
		Preload("Booking").
		Preload("Booking.Customer").
		Where("validated = ?", 0).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *refundableBookingRepository) Save(entry *models.RefundableBooking) error {
	return r.db.Save(entry).Error
}

package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	FindByBooking(bookingID uuid.UUID) (*models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) FindByBooking(bookingID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

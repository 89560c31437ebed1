package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sendbyop/sendbyop-backend/models"
)

// BookingRepository is the persistence surface of the booking lifecycle.
// UpdateWithLock loads the row FOR UPDATE inside a transaction and applies
// fn, so concurrent transitions on the same booking serialize.
type BookingRepository interface {
	Create(booking *models.Booking) error
	FindByID(id uuid.UUID) (*models.Booking, error)
	UpdateWithLock(id uuid.UUID, fn func(booking *models.Booking) error) error
	ListByCustomer(customerID uuid.UUID) ([]models.Booking, error)
	ListByTraveler(travelerID uuid.UUID) ([]models.Booking, error)
	ListByFlight(flightID uuid.UUID) ([]models.Booking, error)
	CountByCustomerSince(customerID uuid.UUID, since time.Time) (int64, error)
	CountByEmailSince(email string, since time.Time) (int64, error)
	ListUnpaidPastDeadline(now time.Time) ([]models.Booking, error)
	ListAwaitingReceptionBefore(cutoff time.Time) ([]models.Booking, error)
	ListReviewWindowExpired(cutoff time.Time) ([]models.Booking, error)
	ListPayoutDueBefore(cutoff time.Time) ([]models.Booking, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepository) FindByID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.
		Preload("Customer").
		Preload("Flight").
		Preload("Flight.Customer").
		Preload("Receiver").
		Preload("Parcels").
		Preload("ParcelPhotos", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateWithLock(id uuid.UUID, fn func(booking *models.Booking) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&booking); err != nil {
			return err
		}
		return tx.Save(&booking).Error
	})
}

func (r *bookingRepository) ListByCustomer(customerID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Preload("Flight").
		Preload("Receiver").
		Preload("Parcels").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByTraveler(travelerID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Preload("Customer").
		Preload("Receiver").
		Preload("Parcels").
		Joins("JOIN flights ON flights.id = bookings.flight_id").
		Where("flights.customer_id = ?", travelerID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByFlight(flightID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Preload("Customer").
		Where("flight_id = ?", flightID).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) CountByCustomerSince(customerID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("customer_id = ? AND created_at >= ?", customerID, since).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) CountByEmailSince(email string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Joins("JOIN customers ON customers.id = bookings.customer_id").
		Where("customers.email = ? AND bookings.created_at >= ?", email, since).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) ListUnpaidPastDeadline(now time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Preload("Customer").
		Where("status = ? AND payment_deadline IS NOT NULL AND payment_deadline < ?",
			models.BookingStatusConfirmedUnpaid, now).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListAwaitingReceptionBefore(cutoff time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Where("status IN ? AND updated_at < ?",
			[]models.BookingStatus{models.BookingStatusParcelDelivered, models.BookingStatusDelivered},
			cutoff).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListReviewWindowExpired(cutoff time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Where("status IN ? AND review_closed = ? AND updated_at < ?",
			[]models.BookingStatus{models.BookingStatusConfirmedByReceiver, models.BookingStatusPickedUp},
			false, cutoff).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListPayoutDueBefore(cutoff time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Preload("Flight").
		Preload("Flight.Customer").
		Where("status = ? AND payout_recorded = ? AND updated_at < ?",
			models.BookingStatusConfirmedByReceiver, false, cutoff).
		Find(&bookings).Error
	return bookings, err
}

package repositories

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sendbyop/sendbyop-backend/models"
)

type FlightRepository interface {
	Create(flight *models.Flight) error
	FindByID(id uuid.UUID) (*models.Flight, error)
	UpdateWithLock(id uuid.UUID, fn func(flight *models.Flight) error) error
	ListActive() ([]models.Flight, error)
	ListActiveArrivedBefore(cutoff time.Time) ([]models.Flight, error)
	RecordCancellation(record *models.FlightCancellation) error
	CountByCustomerSince(customerID uuid.UUID, since time.Time) (int64, error)
	CountByEmailSince(email string, since time.Time) (int64, error)
	Save(flight *models.Flight) error
}

type flightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) FlightRepository {
	return &flightRepository{db: db}
}

func (r *flightRepository) Create(flight *models.Flight) error {
	return r.db.Create(flight).Error
}

func (r *flightRepository) FindByID(id uuid.UUID) (*models.Flight, error) {
	var flight models.Flight
	err := r.db.Preload("Customer").First(&flight, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *flightRepository) UpdateWithLock(id uuid.UUID, fn func(flight *models.Flight) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var flight models.Flight
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&flight, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&flight); err != nil {
			return err
		}
		return tx.Save(&flight).Error
	})
}

func (r *flightRepository) ListActive() ([]models.Flight, error) {
	var flights []models.Flight
	err := r.db.
		Preload("Customer").
		Where("status = ? AND departure_time > ?", models.FlightStatusActive, time.Now()).
		Order("departure_time ASC").
		Find(&flights).Error
	return flights, err
}

func (r *flightRepository) ListActiveArrivedBefore(cutoff time.Time) ([]models.Flight, error) {
	var flights []models.Flight
	err := r.db.
		Where("status = ? AND arrival_time < ?", models.FlightStatusActive, cutoff).
		Find(&flights).Error
	return flights, err
}

func (r *flightRepository) RecordCancellation(record *models.FlightCancellation) error {
	return r.db.Create(record).Error
}

func (r *flightRepository) CountByCustomerSince(customerID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Flight{}).
		Where("customer_id = ? AND created_at >= ?", customerID, since).
		Count(&count).Error
	return count, err
}

func (r *flightRepository) CountByEmailSince(email string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Flight{}).
		Joins("JOIN customers ON customers.id = flights.customer_id").
		Where("customers.email = ? AND flights.created_at >= ?", email, since).
		Count(&count).Error
	return count, err
}

func (r *flightRepository) Save(flight *models.Flight) error {
	return r.db.Save(flight).Error
}

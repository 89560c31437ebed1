package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
)

type ReceiverRepository interface {
	Create(receiver *models.Receiver) error
	FindByID(id uuid.UUID) (*models.Receiver, error)
	FindByEmail(email string) (*models.Receiver, error)
	FindByPhone(phone string) (*models.Receiver, error)
}

type receiverRepository struct {
	db *gorm.DB
}

func NewReceiverRepository(db *gorm.DB) ReceiverRepository {
	return &receiverRepository{db: db}
}

func (r *receiverRepository) Create(receiver *models.Receiver) error {
	return r.db.Create(receiver).Error
}

func (r *receiverRepository) FindByID(id uuid.UUID) (*models.Receiver, error) {
	var receiver models.Receiver
	if err := r.db.First(&receiver, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &receiver, nil
}

func (r *receiverRepository) FindByEmail(email string) (*models.Receiver, error) {
	var receiver models.Receiver
	if err := r.db.First(&receiver, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &receiver, nil
}

func (r *receiverRepository) FindByPhone(phone string) (*models.Receiver, error) {
	var receiver models.Receiver
	if err := r.db.First(&receiver, "phone_number = ?", phone).Error; err != nil {
		return nil, err
	}
	return &receiver, nil
}

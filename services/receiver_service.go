package services

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
	"github.com/sendbyop/sendbyop-backend/repositories"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ReceiverInput identifies or describes the parcel addressee. Email or
// phone number is required; both may be given.
type ReceiverInput struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type ReceiverService struct {
	repo repositories.ReceiverRepository
}

func NewReceiverService(repo repositories.ReceiverRepository) *ReceiverService {
	return &ReceiverService{repo: repo}
}

// GetOrCreate resolves an existing receiver by email, then by phone, and
// creates one when neither matches.
func (s *ReceiverService) GetOrCreate(input ReceiverInput) (*models.Receiver, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	phone := strings.TrimSpace(input.PhoneNumber)

	if email == "" && phone == "" {
		return nil, NewInvalidDataError("receiver email or phone number is required")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, NewInvalidDataError("receiver email is not valid")
	}

	if email != "" {
		receiver, err := s.repo.FindByEmail(email)
		if err == nil {
			return receiver, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if phone != "" {
		receiver, err := s.repo.FindByPhone(phone)
		if err == nil {
			return receiver, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	receiver := &models.Receiver{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       email,
		PhoneNumber: phone,
		Address:     strings.TrimSpace(input.Address),
		City:        strings.TrimSpace(input.City),
		Country:     strings.TrimSpace(input.Country),
		Status:      "ACTIVE",
	}
	if err := s.repo.Create(receiver); err != nil {
		return nil, err
	}
	return receiver, nil
}

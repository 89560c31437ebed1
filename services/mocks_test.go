package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sendbyop/sendbyop-backend/models"
)

// MockBookingRepository stands in for the GORM repository. UpdateWithLock
// is stubbed with On("UpdateWithLock", id).Return(err, row): the mock
// applies the transition closure to row, mirroring the locked
// load-mutate-save cycle, and propagates the closure's error.
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(booking *models.Booking) error {
	args := m.Called(booking)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(id uuid.UUID) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateWithLock(id uuid.UUID, fn func(booking *models.Booking) error) error {
	args := m.Called(id)
	if err := args.Error(0); err != nil {
		return err
	}
	row := args.Get(1).(*models.Booking)
	return fn(row)
}

func (m *MockBookingRepository) ListByCustomer(customerID uuid.UUID) ([]models.Booking, error) {
	args := m.Called(customerID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByTraveler(travelerID uuid.UUID) ([]models.Booking, error) {
	args := m.Called(travelerID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByFlight(flightID uuid.UUID) ([]models.Booking, error) {
	args := m.Called(flightID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountByCustomerSince(customerID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(customerID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CountByEmailSince(email string, since time.Time) (int64, error) {
	args := m.Called(email, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) ListUnpaidPastDeadline(now time.Time) ([]models.Booking, error) {
	args := m.Called(now)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAwaitingReceptionBefore(cutoff time.Time) ([]models.Booking, error) {
	args := m.Called(cutoff)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListReviewWindowExpired(cutoff time.Time) ([]models.Booking, error) {
	args := m.Called(cutoff)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListPayoutDueBefore(cutoff time.Time) ([]models.Booking, error) {
	args := m.Called(cutoff)
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(flight *models.Flight) error {
	args := m.Called(flight)
	return args.Error(0)
}

func (m *MockFlightRepository) FindByID(id uuid.UUID) (*models.Flight, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockFlightRepository) UpdateWithLock(id uuid.UUID, fn func(flight *models.Flight) error) error {
	args := m.Called(id)
	if err := args.Error(0); err != nil {
		return err
	}
	row := args.Get(1).(*models.Flight)
	return fn(row)
}

func (m *MockFlightRepository) ListActive() ([]models.Flight, error) {
	args := m.Called()
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListActiveArrivedBefore(cutoff time.Time) ([]models.Flight, error) {
	args := m.Called(cutoff)
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockFlightRepository) RecordCancellation(record *models.FlightCancellation) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockFlightRepository) CountByCustomerSince(customerID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(customerID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlightRepository) CountByEmailSince(email string, since time.Time) (int64, error) {
	args := m.Called(email, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlightRepository) Save(flight *models.Flight) error {
	args := m.Called(flight)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(customer *models.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(id uuid.UUID) (*models.Customer, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(email string) (*models.Customer, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

type MockReceiverRepository struct {
	mock.Mock
}

func (m *MockReceiverRepository) Create(receiver *models.Receiver) error {
	args := m.Called(receiver)
	return args.Error(0)
}

func (m *MockReceiverRepository) FindByID(id uuid.UUID) (*models.Receiver, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receiver), args.Error(1)
}

func (m *MockReceiverRepository) FindByEmail(email string) (*models.Receiver, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receiver), args.Error(1)
}

func (m *MockReceiverRepository) FindByPhone(phone string) (*models.Receiver, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receiver), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get() (*models.PlatformSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlatformSettings), args.Error(1)
}

func (m *MockSettingsRepository) Create(settings *models.PlatformSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) Save(settings *models.PlatformSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(txn *models.Transaction) error {
	args := m.Called(txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByBooking(bookingID uuid.UUID) ([]models.Transaction, error) {
	args := m.Called(bookingID)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

type MockRefundableBookingRepository struct {
	mock.Mock
}

func (m *MockRefundableBookingRepository) Create(entry *models.RefundableBooking) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockRefundableBookingRepository) FindByID(id uuid.UUID) (*models.RefundableBooking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefundableBooking), args.Error(1)
}

func (m *MockRefundableBookingRepository) ListPending() ([]models.RefundableBooking, error) {
	args := m.Called()
	return args.Get(0).([]models.RefundableBooking), args.Error(1)
}

func (m *MockRefundableBookingRepository) Save(entry *models.RefundableBooking) error {
	args := m.Called(entry)
	return args.Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByBooking(bookingID uuid.UUID) (*models.Review, error) {
	args := m.Called(bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

// stubPhotoStore returns deterministic URLs without talking to Cloudinary.
type stubPhotoStore struct {
	uploads int
}

func (s *stubPhotoStore) Store(_ context.Context, _ []byte, _ string) (string, error) {
	s.uploads++
	return fmt.Sprintf("https://cdn.test/parcels/%d.jpg", s.uploads), nil
}

// noopNotifier satisfies the Notifier interface; transition notifications
// run on goroutines, so tests use a stub with no assertions.
type noopNotifier struct{}

func (noopNotifier) SendEmail(_, _, _, _ string) {}

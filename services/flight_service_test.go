package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sendbyop/sendbyop-backend/models"
)

type flightFixture struct {
	flights      *MockFlightRepository
	bookings     *MockBookingRepository
	customers    *MockCustomerRepository
	refundables  *MockRefundableBookingRepository
	transactions *MockTransactionRepository
	settingsRepo *MockSettingsRepository
	svc          *FlightService
}

func newFlightFixture(settings *models.PlatformSettings) *flightFixture {
	f := &flightFixture{
		flights:      new(MockFlightRepository),
		bookings:     new(MockBookingRepository),
		customers:    new(MockCustomerRepository),
		refundables:  new(MockRefundableBookingRepository),
		transactions: new(MockTransactionRepository),
		settingsRepo: new(MockSettingsRepository),
	}
	f.settingsRepo.On("Get").Return(settings, nil)
	pricing := NewPricingService()
	settingsService := NewSettingsService(f.settingsRepo, pricing)
	fraud := NewFraudService(f.bookings, f.flights, settingsService)
	f.svc = NewFlightService(
		f.flights, f.bookings, f.customers, f.refundables, f.transactions,
		settingsService, fraud, noopNotifier{},
	)
	return f
}

func validPublishInput() PublishFlightInput {
	return PublishFlightInput{
		DepartureAirport: "DKR",
		ArrivalAirport:   "CDG",
		DepartureTime:    time.Now().Add(48 * time.Hour),
		ArrivalTime:      time.Now().Add(54 * time.Hour),
		AmountPerKg:      decimal.NewFromInt(10),
		KgCount:          decimal.NewFromInt(20),
	}
}

func (f *flightFixture) allowTraveler(customerID uuid.UUID) {
	f.customers.On("FindByID", customerID).Return(&models.Customer{
		ID: customerID, Email: "traveler@example.com",
	}, nil)
	f.flights.On("CountByCustomerSince", customerID, mock.AnythingOfType("time.Time")).
		Return(int64(0), nil)
}

func TestPublishFlight_Success(t *testing.T) {
	f := newFlightFixture(testSettings())
	customerID := uuid.New()
	f.allowTraveler(customerID)
	f.flights.On("Create", mock.AnythingOfType("*models.Flight")).Return(nil)

	flight, err := f.svc.PublishFlight(customerID, validPublishInput())

	assert.NoError(t, err)
	assert.Equal(t, models.FlightStatusActive, flight.Status)
	assert.Equal(t, customerID, flight.CustomerID)
	assert.Equal(t, "DKR", flight.DepartureAirport)
}

func TestPublishFlight_RejectsPastDeparture(t *testing.T) {
	f := newFlightFixture(testSettings())
	customerID := uuid.New()
	f.allowTraveler(customerID)

	input := validPublishInput()
	input.DepartureTime = time.Now().Add(-time.Hour)

	_, err := f.svc.PublishFlight(customerID, input)

	assert.True(t, IsCode(err, CodeInvalidData))
	f.flights.AssertNotCalled(t, "Create", mock.Anything)
}

func TestPublishFlight_RejectsArrivalBeforeDeparture(t *testing.T) {
	f := newFlightFixture(testSettings())
	customerID := uuid.New()
	f.allowTraveler(customerID)

	input := validPublishInput()
	input.ArrivalTime = input.DepartureTime.Add(-time.Hour)

	_, err := f.svc.PublishFlight(customerID, input)

	assert.True(t, IsCode(err, CodeInvalidData))
}

func TestPublishFlight_EnforcesPriceBounds(t *testing.T) {
	settings := testSettings()
	settings.MinPricePerKg = decimal.NewFromInt(5)
	settings.MaxPricePerKg = decimal.NewFromInt(50)
	f := newFlightFixture(settings)
	customerID := uuid.New()
	f.allowTraveler(customerID)

	tooCheap := validPublishInput()
	tooCheap.AmountPerKg = decimal.NewFromInt(4)
	_, err := f.svc.PublishFlight(customerID, tooCheap)
	assert.True(t, IsCode(err, CodeInvalidData))

	tooExpensive := validPublishInput()
	tooExpensive.AmountPerKg = decimal.NewFromInt(51)
	_, err = f.svc.PublishFlight(customerID, tooExpensive)
	assert.True(t, IsCode(err, CodeInvalidData))
}

func TestPublishFlight_FraudQuota(t *testing.T) {
	settings := testSettings()
	settings.MaxFlightsPerWeek = 2
	f := newFlightFixture(settings)

	customerID := uuid.New()
	f.customers.On("FindByID", customerID).Return(&models.Customer{
		ID: customerID, Email: "traveler@example.com",
	}, nil)
	f.flights.On("CountByCustomerSince", customerID, mock.AnythingOfType("time.Time")).
		Return(int64(2), nil)

	_, err := f.svc.PublishFlight(customerID, validPublishInput())

	assert.True(t, IsCode(err, CodeFraudLimitReached))
	f.flights.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCancelFlight_QueuesRefundsForLiveBookings(t *testing.T) {
	f := newFlightFixture(testSettings())

	travelerID := uuid.New()
	flightID := uuid.New()
	flightRow := &models.Flight{ID: flightID, CustomerID: travelerID, Status: models.FlightStatusActive}
	f.flights.On("UpdateWithLock", flightID).Return(nil, flightRow)
	f.flights.On("FindByID", flightID).Return(flightRow, nil)

	paid := &models.Booking{
		ID:       uuid.New(),
		FlightID: flightID,
		Status:   models.BookingStatusConfirmedPaid,
		TotalPrice: decimal.NewFromInt(120),
	}
	pending := &models.Booking{
		ID:       uuid.New(),
		FlightID: flightID,
		Status:   models.BookingStatusPendingConfirmation,
	}
	alreadyCancelled := &models.Booking{
		ID:       uuid.New(),
		FlightID: flightID,
		Status:   models.BookingStatusCancelledByClient,
	}
	f.bookings.On("ListByFlight", flightID).
		Return([]models.Booking{*paid, *pending, *alreadyCancelled}, nil)
	f.bookings.On("UpdateWithLock", paid.ID).Return(nil, paid)
	f.bookings.On("UpdateWithLock", pending.ID).Return(nil, pending)
	f.refundables.On("Create", mock.AnythingOfType("*models.RefundableBooking")).Return(nil)
	f.flights.On("RecordCancellation", mock.AnythingOfType("*models.FlightCancellation")).Return(nil)

	flight, err := f.svc.CancelFlight(flightID, travelerID, "visa denied")

	assert.NoError(t, err)
	assert.Equal(t, models.FlightStatusCancelled, flight.Status)
	assert.Equal(t, "visa denied", *flight.CancellationReason)

	assert.Equal(t, models.BookingStatusCancelledByTraveler, paid.Status)
	assert.Equal(t, models.BookingStatusCancelledByTraveler, pending.Status)
	assert.Equal(t, models.BookingStatusCancelledByClient, alreadyCancelled.Status)
	f.bookings.AssertNotCalled(t, "UpdateWithLock", alreadyCancelled.ID)

	// the paid booking carries its captured amount into the refund queue
	f.refundables.AssertCalled(t, "Create", mock.MatchedBy(func(entry *models.RefundableBooking) bool {
		return entry.BookingID == paid.ID && entry.AmountPaid.Equal(decimal.NewFromInt(120))
	}))
	f.refundables.AssertCalled(t, "Create", mock.MatchedBy(func(entry *models.RefundableBooking) bool {
		return entry.BookingID == pending.ID && entry.AmountPaid.IsZero()
	}))
	f.flights.AssertCalled(t, "RecordCancellation", mock.MatchedBy(func(record *models.FlightCancellation) bool {
		return record.FlightID == flightID && record.AffectedBookings == 2
	}))
}

func TestCancelFlight_OnlyOwner(t *testing.T) {
	f := newFlightFixture(testSettings())

	flightID := uuid.New()
	flightRow := &models.Flight{ID: flightID, CustomerID: uuid.New(), Status: models.FlightStatusActive}
	f.flights.On("UpdateWithLock", flightID).Return(nil, flightRow)

	_, err := f.svc.CancelFlight(flightID, uuid.New(), "nope")

	assert.True(t, IsCode(err, CodeUnauthorized))
	assert.Equal(t, models.FlightStatusActive, flightRow.Status)
}

func TestCancelFlight_OnlyActive(t *testing.T) {
	f := newFlightFixture(testSettings())

	travelerID := uuid.New()
	flightID := uuid.New()
	flightRow := &models.Flight{ID: flightID, CustomerID: travelerID, Status: models.FlightStatusCancelled}
	f.flights.On("UpdateWithLock", flightID).Return(nil, flightRow)

	_, err := f.svc.CancelFlight(flightID, travelerID, "again")

	assert.True(t, IsCode(err, CodeInvalidStatus))
}

func TestExpireFlights_SweepIsIdempotent(t *testing.T) {
	f := newFlightFixture(testSettings())

	row := &models.Flight{ID: uuid.New(), Status: models.FlightStatusActive}
	f.flights.On("ListActiveArrivedBefore", mock.AnythingOfType("time.Time")).
		Return([]models.Flight{*row}, nil)
	f.flights.On("UpdateWithLock", row.ID).Return(nil, row)

	count, err := f.svc.ExpireFlights(time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, models.FlightStatusExpired, row.Status)

	count, err = f.svc.ExpireFlights(time.Now())
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestProcessRefundableBooking_ApproveRefundsAndMarksBooking(t *testing.T) {
	f := newFlightFixture(testSettings())

	bookingRow := &models.Booking{ID: uuid.New(), Status: models.BookingStatusCancelledByTraveler}
	entry := &models.RefundableBooking{
		ID:         uuid.New(),
		BookingID:  bookingRow.ID,
		AmountPaid: decimal.NewFromInt(120),
	}
	f.refundables.On("FindByID", entry.ID).Return(entry, nil)
	f.transactions.On("Create", mock.AnythingOfType("*models.Transaction")).Return(nil)
	f.bookings.On("UpdateWithLock", bookingRow.ID).Return(nil, bookingRow)
	f.refundables.On("Save", entry).Return(nil)

	processed, err := f.svc.ProcessRefundableBooking(entry.ID, true)

	assert.NoError(t, err)
	assert.Equal(t, 1, processed.Validated)
	assert.NotNil(t, processed.ValidatedAt)
	assert.Equal(t, models.BookingStatusRefunded, bookingRow.Status)
	f.transactions.AssertCalled(t, "Create", mock.MatchedBy(func(txn *models.Transaction) bool {
		return txn.Type == models.TransactionTypeRefund && txn.Amount.Equal(decimal.NewFromInt(120))
	}))
}

func TestProcessRefundableBooking_RejectOnlyClosesEntry(t *testing.T) {
	f := newFlightFixture(testSettings())

	entry := &models.RefundableBooking{
		ID:         uuid.New(),
		BookingID:  uuid.New(),
		AmountPaid: decimal.NewFromInt(120),
	}
	f.refundables.On("FindByID", entry.ID).Return(entry, nil)
	f.refundables.On("Save", entry).Return(nil)

	processed, err := f.svc.ProcessRefundableBooking(entry.ID, false)

	assert.NoError(t, err)
	assert.Equal(t, 2, processed.Validated)
	f.transactions.AssertNotCalled(t, "Create", mock.Anything)
	f.bookings.AssertNotCalled(t, "UpdateWithLock", mock.Anything)
}

func TestProcessRefundableBooking_AlreadyProcessed(t *testing.T) {
	f := newFlightFixture(testSettings())

	entry := &models.RefundableBooking{
		ID:        uuid.New(),
		BookingID: uuid.New(),
		Validated: 1,
	}
	f.refundables.On("FindByID", entry.ID).Return(entry, nil)

	_, err := f.svc.ProcessRefundableBooking(entry.ID, true)

	assert.True(t, IsCode(err, CodeInvalidStatus))
	f.refundables.AssertNotCalled(t, "Save", mock.Anything)
}

func TestProcessRefundableBooking_ApproveUnpaid_NoTransaction(t *testing.T) {
	f := newFlightFixture(testSettings())

	bookingRow := &models.Booking{ID: uuid.New(), Status: models.BookingStatusCancelledByTraveler}
	entry := &models.RefundableBooking{
		ID:         uuid.New(),
		BookingID:  bookingRow.ID,
		AmountPaid: decimal.Zero,
	}
	f.refundables.On("FindByID", entry.ID).Return(entry, nil)
	f.bookings.On("UpdateWithLock", bookingRow.ID).Return(nil, bookingRow)
	f.refundables.On("Save", entry).Return(nil)

	processed, err := f.svc.ProcessRefundableBooking(entry.ID, true)

	assert.NoError(t, err)
	assert.Equal(t, 1, processed.Validated)
	assert.Equal(t, models.BookingStatusRefunded, bookingRow.Status)
	f.transactions.AssertNotCalled(t, "Create", mock.Anything)
}

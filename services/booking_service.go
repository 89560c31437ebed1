package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
	"github.com/sendbyop/sendbyop-backend/repositories"
	"github.com/sendbyop/sendbyop-backend/storage"
)

const parcelPhotoFolder = "sendbyop/parcels"

// BookingService owns the booking lifecycle. Every transition loads the row
// FOR UPDATE inside a transaction, validates the acting party and the
// current status, mutates, saves and only then fires notifications.
type BookingService struct {
	bookings     repositories.BookingRepository
	flights      repositories.FlightRepository
	customers    repositories.CustomerRepository
	transactions repositories.TransactionRepository
	reviews      repositories.ReviewRepository
	receivers    *ReceiverService
	settings     *SettingsService
	pricing      *PricingService
	fraud        *FraudService
	photos       storage.PhotoStore
	notifier     Notifier
}

func NewBookingService(
	bookings repositories.BookingRepository,
	flights repositories.FlightRepository,
	customers repositories.CustomerRepository,
	transactions repositories.TransactionRepository,
	reviews repositories.ReviewRepository,
	receivers *ReceiverService,
	settings *SettingsService,
	pricing *PricingService,
	fraud *FraudService,
	photos storage.PhotoStore,
	notifier Notifier,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		flights:      flights,
		customers:    customers,
		transactions: transactions,
		reviews:      reviews,
		receivers:    receivers,
		settings:     settings,
		pricing:      pricing,
		fraud:        fraud,
		photos:       photos,
		notifier:     notifier,
	}
}

type CreateBookingInput struct {
	FlightID      uuid.UUID
	WeightKg      decimal.Decimal
	Description   string
	ParcelType    string
	ProposedPrice *decimal.Decimal
	Receiver      ReceiverInput
	Photos        [][]byte
}

func notFoundAs(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(message)
	}
	return err
}

func (s *BookingService) notify(toName, toEmail, subject, htmlContent string) {
	if s.notifier == nil || toEmail == "" {
		return
	}
	go s.notifier.SendEmail(toName, toEmail, subject, htmlContent)
}

func (s *BookingService) requireTraveler(booking *models.Booking, travelerID uuid.UUID) (*models.Flight, error) {
	flight, err := s.flights.FindByID(booking.FlightID)
	if err != nil {
		return nil, notFoundAs(err, "flight not found")
	}
	if flight.CustomerID != travelerID {
		return nil, NewUnauthorizedError("only the traveler of this flight can perform this action")
	}
	return flight, nil
}

func requireSender(booking *models.Booking, customerID uuid.UUID) error {
	if booking.CustomerID != customerID {
		return NewUnauthorizedError("only the owner of this booking can perform this action")
	}
	return nil
}

// Create builds a new booking in PENDING_CONFIRMATION: validates the
// parcel payload, runs the fraud guard, resolves flight and receiver,
// prices the shipment, uploads the photos (first one primary) and persists
// booking, parcel and photo rows together.
func (s *BookingService) Create(ctx context.Context, customerID uuid.UUID, input CreateBookingInput) (*models.Booking, error) {
	if len(input.Photos) == 0 || len(input.Photos) > 5 {
		return nil, NewInvalidDataError("a booking requires between 1 and 5 parcel photos")
	}
	if !input.WeightKg.IsPositive() {
		return nil, NewInvalidDataError("parcel weight must be positive")
	}

	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		return nil, notFoundAs(err, "customer not found")
	}
	if err := s.fraud.CheckBookingAllowed(&customer.ID, customer.Email); err != nil {
		return nil, err
	}

	flight, err := s.flights.FindByID(input.FlightID)
	if err != nil {
		return nil, notFoundAs(err, "flight not found")
	}
	if flight.Status != models.FlightStatusActive {
		return nil, NewInvalidStatusError("flight is not open for bookings")
	}

	receiver, err := s.receivers.GetOrCreate(input.Receiver)
	if err != nil {
		return nil, err
	}

	totalPrice := s.pricing.CalculatePrice(input.WeightKg, flight.AmountPerKg, input.ProposedPrice)

	photoRecords := make([]models.ParcelPhoto, 0, len(input.Photos))
	for i, data := range input.Photos {
		url, err := s.photos.Store(ctx, data, parcelPhotoFolder)
		if err != nil {
			return nil, NewInternalError(fmt.Sprintf("failed to store parcel photo: %v", err))
		}
		photoRecords = append(photoRecords, models.ParcelPhoto{
			PhotoURL:     url,
			DisplayOrder: i,
			IsPrimary:    i == 0,
		})
	}

	booking := &models.Booking{
		CustomerID:  customer.ID,
		FlightID:    flight.ID,
		ReceiverID:  receiver.ID,
		Status:      models.BookingStatusPendingConfirmation,
		TotalPrice:  totalPrice,
		BookingDate: time.Now(),
		Parcels: []models.Parcel{{
			Description: input.Description,
			WeightKg:    input.WeightKg,
			ParcelType:  input.ParcelType,
		}},
		ParcelPhotos: photoRecords,
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}

	s.notify(flight.Customer.FirstName, flight.Customer.Email,
		"New booking request",
		fmt.Sprintf("<p>Hello %s,</p><p>%s %s wants to ship a %s kg parcel on your flight %s → %s. Please confirm or reject the request.</p>",
			flight.Customer.FirstName, customer.FirstName, customer.LastName,
			input.WeightKg.String(), flight.DepartureAirport, flight.ArrivalAirport))

	return s.bookings.FindByID(booking.ID)
}

// Confirm moves PENDING_CONFIRMATION to CONFIRMED_UNPAID and starts the
// payment countdown.
func (s *BookingService) Confirm(bookingID, travelerID uuid.UUID) (*models.Booking, error) {
	var deadline time.Time
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if _, err := s.requireTraveler(booking, travelerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusPendingConfirmation {
			return NewInvalidStatusError(fmt.Sprintf("cannot confirm a booking in status %s", booking.Status))
		}
		settings, err := s.settings.GetSettings()
		if err != nil {
			return err
		}
		confirmedAt := time.Now()
		deadline = confirmedAt.Add(time.Duration(settings.PaymentTimeoutHours) * time.Hour)
		booking.Status = models.BookingStatusConfirmedUnpaid
		booking.ConfirmedAt = &confirmedAt
		booking.PaymentDeadline = &deadline
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}

	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(booking.Customer.FirstName, booking.Customer.Email,
		"Booking confirmed",
		fmt.Sprintf("<p>Hello %s,</p><p>The traveler confirmed your booking. Please pay %s before %s to secure it.</p>",
			booking.Customer.FirstName, booking.TotalPrice.String(), deadline.Format("Jan 2, 2006 15:04")))
	return booking, nil
}

// Reject turns down a pending booking request.
func (s *BookingService) Reject(bookingID, travelerID uuid.UUID, reason string) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if _, err := s.requireTraveler(booking, travelerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusPendingConfirmation {
			return NewInvalidStatusError(fmt.Sprintf("cannot reject a booking in status %s", booking.Status))
		}
		booking.Status = models.BookingStatusCancelledByTraveler
		booking.Cancelled = true
		booking.CancellationReason = &reason
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}

	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(booking.Customer.FirstName, booking.Customer.Email,
		"Booking rejected",
		fmt.Sprintf("<p>Hello %s,</p><p>The traveler rejected your booking request. Reason: %s</p>",
			booking.Customer.FirstName, reason))
	return booking, nil
}

// ProcessPayment validates an already-captured payment against the booking:
// the amount must match the total exactly and the deadline must not have
// passed. On success the booking becomes CONFIRMED_PAID and an immutable
// payment record is written.
func (s *BookingService) ProcessPayment(bookingID, customerID uuid.UUID, amount decimal.Decimal, paymentMethod string) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if err := requireSender(booking, customerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusConfirmedUnpaid {
			return NewInvalidStatusError(fmt.Sprintf("cannot pay a booking in status %s", booking.Status))
		}
		if booking.PaymentDeadline == nil || time.Now().After(*booking.PaymentDeadline) {
			return NewPaymentFailedError("payment deadline has passed")
		}
		if !amount.Equal(booking.TotalPrice) {
			return NewInvalidDataError(fmt.Sprintf("payment amount %s does not match booking total %s", amount.String(), booking.TotalPrice.String()))
		}
		booking.Status = models.BookingStatusConfirmedPaid
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}

	if err := s.transactions.Create(&models.Transaction{
		BookingID:     bookingID,
		Type:          models.TransactionTypePayment,
		Amount:        amount,
		PaymentMethod: paymentMethod,
		Status:        "COMPLETED",
	}); err != nil {
		log.Printf("Error recording payment transaction for booking %s: %v", bookingID, err)
	}

	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}
	s.notify(booking.Customer.FirstName, booking.Customer.Email,
		"Payment received",
		fmt.Sprintf("<p>Hello %s,</p><p>We received your payment of %s. Your parcel is ready for handover to the traveler.</p>",
			booking.Customer.FirstName, amount.String()))
	s.notify(booking.Flight.Customer.FirstName, booking.Flight.Customer.Email,
		"Booking paid",
		fmt.Sprintf("<p>Hello %s,</p><p>The sender paid for the booking on your flight %s → %s.</p>",
			booking.Flight.Customer.FirstName, booking.Flight.DepartureAirport, booking.Flight.ArrivalAirport))
	return booking, nil
}

// CancelByClient cancels a booking on the sender's request, applying the
// tiered refund policy. Cancellation is blocked inside the critical window
// before departure.
func (s *BookingService) CancelByClient(bookingID, customerID uuid.UUID, reason string) (*models.Booking, *RefundCalculation, error) {
	var refund RefundCalculation
	var wasPaid bool
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if err := requireSender(booking, customerID); err != nil {
			return err
		}
		if !booking.Status.CanBeCancelledByClient() {
			return NewInvalidStatusError(fmt.Sprintf("cannot cancel a booking in status %s", booking.Status))
		}
		flight, err := s.flights.FindByID(booking.FlightID)
		if err != nil {
			return notFoundAs(err, "flight not found")
		}
		settings, err := s.settings.GetSettings()
		if err != nil {
			return err
		}
		wasPaid = booking.Status.IsPaid()
		hoursUntilFlight := time.Until(flight.DepartureTime).Hours()
		refund = s.pricing.CalculateRefund(wasPaid, booking.TotalPrice, hoursUntilFlight, settings)
		if !refund.CanCancel {
			return NewInvalidStatusError(refund.Reason)
		}
		booking.Status = models.BookingStatusCancelledByClient
		booking.Cancelled = true
		booking.CancellationReason = &reason
		return nil
	})
	if err != nil {
		return nil, nil, notFoundAs(err, "booking not found")
	}

	if wasPaid && refund.RefundAmount.IsPositive() {
		if err := s.transactions.Create(&models.Transaction{
			BookingID: bookingID,
			Type:      models.TransactionTypeRefund,
			Amount:    refund.RefundAmount,
			Status:    "COMPLETED",
		}); err != nil {
			log.Printf("Error recording refund transaction for booking %s: %v", bookingID, err)
		}
	}

	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, nil, err
	}
	s.notify(booking.Customer.FirstName, booking.Customer.Email,
		"Booking cancelled",
		fmt.Sprintf("<p>Hello %s,</p><p>Your booking was cancelled. Refund amount: %s.</p>",
			booking.Customer.FirstName, refund.RefundAmount.String()))
	s.notify(booking.Flight.Customer.FirstName, booking.Flight.Customer.Email,
		"Booking cancelled by sender",
		fmt.Sprintf("<p>Hello %s,</p><p>The sender cancelled a booking on your flight %s → %s.</p>",
			booking.Flight.Customer.FirstName, booking.Flight.DepartureAirport, booking.Flight.ArrivalAirport))
	return booking, &refund, nil
}

// RefundPreview computes what a cancellation would yield right now,
// without changing anything.
func (s *BookingService) RefundPreview(bookingID, customerID uuid.UUID) (*RefundCalculation, error) {
	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	if err := requireSender(booking, customerID); err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}
	hoursUntilFlight := time.Until(booking.Flight.DepartureTime).Hours()
	refund := s.pricing.CalculateRefund(booking.Status.IsPaid(), booking.TotalPrice, hoursUntilFlight, settings)
	return &refund, nil
}

// MarkParcelHandedToTraveler is recorded by the sender once the parcel
// physically changes hands.
func (s *BookingService) MarkParcelHandedToTraveler(bookingID, customerID uuid.UUID) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if err := requireSender(booking, customerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusConfirmedPaid {
			return NewInvalidStatusError(fmt.Sprintf("cannot hand over a booking in status %s", booking.Status))
		}
		booking.Status = models.BookingStatusParcelHandedToTraveler
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	return s.afterTransition(bookingID, "Parcel handed over",
		"<p>The sender marked the parcel as handed over. Please confirm reception.</p>", notifyTraveler)
}

// ConfirmParcelReceivedByTraveler is the traveler's acknowledgement of the
// handover.
func (s *BookingService) ConfirmParcelReceivedByTraveler(bookingID, travelerID uuid.UUID) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if _, err := s.requireTraveler(booking, travelerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusParcelHandedToTraveler {
			return NewInvalidStatusError(fmt.Sprintf("cannot confirm reception of a booking in status %s", booking.Status))
		}
		booking.Status = models.BookingStatusParcelReceivedByTraveler
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	return s.afterTransition(bookingID, "Parcel with traveler",
		"<p>The traveler confirmed they have your parcel.</p>", notifySender)
}

// MarkInTransit is an optional step the traveler can record at departure.
func (s *BookingService) MarkInTransit(bookingID, travelerID uuid.UUID) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if _, err := s.requireTraveler(booking, travelerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusParcelReceivedByTraveler {
			return NewInvalidStatusError(fmt.Sprintf("cannot mark in transit a booking in status %s", booking.Status))
		}
		booking.Status = models.BookingStatusInTransit
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	return s.afterTransition(bookingID, "Parcel in transit",
		"<p>Your parcel is on its way.</p>", notifySender)
}

// ConfirmParcelDeliveredToReceiver is recorded by the traveler on arrival.
func (s *BookingService) ConfirmParcelDeliveredToReceiver(bookingID, travelerID uuid.UUID) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if _, err := s.requireTraveler(booking, travelerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusParcelReceivedByTraveler &&
			booking.Status != models.BookingStatusInTransit {
			return NewInvalidStatusError(fmt.Sprintf("cannot mark delivered a booking in status %s", booking.Status))
		}
		deliveredAt := time.Now()
		booking.Status = models.BookingStatusParcelDelivered
		booking.DeliveredAt = &deliveredAt
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	return s.afterTransition(bookingID, "Parcel delivered",
		"<p>Your parcel was delivered to the receiver.</p>", notifySender)
}

// MarkAsDelivered is the traveler's direct-delivery shortcut when the
// sender skipped the handover steps.
func (s *BookingService) MarkAsDelivered(bookingID, travelerID uuid.UUID) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if _, err := s.requireTraveler(booking, travelerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusConfirmedPaid {
			return NewInvalidStatusError(fmt.Sprintf("cannot mark delivered a booking in status %s", booking.Status))
		}
		deliveredAt := time.Now()
		booking.Status = models.BookingStatusDelivered
		booking.DeliveredAt = &deliveredAt
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	return s.afterTransition(bookingID, "Parcel delivered",
		"<p>The traveler marked your parcel as delivered.</p>", notifySender)
}

// ConfirmReceptionByReceiver closes the delivery loop from the receiver's
// side. Receivers are not platform users, so there is no actor guard; the
// call comes through a link sent to the receiver.
func (s *BookingService) ConfirmReceptionByReceiver(bookingID uuid.UUID) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if booking.Status != models.BookingStatusParcelDelivered &&
			booking.Status != models.BookingStatusDelivered {
			return NewInvalidStatusError(fmt.Sprintf("cannot confirm reception of a booking in status %s", booking.Status))
		}
		booking.Status = models.BookingStatusConfirmedByReceiver
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	return s.afterTransition(bookingID, "Delivery confirmed",
		"<p>The receiver confirmed reception of the parcel. Thank you for shipping with us.</p>", notifySender)
}

// MarkAsPickedUp is the sender-side terminal confirmation.
func (s *BookingService) MarkAsPickedUp(bookingID, customerID uuid.UUID) (*models.Booking, error) {
	err := s.bookings.UpdateWithLock(bookingID, func(booking *models.Booking) error {
		if err := requireSender(booking, customerID); err != nil {
			return err
		}
		if booking.Status != models.BookingStatusDelivered &&
			booking.Status != models.BookingStatusConfirmedByReceiver {
			return NewInvalidStatusError(fmt.Sprintf("cannot mark picked up a booking in status %s", booking.Status))
		}
		pickedUpAt := time.Now()
		booking.Status = models.BookingStatusPickedUp
		booking.PickedUpAt = &pickedUpAt
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	return s.bookings.FindByID(bookingID)
}

type notifyTarget int

const (
	notifySender notifyTarget = iota
	notifyTraveler
)

func (s *BookingService) afterTransition(bookingID uuid.UUID, subject, htmlContent string, target notifyTarget) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}
	switch target {
	case notifySender:
		s.notify(booking.Customer.FirstName, booking.Customer.Email, subject, htmlContent)
	case notifyTraveler:
		s.notify(booking.Flight.Customer.FirstName, booking.Flight.Customer.Email, subject, htmlContent)
	}
	return booking, nil
}

// GetBookingDetails returns the full projection to the sender or the
// traveler, and nobody else.
func (s *BookingService) GetBookingDetails(bookingID, actorID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, notFoundAs(err, "booking not found")
	}
	if booking.CustomerID != actorID && booking.Flight.CustomerID != actorID {
		return nil, NewUnauthorizedError("you are not a party to this booking")
	}
	return booking, nil
}

func (s *BookingService) ListCustomerBookings(customerID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.ListByCustomer(customerID)
}

func (s *BookingService) ListTravelerBookings(travelerID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.ListByTraveler(travelerID)
}

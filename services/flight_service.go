package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sendbyop/sendbyop-backend/models"
	"github.com/sendbyop/sendbyop-backend/repositories"
)

// FlightService manages capacity offers: publication behind the fraud
// guard, traveler cancellation with its refund queue, and the admin path
// that settles the queued refunds.
type FlightService struct {
	flights     repositories.FlightRepository
	bookings    repositories.BookingRepository
	customers   repositories.CustomerRepository
	refundables repositories.RefundableBookingRepository
	txns        repositories.TransactionRepository
	settings    *SettingsService
	fraud       *FraudService
	notifier    Notifier
}

func NewFlightService(
	flights repositories.FlightRepository,
	bookings repositories.BookingRepository,
	customers repositories.CustomerRepository,
	refundables repositories.RefundableBookingRepository,
	txns repositories.TransactionRepository,
	settings *SettingsService,
	fraud *FraudService,
	notifier Notifier,
) *FlightService {
	return &FlightService{
		flights:     flights,
		bookings:    bookings,
		customers:   customers,
		refundables: refundables,
		txns:        txns,
		settings:    settings,
		fraud:       fraud,
		notifier:    notifier,
	}
}

func (s *FlightService) notify(toName, toEmail, subject, htmlContent string) {
	if s.notifier == nil || toEmail == "" {
		return
	}
	go s.notifier.SendEmail(toName, toEmail, subject, htmlContent)
}

type PublishFlightInput struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	AmountPerKg      decimal.Decimal
	KgCount          decimal.Decimal
}

// PublishFlight creates a capacity offer after the weekly fraud quota and
// the platform price bounds are checked.
func (s *FlightService) PublishFlight(customerID uuid.UUID, input PublishFlightInput) (*models.Flight, error) {
	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		return nil, notFoundAs(err, "customer not found")
	}
	if err := s.fraud.CheckFlightAllowed(&customer.ID, customer.Email); err != nil {
		return nil, err
	}

	if !input.DepartureTime.After(time.Now()) {
		return nil, NewInvalidDataError("departure time must be in the future")
	}
	if !input.ArrivalTime.After(input.DepartureTime) {
		return nil, NewInvalidDataError("arrival time must be after departure time")
	}
	if !input.KgCount.IsPositive() {
		return nil, NewInvalidDataError("available capacity must be positive")
	}

	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}
	if input.AmountPerKg.LessThan(settings.MinPricePerKg) || input.AmountPerKg.GreaterThan(settings.MaxPricePerKg) {
		return nil, NewInvalidDataError(fmt.Sprintf("price per kg must be between %s and %s",
			settings.MinPricePerKg.String(), settings.MaxPricePerKg.String()))
	}

	flight := &models.Flight{
		CustomerID:       customer.ID,
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		DepartureTime:    input.DepartureTime,
		ArrivalTime:      input.ArrivalTime,
		AmountPerKg:      input.AmountPerKg,
		KgCount:          input.KgCount,
		Status:           models.FlightStatusActive,
	}
	if err := s.flights.Create(flight); err != nil {
		return nil, err
	}
	return flight, nil
}

func (s *FlightService) ListActiveFlights() ([]models.Flight, error) {
	return s.flights.ListActive()
}

func (s *FlightService) GetFlight(flightID uuid.UUID) (*models.Flight, error) {
	flight, err := s.flights.FindByID(flightID)
	if err != nil {
		return nil, notFoundAs(err, "flight not found")
	}
	return flight, nil
}

// CancelFlight marks the flight cancelled, cancels every live booking on
// it and queues each one for refund review. Senders are notified per
// booking, best effort.
func (s *FlightService) CancelFlight(flightID, customerID uuid.UUID, reason string) (*models.Flight, error) {
	err := s.flights.UpdateWithLock(flightID, func(flight *models.Flight) error {
		if flight.CustomerID != customerID {
			return NewUnauthorizedError("only the owner of this flight can cancel it")
		}
		if flight.Status != models.FlightStatusActive {
			return NewInvalidStatusError(fmt.Sprintf("cannot cancel a flight in status %s", flight.Status))
		}
		flight.Status = models.FlightStatusCancelled
		flight.CancellationReason = &reason
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, "flight not found")
	}

	bookings, err := s.bookings.ListByFlight(flightID)
	if err != nil {
		return nil, err
	}

	affected := 0
	for _, candidate := range bookings {
		if candidate.Status.IsCancelled() || candidate.Status == models.BookingStatusRefunded {
			continue
		}
		cancelReason := fmt.Sprintf("flight cancelled by traveler: %s", reason)
		var amountPaid decimal.Decimal
		err := s.bookings.UpdateWithLock(candidate.ID, func(booking *models.Booking) error {
			if booking.Status.IsCancelled() || booking.Status == models.BookingStatusRefunded {
				return errSweepSkip
			}
			if booking.Status.IsPaid() {
				amountPaid = booking.TotalPrice
			}
			booking.Status = models.BookingStatusCancelledByTraveler
			booking.Cancelled = true
			booking.CancellationReason = &cancelReason
			return nil
		})
		if err != nil {
			if err != errSweepSkip {
				log.Printf("Error cancelling booking %s for cancelled flight %s: %v", candidate.ID, flightID, err)
			}
			continue
		}
		affected++

		if err := s.refundables.Create(&models.RefundableBooking{
			BookingID:  candidate.ID,
			FlightID:   flightID,
			AmountPaid: amountPaid,
			Reason:     cancelReason,
		}); err != nil {
			log.Printf("Error queueing refundable booking %s: %v", candidate.ID, err)
		}
		s.notify(candidate.Customer.FirstName, candidate.Customer.Email,
			"Flight cancelled",
			fmt.Sprintf("<p>Hello %s,</p><p>The traveler cancelled the flight carrying your parcel. Your booking was cancelled and any payment will be refunded.</p>",
				candidate.Customer.FirstName))
	}

	if err := s.flights.RecordCancellation(&models.FlightCancellation{
		FlightID:         flightID,
		CustomerID:       customerID,
		Reason:           reason,
		AffectedBookings: affected,
	}); err != nil {
		log.Printf("Error recording flight cancellation for %s: %v", flightID, err)
	}

	return s.flights.FindByID(flightID)
}

// ExpireFlights marks every active flight whose arrival time has passed as
// EXPIRED. Returns the number of flights expired.
func (s *FlightService) ExpireFlights(now time.Time) (int, error) {
	arrived, err := s.flights.ListActiveArrivedBefore(now)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, candidate := range arrived {
		err := s.flights.UpdateWithLock(candidate.ID, func(flight *models.Flight) error {
			if flight.Status != models.FlightStatusActive {
				return errSweepSkip
			}
			flight.Status = models.FlightStatusExpired
			return nil
		})
		if err != nil {
			if err != errSweepSkip {
				log.Printf("Error expiring flight %s: %v", candidate.ID, err)
			}
			continue
		}
		expired++
	}
	return expired, nil
}

// ListRefundableBookings returns the pending refund-review queue.
func (s *FlightService) ListRefundableBookings() ([]models.RefundableBooking, error) {
	return s.refundables.ListPending()
}

// ProcessRefundableBooking settles one queue entry. Approval marks the
// booking REFUNDED and records a refund of the captured amount; rejection
// only closes the entry.
func (s *FlightService) ProcessRefundableBooking(entryID uuid.UUID, approve bool) (*models.RefundableBooking, error) {
	entry, err := s.refundables.FindByID(entryID)
	if err != nil {
		return nil, notFoundAs(err, "refundable booking not found")
	}
	if entry.Validated != 0 {
		return nil, NewInvalidStatusError("refundable booking already processed")
	}

	if approve {
		if entry.AmountPaid.IsPositive() {
			if err := s.txns.Create(&models.Transaction{
				BookingID: entry.BookingID,
				Type:      models.TransactionTypeRefund,
				Amount:    entry.AmountPaid,
				Status:    "COMPLETED",
			}); err != nil {
				return nil, err
			}
		}
		err := s.bookings.UpdateWithLock(entry.BookingID, func(booking *models.Booking) error {
			booking.Status = models.BookingStatusRefunded
			booking.Cancelled = true
			return nil
		})
		if err != nil {
			return nil, err
		}
		entry.Validated = 1
		s.notify(entry.Booking.Customer.FirstName, entry.Booking.Customer.Email,
			"Refund processed",
			fmt.Sprintf("<p>Hello %s,</p><p>Your refund of %s was processed.</p>",
				entry.Booking.Customer.FirstName, entry.AmountPaid.String()))
	} else {
		entry.Validated = 2
	}
	validatedAt := time.Now()
	entry.ValidatedAt = &validatedAt
	if err := s.refundables.Save(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"

	"github.com/sendbyop/sendbyop-backend/repositories"
)

// FraudService bounds how many bookings and flights one actor may create in
// the current calendar week (Monday 00:00 local time). Actors resolve by
// customer id when known, otherwise by email.
type FraudService struct {
	bookings repositories.BookingRepository
	flights  repositories.FlightRepository
	settings *SettingsService
}

func NewFraudService(bookings repositories.BookingRepository, flights repositories.FlightRepository, settings *SettingsService) *FraudService {
	return &FraudService{bookings: bookings, flights: flights, settings: settings}
}

func weekStart() time.Time {
	return now.Monday()
}

func (s *FraudService) countBookings(customerID *uuid.UUID, email string, since time.Time) (int64, error) {
	if customerID != nil {
		return s.bookings.CountByCustomerSince(*customerID, since)
	}
	return s.bookings.CountByEmailSince(email, since)
}

func (s *FraudService) countFlights(customerID *uuid.UUID, email string, since time.Time) (int64, error) {
	if customerID != nil {
		return s.flights.CountByCustomerSince(*customerID, since)
	}
	return s.flights.CountByEmailSince(email, since)
}

// CheckBookingAllowed rejects a booking creation once the actor has reached
// the weekly quota. Disabled fraud protection bypasses the check entirely.
func (s *FraudService) CheckBookingAllowed(customerID *uuid.UUID, email string) error {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return err
	}
	if !settings.FraudProtectionEnabled {
		return nil
	}
	count, err := s.countBookings(customerID, email, weekStart())
	if err != nil {
		return err
	}
	if count >= int64(settings.MaxBookingsPerWeek) {
		return NewFraudLimitError(fmt.Sprintf("weekly booking limit of %d reached", settings.MaxBookingsPerWeek))
	}
	return nil
}

// CheckFlightAllowed is the flight-publication counterpart of CheckBookingAllowed.
func (s *FraudService) CheckFlightAllowed(customerID *uuid.UUID, email string) error {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return err
	}
	if !settings.FraudProtectionEnabled {
		return nil
	}
	count, err := s.countFlights(customerID, email, weekStart())
	if err != nil {
		return err
	}
	if count >= int64(settings.MaxFlightsPerWeek) {
		return NewFraudLimitError(fmt.Sprintf("weekly flight limit of %d reached", settings.MaxFlightsPerWeek))
	}
	return nil
}

// FraudStatus is the read-only quota view exposed for UI display.
type FraudStatus struct {
	FraudProtectionEnabled bool `json:"fraud_protection_enabled"`
	BookingsThisWeek       int  `json:"bookings_this_week"`
	FlightsThisWeek        int  `json:"flights_this_week"`
	MaxBookingsPerWeek     int  `json:"max_bookings_per_week"`
	MaxFlightsPerWeek      int  `json:"max_flights_per_week"`
	RemainingBookings      int  `json:"remaining_bookings"`
	RemainingFlights       int  `json:"remaining_flights"`
}

// UserStatus reports the actor's current week usage without mutating or
// rejecting anything.
func (s *FraudService) UserStatus(customerID *uuid.UUID, email string) (*FraudStatus, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return nil, err
	}
	since := weekStart()
	bookingCount, err := s.countBookings(customerID, email, since)
	if err != nil {
		return nil, err
	}
	flightCount, err := s.countFlights(customerID, email, since)
	if err != nil {
		return nil, err
	}
	status := &FraudStatus{
		FraudProtectionEnabled: settings.FraudProtectionEnabled,
		BookingsThisWeek:       int(bookingCount),
		FlightsThisWeek:        int(flightCount),
		MaxBookingsPerWeek:     settings.MaxBookingsPerWeek,
		MaxFlightsPerWeek:      settings.MaxFlightsPerWeek,
		RemainingBookings:      settings.MaxBookingsPerWeek - int(bookingCount),
		RemainingFlights:       settings.MaxFlightsPerWeek - int(flightCount),
	}
	if status.RemainingBookings < 0 {
		status.RemainingBookings = 0
	}
	if status.RemainingFlights < 0 {
		status.RemainingFlights = 0
	}
	return status, nil
}

// CurrentLimits returns the configured quotas.
func (s *FraudService) CurrentLimits() (maxBookings, maxFlights int, enabled bool, err error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return 0, 0, false, err
	}
	return settings.MaxBookingsPerWeek, settings.MaxFlightsPerWeek, settings.FraudProtectionEnabled, nil
}

package jobs

import (
	"github.com/sendbyop/sendbyop-backend/services"
)

var (
	bookingService *services.BookingService
	flightService  *services.FlightService
)

// Init wires the services the cron jobs run against. Called once from main
// before the scheduler starts.
func Init(bookings *services.BookingService, flights *services.FlightService) {
	bookingService = bookings
	flightService = flights
}

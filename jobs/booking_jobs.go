package jobs

import (
	"log"
	"time"
)

func CancelUnpaidBookings() {
	log.Println("Running job: CancelUnpaidBookings...")

	count, err := bookingService.CancelUnpaidBookings(time.Now())
	if err != nil {
		log.Printf("Error checking for unpaid bookings: %v", err)
		return
	}
	if count == 0 {
		return
	}
	log.Printf("Cancelled %d unpaid booking(s) past the payment deadline.", count)
}

func AutoConfirmReception() {
	log.Println("Running job: AutoConfirmReception...")

	count, err := bookingService.AutoConfirmReception(time.Now())
	if err != nil {
		log.Printf("Error auto-confirming receptions: %v", err)
		return
	}
	if count == 0 {
		return
	}
	log.Printf("Auto-confirmed reception for %d booking(s).", count)
}

func CloseExpiredReviews() {
	log.Println("Running job: CloseExpiredReviews...")

	count, err := bookingService.CloseExpiredReviews(time.Now())
	if err != nil {
		log.Printf("Error closing expired review windows: %v", err)
		return
	}
	if count == 0 {
		return
	}
	log.Printf("Closed the review window on %d booking(s).", count)
}

func ProcessAutomaticPayouts() {
	log.Println("Running job: ProcessAutomaticPayouts...")

	count, err := bookingService.RecordAutomaticPayouts(time.Now())
	if err != nil {
		log.Printf("Error recording automatic payouts: %v", err)
		return
	}
	if count == 0 {
		return
	}
	log.Printf("Recorded payouts for %d booking(s).", count)
}

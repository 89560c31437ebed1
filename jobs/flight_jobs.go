package jobs

import (
	"log"
	"time"
)

func ExpireFlights() {
	log.Println("Running job: ExpireFlights...")

	count, err := flightService.ExpireFlights(time.Now())
	if err != nil {
		log.Printf("Error expiring flights: %v", err)
		return
	}
	if count == 0 {
		return
	}
	log.Printf("Marked %d flight(s) as expired.", count)
}

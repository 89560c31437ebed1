package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/sendbyop/sendbyop-backend/models"
)

// The sweep methods below back the cron jobs. Each one scans for matching
// rows and processes them individually under the same per-booking lock as
// live transitions, so a sweep racing a user action loses cleanly. A run
// with no matches is a no-op.

// CancelUnpaidBookings cancels every CONFIRMED_UNPAID booking whose payment
// deadline has passed. Returns the number of bookings cancelled.
func (s *BookingService) CancelUnpaidBookings(now time.Time) (int, error) {
	expired, err := s.bookings.ListUnpaidPastDeadline(now)
	if err != nil {
		return 0, err
	}
	cancelled := 0
	for _, candidate := range expired {
		reason := "payment deadline expired"
		err := s.bookings.UpdateWithLock(candidate.ID, func(booking *models.Booking) error {
			if booking.Status != models.BookingStatusConfirmedUnpaid {
				return errSweepSkip
			}
			if booking.PaymentDeadline == nil || booking.PaymentDeadline.After(now) {
				return errSweepSkip
			}
			booking.Status = models.BookingStatusCancelledPaymentTimeout
			booking.Cancelled = true
			booking.CancellationReason = &reason
			return nil
		})
		if err != nil {
			if !errors.Is(err, errSweepSkip) {
				log.Printf("Error cancelling unpaid booking %s: %v", candidate.ID, err)
			}
			continue
		}
		cancelled++
		s.notify(candidate.Customer.FirstName, candidate.Customer.Email,
			"Booking cancelled",
			fmt.Sprintf("<p>Hello %s,</p><p>Your booking was cancelled because the payment deadline passed.</p>",
				candidate.Customer.FirstName))
	}
	return cancelled, nil
}

// AutoConfirmReception promotes delivered bookings the receiver never
// confirmed, once receptionConfirmationHours of silence have elapsed.
func (s *BookingService) AutoConfirmReception(now time.Time) (int, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return 0, err
	}
	cutoff := now.Add(-time.Duration(settings.ReceptionConfirmationHours) * time.Hour)
	stale, err := s.bookings.ListAwaitingReceptionBefore(cutoff)
	if err != nil {
		return 0, err
	}
	confirmed := 0
	for _, candidate := range stale {
		err := s.bookings.UpdateWithLock(candidate.ID, func(booking *models.Booking) error {
			if booking.Status != models.BookingStatusParcelDelivered &&
				booking.Status != models.BookingStatusDelivered {
				return errSweepSkip
			}
			booking.Status = models.BookingStatusConfirmedByReceiver
			return nil
		})
		if err != nil {
			if !errors.Is(err, errSweepSkip) {
				log.Printf("Error auto-confirming booking %s: %v", candidate.ID, err)
			}
			continue
		}
		confirmed++
	}
	return confirmed, nil
}

// CloseExpiredReviews flags bookings whose review window elapsed with no
// review written. Booking status itself is never touched.
func (s *BookingService) CloseExpiredReviews(now time.Time) (int, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return 0, err
	}
	cutoff := now.AddDate(0, 0, -settings.ReviewDeadlineDays)
	candidates, err := s.bookings.ListReviewWindowExpired(cutoff)
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, candidate := range candidates {
		if _, err := s.reviews.FindByBooking(candidate.ID); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error looking up review for booking %s: %v", candidate.ID, err)
			continue
		}
		err := s.bookings.UpdateWithLock(candidate.ID, func(booking *models.Booking) error {
			if booking.ReviewClosed {
				return errSweepSkip
			}
			booking.ReviewClosed = true
			return nil
		})
		if err != nil {
			if !errors.Is(err, errSweepSkip) {
				log.Printf("Error closing review window for booking %s: %v", candidate.ID, err)
			}
			continue
		}
		closed++
	}
	return closed, nil
}

// RecordAutomaticPayouts computes and records the traveler's net earnings
// for receiver-confirmed bookings older than the payout delay. The actual
// money movement happens outside the platform; this writes the payout
// amount and an immutable payout record exactly once per booking.
func (s *BookingService) RecordAutomaticPayouts(now time.Time) (int, error) {
	settings, err := s.settings.GetSettings()
	if err != nil {
		return 0, err
	}
	cutoff := now.Add(-time.Duration(settings.AutoPayoutDelayHours) * time.Hour)
	due, err := s.bookings.ListPayoutDueBefore(cutoff)
	if err != nil {
		return 0, err
	}
	recorded := 0
	for _, candidate := range due {
		earnings := s.pricing.CalculateTravelerEarnings(candidate.TotalPrice, settings)
		err := s.bookings.UpdateWithLock(candidate.ID, func(booking *models.Booking) error {
			if booking.Status != models.BookingStatusConfirmedByReceiver || booking.PayoutRecorded {
				return errSweepSkip
			}
			booking.PayoutAmount = &earnings
			booking.PayoutRecorded = true
			return nil
		})
		if err != nil {
			if !errors.Is(err, errSweepSkip) {
				log.Printf("Error recording payout for booking %s: %v", candidate.ID, err)
			}
			continue
		}
		if err := s.transactions.Create(&models.Transaction{
			BookingID: candidate.ID,
			Type:      models.TransactionTypePayout,
			Amount:    earnings,
			Status:    "COMPLETED",
		}); err != nil {
			log.Printf("Error recording payout transaction for booking %s: %v", candidate.ID, err)
		}
		recorded++
		s.notify(candidate.Flight.Customer.FirstName, candidate.Flight.Customer.Email,
			"Payout recorded",
			fmt.Sprintf("<p>Hello %s,</p><p>Your earnings of %s for a completed delivery were recorded for payout.</p>",
				candidate.Flight.Customer.FirstName, earnings.String()))
	}
	return recorded, nil
}

// errSweepSkip signals that a candidate row changed between the scan and
// the locked re-check and should be silently left alone.
var errSweepSkip = errors.New("sweep: row no longer matches")

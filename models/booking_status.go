package models

// BookingStatus tracks a booking through the shipping lifecycle, from
// creation by the sender to pickup by the receiver, with three terminal
// cancellation branches.
type BookingStatus string

const (
	BookingStatusPendingConfirmation      BookingStatus = "PENDING_CONFIRMATION"
	BookingStatusConfirmedUnpaid          BookingStatus = "CONFIRMED_UNPAID"
	BookingStatusConfirmedPaid            BookingStatus = "CONFIRMED_PAID"
	BookingStatusParcelHandedToTraveler   BookingStatus = "PARCEL_HANDED_TO_TRAVELER"
	BookingStatusParcelReceivedByTraveler BookingStatus = "PARCEL_RECEIVED_BY_TRAVELER"
	BookingStatusInTransit                BookingStatus = "IN_TRANSIT"
	BookingStatusParcelDelivered          BookingStatus = "PARCEL_DELIVERED_TO_RECEIVER"
	BookingStatusDelivered                BookingStatus = "DELIVERED"
	BookingStatusConfirmedByReceiver      BookingStatus = "CONFIRMED_BY_RECEIVER"
	BookingStatusPickedUp                 BookingStatus = "PICKED_UP"
	BookingStatusCancelledByClient        BookingStatus = "CANCELLED_BY_CLIENT"
	BookingStatusCancelledByTraveler      BookingStatus = "CANCELLED_BY_TRAVELER"
	BookingStatusCancelledPaymentTimeout  BookingStatus = "CANCELLED_PAYMENT_TIMEOUT"
	BookingStatusRefunded                 BookingStatus = "REFUNDED"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPendingConfirmation, BookingStatusConfirmedUnpaid, BookingStatusConfirmedPaid,
		BookingStatusParcelHandedToTraveler, BookingStatusParcelReceivedByTraveler, BookingStatusInTransit,
		BookingStatusParcelDelivered, BookingStatusDelivered, BookingStatusConfirmedByReceiver,
		BookingStatusPickedUp, BookingStatusCancelledByClient, BookingStatusCancelledByTraveler,
		BookingStatusCancelledPaymentTimeout, BookingStatusRefunded:
		return true
	default:
		return false
	}
}

// IsCancelled reports whether the status is one of the cancellation branches.
func (bs BookingStatus) IsCancelled() bool {
	return bs == BookingStatusCancelledByClient ||
		bs == BookingStatusCancelledByTraveler ||
		bs == BookingStatusCancelledPaymentTimeout
}

// IsPaid reports whether the booking has been paid at some point of its life.
func (bs BookingStatus) IsPaid() bool {
	switch bs {
	case BookingStatusConfirmedPaid, BookingStatusParcelHandedToTraveler, BookingStatusParcelReceivedByTraveler,
		BookingStatusInTransit, BookingStatusParcelDelivered, BookingStatusDelivered,
		BookingStatusConfirmedByReceiver, BookingStatusPickedUp:
		return true
	default:
		return false
	}
}

// CanBeCancelledByClient reports whether the sender may still cancel.
// Delivered, picked-up and already-cancelled bookings are final.
func (bs BookingStatus) CanBeCancelledByClient() bool {
	switch bs {
	case BookingStatusDelivered, BookingStatusPickedUp,
		BookingStatusCancelledByClient, BookingStatusCancelledByTraveler, BookingStatusCancelledPaymentTimeout:
		return false
	default:
		return true
	}
}

func (bs BookingStatus) IsTerminal() bool {
	return bs == BookingStatusPickedUp || bs.IsCancelled() || bs == BookingStatusRefunded
}

func GetAllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPendingConfirmation,
		BookingStatusConfirmedUnpaid,
		BookingStatusConfirmedPaid,
		BookingStatusParcelHandedToTraveler,
		BookingStatusParcelReceivedByTraveler,
		BookingStatusInTransit,
		BookingStatusParcelDelivered,
		BookingStatusDelivered,
		BookingStatusConfirmedByReceiver,
		BookingStatusPickedUp,
		BookingStatusCancelledByClient,
		BookingStatusCancelledByTraveler,
		BookingStatusCancelledPaymentTimeout,
		BookingStatusRefunded,
	}
}

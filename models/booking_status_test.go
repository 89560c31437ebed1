package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_IsValid(t *testing.T) {
	for _, status := range GetAllBookingStatuses() {
		assert.True(t, status.IsValid(), "%s should be valid", status)
	}
	assert.False(t, BookingStatus("SHIPPED").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingStatus_IsCancelled(t *testing.T) {
	assert.True(t, BookingStatusCancelledByClient.IsCancelled())
	assert.True(t, BookingStatusCancelledByTraveler.IsCancelled())
	assert.True(t, BookingStatusCancelledPaymentTimeout.IsCancelled())

	assert.False(t, BookingStatusRefunded.IsCancelled())
	assert.False(t, BookingStatusPendingConfirmation.IsCancelled())
}

func TestBookingStatus_IsPaid(t *testing.T) {
	assert.False(t, BookingStatusPendingConfirmation.IsPaid())
	assert.False(t, BookingStatusConfirmedUnpaid.IsPaid())
	assert.False(t, BookingStatusCancelledPaymentTimeout.IsPaid())

	assert.True(t, BookingStatusConfirmedPaid.IsPaid())
	assert.True(t, BookingStatusInTransit.IsPaid())
	assert.True(t, BookingStatusPickedUp.IsPaid())
}

func TestBookingStatus_CanBeCancelledByClient(t *testing.T) {
	assert.True(t, BookingStatusPendingConfirmation.CanBeCancelledByClient())
	assert.True(t, BookingStatusConfirmedUnpaid.CanBeCancelledByClient())
	assert.True(t, BookingStatusConfirmedPaid.CanBeCancelledByClient())
	assert.True(t, BookingStatusParcelHandedToTraveler.CanBeCancelledByClient())

	assert.False(t, BookingStatusDelivered.CanBeCancelledByClient())
	assert.False(t, BookingStatusPickedUp.CanBeCancelledByClient())
	assert.False(t, BookingStatusCancelledByClient.CanBeCancelledByClient())
	assert.False(t, BookingStatusCancelledByTraveler.CanBeCancelledByClient())
	assert.False(t, BookingStatusCancelledPaymentTimeout.CanBeCancelledByClient())
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, BookingStatusPickedUp.IsTerminal())
	assert.True(t, BookingStatusRefunded.IsTerminal())
	assert.True(t, BookingStatusCancelledByClient.IsTerminal())

	assert.False(t, BookingStatusConfirmedByReceiver.IsTerminal())
	assert.False(t, BookingStatusDelivered.IsTerminal())
}

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusDone, false},
		{AppointmentStatusPendingPayment, AppointmentStatusConfirmed, true},
		{AppointmentStatusPendingPayment, AppointmentStatusCancelled, true},
		{AppointmentStatusPendingPayment, AppointmentStatusNoShow, false},
		{AppointmentStatusConfirmed, AppointmentStatusDone, true},
		{AppointmentStatusConfirmed, AppointmentStatusNoShow, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusDone, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
		{AppointmentStatusNoShow, AppointmentStatusDone, false},
	}

	for _, tt := range tests {
		a := Appointment{Status: tt.from}
		assert.Equal(t, tt.allowed, a.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestConfirmOnlinePayment(t *testing.T) {
	a := Appointment{Status: AppointmentStatusPendingPayment, PaymentMethod: PaymentMethodGCash}

	assert.True(t, a.ConfirmOnlinePayment())
	assert.Equal(t, AppointmentStatusConfirmed, a.Status)
	assert.Equal(t, PaymentMethodGCash, a.PaymentMethod)

	// replaying the callback is a no-op
	assert.False(t, a.ConfirmOnlinePayment())
	assert.Equal(t, AppointmentStatusConfirmed, a.Status)
}

func TestConfirmOnlinePaymentAfterCancellation(t *testing.T) {
	a := Appointment{Status: AppointmentStatusCancelled}

	assert.False(t, a.ConfirmOnlinePayment())
	assert.Equal(t, AppointmentStatusCancelled, a.Status)
}

func TestHoldsSlot(t *testing.T) {
	for _, status := range []AppointmentStatus{
		AppointmentStatusPending,
		AppointmentStatusPendingPayment,
		AppointmentStatusConfirmed,
		AppointmentStatusDone,
		AppointmentStatusNoShow,
	} {
		a := Appointment{Status: status}
		assert.True(t, a.HoldsSlot(), string(status))
	}

	a := Appointment{Status: AppointmentStatusCancelled}
	assert.False(t, a.HoldsSlot())
}

func TestPaymentMethod(t *testing.T) {
	assert.True(t, PaymentMethodCash.Valid())
	assert.False(t, PaymentMethodCash.IsOnline())

	for _, m := range []PaymentMethod{PaymentMethodGCash, PaymentMethodCard, PaymentMethodMaya} {
		assert.True(t, m.Valid(), string(m))
		assert.True(t, m.IsOnline(), string(m))
	}

	assert.False(t, PaymentMethodUnset.Valid())
	assert.False(t, PaymentMethod("check").Valid())
}

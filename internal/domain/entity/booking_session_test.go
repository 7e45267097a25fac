package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookingSession(t *testing.T) {
	clientID := uuid.New()

	session := NewBookingSession(OriginClientSelf, &clientID, "client@example.com")
	assert.Equal(t, SessionSelectingPet, session.State)
	assert.Equal(t, &clientID, session.ClientID)

	// walk-ins have no pet to pick
	anon := NewBookingSession(OriginStaffAnonymous, nil, "")
	assert.Equal(t, SessionSelectingSlot, anon.State)
	assert.Nil(t, anon.ClientID)
}

func TestBookingSessionHappyPath(t *testing.T) {
	clientID := uuid.New()
	session := NewBookingSession(OriginClientSelf, &clientID, "client@example.com")

	petID := uuid.New()
	require.NoError(t, session.SelectPet(petID, "Milo"))
	assert.Equal(t, SessionSelectingSlot, session.State)

	price := decimal.NewFromInt(500)
	require.NoError(t, session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "vaccination", price))
	assert.Equal(t, SessionSelectingPayment, session.State)
	assert.True(t, session.Price.Equal(price))

	require.NoError(t, session.SelectPaymentMethod(PaymentMethodCash))
	require.NoError(t, session.BeginSubmit())
	assert.Equal(t, SessionSubmitting, session.State)

	appointmentID := uuid.New()
	session.MarkConfirmed(appointmentID)
	assert.Equal(t, SessionConfirmed, session.State)
	assert.Equal(t, &appointmentID, session.AppointmentID)
}

func TestBookingSessionStepsOutOfOrder(t *testing.T) {
	clientID := uuid.New()
	session := NewBookingSession(OriginClientSelf, &clientID, "client@example.com")

	err := session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "checkup", decimal.NewFromInt(300))
	assert.ErrorIs(t, err, ErrInvalidSessionState)

	err = session.SelectPaymentMethod(PaymentMethodCash)
	assert.ErrorIs(t, err, ErrInvalidSessionState)

	err = session.BeginSubmit()
	assert.ErrorIs(t, err, ErrInvalidSessionState)

	// invalid method never sticks
	require.NoError(t, session.SelectPet(uuid.New(), "Milo"))
	require.NoError(t, session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "checkup", decimal.NewFromInt(300)))
	err = session.SelectPaymentMethod(PaymentMethod("barter"))
	assert.ErrorIs(t, err, ErrInvalidSessionState)
	assert.Equal(t, PaymentMethodUnset, session.PaymentMethod)
}

func TestBookingSessionSubmitRequiresPaymentMethod(t *testing.T) {
	clientID := uuid.New()
	session := NewBookingSession(OriginClientSelf, &clientID, "client@example.com")
	require.NoError(t, session.SelectPet(uuid.New(), "Milo"))
	require.NoError(t, session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "checkup", decimal.NewFromInt(300)))

	assert.ErrorIs(t, session.BeginSubmit(), ErrInvalidSessionState)
}

func TestBookingSessionReselectFromPayment(t *testing.T) {
	clientID := uuid.New()
	session := NewBookingSession(OriginClientSelf, &clientID, "client@example.com")
	require.NoError(t, session.SelectPet(uuid.New(), "Milo"))
	require.NoError(t, session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "checkup", decimal.NewFromInt(300)))

	// the client changes their mind before paying
	require.NoError(t, session.SelectServiceAndSlot("2026-09-02", "9:00 AM - 9:30 AM", "surgery", decimal.NewFromInt(1500)))
	assert.Equal(t, "2026-09-02", session.Date)
	assert.Equal(t, "surgery", session.ServiceCode)
	assert.True(t, session.Price.Equal(decimal.NewFromInt(1500)))
}

func TestBookingSessionReturnToSlotSelection(t *testing.T) {
	clientID := uuid.New()
	session := NewBookingSession(OriginClientSelf, &clientID, "client@example.com")
	require.NoError(t, session.SelectPet(uuid.New(), "Milo"))
	require.NoError(t, session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "checkup", decimal.NewFromInt(300)))
	require.NoError(t, session.SelectPaymentMethod(PaymentMethodGCash))
	require.NoError(t, session.BeginSubmit())

	session.ReturnToSlotSelection()

	assert.Equal(t, SessionSelectingSlot, session.State)
	assert.Empty(t, session.SlotLabel)
	assert.Equal(t, PaymentMethodUnset, session.PaymentMethod)
	// pet choice survives the conflict
	assert.NotNil(t, session.PetID)
}

func TestBookingSessionRetry(t *testing.T) {
	clientID := uuid.New()
	session := NewBookingSession(OriginClientSelf, &clientID, "client@example.com")
	require.NoError(t, session.SelectPet(uuid.New(), "Milo"))
	require.NoError(t, session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "checkup", decimal.NewFromInt(300)))
	require.NoError(t, session.SelectPaymentMethod(PaymentMethodCard))
	require.NoError(t, session.BeginSubmit())

	session.MarkFailed("payment gateway unavailable")
	assert.Equal(t, SessionFailed, session.State)
	assert.Equal(t, "payment gateway unavailable", session.FailureReason)

	require.NoError(t, session.Retry())
	assert.Equal(t, SessionSelectingPayment, session.State)
	assert.Empty(t, session.FailureReason)
	// the draft is intact for resubmission
	assert.Equal(t, "8:00 AM - 8:30 AM", session.SlotLabel)
	assert.Equal(t, PaymentMethodCard, session.PaymentMethod)

	// retry only applies to failed drafts
	assert.ErrorIs(t, session.Retry(), ErrInvalidSessionState)
}

func TestBookingSessionMarkAwaitingPayment(t *testing.T) {
	clientID := uuid.New()
	session := NewBookingSession(OriginClientSelf, &clientID, "client@example.com")
	require.NoError(t, session.SelectPet(uuid.New(), "Milo"))
	require.NoError(t, session.SelectServiceAndSlot("2026-09-01", "8:00 AM - 8:30 AM", "dental", decimal.NewFromInt(800)))
	require.NoError(t, session.SelectPaymentMethod(PaymentMethodMaya))
	require.NoError(t, session.BeginSubmit())

	appointmentID := uuid.New()
	session.MarkAwaitingPayment(appointmentID, "https://checkout.example.com/cs_123")

	assert.Equal(t, SessionAwaitingPayment, session.State)
	assert.Equal(t, &appointmentID, session.AppointmentID)
	assert.Equal(t, "https://checkout.example.com/cs_123", session.CheckoutURL)
}

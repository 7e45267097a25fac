package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidSessionState is returned when a booking step is attempted out
// of order.
var ErrInvalidSessionState = errors.New("invalid booking session state")

// SessionState is the position of an in-progress booking draft
type SessionState string

const (
	SessionSelectingPet     SessionState = "selecting_pet"
	SessionSelectingSlot    SessionState = "selecting_service_slot"
	SessionSelectingPayment SessionState = "selecting_payment"
	SessionSubmitting       SessionState = "submitting"
	SessionConfirmed        SessionState = "confirmed"
	SessionAwaitingPayment  SessionState = "awaiting_payment"
	SessionFailed           SessionState = "failed"
)

// BookingSession is the server-held booking draft. Nothing is persisted
// to the appointments table until Submit succeeds; abandoning a session
// needs no compensating action. Stored as JSON in redis with a TTL.
type BookingSession struct {
	ID            uuid.UUID       `json:"id"`
	Origin        BookingOrigin   `json:"origin"`
	ClientID      *uuid.UUID      `json:"client_id,omitempty"`
	ClientEmail   string          `json:"client_email,omitempty"`
	State         SessionState    `json:"state"`
	PetID         *uuid.UUID      `json:"pet_id,omitempty"`
	PetName       string          `json:"pet_name,omitempty"`
	Date          string          `json:"date,omitempty"` // YYYY-MM-DD
	SlotLabel     string          `json:"slot_label,omitempty"`
	ServiceCode   string          `json:"service_code,omitempty"`
	Price         decimal.Decimal `json:"price"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	AppointmentID *uuid.UUID      `json:"appointment_id,omitempty"`
	CheckoutURL   string          `json:"checkout_url,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewBookingSession starts a draft. Staff-anonymous bookings carry no pet
// link and skip straight to slot selection.
func NewBookingSession(origin BookingOrigin, clientID *uuid.UUID, clientEmail string) *BookingSession {
	now := time.Now().UTC()
	state := SessionSelectingPet
	if origin == OriginStaffAnonymous {
		state = SessionSelectingSlot
	}
	return &BookingSession{
		ID:          uuid.New(),
		Origin:      origin,
		ClientID:    clientID,
		ClientEmail: clientEmail,
		State:       state,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *BookingSession) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// SelectPet records the pet choice and advances to slot selection.
func (s *BookingSession) SelectPet(petID uuid.UUID, petName string) error {
	if s.State != SessionSelectingPet {
		return ErrInvalidSessionState
	}
	s.PetID = &petID
	s.PetName = petName
	s.State = SessionSelectingSlot
	s.touch()
	return nil
}

// SelectServiceAndSlot records a validated date/slot/service choice with
// the price snapshotted from the catalog, and advances to payment
// selection. Availability validation happens in the usecase before this
// is called; an invalid choice never advances the state.
func (s *BookingSession) SelectServiceAndSlot(date, slotLabel, serviceCode string, price decimal.Decimal) error {
	if s.State != SessionSelectingSlot && s.State != SessionSelectingPayment {
		return ErrInvalidSessionState
	}
	s.Date = date
	s.SlotLabel = slotLabel
	s.ServiceCode = serviceCode
	s.Price = price
	s.State = SessionSelectingPayment
	s.touch()
	return nil
}

// SelectPaymentMethod records the chosen method.
func (s *BookingSession) SelectPaymentMethod(method PaymentMethod) error {
	if s.State != SessionSelectingPayment {
		return ErrInvalidSessionState
	}
	if !method.Valid() {
		return ErrInvalidSessionState
	}
	s.PaymentMethod = method
	s.touch()
	return nil
}

// BeginSubmit moves the draft into the submitting state. Requires a
// complete draft: slot and payment method chosen.
func (s *BookingSession) BeginSubmit() error {
	if s.State != SessionSelectingPayment || s.PaymentMethod == PaymentMethodUnset {
		return ErrInvalidSessionState
	}
	s.State = SessionSubmitting
	s.touch()
	return nil
}

// MarkConfirmed records a successful cash booking.
func (s *BookingSession) MarkConfirmed(appointmentID uuid.UUID) {
	s.AppointmentID = &appointmentID
	s.State = SessionConfirmed
	s.FailureReason = ""
	s.touch()
}

// MarkAwaitingPayment records a pending online booking and the checkout
// redirect the client must follow.
func (s *BookingSession) MarkAwaitingPayment(appointmentID uuid.UUID, checkoutURL string) {
	s.AppointmentID = &appointmentID
	s.CheckoutURL = checkoutURL
	s.State = SessionAwaitingPayment
	s.FailureReason = ""
	s.touch()
}

// MarkFailed records a retry-able failure. The draft is preserved so the
// client does not re-enter already-chosen fields.
func (s *BookingSession) MarkFailed(reason string) {
	s.State = SessionFailed
	s.FailureReason = reason
	s.touch()
}

// ReturnToSlotSelection forces the draft back to slot selection after a
// genuine slot conflict; the previous slot choice is cleared.
func (s *BookingSession) ReturnToSlotSelection() {
	s.SlotLabel = ""
	s.PaymentMethod = PaymentMethodUnset
	s.State = SessionSelectingSlot
	s.touch()
}

// Retry moves a failed draft back to payment selection for resubmission.
func (s *BookingSession) Retry() error {
	if s.State != SessionFailed {
		return ErrInvalidSessionState
	}
	s.State = SessionSelectingPayment
	s.FailureReason = ""
	s.touch()
	return nil
}

package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type StartBookingSessionRequest struct {
	Origin string `json:"origin" validate:"omitempty,oneof=client_self staff_on_behalf staff_anonymous"`
	// ClientEmail identifies the client for staff-on-behalf bookings.
	ClientEmail string `json:"client_email" validate:"omitempty,email"`
}

type SelectPetRequest struct {
	PetID uuid.UUID `json:"pet_id" validate:"required"`
}

type SelectServiceAndSlotRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	SlotLabel   string `json:"slot_label" validate:"required"`
	ServiceCode string `json:"service_code" validate:"required"`
}

type SelectPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cash gcash card maya"`
}

// Response DTOs

type BookingSessionResponse struct {
	ID            uuid.UUID  `json:"id"`
	State         string     `json:"state"`
	Origin        string     `json:"origin"`
	PetID         *uuid.UUID `json:"pet_id,omitempty"`
	PetName       string     `json:"pet_name,omitempty"`
	Date          string     `json:"date,omitempty"`
	SlotLabel     string     `json:"slot_label,omitempty"`
	ServiceCode   string     `json:"service_code,omitempty"`
	Price         string     `json:"price,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
}

// BookingSubmitResponse is returned by Submit. For cash bookings the
// appointment is final; for online bookings the client must follow the
// checkout URL and the appointment stays pending until reconciliation.
type BookingSubmitResponse struct {
	Session     *BookingSessionResponse `json:"session"`
	Appointment *AppointmentResponse    `json:"appointment,omitempty"`
	CheckoutURL string                  `json:"checkout_url,omitempty"`
}

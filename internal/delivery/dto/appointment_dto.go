package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled done no_show"`
}

type AppointmentFilterRequest struct {
	StartDate   string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=pending confirmed pending_payment cancelled done no_show"`
	ClientEmail string `json:"client_email" validate:"omitempty,email"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            uuid.UUID  `json:"id"`
	BookingCode   string     `json:"booking_code"`
	ClientID      *uuid.UUID `json:"client_id,omitempty"`
	ClientEmail   string     `json:"client_email,omitempty"`
	PetID         *uuid.UUID `json:"pet_id,omitempty"`
	PetName       string     `json:"pet_name,omitempty"`
	ServiceCode   string     `json:"service_code"`
	ServiceLabel  string     `json:"service_label,omitempty"`
	Price         string     `json:"price"`
	Date          string     `json:"date"`
	SlotLabel     string     `json:"slot_label"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Origin        string     `json:"origin"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateUnavailabilityRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	IsAllDay bool   `json:"is_all_day"`
	// StartTime/EndTime are required (HH:MM) when the period is not all-day.
	StartTime string `json:"start_time" validate:"required_if=IsAllDay false,omitempty,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required_if=IsAllDay false,omitempty,datetime=15:04"`
	Reason    string `json:"reason" validate:"omitempty,max=500"`
}

// Response DTOs

type UnavailabilityResponse struct {
	ID          int       `json:"id"`
	ClinicianID uuid.UUID `json:"clinician_id"`
	Date        string    `json:"date"`
	IsAllDay    bool      `json:"is_all_day"`
	StartTime   string    `json:"start_time,omitempty"`
	EndTime     string    `json:"end_time,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type UnavailabilityListResponse struct {
	Periods []UnavailabilityResponse `json:"periods"`
	Total   int                      `json:"total"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalRecordRequest struct {
	PetID        uuid.UUID `json:"pet_id" validate:"required"`
	VisitDate    string    `json:"visit_date" validate:"required,datetime=2006-01-02"`
	Diagnosis    string    `json:"diagnosis" validate:"required"`
	Treatment    string    `json:"treatment" validate:"omitempty"`
	Prescription string    `json:"prescription" validate:"omitempty"`
	Notes        string    `json:"notes" validate:"omitempty"`
}

type UpdateMedicalRecordRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"omitempty"`
	Treatment    string `json:"treatment" validate:"omitempty"`
	Prescription string `json:"prescription" validate:"omitempty"`
	Notes        string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID           uuid.UUID `json:"id"`
	PetID        uuid.UUID `json:"pet_id"`
	VetID        uuid.UUID `json:"vet_id"`
	VetName      string    `json:"vet_name,omitempty"`
	VisitDate    string    `json:"visit_date"`
	Diagnosis    string    `json:"diagnosis"`
	Treatment    string    `json:"treatment,omitempty"`
	Prescription string    `json:"prescription,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}

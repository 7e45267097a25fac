package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePetRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Species   string `json:"species" validate:"required,min=1,max=50"`
	Breed     string `json:"breed" validate:"omitempty,max=100"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdatePetRequest struct {
	Name      string `json:"name" validate:"omitempty,min=1,max=100"`
	Species   string `json:"species" validate:"omitempty,min=1,max=50"`
	Breed     string `json:"breed" validate:"omitempty,max=100"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type PetResponse struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Species   string    `json:"species"`
	Breed     string    `json:"breed,omitempty"`
	BirthDate string    `json:"birth_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PetListResponse struct {
	Pets  []PetResponse `json:"pets"`
	Total int           `json:"total"`
}

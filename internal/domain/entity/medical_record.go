package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is a vet-authored visit record for a pet
type MedicalRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PetID        uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	VetID        uuid.UUID `gorm:"type:uuid;not null;index" json:"vet_id"`
	VisitDate    time.Time `gorm:"type:date;not null" json:"visit_date"`
	Diagnosis    string    `gorm:"type:text;not null" json:"diagnosis"`
	Treatment    string    `gorm:"type:text" json:"treatment,omitempty"`
	Prescription string    `gorm:"type:text" json:"prescription,omitempty"`
	Notes        string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Pet Pet  `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Vet User `gorm:"foreignKey:VetID" json:"vet,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one clinician-facing message produced by the
// confirmation fan-out. Delivery is best-effort: a failed write for one
// recipient is logged and never rolls back the appointment.
type Notification struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

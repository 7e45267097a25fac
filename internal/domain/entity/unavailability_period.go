package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnavailabilityPeriod is a clinician-declared block of time during which
// no appointments may be booked. An all-day period blocks every slot on
// its date for all bookings regardless of which clinician declared it
// (single-clinic behavior); a timed period blocks only the slots whose
// window intersects [StartTime, EndTime).
type UnavailabilityPeriod struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicianID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinician_id"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	IsAllDay    bool      `gorm:"not null;default:false" json:"is_all_day"`
	StartTime   string    `gorm:"type:varchar(10)" json:"start_time,omitempty"` // HH:MM, unset when all-day
	EndTime     string    `gorm:"type:varchar(10)" json:"end_time,omitempty"`   // HH:MM, unset when all-day
	Reason      string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Clinician User `gorm:"foreignKey:ClinicianID" json:"clinician,omitempty"`
}

func (UnavailabilityPeriod) TableName() string {
	return "unavailable_slots"
}

// DateKey returns the normalized YYYY-MM-DD string for the period's date.
func (p *UnavailabilityPeriod) DateKey() string {
	return p.Date.Format(DateLayout)
}

// Window returns the blocked minute window for a timed period.
func (p *UnavailabilityPeriod) Window() (startMin, endMin int, err error) {
	startMin, err = ParseClockMinute(p.StartTime)
	if err != nil {
		return 0, 0, err
	}
	endMin, err = ParseClockMinute(p.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return startMin, endMin, nil
}

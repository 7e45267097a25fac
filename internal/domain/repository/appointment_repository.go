package repository

import (
	"time"

	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByClientEmail(db *gorm.DB, email string) ([]entity.Appointment, error)
	// FindActiveByDate returns all non-cancelled appointments for a
	// YYYY-MM-DD date.
	FindActiveByDate(db *gorm.DB, date string) ([]entity.Appointment, error)
	FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// UpdateStatus mutates status only when the transition away from the
	// expected current statuses is still possible; returns affected rows
	// so double-cancel races are detectable.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus) (int64, error)
	// Delete removes the row entirely. Admin-only, audited separately.
	Delete(db *gorm.DB, id uuid.UUID) error
	// FindStalePendingPayment returns pending-payment appointments
	// created before the cutoff, for the expiry sweep.
	FindStalePendingPayment(db *gorm.DB, cutoff time.Time) ([]entity.Appointment, error)
}

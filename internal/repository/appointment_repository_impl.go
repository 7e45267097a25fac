package repository

import (
	"errors"
	"time"

	"vetclinic-booking/internal/domain/entity"
	domainRepo "vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Pet").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByClientEmail(db *gorm.DB, email string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Pet").
		Where("client_email = ?", email).
		Order("appointment_date DESC, slot_label ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDate(db *gorm.DB, date string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("appointment_date = ? AND status != ?", date, entity.AppointmentStatusCancelled).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Pet")

	if filter != nil {
		if filter.StartDate != "" {
			query = query.Where("appointment_date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			query = query.Where("appointment_date <= ?", filter.EndDate)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.ClientEmail != "" {
			query = query.Where("client_email = ?", filter.ClientEmail)
		}
		if filter.PetID != "" {
			query = query.Where("pet_id = ?", filter.PetID)
		}
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date ASC, slot_label ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

// UpdateStatus atomically mutates status ONLY while the row is still in
// one of the expected source statuses. Returns affected rows:
// 1 = success, 0 = the row moved underneath us (e.g. double-cancel race).
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) FindStalePendingPayment(db *gorm.DB, cutoff time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("status = ? AND created_at < ?", entity.AppointmentStatusPendingPayment, cutoff).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

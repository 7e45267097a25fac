package repository

import (
	"errors"

	"vetclinic-booking/internal/domain/entity"
	domainRepo "vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type unavailabilityRepository struct{}

func NewUnavailabilityRepository() domainRepo.UnavailabilityRepository {
	return &unavailabilityRepository{}
}

func (r *unavailabilityRepository) Create(db *gorm.DB, period *entity.UnavailabilityPeriod) error {
	return db.Create(period).Error
}

func (r *unavailabilityRepository) FindByID(db *gorm.DB, id int) (*entity.UnavailabilityPeriod, error) {
	var period entity.UnavailabilityPeriod
	err := db.Where("id = ?", id).First(&period).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}

func (r *unavailabilityRepository) FindByDate(db *gorm.DB, date string) ([]entity.UnavailabilityPeriod, error) {
	var periods []entity.UnavailabilityPeriod
	err := db.Where("date = ?", date).Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *unavailabilityRepository) FindByRange(db *gorm.DB, startDate, endDate string) ([]entity.UnavailabilityPeriod, error) {
	var periods []entity.UnavailabilityPeriod
	err := db.Where("date >= ? AND date <= ?", startDate, endDate).
		Order("date ASC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *unavailabilityRepository) FindByClinician(db *gorm.DB, clinicianID uuid.UUID) ([]entity.UnavailabilityPeriod, error) {
	var periods []entity.UnavailabilityPeriod
	err := db.Where("clinician_id = ?", clinicianID).
		Order("date DESC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}
	return periods, nil
}

func (r *unavailabilityRepository) Delete(db *gorm.DB, id int) error {
	return db.Delete(&entity.UnavailabilityPeriod{}, "id = ?", id).Error
}

package repository

import (
	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnavailabilityRepository interface {
	Create(db *gorm.DB, period *entity.UnavailabilityPeriod) error
	FindByID(db *gorm.DB, id int) (*entity.UnavailabilityPeriod, error)
	// FindByDate returns all periods for a YYYY-MM-DD date.
	FindByDate(db *gorm.DB, date string) ([]entity.UnavailabilityPeriod, error)
	FindByRange(db *gorm.DB, startDate, endDate string) ([]entity.UnavailabilityPeriod, error)
	FindByClinician(db *gorm.DB, clinicianID uuid.UUID) ([]entity.UnavailabilityPeriod, error)
	Delete(db *gorm.DB, id int) error
}

package repository

import (
	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetRepository interface {
	Create(db *gorm.DB, pet *entity.Pet) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Pet, error)
	FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.Pet, error)
	Update(db *gorm.DB, pet *entity.Pet) error
	Delete(db *gorm.DB, id uuid.UUID) error
}

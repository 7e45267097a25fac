package repository

import (
	"errors"

	"vetclinic-booking/internal/domain/entity"
	domainRepo "vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type petRepository struct{}

func NewPetRepository() domainRepo.PetRepository {
	return &petRepository{}
}

func (r *petRepository) Create(db *gorm.DB, pet *entity.Pet) error {
	return db.Create(pet).Error
}

func (r *petRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Pet, error) {
	var pet entity.Pet
	err := db.Where("id = ?", id).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) FindByOwnerID(db *gorm.DB, ownerID uuid.UUID) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := db.Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) Update(db *gorm.DB, pet *entity.Pet) error {
	return db.Save(pet).Error
}

func (r *petRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Delete(&entity.Pet{}, "id = ?", id).Error
}

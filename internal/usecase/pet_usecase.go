package usecase

import (
	"context"
	"errors"
	"time"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPetNotFound = errors.New("pet not found")
	ErrNotPetOwner = errors.New("pet belongs to another client")
)

type PetUseCase interface {
	Create(ctx context.Context, request *dto.CreatePetRequest, ownerID uuid.UUID) (*dto.PetResponse, error)
	List(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error)
	GetByID(ctx context.Context, id, actorID uuid.UUID, actorRoleID int) (*dto.PetResponse, error)
	Update(ctx context.Context, id uuid.UUID, request *dto.UpdatePetRequest, ownerID uuid.UUID) (*dto.PetResponse, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type petUseCase struct {
	db      *gorm.DB
	log     *logrus.Logger
	petRepo repository.PetRepository
}

func NewPetUseCase(db *gorm.DB, log *logrus.Logger, petRepo repository.PetRepository) PetUseCase {
	return &petUseCase{
		db:      db,
		log:     log,
		petRepo: petRepo,
	}
}

func (u *petUseCase) Create(ctx context.Context, request *dto.CreatePetRequest, ownerID uuid.UUID) (*dto.PetResponse, error) {
	db := u.db.WithContext(ctx)

	pet := &entity.Pet{
		OwnerID: ownerID,
		Name:    request.Name,
		Species: request.Species,
		Breed:   request.Breed,
	}

	if request.BirthDate != "" {
		birthDate, err := time.Parse(entity.DateLayout, request.BirthDate)
		if err != nil {
			return nil, err
		}
		pet.BirthDate = &birthDate
	}

	if err := u.petRepo.Create(db, pet); err != nil {
		u.log.Warnf("Failed to create pet: %+v", err)
		return nil, err
	}

	return converter.PetToResponse(pet), nil
}

func (u *petUseCase) List(ctx context.Context, ownerID uuid.UUID) (*dto.PetListResponse, error) {
	pets, err := u.petRepo.FindByOwnerID(u.db.WithContext(ctx), ownerID)
	if err != nil {
		u.log.Warnf("Failed to list pets: %+v", err)
		return nil, err
	}

	return &dto.PetListResponse{
		Pets:  converter.PetsToResponses(pets),
		Total: len(pets),
	}, nil
}

// GetByID returns a pet. Clients may only read their own pets; staff may
// read any.
func (u *petUseCase) GetByID(ctx context.Context, id, actorID uuid.UUID, actorRoleID int) (*dto.PetResponse, error) {
	pet, err := u.petRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	isStaff := actorRoleID == entity.RoleIDAdmin || actorRoleID == entity.RoleIDVet
	if !isStaff && pet.OwnerID != actorID {
		return nil, ErrNotPetOwner
	}

	return converter.PetToResponse(pet), nil
}

func (u *petUseCase) Update(ctx context.Context, id uuid.UUID, request *dto.UpdatePetRequest, ownerID uuid.UUID) (*dto.PetResponse, error) {
	db := u.db.WithContext(ctx)

	pet, err := u.petRepo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	if pet.OwnerID != ownerID {
		return nil, ErrNotPetOwner
	}

	if request.Name != "" {
		pet.Name = request.Name
	}
	if request.Species != "" {
		pet.Species = request.Species
	}
	if request.Breed != "" {
		pet.Breed = request.Breed
	}
	if request.BirthDate != "" {
		birthDate, err := time.Parse(entity.DateLayout, request.BirthDate)
		if err != nil {
			return nil, err
		}
		pet.BirthDate = &birthDate
	}

	if err := u.petRepo.Update(db, pet); err != nil {
		u.log.Warnf("Failed to update pet %s: %+v", id, err)
		return nil, err
	}

	return converter.PetToResponse(pet), nil
}

func (u *petUseCase) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	db := u.db.WithContext(ctx)

	pet, err := u.petRepo.FindByID(db, id)
	if err != nil {
		return err
	}
	if pet == nil {
		return ErrPetNotFound
	}
	if pet.OwnerID != ownerID {
		return ErrNotPetOwner
	}

	if err := u.petRepo.Delete(db, id); err != nil {
		u.log.Warnf("Failed to delete pet %s: %+v", id, err)
		return err
	}

	return nil
}
